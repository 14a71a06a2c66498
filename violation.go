package pegs

import "strconv"

// Kind identifies the rule that produced a Violation.
type Kind string

// Structural kinds, produced by ValidateStructure.
const (
	KindNoSections       Kind = "no-sections"
	KindMissingSection   Kind = "missing-section"
	KindDuplicateSection Kind = "duplicate-section"
	KindSectionOrder     Kind = "section-order"
	KindSectionNumbering Kind = "section-numbering"
	KindForeignHeader    Kind = "foreign-header"
)

// Content kinds, produced by Lint from the line-scoped checks.
const (
	KindNoRequirementIDs  Kind = "no-requirement-ids"
	KindMalformedID       Kind = "malformed-id"
	KindDanglingReference Kind = "dangling-reference"
	KindPlaceholder       Kind = "placeholder"
	KindDisallowedKeyword Kind = "disallowed-keyword"
	KindDuplicateTitle    Kind = "duplicate-title"
)

// Violation is a single structural or content defect.
type Violation struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`    // 1-based; 0 for document-scoped findings
	Subject string `json:"subject,omitempty"` // Section name, ID or title concerned
}

// String returns the message prefixed by its line number when known.
func (v Violation) String() string {
	if v.Line > 0 {
		return "line " + strconv.Itoa(v.Line) + ": " + v.Message
	}
	return v.Message
}

// SectionHeader is a top-level heading whose name belongs to the dialect.
type SectionHeader struct {
	Number int
	Name   string
	Line   int
}

// KeywordHit is a line containing the disallowed keyword.
type KeywordHit struct {
	Line int
	Text string // Trimmed line
}

// PlaceholderHit is a reserved placeholder token found on a line.
type PlaceholderHit struct {
	Line    int
	Term    string
	Snippet string // Trimmed line, truncated
}

// DuplicateTitle reports a requirement title reused by a later row.
type DuplicateTitle struct {
	Title       string
	FirstID     string
	DuplicateID string
}
