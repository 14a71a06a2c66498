package pegs

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Default PEGS vocabulary.
const (
	SectionProject     = "PROJECT"
	SectionEnvironment = "ENVIRONMENT"
	SectionGoals       = "GOALS"
	SectionSystem      = "SYSTEM"

	DefaultDialectName = "PEGS"
	DefaultKeyword     = "should"
)

// sectionNamePattern restricts section names to upper-case identifiers so
// the first letter can serve as the requirement ID category.
var sectionNamePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Dialect describes a document convention: the canonical ordered list of
// top-level sections, the reserved placeholder tokens, and the disallowed
// ambiguous keyword.
//
// A Dialect is copied into the Validator at construction; later changes to
// the caller's slices do not affect an existing Validator.
type Dialect struct {
	Name         string   // Used in violation messages, e.g. "PEGS"
	Sections     []string // Canonical order; first letters form the ID categories
	Placeholders []string // Case-insensitive substrings (empty = check disabled)
	Keyword      string   // Whole-word, case-insensitive (empty = check disabled)
}

// DefaultDialect returns the PEGS dialect.
func DefaultDialect() Dialect {
	return Dialect{
		Name:         DefaultDialectName,
		Sections:     []string{SectionProject, SectionEnvironment, SectionGoals, SectionSystem},
		Placeholders: []string{"TODO", "TBD", "FIXME", "???", "TO DO", "TO DEFINED"},
		Keyword:      DefaultKeyword,
	}
}

// Validate checks that the dialect can be compiled into a Validator.
func (d Dialect) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidDialect)
	}
	if len(d.Sections) == 0 {
		return fmt.Errorf("%w: at least one section is required", ErrInvalidDialect)
	}

	seen := make(map[string]bool, len(d.Sections))
	for _, name := range d.Sections {
		if !sectionNamePattern.MatchString(name) {
			return fmt.Errorf("%w: section %q must be upper-case letters, digits or underscores", ErrInvalidDialect, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: section %q listed twice", ErrInvalidDialect, name)
		}
		seen[name] = true
	}

	for i, term := range d.Placeholders {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("%w: placeholders[%d] is blank", ErrInvalidDialect, i)
		}
	}

	if d.Keyword != "" && strings.TrimSpace(d.Keyword) != d.Keyword {
		return fmt.Errorf("%w: keyword %q has surrounding whitespace", ErrInvalidDialect, d.Keyword)
	}

	return nil
}

// Categories returns the requirement ID category letters, one per distinct
// first letter of the section names, in section order.
func (d Dialect) Categories() []string {
	var cats []string
	for _, name := range d.Sections {
		if name == "" {
			continue
		}
		c := name[:1]
		if !slices.Contains(cats, c) {
			cats = append(cats, c)
		}
	}
	return cats
}

// clone returns a deep copy so the Validator never shares slices with callers.
func (d Dialect) clone() Dialect {
	return Dialect{
		Name:         d.Name,
		Sections:     slices.Clone(d.Sections),
		Placeholders: slices.Clone(d.Placeholders),
		Keyword:      d.Keyword,
	}
}
