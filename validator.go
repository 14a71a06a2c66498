package pegs

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// topLevelHeaderPattern matches any level-2 header line, inside or outside
// the vocabulary.
var topLevelHeaderPattern = regexp.MustCompile(`^##[ \t]+\S`)

// Validator checks documents against a Dialect.
// A Validator holds no mutable state and is safe for concurrent use.
type Validator struct {
	dialect Dialect

	headerRe    *regexp.Regexp // "## N. NAME (annotation)"
	strictIDRe  *regexp.Regexp // **P.1-02**
	looseIDRe   *regexp.Regexp // **P.1.02**, **P-1-02**, ...
	referenceRe *regexp.Regexp // [P.1-02] or (P.1-02)
	rowIDRe     *regexp.Regexp // P.1-02 at the start of a table cell
	keywordRe   *regexp.Regexp // nil when the dialect has no keyword
}

// NewValidator compiles the grammars of d into a Validator.
// Returns ErrInvalidDialect if d fails validation.
func NewValidator(d Dialect) (*Validator, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d = d.clone()

	names := make([]string, len(d.Sections))
	for i, name := range d.Sections {
		names[i] = regexp.QuoteMeta(name)
	}
	category := "[" + strings.Join(d.Categories(), "") + "]"
	strictID := category + `\.\d+-\d+`

	v := &Validator{
		dialect:     d,
		headerRe:    regexp.MustCompile(`^##[ \t]+(\d+)\.[ \t]+(` + strings.Join(names, "|") + `)(?:[ \t]*\(.*\))?[ \t]*$`),
		strictIDRe:  regexp.MustCompile(`\*\*(` + strictID + `)\*\*`),
		looseIDRe:   regexp.MustCompile(`\*\*(` + category + `[.\-]\d+[.\-]\d+)\*\*`),
		referenceRe: regexp.MustCompile(`[\[(](` + strictID + `)[\])]`),
		rowIDRe:     regexp.MustCompile(`^` + strictID),
	}
	if d.Keyword != "" {
		v.keywordRe = compileKeyword(d.Keyword)
	}
	return v, nil
}

// Default returns a Validator for the PEGS dialect.
func Default() *Validator {
	v, err := NewValidator(DefaultDialect())
	if err != nil {
		panic("pegs: default dialect is invalid: " + err.Error())
	}
	return v
}

// Dialect returns a copy of the validator's dialect.
func (v *Validator) Dialect() Dialect {
	return v.dialect.clone()
}

// ExtractSectionHeaders returns every vocabulary header in document order.
// Duplicates and ordering problems are kept as found.
func (v *Validator) ExtractSectionHeaders(text string) []SectionHeader {
	var headers []SectionHeader
	for i, line := range splitLines(text) {
		m := v.headerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		// Numbers too large for int are not section numbers; the line then
		// only counts as a foreign header.
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		headers = append(headers, SectionHeader{Number: num, Name: m[2], Line: i + 1})
	}
	return headers
}

// ValidateStructure checks section presence, uniqueness, order, numbering
// and the absence of foreign level-2 headers.
//
// A document without any vocabulary header yields a single KindNoSections
// violation and no other findings. Otherwise every check runs and all
// findings are returned.
func (v *Validator) ValidateStructure(text string) []Violation {
	found := v.ExtractSectionHeaders(text)
	if len(found) == 0 {
		return []Violation{{
			Kind:    KindNoSections,
			Message: fmt.Sprintf("no %s sections detected (expected \"## N. NAME\")", v.dialect.Name),
		}}
	}

	var violations []Violation
	violations = append(violations, v.checkMissing(found)...)
	violations = append(violations, v.checkDuplicates(found)...)
	violations = append(violations, v.checkOrder(found)...)
	violations = append(violations, v.checkNumbering(found)...)
	violations = append(violations, v.checkForeign(text, found)...)
	return violations
}

// checkMissing reports every canonical name absent from found, in one violation.
func (v *Validator) checkMissing(found []SectionHeader) []Violation {
	present := make(map[string]bool, len(found))
	for _, h := range found {
		present[h.Name] = true
	}

	var missing []string
	for _, name := range v.dialect.Sections {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	slices.Sort(missing)
	list := strings.Join(missing, ", ")
	return []Violation{{
		Kind:    KindMissingSection,
		Message: fmt.Sprintf("missing %s sections: %s", v.dialect.Name, list),
		Subject: list,
	}}
}

// checkDuplicates reports one violation per name found more than once,
// pointing at its second occurrence.
func (v *Validator) checkDuplicates(found []SectionHeader) []Violation {
	var violations []Violation
	for _, name := range v.dialect.Sections {
		count := 0
		for _, h := range found {
			if h.Name != name {
				continue
			}
			count++
			if count == 2 {
				violations = append(violations, Violation{
					Kind:    KindDuplicateSection,
					Message: fmt.Sprintf("duplicated %s section: %s", v.dialect.Name, name),
					Line:    h.Line,
					Subject: name,
				})
			}
		}
	}
	return violations
}

// checkOrder compares the found name sequence with the canonical one.
func (v *Validator) checkOrder(found []SectionHeader) []Violation {
	names := make([]string, len(found))
	for i, h := range found {
		names[i] = h.Name
	}
	if slices.Equal(names, v.dialect.Sections) {
		return nil
	}
	return []Violation{{
		Kind: KindSectionOrder,
		Message: fmt.Sprintf("invalid %s order: %s (expected %s)",
			v.dialect.Name, strings.Join(names, " -> "), strings.Join(v.dialect.Sections, " -> ")),
	}}
}

// checkNumbering requires header numbers in ascending order. Repeated
// numbers are accepted; the violation points at the first decrease.
func (v *Validator) checkNumbering(found []SectionHeader) []Violation {
	for i := 1; i < len(found); i++ {
		if found[i].Number >= found[i-1].Number {
			continue
		}
		numbers := make([]string, len(found))
		for j, h := range found {
			numbers[j] = strconv.Itoa(h.Number)
		}
		return []Violation{{
			Kind: KindSectionNumbering,
			Message: fmt.Sprintf("%s section numbers must be in ascending order: %s",
				v.dialect.Name, strings.Join(numbers, ", ")),
			Line: found[i].Line,
		}}
	}
	return nil
}

// checkForeign flags level-2 headers outside the vocabulary. Only the count
// is compared; the offending headers are not enumerated.
func (v *Validator) checkForeign(text string, found []SectionHeader) []Violation {
	total := 0
	for _, line := range splitLines(text) {
		if topLevelHeaderPattern.MatchString(line) {
			total++
		}
	}
	if total == len(found) {
		return nil
	}
	return []Violation{{
		Kind: KindForeignHeader,
		Message: fmt.Sprintf("unauthorized level-2 headers found (only %s sections are allowed at ##)",
			v.dialect.Name),
	}}
}

// splitLines splits text on \n, \r\n and \r.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
