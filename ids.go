package pegs

import (
	"slices"
	"strings"
)

// IDSet is a set of requirement IDs.
type IDSet map[string]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the IDs in lexical order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ExtractIDs returns every strongly emphasized ID matching the strict
// grammar, e.g. **P.1-02**.
func (v *Validator) ExtractIDs(text string) IDSet {
	ids := IDSet{}
	for _, m := range v.strictIDRe.FindAllStringSubmatch(text, -1) {
		ids[m[1]] = struct{}{}
	}
	return ids
}

// FindMalformedIDs returns strongly emphasized ID-like tokens that mix the
// "." and "-" separators and are not in valid. Tokens are returned once, in
// order of first appearance.
func (v *Validator) FindMalformedIDs(text string, valid IDSet) []string {
	var malformed []string
	seen := map[string]bool{}
	for _, m := range v.looseIDRe.FindAllStringSubmatch(text, -1) {
		id := m[1]
		if valid.Has(id) || seen[id] {
			continue
		}
		seen[id] = true
		malformed = append(malformed, id)
	}
	return malformed
}

// FindDanglingReferences returns the bracketed or parenthesized IDs that
// have no strongly emphasized definition in text, sorted.
func (v *Validator) FindDanglingReferences(text string) []string {
	defined := v.ExtractIDs(text)
	dangling := IDSet{}
	for _, m := range v.referenceRe.FindAllStringSubmatch(text, -1) {
		if !defined.Has(m[1]) {
			dangling[m[1]] = struct{}{}
		}
	}
	if len(dangling) == 0 {
		return nil
	}
	return dangling.Sorted()
}

// isRowID reports whether a table cell, once stripped of emphasis markers
// and whitespace, starts with a strict ID. Trailing text such as "(draft)"
// is allowed.
func (v *Validator) isRowID(cell string) bool {
	return v.rowIDRe.MatchString(cell)
}

// stripEmphasis removes every asterisk and surrounding whitespace.
func stripEmphasis(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}
