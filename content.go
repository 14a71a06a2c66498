package pegs

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/truncate"
)

// snippetWidth is the number of terminal cells kept from a line in a
// PlaceholderHit.
const snippetWidth = 40

// compileKeyword builds the case-insensitive matcher for keyword. Word
// boundaries are checked by containsWord, since \b in RE2 only knows ASCII.
func compileKeyword(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
}

// containsWord reports whether re matches line at word boundaries, where
// letters and digits of any script and the underscore are word characters.
func containsWord(re *regexp.Regexp, line string) bool {
	for off := 0; off <= len(line); {
		loc := re.FindStringIndex(line[off:])
		if loc == nil {
			return false
		}
		start, end := off+loc[0], off+loc[1]
		if start < end && isBoundary(line, start) && isBoundary(line, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(line[start:])
		off = start + max(size, 1)
	}
	return false
}

// isBoundary reports whether exactly one side of byte offset i is a word
// character.
func isBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FindDisallowedKeyword returns every line containing keyword as a whole
// word, ignoring case. An empty keyword matches nothing.
func (v *Validator) FindDisallowedKeyword(text, keyword string) []KeywordHit {
	if keyword == "" {
		return nil
	}
	re := v.keywordRe
	if re == nil || keyword != v.dialect.Keyword {
		re = compileKeyword(keyword)
	}

	var hits []KeywordHit
	for i, line := range splitLines(text) {
		if containsWord(re, line) {
			hits = append(hits, KeywordHit{Line: i + 1, Text: strings.TrimSpace(line)})
		}
	}
	return hits
}

// FindPlaceholders returns one hit per line and term for every term found
// in the line, ignoring case. Terms are checked in the given order.
func (v *Validator) FindPlaceholders(text string, terms []string) []PlaceholderHit {
	if len(terms) == 0 {
		return nil
	}
	upperTerms := make([]string, len(terms))
	for i, term := range terms {
		upperTerms[i] = strings.ToUpper(term)
	}

	var hits []PlaceholderHit
	for i, line := range splitLines(text) {
		upper := strings.ToUpper(line)
		for j, term := range upperTerms {
			if term == "" || !strings.Contains(upper, term) {
				continue
			}
			hits = append(hits, PlaceholderHit{
				Line:    i + 1,
				Term:    terms[j],
				Snippet: truncate.String(strings.TrimSpace(line), snippetWidth),
			})
		}
	}
	return hits
}

// FindDuplicateTitles scans table rows of the form "| **ID** | Title | ..."
// and reports every title already used by an earlier row.
// Titles written outside table rows are not considered.
func (v *Validator) FindDuplicateTitles(text string) []DuplicateTitle {
	firstID := map[string]string{}
	var dups []DuplicateTitle

	for _, line := range splitLines(text) {
		if !strings.Contains(line, "**") || !strings.Contains(line, "|") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			continue
		}
		id := stripEmphasis(fields[1])
		title := stripEmphasis(fields[2])
		if !v.isRowID(id) {
			continue
		}

		if prev, ok := firstID[title]; ok {
			dups = append(dups, DuplicateTitle{Title: title, FirstID: prev, DuplicateID: id})
			continue
		}
		firstID[title] = id
	}
	return dups
}
