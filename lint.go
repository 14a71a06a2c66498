package pegs

import (
	"fmt"
	"strings"
)

// Check names one pass/fail rule of a lint run.
type Check string

// Checks reported by Lint, in report order.
const (
	CheckSectionsExist     Check = "sections-exist"
	CheckSectionsUnique    Check = "sections-unique"
	CheckSectionsOrder     Check = "sections-order"
	CheckSectionsNumbering Check = "sections-numbering"
	CheckSectionsOnly      Check = "sections-only"
	CheckNoKeyword         Check = "no-keyword"
	CheckIDFormat          Check = "id-format"
	CheckReferences        Check = "references"
	CheckNoPlaceholders    Check = "no-placeholders"
	CheckUniqueTitles      Check = "unique-titles"
)

// AllChecks lists every check in report order.
var AllChecks = []Check{
	CheckSectionsExist,
	CheckSectionsUnique,
	CheckSectionsOrder,
	CheckSectionsNumbering,
	CheckSectionsOnly,
	CheckNoKeyword,
	CheckIDFormat,
	CheckReferences,
	CheckNoPlaceholders,
	CheckUniqueTitles,
}

// checkForKind maps structural violation kinds to the check reporting them.
var checkForKind = map[Kind]Check{
	KindNoSections:       CheckSectionsExist,
	KindMissingSection:   CheckSectionsExist,
	KindDuplicateSection: CheckSectionsUnique,
	KindSectionOrder:     CheckSectionsOrder,
	KindSectionNumbering: CheckSectionsNumbering,
	KindForeignHeader:    CheckSectionsOnly,
}

// CheckResult holds the findings of one check.
type CheckResult struct {
	Check      Check       `json:"check"`
	Violations []Violation `json:"violations"`
}

// Passed reports whether the check found nothing.
func (r CheckResult) Passed() bool {
	return len(r.Violations) == 0
}

// Report is the outcome of linting one document.
type Report struct {
	Checks []CheckResult `json:"checks"`
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed() {
			return false
		}
	}
	return true
}

// Failed returns the names of the failing checks, in report order.
func (r *Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed() {
			failed = append(failed, c.Check)
		}
	}
	return failed
}

// Violations returns every violation of every check, in report order.
func (r *Report) Violations() []Violation {
	var all []Violation
	for _, c := range r.Checks {
		all = append(all, c.Violations...)
	}
	return all
}

// Result returns the findings of a single check.
func (r *Report) Result(check Check) CheckResult {
	for _, c := range r.Checks {
		if c.Check == check {
			return c
		}
	}
	return CheckResult{Check: check}
}

// Lint runs every check against text and groups the findings by check.
func (v *Validator) Lint(text string) *Report {
	byCheck := make(map[Check][]Violation, len(AllChecks))

	for _, viol := range v.ValidateStructure(text) {
		check := checkForKind[viol.Kind]
		byCheck[check] = append(byCheck[check], viol)
	}

	for _, hit := range v.FindDisallowedKeyword(text, v.dialect.Keyword) {
		byCheck[CheckNoKeyword] = append(byCheck[CheckNoKeyword], Violation{
			Kind:    KindDisallowedKeyword,
			Message: fmt.Sprintf("ambiguous keyword %q: %s", v.dialect.Keyword, hit.Text),
			Line:    hit.Line,
			Subject: v.dialect.Keyword,
		})
	}

	byCheck[CheckIDFormat] = v.idFormatViolations(text)

	for _, id := range v.FindDanglingReferences(text) {
		byCheck[CheckReferences] = append(byCheck[CheckReferences], Violation{
			Kind:    KindDanglingReference,
			Message: fmt.Sprintf("reference to undefined requirement %s", id),
			Subject: id,
		})
	}

	for _, hit := range v.FindPlaceholders(text, v.dialect.Placeholders) {
		byCheck[CheckNoPlaceholders] = append(byCheck[CheckNoPlaceholders], Violation{
			Kind:    KindPlaceholder,
			Message: fmt.Sprintf("placeholder %q found -> %s...", hit.Term, hit.Snippet),
			Line:    hit.Line,
			Subject: hit.Term,
		})
	}

	for _, dup := range v.FindDuplicateTitles(text) {
		byCheck[CheckUniqueTitles] = append(byCheck[CheckUniqueTitles], Violation{
			Kind:    KindDuplicateTitle,
			Message: fmt.Sprintf("title %q duplicated (used by %s and %s)", dup.Title, dup.FirstID, dup.DuplicateID),
			Subject: dup.Title,
		})
	}

	report := &Report{Checks: make([]CheckResult, len(AllChecks))}
	for i, check := range AllChecks {
		report.Checks[i] = CheckResult{Check: check, Violations: byCheck[check]}
	}
	return report
}

// idFormatViolations requires at least one strict ID and flags near misses.
func (v *Validator) idFormatViolations(text string) []Violation {
	var violations []Violation
	valid := v.ExtractIDs(text)
	if len(valid) == 0 {
		violations = append(violations, Violation{
			Kind: KindNoRequirementIDs,
			Message: fmt.Sprintf("no valid requirement ID found (expected format **%s.1-01**)",
				strings.Join(v.dialect.Categories(), "|")),
		})
	}

	for _, id := range v.FindMalformedIDs(text, valid) {
		violations = append(violations, Violation{
			Kind:    KindMalformedID,
			Message: fmt.Sprintf("malformed requirement ID %s (expected <category>.<group>-<sequence>)", id),
			Subject: id,
		})
	}
	return violations
}
