package pegs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// lintDoc fails every content check but none of the structural ones.
const lintDoc = `## 1. PROJECT
| **P.1-01** | Scope | The system should scale. |
| **P.1-02** | Scope | TBD |
| **P.1.03** | Other | See [G.9-09]. |

## 2. ENVIRONMENT

## 3. GOALS

## 4. SYSTEM
`

// ---------------------------------------------------------------------------
// TestLint - Check grouping
// ---------------------------------------------------------------------------

func TestLint_CanonicalPasses(t *testing.T) {
	t.Parallel()

	report := Default().Lint(canonicalDoc)

	if !report.Passed() {
		t.Fatalf("Passed() = false, failed checks %v: %v", report.Failed(), report.Violations())
	}
	if got := report.Failed(); got != nil {
		t.Errorf("Failed() = %v, want nil", got)
	}
	if got := report.Violations(); got != nil {
		t.Errorf("Violations() = %v, want nil", got)
	}

	checks := make([]Check, len(report.Checks))
	for i, c := range report.Checks {
		checks[i] = c.Check
		if !c.Passed() {
			t.Errorf("%s: Passed() = false", c.Check)
		}
	}
	if diff := cmp.Diff(AllChecks, checks); diff != "" {
		t.Errorf("check order mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_ContentChecks(t *testing.T) {
	t.Parallel()

	report := Default().Lint(lintDoc)

	wantFailed := []Check{
		CheckNoKeyword,
		CheckIDFormat,
		CheckReferences,
		CheckNoPlaceholders,
		CheckUniqueTitles,
	}
	if diff := cmp.Diff(wantFailed, report.Failed()); diff != "" {
		t.Fatalf("Failed() mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		check Check
		want  Violation
	}{
		{
			check: CheckNoKeyword,
			want: Violation{
				Kind:    KindDisallowedKeyword,
				Message: `ambiguous keyword "should": | **P.1-01** | Scope | The system should scale. |`,
				Line:    2,
				Subject: "should",
			},
		},
		{
			check: CheckIDFormat,
			want: Violation{
				Kind:    KindMalformedID,
				Message: "malformed requirement ID P.1.03 (expected <category>.<group>-<sequence>)",
				Subject: "P.1.03",
			},
		},
		{
			check: CheckReferences,
			want: Violation{
				Kind:    KindDanglingReference,
				Message: "reference to undefined requirement G.9-09",
				Subject: "G.9-09",
			},
		},
		{
			check: CheckNoPlaceholders,
			want: Violation{
				Kind:    KindPlaceholder,
				Message: `placeholder "TBD" found -> | **P.1-02** | Scope | TBD |...`,
				Line:    3,
				Subject: "TBD",
			},
		},
		{
			check: CheckUniqueTitles,
			want: Violation{
				Kind:    KindDuplicateTitle,
				Message: `title "Scope" duplicated (used by P.1-01 and P.1-02)`,
				Subject: "Scope",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.check), func(t *testing.T) {
			t.Parallel()

			got := report.Result(tt.check).Violations
			if diff := cmp.Diff([]Violation{tt.want}, got); diff != "" {
				t.Errorf("violations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLint_EmptyDocument(t *testing.T) {
	t.Parallel()

	report := Default().Lint("")

	want := []Check{CheckSectionsExist, CheckIDFormat}
	if diff := cmp.Diff(want, report.Failed()); diff != "" {
		t.Errorf("Failed() mismatch (-want +got):\n%s", diff)
	}

	kinds := []Kind{}
	for _, viol := range report.Violations() {
		kinds = append(kinds, viol.Kind)
	}
	if diff := cmp.Diff([]Kind{KindNoSections, KindNoRequirementIDs}, kinds); diff != "" {
		t.Errorf("violation kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_StructuralChecks(t *testing.T) {
	t.Parallel()

	text := buildDoc("## 2. GOALS", "## 1. PROJECT", "## 3. GOALS", "## Extra") + "\n**P.1-01**\n"
	report := Default().Lint(text)

	want := []Check{
		CheckSectionsExist,
		CheckSectionsUnique,
		CheckSectionsOrder,
		CheckSectionsNumbering,
		CheckSectionsOnly,
	}
	if diff := cmp.Diff(want, report.Failed()); diff != "" {
		t.Errorf("Failed() mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_DialectWithoutOptionalChecks(t *testing.T) {
	t.Parallel()

	v, err := NewValidator(Dialect{
		Name:     "RFC",
		Sections: []string{"ABSTRACT", "MOTIVATION", "DESIGN"},
	})
	if err != nil {
		t.Fatalf("NewValidator() error = %v", err)
	}

	text := "## 1. ABSTRACT\n**A.1-01** It should work. TODO\n## 2. MOTIVATION\n## 3. DESIGN\n"
	report := v.Lint(text)
	if !report.Passed() {
		t.Errorf("Passed() = false, failed checks %v: %v", report.Failed(), report.Violations())
	}
}

// ---------------------------------------------------------------------------
// TestReport - Accessors
// ---------------------------------------------------------------------------

func TestReport_Result_UnknownCheck(t *testing.T) {
	t.Parallel()

	report := &Report{}
	got := report.Result(CheckReferences)
	if got.Check != CheckReferences || !got.Passed() {
		t.Errorf("Result() = %+v, want empty passing result", got)
	}
}

func TestLint_Concurrent(t *testing.T) {
	t.Parallel()

	v := Default()
	want := v.Lint(lintDoc)

	done := make(chan *Report)
	for range 8 {
		go func() {
			done <- v.Lint(lintDoc)
		}()
	}
	for range 8 {
		if diff := cmp.Diff(want, <-done); diff != "" {
			t.Errorf("concurrent Lint() mismatch (-want +got):\n%s", diff)
		}
	}
}
