package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/alnah/go-pegs"
	"github.com/alnah/go-pegs/internal/hints"
)

// Text report layout.
const (
	violationIndent = 6
	minWrapWidth    = 20
)

// textPrinter writes the human-readable lint report.
type textPrinter struct {
	w       io.Writer
	errW    io.Writer
	quiet   bool
	verbose bool
	width   int

	pass *color.Color
	fail *color.Color
	dim  *color.Color
}

// newTextPrinter colors output only on a terminal, unless --no-color or
// NO_COLOR is set.
func newTextPrinter(env *Environment, flags *lintFlags) *textPrinter {
	useColor := !flags.noColor && os.Getenv("NO_COLOR") == "" && env.IsTerminal(env.Stdout)

	p := &textPrinter{
		w:       env.Stdout,
		errW:    env.Stderr,
		quiet:   flags.common.quiet,
		verbose: flags.common.verbose,
		width:   env.TermWidth(env.Stdout),
		pass:    color.New(color.FgGreen, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.pass, p.fail, p.dim} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// print writes every file report, then a summary when several files were linted.
func (p *textPrinter) print(results []lintResult) {
	passed := 0
	for _, r := range results {
		if r.passed() {
			passed++
		}
		p.printFile(r)
	}

	if !p.quiet && len(results) > 1 {
		fmt.Fprintf(p.w, "\n%d passed, %d failed\n", passed, len(results)-passed)
	}
}

// printFile writes the checks of one file. In quiet mode passing files and
// passing checks are omitted.
func (p *textPrinter) printFile(r lintResult) {
	if r.Err != nil {
		fmt.Fprintf(p.errW, "%s %s: %v%s\n", p.fail.Sprint("ERROR"), r.Path, r.Err, hintForLintError(r))
		return
	}
	if p.quiet && r.passed() {
		return
	}

	header := r.Path
	if p.verbose {
		header += " " + p.dim.Sprintf("(%v)", r.Duration.Round(time.Microsecond))
	}
	fmt.Fprintln(p.w, header)

	passedChecks := 0
	for _, c := range r.Report.Checks {
		if c.Passed() {
			passedChecks++
			if !p.quiet {
				fmt.Fprintf(p.w, "  %s %s\n", p.pass.Sprint("PASS"), c.Check)
			}
			continue
		}
		fmt.Fprintf(p.w, "  %s %s\n", p.fail.Sprint("FAIL"), c.Check)
		for _, v := range c.Violations {
			fmt.Fprintln(p.w, p.wrapViolation(v))
		}
	}

	if !p.quiet {
		fmt.Fprintf(p.w, "  %d/%d checks passed\n", passedChecks, len(r.Report.Checks))
	}
}

// wrapViolation wraps a violation to the terminal width under its check.
func (p *textPrinter) wrapViolation(v pegs.Violation) string {
	limit := max(p.width-violationIndent, minWrapWidth)
	return indent.String(wordwrap.String(v.String(), limit), violationIndent)
}

// hintForLintError returns the hint matching a file read error.
func hintForLintError(r lintResult) string {
	if errors.Is(r.Err, pegs.ErrDocumentNotFound) {
		return hints.ForDocumentNotFound(r.Path)
	}
	return ""
}

// jsonFileReport is the JSON form of a lintResult.
type jsonFileReport struct {
	Path   string      `json:"path"`
	Passed bool        `json:"passed"`
	Checks []jsonCheck `json:"checks"`
	Error  string      `json:"error,omitempty"`
}

// jsonCheck is the JSON form of a pegs.CheckResult.
type jsonCheck struct {
	Check      pegs.Check       `json:"check"`
	Passed     bool             `json:"passed"`
	Violations []pegs.Violation `json:"violations"`
}

// writeJSONReport writes results as an indented JSON array.
// Empty lists are written as [] rather than null.
func writeJSONReport(w io.Writer, results []lintResult) error {
	reports := make([]jsonFileReport, len(results))
	for i, r := range results {
		report := jsonFileReport{
			Path:   r.Path,
			Passed: r.passed(),
			Checks: []jsonCheck{},
		}
		if r.Err != nil {
			report.Error = r.Err.Error()
		}
		if r.Report != nil {
			for _, c := range r.Report.Checks {
				violations := c.Violations
				if violations == nil {
					violations = []pegs.Violation{}
				}
				report.Checks = append(report.Checks, jsonCheck{
					Check:      c.Check,
					Passed:     c.Passed(),
					Violations: violations,
				})
			}
		}
		reports[i] = report
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
