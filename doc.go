// Package pegs lints and renders Markdown requirements documents written in
// the PEGS convention (PROJECT, ENVIRONMENT, GOALS, SYSTEM).
//
// # Validation
//
// A Validator checks a document against a Dialect: the ordered section
// vocabulary, the reserved placeholder tokens and a disallowed keyword.
// Validators are immutable and safe for concurrent use:
//
//	v := pegs.Default()
//	for _, viol := range v.ValidateStructure(text) {
//	    fmt.Println(viol)
//	}
//
// Findings are data, never errors. An empty slice means the document passed.
//
// Lint runs every check and groups the findings by named check:
//
//	report := v.Lint(text)
//	if !report.Passed() {
//	    fmt.Println(report.Failed())
//	}
//
// Other conventions use their own Dialect:
//
//	v, err := pegs.NewValidator(pegs.Dialect{
//	    Name:     "RFC",
//	    Sections: []string{"ABSTRACT", "MOTIVATION", "DESIGN"},
//	})
//
// # Document Grammar
//
// Section headers are level-2 headings numbered in ascending order (a number
// may repeat), with an optional annotation:
//
//	## 1. PROJECT (context and stakeholders)
//
// Requirement IDs are strongly emphasized, made of the first letter of a
// section, a group and a sequence: **P.1-02**. References cite an ID in
// brackets or parentheses: [P.1-02], (G.2-01).
//
// # Rendering
//
// A Renderer turns a document into a standalone HTML page with an embedded
// style sheet:
//
//	r, err := pegs.NewRenderer(pegs.WithStyle("plain"), pegs.WithTOC("Contents"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = r.RenderFile(ctx, "REQUIREMENTS.md", "REQUIREMENTS.html")
//
// RenderFile writes nothing when the input document does not exist.
//
// # Error Handling
//
// Infrastructure failures are returned as wrapped sentinel errors:
//
//	if errors.Is(err, pegs.ErrDocumentNotFound) {
//	    // handle missing input
//	}
package pegs
