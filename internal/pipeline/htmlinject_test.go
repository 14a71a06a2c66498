package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-pegs/internal/assets"
)

// ---------------------------------------------------------------------------
// TestPageShell - Page template rendering
// ---------------------------------------------------------------------------

func TestPageShell_RenderPage(t *testing.T) {
	t.Parallel()

	tmpl, err := assets.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	shell, err := NewPageShell(tmpl)
	if err != nil {
		t.Fatalf("NewPageShell() error = %v", err)
	}

	got, err := shell.RenderPage(context.Background(), &PageData{
		Lang:  "en",
		Title: "Project <Requirements>",
		Body:  "<h2>1. PROJECT</h2>",
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}

	wantContains := []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`<meta charset="UTF-8">`,
		`<meta name="viewport"`,
		"<title>Project &lt;Requirements&gt;</title>",
		"<h2>1. PROJECT</h2>",
		"</head>",
		"</body>",
	}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("RenderPage() missing %q in:\n%s", want, got)
		}
	}
}

func TestNewPageShell_InvalidTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewPageShell("{{.Title")
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestPageShell_ExecuteError(t *testing.T) {
	t.Parallel()

	shell, err := NewPageShell("{{.Missing}}")
	if err != nil {
		t.Fatalf("NewPageShell() error = %v", err)
	}

	_, err = shell.RenderPage(context.Background(), &PageData{})
	if !errors.Is(err, ErrPageRender) {
		t.Errorf("RenderPage() error = %v, want ErrPageRender", err)
	}
}

func TestPageShell_ContextCancellation(t *testing.T) {
	t.Parallel()

	shell, err := NewPageShell("<html>{{.Body}}</html>")
	if err != nil {
		t.Fatalf("NewPageShell() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := shell.RenderPage(ctx, &PageData{}); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderPage() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestInjectCSS - Style block injection
// ---------------------------------------------------------------------------

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", "body { color: red; }", "body { color: red; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
		{"case variation", "</STYLE>", `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	const css = "body { color: red; }"
	const block = "<style>\n" + css + "\n</style>\n"

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "empty CSS returns HTML unchanged",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "",
			expected: "<html><head></head><body>Hello</body></html>",
		},
		{
			name:     "injects before </head>",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      css,
			expected: "<html><head>" + block + "</head><body>Hello</body></html>",
		},
		{
			name:     "injects before </HEAD> mixed case",
			html:     "<html><HEAD></HEAD><body>Hello</body></html>",
			css:      css,
			expected: "<html><HEAD>" + block + "</HEAD><body>Hello</body></html>",
		},
		{
			name:     "injects after <body> with attributes when no </head>",
			html:     `<html><body class="main">Hello</body></html>`,
			css:      css,
			expected: `<html><body class="main">` + block + `Hello</body></html>`,
		},
		{
			name:     "prepends to bare fragment",
			html:     "<p>Hello</p>",
			css:      css,
			expected: block + "<p>Hello</p>",
		},
		{
			name:     "sanitizes CSS with closing tags",
			html:     "<head></head>",
			css:      "</style><script>",
			expected: "<head><style>\n<\\/style><script>\n</style>\n</head>",
		},
	}

	injector := &CSSInjection{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<html><head></head><body>Hello</body></html>"
	got := (&CSSInjection{}).InjectCSS(ctx, html, "body { color: red; }")
	if got != html {
		t.Errorf("InjectCSS() with cancelled context should return HTML unchanged, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestInjectTOC - Section navigation
// ---------------------------------------------------------------------------

func TestStripHTMLTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"<em>emphasized</em>", "emphasized"},
		{"Plain <strong>bold</strong> plain", "Plain bold plain"},
		{"  <em>spaced</em>  ", "spaced"},
		{"", ""},
		{"A &amp; B", "A & B"},
		{"&lt;em&gt;not a tag&lt;/em&gt;", "<em>not a tag</em>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := stripHTMLTags(tt.input); got != tt.want {
				t.Errorf("stripHTMLTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	html := `<h1 id="title">Title</h1>
<h2 id="1-project">1. PROJECT</h2>
<h3 id="sub">Sub</h3>
<h2>No id</h2>
<h2 id="2-environment">2. <em>ENVIRONMENT</em></h2>`

	got := extractHeadings(html, 2)
	want := []headingInfo{
		{ID: "1-project", Text: "1. PROJECT"},
		{ID: "2-environment", Text: "2. ENVIRONMENT"},
	}
	if len(got) != len(want) {
		t.Fatalf("extractHeadings() returned %d headings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestInjectTOC(t *testing.T) {
	t.Parallel()

	page := `<html><head></head><body><h2 id="1-project">1. PROJECT</h2><h2 id="2-goals">2. GOALS &amp; more</h2></body></html>`

	tests := []struct {
		name         string
		html         string
		data         *TOCData
		wantContains []string
		wantSame     bool
	}{
		{
			name:     "nil data returns HTML unchanged",
			html:     page,
			data:     nil,
			wantSame: true,
		},
		{
			name:     "no qualifying headings returns HTML unchanged",
			html:     "<body><h3 id=\"x\">x</h3></body>",
			data:     &TOCData{},
			wantSame: true,
		},
		{
			name: "lists level-2 headings after body",
			html: page,
			data: &TOCData{Title: "Contents"},
			wantContains: []string{
				`<body><nav class="toc"><p class="toc-title">Contents</p>`,
				`<li><a href="#1-project">1. PROJECT</a></li>`,
				`<li><a href="#2-goals">2. GOALS &amp; more</a></li>`,
			},
		},
		{
			name:         "untitled TOC has no title paragraph",
			html:         page,
			data:         &TOCData{Level: 2},
			wantContains: []string{`<body><nav class="toc"><ul>`},
		},
	}

	injector := NewTOCInjection()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := injector.InjectTOC(context.Background(), tt.html, tt.data)
			if err != nil {
				t.Fatalf("InjectTOC() error = %v", err)
			}
			if tt.wantSame && got != tt.html {
				t.Errorf("InjectTOC() = %q, want unchanged", got)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("InjectTOC() missing %q in %q", want, got)
				}
			}
		})
	}
}

func TestInjectTOC_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTOCInjection().InjectTOC(ctx, "<body></body>", &TOCData{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("InjectTOC() error = %v, want context.Canceled", err)
	}
}
