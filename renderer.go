package pegs

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pegs/internal/assets"
	"github.com/alnah/go-pegs/internal/fileutil"
	"github.com/alnah/go-pegs/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.PageRenderer         = (*pipeline.PageShell)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.TOCInjector          = (*pipeline.TOCInjection)(nil)
)

// outputPermissions is rw-r--r--: rendered pages are meant to be shared.
const outputPermissions = 0o644

// Input is a document to render.
type Input struct {
	Markdown  string // Required
	CSS       string // Appended after the page style
	Title     string // Overrides WithTitle
	SourceDir string // Directory of the Markdown file, for relative links
	OutputDir string // Directory of the written page, for relative links
}

// Result holds a rendered page.
type Result struct {
	HTML []byte
}

// Renderer turns Markdown requirements documents into standalone HTML pages.
// Create with NewRenderer. A Renderer is safe for concurrent use.
type Renderer struct {
	cfg           rendererConfig
	assetLoader   assets.AssetLoader
	highlightCSS  string
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	pageRenderer  pipeline.PageRenderer
	cssInjector   pipeline.CSSInjector
	tocInjector   pipeline.TOCInjector
}

// NewRenderer creates a Renderer with the embedded github style and page
// template. Returns error if the style or template cannot be loaded.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			title:          DefaultTitle,
			lang:           DefaultLang,
			highlightStyle: pipeline.DefaultHighlightStyle,
		},
		assetLoader:   assets.NewEmbeddedLoader(),
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
		tocInjector:   pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(r.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		r.assetLoader = resolver
	}

	if err := r.resolveStyle(); err != nil {
		return nil, err
	}

	highlightCSS, err := pipeline.HighlightCSS(r.cfg.highlightStyle)
	if err != nil {
		return nil, err
	}
	r.highlightCSS = highlightCSS

	if r.pageRenderer == nil {
		tmpl, err := r.assetLoader.LoadTemplate(assets.PageTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
		r.pageRenderer, err = pipeline.NewPageShell(tmpl)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
		}
	}

	return r, nil
}

// Render runs the full pipeline and returns the HTML page.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("internal error: %v", p)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	mdContent := r.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fragment, err := r.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	fragment, err = pipeline.RebaseRelativePaths(fragment, input.SourceDir, input.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("rebasing relative paths: %w", err)
	}

	title := input.Title
	if title == "" {
		title = r.cfg.title
	}
	page, err := r.pageRenderer.RenderPage(ctx, &pipeline.PageData{
		Lang:  r.cfg.lang,
		Title: title,
		Body:  template.HTML(fragment), // #nosec G203 -- goldmark escapes raw HTML (no WithUnsafe)
	})
	if err != nil {
		return nil, err
	}

	// Page style first, user CSS last so it can override.
	css := r.cfg.resolvedStyle + "\n" + r.highlightCSS
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	page = r.cssInjector.InjectCSS(ctx, page, css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if r.cfg.toc {
		page, err = r.tocInjector.InjectTOC(ctx, page, &pipeline.TOCData{Title: r.cfg.tocTitle})
		if err != nil {
			return nil, fmt.Errorf("injecting TOC: %w", err)
		}
	}

	return &Result{HTML: []byte(page)}, nil
}

// RenderFile renders the Markdown file at inPath to outPath.
// If inPath does not exist, returns an error wrapping ErrDocumentNotFound
// and writes nothing. The output is written atomically.
func (r *Renderer) RenderFile(ctx context.Context, inPath, outPath string) (*Result, error) {
	content, err := os.ReadFile(inPath) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, inPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadDocument, err)
	}

	result, err := r.Render(ctx, Input{
		Markdown:  string(content),
		SourceDir: filepath.Dir(inPath),
		OutputDir: filepath.Dir(outPath),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", inPath, err)
	}

	if err := fileutil.WriteFileAtomic(outPath, result.HTML, outputPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	return result, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. Called during NewRenderer after options are applied and the
// asset loader is configured.
func (r *Renderer) resolveStyle() error {
	input := r.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		r.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		r.cfg.resolvedStyle = input
		return nil
	}

	css, err := r.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	r.cfg.resolvedStyle = css
	return nil
}

// Styles returns the names of the embedded styles.
func Styles() []string {
	return assets.Styles()
}
