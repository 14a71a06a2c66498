package pegs

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	title          string
	lang           string
	styleInput     string // name, path or inline CSS, resolved by NewRenderer
	resolvedStyle  string
	assetPath      string
	highlightStyle string
	toc            bool
	tocTitle       string
}

// Page defaults.
const (
	DefaultTitle = "Project Requirements"
	DefaultLang  = "en"
)

// WithTitle sets the page <title>. Input.Title overrides it per document.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.cfg.title = title
	}
}

// WithLang sets the lang attribute of the <html> element.
func WithLang(lang string) Option {
	return func(r *Renderer) {
		r.cfg.lang = lang
	}
}

// WithStyle selects the page style sheet. The value is a style name
// ("github", "plain"), a CSS file path, or inline CSS. An empty value keeps
// the default style.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.cfg.styleInput = style
	}
}

// WithAssetPath overrides embedded styles and the page template with files
// from dir ({dir}/styles/{name}.css, {dir}/templates/page.html).
func WithAssetPath(dir string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = dir
	}
}

// WithHighlightStyle sets the Chroma style for fenced code blocks.
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.highlightStyle = name
	}
}

// WithTOC adds a list of the top-level sections after <body>.
// An empty title renders the list without heading.
func WithTOC(title string) Option {
	return func(r *Renderer) {
		r.cfg.toc = true
		r.cfg.tocTitle = title
	}
}
