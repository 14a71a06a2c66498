package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed styles/*.css templates/*.html
var bundled embed.FS

// EmbeddedLoader serves the styles and templates compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader returns the loader for the bundled assets.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the bundled style sheet called name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readBundled(stylesDir, name, styleExt, ErrStyleNotFound)
}

// LoadTemplate returns the bundled template called name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readBundled(templatesDir, name, templateExt, ErrTemplateNotFound)
}

// Styles returns the names of the bundled styles, sorted.
func (e *EmbeddedLoader) Styles() []string {
	entries, err := fs.ReadDir(bundled, stylesDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), styleExt); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func readBundled(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := bundled.ReadFile(path.Join(dir, name+ext))
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
