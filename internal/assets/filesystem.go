package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Subdirectories and extensions of a custom asset directory.
const (
	stylesDir    = "styles"
	styleExt     = ".css"
	templatesDir = "templates"
	templateExt  = ".html"
)

// FilesystemLoader reads styles and templates from a directory laid out as
// {base}/styles/{name}.css and {base}/templates/{name}.html.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader returns a loader rooted at base.
// Returns ErrInvalidBasePath unless base is a readable directory.
func NewFilesystemLoader(base string) (*FilesystemLoader, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	entries, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !entries.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBasePath, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{root: root}, nil
}

// LoadStyle reads {base}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.read(stylesDir, name+styleExt, name, ErrStyleNotFound)
}

// LoadTemplate reads {base}/templates/{name}.html.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.read(templatesDir, name+templateExt, name, ErrTemplateNotFound)
}

// read validates name, checks the file stays under the root once symlinks
// are resolved, and returns its content. A missing file wraps notFound.
func (f *FilesystemLoader) read(dir, file, name string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path := filepath.Join(f.root, dir, file)
	if err := f.contain(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- contained under root
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// contain returns ErrPathTraversal when path, with symlinks resolved,
// lies outside the root. Paths that do not exist yet are checked as given.
func (f *FilesystemLoader) contain(path string) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if !strings.HasPrefix(path, f.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, path, f.root)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
