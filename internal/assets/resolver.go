package assets

import "errors"

// AssetResolver serves assets from a custom directory when one is set,
// falling back to the embedded assets for names it does not provide.
type AssetResolver struct {
	custom   AssetLoader // nil without a custom directory
	embedded AssetLoader
}

// NewAssetResolver returns a resolver over the embedded assets, overlaid
// with customBasePath when non-empty. Returns ErrInvalidBasePath if
// customBasePath is set but unusable.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadStyle returns the named style sheet.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.resolve(AssetLoader.LoadStyle, name)
}

// LoadTemplate returns the named page template.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.resolve(AssetLoader.LoadTemplate, name)
}

// resolve tries the custom loader, then the embedded one. Only not-found
// errors fall through; invalid names and read errors are returned as is.
func (r *AssetResolver) resolve(load func(AssetLoader, string) (string, error), name string) (string, error) {
	if r.custom != nil {
		content, err := load(r.custom, name)
		if err == nil || !isNotFoundError(err) {
			return content, err
		}
	}
	return load(r.embedded, name)
}

// isNotFoundError reports whether err means the asset does not exist.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
