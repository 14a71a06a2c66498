// Package assets provides the style sheets and page template used to render
// requirements documents.
//
// Three AssetLoader implementations exist. EmbeddedLoader serves the
// bundled "github" and "plain" styles and the "page" template.
// FilesystemLoader reads a custom directory:
//
//	{basePath}/
//	├── styles/{name}.css
//	└── templates/{name}.html
//
// AssetResolver, used by the renderer, overlays a custom directory on the
// bundled assets: a name found on disk wins, anything else falls back.
//
// The page template is an html/template receiving Lang, Title and Body.
//
// Asset names never contain separators or dots, and FilesystemLoader
// rejects files whose resolved path leaves the base directory, symlinks
// included.
package assets
