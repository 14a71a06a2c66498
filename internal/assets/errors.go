package assets

import "errors"

// Sentinel errors for asset lookup.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrAssetRead        = errors.New("failed to read asset")

	// ErrInvalidAssetName rejects empty names and names holding a separator or dot.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath reports a custom directory that is missing or unreadable.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrPathTraversal reports a resolved asset path outside the base directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
