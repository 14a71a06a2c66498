package pegs

import (
	"errors"

	"github.com/alnah/go-pegs/internal/assets"
	"github.com/alnah/go-pegs/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrHTMLConversion   = pipeline.ErrHTMLConversion
	ErrPageRender       = pipeline.ErrPageRender
	ErrDocumentNotFound = errors.New("document not found")
	ErrReadDocument     = errors.New("failed to read document")
	ErrWriteHTML        = errors.New("failed to write HTML file")

	// Dialect validation errors.
	ErrInvalidDialect = errors.New("invalid dialect")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
