package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// utf8BOM is stripped so a leading "##" header is still seen as one.
const utf8BOM = "\uFEFF"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Trailing whitespace at end of document
	trailingSpace = regexp.MustCompile(`\s+\z`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, utf8BOM)
	content = normalizeLineEndings(content)
	content = ensureFinalNewline(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ensureFinalNewline replaces trailing whitespace with a single newline.
func ensureFinalNewline(content string) string {
	if content == "" {
		return content
	}
	return trailingSpace.ReplaceAllString(content, "") + "\n"
}
