package pipeline

import (
	"context"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPreprocessMarkdown - Source normalization
// ---------------------------------------------------------------------------

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty stays empty", "", ""},
		{"adds final newline", "## 1. PROJECT", "## 1. PROJECT\n"},
		{"collapses trailing blank lines", "text\n\n\n  \n", "text\n"},
		{"normalizes CRLF", "a\r\nb\r\n", "a\nb\n"},
		{"normalizes lone CR", "a\rb", "a\nb\n"},
		{"strips BOM", "\uFEFF## 1. PROJECT\n", "## 1. PROJECT\n"},
		{"keeps inner blank lines", "a\n\nb\n", "a\n\nb\n"},
	}

	p := &CommonMarkPreprocessor{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocessMarkdown_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	const input = "a\r\nb"
	if got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("PreprocessMarkdown() with cancelled context = %q, want input unchanged", got)
	}
}
