package main

import (
	"errors"
	"os"

	"github.com/alnah/go-pegs"
	"github.com/alnah/go-pegs/internal/config"
)

// Exit codes for the pegs CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command succeeded, documents passed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config or dialect
	ExitIO      = 3 // File not found, permission denied
	ExitLint    = 4 // At least one document has violations
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrLintFailed) {
		return ExitLint
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pegs.ErrDocumentNotFound) ||
		errors.Is(err, pegs.ErrReadDocument) ||
		errors.Is(err, pegs.ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMatch) ||
		errors.Is(err, ErrWriteConfig) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, pegs.ErrEmptyMarkdown) ||
		errors.Is(err, pegs.ErrInvalidDialect) ||
		errors.Is(err, pegs.ErrStyleNotFound) ||
		errors.Is(err, pegs.ErrTemplateNotFound) ||
		errors.Is(err, pegs.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
