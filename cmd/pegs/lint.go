package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-pegs"
	"github.com/alnah/go-pegs/internal/config"
	"github.com/alnah/go-pegs/internal/hints"
)

// Sentinel errors for the lint command.
var (
	ErrLintFailed    = errors.New("lint failed")
	ErrInvalidFormat = errors.New("invalid output format")
)

// lintResult holds the outcome of linting a single file.
type lintResult struct {
	Path     string
	Report   *pegs.Report
	Err      error
	Duration time.Duration
}

// passed reports whether the file was read and every check passed.
func (r lintResult) passed() bool {
	return r.Err == nil && r.Report != nil && r.Report.Passed()
}

// runLint lints every discovered document and prints the report.
// Returns ErrLintFailed when a document has violations, or the first read
// error when a document could not be read.
func runLint(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseLintFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeLintEnv(flags, envCfg)
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.format != formatText && flags.format != formatJSON {
		return fmt.Errorf("%w: %q (use text or json)", ErrInvalidFormat, flags.format)
	}

	validator, err := pegs.NewValidator(dialectFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForInvalidDialect())
	}

	if len(positional) == 0 && cfg.Input.DefaultFile != "" {
		positional = []string{cfg.Input.DefaultFile}
	}
	files, err := discoverFiles(positional)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.verbose)
	workers := resolvePoolSize(flags.workers)
	logger.Debug("linting", "files", len(files), "workers", workers, "dialect", cfg.Dialect.Name)

	results := lintBatch(ctx, validator, files, workers, env.Now)

	if flags.format == formatJSON {
		if err := writeJSONReport(env.Stdout, results); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	} else {
		newTextPrinter(env, flags).print(results)
	}

	var readErrs []error
	for _, r := range results {
		if r.Err != nil {
			readErrs = append(readErrs, r.Err)
		}
	}
	if len(readErrs) > 0 {
		return fmt.Errorf("%d of %d document(s) could not be linted: %w", len(readErrs), len(results), readErrs[0])
	}
	for _, r := range results {
		if !r.passed() {
			if flags.format == formatText {
				if hint := hints.ForLintFailure(); hint != "" {
					fmt.Fprintln(env.Stderr, strings.TrimPrefix(hint, "\n"))
				}
			}
			return ErrLintFailed
		}
	}
	return nil
}

// mergeLintEnv applies environment defaults to flags left unset.
func mergeLintEnv(flags *lintFlags, env *envConfig) {
	if flags.format == "" {
		flags.format = env.Format
	}
	if flags.format == "" {
		flags.format = formatText
	}
	if flags.workers == 0 {
		flags.workers = env.Workers
	}
}

// dialectFromConfig builds the validator dialect from configuration.
func dialectFromConfig(cfg *config.Config) pegs.Dialect {
	return pegs.Dialect{
		Name:         cfg.Dialect.Name,
		Sections:     cfg.Dialect.Sections,
		Placeholders: cfg.Dialect.Placeholders,
		Keyword:      cfg.Dialect.Keyword,
	}
}

// lintBatch lints files concurrently. The validator is shared by all workers.
// Results keep the order of files.
func lintBatch(ctx context.Context, v *pegs.Validator, files []string, workers int, now func() time.Time) []lintResult {
	results := make([]lintResult, len(files))
	runPool(ctx, len(files), workers,
		func(i int) {
			results[i] = lintFile(v, files[i], now)
		},
		func(i int) {
			results[i] = lintResult{Path: files[i], Err: ctx.Err()}
		},
	)
	return results
}

// lintFile reads and lints a single file.
func lintFile(v *pegs.Validator, path string, now func() time.Time) lintResult {
	start := now()
	result := lintResult{Path: path}

	content, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		if os.IsNotExist(err) {
			result.Err = fmt.Errorf("%w: %s", pegs.ErrDocumentNotFound, path)
		} else {
			result.Err = fmt.Errorf("%w: %v", pegs.ErrReadDocument, err)
		}
		result.Duration = now().Sub(start)
		return result
	}

	result.Report = v.Lint(string(content))
	result.Duration = now().Sub(start)
	return result
}
