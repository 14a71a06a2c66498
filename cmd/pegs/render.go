package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/alnah/go-pegs"
	"github.com/alnah/go-pegs/internal/config"
	"github.com/alnah/go-pegs/internal/fileutil"
	"github.com/alnah/go-pegs/internal/hints"
	"github.com/alnah/go-pegs/internal/watch"
)

// runRender renders one document to HTML, then keeps re-rendering on change
// with --watch until interrupted.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes one input, got %d", ErrTooManyArgs, len(positional))
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)

	input, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	output := resolveOutputPath(input, flags.output, cfg)

	renderer, err := newRenderer(cfg, flags)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.verbose)
	err = renderOnce(ctx, renderer, input, output, flags, env)
	if !flags.watch {
		return err
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}

	return watchAndRender(ctx, renderer, cfg, flags, input, output, env, logger)
}

// mergeRenderFlags merges CLI flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	if flags.style != "" {
		cfg.Render.Style = flags.style
	}
	if flags.title != "" {
		cfg.Render.Title = flags.title
	}
	if flags.lang != "" {
		cfg.Render.Lang = flags.lang
	}
	if flags.toc {
		cfg.Render.TOC = true
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
}

// resolveInputPath returns the positional input, falling back to config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultFile != "" {
		return cfg.Input.DefaultFile, nil
	}
	return "", ErrNoInput
}

// resolveOutputPath returns the HTML output path.
// Priority: --output > output.defaultFile > input with .html extension.
func resolveOutputPath(input, flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.DefaultFile != "" {
		return cfg.Output.DefaultFile
	}
	return fileutil.ReplaceExt(input, ".html")
}

// newRenderer builds a renderer from the merged config.
func newRenderer(cfg *config.Config, flags *renderFlags) (*pegs.Renderer, error) {
	opts := []pegs.Option{
		pegs.WithStyle(cfg.Render.Style),
		pegs.WithAssetPath(cfg.Assets.BasePath),
	}
	if cfg.Render.Title != "" {
		opts = append(opts, pegs.WithTitle(cfg.Render.Title))
	}
	if cfg.Render.Lang != "" {
		opts = append(opts, pegs.WithLang(cfg.Render.Lang))
	}
	if cfg.Render.TOC {
		opts = append(opts, pegs.WithTOC(flags.tocTitle))
	}

	renderer, err := pegs.NewRenderer(opts...)
	if err != nil {
		if errors.Is(err, pegs.ErrStyleNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(pegs.Styles()))
		}
		return nil, err
	}
	return renderer, nil
}

// renderOnce renders input to output and reports the result.
func renderOnce(ctx context.Context, r *pegs.Renderer, input, output string, flags *renderFlags, env *Environment) error {
	start := env.Now()

	if _, err := r.RenderFile(ctx, input, output); err != nil {
		switch {
		case errors.Is(err, pegs.ErrDocumentNotFound):
			return fmt.Errorf("%w%s", err, hints.ForDocumentNotFound(input))
		case errors.Is(err, pegs.ErrWriteHTML):
			return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
		}
		return err
	}

	switch {
	case flags.common.quiet:
	case flags.common.verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", input, output, env.Now().Sub(start).Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

// watchAndRender re-renders whenever the input, or a style sheet given as a
// file path, changes. Returns nil on interrupt.
func watchAndRender(ctx context.Context, renderer *pegs.Renderer, cfg *config.Config, flags *renderFlags, input, output string, env *Environment, logger *slog.Logger) error {
	paths := []string{input}
	style := cfg.Render.Style
	if fileutil.IsFilePath(style) {
		paths = append(paths, style)
	}

	w, err := watch.New(paths, flags.debounce, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (press Ctrl+C to stop)\n", input)
	}

	styleAbs, _ := filepath.Abs(style)

	return w.Run(ctx, func(ctx context.Context, path string) {
		if fileutil.IsFilePath(style) && path == styleAbs {
			// Style sheets are read once per renderer.
			r, err := newRenderer(cfg, flags)
			if err != nil {
				fmt.Fprintf(env.Stderr, "error: %v\n", err)
				return
			}
			renderer = r
		}
		if err := renderOnce(ctx, renderer, input, output, flags, env); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
		}
	})
}
