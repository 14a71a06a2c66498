package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pegs/internal/watch"
)

// Sentinel errors for argument parsing.
var (
	ErrInvalidFlags = errors.New("invalid flags")
	ErrTooManyArgs  = errors.New("too many arguments")
)

// Output formats for the lint command.
const (
	formatText = "text"
	formatJSON = "json"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// lintFlags holds all flags for the lint command.
type lintFlags struct {
	common  commonFlags
	format  string
	workers int
	noColor bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	output    string
	style     string
	title     string
	lang      string
	assetPath string
	toc       bool
	tocTitle  string
	watch     bool
	debounce  time.Duration
}

// initFlags holds all flags for the init command.
type initFlags struct {
	common commonFlags
	force  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors and failures")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// parseFlagSet parses args, silencing pflag's own error output so the
// caller reports the error once. --help prints usage (pflag calls fs.Usage)
// and returns flag.ErrHelp unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string, usage func(io.Writer), stderr io.Writer) error {
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	return nil
}

// parseLintFlags parses lint command flags and returns positional args.
func parseLintFlags(args []string, stderr io.Writer) (*lintFlags, []string, error) {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	f := &lintFlags{}

	fs.StringVarP(&f.format, "format", "f", "", "output format: text, json")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args, printLintUsage, stderr); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file")
	fs.StringVar(&f.style, "style", "", "style name, CSS file path, or inline CSS")
	fs.StringVar(&f.title, "title", "", "page title")
	fs.StringVar(&f.lang, "lang", "", "page language (e.g. en, fr-CA)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.toc, "toc", false, "add a table of contents")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
	fs.BoolVar(&f.watch, "watch", false, "re-render when the input changes")
	fs.DurationVar(&f.debounce, "debounce", watch.DefaultDebounce, "quiet period before re-rendering")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args, printRenderUsage, stderr); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, stderr io.Writer) (*initFlags, []string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	f := &initFlags{}

	fs.BoolVar(&f.force, "force", false, "overwrite an existing file")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args, printInitUsage, stderr); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
