package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Sentinel errors for input discovery.
var (
	ErrNoInput = errors.New("no input specified")
	ErrNoMatch = errors.New("no markdown files match")
)

// markdownPattern selects documents inside a directory argument.
const markdownPattern = "**/*.{md,markdown}"

// discoverFiles expands lint arguments into document paths.
// Globs (with ** support) and directories are expanded; plain file paths are
// kept even when missing so the lint result reports them. Duplicates are
// dropped, first occurrence wins.
func discoverFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var files []string
	seen := map[string]bool{}
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		if isGlob(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expanding %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoMatch, arg)
			}
			slices.Sort(matches)
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			add(arg)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(arg), markdownPattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, arg)
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(filepath.Join(arg, filepath.FromSlash(m)))
		}
	}
	return files, nil
}

// isGlob reports whether arg contains glob metacharacters.
func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}
