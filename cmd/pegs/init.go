package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-pegs/internal/config"
	"github.com/alnah/go-pegs/internal/fileutil"
)

// Sentinel errors for the init command.
var (
	ErrConfigExists = errors.New("config file already exists")
	ErrWriteConfig  = errors.New("failed to write config file")
)

// configPermissions is rw-r--r--: configs are meant to be committed and shared.
const configPermissions = 0o644

// runInit writes the default configuration, refusing to overwrite unless --force.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: init takes one path, got %d", ErrTooManyArgs, len(positional))
	}

	path := config.DefaultName + ".yaml"
	if len(positional) == 1 {
		path = positional[0]
	}

	if fileutil.FileExists(path) && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := config.DefaultConfig().Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, configPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteConfig, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
	return nil
}
