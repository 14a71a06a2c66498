// Package config loads the YAML configuration shared by the pegs commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-pegs"
	"github.com/alnah/go-pegs/internal/assets"
	"github.com/alnah/go-pegs/internal/fileutil"
	"github.com/alnah/go-pegs/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when --config is not given.
const DefaultName = "pegs"

// userConfigSubdir is the directory under os.UserConfigDir searched for configs.
const userConfigSubdir = "go-pegs"

// Field length limits.
const (
	MaxDialectNameLength = 50
	MaxSectionLength     = 50
	MaxSections          = 26 // one per category letter
	MaxPlaceholderLength = 50
	MaxPlaceholders      = 100
	MaxKeywordLength     = 50
	MaxTitleLength       = 200
	MaxLangLength        = 35 // BCP 47 practical limit
	MaxPathLength        = 4096
)

var langPattern = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z0-9]{1,8})*$`)

// Config holds all configuration for linting and rendering.
type Config struct {
	Dialect DialectConfig `yaml:"dialect"`
	Render  RenderConfig  `yaml:"render"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// DialectConfig defines the section vocabulary and content rules.
type DialectConfig struct {
	Name         string   `yaml:"name"`
	Sections     []string `yaml:"sections"`     // Canonical order
	Placeholders []string `yaml:"placeholders"` // Empty = check disabled
	Keyword      string   `yaml:"keyword"`      // Empty = check disabled
}

// RenderConfig defines HTML page options.
type RenderConfig struct {
	Title string `yaml:"title"`
	Style string `yaml:"style"` // Style name, CSS file path, or inline CSS
	Lang  string `yaml:"lang"`
	TOC   bool   `yaml:"toc"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultFile string `yaml:"defaultFile"` // Used when no argument is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultFile string `yaml:"defaultFile"` // Empty = input with .html extension
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultInputFile is the document read when no input is given.
const DefaultInputFile = "REQUIREMENTS.md"

// DefaultConfig returns the PEGS configuration, built from the library
// defaults.
func DefaultConfig() *Config {
	d := pegs.DefaultDialect()
	return &Config{
		Dialect: DialectConfig{
			Name:         d.Name,
			Sections:     d.Sections,
			Placeholders: d.Placeholders,
			Keyword:      d.Keyword,
		},
		Render: RenderConfig{
			Title: pegs.DefaultTitle,
			Style: assets.DefaultStyleName,
			Lang:  pegs.DefaultLang,
		},
		Input: InputConfig{DefaultFile: DefaultInputFile},
	}
}

// Validate checks field lengths and formats.
// Called automatically by LoadConfig, but available for configs built in
// code. Dialect semantics (name syntax, duplicates) are checked when the
// validator is built.
func (c *Config) Validate() error {
	if err := validateFieldLength("dialect.name", c.Dialect.Name, MaxDialectNameLength); err != nil {
		return err
	}
	if len(c.Dialect.Sections) > MaxSections {
		return fmt.Errorf("%w: dialect.sections (%d entries, max %d)", ErrFieldTooLong, len(c.Dialect.Sections), MaxSections)
	}
	for i, s := range c.Dialect.Sections {
		if err := validateFieldLength(fmt.Sprintf("dialect.sections[%d]", i), s, MaxSectionLength); err != nil {
			return err
		}
	}
	if len(c.Dialect.Placeholders) > MaxPlaceholders {
		return fmt.Errorf("%w: dialect.placeholders (%d entries, max %d)", ErrFieldTooLong, len(c.Dialect.Placeholders), MaxPlaceholders)
	}
	for i, p := range c.Dialect.Placeholders {
		if err := validateFieldLength(fmt.Sprintf("dialect.placeholders[%d]", i), p, MaxPlaceholderLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("dialect.keyword", c.Dialect.Keyword, MaxKeywordLength); err != nil {
		return err
	}

	if err := validateFieldLength("render.title", c.Render.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.lang", c.Render.Lang, MaxLangLength); err != nil {
		return err
	}
	if c.Render.Lang != "" && !langPattern.MatchString(c.Render.Lang) {
		return fmt.Errorf("%w: render.lang %q is not a language tag", ErrInvalidField, c.Render.Lang)
	}

	if err := validateFieldLength("input.defaultFile", c.Input.DefaultFile, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultFile", c.Output.DefaultFile, MaxPathLength); err != nil {
		return err
	}
	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Marshal encodes the configuration as a commented YAML document.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.MarshalWithHeader(
		"go-pegs configuration\n\nEmpty dialect.placeholders or dialect.keyword disable that check.",
		c,
	)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the files tried, in order, when resolving a config
// name: the current directory first, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigSubdir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
