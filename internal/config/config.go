package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pubsection/internal/fileutil"
	"github.com/alnah/go-pubsection/internal/pipeline"
	"github.com/alnah/go-pubsection/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxMarkerLength = 200  // an HTML comment, not a template
)

// Log levels and formats accepted in log.level and log.format.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Default file locations, relative to Root.
const (
	DefaultRoot       = "."
	DefaultDataPath   = "data/featured_publications.json"
	DefaultTargetPath = "index.html"
)

// configDirName is the subdirectory of os.UserConfigDir searched by name.
const configDirName = "pubsection"

// Config holds all configuration for a pubsection run.
type Config struct {
	Root    string        `yaml:"root"` // base for relative data and target paths
	Data    DataConfig    `yaml:"data"`
	Target  TargetConfig  `yaml:"target"`
	Markers MarkersConfig `yaml:"markers"`
	Log     LogConfig     `yaml:"log"`
}

// DataConfig locates the publications data file.
type DataConfig struct {
	Path string `yaml:"path"` // .json, .yaml or .yml
}

// TargetConfig locates the page holding the marked region.
type TargetConfig struct {
	Path string `yaml:"path"`
}

// MarkersConfig defines the sentinel comments around the generated region.
type MarkersConfig struct {
	Start           string `yaml:"start"`
	End             string `yaml:"end"`
	AllowDuplicates bool   `yaml:"allowDuplicates"` // patch the first region only
}

// LogConfig defines diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the layout of a standard academic site checkout.
func DefaultConfig() *Config {
	return &Config{
		Root:   DefaultRoot,
		Data:   DataConfig{Path: DefaultDataPath},
		Target: TargetConfig{Path: DefaultTargetPath},
		Markers: MarkersConfig{
			Start: pipeline.DefaultStartMarker,
			End:   pipeline.DefaultEndMarker,
		},
		Log: LogConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// DataPath returns the data file path resolved against Root.
func (c *Config) DataPath() string {
	return fileutil.ResolveUnder(c.Root, c.Data.Path)
}

// TargetPath returns the target document path resolved against Root.
func (c *Config) TargetPath() string {
	return fileutil.ResolveUnder(c.Root, c.Target.Path)
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for callers who build
// or merge a Config themselves.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"root", c.Root, MaxPathLength},
		{"data.path", c.Data.Path, MaxPathLength},
		{"target.path", c.Target.Path, MaxPathLength},
		{"markers.start", c.Markers.Start, MaxMarkerLength},
		{"markers.end", c.Markers.End, MaxMarkerLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Markers.Start != "" && c.Markers.Start == c.Markers.End {
		return fmt.Errorf("%w: markers.start and markers.end are identical (%q)", ErrInvalidValue, c.Markers.Start)
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
			// valid
		default:
			return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
		}
	}

	if c.Log.Format != "" {
		switch strings.ToLower(c.Log.Format) {
		case LogFormatText, LogFormatJSON:
			// valid
		default:
			return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file (or an empty file) take their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := fileutil.ReadBounded(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
		}
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills every empty field from DefaultConfig.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.Root, d.Root)
	fill(&c.Data.Path, d.Data.Path)
	fill(&c.Target.Path, d.Target.Path)
	fill(&c.Markers.Start, d.Markers.Start)
	fill(&c.Markers.End, d.Markers.End)
	fill(&c.Log.Level, d.Log.Level)
	fill(&c.Log.Format, d.Log.Format)
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries the current directory first, then the user config directory.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
