package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-pubsection/internal/config"
	"github.com/alnah/go-pubsection/internal/fileutil"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "PUBSECTION_"

// dotEnvFile is loaded from the working directory before anything else.
const dotEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // PUBSECTION_CONFIG: config file name or path
	Root       string // PUBSECTION_ROOT: site root
	Data       string // PUBSECTION_DATA: data file
	Target     string // PUBSECTION_TARGET: target document
}

// knownEnvVars lists valid PUBSECTION_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PUBSECTION_CONFIG": true,
	"PUBSECTION_ROOT":   true,
	"PUBSECTION_DATA":   true,
	"PUBSECTION_TARGET": true,
}

// loadDotEnv loads path into the process environment when it exists.
// Variables already set in the environment win over the file.
func loadDotEnv(path string) error {
	if !fileutil.FileExists(path) {
		return nil
	}
	return godotenv.Load(path)
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("PUBSECTION_CONFIG"),
		Root:       os.Getenv("PUBSECTION_ROOT"),
		Data:       os.Getenv("PUBSECTION_DATA"),
		Target:     os.Getenv("PUBSECTION_TARGET"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized PUBSECTION_* variables.
// Helps catch typos like PUBSECTION_TRAGET.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A set variable replaces the config file value; CLI flags are applied
// afterwards by mergeFlags.
// This ensures: CLI flags > env vars > config file > defaults
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Root != "" {
		cfg.Root = env.Root
	}
	if env.Data != "" {
		cfg.Data.Path = env.Data
	}
	if env.Target != "" {
		cfg.Target.Path = env.Target
	}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.paths.root != "" {
		cfg.Root = flags.paths.root
	}
	if flags.paths.data != "" {
		cfg.Data.Path = flags.paths.data
	}
	if flags.paths.target != "" {
		cfg.Target.Path = flags.paths.target
	}
	if flags.markers.start != "" {
		cfg.Markers.Start = flags.markers.start
	}
	if flags.markers.end != "" {
		cfg.Markers.End = flags.markers.end
	}
	if flags.markers.allowDuplicates {
		cfg.Markers.AllowDuplicates = true
	}
}

// resolveConfig builds the effective configuration:
// defaults, then the config file, then env vars, then CLI flags.
// The config file comes from --config, else PUBSECTION_CONFIG; without
// either, defaults are used.
func resolveConfig(flags *cliFlags, env *envConfig) (*config.Config, string, error) {
	name := flags.common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, name, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, name, err
	}
	return cfg, name, nil
}
