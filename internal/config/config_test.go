package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Root != "." {
		t.Errorf("Root = %q, want %q", cfg.Root, ".")
	}
	if cfg.Data.Path != "data/featured_publications.json" {
		t.Errorf("Data.Path = %q, want data/featured_publications.json", cfg.Data.Path)
	}
	if cfg.Target.Path != "index.html" {
		t.Errorf("Target.Path = %q, want index.html", cfg.Target.Path)
	}
	if cfg.Markers.Start != "<!-- Publications start -->" || cfg.Markers.End != "<!-- Publications end -->" {
		t.Errorf("Markers = %+v, want the Publications pair", cfg.Markers)
	}
	if cfg.Markers.AllowDuplicates {
		t.Error("Markers.AllowDuplicates = true, want false")
	}
	if cfg.Log.Level != LogLevelInfo || cfg.Log.Format != LogFormatText {
		t.Errorf("Log = %+v, want info/text", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_ResolvedPaths(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "site", "index.html")

	tests := []struct {
		name       string
		cfg        Config
		wantData   string
		wantTarget string
	}{
		{
			name:       "relative under root",
			cfg:        Config{Root: "site", Data: DataConfig{Path: "data/p.json"}, Target: TargetConfig{Path: "index.html"}},
			wantData:   filepath.Join("site", "data", "p.json"),
			wantTarget: filepath.Join("site", "index.html"),
		},
		{
			name:       "absolute target ignores root",
			cfg:        Config{Root: "site", Data: DataConfig{Path: "p.json"}, Target: TargetConfig{Path: abs}},
			wantData:   filepath.Join("site", "p.json"),
			wantTarget: abs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cfg.DataPath(); got != tt.wantData {
				t.Errorf("DataPath() = %q, want %q", got, tt.wantData)
			}
			if got := tt.cfg.TargetPath(); got != tt.wantTarget {
				t.Errorf("TargetPath() = %q, want %q", got, tt.wantTarget)
			}
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value under limit is valid", "12345", 10, false},
		{"value over limit is invalid", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantErr   error
		wantField string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "empty log fields are valid",
			modify: func(c *Config) { c.Log = LogConfig{} },
		},
		{
			name:   "uppercase level is valid",
			modify: func(c *Config) { c.Log.Level = "DEBUG" },
		},
		{
			name:      "root too long",
			modify:    func(c *Config) { c.Root = strings.Repeat("a", MaxPathLength+1) },
			wantErr:   ErrFieldTooLong,
			wantField: "root",
		},
		{
			name:      "data path too long",
			modify:    func(c *Config) { c.Data.Path = strings.Repeat("a", MaxPathLength+1) },
			wantErr:   ErrFieldTooLong,
			wantField: "data.path",
		},
		{
			name:      "target path too long",
			modify:    func(c *Config) { c.Target.Path = strings.Repeat("a", MaxPathLength+1) },
			wantErr:   ErrFieldTooLong,
			wantField: "target.path",
		},
		{
			name:      "start marker too long",
			modify:    func(c *Config) { c.Markers.Start = strings.Repeat("x", MaxMarkerLength+1) },
			wantErr:   ErrFieldTooLong,
			wantField: "markers.start",
		},
		{
			name:      "end marker too long",
			modify:    func(c *Config) { c.Markers.End = strings.Repeat("x", MaxMarkerLength+1) },
			wantErr:   ErrFieldTooLong,
			wantField: "markers.end",
		},
		{
			name: "identical markers",
			modify: func(c *Config) {
				c.Markers.Start = "<!-- pubs -->"
				c.Markers.End = "<!-- pubs -->"
			},
			wantErr:   ErrInvalidValue,
			wantField: "markers.start",
		},
		{
			name:      "unknown log level",
			modify:    func(c *Config) { c.Log.Level = "trace" },
			wantErr:   ErrInvalidValue,
			wantField: "log.level",
		},
		{
			name:      "unknown log format",
			modify:    func(c *Config) { c.Log.Format = "xml" },
			wantErr:   ErrInvalidValue,
			wantField: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q should name %q", err, tt.wantField)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	writeConfig := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		return path
	}

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, "site.yaml", `root: ./public
data:
  path: data/pubs.yaml
target:
  path: about.html
markers:
  start: "<!-- pubs:start -->"
  end: "<!-- pubs:end -->"
  allowDuplicates: true
log:
  level: debug
  format: json
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Root != "./public" {
			t.Errorf("Root = %q, want ./public", cfg.Root)
		}
		if cfg.Data.Path != "data/pubs.yaml" || cfg.Target.Path != "about.html" {
			t.Errorf("paths = %q, %q", cfg.Data.Path, cfg.Target.Path)
		}
		if cfg.Markers.Start != "<!-- pubs:start -->" || cfg.Markers.End != "<!-- pubs:end -->" {
			t.Errorf("Markers = %+v", cfg.Markers)
		}
		if !cfg.Markers.AllowDuplicates {
			t.Error("Markers.AllowDuplicates = false, want true")
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v, want debug/json", cfg.Log)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, "partial.yaml", "target:\n  path: publications.html\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Target.Path != "publications.html" {
			t.Errorf("Target.Path = %q, want publications.html", cfg.Target.Path)
		}
		def := DefaultConfig()
		if cfg.Root != def.Root || cfg.Data.Path != def.Data.Path || cfg.Markers != def.Markers || cfg.Log != def.Log {
			t.Errorf("unset fields lost their defaults: %+v", cfg)
		}
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		path := writeConfig(t, "empty.yaml", "\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if *cfg != *DefaultConfig() {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "invalid.yaml", "root: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, "unknown.yaml", "output:\n  dir: public\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, "bad.yaml", "log:\n  level: loud\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("directory path is not a config", func(t *testing.T) {
		dir := t.TempDir() + string(filepath.Separator)

		_, err := LoadConfig(dir)
		if err == nil {
			t.Error("LoadConfig(dir) should fail")
		}
	})
}

// LoadConfig by name reads from the working directory, so these subtests
// chdir and cannot run in parallel.
func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("finds .yaml in current directory", func(t *testing.T) {
		if err := os.WriteFile("site.yaml", []byte("target:\n  path: a.html\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Remove("site.yaml") })

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Target.Path != "a.html" {
			t.Errorf("Target.Path = %q, want a.html", cfg.Target.Path)
		}
	})

	t.Run("falls back to .yml", func(t *testing.T) {
		if err := os.WriteFile("other.yml", []byte("target:\n  path: b.html\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Remove("other.yml") })

		cfg, err := LoadConfig("other")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Target.Path != "b.html" {
			t.Errorf("Target.Path = %q, want b.html", cfg.Target.Path)
		}
	})

	t.Run("missing name lists tried paths", func(t *testing.T) {
		_, err := LoadConfig("does-not-exist-7f3a")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "does-not-exist-7f3a.yaml") || !strings.Contains(err.Error(), "does-not-exist-7f3a.yml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("site")

	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("local candidates = %v, want site.yaml then site.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join("pubsection", "site.")) {
			t.Errorf("user candidate %q not under pubsection/", p)
		}
	}
}
