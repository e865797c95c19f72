// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tsawler/reportdoc/internal/assets"
)

const (
	// AppName is used for the config directory and the log file name.
	AppName = "reportdoc"

	// EnvPrefix prefixes every environment variable override.
	EnvPrefix = "REPORTDOC_"

	// EnvConfigFile names an explicit config file.
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Default configuration values.
const (
	// DefaultFont is the default paragraph font family.
	DefaultFont = "Arial"

	// DefaultFontSize is the default paragraph font size in points.
	DefaultFontSize = 11.0

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 10

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	Report   ReportConfig   `koanf:"report"   validate:"required"`
	Style    StyleConfig    `koanf:"style"    validate:"required"`
	Document DocumentConfig `koanf:"document"`
	Log      LogConfig      `koanf:"log"      validate:"required"`
}

// ReportConfig selects the report text and where the document goes.
type ReportConfig struct {
	Source    string `koanf:"source"`
	Encoding  string `koanf:"encoding"  validate:"required,encoding"`
	Output    string `koanf:"output"    validate:"required"`
	Overwrite bool   `koanf:"overwrite"`
}

// StyleConfig contains the default paragraph style.
type StyleConfig struct {
	Font string  `koanf:"font" validate:"required,max=128"`
	Size float64 `koanf:"size" validate:"required,min=0.5,max=1638"`
}

// DocumentConfig contains core document properties.
type DocumentConfig struct {
	Title   string `koanf:"title"`
	Author  string `koanf:"author"`
	Subject string `koanf:"subject"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"     validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"size"     validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"backups"  validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"age"      validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// DefaultOutputPath is where the report is written unless configured.
func DefaultOutputPath() string {
	dir := xdg.UserDirs.Documents
	if dir == "" {
		dir = xdg.Home
	}
	return filepath.Join(dir, assets.ReportName)
}

// DefaultConfigFile is the config file read when no explicit file is named.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultLogFile is the rolling log file location.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"report.source":    "",
		"report.encoding":  "utf-8",
		"report.output":    DefaultOutputPath(),
		"report.overwrite": true,

		"style.font": DefaultFont,
		"style.size": DefaultFontSize,

		"document.title":   "",
		"document.author":  "",
		"document.subject": "",

		"log.level":         "info",
		"log.format":        "pretty",
		"log.file.enabled":  false,
		"log.file.path":     DefaultLogFile(),
		"log.file.size":     DefaultLogFileMaxSizeMB,
		"log.file.backups":  DefaultLogFileMaxBackups,
		"log.file.age":      DefaultLogFileMaxAgeDays,
		"log.file.compress": true,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (REPORTDOC_ prefix)
//  2. The config file at path, which must exist when path is set
//  3. $XDG_CONFIG_HOME/reportdoc/config.yaml, if present
//  4. Default values
func Load(path string) (*Config, error) {
	return load(path, DefaultConfigFile())
}

func load(path, defaultFile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load the per-user config file if it exists
	err = loadFileIfExists(k, defaultFile)
	if err != nil {
		return nil, fmt.Errorf("loading config %q: %w", defaultFile, err)
	}

	// 3. Load the explicit config file
	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		if err != nil {
			return nil, fmt.Errorf("loading config %q: %w", path, err)
		}
	}

	// 4. Load environment variables with REPORTDOC_ prefix
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"_",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
