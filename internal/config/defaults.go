package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/fbkclanna/gerritfetch/internal/change"
)

// Default values
const (
	DefaultLogLevel  = "debug"
	DefaultLogFormat = "auto"
	DefaultReport    = "none"
)

// DefaultAllowedHosts are the review hosts changes are accepted from.
var DefaultAllowedHosts = change.DefaultAllowedHosts

// LogFormats lists the accepted logging.format values.
var LogFormats = []string{"auto", "pretty", "json"}

// ReportFormats lists the accepted report values.
var ReportFormats = []string{"none", "text", "json", "yaml"}

var logLevels = []string{"trace", "debug", "info", "warn", "warning", "error"}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gerritfetch"
	}
	return filepath.Join(home, ".gerritfetch")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		AllowedHosts: slices.Clone(DefaultAllowedHosts),
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Report: DefaultReport,
	}
}
