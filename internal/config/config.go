package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidConfig indicates a configuration value outside its accepted set.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	AllowedHosts []string      `mapstructure:"allowed_hosts" yaml:"allowed_hosts"`
	Logging      LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Strict       bool          `mapstructure:"strict" yaml:"strict"`
	DryRun       bool          `mapstructure:"dry_run" yaml:"dry_run"`
	Report       string        `mapstructure:"report" yaml:"report"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate normalizes the configuration and rejects unknown values.
func (c *Config) Validate() error {
	hosts := make([]string, 0, len(c.AllowedHosts))
	for _, h := range c.AllowedHosts {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	c.AllowedHosts = hosts
	if len(c.AllowedHosts) == 0 {
		c.AllowedHosts = slices.Clone(DefaultAllowedHosts)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if !slices.Contains(LogFormats, c.Logging.Format) {
		return fmt.Errorf("%w: logging.format %q (must be one of %s)", ErrInvalidConfig, c.Logging.Format, strings.Join(LogFormats, ", "))
	}
	if c.Report == "" {
		c.Report = DefaultReport
	}
	if !slices.Contains(ReportFormats, c.Report) {
		return fmt.Errorf("%w: report %q (must be one of %s)", ErrInvalidConfig, c.Report, strings.Join(ReportFormats, ", "))
	}
	return nil
}
