// Package config provides configuration structures for the ddlplan CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TFMV/ddlplan/pkg/plan"
)

// Config represents the CLI configuration.
type Config struct {
	// Compiler settings
	ScratchDir   string `yaml:"scratch_dir" json:"scratch_dir"`
	ExplainLevel string `yaml:"explain_level" json:"explain_level"`

	LogLevel string `yaml:"log_level" json:"log_level"`

	// Metrics configuration
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// MetricsConfig represents metrics configuration. Metrics are collected
// for the run and flushed on exit to a Pushgateway, a textfile, or both.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	PushURL  string `yaml:"push_url" json:"push_url"`
	Job      string `yaml:"job" json:"job"`
	TextFile string `yaml:"textfile" json:"textfile"`
}

// Validate validates the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.ScratchDir == "" {
		c.ScratchDir = filepath.Join(os.TempDir(), "ddlplan")
	}

	if _, err := plan.ParseLevel(c.ExplainLevel); err != nil {
		return fmt.Errorf("invalid explain level %q: %w", c.ExplainLevel, err)
	}
	if c.ExplainLevel == "" {
		c.ExplainLevel = plan.LevelDefault.String()
	}

	switch c.LogLevel {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", c.LogLevel)
	}

	if c.Metrics.Enabled {
		if c.Metrics.PushURL == "" && c.Metrics.TextFile == "" {
			return fmt.Errorf("metrics push URL or textfile is required when metrics are enabled")
		}
		if c.Metrics.Job == "" {
			c.Metrics.Job = "ddlplan"
		}
	}

	return nil
}
