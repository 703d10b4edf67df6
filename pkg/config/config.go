// Package config loads formatter configuration from YAML or JSON
// files for hosts that configure the formatter from disk.
package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/kkm-horikawa/sqlpretty/pkg/formatter"
	"github.com/kkm-horikawa/sqlpretty/pkg/guard"
)

// Config is the on-disk formatter configuration. Zero values for
// MaxLength and MaxTokens mean "no limit": limits are only ever
// disabled explicitly.
type Config struct {
	// MaxLength is the byte threshold above which formatting
	// degrades.
	MaxLength int `yaml:"maxLength" json:"maxLength"`

	// MaxTokens is the token-count threshold.
	MaxTokens int `yaml:"maxTokens" json:"maxTokens"`

	// PreviewLength is the number of bytes shown in a degraded
	// preview.
	PreviewLength int `yaml:"previewLength" json:"previewLength"`

	// CacheCapacity is the maximum number of memoized results.
	CacheCapacity int `yaml:"cacheCapacity" json:"cacheCapacity"`

	// Simplify collapses select-column lists by default.
	Simplify bool `yaml:"simplify" json:"simplify"`

	// HTML renders for an HTML display context by default.
	HTML bool `yaml:"html" json:"html"`
}

// Default returns the stock configuration.
func Default() *Config {
	limits := guard.DefaultLimits()
	return &Config{
		MaxLength:     limits.MaxLength,
		MaxTokens:     limits.MaxTokens,
		PreviewLength: limits.PreviewLength,
		CacheCapacity: formatter.DefaultCacheCapacity,
		HTML:          true,
	}
}

// LoadFromFile loads configuration from a YAML or JSON file. Fields
// absent from the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", filename)
	}

	config := Default()

	// Try YAML first, then JSON.
	if yerr := yaml.Unmarshal(data, config); yerr != nil {
		slog.Debug("yaml unmarshal failed, trying json", "error", yerr)
		if jerr := json.Unmarshal(data, config); jerr != nil {
			return nil, errors.Wrapf(yerr, "failed to parse config file %s", filename)
		}
	}

	slog.Debug("loaded config",
		"maxLength", config.MaxLength,
		"maxTokens", config.MaxTokens,
		"cacheCapacity", config.CacheCapacity,
	)
	return config, nil
}

// Limits converts the configuration to guard limits.
func (c *Config) Limits() guard.Limits {
	return guard.Limits{
		MaxLength:     c.MaxLength,
		MaxTokens:     c.MaxTokens,
		PreviewLength: c.PreviewLength,
	}
}

// Options returns the default per-call options the configuration
// selects.
func (c *Config) Options() formatter.Options {
	return formatter.Options{
		Simplify: c.Simplify,
		HTML:     c.HTML,
	}
}

// NewFormatter builds a Formatter from the configuration.
func (c *Config) NewFormatter() *formatter.Formatter {
	return formatter.New(
		formatter.WithLimits(c.Limits()),
		formatter.WithCacheCapacity(c.CacheCapacity),
	)
}
