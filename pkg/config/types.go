// Package config provides configuration loading and validation for hostgrep.
package config

import (
	"time"

	"github.com/ccollicutt/hostgrep/pkg/filter"
	"github.com/ccollicutt/hostgrep/pkg/logger"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Sources lists hosts files to read. Entries may be glob patterns.
	Sources []string `yaml:"sources"`

	// Output is the report format (text, json).
	Output string `yaml:"output,omitempty"`

	Search SearchConfig     `yaml:"search,omitempty"`
	Watch  WatchConfig      `yaml:"watch,omitempty"`
	Log    logger.LogConfig `yaml:"log,omitempty"`
}

// SearchConfig holds defaults for the search and watch commands.
type SearchConfig struct {
	// Field is the line field patterns are matched against.
	// One of any, ip, hosts, comment. Defaults to any.
	Field string `yaml:"field,omitempty"`

	// Regexp treats patterns as regular expressions.
	Regexp bool `yaml:"regexp,omitempty"`

	// All includes blank and comment lines in results.
	All bool `yaml:"all,omitempty"`

	field filter.Field
}

// FieldEnum returns the validated search field.
func (s *SearchConfig) FieldEnum() filter.Field {
	if s.field == "" {
		return filter.FieldAny
	}
	return s.field
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	// Debounce is how long sources must be quiet before they are re-read.
	Debounce time.Duration `yaml:"debounce,omitempty"`

	// Webhook receives a JSON event after every search when URL is set.
	Webhook WebhookConfig `yaml:"webhook,omitempty"`
}

// WebhookConfig configures change notifications.
type WebhookConfig struct {
	URL     string        `yaml:"url,omitempty"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
