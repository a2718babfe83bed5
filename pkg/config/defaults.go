package config

import (
	"os"
	"strings"
	"time"

	"github.com/ccollicutt/hostgrep/pkg/hostsfile"
)

// Default values for configuration.
const (
	DefaultOutput   = OutputText
	DefaultDebounce = 500 * time.Millisecond
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Environment variable names.
const (
	EnvSources      = "HOSTGREP_SOURCES"
	EnvOutput       = "HOSTGREP_OUTPUT"
	EnvWebhookToken = "HOSTGREP_WEBHOOK_TOKEN"
)

// DefaultConfig returns a configuration that reads the system hosts file.
func DefaultConfig() *Config {
	return &Config{
		Sources: []string{hostsfile.DefaultPath},
		Output:  DefaultOutput,
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sources := os.Getenv(EnvSources); sources != "" {
		var list []string
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		if len(list) > 0 {
			c.Sources = list
		}
	}

	if output := os.Getenv(EnvOutput); output != "" {
		c.Output = output
	}

	if token := os.Getenv(EnvWebhookToken); token != "" {
		c.Watch.Webhook.Token = token
	}
}
