package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/hostgrep/pkg/filter"
	"github.com/ccollicutt/hostgrep/pkg/logger"
	"github.com/ccollicutt/hostgrep/pkg/webhook"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it is set, otherwise returns the validated
// default configuration with environment overrides applied.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return errors.New("sources: at least one hosts file is required")
	}

	for i, s := range cfg.Sources {
		if s == "" {
			return fmt.Errorf("sources[%d]: path must not be empty", i)
		}
	}

	switch cfg.Output {
	case "":
		cfg.Output = DefaultOutput
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("output: invalid format %q (must be text or json)", cfg.Output)
	}

	if err := validateSearch(&cfg.Search); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	switch cfg.Log.Format {
	case "", logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("log: invalid format %q (must be text or json)", cfg.Log.Format)
	}

	if cfg.Watch.Debounce < 0 {
		return errors.New("watch: debounce must not be negative")
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}

	if hook := cfg.Watch.Webhook; hook.URL != "" {
		if err := webhook.ValidateURL(hook.URL); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if hook.Timeout < 0 {
			return errors.New("watch: webhook timeout must not be negative")
		}
	}

	return nil
}

func validateSearch(s *SearchConfig) error {
	field, err := filter.ParseField(s.Field)
	if err != nil {
		return err
	}
	s.field = field
	return nil
}
