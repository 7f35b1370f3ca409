package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mauv0809/rally-stats/internal/analytics"
)

// ErrLoadAnalytics wraps any failure to read or validate the analytics tables.
var ErrLoadAnalytics = errors.New("load analytics config failed")

// LoadAnalytics builds the analytics configuration by layering, lowest precedence first:
//  1. analytics.DefaultConfig()
//  2. the YAML file at path, if path is not empty
//  3. ANALYTICS_* environment variables (e.g. ANALYTICS_BALANCE_TOLERANCE)
func LoadAnalytics(path string) (analytics.Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return analytics.Config{}, fmt.Errorf("%w: %s: %w", ErrLoadAnalytics, path, err)
		}
		log.Info("Loaded analytics config file", "path", path)
	}

	envProvider := env.Provider("ANALYTICS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ANALYTICS_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return analytics.Config{}, fmt.Errorf("%w: %w", ErrLoadAnalytics, err)
	}

	var cfg analytics.Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return analytics.Config{}, fmt.Errorf("%w: %w", ErrLoadAnalytics, err)
	}

	// Defaults are applied per key so a shorter ladder in the file replaces the default one entirely.
	defaults := analytics.DefaultConfig()
	if !k.Exists("categories") {
		cfg.Categories = defaults.Categories
	}
	if !k.Exists("balance_tolerance") {
		cfg.BalanceTolerance = defaults.BalanceTolerance
	}

	if err := cfg.Validate(); err != nil {
		return analytics.Config{}, fmt.Errorf("%w: %w", ErrLoadAnalytics, err)
	}
	return cfg, nil
}
