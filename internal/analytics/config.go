package analytics

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when an analytics configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid analytics config")

// Category labels used by the default performance ladder.
const (
	CategoryExcellent    = "excellent"
	CategoryGood         = "good"
	CategoryAverage      = "average"
	CategoryBelowAverage = "below-average"
)

// Threshold assigns Label to every total score of at least MinTotal.
type Threshold struct {
	Label    string `koanf:"label" yaml:"label"`
	MinTotal int    `koanf:"min_total" yaml:"min_total"`
}

// Config holds the tunable tables of the performance analyzer.
type Config struct {
	// Categories must be sorted by MinTotal, highest first, and end with a MinTotal of 0.
	Categories []Threshold `koanf:"categories"`

	// BalanceTolerance is the largest absolute difference still considered balanced.
	BalanceTolerance int `koanf:"balance_tolerance"`
}

// DefaultConfig returns the ladder used when no configuration file is supplied.
func DefaultConfig() Config {
	return Config{
		Categories: []Threshold{
			{Label: CategoryExcellent, MinTotal: 36},
			{Label: CategoryGood, MinTotal: 28},
			{Label: CategoryAverage, MinTotal: 20},
			{Label: CategoryBelowAverage, MinTotal: 0},
		},
		BalanceTolerance: 2,
	}
}

// Validate checks that the ladder is well formed.
func (c Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no performance categories", ErrInvalidConfig)
	}
	if c.BalanceTolerance < 0 {
		return fmt.Errorf("%w: balance tolerance must not be negative", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Categories))
	for i, t := range c.Categories {
		if t.Label == "" {
			return fmt.Errorf("%w: category %d has no label", ErrInvalidConfig, i)
		}
		if seen[t.Label] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidConfig, t.Label)
		}
		seen[t.Label] = true
		if i > 0 && t.MinTotal >= c.Categories[i-1].MinTotal {
			return fmt.Errorf("%w: category %q must have a lower min_total than %q", ErrInvalidConfig, t.Label, c.Categories[i-1].Label)
		}
	}
	if last := c.Categories[len(c.Categories)-1]; last.MinTotal != 0 {
		return fmt.Errorf("%w: lowest category %q must start at 0", ErrInvalidConfig, last.Label)
	}
	return nil
}

// Labels returns the category labels from best to worst.
func (c Config) Labels() []string {
	labels := make([]string, len(c.Categories))
	for i, t := range c.Categories {
		labels[i] = t.Label
	}
	return labels
}
