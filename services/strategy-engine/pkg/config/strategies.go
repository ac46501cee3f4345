package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultLookback = 5 * time.Minute
	defaultQuantity = 1.0
)

// StrategyFile is the YAML document listing the strategies to run.
type StrategyFile struct {
	Strategies []StrategyDefinition `yaml:"strategies"`
}

// StrategyDefinition configures one strategy instance. Which parameters apply depends on Type.
type StrategyDefinition struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Enabled  *bool    `yaml:"enabled"`
	Symbols  []string `yaml:"symbols"`
	Lookback string   `yaml:"lookback"`
	Quantity float64  `yaml:"quantity"`

	// momentum
	Threshold   float64 `yaml:"threshold"`
	MinNotional float64 `yaml:"min_notional"`

	// sma_crossover
	FastPeriod int `yaml:"fast_period"`
	SlowPeriod int `yaml:"slow_period"`

	// arbitrage
	Markets []string `yaml:"markets"`
	MinEdge float64  `yaml:"min_edge"`
}

// IsEnabled defaults to true when the flag is omitted.
func (d StrategyDefinition) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// LookbackDuration parses Lookback.
func (d StrategyDefinition) LookbackDuration() (time.Duration, error) {
	if d.Lookback == "" {
		return defaultLookback, nil
	}
	lookback, err := time.ParseDuration(d.Lookback)
	if err != nil || lookback <= 0 {
		return 0, errors.NewErrorDetails(fmt.Sprintf("strategy %q has invalid lookback %q", d.Name, d.Lookback), string(errors.ErrInvalidStrategyConfig), "lookback")
	}
	return lookback, nil
}

// LoadStrategies reads and validates the strategies file at path.
func LoadStrategies(path string) ([]StrategyDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewTracer("failed to read strategies file " + path).Wrap(err)
	}
	return ParseStrategies(data)
}

// ParseStrategies decodes a strategies document, applies defaults and drops disabled
// entries. The order of the document is kept.
func ParseStrategies(data []byte) ([]StrategyDefinition, error) {
	var file StrategyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewTracer("failed to decode strategies file").Wrap(err)
	}

	seen := make(map[string]bool)
	out := make([]StrategyDefinition, 0, len(file.Strategies))
	for i, def := range file.Strategies {
		def.Name = strings.TrimSpace(def.Name)
		def.Type = strings.TrimSpace(def.Type)
		if def.Name == "" {
			return nil, errors.NewErrorDetails(fmt.Sprintf("strategy #%d has no name", i+1), string(errors.ErrInvalidStrategyConfig), "name")
		}
		if seen[def.Name] {
			return nil, errors.NewErrorDetails(fmt.Sprintf("strategy %q is defined twice", def.Name), string(errors.ErrInvalidStrategyConfig), "name")
		}
		seen[def.Name] = true

		if def.Quantity == 0 {
			def.Quantity = defaultQuantity
		}
		if def.Quantity < 0 {
			return nil, errors.NewErrorDetails(fmt.Sprintf("strategy %q has negative quantity", def.Name), string(errors.ErrInvalidStrategyConfig), "quantity")
		}
		if _, err := def.LookbackDuration(); err != nil {
			return nil, err
		}

		if def.IsEnabled() {
			out = append(out, def)
		}
	}
	return out, nil
}
