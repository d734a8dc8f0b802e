package production

import (
	"errors"
	"fmt"
	"io"

	"github.com/comalice/desim/simtime"
	"gopkg.in/yaml.v3"
)

// ScenarioConfig is the YAML-serializable shape of a Run invocation's
// lifecycle parameters, for hosts that externalize warm-up length, snap
// length, and snap count rather than hard-coding them.
type ScenarioConfig struct {
	WarmUpTicks int64 `yaml:"warmUpTicks"`
	SnapTicks   int64 `yaml:"snapTicks"`
	NumSnaps    int   `yaml:"numSnaps"`
}

// ErrInvalidScenario is wrapped by the error LoadScenarioConfig returns when
// validation fails.
var ErrInvalidScenario = errors.New("production: invalid scenario config")

// LoadScenarioConfig parses and validates a ScenarioConfig from r: unmarshal,
// then check invariants the zero value would otherwise silently satisfy.
func LoadScenarioConfig(r io.Reader) (ScenarioConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ScenarioConfig{}, fmt.Errorf("production: read scenario config: %w", err)
	}

	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ScenarioConfig{}, fmt.Errorf("production: yaml unmarshal scenario config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return ScenarioConfig{}, err
	}
	return cfg, nil
}

func (c ScenarioConfig) validate() error {
	if c.NumSnaps < 1 {
		return fmt.Errorf("%w: numSnaps must be >= 1, got %d", ErrInvalidScenario, c.NumSnaps)
	}
	if c.WarmUpTicks < 0 {
		return fmt.Errorf("%w: warmUpTicks must be non-negative, got %d", ErrInvalidScenario, c.WarmUpTicks)
	}
	if c.SnapTicks < 0 {
		return fmt.Errorf("%w: snapTicks must be non-negative, got %d", ErrInvalidScenario, c.SnapTicks)
	}
	return nil
}

// WarmUp returns the warm-up period as a simtime.Ticks value.
func (c ScenarioConfig) WarmUp() simtime.Ticks { return simtime.Ticks(c.WarmUpTicks) }

// SnapLength returns the snap window length as a simtime.Ticks value.
func (c ScenarioConfig) SnapLength() simtime.Ticks { return simtime.Ticks(c.SnapTicks) }
