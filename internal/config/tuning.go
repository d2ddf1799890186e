package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"runemind/internal/domain/game"
)

// Tuning carries the decision-policy knobs an operator may override.
// Defaults mirror the domain constants, so an absent or partial file
// behaves exactly like the built-in policy.
type Tuning struct {
	Resilience ResilienceTuning `yaml:"resilience"`
	Grind      GrindTuning      `yaml:"grind"`
}

// ResilienceTuning shapes the per-location retry gate.
type ResilienceTuning struct {
	// FailureThreshold is how many recent failures put a location on
	// the avoid list.
	FailureThreshold int `yaml:"failure_threshold"`
	// Window is how long a failure keeps counting against a location.
	Window Duration `yaml:"window"`
}

// Duration is a time.Duration that YAML-decodes from strings like
// "30m" or "1h30m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// GrindTuning shapes the drop-grind persistence heuristic.
type GrindTuning struct {
	// Patience is the multiple of the expected attempt count a grind
	// is pursued for before abandonment is reasonable.
	Patience float64 `yaml:"patience"`
}

// DefaultTuning returns the built-in policy values.
func DefaultTuning() Tuning {
	return Tuning{
		Resilience: ResilienceTuning{
			FailureThreshold: game.ResilienceFailureThreshold,
			Window:           Duration(game.ResilienceWindow),
		},
		Grind: GrindTuning{
			Patience: game.GrindPatienceMultiplier,
		},
	}
}

// LoadTuning overlays the YAML document at path onto the defaults.
// An empty path returns the defaults untouched.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &tuning); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if err := tuning.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return tuning, nil
}

// Validate rejects values the policies cannot work with.
func (t Tuning) Validate() error {
	if t.Resilience.FailureThreshold < 1 {
		return fmt.Errorf("resilience.failure_threshold must be >= 1, got %d", t.Resilience.FailureThreshold)
	}
	if t.Resilience.Window <= 0 {
		return fmt.Errorf("resilience.window must be positive, got %s", t.Resilience.Window.Std())
	}
	if t.Grind.Patience <= 0 {
		return fmt.Errorf("grind.patience must be positive, got %g", t.Grind.Patience)
	}
	return nil
}
