package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/decay"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/engine"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/resistance"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/tension"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string               `json:"description"`
	Config      FixtureConfig        `json:"config"`
	Steps       []FixtureStep        `json:"steps"`
	Expected    []FixtureExpectation `json:"expected,omitempty"`
}

// FixtureStep mirrors replay.Step with JSON tags.
type FixtureStep struct {
	Kind      string  `json:"kind"` // "hit" | "tick"
	Force     float64 `json:"force,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`
	Origin    string  `json:"origin,omitempty"`
	Delta     float64 `json:"dt,omitempty"`
}

// FixtureExpectation captures the expected outcome of one step.
// Progress is optional; nil skips the progress check for that step.
type FixtureExpectation struct {
	Step     int      `json:"step"`
	State    string   `json:"state"`
	Progress *float64 `json:"progress,omitempty"`
}

// FixtureConfig mirrors engine.Config with JSON tags.
type FixtureConfig struct {
	BaseForceMultiplier   float64 `json:"base_force_multiplier"`
	MinForceThreshold     float64 `json:"min_force_threshold"`
	MaxForceLimit         float64 `json:"max_force_limit"`
	MaxHistory            int     `json:"max_history"`
	HitTTL                float64 `json:"hit_ttl"`
	MaxHitsWithoutSuccess int     `json:"max_hits_without_success"`
	ResetProgressValue    float64 `json:"reset_progress_value"`

	Resistance FixtureResistanceConfig `json:"resistance"`
	Tension    FixtureTensionConfig    `json:"tension"`
	Decay      FixtureDecayConfig      `json:"decay"`
}

// FixtureResistanceConfig mirrors resistance.Config with JSON tags.
type FixtureResistanceConfig struct {
	StrongHitThreshold      float64 `json:"strong_hit_threshold"`
	StrongHitsReductionPct  float64 `json:"strong_hits_reduction_pct"`
	ThreeHitSumThreshold    float64 `json:"three_hit_sum_threshold"`
	SumExceededReductionPct float64 `json:"sum_exceeded_reduction_pct"`
}

// FixtureTensionConfig mirrors tension.Config with JSON tags.
type FixtureTensionConfig struct {
	IncreasingSeriesBonus     float64 `json:"increasing_series_bonus"`
	WeakHitThreshold          float64 `json:"weak_hit_threshold"`
	SeriesInterruptionPenalty float64 `json:"series_interruption_penalty"`
	ComboTimeWindow           float64 `json:"combo_time_window"`
	PerfectTimingBonus        float64 `json:"perfect_timing_bonus"`
	PerfectTimingWindow       float64 `json:"perfect_timing_window"`
}

// FixtureDecayConfig mirrors decay.Config with JSON tags.
type FixtureDecayConfig struct {
	Enabled          bool    `json:"enabled"`
	RatePerSecond    float64 `json:"rate_per_second"`
	PauseDuringCombo bool    `json:"pause_during_combo"`
}

// #endregion fixture-types

// #region fixture-io

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// WriteFixture serializes a fixture to disk, indented for hand editing.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-io

// #region conversions

// ToConfig converts a FixtureConfig to a domain engine.Config.
func (fc FixtureConfig) ToConfig() engine.Config {
	return engine.Config{
		BaseForceMultiplier:   fc.BaseForceMultiplier,
		MinForceThreshold:     fc.MinForceThreshold,
		MaxForceLimit:         fc.MaxForceLimit,
		MaxHistory:            fc.MaxHistory,
		HitTTL:                fc.HitTTL,
		MaxHitsWithoutSuccess: fc.MaxHitsWithoutSuccess,
		ResetProgressValue:    fc.ResetProgressValue,
		Resistance: resistance.Config{
			StrongHitThreshold:      fc.Resistance.StrongHitThreshold,
			StrongHitsReductionPct:  fc.Resistance.StrongHitsReductionPct,
			ThreeHitSumThreshold:    fc.Resistance.ThreeHitSumThreshold,
			SumExceededReductionPct: fc.Resistance.SumExceededReductionPct,
		},
		Tension: tension.Config{
			IncreasingSeriesBonus:     fc.Tension.IncreasingSeriesBonus,
			WeakHitThreshold:          fc.Tension.WeakHitThreshold,
			SeriesInterruptionPenalty: fc.Tension.SeriesInterruptionPenalty,
			ComboTimeWindow:           fc.Tension.ComboTimeWindow,
			PerfectTimingBonus:        fc.Tension.PerfectTimingBonus,
			PerfectTimingWindow:       fc.Tension.PerfectTimingWindow,
		},
		Decay: decay.Config{
			Enabled:          fc.Decay.Enabled,
			RatePerSecond:    fc.Decay.RatePerSecond,
			PauseDuringCombo: fc.Decay.PauseDuringCombo,
		},
	}
}

// FixtureConfigFrom converts a domain engine.Config to its JSON mirror.
func FixtureConfigFrom(c engine.Config) FixtureConfig {
	return FixtureConfig{
		BaseForceMultiplier:   c.BaseForceMultiplier,
		MinForceThreshold:     c.MinForceThreshold,
		MaxForceLimit:         c.MaxForceLimit,
		MaxHistory:            c.MaxHistory,
		HitTTL:                c.HitTTL,
		MaxHitsWithoutSuccess: c.MaxHitsWithoutSuccess,
		ResetProgressValue:    c.ResetProgressValue,
		Resistance: FixtureResistanceConfig{
			StrongHitThreshold:      c.Resistance.StrongHitThreshold,
			StrongHitsReductionPct:  c.Resistance.StrongHitsReductionPct,
			ThreeHitSumThreshold:    c.Resistance.ThreeHitSumThreshold,
			SumExceededReductionPct: c.Resistance.SumExceededReductionPct,
		},
		Tension: FixtureTensionConfig{
			IncreasingSeriesBonus:     c.Tension.IncreasingSeriesBonus,
			WeakHitThreshold:          c.Tension.WeakHitThreshold,
			SeriesInterruptionPenalty: c.Tension.SeriesInterruptionPenalty,
			ComboTimeWindow:           c.Tension.ComboTimeWindow,
			PerfectTimingBonus:        c.Tension.PerfectTimingBonus,
			PerfectTimingWindow:       c.Tension.PerfectTimingWindow,
		},
		Decay: FixtureDecayConfig{
			Enabled:          c.Decay.Enabled,
			RatePerSecond:    c.Decay.RatePerSecond,
			PauseDuringCombo: c.Decay.PauseDuringCombo,
		},
	}
}

// ToStep converts a FixtureStep to a domain Step.
func (fs FixtureStep) ToStep() Step {
	return Step{
		Kind:      StepKind(fs.Kind),
		Force:     fs.Force,
		Timestamp: fs.Timestamp,
		Origin:    fs.Origin,
		Delta:     fs.Delta,
	}
}

// FixtureStepFrom converts a domain Step to its JSON mirror.
func FixtureStepFrom(s Step) FixtureStep {
	return FixtureStep{
		Kind:      string(s.Kind),
		Force:     s.Force,
		Timestamp: s.Timestamp,
		Origin:    s.Origin,
		Delta:     s.Delta,
	}
}

// #endregion conversions
