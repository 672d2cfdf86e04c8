package engine

import (
	"math"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/decay"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/hit"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/resistance"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/scoring"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/tension"
)

// #region config
// Config is the full immutable tuning snapshot an engine runs with. Replace
// it as a whole via ReplaceConfig; never mutate fields of a live engine's
// copy.
type Config struct {
	BaseForceMultiplier   float64
	MinForceThreshold     float64
	MaxForceLimit         float64
	MaxHistory            int
	HitTTL                float64 // validity window for history records, in time-units
	MaxHitsWithoutSuccess int
	ResetProgressValue    float64

	Resistance resistance.Config
	Tension    tension.Config
	Decay      decay.Config
}

// DefaultConfig returns the baseline engine tuning.
func DefaultConfig() Config {
	return Config{
		BaseForceMultiplier:   0.8,
		MinForceThreshold:     1,
		MaxForceLimit:         100,
		MaxHistory:            10,
		HitTTL:                10,
		MaxHitsWithoutSuccess: 30,
		ResetProgressValue:    0,
		Resistance:            resistance.DefaultConfig(),
		Tension:               tension.DefaultConfig(),
		Decay:                 decay.DefaultConfig(),
	}
}

// #endregion config

// #region sanitize
// Sanitize returns a corrected copy: non-finite values fall back to defaults,
// negatives clamp to zero, percentages to [0,100], and inverted threshold
// pairs are reordered. The engine only ever holds sanitized configs, so an
// inverted range can never be observed at runtime.
func (c Config) Sanitize() Config {
	def := DefaultConfig()

	c.BaseForceMultiplier = sanitizeNonNegative(c.BaseForceMultiplier, def.BaseForceMultiplier)
	c.MaxForceLimit = sanitizeNonNegative(c.MaxForceLimit, def.MaxForceLimit)
	if c.MaxForceLimit <= 0 {
		c.MaxForceLimit = def.MaxForceLimit
	}
	c.MinForceThreshold = scoring.Clamp(sanitizeNonNegative(c.MinForceThreshold, def.MinForceThreshold), 0, c.MaxForceLimit)

	if c.MaxHistory < hit.RecentWindowSize {
		c.MaxHistory = def.MaxHistory
	}
	if c.HitTTL <= 0 || math.IsNaN(c.HitTTL) {
		c.HitTTL = def.HitTTL
	}
	if c.MaxHitsWithoutSuccess < 1 {
		c.MaxHitsWithoutSuccess = def.MaxHitsWithoutSuccess
	}
	c.ResetProgressValue = scoring.ClampProgress(sanitizeNonNegative(c.ResetProgressValue, def.ResetProgressValue))

	// Resistance thresholds and percentages.
	c.Resistance.StrongHitThreshold = sanitizeNonNegative(c.Resistance.StrongHitThreshold, def.Resistance.StrongHitThreshold)
	c.Resistance.ThreeHitSumThreshold = sanitizeNonNegative(c.Resistance.ThreeHitSumThreshold, def.Resistance.ThreeHitSumThreshold)
	c.Resistance.StrongHitsReductionPct = scoring.Clamp(sanitizeNonNegative(c.Resistance.StrongHitsReductionPct, def.Resistance.StrongHitsReductionPct), 0, 100)
	c.Resistance.SumExceededReductionPct = scoring.Clamp(sanitizeNonNegative(c.Resistance.SumExceededReductionPct, def.Resistance.SumExceededReductionPct), 0, 100)

	// Tension bonuses and windows.
	c.Tension.IncreasingSeriesBonus = sanitizeNonNegative(c.Tension.IncreasingSeriesBonus, def.Tension.IncreasingSeriesBonus)
	c.Tension.SeriesInterruptionPenalty = sanitizeNonNegative(c.Tension.SeriesInterruptionPenalty, def.Tension.SeriesInterruptionPenalty)
	c.Tension.PerfectTimingBonus = sanitizeNonNegative(c.Tension.PerfectTimingBonus, def.Tension.PerfectTimingBonus)
	c.Tension.WeakHitThreshold = sanitizeNonNegative(c.Tension.WeakHitThreshold, def.Tension.WeakHitThreshold)
	c.Tension.ComboTimeWindow = sanitizeNonNegative(c.Tension.ComboTimeWindow, def.Tension.ComboTimeWindow)
	c.Tension.PerfectTimingWindow = sanitizeNonNegative(c.Tension.PerfectTimingWindow, def.Tension.PerfectTimingWindow)

	// Weak must sit below strong, perfect window inside the combo window.
	if c.Tension.WeakHitThreshold > c.Resistance.StrongHitThreshold {
		c.Tension.WeakHitThreshold, c.Resistance.StrongHitThreshold =
			c.Resistance.StrongHitThreshold, c.Tension.WeakHitThreshold
	}
	if c.Tension.PerfectTimingWindow > c.Tension.ComboTimeWindow {
		c.Tension.PerfectTimingWindow, c.Tension.ComboTimeWindow =
			c.Tension.ComboTimeWindow, c.Tension.PerfectTimingWindow
	}

	// Decay.
	c.Decay.RatePerSecond = sanitizeNonNegative(c.Decay.RatePerSecond, def.Decay.RatePerSecond)

	return c
}

// sanitizeNonNegative replaces non-finite values with the fallback and floors
// the result at zero.
func sanitizeNonNegative(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if v < 0 {
		return 0
	}
	return v
}

// #endregion sanitize
