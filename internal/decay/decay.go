package decay

import "math"

// #region config
// Config controls idle erosion of progress between hits.
type Config struct {
	Enabled          bool
	RatePerSecond    float64
	PauseDuringCombo bool // suspend decay while a combo window is open
}

// DefaultConfig returns the baseline decay tuning.
func DefaultConfig() Config {
	return Config{
		Enabled:          true,
		RatePerSecond:    5,
		PauseDuringCombo: true,
	}
}

// #endregion config

// #region apply
// Apply erodes progress over dt seconds of elapsed time. sinceLastHit is the
// time since the last accepted hit (use math.Inf(1) when there is none);
// comboWindow is the active combo span used for the pause rule. Decay never
// takes progress below zero.
func Apply(progress, dt, sinceLastHit, comboWindow float64, config Config) float64 {
	if !config.Enabled || progress <= 0 {
		return progress
	}
	if dt <= 0 || math.IsNaN(dt) {
		return progress
	}
	if config.PauseDuringCombo && sinceLastHit <= comboWindow {
		return progress
	}
	progress -= config.RatePerSecond * dt
	if progress < 0 {
		progress = 0
	}
	return progress
}

// #endregion apply
