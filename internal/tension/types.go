package tension

// #region config
// Config holds escalation bonuses, combo timing windows, and the weak-hit
// penalty.
type Config struct {
	IncreasingSeriesBonus     float64 // flat bonus for a strictly escalating window
	WeakHitThreshold          float64 // force below which a hit breaks a combo
	SeriesInterruptionPenalty float64 // flat penalty for a combo-breaking hit
	ComboTimeWindow           float64 // span after a hit during which the sequence continues
	PerfectTimingBonus        float64 // extra bonus for a tightly timed escalation
	PerfectTimingWindow       float64 // span that counts as perfect timing
}

// DefaultConfig returns the baseline escalation tuning.
func DefaultConfig() Config {
	return Config{
		IncreasingSeriesBonus:     10,
		WeakHitThreshold:          15,
		SeriesInterruptionPenalty: 5,
		ComboTimeWindow:           1.5,
		PerfectTimingBonus:        5,
		PerfectTimingWindow:       0.5,
	}
}

// #endregion config

// #region result
// Result reports the post-bonus progress and which rules fired.
type Result struct {
	Progress      float64
	SeriesBonus   bool // strictly increasing forces across the full window
	PerfectTiming bool // series bonus landed with perfect timing
	ComboBroken   bool // weak hit interrupted an active sequence
}

// Fired reports whether any rule applied.
func (r Result) Fired() bool {
	return r.SeriesBonus || r.ComboBroken
}

// #endregion result
