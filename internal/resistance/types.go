package resistance

// #region config
// Config holds thresholds for counter-pressure penalties.
type Config struct {
	StrongHitThreshold      float64 // force above which a hit counts as strong
	StrongHitsReductionPct  float64 // penalty when the last two hits are both strong
	ThreeHitSumThreshold    float64 // recent-window force sum that triggers the sum penalty
	SumExceededReductionPct float64 // penalty when the three-hit sum is exceeded
}

// DefaultConfig returns the baseline counter-pressure tuning.
func DefaultConfig() Config {
	return Config{
		StrongHitThreshold:      70,
		StrongHitsReductionPct:  15,
		ThreeHitSumThreshold:    210,
		SumExceededReductionPct: 20,
	}
}

// #endregion config

// #region result
// Result reports the post-penalty progress and which rules fired.
type Result struct {
	Progress    float64
	StrongPair  bool // last two hits both exceeded the strong threshold
	SumExceeded bool // full recent window summed past the limit
}

// Fired reports whether any penalty applied.
func (r Result) Fired() bool {
	return r.StrongPair || r.SumExceeded
}

// #endregion result
