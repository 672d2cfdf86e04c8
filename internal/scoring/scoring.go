package scoring

// Progress bounds for the accumulated pressure metric.
const (
	ProgressMin = 0.0
	ProgressMax = 100.0
)

// Effectiveness multiplier bounds and timing rewards.
const (
	EffectivenessMin = 0.1
	EffectivenessMax = 2.0

	perfectTimingMultiplier = 1.2
	comboTimingMultiplier   = 1.1
)

// #region effectiveness
// Effectiveness computes the per-hit multiplier from the clamped force and
// the gap to the previous accepted hit. A negative gap means there was no
// previous hit, so no timing reward applies.
func Effectiveness(force, maxForce, gap, perfectWindow, comboWindow float64) float64 {
	if maxForce <= 0 {
		return EffectivenessMin
	}
	eff := Lerp(0.5, 1.0, force/maxForce)
	switch {
	case gap >= 0 && gap <= perfectWindow:
		eff *= perfectTimingMultiplier
	case gap >= 0 && gap <= comboWindow:
		eff *= comboTimingMultiplier
	}
	return Clamp(eff, EffectivenessMin, EffectivenessMax)
}

// Delta converts an accepted hit into a raw progress increment.
func Delta(force, baseMultiplier, effectiveness float64) float64 {
	return force * baseMultiplier * effectiveness
}

// #endregion effectiveness

// #region helpers
// Lerp linearly interpolates between a and b; t is clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampProgress bounds a progress value to [ProgressMin, ProgressMax].
func ClampProgress(v float64) float64 {
	return Clamp(v, ProgressMin, ProgressMax)
}

// #endregion helpers
