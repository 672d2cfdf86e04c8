package fsm

import "github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/scoring"

// CriticalThreshold is the progress level at which the critical phase begins.
const CriticalThreshold = 80.0

// resistanceRecency is how fresh the newest hit must be for the resistance
// phase to hold.
const resistanceRecency = 2.0

// #region evaluate
// Evaluate classifies the current situation. Pure function; first matching
// rule wins, in fixed priority order.
func Evaluate(in Inputs) State {
	if in.Progress >= scoring.ProgressMax {
		return Achieved
	}
	if in.Progress <= scoring.ProgressMin {
		return Idle
	}
	if in.Progress >= CriticalThreshold {
		return Critical
	}

	n := len(in.Recent)
	if n >= 2 {
		last := in.Recent[n-1]
		prev := in.Recent[n-2]
		sinceLast := in.Now - last.Timestamp

		if prev.Force > in.StrongHitThreshold && last.Force > in.StrongHitThreshold &&
			sinceLast < resistanceRecency {
			return Resistance
		}
		if sinceLast <= in.ComboTimeWindow {
			return Tension
		}
	}

	return Building
}

// #endregion evaluate
