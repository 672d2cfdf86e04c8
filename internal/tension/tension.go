package tension

import (
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/hit"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/scoring"
)

// #region apply
// Apply runs the escalation rules for the hit that just landed (the newest
// record in the recent window). historyLen is the full history length after
// the hit was appended.
func Apply(progress float64, recent []hit.Record, historyLen int, config Config) Result {
	result := Result{Progress: progress}
	if len(recent) == 0 {
		return result
	}
	current := recent[len(recent)-1]

	// Escalation bonus: requires a full, strictly increasing window.
	if len(recent) == hit.RecentWindowSize &&
		recent[0].Force < recent[1].Force && recent[1].Force < recent[2].Force {
		result.Progress += config.IncreasingSeriesBonus
		result.SeriesBonus = true

		gap := recent[2].Timestamp - recent[1].Timestamp
		if gap >= 0 && gap <= config.PerfectTimingWindow {
			result.Progress += config.PerfectTimingBonus
			result.PerfectTiming = true
		}
	}

	// Weak hit breaks an established sequence.
	if current.Force < config.WeakHitThreshold && historyLen > 1 {
		result.Progress -= config.SeriesInterruptionPenalty
		result.ComboBroken = true
	}

	result.Progress = scoring.ClampProgress(result.Progress)
	return result
}

// #endregion apply
