package audit

import (
	"fmt"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/fsm"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/replay"
)

// #region audit-harness
// Harness validates a replayed trace against the engine's structural
// invariants.
type Harness struct {
	config Config
}

// NewHarness creates an audit harness with the given configuration.
func NewHarness(config Config) *Harness {
	return &Harness{config: config}
}

// Run checks every step of a replay trace. Returns pass/fail with one metric
// per invariant. Operates on recorded results only, never re-runs the engine.
func (h *Harness) Run(results []replay.StepResult) Result {
	var metrics []Metric
	passed := true
	var failReasons []string

	// 1. Progress bounds: min and max over the whole trace.
	minProgress, maxProgress := h.config.ProgressMin, h.config.ProgressMax
	if len(results) > 0 {
		minProgress, maxProgress = results[0].Progress, results[0].Progress
		for _, r := range results[1:] {
			if r.Progress < minProgress {
				minProgress = r.Progress
			}
			if r.Progress > maxProgress {
				maxProgress = r.Progress
			}
		}
	}
	upperPass := maxProgress <= h.config.ProgressMax
	metrics = append(metrics, Metric{Name: "progress_upper", Value: maxProgress, Pass: upperPass})
	if !upperPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("progress %.4f exceeds %.4f", maxProgress, h.config.ProgressMax))
	}
	lowerPass := minProgress >= h.config.ProgressMin
	metrics = append(metrics, Metric{Name: "progress_lower", Value: minProgress, Pass: lowerPass})
	if !lowerPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("progress %.4f below %.4f", minProgress, h.config.ProgressMin))
	}

	// 2. Recent window: the engine never exposes more than the pattern window.
	maxRecent := 0
	for _, r := range results {
		if r.RecentLen > maxRecent {
			maxRecent = r.RecentLen
		}
	}
	recentPass := maxRecent <= h.config.RecentWindowMax
	metrics = append(metrics, Metric{Name: "recent_window", Value: float64(maxRecent), Pass: recentPass})
	if !recentPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("recent window %d exceeds %d", maxRecent, h.config.RecentWindowMax))
	}

	// 3. Tick monotonicity: a tick can only drain progress, never add.
	tickIncreases := 0
	for i, r := range results {
		if r.Kind != replay.StepTick || i == 0 {
			continue
		}
		if r.Progress > results[i-1].Progress && !hasEvent(r, "reset") {
			tickIncreases++
		}
	}
	tickPass := tickIncreases == 0
	metrics = append(metrics, Metric{Name: "tick_monotonicity", Value: float64(tickIncreases), Pass: tickPass})
	if !tickPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("%d tick steps increased progress", tickIncreases))
	}

	// 4. Achievement edges: the achieved event must fire exactly once per
	// entry into the achieved state, never while already there.
	entries := 0
	prev := fsm.Idle
	for _, r := range results {
		if r.State == fsm.Achieved && prev != fsm.Achieved {
			entries++
		}
		prev = r.State
	}
	fired := 0
	for _, r := range results {
		for _, ev := range r.Events {
			if ev == "achieved" {
				fired++
			}
		}
	}
	edgePass := fired == entries
	metrics = append(metrics, Metric{Name: "achieved_edges", Value: float64(fired), Pass: edgePass})
	if !edgePass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("achieved fired %d times for %d entries", fired, entries))
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("audit failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("audit failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return Result{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion audit-harness

// #region helpers
func hasEvent(r replay.StepResult, name string) bool {
	for _, ev := range r.Events {
		if ev == name {
			return true
		}
	}
	return false
}

// #endregion helpers
