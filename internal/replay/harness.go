package replay

import (
	"strconv"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/engine"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/fsm"
)

// #region types

// StepKind distinguishes the two kinds of replayable inputs.
type StepKind string

const (
	StepHit  StepKind = "hit"
	StepTick StepKind = "tick"
)

// Step represents a single recorded input for replay.
type Step struct {
	Kind      StepKind
	Force     float64
	Timestamp float64
	Origin    string
	Delta     float64 // tick steps only
}

// StepResult captures the engine's observable state after one step.
type StepResult struct {
	Index    int
	Kind     StepKind
	Accepted bool // hit steps: false when the engine rejected the input

	Progress  float64
	State     fsm.State
	RecentLen int

	ResistanceFired bool
	TensionFired    bool
	AutoReset       bool

	// Events lists listener callbacks fired during the step, in order.
	Events []string
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Steps        int
	Hits         int
	AcceptedHits int
	Ticks        int
	Transitions  int
	Achievements int
	Resets       int

	FinalProgress float64
	FinalState    fsm.State
}

// Mismatch describes one divergence between a replay and its expectations.
type Mismatch struct {
	Step  int
	Field string
	Want  string
	Got   string
}

// #endregion types

// #region capture

// captureListener records event names per step for StepResult.Events.
type captureListener struct {
	events          []string
	resistanceFired bool
	tensionFired    bool
	resetFired      bool
}

func (c *captureListener) begin() {
	c.events = c.events[:0]
	c.resistanceFired = false
	c.tensionFired = false
	c.resetFired = false
}

func (c *captureListener) StateChanged(prev, next fsm.State) {
	c.events = append(c.events, "state_changed")
}

func (c *captureListener) RecognitionAchieved() {
	c.events = append(c.events, "achieved")
}

func (c *captureListener) ResistanceTriggered() {
	c.events = append(c.events, "resistance")
	c.resistanceFired = true
}

func (c *captureListener) TensionTriggered() {
	c.events = append(c.events, "tension")
	c.tensionFired = true
}

func (c *captureListener) ProgressChanged(value float64) {
	c.events = append(c.events, "progress")
}

func (c *captureListener) EngineReset(reason string) {
	c.events = append(c.events, "reset")
	c.resetFired = true
}

// #endregion capture

// #region replay

// Run drives a fresh engine through the given steps and records the
// observable state after each one. Operates entirely in-memory.
func Run(config engine.Config, steps []Step) []StepResult {
	eng := engine.New(config)
	capture := &captureListener{}
	eng.AddListener(capture)

	results := make([]StepResult, 0, len(steps))
	for i, step := range steps {
		capture.begin()

		r := StepResult{Index: i, Kind: step.Kind}
		switch step.Kind {
		case StepTick:
			eng.Tick(step.Delta)
		default:
			outcome := eng.ProcessHit(step.Force, step.Timestamp, step.Origin)
			r.Accepted = outcome != nil
			if outcome != nil {
				r.ResistanceFired = outcome.ResistanceFired
				r.TensionFired = outcome.TensionFired
			}
		}

		r.Progress = eng.Progress()
		r.State = eng.State()
		r.RecentLen = len(eng.RecentHits())
		r.AutoReset = capture.resetFired
		r.Events = append([]string(nil), capture.events...)
		results = append(results, r)
	}

	return results
}

// Summarize computes aggregate stats from step results.
func Summarize(results []StepResult) Summary {
	s := Summary{Steps: len(results)}
	for _, r := range results {
		switch r.Kind {
		case StepTick:
			s.Ticks++
		default:
			s.Hits++
			if r.Accepted {
				s.AcceptedHits++
			}
		}
		for _, ev := range r.Events {
			switch ev {
			case "state_changed":
				s.Transitions++
			case "achieved":
				s.Achievements++
			case "reset":
				s.Resets++
			}
		}
	}
	if len(results) > 0 {
		last := results[len(results)-1]
		s.FinalProgress = last.Progress
		s.FinalState = last.State
	}
	return s
}

// Compare checks step results against fixture expectations. Progress values
// are compared within tolerance; a nil expected progress skips the check.
func Compare(results []StepResult, expected []FixtureExpectation, tolerance float64) []Mismatch {
	var mismatches []Mismatch
	for _, exp := range expected {
		if exp.Step < 0 || exp.Step >= len(results) {
			mismatches = append(mismatches, Mismatch{
				Step:  exp.Step,
				Field: "step",
				Want:  "in range",
				Got:   "out of range",
			})
			continue
		}
		got := results[exp.Step]
		if exp.State != "" && got.State.String() != exp.State {
			mismatches = append(mismatches, Mismatch{
				Step:  exp.Step,
				Field: "state",
				Want:  exp.State,
				Got:   got.State.String(),
			})
		}
		if exp.Progress != nil {
			diff := got.Progress - *exp.Progress
			if diff < -tolerance || diff > tolerance {
				mismatches = append(mismatches, Mismatch{
					Step:  exp.Step,
					Field: "progress",
					Want:  formatFloat(*exp.Progress),
					Got:   formatFloat(got.Progress),
				})
			}
		}
	}
	return mismatches
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// #endregion replay
