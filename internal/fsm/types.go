package fsm

import "github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/hit"

// #region state
// State enumerates the recognition phases driven by accumulated progress and
// recent hit patterns.
type State int

const (
	Idle State = iota
	Building
	Resistance
	Tension
	Critical
	Achieved
)

var stateNames = map[State]string{
	Idle:       "idle",
	Building:   "building",
	Resistance: "resistance",
	Tension:    "tension",
	Critical:   "critical",
	Achieved:   "achieved",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseState maps a state name back to its value. Unknown names report false.
func ParseState(name string) (State, bool) {
	for s, n := range stateNames {
		if n == name {
			return s, true
		}
	}
	return Idle, false
}

// #endregion state

// #region inputs
// Inputs carries everything the classifier reads. Now is the engine clock
// value the evaluation happens at.
type Inputs struct {
	Progress           float64
	Recent             []hit.Record
	Now                float64
	ComboTimeWindow    float64
	StrongHitThreshold float64
}

// #endregion inputs
