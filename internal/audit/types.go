package audit

// #region audit-config
// Config holds the invariant bounds a replay trace is checked against.
type Config struct {
	ProgressMin     float64 // flag any step whose progress falls below this
	ProgressMax     float64 // flag any step whose progress rises above this
	RecentWindowMax int     // flag any step exposing more recent hits than this
}

// DefaultConfig returns the engine's structural invariants.
func DefaultConfig() Config {
	return Config{
		ProgressMin:     0,
		ProgressMax:     100,
		RecentWindowMax: 3,
	}
}

// #endregion audit-config

// #region audit-metric
// Metric captures a single invariant check over a whole trace.
type Metric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion audit-metric

// #region audit-result
// Result is the output of auditing a replay trace.
type Result struct {
	Passed  bool
	Metrics []Metric
	Reason  string
}

// #endregion audit-result
