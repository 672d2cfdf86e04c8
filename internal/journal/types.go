package journal

import "time"

// Event kinds recorded per session.
const (
	KindHit          = "hit"
	KindTick         = "tick"
	KindStateChanged = "state_changed"
	KindResistance   = "resistance"
	KindTension      = "tension"
	KindProgress     = "progress"
	KindAchieved     = "achieved"
	KindReset        = "reset"
)

// #region entry
// Entry is one row of the session_events table.
type Entry struct {
	SessionID   string
	Seq         int
	Kind        string
	PayloadJSON string
	CreatedAt   time.Time
}

// SessionInfo describes one recorded session.
type SessionInfo struct {
	SessionID  string
	Label      string
	ConfigJSON string
	CreatedAt  time.Time
	EventCount int
}

// #endregion entry

// #region payloads
// HitPayload is the JSON body of a KindHit entry.
type HitPayload struct {
	Force         float64 `json:"force"`
	Timestamp     float64 `json:"timestamp"`
	Origin        string  `json:"origin"`
	Accepted      bool    `json:"accepted"`
	Effectiveness float64 `json:"effectiveness,omitempty"`
	Progress      float64 `json:"progress"`
	State         string  `json:"state,omitempty"`
	Resistance    bool    `json:"resistance,omitempty"`
	Tension       bool    `json:"tension,omitempty"`
	AutoReset     bool    `json:"auto_reset,omitempty"`
}

// TickPayload is the JSON body of a KindTick entry.
type TickPayload struct {
	Delta    float64 `json:"dt"`
	Progress float64 `json:"progress"`
	State    string  `json:"state,omitempty"`
}

// StateChangedPayload is the JSON body of a KindStateChanged entry.
type StateChangedPayload struct {
	Prev string `json:"prev"`
	Next string `json:"next"`
}

// ProgressPayload is the JSON body of a KindProgress entry.
type ProgressPayload struct {
	Value float64 `json:"value"`
}

// ResetPayload is the JSON body of a KindReset entry.
type ResetPayload struct {
	Reason string `json:"reason"`
}

// #endregion payloads
