package journal

import (
	"encoding/json"
	"log"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/engine"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/fsm"
)

// #region recorder
// Recorder streams one session's inputs and engine events into the store. It
// implements engine.Listener; write failures are logged and swallowed so
// telemetry can never stall the game loop.
type Recorder struct {
	store     *Store
	sessionID string
	seq       int
}

// NewRecorder creates a session and returns a recorder bound to it.
func NewRecorder(store *Store, label, configJSON string) (*Recorder, error) {
	id, err := store.CreateSession(label, configJSON)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, sessionID: id}, nil
}

// SessionID returns the ID of the recorded session.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

func (r *Recorder) append(kind string, payload interface{}) {
	var payloadJSON string
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("[JOURNAL] marshal %s payload: %v", kind, err)
			return
		}
		payloadJSON = string(data)
	}
	if err := r.store.AppendEvent(r.sessionID, r.seq, kind, payloadJSON); err != nil {
		log.Printf("[JOURNAL] append %s: %v", kind, err)
		return
	}
	r.seq++
}

// #endregion recorder

// #region inputs
// RecordHit journals one ProcessHit call. outcome may be nil (rejected hit);
// progress is the engine's value after the call.
func (r *Recorder) RecordHit(force, timestamp float64, origin string, outcome *engine.Outcome, progress float64) {
	payload := HitPayload{
		Force:     force,
		Timestamp: timestamp,
		Origin:    origin,
		Progress:  progress,
	}
	if outcome != nil {
		payload.Accepted = true
		payload.Effectiveness = outcome.Effectiveness
		payload.State = outcome.State.String()
		payload.Resistance = outcome.ResistanceFired
		payload.Tension = outcome.TensionFired
		payload.AutoReset = outcome.AutoReset
	}
	r.append(KindHit, payload)
}

// RecordTick journals one Tick call with the resulting progress and state.
func (r *Recorder) RecordTick(dt, progress float64, state fsm.State) {
	r.append(KindTick, TickPayload{Delta: dt, Progress: progress, State: state.String()})
}

// #endregion inputs

// #region listener
func (r *Recorder) StateChanged(prev, next fsm.State) {
	r.append(KindStateChanged, StateChangedPayload{Prev: prev.String(), Next: next.String()})
}

func (r *Recorder) RecognitionAchieved() {
	r.append(KindAchieved, nil)
}

func (r *Recorder) ResistanceTriggered() {
	r.append(KindResistance, nil)
}

func (r *Recorder) TensionTriggered() {
	r.append(KindTension, nil)
}

func (r *Recorder) ProgressChanged(value float64) {
	r.append(KindProgress, ProgressPayload{Value: value})
}

func (r *Recorder) EngineReset(reason string) {
	r.append(KindReset, ResetPayload{Reason: reason})
}

// #endregion listener
