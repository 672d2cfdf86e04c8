package engine

import (
	"math"

	"github.com/google/uuid"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/decay"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/fsm"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/hit"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/resistance"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/scoring"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/tension"
)

// AutoResetReason tags resets triggered by the hit limit.
const AutoResetReason = "hit limit reached"

// #region engine
// Engine is the pressure-accumulation orchestrator. It owns the runtime
// state, the hit history, and a validated config snapshot. All mutators must
// be called from one logical thread; there is no internal locking.
type Engine struct {
	config    Config
	history   *hit.History
	listeners []Listener

	generation  string // renewed on every reset
	progress    float64
	totalHits   int
	forceSum    float64
	lastHitTime float64
	hasHit      bool
	now         float64

	state     fsm.State
	prevState fsm.State

	perfectTimings      int
	consecutiveFailures int
}

// Outcome reports what a single ProcessHit call did.
type Outcome struct {
	Effectiveness   float64
	Delta           float64
	ResistanceFired bool
	TensionFired    bool
	PerfectTiming   bool
	ComboBroken     bool
	AutoReset       bool
	Progress        float64
	State           fsm.State
}

// Stats is the read-only telemetry snapshot.
type Stats struct {
	TotalHits           int
	AverageForce        float64
	TimeSinceLastHit    float64 // -1 when no hit has landed yet
	ConsecutiveFailures int
	PerfectTimings      int
}

// New creates an engine with a sanitized copy of the given config.
func New(config Config) *Engine {
	cfg := config.Sanitize()
	return &Engine{
		config:     cfg,
		history:    hit.NewHistory(cfg.MaxHistory, cfg.HitTTL),
		generation: uuid.New().String(),
		state:      fsm.Idle,
		prevState:  fsm.Idle,
	}
}

// AddListener registers a notification sink. Not safe to call from inside a
// callback.
func (e *Engine) AddListener(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Shutdown detaches all listeners and drops the hit history. The engine must
// not be used afterwards.
func (e *Engine) Shutdown() {
	e.listeners = nil
	e.history.Clear()
}

// #endregion engine

// #region process-hit

// ProcessHit ingests one impact. Returns nil when the hit was rejected
// (non-finite input or force below the minimum threshold).
func (e *Engine) ProcessHit(force, timestamp float64, origin string) *Outcome {
	if math.IsNaN(force) || math.IsInf(force, 0) ||
		math.IsNaN(timestamp) || math.IsInf(timestamp, 0) {
		return nil
	}
	if force < e.config.MinForceThreshold {
		return nil
	}

	// Non-monotonic timestamps clamp forward to the engine clock.
	if timestamp < e.now {
		timestamp = e.now
	}
	e.now = timestamp

	force = scoring.Clamp(force, 0, e.config.MaxForceLimit)

	gap := -1.0
	if e.hasHit {
		gap = timestamp - e.lastHitTime
	}
	effectiveness := scoring.Effectiveness(
		force, e.config.MaxForceLimit, gap,
		e.config.Tension.PerfectTimingWindow, e.config.Tension.ComboTimeWindow,
	)

	record := hit.Record{
		Force:         force,
		Timestamp:     timestamp,
		Origin:        origin,
		Effectiveness: effectiveness,
	}
	e.history.Append(record)

	before := e.progress
	delta := scoring.Delta(force, e.config.BaseForceMultiplier, effectiveness)
	e.progress = scoring.ClampProgress(e.progress + delta)

	res := resistance.Apply(e.progress, e.history.Recent(), e.config.Resistance)
	e.progress = res.Progress
	if res.Fired() {
		e.emitResistanceTriggered()
	}

	ten := tension.Apply(e.progress, e.history.Recent(), e.history.Len(), e.config.Tension)
	e.progress = ten.Progress
	if ten.PerfectTiming {
		e.perfectTimings++
	}
	if ten.Fired() {
		e.emitTensionTriggered()
	}

	e.totalHits++
	e.forceSum += force
	e.lastHitTime = timestamp
	e.hasHit = true

	e.history.Prune(e.now)
	if e.progress != before {
		e.emitProgressChanged(e.progress)
	}
	e.reevaluate()

	outcome := &Outcome{
		Effectiveness:   effectiveness,
		Delta:           delta,
		ResistanceFired: res.Fired(),
		TensionFired:    ten.Fired(),
		PerfectTiming:   ten.PerfectTiming,
		ComboBroken:     ten.ComboBroken,
	}

	if e.totalHits >= e.config.MaxHitsWithoutSuccess && e.progress < scoring.ProgressMax {
		e.consecutiveFailures++
		e.reset(AutoResetReason, e.config.ResetProgressValue)
		outcome.AutoReset = true
	}

	outcome.Progress = e.progress
	outcome.State = e.state
	return outcome
}

// #endregion process-hit

// #region tick

// Tick advances decay and history expiry by dt seconds. Negative or
// non-finite deltas advance nothing but still re-evaluate.
func (e *Engine) Tick(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}
	e.now += dt

	before := e.progress
	e.progress = decay.Apply(e.progress, dt, e.sinceLastHit(), e.config.Tension.ComboTimeWindow, e.config.Decay)

	e.history.Prune(e.now)
	if e.progress != before {
		e.emitProgressChanged(e.progress)
	}
	e.reevaluate()
}

// #endregion tick

// #region reset

// Reset clears the run: history, hit counter, perfect-timing counter; sets
// progress to the given value and re-evaluates. The consecutive-failure
// counter survives, it tracks auto-resets across runs.
func (e *Engine) Reset(reason string, progress float64) {
	e.reset(reason, progress)
}

func (e *Engine) reset(reason string, progress float64) {
	if math.IsNaN(progress) || math.IsInf(progress, 0) {
		progress = 0
	}
	before := e.progress

	e.history = hit.NewHistory(e.config.MaxHistory, e.config.HitTTL)
	e.totalHits = 0
	e.forceSum = 0
	e.perfectTimings = 0
	e.hasHit = false
	e.lastHitTime = 0
	e.progress = scoring.ClampProgress(progress)
	e.generation = uuid.New().String()

	e.emitReset(reason)
	if e.progress != before {
		e.emitProgressChanged(e.progress)
	}
	e.reevaluate()
}

// SetProgress overrides progress directly, bypassing scoring and the rule
// engines. Non-finite values are dropped. The state machine still runs.
func (e *Engine) SetProgress(value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	before := e.progress
	e.progress = scoring.ClampProgress(value)
	if e.progress != before {
		e.emitProgressChanged(e.progress)
	}
	e.reevaluate()
}

// #endregion reset

// #region state-machine

// reevaluate runs the classifier and emits transition events. Entering
// Achieved is edge-triggered: it can only happen on a transition, so repeated
// evaluations at full progress do not re-fire the achievement.
func (e *Engine) reevaluate() {
	next := fsm.Evaluate(fsm.Inputs{
		Progress:           e.progress,
		Recent:             e.history.Recent(),
		Now:                e.now,
		ComboTimeWindow:    e.config.Tension.ComboTimeWindow,
		StrongHitThreshold: e.config.Resistance.StrongHitThreshold,
	})
	if next == e.state {
		return
	}

	prev := e.state
	e.prevState = prev
	e.state = next
	e.emitStateChanged(prev, next)

	if next == fsm.Achieved {
		e.consecutiveFailures = 0
		e.emitRecognitionAchieved()
	}
}

// #endregion state-machine

// #region queries

// Progress returns the bounded accumulator value.
func (e *Engine) Progress() float64 {
	return e.progress
}

// State returns the current recognition phase.
func (e *Engine) State() fsm.State {
	return e.state
}

// PreviousState returns the phase before the last transition.
func (e *Engine) PreviousState() fsm.State {
	return e.prevState
}

// Generation returns the ID of the current run, renewed on every reset.
func (e *Engine) Generation() string {
	return e.generation
}

// RecentHits returns a copy of the recent window, oldest first.
func (e *Engine) RecentHits() []hit.Record {
	return e.history.Recent()
}

// Config returns the sanitized config snapshot in effect.
func (e *Engine) Config() Config {
	return e.config
}

// ReplaceConfig swaps the whole tuning snapshot atomically. The new config is
// sanitized before use; existing history keeps its original bounds until the
// next reset.
func (e *Engine) ReplaceConfig(config Config) {
	e.config = config.Sanitize()
}

// Statistics returns the telemetry snapshot.
func (e *Engine) Statistics() Stats {
	stats := Stats{
		TotalHits:           e.totalHits,
		TimeSinceLastHit:    -1,
		ConsecutiveFailures: e.consecutiveFailures,
		PerfectTimings:      e.perfectTimings,
	}
	if e.totalHits > 0 {
		stats.AverageForce = e.forceSum / float64(e.totalHits)
	}
	if e.hasHit {
		stats.TimeSinceLastHit = e.now - e.lastHitTime
	}
	return stats
}

func (e *Engine) sinceLastHit() float64 {
	if !e.hasHit {
		return math.Inf(1)
	}
	return e.now - e.lastHitTime
}

// #endregion queries
