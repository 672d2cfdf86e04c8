package engine

import "github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/fsm"

// #region listener
// Listener receives engine notifications. Callbacks run synchronously on the
// engine's thread, in registration order, immediately after the mutation that
// caused them — implementations must not call back into the engine.
type Listener interface {
	StateChanged(prev, next fsm.State)
	RecognitionAchieved()
	ResistanceTriggered()
	TensionTriggered()
	ProgressChanged(value float64)
	EngineReset(reason string)
}

// NopListener is an embeddable no-op implementation of Listener.
type NopListener struct{}

func (NopListener) StateChanged(prev, next fsm.State) {}
func (NopListener) RecognitionAchieved()              {}
func (NopListener) ResistanceTriggered()              {}
func (NopListener) TensionTriggered()                 {}
func (NopListener) ProgressChanged(value float64)     {}
func (NopListener) EngineReset(reason string)         {}

// #endregion listener

// #region emit
func (e *Engine) emitStateChanged(prev, next fsm.State) {
	for _, l := range e.listeners {
		l.StateChanged(prev, next)
	}
}

func (e *Engine) emitRecognitionAchieved() {
	for _, l := range e.listeners {
		l.RecognitionAchieved()
	}
}

func (e *Engine) emitResistanceTriggered() {
	for _, l := range e.listeners {
		l.ResistanceTriggered()
	}
}

func (e *Engine) emitTensionTriggered() {
	for _, l := range e.listeners {
		l.TensionTriggered()
	}
}

func (e *Engine) emitProgressChanged(value float64) {
	for _, l := range e.listeners {
		l.ProgressChanged(value)
	}
}

func (e *Engine) emitReset(reason string) {
	for _, l := range e.listeners {
		l.EngineReset(reason)
	}
}

// #endregion emit
