package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// #region registry
// Registry tracks live engine instances for a host application and enforces
// an instance cap. Each engine stays single-threaded; the registry itself may
// be shared between host goroutines.
type Registry struct {
	mu           sync.Mutex
	engines      map[string]*Engine
	maxInstances int
}

// NewRegistry creates a registry capped at maxInstances engines. A cap of
// zero or less means unbounded.
func NewRegistry(maxInstances int) *Registry {
	return &Registry{
		engines:      make(map[string]*Engine),
		maxInstances: maxInstances,
	}
}

// Create instantiates a new engine under a fresh ID.
func (r *Registry) Create(config Config) (string, *Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxInstances > 0 && len(r.engines) >= r.maxInstances {
		return "", nil, fmt.Errorf("engine cap reached: %d instances", r.maxInstances)
	}

	id := uuid.New().String()
	eng := New(config)
	r.engines[id] = eng
	return id, eng, nil
}

// Get returns the engine registered under id.
func (r *Registry) Get(id string) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	eng, ok := r.engines[id]
	return eng, ok
}

// Remove shuts the engine down and releases its slot.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if eng, ok := r.engines[id]; ok {
		eng.Shutdown()
		delete(r.engines, id)
	}
}

// Len returns the number of live engines.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}

// #endregion registry
