package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/sweepgrid/internal/schema"
	"github.com/vk/sweepgrid/internal/sweep"
)

// CallFunc is an in-process execution target. It receives the parsed
// distributive assignments of one generated invocation.
type CallFunc func(ctx context.Context, assignments sweep.CombinationSet) error

// Registry holds the registered call targets for a single application
// instance.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]CallFunc
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{funcs: make(map[string]CallFunc)}
}

// Register adds a call target. Registration happens at wiring time, so a
// duplicate name is a programmer error and panics.
func (r *Registry) Register(name string, fn CallFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		panic(fmt.Sprintf("registry: call target %q registered twice", name))
	}
	r.funcs[name] = fn
}

// Lookup resolves a call target by name.
func (r *Registry) Lookup(name string) (CallFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	if !ok {
		return nil, &schema.ConfigError{Reason: fmt.Sprintf("call target %q is not registered", name)}
	}
	return fn, nil
}

// Names returns the registered target names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
