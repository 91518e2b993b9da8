// Package component maps string identifiers to factories so scene objects can
// be attached by name from config without importing their packages.
package component

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrUnknownComponent   = errors.New("unknown component")
	ErrDuplicateComponent = errors.New("component already registered")
)

// Component is anything the app loop can advance.
type Component interface {
	Tick(dt float32)
}

// Env carries what a factory may need at construction time.
type Env struct {
	Log  *zap.Logger
	Args map[string]any
}

// Arg returns the named argument, or nil.
func (e Env) Arg(name string) any {
	return e.Args[name]
}

// Factory builds one component instance.
type Factory func(env Env) (Component, error)

// Registry is a name to factory table. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Factory
}

func NewRegistry() *Registry { return &Registry{m: map[string]Factory{}} }

// Register adds a factory under name.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("component: empty name or nil factory for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, name)
	}
	r.m[name] = f
	return nil
}

// MustRegister is Register for startup code; it panics on error.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Create runs the factory registered under name.
func (r *Registry) Create(name string, env Env) (Component, error) {
	r.mu.RLock()
	f, ok := r.m[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	if env.Log == nil {
		env.Log = zap.NewNop()
	}
	c, err := f(env)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return c, nil
}

// Names lists the registered identifiers in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
