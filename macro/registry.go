package macro

import (
	"fmt"

	"github.com/google/uuid"

	"KeyPulse/key"
)

// stopper is the part of the scheduler the registry needs so that removing
// or disabling a macro never leaves its timer armed.
type stopper interface {
	StopOne(id string) error
}

// entry is one row of the registry table: the config and its timer handle.
type entry struct {
	cfg   Config
	timer *timerHandle
}

// Registry is the authoritative store of macros. It is not safe for
// concurrent use; the Engine confines it to a single goroutine.
type Registry struct {
	order   []string
	entries map[string]*entry
	stopper stopper
	newID   func() string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		newID:   uuid.NewString,
	}
}

// Add validates and stores a new, enabled, stopped macro.
func (r *Registry) Add(displayName string, k key.Token, seconds float64) (Config, error) {
	if !ValidInterval(seconds) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidInterval, seconds)
	}
	if k.IsZero() {
		return Config{}, ErrInvalidKey
	}
	if displayName == "" {
		displayName = k.DisplayName()
	}

	id := r.newID()
	for r.entries[id] != nil {
		id = r.newID()
	}

	cfg := Config{
		ID:              id,
		DisplayName:     displayName,
		Key:             k,
		IntervalSeconds: seconds,
		Enabled:         true,
	}
	r.entries[id] = &entry{cfg: cfg}
	r.order = append(r.order, id)
	return cfg, nil
}

// Remove deletes a macro, stopping it first when it is running.
func (r *Registry) Remove(id string) error {
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	if e.cfg.Running {
		if err := r.stop(id); err != nil {
			return err
		}
	}
	e.timer.disarm()

	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetEnabled toggles a macro. Disabling a running macro stops it.
func (r *Registry) SetEnabled(id string, enabled bool) error {
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("set enabled %q: %w", id, ErrNotFound)
	}
	if e.cfg.Enabled == enabled {
		return nil
	}
	if !enabled && e.cfg.Running {
		if err := r.stop(id); err != nil {
			return err
		}
	}
	e.cfg.Enabled = enabled
	return nil
}

func (r *Registry) stop(id string) error {
	if r.stopper == nil {
		r.entries[id].cfg.Running = false
		return nil
	}
	return r.stopper.StopOne(id)
}

// Get returns a copy of the macro with the given id.
func (r *Registry) Get(id string) (Config, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Config{}, false
	}
	return e.cfg, true
}

// List returns copies of all macros in insertion order.
func (r *Registry) List() []Config {
	out := make([]Config, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].cfg)
	}
	return out
}

// Len returns the number of macros.
func (r *Registry) Len() int {
	return len(r.order)
}

// AnyRunning reports whether at least one macro is running. It is derived
// from the individual macros rather than tracked separately.
func (r *Registry) AnyRunning() bool {
	for _, e := range r.entries {
		if e.cfg.Running {
			return true
		}
	}
	return false
}

func (r *Registry) lookup(id string) *entry {
	return r.entries[id]
}
