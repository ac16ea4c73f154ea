package macro

import (
	"context"
	"log"

	"github.com/benbjohnson/clock"

	"KeyPulse/key"
)

// Observer is told about state changes. Calls come from the engine's
// command loop with snapshots, so an Observer must not call back into the
// Engine synchronously.
type Observer interface {
	MacrosChanged(macros []Config)
	InjectionFailed(m Config, err error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for macro timers.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clk = c }
}

// WithObserver registers the observer notified after every state change.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithDebug logs every fire.
func WithDebug(debug bool) Option {
	return func(e *Engine) { e.debug = debug }
}

// Engine owns a Registry and a Scheduler and runs every operation on them,
// timer ticks included, on one command-loop goroutine. Its methods are safe
// for concurrent use and are processed in call order.
type Engine struct {
	reg      *Registry
	sched    *Scheduler
	clk      clock.Clock
	observer Observer
	debug    bool

	cmdCh     chan func()
	cmdCtx    context.Context
	cmdCancel context.CancelFunc
	stopped   chan struct{}
}

// NewEngine creates an engine that injects keys through inj and starts its
// command loop.
func NewEngine(inj Injector, opts ...Option) *Engine {
	e := &Engine{
		reg:     NewRegistry(),
		clk:     clock.New(),
		cmdCh:   make(chan func(), 256),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sched = NewScheduler(e.reg, inj, e.clk)
	e.cmdCtx, e.cmdCancel = context.WithCancel(context.Background())

	go e.commandLoop()
	return e
}

func (e *Engine) commandLoop() {
	defer close(e.stopped)
	for {
		select {
		case <-e.cmdCtx.Done():
			if n := e.sched.StopAll(); n > 0 {
				log.Printf("Stopped %d macros on shutdown.", n)
				e.changed()
			}
			return
		case fn := <-e.cmdCh:
			fn()
		case t := <-e.sched.Ticks():
			e.fire(t)
		}
	}
}

// do runs fn on the command loop and waits for it.
func (e *Engine) do(fn func()) error {
	done := make(chan struct{})
	select {
	case e.cmdCh <- func() {
		defer close(done)
		fn()
	}:
	case <-e.cmdCtx.Done():
		return ErrClosed
	}

	select {
	case <-done:
		return nil
	case <-e.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrClosed
		}
	}
}

func (e *Engine) changed() {
	if e.observer != nil {
		e.observer.MacrosChanged(e.reg.List())
	}
}

func (e *Engine) fire(t Tick) {
	before, ok := e.reg.Get(t.ID)
	if !ok {
		return
	}

	err := e.sched.Fire(t)
	after, _ := e.reg.Get(t.ID)

	if err != nil {
		log.Printf("Failed to fire macro %s: %v", after.DisplayName, err)
		if e.observer != nil {
			e.observer.InjectionFailed(after, err)
		}
	} else if e.debug && after.Running {
		log.Printf("Fired macro %s (%s)", after.DisplayName, after.Key)
	}

	if before.Running != after.Running {
		e.changed()
	}
}

// Add creates a new enabled, stopped macro.
func (e *Engine) Add(displayName string, k key.Token, seconds float64) (Config, error) {
	var (
		cfg Config
		err error
	)
	if derr := e.do(func() {
		cfg, err = e.reg.Add(displayName, k, seconds)
		if err == nil {
			e.changed()
		}
	}); derr != nil {
		return Config{}, derr
	}
	return cfg, err
}

// Remove stops the macro if needed and deletes it.
func (e *Engine) Remove(id string) error {
	return e.mutate(func() error { return e.reg.Remove(id) })
}

// SetEnabled toggles a macro; disabling a running macro stops it.
func (e *Engine) SetEnabled(id string, enabled bool) error {
	return e.mutate(func() error { return e.reg.SetEnabled(id, enabled) })
}

// StartOne starts a single enabled macro.
func (e *Engine) StartOne(id string) error {
	return e.mutate(func() error { return e.sched.StartOne(id) })
}

// StopOne stops a single macro.
func (e *Engine) StopOne(id string) error {
	return e.mutate(func() error { return e.sched.StopOne(id) })
}

func (e *Engine) mutate(fn func() error) error {
	var err error
	if derr := e.do(func() {
		err = fn()
		if err == nil {
			e.changed()
		}
	}); derr != nil {
		return derr
	}
	return err
}

// StartAll starts every enabled, stopped macro.
func (e *Engine) StartAll() (StartAllResult, error) {
	var res StartAllResult
	err := e.do(func() {
		res = e.sched.StartAll()
		if res.Started > 0 {
			e.changed()
		}
	})
	return res, err
}

// StopAll stops every running macro and returns how many it stopped.
func (e *Engine) StopAll() (int, error) {
	var n int
	err := e.do(func() {
		n = e.sched.StopAll()
		if n > 0 {
			e.changed()
		}
	})
	return n, err
}

// Get returns a snapshot of one macro.
func (e *Engine) Get(id string) (Config, bool) {
	var (
		cfg Config
		ok  bool
	)
	if err := e.do(func() { cfg, ok = e.reg.Get(id) }); err != nil {
		return Config{}, false
	}
	return cfg, ok
}

// List returns snapshots of all macros in insertion order.
func (e *Engine) List() []Config {
	var out []Config
	_ = e.do(func() { out = e.reg.List() })
	return out
}

// AnyRunning reports whether any macro is running.
func (e *Engine) AnyRunning() bool {
	var running bool
	_ = e.do(func() { running = e.reg.AnyRunning() })
	return running
}

// Shutdown stops all macros and ends the command loop. Later calls return
// ErrClosed.
func (e *Engine) Shutdown() {
	e.cmdCancel()
	<-e.stopped
}
