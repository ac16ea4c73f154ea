// Package macro contains the domain logic for key macros: the Config
// definition, the Registry that stores them, the Scheduler that drives the
// Stopped/Running state machine and the Engine that serializes both.
//
// Maintenance notes:
//   - Registry and Scheduler are not safe for concurrent use. Everything
//     that touches them, timer ticks included, runs on the Engine's command
//     loop. Ticker goroutines only forward Tick values into that loop.
//   - A Tick carries the arming generation it was produced under. A tick
//     from an older arming, or one for a macro that is no longer running
//     and enabled, is dropped in Fire and never reaches the injector.
package macro

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
)

// Tick is one timer expiry for a running macro.
type Tick struct {
	ID  string
	gen uint64
}

// timerHandle is the per-macro timer. The handle lives as long as the
// registry entry and is re-armed on every start.
type timerHandle struct {
	ticker *clock.Ticker
	done   chan struct{}
	gen    uint64
	armed  bool
}

func (h *timerHandle) disarm() {
	if h == nil || !h.armed {
		return
	}
	h.ticker.Stop()
	close(h.done)
	h.armed = false
}

// StartOutcome tells the caller of StartAll what happened.
type StartOutcome int

const (
	// OutcomeStarted means at least one macro went from Stopped to Running.
	OutcomeStarted StartOutcome = iota
	// OutcomeAlreadyRunning means every enabled macro was already running.
	OutcomeAlreadyRunning
	// OutcomeNoMacros means the registry is empty.
	OutcomeNoMacros
	// OutcomeNoneEnabled means no macro is enabled.
	OutcomeNoneEnabled
)

// StartAllResult is returned by StartAll.
type StartAllResult struct {
	Started int
	Outcome StartOutcome
}

// Scheduler arms and disarms per-macro timers and fires injections.
type Scheduler struct {
	reg   *Registry
	inj   Injector
	clk   clock.Clock
	ticks chan Tick
}

// NewScheduler binds a scheduler to reg. Removing or disabling a running
// macro in reg stops it through this scheduler.
func NewScheduler(reg *Registry, inj Injector, clk clock.Clock) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	s := &Scheduler{
		reg:   reg,
		inj:   inj,
		clk:   clk,
		ticks: make(chan Tick),
	}
	reg.stopper = s
	return s
}

// Ticks delivers timer expiries. The owner of the scheduler must pass each
// one back to Fire.
func (s *Scheduler) Ticks() <-chan Tick {
	return s.ticks
}

// StartOne moves a macro to Running. It is a no-op when the macro is
// already running or is disabled.
func (s *Scheduler) StartOne(id string) error {
	e := s.reg.lookup(id)
	if e == nil {
		return fmt.Errorf("start %q: %w", id, ErrNotFound)
	}
	if !e.cfg.Enabled || e.cfg.Running {
		return nil
	}
	s.arm(e)
	e.cfg.Running = true
	return nil
}

// StopOne moves a macro to Stopped. It is a no-op when already stopped.
func (s *Scheduler) StopOne(id string) error {
	e := s.reg.lookup(id)
	if e == nil {
		return fmt.Errorf("stop %q: %w", id, ErrNotFound)
	}
	if !e.cfg.Running {
		return nil
	}
	e.timer.disarm()
	e.cfg.Running = false
	return nil
}

// StartAll starts every enabled, stopped macro.
func (s *Scheduler) StartAll() StartAllResult {
	if s.reg.Len() == 0 {
		return StartAllResult{Outcome: OutcomeNoMacros}
	}

	enabled, started := 0, 0
	for _, id := range s.reg.order {
		e := s.reg.entries[id]
		if !e.cfg.Enabled {
			continue
		}
		enabled++
		if e.cfg.Running {
			continue
		}
		s.arm(e)
		e.cfg.Running = true
		started++
	}

	switch {
	case started > 0:
		return StartAllResult{Started: started, Outcome: OutcomeStarted}
	case enabled == 0:
		return StartAllResult{Outcome: OutcomeNoneEnabled}
	default:
		return StartAllResult{Outcome: OutcomeAlreadyRunning}
	}
}

// StopAll stops every running macro and returns how many it stopped.
func (s *Scheduler) StopAll() int {
	stopped := 0
	for _, id := range s.reg.order {
		e := s.reg.entries[id]
		if !e.cfg.Running {
			continue
		}
		e.timer.disarm()
		e.cfg.Running = false
		stopped++
	}
	return stopped
}

// Fire handles one tick. Ticks for macros that were removed, stopped,
// disabled or re-armed since the tick was produced are skipped; a stale
// timer found this way is disarmed. An injection error does not change the
// macro's state.
func (s *Scheduler) Fire(t Tick) error {
	e := s.reg.lookup(t.ID)
	if e == nil || e.timer == nil || e.timer.gen != t.gen {
		return nil
	}
	if !e.cfg.Running || !e.cfg.Enabled {
		e.timer.disarm()
		e.cfg.Running = false
		return nil
	}

	if err := s.inj.Inject(e.cfg.Key); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInjectionFailed, e.cfg.DisplayName, err)
	}
	return nil
}

func (s *Scheduler) arm(e *entry) {
	if e.timer == nil {
		e.timer = &timerHandle{}
	}
	h := e.timer
	h.disarm()

	h.gen++
	h.ticker = s.clk.Ticker(e.cfg.Interval())
	h.done = make(chan struct{})
	h.armed = true

	go forward(h.ticker.C, h.done, Tick{ID: e.cfg.ID, gen: h.gen}, s.ticks)
}

func forward(c <-chan time.Time, done <-chan struct{}, t Tick, out chan<- Tick) {
	for {
		select {
		case <-done:
			return
		case <-c:
			select {
			case out <- t:
			case <-done:
				return
			}
		}
	}
}
