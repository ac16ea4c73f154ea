// Package capture implements the one-shot "press the key you want" interaction
// used when defining a macro.
//
// A Session listens on its own goroutine and hands exactly one result back
// to the caller. The listener is asked to stop as soon as a key arrives;
// the result is then dispatched into the caller's context, where a single
// compare-and-swap on the session state decides between delivering it and
// having it suppressed by Cancel. Whichever runs first wins, the other is a
// no-op.
package capture

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"KeyPulse/key"
)

var (
	// ErrCaptureFailed covers every capture that produced no usable key.
	ErrCaptureFailed = errors.New("key capture failed")
	// ErrPermissionDenied is wrapped alongside ErrCaptureFailed when the OS
	// refused access to the input stream.
	ErrPermissionDenied = errors.New("input monitoring permission denied")
	// ErrBusy is returned by listeners that are already capturing.
	ErrBusy = errors.New("another key capture is in progress")
)

// Handle stops a running listener. Stop must be safe to call more than once.
type Handle interface {
	Stop()
}

// Listener is the capture capability: it reports physical key presses to
// onKey until the returned handle is stopped.
type Listener interface {
	Listen(onKey func(key.Token)) (Handle, error)
}

// Result is what a session reports. Err is nil exactly when Key is usable.
type Result struct {
	Key key.Token
	Err error
}

// Dispatcher runs fn in the caller's execution context, e.g. fyne.Do.
type Dispatcher func(fn func())

// Option configures a Session.
type Option func(*Session)

// WithDispatcher routes result delivery through d instead of calling the
// result callback on the listener goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(s *Session) { s.dispatch = d }
}

const (
	stateListening int32 = iota
	stateDelivered
	stateCancelled
)

// Session is a single capture attempt. It cannot be restarted.
type Session struct {
	onResult func(Result)
	dispatch Dispatcher
	state    atomic.Int32
	done     chan struct{}

	mu            sync.Mutex
	handle        Handle
	stopRequested bool
}

// Start begins listening for one key press and returns immediately.
// onResult is called at most once, and never after Cancel.
func Start(l Listener, onResult func(Result), opts ...Option) *Session {
	s := &Session{
		onResult: onResult,
		dispatch: func(fn func()) { fn() },
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.listen(l)
	return s
}

func (s *Session) listen(l Listener) {
	h, err := l.Listen(s.keyPressed)
	if err != nil {
		s.finish(Result{Err: captureError(err)})
		return
	}

	s.mu.Lock()
	s.handle = h
	stop := s.stopRequested
	s.mu.Unlock()

	// A key or a Cancel may have arrived before Listen returned.
	if stop {
		h.Stop()
	}
}

func (s *Session) keyPressed(k key.Token) {
	s.requestStop()
	if k.IsZero() {
		s.finish(Result{Err: fmt.Errorf("%w: empty key", ErrCaptureFailed)})
		return
	}
	s.finish(Result{Key: k})
}

func (s *Session) requestStop() {
	s.mu.Lock()
	if s.stopRequested {
		s.mu.Unlock()
		return
	}
	s.stopRequested = true
	h := s.handle
	s.mu.Unlock()

	if h != nil {
		h.Stop()
	}
}

func (s *Session) finish(r Result) {
	s.dispatch(func() {
		if !s.state.CompareAndSwap(stateListening, stateDelivered) {
			return
		}
		if s.onResult != nil {
			s.onResult(r)
		}
		close(s.done)
	})
}

// Cancel stops the listener and suppresses any result not yet delivered.
// It is safe to call repeatedly and after the session has completed.
func (s *Session) Cancel() {
	if s.state.CompareAndSwap(stateListening, stateCancelled) {
		close(s.done)
	}
	s.requestStop()
}

// Done is closed once the session has delivered a result or been cancelled.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Cancelled reports whether Cancel won over delivery.
func (s *Session) Cancelled() bool {
	return s.state.Load() == stateCancelled
}

func captureError(err error) error {
	if errors.Is(err, ErrCaptureFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCaptureFailed, err)
}
