// Package keyhook provides the capture.Listener backed by the process-wide
// gohook event tap.
package keyhook

import (
	"fmt"
	"log"
	"sync"

	hook "github.com/robotn/gohook"

	"KeyPulse/capture"
	"KeyPulse/key"
)

// charUndefined is what gohook puts in Keychar for keys without a character.
const charUndefined = 0xFFFF

// Listener reports key-down events from gohook. The hook is global to the
// process, so only one Listen may be active at a time.
type Listener struct {
	mu     sync.Mutex
	active bool
}

// NewListener returns a listener ready for use.
func NewListener() *Listener {
	return &Listener{}
}

type handle struct {
	l    *Listener
	once sync.Once
	done chan struct{}
}

func (h *handle) Stop() {
	h.once.Do(func() {
		close(h.done)
		hook.End()

		h.l.mu.Lock()
		h.l.active = false
		h.l.mu.Unlock()
	})
}

// Listen starts the hook and calls onKey for every key press until the
// returned handle is stopped.
func (l *Listener) Listen(onKey func(key.Token)) (capture.Handle, error) {
	if err := checkPermission(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.active {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", capture.ErrCaptureFailed, capture.ErrBusy)
	}
	l.active = true
	l.mu.Unlock()

	events := hook.Start()
	h := &handle{l: l, done: make(chan struct{})}

	go func() {
		for {
			select {
			case <-h.done:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if tok, ok := keyFromEvent(ev); ok {
					onKey(tok)
				}
			}
		}
	}()

	return h, nil
}

// keyFromEvent reports the token for a key press. Other events and keys
// without a mapping are skipped so the capture keeps listening.
func keyFromEvent(ev hook.Event) (key.Token, bool) {
	if ev.Kind != hook.KeyDown && ev.Kind != hook.KeyHold {
		return key.Token{}, false
	}
	tok := tokenFromEvent(ev)
	if tok.IsZero() {
		log.Printf("Ignoring unmapped key (rawcode %d).", ev.Rawcode)
		return key.Token{}, false
	}
	return tok, true
}

func tokenFromEvent(ev hook.Event) key.Token {
	if ev.Keychar != charUndefined && ev.Keychar != 0 {
		if tok := key.Char(ev.Keychar); !tok.IsZero() {
			return tok
		}
	}
	tok, err := key.Parse(hook.RawcodetoKeychar(ev.Rawcode))
	if err != nil {
		return key.Token{}
	}
	return tok
}
