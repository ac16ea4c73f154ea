package macro

import (
	"errors"
	"time"

	"KeyPulse/key"
)

var (
	ErrInvalidInterval = errors.New("interval must be a positive number of seconds")
	ErrInvalidKey      = errors.New("no key captured")
	ErrNotFound        = errors.New("macro not found")
	ErrInjectionFailed = errors.New("key injection failed")
	ErrClosed          = errors.New("macro engine is shut down")
)

// minInterval is the finest period handed to the timer.
const minInterval = time.Millisecond

// MaxIntervalSeconds is the longest accepted interval, one day.
const MaxIntervalSeconds = 24 * 60 * 60

// ValidInterval reports whether seconds is a usable macro interval.
func ValidInterval(seconds float64) bool {
	return seconds > 0 && seconds <= MaxIntervalSeconds
}

// MacroState is the scheduler state of a single macro.
type MacroState int

const (
	StateStopped MacroState = iota
	StateRunning
)

func (s MacroState) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// Injector simulates one press-and-release of a key at the OS level.
type Injector interface {
	Inject(k key.Token) error
}

// Config holds one user-defined macro. Values handed out by the registry
// are copies; only the registry and scheduler mutate the stored ones.
type Config struct {
	ID              string
	DisplayName     string
	Key             key.Token
	IntervalSeconds float64
	Enabled         bool
	Running         bool
}

// State returns the scheduler state encoded in Running.
func (c Config) State() MacroState {
	if c.Running {
		return StateRunning
	}
	return StateStopped
}

// Interval converts IntervalSeconds to the timer period, clamped to
// [1ms, MaxIntervalSeconds].
func (c Config) Interval() time.Duration {
	if c.IntervalSeconds > MaxIntervalSeconds {
		return MaxIntervalSeconds * time.Second
	}
	d := time.Duration(c.IntervalSeconds * float64(time.Second))
	if d < minInterval {
		return minInterval
	}
	return d
}
