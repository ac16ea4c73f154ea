// Package inject simulates key presses at the OS input level with robotgo.
package inject

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"

	"KeyPulse/key"
)

// DefaultHold is how long a key stays down between press and release.
const DefaultHold = 50 * time.Millisecond

var errUnsupportedKey = errors.New("unsupported key")

// Robot presses and releases keys. Calls are serialized so that two macros
// firing together never interleave their press/release pairs.
type Robot struct {
	mu   sync.Mutex
	hold time.Duration
}

// NewRobot returns an injector holding each key for hold.
func NewRobot(hold time.Duration) *Robot {
	if hold < 0 {
		hold = 0
	}
	return &Robot{hold: hold}
}

// Inject performs one press-hold-release of k.
func (r *Robot) Inject(k key.Token) error {
	name, err := robotName(k)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := robotgo.KeyToggle(name, "down"); err != nil {
		return fmt.Errorf("press %s: %w", name, err)
	}
	if r.hold > 0 {
		time.Sleep(r.hold)
	}
	if err := robotgo.KeyToggle(name, "up"); err != nil {
		return fmt.Errorf("release %s: %w", name, err)
	}
	return nil
}

// robotNames maps named keys to robotgo's key strings.
var robotNames = map[key.Name]string{
	key.Space:     "space",
	key.Enter:     "enter",
	key.Tab:       "tab",
	key.Escape:    "esc",
	key.Backspace: "backspace",
	key.Delete:    "delete",
	key.Insert:    "insert",
	key.Up:        "up",
	key.Down:      "down",
	key.Left:      "left",
	key.Right:     "right",
	key.Home:      "home",
	key.End:       "end",
	key.PageUp:    "pageup",
	key.PageDown:  "pagedown",
	key.Shift:     "shift",
	key.Ctrl:      "ctrl",
	key.Alt:       "alt",
	key.Cmd:       "cmd",
	key.CapsLock:  "capslock",
	key.F1:        "f1",
	key.F2:        "f2",
	key.F3:        "f3",
	key.F4:        "f4",
	key.F5:        "f5",
	key.F6:        "f6",
	key.F7:        "f7",
	key.F8:        "f8",
	key.F9:        "f9",
	key.F10:       "f10",
	key.F11:       "f11",
	key.F12:       "f12",
}

func robotName(k key.Token) (string, error) {
	switch k.Kind() {
	case key.KindChar:
		return string(k.Rune()), nil
	case key.KindNamed:
		if name, ok := robotNames[k.Name()]; ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errUnsupportedKey, k.String())
}
