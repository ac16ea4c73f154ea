package inject

import (
	"errors"
	"testing"

	"KeyPulse/key"
)

func TestRobotName(t *testing.T) {
	tests := []struct {
		in   key.Token
		want string
	}{
		{key.Char('a'), "a"},
		{key.Char('7'), "7"},
		{key.Named(key.Space), "space"},
		{key.Named(key.Enter), "enter"},
		{key.Named(key.Escape), "esc"},
		{key.Named(key.PageDown), "pagedown"},
		{key.Named(key.F12), "f12"},
	}
	for _, tt := range tests {
		got, err := robotName(tt.in)
		if err != nil {
			t.Errorf("robotName(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("robotName(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRobotNameRejectsZeroKey(t *testing.T) {
	if _, err := robotName(key.Token{}); !errors.Is(err, errUnsupportedKey) {
		t.Errorf("robotName(zero) error = %v, want errUnsupportedKey", err)
	}
}

func TestEveryNamedKeyIsMapped(t *testing.T) {
	for n := key.Space; n <= key.F12; n++ {
		if _, err := robotName(key.Named(n)); err != nil {
			t.Errorf("robotName(%v): %v", n, err)
		}
	}
}
