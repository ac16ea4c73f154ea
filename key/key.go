// Package key defines Token, the input-library independent representation
// of a single key: either a printable character or a named special key.
package key

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind tells which variant a Token holds.
type Kind int

const (
	KindNone Kind = iota
	KindChar
	KindNamed
)

// Name enumerates the special keys a macro can press.
type Name int

const (
	NameUnknown Name = iota
	Space
	Enter
	Tab
	Escape
	Backspace
	Delete
	Insert
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Shift
	Ctrl
	Alt
	Cmd
	CapsLock
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

var names = map[Name]string{
	Space:     "space",
	Enter:     "enter",
	Tab:       "tab",
	Escape:    "esc",
	Backspace: "backspace",
	Delete:    "delete",
	Insert:    "insert",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	Home:      "home",
	End:       "end",
	PageUp:    "pageup",
	PageDown:  "pagedown",
	Shift:     "shift",
	Ctrl:      "ctrl",
	Alt:       "alt",
	Cmd:       "cmd",
	CapsLock:  "capslock",
	F1:        "f1",
	F2:        "f2",
	F3:        "f3",
	F4:        "f4",
	F5:        "f5",
	F6:        "f6",
	F7:        "f7",
	F8:        "f8",
	F9:        "f9",
	F10:       "f10",
	F11:       "f11",
	F12:       "f12",
}

// aliases maps the spellings used by hook libraries and users to a Name.
var aliases = map[string]Name{
	"return":    Enter,
	"escape":    Escape,
	"del":       Delete,
	"ins":       Insert,
	"control":   Ctrl,
	"lctrl":     Ctrl,
	"rctrl":     Ctrl,
	"lshift":    Shift,
	"rshift":    Shift,
	"option":    Alt,
	"lalt":      Alt,
	"ralt":      Alt,
	"command":   Cmd,
	"lcmd":      Cmd,
	"rcmd":      Cmd,
	"super":     Cmd,
	"meta":      Cmd,
	"caps lock": CapsLock,
	"page up":   PageUp,
	"page down": PageDown,
	"pgup":      PageUp,
	"pgdn":      PageDown,
}

var byString map[string]Name

func init() {
	byString = make(map[string]Name, len(names)+len(aliases))
	for n, s := range names {
		byString[s] = n
	}
	for s, n := range aliases {
		byString[s] = n
	}
}

// String returns the canonical lower-case name of the key.
func (n Name) String() string {
	if s, ok := names[n]; ok {
		return s
	}
	return "unknown"
}

// Token identifies one key. The zero value is the empty token.
type Token struct {
	kind Kind
	char rune
	name Name
}

// Char returns a token for a printable character.
func Char(r rune) Token {
	if r == utf8.RuneError || !unicode.IsPrint(r) || r == ' ' {
		if r == ' ' {
			return Named(Space)
		}
		return Token{}
	}
	return Token{kind: KindChar, char: r}
}

// Named returns a token for a special key.
func Named(n Name) Token {
	if _, ok := names[n]; !ok {
		return Token{}
	}
	return Token{kind: KindNamed, name: n}
}

func (t Token) Kind() Kind   { return t.kind }
func (t Token) Rune() rune   { return t.char }
func (t Token) Name() Name   { return t.name }
func (t Token) IsZero() bool { return t.kind == KindNone }

// String returns the token in the form accepted by Parse.
func (t Token) String() string {
	switch t.kind {
	case KindChar:
		return string(t.char)
	case KindNamed:
		return t.name.String()
	}
	return ""
}

// DisplayName is the label shown to the user: characters as typed, named
// keys capitalised ("Space", "F5").
func (t Token) DisplayName() string {
	switch t.kind {
	case KindChar:
		return string(t.char)
	case KindNamed:
		s := t.name.String()
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return ""
}

// Parse resolves a character or a key name. Single characters become Char
// tokens; anything longer is looked up as a key name, case-insensitively.
func Parse(s string) (Token, error) {
	if s == "" {
		return Token{}, fmt.Errorf("empty key")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if t := Char(r); !t.IsZero() {
			return t, nil
		}
		return Token{}, fmt.Errorf("unprintable key %q", s)
	}

	lower := strings.ToLower(strings.TrimSpace(s))
	lower = strings.TrimPrefix(lower, "key.")
	if n, ok := byString[lower]; ok {
		return Named(n), nil
	}
	return Token{}, fmt.Errorf("unknown key %q", s)
}
