package ui

import (
	"errors"
	"fmt"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"KeyPulse/capture"
	"KeyPulse/control"
	"KeyPulse/i18n"
	"KeyPulse/key"
	"KeyPulse/macro"
)

type fakeApp struct {
	cmds []control.Command
}

func (f *fakeApp) EnqueueCommand(cmd control.Command) {
	f.cmds = append(f.cmds, cmd)
	if cmd.Reply != nil {
		cmd.Reply <- nil
	}
}

func (f *fakeApp) StartCapture(func(capture.Result)) *capture.Session { return nil }
func (f *fakeApp) DefaultIntervalSeconds() float64                    { return 0.5 }
func (f *fakeApp) ShowInfoDialog(string, string, fyne.Size)           {}
func (f *fakeApp) ShowNotice(string)                                  {}

func findButton(o fyne.CanvasObject, text string) *widget.Button {
	switch v := o.(type) {
	case *widget.Button:
		if v.Text == text {
			return v
		}
	case *fyne.Container:
		for _, child := range v.Objects {
			if b := findButton(child, text); b != nil {
				return b
			}
		}
	}
	return nil
}

func TestNewDraft(t *testing.T) {
	tests := []struct {
		name     string
		key      key.Token
		interval string
		wantErr  error
		want     float64
	}{
		{name: "valid", key: key.Char('a'), interval: "0.5", want: 0.5},
		{name: "decimal comma", key: key.Named(key.Space), interval: "2,5", want: 2.5},
		{name: "no key", key: key.Token{}, interval: "1", wantErr: macro.ErrInvalidKey},
		{name: "zero interval", key: key.Char('a'), interval: "0", wantErr: macro.ErrInvalidInterval},
		{name: "garbage", key: key.Char('a'), interval: "fast", wantErr: macro.ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := newDraft(tt.key, tt.interval)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("newDraft error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("newDraft: %v", err)
			}
			if d.Key != tt.key || d.IntervalSeconds != tt.want || d.DisplayName != tt.key.DisplayName() {
				t.Errorf("draft = %+v", d)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	i18n.SetLang("en")

	if got := draftMessage(macro.ErrInvalidKey); got != "Please capture a key first." {
		t.Errorf("draftMessage(ErrInvalidKey) = %q", got)
	}
	wrapped := fmt.Errorf("%w: %q", macro.ErrInvalidInterval, "x")
	if got := draftMessage(wrapped); got != "Invalid interval: enter a positive number (e.g. 0.5)." {
		t.Errorf("draftMessage(ErrInvalidInterval) = %q", got)
	}

	denied := fmt.Errorf("%w: %w", capture.ErrCaptureFailed, capture.ErrPermissionDenied)
	generic := fmt.Errorf("%w: empty key", capture.ErrCaptureFailed)
	if captureMessage(denied) == captureMessage(generic) {
		t.Error("permission failures should get the remediation hint")
	}
}

func TestAnyRunning(t *testing.T) {
	if anyRunning(nil) {
		t.Error("anyRunning(nil) = true")
	}
	macros := []macro.Config{{ID: "a"}, {ID: "b", Enabled: true, Running: true}}
	if !anyRunning(macros) {
		t.Error("anyRunning should see the running macro")
	}
}

func TestMacroRowRemoveButton(t *testing.T) {
	test.NewTempApp(t)
	i18n.SetLang("zh")
	defer i18n.SetLang("en")

	a := &fakeApp{}
	row := newMacroRow(a, macro.Config{ID: "m1", DisplayName: "a", Key: key.Char('a'), IntervalSeconds: 1, Enabled: true})

	remove := findButton(row, "移除")
	if remove == nil {
		t.Fatal("row has no labelled remove button")
	}
	test.Tap(remove)
	if len(a.cmds) != 1 || a.cmds[0].Type != control.CmdRemove || a.cmds[0].ID != "m1" {
		t.Errorf("commands = %+v, want one remove for m1", a.cmds)
	}
}
