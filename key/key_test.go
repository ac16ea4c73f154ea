package key

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		wantKind Kind
		wantStr  string
		wantErr  bool
	}{
		{in: "a", wantKind: KindChar, wantStr: "a"},
		{in: "Z", wantKind: KindChar, wantStr: "Z"},
		{in: "7", wantKind: KindChar, wantStr: "7"},
		{in: " ", wantKind: KindNamed, wantStr: "space"},
		{in: "space", wantKind: KindNamed, wantStr: "space"},
		{in: "Key.space", wantKind: KindNamed, wantStr: "space"},
		{in: "RETURN", wantKind: KindNamed, wantStr: "enter"},
		{in: "escape", wantKind: KindNamed, wantStr: "esc"},
		{in: "F12", wantKind: KindNamed, wantStr: "f12"},
		{in: "", wantErr: true},
		{in: "\x01", wantErr: true},
		{in: "hyper", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", got.Kind(), tt.wantKind)
			}
			if got.String() != tt.wantStr {
				t.Errorf("String() = %q, want %q", got.String(), tt.wantStr)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := Named(Space).DisplayName(); got != "Space" {
		t.Errorf("Named(Space).DisplayName() = %q, want Space", got)
	}
	if got := Named(PageDown).DisplayName(); got != "Pagedown" {
		t.Errorf("Named(PageDown).DisplayName() = %q, want Pagedown", got)
	}
	if got := Char('q').DisplayName(); got != "q" {
		t.Errorf("Char('q').DisplayName() = %q, want q", got)
	}
	if got := (Token{}).DisplayName(); got != "" {
		t.Errorf("zero DisplayName() = %q, want empty", got)
	}
}

func TestZeroTokens(t *testing.T) {
	if !Named(NameUnknown).IsZero() {
		t.Error("Named(NameUnknown) should be zero")
	}
	if !Char('\n').IsZero() {
		t.Error("Char('\\n') should be zero")
	}
	if Char('x').IsZero() {
		t.Error("Char('x') should not be zero")
	}
	if Char('x') != Char('x') {
		t.Error("tokens should be comparable by value")
	}
}
