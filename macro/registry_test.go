package macro

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"KeyPulse/key"
)

type fakeInjector struct {
	mu   sync.Mutex
	keys []key.Token
	err  error
}

func (f *fakeInjector) Inject(k key.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, k)
	return f.err
}

func (f *fakeInjector) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

func (f *fakeInjector) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRegistryAddRejectsInvalidInterval(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
	}{
		{"zero", 0},
		{"negative", -1},
		{"tiny negative", -0.001},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
		{"just over a day", MaxIntervalSeconds + 0.5},
		{"centuries", 1e12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			_, err := r.Add("a", key.Char('a'), tt.seconds)
			if !errors.Is(err, ErrInvalidInterval) {
				t.Fatalf("Add(%v) error = %v, want ErrInvalidInterval", tt.seconds, err)
			}
			if r.Len() != 0 {
				t.Errorf("Len() = %d after failed Add, want 0", r.Len())
			}
		})
	}
}

func TestRegistryAddRejectsZeroKey(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Add("none", key.Token{}, 1); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Add(zero key) error = %v, want ErrInvalidKey", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistryAddDefaults(t *testing.T) {
	r := NewRegistry()
	a, err := r.Add("", key.Named(key.Enter), 0.25)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	b, err := r.Add("b", key.Char('b'), 2)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids %q and %q should be non-empty and distinct", a.ID, b.ID)
	}
	if !a.Enabled || a.Running {
		t.Errorf("new macro Enabled=%v Running=%v, want true/false", a.Enabled, a.Running)
	}
	if a.DisplayName != "Enter" {
		t.Errorf("DisplayName = %q, want Enter", a.DisplayName)
	}
	if a.Interval() != 250*time.Millisecond {
		t.Errorf("Interval() = %v, want 250ms", a.Interval())
	}
}

func TestRegistryListKeepsInsertionOrder(t *testing.T) {
	r := NewRegistry()
	var ids []string
	for _, c := range "abcd" {
		cfg, err := r.Add("", key.Char(c), 1)
		if err != nil {
			t.Fatalf("Add(%c): %v", c, err)
		}
		ids = append(ids, cfg.ID)
	}
	if err := r.Remove(ids[1]); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	got := r.List()
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("List() has %d entries, want %d", len(got), len(want))
	}
	for i, cfg := range got {
		if cfg.DisplayName != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, cfg.DisplayName, want[i])
		}
	}
}

func TestRegistryUnknownID(t *testing.T) {
	r := NewRegistry()
	if err := r.Remove("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove error = %v, want ErrNotFound", err)
	}
	if err := r.SetEnabled("missing", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetEnabled error = %v, want ErrNotFound", err)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestRegistryAddThenRemoveSpace(t *testing.T) {
	r := NewRegistry()
	cfg, err := r.Add("Space", key.Named(key.Space), 1.0)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Remove(cfg.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if r.Len() != 0 || len(r.List()) != 0 {
		t.Errorf("registry not empty after Remove: %v", r.List())
	}
}

func TestRegistrySetEnabledIsIdempotent(t *testing.T) {
	r := NewRegistry()
	cfg, _ := r.Add("x", key.Char('x'), 1)

	for i := 0; i < 2; i++ {
		if err := r.SetEnabled(cfg.ID, false); err != nil {
			t.Fatalf("SetEnabled(false) #%d: %v", i, err)
		}
	}
	got, _ := r.Get(cfg.ID)
	if got.Enabled {
		t.Error("macro should be disabled")
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "0.5", want: 0.5},
		{in: " 2 ", want: 2},
		{in: "1,25", want: 1.25},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "86400", want: 86400},
		{in: "86401", wantErr: true},
		{in: "1e12", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInterval(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInterval) {
					t.Fatalf("ParseInterval(%q) error = %v, want ErrInvalidInterval", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInterval(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseInterval(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
