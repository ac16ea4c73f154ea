// Package config loads the process settings: defaults embedded with the
// binary, then a .env file, then KEYPULSE_* environment variables. Nothing
// is written back; macros themselves are never persisted.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"KeyPulse/macro"
)

// SettingsFile is the embedded defaults path.
const SettingsFile = "assets/settings.json"

// AppContentReader defines the interface for reading content from the embedded file system.
type AppContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// Settings holds the tunables of the application.
type Settings struct {
	DefaultIntervalSeconds float64 `json:"default_interval_seconds"`
	PressHoldMillis        int     `json:"press_hold_ms"`
	Sound                  bool    `json:"sound"`
	Notify                 bool    `json:"notify"`
	Debug                  bool    `json:"debug"`
	WindowWidth            float32 `json:"window_width"`
	WindowHeight           float32 `json:"window_height"`
}

// PressHold returns the key hold duration used by the injector.
func (s *Settings) PressHold() time.Duration {
	return time.Duration(s.PressHoldMillis) * time.Millisecond
}

// Default returns the built-in settings used when nothing else is given.
func Default() *Settings {
	return &Settings{
		DefaultIntervalSeconds: 0.5,
		PressHoldMillis:        50,
		Sound:                  true,
		Notify:                 true,
		WindowWidth:            520,
		WindowHeight:           420,
	}
}

// Load reads the embedded defaults from reader and applies overrides.
func Load(reader AppContentReader) (*Settings, error) {
	s := Default()

	data, err := reader.ReadFile(SettingsFile)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("No %s embedded, using built-in defaults.", SettingsFile)
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}
	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	if v, ok := lookup("KEYPULSE_DEFAULT_INTERVAL"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("KEYPULSE_DEFAULT_INTERVAL: %w", err)
		}
		s.DefaultIntervalSeconds = f
	}
	if v, ok := lookup("KEYPULSE_PRESS_HOLD_MS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("KEYPULSE_PRESS_HOLD_MS: %w", err)
		}
		s.PressHoldMillis = n
	}
	for name, dst := range map[string]*bool{
		"KEYPULSE_SOUND":  &s.Sound,
		"KEYPULSE_NOTIFY": &s.Notify,
		"KEYPULSE_DEBUG":  &s.Debug,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

func (s *Settings) validate() error {
	if !macro.ValidInterval(s.DefaultIntervalSeconds) {
		return fmt.Errorf("default interval must be in (0, %d] seconds, got %v", macro.MaxIntervalSeconds, s.DefaultIntervalSeconds)
	}
	if s.PressHoldMillis < 0 {
		return fmt.Errorf("press hold must not be negative, got %d", s.PressHoldMillis)
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
