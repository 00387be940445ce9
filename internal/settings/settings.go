// Package settings persists the operator-tunable lighting parameters to
// a TOML file. The lighting core reads them on demand and never writes
// the file outside the command surface.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Color is the fallback display color with channels in [0, 1].
type Color struct {
	R float64 `toml:"r" json:"r"`
	G float64 `toml:"g" json:"g"`
	B float64 `toml:"b" json:"b"`
}

// Settings is the persisted settings blob.
type Settings struct {
	// DefaultColor is shown when no holiday pattern matches the date.
	DefaultColor Color `toml:"default_color" json:"default_color"`

	// DefaultIntensity scales normal night lighting before the ambient
	// dimming factor is applied.
	DefaultIntensity float64 `toml:"default_intensity" json:"default_intensity"`
	// ActiveIntensity applies while the motion trip is active.
	ActiveIntensity float64 `toml:"active_intensity" json:"active_intensity"`

	// MinLux and MaxLux calibrate the ambient-light sensor. Readings at
	// or below MinLux count as dark; MinLux is also the daytime
	// storm-light trigger threshold.
	MinLux float64 `toml:"min_lux" json:"min_lux"`
	MaxLux float64 `toml:"max_lux" json:"max_lux"`

	// LateNightHour and LateNightMinute set the daily late-night alarm.
	LateNightHour   int `toml:"late_night_hour" json:"late_night_hour"`
	LateNightMinute int `toml:"late_night_minute" json:"late_night_minute"`

	// MotionTimeoutMin keeps the lights on this many minutes after the
	// motion sensor releases.
	MotionTimeoutMin int `toml:"motion_timeout_min" json:"motion_timeout_min"`
	// LateNightTimeoutMin limits a manual toggle-on during late night.
	LateNightTimeoutMin int `toml:"late_night_timeout_min" json:"late_night_timeout_min"`
}

// Defaults matches the original installation's hardware build.
func Defaults() Settings {
	return Settings{
		DefaultColor:        Color{R: 1, G: 1, B: 1},
		DefaultIntensity:    0.5,
		ActiveIntensity:     1.0,
		MinLux:              30,
		MaxLux:              1500,
		LateNightHour:       23,
		LateNightMinute:     0,
		MotionTimeoutMin:    15,
		LateNightTimeoutMin: 20,
	}
}

// Store owns the settings file. All access goes through Get and Update so
// command handlers and the controller never race on the blob.
type Store struct {
	path string

	mu sync.RWMutex
	s  Settings
}

// NewStore creates a store backed by the given path. Call Load before
// first use.
func NewStore(path string) *Store {
	if path == "" {
		path = "rooflights.toml"
	}
	return &Store{path: path, s: Defaults()}
}

// Path returns the backing file path.
func (st *Store) Path() string {
	return st.path
}

// Load reads the settings file. A missing file leaves the defaults in
// place and is not an error.
func (st *Store) Load() error {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read settings: %w", err)
	}

	s := Defaults()
	if err := toml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}

	st.mu.Lock()
	st.s = s
	st.mu.Unlock()
	return nil
}

// Get returns a copy of the current settings.
func (st *Store) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

// Replace swaps in externally loaded settings without writing the file.
// Used by the config watcher when the file changes on disk.
func (st *Store) Replace(s Settings) {
	st.mu.Lock()
	st.s = s
	st.mu.Unlock()
}

// Update applies fn to the settings and persists the result. The file is
// written before Update returns so a command only reports success once
// the blob is durable.
func (st *Store) Update(fn func(*Settings)) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	next := st.s
	fn(&next)

	if err := st.write(next); err != nil {
		return err
	}
	st.s = next
	return nil
}

// Save persists the current settings unchanged.
func (st *Store) Save() error {
	return st.Update(func(*Settings) {})
}

func (st *Store) write(s Settings) error {
	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

// LoadFile reads a settings file without a Store. Used by the config
// watcher's loader callback.
func LoadFile(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, nil
}
