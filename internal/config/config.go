// Package config loads the taskpoints settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xqrs/tview"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the taskpoints configuration file.
//
// Example:
//
//	log:
//	  level: debug
//	  file: /tmp/taskpoints.log
//	list:
//	  item_height: 2
//	  kinetic:
//	    interval_ms: 30
//	    decay: 0.85
//	  keys:
//	    up: [up, k, ctrl+p]
//	store:
//	  path: taskpoints.db
type Config struct {
	Log   LogConfig   `yaml:"log"`
	List  ListConfig  `yaml:"list"`
	Store StoreConfig `yaml:"store"`
}

// LogConfig selects the log level and the file logs are written to. The
// terminal belongs to the UI, so there is no console output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ListConfig tunes the task point list.
type ListConfig struct {
	// ItemHeight is the number of terminal lines per row.
	ItemHeight int `yaml:"item_height"`
	// DragThreshold is the pointer travel in lines that turns a tap into a
	// drag. Zero uses a fifth of the row height.
	DragThreshold int `yaml:"drag_threshold"`
	// WheelStep is the number of rows scrolled per wheel notch.
	WheelStep int `yaml:"wheel_step"`
	// Arrows is one of none, start, end or both.
	Arrows string `yaml:"arrows"`
	// Mouse enables pointer input.
	Mouse   bool          `yaml:"mouse"`
	Kinetic KineticConfig `yaml:"kinetic"`
	// Keys overrides key bindings by action name (activate, up, down, left,
	// right, home, end, page_up, page_down).
	Keys map[string][]string `yaml:"keys,omitempty"`
}

// KineticConfig tunes inertial scrolling.
type KineticConfig struct {
	IntervalMS  int     `yaml:"interval_ms"`
	Decay       float64 `yaml:"decay"`
	MinVelocity float64 `yaml:"min_velocity"`
}

// StoreConfig locates the task point database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	kinetic := tview.DefaultKineticConfig()
	return Config{
		Log: LogConfig{Level: "info"},
		List: ListConfig{
			ItemHeight: 2,
			WheelStep:  1,
			Arrows:     "both",
			Mouse:      true,
			Kinetic: KineticConfig{
				IntervalMS:  int(kinetic.Interval / time.Millisecond),
				Decay:       kinetic.Decay,
				MinVelocity: kinetic.MinVelocity,
			},
		},
		Store: StoreConfig{Path: "taskpoints.db"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var arrows = map[string]tview.ScrollBarArrows{
	"none":  tview.ScrollBarArrowsNone,
	"start": tview.ScrollBarArrowsStart,
	"end":   tview.ScrollBarArrowsEnd,
	"both":  tview.ScrollBarArrowsBoth,
}

// Validate checks value ranges. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	l := c.List
	switch {
	case l.ItemHeight < 1:
		return fmt.Errorf("%w: list.item_height must be at least 1, got %d", ErrInvalidConfig, l.ItemHeight)
	case l.DragThreshold < 0:
		return fmt.Errorf("%w: list.drag_threshold must not be negative", ErrInvalidConfig)
	case l.WheelStep < 1:
		return fmt.Errorf("%w: list.wheel_step must be at least 1", ErrInvalidConfig)
	case l.Kinetic.IntervalMS < 1:
		return fmt.Errorf("%w: list.kinetic.interval_ms must be at least 1", ErrInvalidConfig)
	case l.Kinetic.Decay <= 0 || l.Kinetic.Decay >= 1:
		return fmt.Errorf("%w: list.kinetic.decay must be in (0, 1), got %g", ErrInvalidConfig, l.Kinetic.Decay)
	case l.Kinetic.MinVelocity <= 0:
		return fmt.Errorf("%w: list.kinetic.min_velocity must be positive", ErrInvalidConfig)
	}
	if _, ok := arrows[l.Arrows]; !ok {
		return fmt.Errorf("%w: list.arrows %q is not one of none, start, end, both", ErrInvalidConfig, l.Arrows)
	}
	for action := range l.Keys {
		if _, ok := keyActions[action]; !ok {
			return fmt.Errorf("%w: list.keys: unknown action %q", ErrInvalidConfig, action)
		}
	}
	return nil
}

// ScrollBarArrows returns the configured arrows.
func (l ListConfig) ScrollBarArrows() tview.ScrollBarArrows {
	return arrows[l.Arrows]
}

// KineticConfig converts the kinetic section for tview.List.SetKinetic.
func (l ListConfig) KineticConfig() tview.KineticConfig {
	kinetic := tview.DefaultKineticConfig()
	kinetic.Interval = time.Duration(l.Kinetic.IntervalMS) * time.Millisecond
	kinetic.Decay = l.Kinetic.Decay
	kinetic.MinVelocity = l.Kinetic.MinVelocity
	return kinetic
}
