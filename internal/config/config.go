// Package config loads the inspector settings from TOML, YAML or JSON and
// watches the file for changes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"inspect3d/internal/tween"
)

var ErrUnknownFormat = errors.New("config: unknown file format")

type Config struct {
	// SceneFolder names the top-level folder a scene is attached under.
	SceneFolder string `toml:"scene_folder" yaml:"scene_folder" json:"sceneFolder"`
	// Hidden lists field keys only shown while the reveal gesture is held.
	Hidden   []string `toml:"hidden" yaml:"hidden" json:"hidden"`
	LogLevel string   `toml:"log_level" yaml:"log_level" json:"logLevel"`

	Tween      Tween      `toml:"tween" yaml:"tween" json:"tween"`
	Navigation Navigation `toml:"navigation" yaml:"navigation" json:"navigation"`

	// FallbackDistance is the fly-to distance used when a node has no geometry.
	FallbackDistance float64 `toml:"fallback_distance" yaml:"fallback_distance" json:"fallbackDistance"`
}

type Tween struct {
	DurationMS int    `toml:"duration_ms" yaml:"duration_ms" json:"durationMs"`
	Easing     string `toml:"easing" yaml:"easing" json:"easing"`
}

// Navigation binds the focus moves to keys. Keys are only active while
// Modifier is held.
type Navigation struct {
	Modifier        string `toml:"modifier" yaml:"modifier" json:"modifier"`
	Parent          string `toml:"parent" yaml:"parent" json:"parent"`
	FirstChild      string `toml:"first_child" yaml:"first_child" json:"firstChild"`
	PreviousBrother string `toml:"previous_brother" yaml:"previous_brother" json:"previousBrother"`
	NextBrother     string `toml:"next_brother" yaml:"next_brother" json:"nextBrother"`
}

// DefaultHidden is the hidden field set used when none is configured.
var DefaultHidden = []string{
	"uid",
	"parent",
	"children",
	"matrixWorld",
	"matrixAutoUpdate",
	"userData",
	"elementId",
}

func Default() Config {
	return Config{
		SceneFolder: "Scene",
		Hidden:      append([]string(nil), DefaultHidden...),
		LogLevel:    "info",
		Tween: Tween{
			DurationMS: 1000,
			Easing:     "quadIn",
		},
		Navigation: Navigation{
			Modifier:        "shift",
			Parent:          "up",
			FirstChild:      "down",
			PreviousBrother: "left",
			NextBrother:     "right",
		},
		FallbackDistance: 1.0,
	}
}

func (t Tween) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// Validate rejects values the inspector cannot work with.
func (c Config) Validate() error {
	if c.SceneFolder == "" {
		return errors.New("config: scene_folder is empty")
	}
	if c.Tween.DurationMS < 0 {
		return fmt.Errorf("config: negative tween duration %d", c.Tween.DurationMS)
	}
	if _, ok := tween.Lookup(c.Tween.Easing); !ok {
		return fmt.Errorf("config: unknown easing %q", c.Tween.Easing)
	}
	if c.FallbackDistance <= 0 {
		return fmt.Errorf("config: fallback_distance must be positive, got %g", c.FallbackDistance)
	}
	return nil
}

type format int

const (
	formatTOML format = iota
	formatYAML
	formatJSON
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads path over the defaults, so a file only needs the keys it
// changes. The format is chosen by extension.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := formatOf(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := decode(data, f, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// decode unmarshals data in the given format into cfg.
func decode(data []byte, f format, cfg *Config) error {
	switch f {
	case formatTOML:
		return toml.Unmarshal(data, cfg)
	case formatYAML:
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

// Save writes cfg to path in the format matching its extension.
func Save(path string, cfg Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatTOML:
		data, err = toml.Marshal(cfg)
	case formatYAML:
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
