package snaptrace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

type RenderCfg struct {
	Width      int   `json:"width" yaml:"width" gcfg:"width"`
	Height     int   `json:"height" yaml:"height" gcfg:"height"`
	Samples    int   `json:"samples" yaml:"samples" gcfg:"samples"`
	MaxBounces int   `json:"maxBounces,omitempty" yaml:"maxBounces,omitempty" gcfg:"maxBounces"`
	Workers    int   `json:"workers,omitempty" yaml:"workers,omitempty" gcfg:"workers"`
	Seed       int64 `json:"seed,omitempty" yaml:"seed,omitempty" gcfg:"seed"` // 0 => clock
	Triclinic  bool  `json:"triclinic,omitempty" yaml:"triclinic,omitempty" gcfg:"triclinic"`
}

type MovieCfg struct {
	DelayMs int  `json:"delayMs" yaml:"delayMs" gcfg:"delayMs"`
	MaxKiB  Real `json:"maxKiB" yaml:"maxKiB" gcfg:"maxKiB"`
}

type LogCfg struct {
	Level  string `json:"level" yaml:"level" gcfg:"level"`    // debug, info, warn, error
	Format string `json:"format" yaml:"format" gcfg:"format"` // text, json
}

type ViewCfg struct {
	Scale int    `json:"scale,omitempty" yaml:"scale,omitempty" gcfg:"scale"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" gcfg:"title"`
}

// Config is read from JSON, YAML or gcfg (INI) files. Zero fields take defaults.
type Config struct {
	Render RenderCfg `json:"render" yaml:"render" gcfg:"render"`
	Movie  MovieCfg  `json:"movie" yaml:"movie" gcfg:"movie"`
	Log    LogCfg    `json:"log" yaml:"log" gcfg:"log"`
	View   ViewCfg   `json:"view" yaml:"view" gcfg:"view"`
}

// DefaultConfig renders 300×300 frames with 100 samples, 1 s per movie frame.
func DefaultConfig() *Config {
	return (&Config{}).withDefaults()
}

// withDefaults returns a copy with every unset field defaulted.
func (c *Config) withDefaults() *Config {
	cfg := *c
	if cfg.Render.Width <= 0 {
		cfg.Render.Width = FrameW
	}
	if cfg.Render.Height <= 0 {
		cfg.Render.Height = FrameH
	}
	if cfg.Render.Samples <= 0 {
		cfg.Render.Samples = Samples
	}
	if cfg.Render.MaxBounces <= 0 {
		cfg.Render.MaxBounces = MaxBounces
	}
	if cfg.Movie.DelayMs <= 0 {
		cfg.Movie.DelayMs = GIFDelayMs
	}
	if cfg.Movie.MaxKiB <= 0 {
		cfg.Movie.MaxKiB = MaxGIFKiB
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.View.Scale <= 0 {
		cfg.View.Scale = ViewScale
	}
	if cfg.View.Title == "" {
		cfg.View.Title = "snaptrace"
	}
	return &cfg
}

// LoadConfig reads path by extension: .json, .yaml/.yml or .ini/.gcfg/.conf.
// An empty path yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case ".ini", ".gcfg", ".conf":
		if err := gcfg.ReadFileInto(&cfg, path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if cfg.Render.Width < 0 || cfg.Render.Height < 0 || cfg.Render.Samples < 0 {
		return nil, fmt.Errorf("%s: width, height and samples must not be negative", path)
	}
	out := cfg.withDefaults()
	DebugLog("Loaded config from %s: size=(%d, %d), SPP=%d, delay=%dms", path, out.Render.Width, out.Render.Height, out.Render.Samples, out.Movie.DelayMs)
	return out, nil
}
