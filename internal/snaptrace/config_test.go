package snaptrace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, FrameW, cfg.Render.Width)
	assert.Equal(t, FrameH, cfg.Render.Height)
	assert.Equal(t, Samples, cfg.Render.Samples)
	assert.Equal(t, MaxBounces, cfg.Render.MaxBounces)
	assert.Equal(t, GIFDelayMs, cfg.Movie.DelayMs)
	assert.Equal(t, Real(MaxGIFKiB), cfg.Movie.MaxKiB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Render.Triclinic)
	assert.Equal(t, ViewScale, cfg.View.Scale)
	assert.Equal(t, "snaptrace", cfg.View.Title)

	empty, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, cfg, empty)
}

func TestWithDefaultsKeepsSetFields(t *testing.T) {
	c := &Config{Render: RenderCfg{Width: 10, Seed: 3}, Log: LogCfg{Format: "json"}}
	out := c.withDefaults()
	assert.Equal(t, 10, out.Render.Width)
	assert.Equal(t, FrameH, out.Render.Height)
	assert.Equal(t, int64(3), out.Render.Seed)
	assert.Equal(t, "json", out.Log.Format)
	assert.Equal(t, 0, c.Render.Height, "receiver untouched")
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
  "render": {"width": 64, "height": 32, "samples": 4, "workers": 2, "seed": 9},
  "movie": {"delayMs": 500, "maxKiB": 100},
  "log": {"level": "debug", "format": "json"}
}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Render.Width)
	assert.Equal(t, 32, cfg.Render.Height)
	assert.Equal(t, 4, cfg.Render.Samples)
	assert.Equal(t, 2, cfg.Render.Workers)
	assert.Equal(t, int64(9), cfg.Render.Seed)
	assert.Equal(t, MaxBounces, cfg.Render.MaxBounces)
	assert.Equal(t, 500, cfg.Movie.DelayMs)
	assert.Equal(t, Real(100), cfg.Movie.MaxKiB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
render:
  width: 48
  samples: 8
  triclinic: true
movie:
  delayMs: 200
view:
  scale: 3
  title: particles
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.Render.Width)
	assert.Equal(t, FrameH, cfg.Render.Height)
	assert.Equal(t, 8, cfg.Render.Samples)
	assert.True(t, cfg.Render.Triclinic)
	assert.Equal(t, 200, cfg.Movie.DelayMs)
	assert.Equal(t, 3, cfg.View.Scale)
	assert.Equal(t, "particles", cfg.View.Title)
}

func TestLoadConfigINI(t *testing.T) {
	path := writeFile(t, "cfg.ini", `
[render]
width = 20
height = 10
samples = 2
seed = 5

[movie]
delayMs = 100
maxKiB = 12.5

[log]
level = warn
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Render.Width)
	assert.Equal(t, 10, cfg.Render.Height)
	assert.Equal(t, 2, cfg.Render.Samples)
	assert.Equal(t, int64(5), cfg.Render.Seed)
	assert.Equal(t, 100, cfg.Movie.DelayMs)
	assert.Equal(t, 12.5, cfg.Movie.MaxKiB)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "cfg.toml", "x = 1"))
	assert.Error(t, err)
	_, err = LoadConfig(writeFile(t, "cfg.json", "{"))
	assert.Error(t, err)
	_, err = LoadConfig(writeFile(t, "cfg.yaml", "render: [1, 2"))
	assert.Error(t, err)
	_, err = LoadConfig(writeFile(t, "cfg.ini", "[nosuch]\nx = 1\n"))
	assert.Error(t, err)
	_, err = LoadConfig(writeFile(t, "cfg.json", `{"render": {"width": -1}}`))
	assert.Error(t, err)
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
