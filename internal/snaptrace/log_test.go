package snaptrace

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("chatty"))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogCfg{Level: "warn", Format: "json"}, &buf)
	l.Info("dropped")
	l.Warn("large GIF", "kib", 12.5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "large GIF", rec["msg"])
	assert.Equal(t, 12.5, rec["kib"])
}

func TestDebugLogGated(t *testing.T) {
	var buf bytes.Buffer
	old := Logger
	defer SetLogger(old)
	SetLogger(NewLogger(LogCfg{Level: "debug"}, &buf))

	DebugLog("hidden %d", 1)
	assert.Empty(t, buf.String())

	Debug = true
	defer func() { Debug = false }()
	DebugLog("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestSetLoggerNil(t *testing.T) {
	old := Logger
	defer SetLogger(old)
	SetLogger(nil)
	assert.NotNil(t, Logger)
	assert.NotSame(t, old, Logger)
}

func TestDebugLogDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	old := Logger
	defer SetLogger(old)
	defer defaultLevel.Set(slog.LevelInfo)
	Logger = newDefaultLogger(&buf)

	Logger.Debug("before")
	DebugLog("hidden %d", 1)
	assert.Empty(t, buf.String())

	Debug = true
	defer func() { Debug = false }()
	DebugLog("hello %d", 1)
	assert.Contains(t, buf.String(), "hello 1")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestDebugLogKeepsCustomLevel(t *testing.T) {
	var buf bytes.Buffer
	old := Logger
	defer SetLogger(old)
	defer defaultLevel.Set(slog.LevelInfo)
	SetLogger(NewLogger(LogCfg{Level: "info"}, &buf))

	Debug = true
	defer func() { Debug = false }()
	DebugLog("quiet %d", 1)
	assert.Empty(t, buf.String())
}
