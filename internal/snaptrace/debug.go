package snaptrace

import (
	"fmt"
	"log/slog"
	"sync"
)

func DebugLog(format string, args ...interface{}) {
	if !Debug {
		return
	}
	enableDebugLevel()
	Logger.Debug(fmt.Sprintf(format, args...))
}

// enableDebugLevel lets the default logger print debug records. Loggers set with
// SetLogger keep their own level.
func enableDebugLevel() {
	if defaultLevel.Level() > slog.LevelDebug {
		defaultLevel.Set(slog.LevelDebug)
	}
}

var once sync.Once

func DebugLogOnce(format string, args ...interface{}) {
	if !Debug {
		return
	}
	once.Do(func() {
		enableDebugLevel()
		Logger.Debug(fmt.Sprintf(format, args...))
	})
}
