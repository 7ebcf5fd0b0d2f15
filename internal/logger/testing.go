package logger

import (
	"log/slog"
	"os"
)

// EnvTestDebug enables debug output from NewTestLogger when set.
const EnvTestDebug = "TEST_DEBUG"

// NewTestLogger creates a quiet logger for tests: WARN and above, as text on
// stdout. Setting TEST_DEBUG lowers the level to DEBUG.
func NewTestLogger() *slog.Logger {
	cfg := Config{
		Level:  slog.LevelWarn,
		Format: "text",
		Output: os.Stdout,
	}
	if os.Getenv(EnvTestDebug) != "" {
		cfg.Level = slog.LevelDebug
	}
	return NewLogger(cfg)
}
