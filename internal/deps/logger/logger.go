// Package logger installs the default slog logger. Import it for its side
// effect; programs whose stdout is taken (the quiz TUI) call SetOutput.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

func init() {
	SetOutput(os.Stdout)
}

// SetOutput replaces the default logger with a JSON logger writing to w.
func SetOutput(w io.Writer) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: Level(os.Getenv("LOG_LEVEL")),
	})))
}

// Tee keeps the current default handler and also sends every record to h.
func Tee(h slog.Handler) {
	slog.SetDefault(slog.New(fanout{slog.Default().Handler(), h}))
}

// Level parses a LOG_LEVEL value, defaulting to INFO.
func Level(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to Info if not set or invalid
	}
}
