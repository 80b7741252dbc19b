package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

func LevelFromString(str string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case slog.LevelDebug.String():
		return slog.LevelDebug
	case slog.LevelInfo.String():
		return slog.LevelInfo
	case slog.LevelWarn.String(), "WARNING":
		return slog.LevelWarn
	case slog.LevelError.String():
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a tint console logger writing to w.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      LevelFromString(level),
		TimeFormat: time.RFC3339,
	}))
}
