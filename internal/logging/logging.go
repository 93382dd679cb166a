package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

// New creates a slog.Logger with the provided level and format. Fields tagged
// `masq:"secret"` (API keys, DSNs) are redacted before they reach any handler.
func New(level, format string) *slog.Logger {
	redact := masq.New()
	lv := levelFromString(level)

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       lv,
			ReplaceAttr: redact,
		})
	default:
		handler = clog.New(
			clog.WithWriter(os.Stdout),
			clog.WithLevel(lv),
			clog.WithReplaceAttr(redact),
		)
	}

	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
