package main

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the root logger from the LOG_LEVEL and LOG_FORMAT settings.
// Unknown values fall back to info level and text output.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
