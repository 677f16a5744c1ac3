// Package logging configures slog for the server: JSON on stdout, plus an
// optional database sink for errors.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON logger on stdout as the default and returns its
// handler so more sinks can be attached once the database is up.
func Setup(appEnv string) slog.Handler {
	level := slog.LevelInfo
	if appEnv == "development" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return handler
}

// Attach replaces the default logger with one writing to base and every
// extra sink.
func Attach(base slog.Handler, sinks ...slog.Handler) {
	slog.SetDefault(slog.New(NewFanout(append([]slog.Handler{base}, sinks...)...)))
}
