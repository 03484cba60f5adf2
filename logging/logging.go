// Package logging routes structured logs to a file. The terminal belongs to
// the renderer while the game runs, so nothing may write to stdout or stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup opens (or creates) the log file at path, installs a compact JSON
// logger as the slog default, and returns a close func. An empty path
// discards all logs.
func Setup(path string, debug bool) (func() error, error) {
	var w io.Writer = io.Discard
	closer := func() error { return nil }

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
		closer = f.Close
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(NewCompactJSONHandler(w, &slog.HandlerOptions{Level: level})))
	return closer, nil
}
