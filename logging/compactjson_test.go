package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimRight(buf.String(), "\n")
	if strings.Contains(line, "\n") {
		t.Fatalf("expected a single line, got:\n%s", buf.String())
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("line is not valid JSON: %v\n%s", err, line)
	}
	return m
}

func TestCompactJSONHandler_SingleLineRecord(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactJSONHandler(&buf, nil))

	log.Info("piece locked", "kind", 3, "rows", 2)

	m := logLine(t, &buf)
	if m["msg"] != "piece locked" {
		t.Fatalf("msg=%v", m["msg"])
	}
	if m["level"] != "INFO" {
		t.Fatalf("level=%v", m["level"])
	}
	if m["kind"] != float64(3) || m["rows"] != float64(2) {
		t.Fatalf("attrs: kind=%v rows=%v", m["kind"], m["rows"])
	}
	if _, ok := m["time"]; !ok {
		t.Fatal("missing time")
	}
}

func TestCompactJSONHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Debug("dropped")
	if buf.Len() != 0 {
		t.Fatalf("debug record was not filtered: %s", buf.String())
	}

	log.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("warn record was filtered")
	}
}

func TestCompactJSONHandler_GroupsBecomeDottedKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactJSONHandler(&buf, nil))

	log.WithGroup("game").With("level", 4).Info("tick", slog.Group("piece", "x", 3))

	m := logLine(t, &buf)
	if m["game.level"] != float64(4) {
		t.Fatalf("game.level=%v", m["game.level"])
	}
	if m["game.piece.x"] != float64(3) {
		t.Fatalf("game.piece.x=%v", m["game.piece.x"])
	}
}

func TestCompactJSONHandler_WithAttrsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(NewCompactJSONHandler(&buf, nil))

	child := base.With("mode", "demo")
	base.Info("plain")

	m := logLine(t, &buf)
	if _, ok := m["mode"]; ok {
		t.Fatal("child attr leaked into parent handler")
	}

	buf.Reset()
	child.Info("demo line")
	m = logLine(t, &buf)
	if m["mode"] != "demo" {
		t.Fatalf("mode=%v", m["mode"])
	}
}
