package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/termtris/sound"
)

func testModel(t *testing.T, demo bool) Model {
	t.Helper()
	// The sound manager is never initialized in tests, so it stays silent.
	return NewModel(nil, sound.NewManager(), demo)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, cmd
}

func TestUpdate_ArrowAndLetterKeysMove(t *testing.T) {
	for _, k := range []string{"left", "a", "h"} {
		m := testModel(t, false)
		x := m.State().X
		m, _ = step(t, m, key(k))
		if m.State().X != x-1 {
			t.Fatalf("key %q: x=%d want=%d", k, m.State().X, x-1)
		}
	}
	for _, k := range []string{"right", "d", "l"} {
		m := testModel(t, false)
		x := m.State().X
		m, _ = step(t, m, key(k))
		if m.State().X != x+1 {
			t.Fatalf("key %q: x=%d want=%d", k, m.State().X, x+1)
		}
	}
}

func TestUpdate_HardDropLocksAndSpawns(t *testing.T) {
	m := testModel(t, false)
	pieces := m.State().Pieces
	m, _ = step(t, m, key(" "))
	if m.State().Pieces != pieces+1 {
		t.Fatalf("pieces=%d want=%d after hard drop", m.State().Pieces, pieces+1)
	}
}

func TestUpdate_QuitKeysEndTheGame(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		m := testModel(t, false)
		msg := key(k)
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		if k == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		m, cmd := step(t, m, msg)
		if !m.State().Over {
			t.Fatalf("key %q should end the game", k)
		}
		if cmd == nil {
			t.Fatalf("key %q should return a quit command", k)
		}
	}
}

func TestUpdate_StaleGravityTickIgnored(t *testing.T) {
	m := testModel(t, false)
	y := m.State().Y

	m, cmd := step(t, m, gravityMsg{gen: m.gravityGen - 1})
	if m.State().Y != y {
		t.Fatal("stale gravity tick must not move the piece")
	}
	if cmd != nil {
		t.Fatal("stale gravity tick must not reschedule")
	}
}

func TestUpdate_GravityTickDescendsAndReschedules(t *testing.T) {
	m := testModel(t, false)
	y := m.State().Y

	m, cmd := step(t, m, gravityMsg{gen: m.gravityGen})
	if m.State().Y != y+1 {
		t.Fatalf("y=%d want=%d after gravity", m.State().Y, y+1)
	}
	if cmd == nil {
		t.Fatal("gravity must reschedule itself")
	}
}

func TestUpdate_SoftDropInvalidatesPendingGravity(t *testing.T) {
	m := testModel(t, false)
	gen := m.gravityGen

	m, _ = step(t, m, key("down"))
	if m.gravityGen == gen {
		t.Fatal("soft drop should bump the gravity generation")
	}

	y := m.State().Y
	m, _ = step(t, m, gravityMsg{gen: gen})
	if m.State().Y != y {
		t.Fatal("pre-drop gravity tick should have been discarded")
	}
}

func TestUpdate_DemoModeIgnoresMovementKeys(t *testing.T) {
	m := testModel(t, true)
	x := m.State().X

	m, _ = step(t, m, key("left"))
	if m.State().X != x {
		t.Fatal("demo mode must ignore movement keys")
	}

	m, _ = step(t, m, key("p"))
	if !m.State().Paused {
		t.Fatal("pause must still work in demo mode")
	}

	m, _ = step(t, m, key("q"))
	if !m.State().Over {
		t.Fatal("quit must still work in demo mode")
	}
}

func TestUpdate_DemoStepPlansAndPlays(t *testing.T) {
	m := testModel(t, true)

	// First demo step plans a placement and plays its first command.
	m, cmd := step(t, m, demoMsg{})
	if cmd == nil {
		t.Fatal("demo step must schedule the next one")
	}

	// Keep stepping; within a couple of plans a piece must lock.
	start := m.State().Pieces
	for i := 0; i < 40 && m.State().Pieces == start; i++ {
		m, _ = step(t, m, demoMsg{})
	}
	if m.State().Pieces == start {
		t.Fatal("demo playback never locked a piece")
	}
}

func TestUpdate_MuteKeyTogglesSound(t *testing.T) {
	m := testModel(t, false)
	if m.sfx.Muted() {
		t.Fatal("sound starts unmuted")
	}
	m, _ = step(t, m, key("m"))
	if !m.sfx.Muted() {
		t.Fatal("m should mute")
	}
	m, _ = step(t, m, key("m"))
	if m.sfx.Muted() {
		t.Fatal("m should unmute")
	}
}

func TestView_ShowsPanelAndBanners(t *testing.T) {
	m := testModel(t, false)
	v := m.View()
	for _, want := range []string{"score", "lines", "level", "next"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
	if strings.Contains(v, "PAUSED") {
		t.Fatal("fresh game should not show the pause banner")
	}

	m, _ = step(t, m, key("p"))
	if !strings.Contains(m.View(), "PAUSED") {
		t.Fatal("paused game should show the pause banner")
	}

	m, _ = step(t, m, key("p"))
	m, _ = step(t, m, key("q"))
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Fatal("finished game should show the game over banner")
	}
}
