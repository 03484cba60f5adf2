// Package tui drives the game loop inside a bubbletea program: keyboard
// input, gravity scheduling, demo playback and rendering.
package tui

import (
	"log/slog"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/termtris/bot"
	"github.com/brensch/termtris/game"
	"github.com/brensch/termtris/rules"
	"github.com/brensch/termtris/sound"
)

// demoInterval paces the planner's command playback. It is faster than
// gravity at low levels so the bot visibly steers, but slow enough to watch.
const demoInterval = 80 * time.Millisecond

// gravityMsg fires a gravity step. The generation stamp lets stale ticks be
// discarded: whenever the timer is rescheduled (lock, soft drop, level up)
// the model bumps its generation and in-flight ticks no longer match.
type gravityMsg struct {
	gen int
}

// demoMsg asks the planner for (or replays) the next demo command.
type demoMsg struct{}

// Model is the bubbletea model for one game session.
type Model struct {
	state *game.GameState
	rng   *rand.Rand
	sfx   *sound.Manager

	gravityGen int
	demo       bool
	demoQueue  []int

	width  int
	height int
}

// NewModel builds a session around a fresh game. rng may be nil for
// deterministic piece order; sfx must be non-nil (use an uninitialized
// manager to stay silent).
func NewModel(rng *rand.Rand, sfx *sound.Manager, demo bool) Model {
	return Model{
		state: rules.NewGame(rng),
		rng:   rng,
		sfx:   sfx,
		demo:  demo,
	}
}

// State exposes the final game state after the program exits.
func (m Model) State() *game.GameState {
	return m.state
}

func gravityCmd(gen int, level int) tea.Cmd {
	return tea.Tick(rules.GravityInterval(level), func(time.Time) tea.Msg {
		return gravityMsg{gen: gen}
	})
}

func demoCmd() tea.Cmd {
	return tea.Tick(demoInterval, func(time.Time) tea.Msg {
		return demoMsg{}
	})
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{gravityCmd(m.gravityGen, m.state.Level)}
	if m.demo {
		cmds = append(cmds, demoCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case gravityMsg:
		if msg.gen != m.gravityGen {
			return m, nil
		}
		next, out := rules.Tick(m.state, m.rng)
		m.react(m.state, next, out)
		m.state = next
		if m.state.Over {
			return m, tea.Quit
		}
		if out.Locked {
			// Gravity locked the piece out from under the demo plan.
			m.demoQueue = nil
		}
		m.gravityGen++
		return m, gravityCmd(m.gravityGen, m.state.Level)

	case demoMsg:
		return m.stepDemo()
	}
	return m, nil
}

// handleKey maps a key press to a command and applies it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd int
	switch msg.String() {
	case "left", "a", "h":
		cmd = rules.MoveLeft
	case "right", "d", "l":
		cmd = rules.MoveRight
	case "down", "s", "j":
		cmd = rules.SoftDrop
	case "up", "w", "k", "x":
		cmd = rules.RotateCW
	case " ":
		cmd = rules.HardDrop
	case "p":
		cmd = rules.TogglePause
	case "m":
		m.sfx.SetMuted(!m.sfx.Muted())
		return m, nil
	case "q", "esc", "ctrl+c":
		cmd = rules.Quit
	default:
		return m, nil
	}

	if m.demo && cmd != rules.Quit && cmd != rules.TogglePause {
		// The planner owns the piece in demo mode.
		return m, nil
	}

	next, out := rules.Apply(m.state, cmd, m.rng)
	m.react(m.state, next, out)
	m.state = next
	if m.state.Over {
		return m, tea.Quit
	}
	if out.ResetGravity {
		m.gravityGen++
		return m, gravityCmd(m.gravityGen, m.state.Level)
	}
	return m, nil
}

// stepDemo replays one planned command, planning afresh whenever the queue
// runs dry.
func (m Model) stepDemo() (tea.Model, tea.Cmd) {
	if m.state.Over {
		return m, tea.Quit
	}
	if m.state.Paused {
		return m, demoCmd()
	}

	if len(m.demoQueue) == 0 {
		m.demoQueue = bot.Plan(m.state)
		if len(m.demoQueue) == 0 {
			return m, demoCmd()
		}
	}
	cmd := m.demoQueue[0]
	m.demoQueue = m.demoQueue[1:]

	next, out := rules.Apply(m.state, cmd, m.rng)
	m.react(m.state, next, out)
	m.state = next
	if m.state.Over {
		return m, tea.Quit
	}
	if out.Locked {
		// Piece changed under the plan; throw the rest away.
		m.demoQueue = nil
	}
	cmds := []tea.Cmd{demoCmd()}
	if out.ResetGravity {
		m.gravityGen++
		cmds = append(cmds, gravityCmd(m.gravityGen, m.state.Level))
	}
	return m, tea.Batch(cmds...)
}

// react fires sounds and logs for whatever a transition did.
func (m *Model) react(before, after *game.GameState, out rules.Outcome) {
	switch {
	case after.Over && !before.Over:
		m.sfx.PlayGameOver()
		slog.Info("game over",
			"score", after.Score, "lines", after.Lines,
			"level", after.Level, "pieces", after.Pieces)
	case out.RowsCleared > 0:
		if out.LeveledUp {
			m.sfx.PlayLevelUp()
			slog.Info("level up", "level", after.Level)
		} else {
			m.sfx.PlayClear(out.RowsCleared)
		}
		slog.Debug("rows cleared", "rows", out.RowsCleared, "score", after.Score)
	case out.Locked:
		m.sfx.PlayLock()
	case after.X != before.X:
		m.sfx.PlayMove()
	case after.Rot != before.Rot:
		m.sfx.PlayRotate()
	}
}
