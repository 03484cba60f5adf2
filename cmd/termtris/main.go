package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/termtris/logging"
	"github.com/brensch/termtris/sound"
	"github.com/brensch/termtris/tui"
)

func main() {
	seed := flag.Int64("seed", 0, "Piece sequence seed (0 seeds from the clock)")
	demo := flag.Bool("demo", false, "Let the built-in player drive the game")
	mute := flag.Bool("mute", false, "Start with sound muted (toggle in game with m)")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: no logs)")
	debug := flag.Bool("debug", false, "Log at debug level")
	flag.Parse()

	closeLogs, err := logging.Setup(*logPath, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLogs()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	sfx := sound.NewManager()
	sfx.SetMuted(*mute)
	if err := sfx.Initialize(); err != nil {
		// No audio device is not fatal; the manager stays silent.
		slog.Warn("audio unavailable", "err", err)
	}
	defer sfx.Cleanup()

	slog.Info("starting game", "seed", *seed, "demo", *demo)

	p := tea.NewProgram(tui.NewModel(rng, sfx, *demo), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "running game: %v\n", err)
		os.Exit(1)
	}

	if m, ok := final.(tui.Model); ok {
		s := m.State()
		fmt.Printf("score %d  lines %d  level %d  pieces %d\n", s.Score, s.Lines, s.Level, s.Pieces)
	}
}
