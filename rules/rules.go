// Package rules implements the game's transition functions: player commands,
// gravity ticks, locking, line clearing, scoring and spawning.
//
// Every transition takes the current state and returns a new one (clone,
// mutate, return), so callers can keep histories or probe hypothetical moves
// without affecting the live game. There are no recoverable errors: illegal
// moves are silently rejected and the only terminal outcome is game over.
package rules

import (
	"math"
	"math/rand"
	"time"

	"github.com/brensch/termtris/game"
)

// Commands accepted by Apply. The input collaborator is responsible for
// decoding raw key codes (including escape sequences) down to exactly these.
const (
	MoveLeft = iota
	MoveRight
	SoftDrop
	RotateCW
	HardDrop
	TogglePause
	Quit
)

// Outcome reports what a transition did, so collaborators (sound, tick
// scheduling) can react without diffing states.
type Outcome struct {
	Locked       bool
	RowsCleared  int
	LeveledUp    bool
	ResetGravity bool
}

// scoreTable holds the per-clear score multipliers for 0..4 simultaneous
// rows. Clearing more than 4 rows at once is impossible with 4-cell pieces,
// but lock clamps the index anyway rather than trusting that.
var scoreTable = [5]int{0, 40, 100, 300, 1200}

// NewGame returns a fresh state with the first piece spawned and a lookahead
// drawn. Pass a nil rng for deterministic piece selection (tests).
func NewGame(rng *rand.Rand) *game.GameState {
	s := game.NewGameState()
	s.Next = drawKind(s, rng)
	spawn(s, rng)
	return s
}

// Apply executes one player command against state and returns the resulting
// state. While paused, only TogglePause and Quit are live. After game over
// every command is a no-op.
func Apply(state *game.GameState, cmd int, rng *rand.Rand) (*game.GameState, Outcome) {
	var out Outcome
	if state.Over {
		return state, out
	}

	switch cmd {
	case Quit:
		next := state.Clone()
		next.Over = true
		return next, out
	case TogglePause:
		next := state.Clone()
		next.Paused = !next.Paused
		return next, out
	}

	if state.Paused {
		return state, out
	}

	next := state.Clone()
	switch cmd {
	case MoveLeft:
		if !next.Board.Blocked(next.PieceMask(), next.X-1, next.Y) {
			next.X--
		}
	case MoveRight:
		if !next.Board.Blocked(next.PieceMask(), next.X+1, next.Y) {
			next.X++
		}
	case RotateCW:
		// No wall kicks: rotation against a wall or the stack simply fails.
		rot := (next.Rot + 1) % 4
		if !next.Board.Blocked(game.Rotated(next.Piece, rot), next.X, next.Y) {
			next.Rot = rot
		}
	case SoftDrop:
		if !next.Board.Blocked(next.PieceMask(), next.X, next.Y+1) {
			next.Y++
		} else {
			out = lock(next, rng)
		}
		out.ResetGravity = true
	case HardDrop:
		for !next.Board.Blocked(next.PieceMask(), next.X, next.Y+1) {
			next.Y++
		}
		out = lock(next, rng)
	}
	return next, out
}

// Tick applies one gravity step: move the piece down, or lock it if it
// cannot move. Gravity does not run while paused.
func Tick(state *game.GameState, rng *rand.Rand) (*game.GameState, Outcome) {
	var out Outcome
	if state.Over || state.Paused {
		return state, out
	}
	next := state.Clone()
	if !next.Board.Blocked(next.PieceMask(), next.X, next.Y+1) {
		next.Y++
		return next, out
	}
	return next, lock(next, rng)
}

// lock writes the active piece into the board, clears full rows, updates
// score/lines/level, and spawns the next piece.
//
// A piece that locks with any cell still above the visible board has topped
// out: those cells are silently dropped by Board.Lock and can never be
// cleared, so the game ends immediately instead of looping at the ceiling.
func lock(s *game.GameState, rng *rand.Rand) Outcome {
	mask := s.PieceMask()
	topOut := false
	for r := 0; r < 4 && !topOut; r++ {
		for c := 0; c < 4; c++ {
			if mask[r][c] && s.Y+r < 0 {
				topOut = true
				break
			}
		}
	}

	s.Board.Lock(mask, s.Piece, s.X, s.Y)
	n := s.Board.ClearFullRows()
	leveled := false
	if n > 0 {
		idx := n
		if idx > 4 {
			idx = 4
		}
		prevLevel := s.Level
		s.Score += int64(scoreTable[idx]) * int64(s.Level)
		s.Lines += n
		s.Level = 1 + s.Lines/10
		leveled = s.Level > prevLevel
	}

	if topOut {
		s.Over = true
	} else {
		spawn(s, rng)
	}
	return Outcome{
		Locked:       true,
		RowsCleared:  n,
		LeveledUp:    leveled,
		ResetGravity: true,
	}
}

// spawn promotes the lookahead to the active piece two rows above the
// visible top, horizontally centered, and draws a fresh lookahead. If the
// spawn position is already blocked the game is over and no further state
// changes are applied, this tick or any later one.
func spawn(s *game.GameState, rng *rand.Rand) {
	s.Piece = s.Next
	s.Rot = 0
	s.X = game.BoardW/2 - 2
	s.Y = -2
	s.Pieces++
	s.Next = drawKind(s, rng)
	if s.Board.Blocked(s.PieceMask(), s.X, s.Y) {
		s.Over = true
	}
}

// drawKind picks the next piece kind uniformly at random. With a nil rng it
// falls back to a deterministic hash of the spawn count, so tests and
// hypothetical rollouts stay reproducible.
func drawKind(s *game.GameState, rng *rand.Rand) game.PieceKind {
	if rng != nil {
		return game.PieceKind(rng.Intn(game.NumPieceKinds))
	}
	return game.PieceKind(splitmix64(uint64(s.Pieces), 0x7465747269) % game.NumPieceKinds)
}

// GravityInterval returns the time between gravity ticks at the given level:
// max(0.05, 0.8 * 0.85^(level-1)) seconds. Each level shortens the interval
// multiplicatively down to a hard floor.
func GravityInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	secs := 0.8 * math.Pow(0.85, float64(level-1))
	if secs < 0.05 {
		secs = 0.05
	}
	return time.Duration(secs * float64(time.Second))
}

// splitmix64 is a simple deterministic hasher for reproducibility.
func splitmix64(a, b uint64) uint64 {
	x := a + b
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
