// Package bot plans piece placements for the demo mode.
//
// The planner is a one-ply search: for every reachable (rotation, column)
// it simulates the hard drop on a copy of the board and scores the result
// with a small surface heuristic. It returns the exact command sequence that
// replays the chosen placement through the rules package, so the demo driver
// feeds the simulation the same way a player would.
package bot

import (
	"github.com/brensch/termtris/game"
	"github.com/brensch/termtris/rules"
)

// Weights tunes the placement heuristic. Height, hole and bumpiness terms
// should be negative (penalties), the line-clear term positive.
type Weights struct {
	AggregateHeight float64
	Holes           float64
	Bumpiness       float64
	LinesCleared    float64
}

// DefaultWeights keep a demo game alive long enough to be worth watching.
var DefaultWeights = Weights{
	AggregateHeight: -0.51,
	Holes:           -0.75,
	Bumpiness:       -0.18,
	LinesCleared:    0.90,
}

// Plan returns the command sequence (rotations, then horizontal moves, then
// a hard drop) that reaches the best placement for the active piece. It
// returns nil when there is nothing to plan (paused or terminal state).
func Plan(state *game.GameState) []int {
	return PlanWithWeights(state, DefaultWeights)
}

func PlanWithWeights(state *game.GameState, w Weights) []int {
	if state == nil || state.Over || state.Paused {
		return nil
	}

	bestScore := 0.0
	var bestCmds []int

	consider := func(spins, dx int, mask game.Mask) {
		x := state.X + dx
		y := state.Y
		for !state.Board.Blocked(mask, x, y+1) {
			y++
		}
		b := state.Board
		b.Lock(mask, state.Piece, x, y)
		cleared := b.ClearFullRows()
		score := evaluate(&b, cleared, w)
		if bestCmds != nil && score <= bestScore {
			return
		}
		cmds := make([]int, 0, spins+abs(dx)+1)
		for i := 0; i < spins; i++ {
			cmds = append(cmds, rules.RotateCW)
		}
		step := rules.MoveRight
		if dx < 0 {
			step = rules.MoveLeft
		}
		for i := 0; i < abs(dx); i++ {
			cmds = append(cmds, step)
		}
		cmds = append(cmds, rules.HardDrop)
		bestScore = score
		bestCmds = cmds
	}

	for spins := 0; spins < 4; spins++ {
		// Each rotation must be legal at the spawn column before any
		// horizontal movement, mirroring how the commands will replay.
		rot := state.Rot
		legal := true
		for i := 0; i < spins; i++ {
			next := (rot + 1) % 4
			if state.Board.Blocked(game.Rotated(state.Piece, next), state.X, state.Y) {
				legal = false
				break
			}
			rot = next
		}
		if !legal {
			continue
		}
		mask := game.Rotated(state.Piece, rot)

		// Sweep left, then right, stopping at the first offset the piece
		// cannot step through at its current height.
		for dx := 0; !state.Board.Blocked(mask, state.X+dx, state.Y); dx-- {
			consider(spins, dx, mask)
		}
		for dx := 1; !state.Board.Blocked(mask, state.X+dx, state.Y); dx++ {
			consider(spins, dx, mask)
		}
	}

	if bestCmds == nil {
		// Nowhere legal to go; drop in place and let the rules decide.
		return []int{rules.HardDrop}
	}
	return bestCmds
}

// evaluate scores a post-placement board. Column height is measured from the
// topmost occupied cell; a hole is an empty cell below that.
func evaluate(b *game.Board, cleared int, w Weights) float64 {
	var heights [game.BoardW]int
	for c := 0; c < game.BoardW; c++ {
		for r := 0; r < game.BoardH; r++ {
			if b[r][c] != game.Empty {
				heights[c] = game.BoardH - r
				break
			}
		}
	}

	agg, holes, bump := 0, 0, 0
	for c := 0; c < game.BoardW; c++ {
		agg += heights[c]
		for r := game.BoardH - heights[c]; r < game.BoardH; r++ {
			if b[r][c] == game.Empty {
				holes++
			}
		}
		if c > 0 {
			bump += abs(heights[c] - heights[c-1])
		}
	}

	return w.AggregateHeight*float64(agg) +
		w.Holes*float64(holes) +
		w.Bumpiness*float64(bump) +
		w.LinesCleared*float64(cleared)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
