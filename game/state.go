// Package game defines the core simulation state for a terminal
// falling-block game: the piece catalog, the playfield board, and the
// complete per-session state.
//
// The types here are pure data. All transitions live in the rules package,
// expressed as functions of (state, command) so the simulation can be unit
// tested without fixtures. Renderers read the state directly once per frame.
package game

// GameState is the complete state of one play session.
//
// Piece, Rot and X/Y describe the active piece: its kind, clockwise rotation
// steps from spawn orientation, and the board position of its 4x4 frame's
// top-left corner. Y may be negative right after a spawn, while the piece
// still overlaps the hidden rows above the board.
type GameState struct {
	Board Board

	Piece PieceKind
	Rot   int
	X, Y  int

	// Next is the single lookahead kind, promoted to Piece at the next
	// spawn.
	Next PieceKind

	Score  int64
	Lines  int
	Level  int
	Pieces int // total pieces spawned, also salts the deterministic RNG fallback

	Paused bool
	Over   bool
}

// NewGameState returns an empty-board state at level 1 with no active piece.
// Callers normally use rules.NewGame, which also spawns the first piece.
func NewGameState() *GameState {
	return &GameState{
		Board: emptyBoard(),
		Level: 1,
	}
}

// Clone performs a deep copy of the game state. Board is an array, so a
// value copy suffices.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// PieceMask returns the active piece's occupancy mask at its current
// rotation.
func (s *GameState) PieceMask() Mask {
	return Rotated(s.Piece, s.Rot)
}
