// board.go implements the playfield grid: collision testing, locking and
// line clearing.

package game

// Board dimensions. Rows run top (0) to bottom (BoardH-1).
const (
	BoardW = 10
	BoardH = 20
)

// Cell holds either Empty or the kind of the piece locked into it. The kind
// has no gameplay effect once locked; renderers use it to pick a color.
type Cell int8

// Empty marks an unoccupied cell. It is deliberately not the zero value of
// Cell (which would collide with PieceI), so boards must be built with
// NewGameState or emptyBoard rather than a zero literal.
const Empty Cell = -1

// Board is the fixed-size playfield. Value semantics make cloning a copy.
type Board [BoardH][BoardW]Cell

func emptyBoard() Board {
	var b Board
	for r := range b {
		for c := range b[r] {
			b[r][c] = Empty
		}
	}
	return b
}

// Blocked reports whether placing mask with its frame origin at column x,
// row y would collide. Columns outside [0, BoardW) and rows at or below the
// bottom always block. Rows above the visible board (y+r < 0) are only
// column-checked: pieces spawn partially off the top.
func (b *Board) Blocked(mask Mask, x, y int) bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !mask[r][c] {
				continue
			}
			bc := x + c
			br := y + r
			if bc < 0 || bc >= BoardW || br >= BoardH {
				return true
			}
			if br >= 0 && b[br][bc] != Empty {
				return true
			}
		}
	}
	return false
}

// Lock writes the occupied cells of mask into the board with the given kind.
// Cells above the visible board are dropped; a piece locked partly off-screen
// permanently loses those cells.
func (b *Board) Lock(mask Mask, kind PieceKind, x, y int) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !mask[r][c] {
				continue
			}
			bc := x + c
			br := y + r
			if br >= 0 && br < BoardH && bc >= 0 && bc < BoardW {
				b[br][bc] = Cell(kind)
			}
		}
	}
}

// ClearFullRows removes every fully occupied row, shifting rows above it down
// by one, and returns the number of rows cleared. The scan runs bottom-up and
// re-examines a row index after a shift, since new content lands in it.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for r := BoardH - 1; r >= 0; r-- {
		full := true
		for c := 0; c < BoardW; c++ {
			if b[r][c] == Empty {
				full = false
				break
			}
		}
		if !full {
			continue
		}
		cleared++
		for rr := r; rr > 0; rr-- {
			b[rr] = b[rr-1]
		}
		for c := 0; c < BoardW; c++ {
			b[0][c] = Empty
		}
		r++
	}
	return cleared
}
