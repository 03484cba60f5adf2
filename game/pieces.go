// pieces.go defines the seven tetromino shapes and their rotations.

package game

// PieceKind identifies one of the seven tetrominoes.
type PieceKind int8

const (
	PieceI PieceKind = iota
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// NumPieceKinds is the number of distinct tetrominoes.
const NumPieceKinds = 7

// Mask is a 4x4 occupancy grid for one piece at one rotation. Every shape is
// embedded top-left into the 4x4 frame regardless of its natural footprint
// (2x2, 3x3 or 4x4), with unused cells clear, so a single generic rotation
// works for all of them.
type Mask [4][4]bool

// shapeSpecs describes each piece in its spawn orientation. Rows shorter than
// 4 leave the remaining frame empty.
var shapeSpecs = [NumPieceKinds][]string{
	PieceI: {"....", "XXXX", "....", "...."},
	PieceJ: {"X..", "XXX", "..."},
	PieceL: {"..X", "XXX", "..."},
	PieceO: {"XX", "XX"},
	PieceS: {".XX", "XX.", "..."},
	PieceT: {".X.", "XXX", "..."},
	PieceZ: {"XX.", ".XX", "..."},
}

var shapes [NumPieceKinds]Mask

func init() {
	for k, spec := range shapeSpecs {
		for r, row := range spec {
			for c := 0; c < len(row); c++ {
				if row[c] == 'X' {
					shapes[k][r][c] = true
				}
			}
		}
	}
}

// Rotated returns the mask for kind after rot clockwise quarter turns.
// rot may be any integer; it is normalized into 0..3 first.
func Rotated(kind PieceKind, rot int) Mask {
	m := shapes[kind]
	rot = ((rot % 4) + 4) % 4
	for ; rot > 0; rot-- {
		var next Mask
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				next[r][c] = m[3-c][r]
			}
		}
		m = next
	}
	return m
}
