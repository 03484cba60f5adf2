package game

import "testing"

var allKinds = []PieceKind{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

func cellCount(m Mask) int {
	n := 0
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if m[r][c] {
				n++
			}
		}
	}
	return n
}

func TestRotated_EveryKindHasFourCells(t *testing.T) {
	for _, k := range allKinds {
		for rot := 0; rot < 4; rot++ {
			if got := cellCount(Rotated(k, rot)); got != 4 {
				t.Fatalf("kind %d rot %d: cell count=%d want=4", k, rot, got)
			}
		}
	}
}

func TestRotated_FourRotationsAreIdentity(t *testing.T) {
	for _, k := range allKinds {
		for start := 0; start < 4; start++ {
			base := Rotated(k, start)
			if got := Rotated(k, start+4); got != base {
				t.Fatalf("kind %d: rot %d+4 != rot %d", k, start, start)
			}
		}
	}
}

func TestRotated_NegativeRotationNormalizes(t *testing.T) {
	for _, k := range allKinds {
		if got, want := Rotated(k, -1), Rotated(k, 3); got != want {
			t.Fatalf("kind %d: rot -1 != rot 3", k)
		}
		if got, want := Rotated(k, -7), Rotated(k, 1); got != want {
			t.Fatalf("kind %d: rot -7 != rot 1", k)
		}
	}
}

func TestRotated_IsClockwiseTransposition(t *testing.T) {
	for _, k := range allKinds {
		old := Rotated(k, 0)
		got := Rotated(k, 1)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				if got[r][c] != old[3-c][r] {
					t.Fatalf("kind %d: rotated[%d][%d] != base[%d][%d]", k, r, c, 3-c, r)
				}
			}
		}
	}
}

func TestRotated_SpawnOrientations(t *testing.T) {
	// The I piece spawns flat across row 1 of the frame.
	i := Rotated(PieceI, 0)
	for c := 0; c < 4; c++ {
		if !i[1][c] {
			t.Fatalf("I piece: expected cell at row 1 col %d", c)
		}
	}
	// The O piece occupies the top-left 2x2 of the frame.
	o := Rotated(PieceO, 0)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if !o[r][c] {
				t.Fatalf("O piece: expected cell at row %d col %d", r, c)
			}
		}
	}
}
