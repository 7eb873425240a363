package grid

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"termblocks/piece"
)

// fromRows builds a board whose bottom rows are given, top to bottom.
// '.' is empty and a digit is an identity token.
func fromRows(t *testing.T, rows ...string) Board {
	t.Helper()
	b := New()
	start := Height - len(rows)
	for i, r := range rows {
		if len(r) != Width {
			t.Fatalf("row %d has width %d, want %d", i, len(r), Width)
		}
		for col, ch := range r {
			if ch != '.' {
				b[start+i][col] = Cell(ch - '0')
			}
		}
	}
	return b
}

// randomBoard fills roughly density of the cells below row 2.
func randomBoard(r *rand.Rand, density float64) Board {
	b := New()
	for row := 2; row < Height; row++ {
		for col := 0; col < Width; col++ {
			if r.Float64() < density {
				b[row][col] = Cell(r.Intn(piece.IDCount))
			}
		}
	}
	return b
}

func allPieces() []piece.Piece {
	var out []piece.Piece
	for _, s := range piece.Shapes {
		for r := 0; r < piece.RotationCount; r++ {
			out = append(out, piece.New(s, r, int(s)+1))
		}
	}
	return out
}

func TestNewIsEmpty(t *testing.T) {
	b := New()
	if got := b.FilledCellCount(); got != 0 {
		t.Fatalf("FilledCellCount() = %d, want 0", got)
	}
	if got := strings.Count(b.String(), "."); got != Height*Width {
		t.Fatalf("String() has %d empty cells, want %d", got, Height*Width)
	}
}

func TestIsOnBoard(t *testing.T) {
	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{Height - 1, Width - 1, true},
		{-1, 0, false},
		{0, -1, false},
		{Height, 0, false},
		{0, Width, false},
	}
	for _, tt := range tests {
		if got := IsOnBoard(tt.row, tt.col); got != tt.want {
			t.Errorf("IsOnBoard(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestValidityIsTranslationConsistent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		b := randomBoard(r, 0.3)
		for _, p := range allPieces() {
			for row := -2; row < Height+1; row++ {
				for col := -2; col < Width+1; col++ {
					want := true
					for _, c := range p.Coords() {
						rr, cc := c.Row+row, c.Col+col
						if !IsOnBoard(rr, cc) || b[rr][cc] != Empty {
							want = false
						}
					}
					if got := b.IsValidPlacement(p, row, col); got != want {
						t.Fatalf("IsValidPlacement(%v rot %d, %d, %d) = %v, want %v\n%s",
							p.Shape(), p.RotationIndex(), row, col, got, want, b)
					}
				}
			}
		}
	}
}

func TestFloorRowIsMaximal(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 20; i++ {
		b := randomBoard(r, 0.25)
		for _, p := range allPieces() {
			for col := 0; col < Width; col++ {
				if !b.IsValidPlacement(p, 0, col) {
					continue
				}
				floor := b.FloorRow(p, 0, col)
				if !b.IsValidPlacement(p, floor, col) {
					t.Fatalf("floor %d for %v col %d is not valid", floor, p.Shape(), col)
				}
				if b.IsValidPlacement(p, floor+1, col) {
					t.Fatalf("floor %d for %v col %d is not maximal", floor, p.Shape(), col)
				}
			}
		}
	}
}

func TestFloorRowFromInvalidStart(t *testing.T) {
	b := New()
	line := piece.New(piece.Line, 0, 0)
	// Horizontal line cannot start at column 8.
	if got := b.FloorRow(line, 0, 8); got != -1 {
		t.Fatalf("FloorRow from invalid start = %d, want -1", got)
	}
}

func TestStampAddsFourCells(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		b := randomBoard(r, 0.2)
		for _, p := range allPieces() {
			for col := 0; col < Width; col++ {
				if !b.IsValidPlacement(p, 0, col) {
					continue
				}
				floor := b.FloorRow(p, 0, col)
				stamped := b.Stamp(p, floor, col)
				if got, want := stamped.FilledCellCount(), b.FilledCellCount()+piece.TileCount; got != want {
					t.Fatalf("FilledCellCount after stamp = %d, want %d", got, want)
				}
			}
		}
	}
}

func TestClearIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 50; i++ {
		b := randomBoard(r, 0.9)
		once := b.ClearFilledLines()
		twice := once.ClearFilledLines()
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("second clear changed the board (-once +twice):\n%s", diff)
		}
	}
}

func fullRowCount(b Board) int {
	n := 0
	for row := range b {
		if b.IsFullRow(row) {
			n++
		}
	}
	return n
}

func TestClearRemovesFullRowCells(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		b := randomBoard(r, 0.9)
		k := fullRowCount(b)
		cleared := b.ClearFilledLines()
		if got, want := cleared.FilledCellCount(), b.FilledCellCount()-k*Width; got != want {
			t.Fatalf("FilledCellCount after clear = %d, want %d (k=%d)", got, want, k)
		}
		if got := ClearedRows(b, cleared); got != k {
			t.Fatalf("ClearedRows = %d, want %d", got, k)
		}
	}
}

func TestClearKeepsRowOrder(t *testing.T) {
	b := fromRows(t,
		"1.........",
		"2222222222",
		".3........",
		"4444444444",
		"..5.......",
	)
	want := fromRows(t,
		"1.........",
		".3........",
		"..5.......",
	)
	if diff := cmp.Diff(want, b.ClearFilledLines()); diff != "" {
		t.Fatalf("ClearFilledLines mismatch (-want +got):\n%s", diff)
	}
}

func TestOperationsDoNotMutate(t *testing.T) {
	b := fromRows(t,
		"111111111.",
		"2222222222",
	)
	snapshot := b
	p := piece.New(piece.Line, 1, 9)

	_ = b.Stamp(p, 18, 9)
	_ = b.ClearFilledLines()
	_ = b.FloorRow(p, 0, 9)
	_ = b.DropPreview(p, 0, 9)

	if diff := cmp.Diff(snapshot, b); diff != "" {
		t.Fatalf("board mutated (-before +after):\n%s", diff)
	}
}

func TestEmptyBoardLineDrop(t *testing.T) {
	b := New()
	line := piece.New(piece.Line, 0, 5)

	floor := b.FloorRow(line, 0, 0)
	if floor != Height-1 {
		t.Fatalf("FloorRow = %d, want %d", floor, Height-1)
	}

	want := fromRows(t, "5555......")
	if diff := cmp.Diff(want, b.Stamp(line, floor, 0)); diff != "" {
		t.Fatalf("Stamp mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleLineClear(t *testing.T) {
	b := fromRows(t, "111111111.")
	vertical := piece.New(piece.Line, 1, 7)

	floor := b.FloorRow(vertical, 0, 9)
	if floor != Height-4 {
		t.Fatalf("FloorRow = %d, want %d", floor, Height-4)
	}
	stamped := b.Stamp(vertical, floor, 9)
	if !stamped.IsFullRow(Height - 1) {
		t.Fatalf("bottom row not full after stamp:\n%s", stamped)
	}

	cleared := stamped.ClearFilledLines()
	if got := stamped.FilledCellCount() - cleared.FilledCellCount(); got != Width {
		t.Fatalf("filled cells dropped by %d, want %d", got, Width)
	}
	want := fromRows(t,
		".........7",
		".........7",
		".........7",
	)
	if diff := cmp.Diff(want, cleared); diff != "" {
		t.Fatalf("board after clear mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(New()[0], cleared[0]); diff != "" {
		t.Fatalf("top row changed (-want +got):\n%s", diff)
	}
}

func TestFullBottomRowClearsToEmpty(t *testing.T) {
	b := fromRows(t, "1234567890")
	if diff := cmp.Diff(New(), b.ClearFilledLines()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIsGameOver(t *testing.T) {
	square := piece.New(piece.Square, 0, 1)

	b := New()
	if b.IsGameOver(square) {
		t.Fatal("empty board reported game over")
	}

	top := New()
	top[0][Width-1] = 3
	if !top.IsGameOver(square) {
		t.Fatal("filled top row should be game over")
	}

	blocked := New()
	blocked[1][1] = 3
	if !blocked.IsGameOver(square) {
		t.Fatal("blocked spawn should be game over")
	}
	if blocked.IsGameOver(piece.New(piece.Line, 0, 1)) {
		t.Fatal("line fits at spawn, should not be game over")
	}
}

func TestDropPreview(t *testing.T) {
	b := fromRows(t, "11........")
	square := piece.New(piece.Square, 0, 4)

	got := b.DropPreview(square, 0, 0)
	want := piece.Rotation{
		{Row: Height - 3, Col: 0},
		{Row: Height - 3, Col: 1},
		{Row: Height - 2, Col: 0},
		{Row: Height - 2, Col: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("DropPreview mismatch (-want +got):\n%s", diff)
	}
}

func TestPreview(t *testing.T) {
	g := Preview(piece.New(piece.ShapeT, 2, 9))
	want := PreviewGrid{
		{Empty, Empty, 9, Empty},
		{Empty, 9, 9, 9},
		{Empty, Empty, Empty, Empty},
		{Empty, Empty, Empty, Empty},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("Preview mismatch (-want +got):\n%s", diff)
	}
}

func TestRows(t *testing.T) {
	b := fromRows(t, "1.........")
	rows := b.Rows()
	if len(rows) != Height || len(rows[0]) != Width {
		t.Fatalf("Rows() is %dx%d", len(rows), len(rows[0]))
	}
	if rows[Height-1][0] != 1 || rows[Height-1][1] != int(Empty) {
		t.Fatalf("unexpected bottom row %v", rows[Height-1])
	}
}
