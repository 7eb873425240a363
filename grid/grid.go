// Package grid implements the playfield: a fixed size board of cells and the
// placement, line clearing and game over rules over it.
//
// Board is an array value, so every operation works on its own copy and
// returns a new board. Callers can simulate placements freely without
// touching the live board.
package grid

import (
	"strings"

	"termblocks/piece"
)

const (
	Height = 22
	Width  = 10

	// PreviewSize is the side of the square hold/next preview grids.
	PreviewSize = 4
)

// Cell is either Empty or the identity token of the piece that filled it.
type Cell int

// Empty marks a cell without a block.
const Empty Cell = -1

// Board is the playfield. Board[row][col]; row 0 is the top.
type Board [Height][Width]Cell

// PreviewGrid is a small grid showing a single piece.
type PreviewGrid [PreviewSize][PreviewSize]Cell

// New returns an empty board. The zero Board is not empty.
func New() Board {
	var b Board
	for row := range b {
		b[row] = emptyRow()
	}
	return b
}

func emptyRow() [Width]Cell {
	var r [Width]Cell
	for col := range r {
		r[col] = Empty
	}
	return r
}

// IsOnBoard reports whether (row, col) lies inside the board.
func IsOnBoard(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

// IsValidPlacement reports whether every cell of p, translated by
// (rowOffset, colOffset), is on the board and empty.
func (b Board) IsValidPlacement(p piece.Piece, rowOffset, colOffset int) bool {
	for _, c := range p.Coords() {
		row, col := c.Row+rowOffset, c.Col+colOffset
		if !IsOnBoard(row, col) || b[row][col] != Empty {
			return false
		}
	}
	return true
}

// FloorRow returns the lowest row offset, starting from rowOffset, at which p
// can rest in column colOffset. The starting placement must be valid; when it
// is not, rowOffset-1 is returned.
func (b Board) FloorRow(p piece.Piece, rowOffset, colOffset int) int {
	for b.IsValidPlacement(p, rowOffset, colOffset) {
		rowOffset++
	}
	return rowOffset - 1
}

// Stamp returns a copy of b with p's cells, translated by (rowOffset,
// colOffset), set to p's identity token. The placement must already be
// valid; cells off the board are skipped and occupied cells are overwritten.
func (b Board) Stamp(p piece.Piece, rowOffset, colOffset int) Board {
	for _, c := range p.Coords() {
		row, col := c.Row+rowOffset, c.Col+colOffset
		if IsOnBoard(row, col) {
			b[row][col] = Cell(p.ID())
		}
	}
	return b
}

// IsFullRow reports whether every cell in the given row is filled.
func (b Board) IsFullRow(row int) bool {
	for _, cell := range b[row] {
		if cell == Empty {
			return false
		}
	}
	return true
}

// ClearFilledLines returns a copy of b with every full row removed and the
// same number of empty rows inserted at the top. Remaining rows keep their
// relative order.
func (b Board) ClearFilledLines() Board {
	out := New()
	dest := Height - 1
	for row := Height - 1; row >= 0; row-- {
		if b.IsFullRow(row) {
			continue
		}
		out[dest] = b[row]
		dest--
	}
	return out
}

// FilledCellCount returns the number of non-empty cells.
func (b Board) FilledCellCount() int {
	n := 0
	for _, r := range b {
		for _, cell := range r {
			if cell != Empty {
				n++
			}
		}
	}
	return n
}

// ClearedRows returns how many rows were removed between before and after,
// derived from the drop in filled cells.
func ClearedRows(before, after Board) int {
	return (before.FilledCellCount() - after.FilledCellCount()) / Width
}

// IsGameOver reports whether the top row holds any block, or current cannot
// be placed at the spawn offset (0, 0).
func (b Board) IsGameOver(current piece.Piece) bool {
	for _, cell := range b[0] {
		if cell != Empty {
			return true
		}
	}
	return !b.IsValidPlacement(current, 0, 0)
}

// DropPreview returns p's cells translated to where it would land if
// dropped from (rowOffset, colOffset). The starting placement must be valid.
func (b Board) DropPreview(p piece.Piece, rowOffset, colOffset int) piece.Rotation {
	floor := b.FloorRow(p, rowOffset, colOffset)
	var out piece.Rotation
	for i, c := range p.Coords() {
		out[i] = piece.Coord{Row: c.Row + floor, Col: c.Col + colOffset}
	}
	return out
}

// Rows returns the board as a slice of rows, for JSON snapshots.
func (b Board) Rows() [][]int {
	rows := make([][]int, Height)
	for row := range b {
		rows[row] = make([]int, Width)
		for col, cell := range b[row] {
			rows[row][col] = int(cell)
		}
	}
	return rows
}

// String draws the board one line per row, '.' for empty cells and a
// base-36 digit for each identity token.
func (b Board) String() string {
	var sb strings.Builder
	for row := range b {
		for _, cell := range b[row] {
			sb.WriteByte(cellRune(cell))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellRune(c Cell) byte {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	if c == Empty {
		return '.'
	}
	if c < 0 || int(c) >= len(digits) {
		return '#'
	}
	return digits[c]
}

// Preview returns a PreviewSize square grid holding p in its current
// rotation, cells set to p's identity token.
func Preview(p piece.Piece) PreviewGrid {
	var g PreviewGrid
	for row := range g {
		for col := range g[row] {
			g[row][col] = Empty
		}
	}
	for _, c := range p.Coords() {
		g[c.Row][c.Col] = Cell(p.ID())
	}
	return g
}
