// Package types contains shared data structures for termblocks.
package types

import "termblocks/piece"

// Game phases.
const (
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// PieceState describes a piece for presentation.
type PieceState struct {
	Shape    string `json:"shape"`
	Rotation int    `json:"rotation"`
	ID       int    `json:"id"`
	// Preview is a PreviewSize square grid, -1 for empty cells.
	Preview [][]int `json:"preview"`
}

// GameState is a snapshot of a running game.
// Board is indexed as Board[row][col], -1 for empty, otherwise a piece identity token.
type GameState struct {
	Phase   string  `json:"phase"` // "playing", "finished"
	Outcome string  `json:"outcome"`
	Board   [][]int `json:"board"`

	Current PieceState `json:"current"`
	Held    PieceState `json:"held"`
	Next    PieceState `json:"next"`

	// Row and Col are the current piece's offsets.
	Row int `json:"row"`
	Col int `json:"col"`
	// Cells are the board cells the current piece covers.
	Cells []piece.Coord `json:"cells"`
	// Highlight are the cells the current piece would land on.
	Highlight []piece.Coord `json:"highlight"`

	LinesCleared int `json:"lines_cleared"`
	PiecesPlaced int `json:"pieces_placed"`
	// Histogram maps rows cleared by a single lock to how often it happened.
	Histogram map[int]int `json:"histogram"`
	Autoplay  bool        `json:"autoplay"`
}

// Finished returns true if the game is over.
func (s *GameState) Finished() bool {
	return s.Phase == PhaseFinished
}

// Height returns the board height.
func (s *GameState) Height() int {
	return len(s.Board)
}

// Width returns the board width.
func (s *GameState) Width() int {
	if s.Height() == 0 {
		return 0
	}
	return len(s.Board[0])
}

// CellAt reports what should be drawn at (row, col): the board token, or the
// current piece's token when the piece covers the cell. highlighted is set
// for empty cells inside the drop preview.
func (s *GameState) CellAt(row, col int) (token int, highlighted bool) {
	for _, c := range s.Cells {
		if c.Row == row && c.Col == col {
			return s.Current.ID, false
		}
	}
	token = s.Board[row][col]
	if token != -1 {
		return token, false
	}
	for _, c := range s.Highlight {
		if c.Row == row && c.Col == col {
			return token, true
		}
	}
	return token, false
}
