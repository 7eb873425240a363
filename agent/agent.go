// Package agent picks placements for the autoplayer by trying every column and
// rotation of a piece, simulating the drop and scoring the resulting board.
package agent

import (
	"math"

	"termblocks/grid"
	"termblocks/piece"
)

const (
	// NoMove is the column reported when a piece has no legal placement.
	NoMove = -1

	// NoScore is the score reported when a piece has no legal placement.
	// It is lower than every score Score can return.
	NoScore = math.MinInt

	// DangerScore is the base score for a piece landing in the top rows.
	// It fits a 32-bit int and stays above NoScore there.
	DangerScore = math.MinInt32 + 1

	// DangerRows is the number of top rows treated as the danger zone.
	DangerRows = 4

	// HolePenalty is subtracted for every covered hole.
	HolePenalty = 10
)

// Evaluation is the best placement found for a single piece.
type Evaluation struct {
	Col   int
	Piece piece.Piece
	Score int
}

// Found reports whether a legal placement was found.
func (e Evaluation) Found() bool {
	return e.Col != NoMove
}

// Move is the agent's decision for a turn.
type Move struct {
	Col   int
	Piece piece.Piece
	Hold  bool
}

// Valid reports whether m describes a placement. An invalid move means
// neither piece can be placed and the game is about to end.
func (m Move) Valid() bool {
	return m.Col != NoMove
}

// ComputeOptimalMove searches placements for the falling piece and for the
// held piece against the same board. The held piece wins only with a
// strictly higher score.
func ComputeOptimalMove(current, held piece.Piece, b grid.Board) Move {
	cur := BestMoveForPiece(current, b)
	hold := BestMoveForPiece(held, b)

	if hold.Found() && hold.Score > cur.Score {
		return Move{Col: hold.Col, Piece: hold.Piece, Hold: true}
	}
	return Move{Col: cur.Col, Piece: cur.Piece}
}

// BestMoveForPiece tries each rotation state of p, starting from its current
// one, in every column. Each legal drop is stamped, cleared and scored.
// Ties keep the first placement found, rotation-major then by column.
func BestMoveForPiece(p piece.Piece, b grid.Board) Evaluation {
	best := Evaluation{Col: NoMove, Piece: p, Score: NoScore}

	rotated := p
	for r := 0; r < piece.RotationCount; r++ {
		for col := 0; col < grid.Width; col++ {
			floor := b.FloorRow(rotated, 0, col)
			if !b.IsValidPlacement(rotated, floor, col) {
				continue
			}
			sim := b.Stamp(rotated, floor, col).ClearFilledLines()
			score := Score(sim, floor)
			if score > best.Score {
				best = Evaluation{Col: col, Piece: rotated, Score: score}
			}
		}
		rotated = rotated.NextRotation()
	}
	return best
}

// Score rates a simulated board; higher is better. floorRow is the row the
// piece landed on before lines were cleared.
func Score(b grid.Board, floorRow int) int {
	if floorRow < DangerRows {
		return DangerScore + floorRow
	}

	score := -HolePenalty * CoveredHoles(b)
	return score - (grid.Height - floorRow)
}

// CoveredHoles counts empty cells whose upper neighbour is filled.
func CoveredHoles(b grid.Board) int {
	n := 0
	for row := 1; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			if b[row][col] == grid.Empty && b[row-1][col] != grid.Empty {
				n++
			}
		}
	}
	return n
}
