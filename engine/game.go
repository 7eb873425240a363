package engine

import (
	"fmt"
	"maps"
	"math/rand"

	"github.com/kamstrup/intmap"

	"termblocks/agent"
	"termblocks/grid"
	"termblocks/piece"
	"termblocks/types"
)

// Game is the synchronous turn state machine: a board, the falling, held and
// next pieces, and the running totals. It is not safe for concurrent use;
// LocalEngine serializes access to it.
type Game struct {
	rng piece.Rand

	board               grid.Board
	current, held, next piece.Piece
	row, col            int
	lines, pieces       int
	histogram           *intmap.Map[int, int]
	autoplay            bool
	over, toppedOut     bool
	maxPieces           int
}

// NewGame starts a game whose pieces are drawn from a source seeded with
// cfg.Seed, so equal configs play identical games.
func NewGame(cfg GameConfig) *Game {
	return NewGameWithRand(rand.New(rand.NewSource(cfg.Seed)), cfg)
}

// NewGameWithRand starts a game drawing pieces from r. The held, next and
// current pieces are drawn in that order.
func NewGameWithRand(r piece.Rand, cfg GameConfig) *Game {
	g := &Game{
		rng:       r,
		board:     grid.New(),
		histogram: intmap.New[int, int](grid.PreviewSize),
		autoplay:  cfg.Autoplay,
		maxPieces: cfg.MaxPieces,
	}
	g.held = piece.Random(r)
	g.next = piece.Random(r)
	g.current = piece.Random(r)
	return g
}

// Apply executes cmd against the falling piece.
func (g *Game) Apply(cmd Command) error {
	if g.over {
		return ErrGameOver
	}
	action, ok := actions[cmd]
	if !ok {
		return fmt.Errorf("%v: %w", cmd, ErrUnknownCommand)
	}
	return action(g)
}

func (g *Game) move(dRow, dCol int) error {
	if !g.board.IsValidPlacement(g.current, g.row+dRow, g.col+dCol) {
		return ErrBlocked
	}
	g.row += dRow
	g.col += dCol
	return nil
}

func (g *Game) rotate() error {
	next := g.current.NextRotation()
	if !g.board.IsValidPlacement(next, g.row, g.col) {
		return ErrBlocked
	}
	g.current = next
	return nil
}

func (g *Game) hold() error {
	if !g.board.IsValidPlacement(g.held, g.row, g.col) {
		return ErrBlocked
	}
	g.current, g.held = g.held, g.current
	return nil
}

func (g *Game) hardDrop() error {
	g.row = g.board.FloorRow(g.current, g.row, g.col)
	return nil
}

// Tick performs one gravity step. It reports whether the piece moved down;
// when it could not, the piece is locked instead.
func (g *Game) Tick() bool {
	if g.over {
		return false
	}
	if g.move(1, 0) == nil {
		return true
	}
	g.Lock()
	return false
}

// Lock stamps the falling piece at its offsets, clears full rows, promotes
// the next piece and checks for game over. It returns the rows cleared.
func (g *Game) Lock() int {
	if g.over {
		return 0
	}
	stamped := g.board.Stamp(g.current, g.row, g.col)
	g.board = stamped.ClearFilledLines()

	cleared := grid.ClearedRows(stamped, g.board)
	if cleared > 0 {
		g.lines += cleared
		n, _ := g.histogram.Get(cleared)
		g.histogram.Put(cleared, n+1)
	}
	g.pieces++

	g.current = g.next
	g.next = piece.Random(g.rng)
	g.row, g.col = 0, 0

	switch {
	case g.board.IsGameOver(g.current):
		g.over, g.toppedOut = true, true
	case g.maxPieces > 0 && g.pieces >= g.maxPieces:
		g.over = true
	}
	return cleared
}

// RunAgent moves the falling piece to the placement the agent picks,
// swapping in the held piece when the agent prefers it. It reports whether a
// move was applied; nothing changes when neither piece fits at the current row.
func (g *Game) RunAgent() bool {
	if g.over {
		return false
	}
	m := agent.ComputeOptimalMove(g.current, g.held, g.board)
	if !m.Valid() || !g.board.IsValidPlacement(m.Piece, g.row, m.Col) {
		return false
	}
	if m.Hold {
		g.held = g.current
	}
	g.current = m.Piece
	g.col = m.Col
	return true
}

// Turn plays one whole placement: the agent picks a move when autoplay is
// on, then the piece is dropped and locked. It returns the rows cleared.
func (g *Game) Turn() int {
	if g.over {
		return 0
	}
	if g.autoplay {
		g.RunAgent()
	}
	g.hardDrop()
	return g.Lock()
}

// Fresh reports whether the falling piece has not moved down yet.
func (g *Game) Fresh() bool {
	return g.row == 0
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.over
}

// ToppedOut reports whether the game ended because the stack reached the top.
func (g *Game) ToppedOut() bool {
	return g.toppedOut
}

// Autoplay reports whether the agent is choosing placements.
func (g *Game) Autoplay() bool {
	return g.autoplay
}

// Lines returns the total rows cleared.
func (g *Game) Lines() int {
	return g.lines
}

// Pieces returns the number of pieces locked into the board.
func (g *Game) Pieces() int {
	return g.pieces
}

// Board returns a copy of the board.
func (g *Game) Board() grid.Board {
	return g.board
}

// Histogram returns how often each number of rows was cleared by one lock.
func (g *Game) Histogram() map[int]int {
	return maps.Collect(g.histogram.All())
}

// Outcome describes how the game ended, or is empty while it runs.
func (g *Game) Outcome() string {
	switch {
	case g.toppedOut:
		return fmt.Sprintf("Topped out after %d pieces, %d lines", g.pieces, g.lines)
	case g.over:
		return fmt.Sprintf("Piece limit reached: %d pieces, %d lines", g.pieces, g.lines)
	default:
		return ""
	}
}

// Snapshot returns a deep copy of the game for presentation.
func (g *Game) Snapshot() *types.GameState {
	s := &types.GameState{
		Phase:        types.PhasePlaying,
		Outcome:      g.Outcome(),
		Board:        g.board.Rows(),
		Current:      pieceState(g.current),
		Held:         pieceState(g.held),
		Next:         pieceState(g.next),
		Row:          g.row,
		Col:          g.col,
		LinesCleared: g.lines,
		PiecesPlaced: g.pieces,
		Histogram:    g.Histogram(),
		Autoplay:     g.autoplay,
	}
	if g.over {
		s.Phase = types.PhaseFinished
		return s
	}
	for _, c := range g.current.Coords() {
		s.Cells = append(s.Cells, piece.Coord{Row: c.Row + g.row, Col: c.Col + g.col})
	}
	if g.board.IsValidPlacement(g.current, g.row, g.col) {
		drop := g.board.DropPreview(g.current, g.row, g.col)
		s.Highlight = drop[:]
	}
	return s
}

func pieceState(p piece.Piece) types.PieceState {
	preview := grid.Preview(p)
	rows := make([][]int, len(preview))
	for i := range preview {
		rows[i] = make([]int, len(preview[i]))
		for j, cell := range preview[i] {
			rows[i][j] = int(cell)
		}
	}
	return types.PieceState{
		Shape:    p.Shape().String(),
		Rotation: p.RotationIndex(),
		ID:       p.ID(),
		Preview:  rows,
	}
}
