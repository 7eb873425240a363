package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termblocks/grid"
	"termblocks/piece"
	"termblocks/types"
)

// fillBottom writes rows into the bottom of b, top to bottom.
func fillBottom(b *grid.Board, rows ...string) {
	start := grid.Height - len(rows)
	for i, r := range rows {
		for col, ch := range r {
			if ch != '.' {
				b[start+i][col] = grid.Cell(ch - '0')
			}
		}
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	return NewGame(GameConfig{Seed: seed})
}

func TestNewGameDrawOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	held := piece.Random(r)
	next := piece.Random(r)
	current := piece.Random(r)

	g := newTestGame(t, 7)
	assert.Equal(t, held, g.held)
	assert.Equal(t, next, g.next)
	assert.Equal(t, current, g.current)
	assert.Equal(t, 0, g.row)
	assert.Equal(t, 0, g.col)
	assert.Equal(t, grid.New(), g.Board())
	assert.False(t, g.Over())
}

func TestApplyMoves(t *testing.T) {
	g := newTestGame(t, 1)
	g.current = piece.New(piece.Square, 0, 3)

	assert.ErrorIs(t, g.Apply(ShiftLeft), ErrBlocked)
	require.NoError(t, g.Apply(ShiftRight))
	require.NoError(t, g.Apply(ShiftDown))
	assert.Equal(t, 1, g.row)
	assert.Equal(t, 1, g.col)

	require.NoError(t, g.Apply(ShiftLeft))
	assert.Equal(t, 0, g.col)

	require.NoError(t, g.Apply(HardDrop))
	assert.Equal(t, grid.Height-2, g.row)
	assert.ErrorIs(t, g.Apply(ShiftDown), ErrBlocked)
}

func TestApplyRotate(t *testing.T) {
	g := newTestGame(t, 1)
	g.current = piece.New(piece.Line, 0, 3)

	require.NoError(t, g.Apply(Rotate))
	assert.Equal(t, 1, g.current.RotationIndex())
	assert.Equal(t, 3, g.current.ID())

	// Against the right wall a vertical line cannot turn flat.
	g.row = grid.Height - 4
	g.col = 9
	assert.ErrorIs(t, g.Apply(Rotate), ErrBlocked)
	assert.Equal(t, 1, g.current.RotationIndex())
}

func TestApplyHold(t *testing.T) {
	g := newTestGame(t, 1)
	square := piece.New(piece.Square, 0, 1)
	line := piece.New(piece.Line, 0, 2)
	g.current, g.held = square, line

	require.NoError(t, g.Apply(Hold))
	assert.Equal(t, line, g.current)
	assert.Equal(t, square, g.held)

	// Swapping back is blocked where the square would leave the board.
	g.current, g.held = piece.New(piece.Line, 1, 2), square
	g.row = grid.Height - 4
	g.col = 9
	assert.ErrorIs(t, g.Apply(Hold), ErrBlocked)
	assert.Equal(t, square, g.held)
}

func TestApplyUnknownAndToggle(t *testing.T) {
	g := newTestGame(t, 1)
	err := g.Apply(Command(99))
	assert.True(t, errors.Is(err, ErrUnknownCommand))

	require.NoError(t, g.Apply(ToggleAutoplay))
	assert.True(t, g.Autoplay())
	require.NoError(t, g.Apply(ToggleAutoplay))
	assert.False(t, g.Autoplay())
}

func TestLockClearsLine(t *testing.T) {
	g := newTestGame(t, 3)
	fillBottom(&g.board, "111111111.")
	g.current = piece.New(piece.Line, 1, 7)
	g.col = 9
	next := g.next

	require.NoError(t, g.Apply(HardDrop))
	assert.Equal(t, grid.Height-4, g.row)
	assert.False(t, g.Tick(), "piece on the floor locks")

	assert.Equal(t, 1, g.Lines())
	assert.Equal(t, 1, g.Pieces())
	assert.Equal(t, map[int]int{1: 1}, g.Histogram())
	assert.Equal(t, next, g.current)
	assert.Equal(t, 0, g.row)
	assert.Equal(t, 0, g.col)

	want := grid.New()
	fillBottom(&want, ".........7", ".........7", ".........7")
	assert.Equal(t, want, g.Board())
	assert.False(t, g.Over())
}

func TestTickFalls(t *testing.T) {
	g := newTestGame(t, 4)
	assert.True(t, g.Tick())
	assert.Equal(t, 1, g.row)
	assert.False(t, g.Fresh())
}

func TestGameOverWhenTopRowFilled(t *testing.T) {
	g := newTestGame(t, 5)
	g.current = piece.New(piece.Square, 0, 1)
	g.board[0][9] = 3

	g.Turn()
	require.True(t, g.Over())
	assert.True(t, g.ToppedOut())
	assert.Contains(t, g.Outcome(), "Topped out")

	assert.ErrorIs(t, g.Apply(ShiftDown), ErrGameOver)
	assert.False(t, g.Tick())
	assert.Equal(t, 0, g.Turn())
	assert.Equal(t, 1, g.Pieces())

	s := g.Snapshot()
	assert.True(t, s.Finished())
	assert.Empty(t, s.Highlight)
}

func TestMaxPieces(t *testing.T) {
	g := NewGame(GameConfig{Seed: 6, Autoplay: true, MaxPieces: 3})
	for i := 0; i < 10 && !g.Over(); i++ {
		g.Turn()
	}
	assert.True(t, g.Over())
	assert.False(t, g.ToppedOut())
	assert.Equal(t, 3, g.Pieces())
	assert.Contains(t, g.Outcome(), "Piece limit")
}

func TestRunAgentUsesHold(t *testing.T) {
	g := newTestGame(t, 8)
	fillBottom(&g.board, "1.1.1.1.1.")
	square := piece.New(piece.Square, 0, 2)
	g.current = square
	g.held = piece.New(piece.Line, 0, 8)

	require.True(t, g.RunAgent())
	assert.Equal(t, piece.New(piece.Line, 1, 8), g.current)
	assert.Equal(t, square, g.held)
	assert.Equal(t, 1, g.col)
}

func TestRunAgentWithoutPlacement(t *testing.T) {
	g := newTestGame(t, 9)
	for col := 0; col < grid.Width; col++ {
		g.board[0][col] = 1
	}
	current, held := g.current, g.held

	assert.False(t, g.RunAgent())
	assert.Equal(t, current, g.current)
	assert.Equal(t, held, g.held)
}

func TestAutoplayIsDeterministic(t *testing.T) {
	play := func() *Game {
		g := NewGame(GameConfig{Seed: 42, Autoplay: true, MaxPieces: 200})
		for !g.Over() {
			g.Turn()
			for row := 0; row < grid.Height; row++ {
				require.False(t, g.board.IsFullRow(row), "full row %d left after lock", row)
			}
		}
		return g
	}
	a, b := play(), play()
	assert.Equal(t, a.Pieces(), b.Pieces())
	assert.Equal(t, a.Lines(), b.Lines())
	assert.Equal(t, a.Board(), b.Board())
	assert.Equal(t, a.Histogram(), b.Histogram())

	total := 0
	for rows, n := range a.Histogram() {
		total += rows * n
	}
	assert.Equal(t, a.Lines(), total)
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t, 10)
	g.current = piece.New(piece.Square, 0, 4)
	g.col = 3
	g.autoplay = true

	s := g.Snapshot()
	assert.Equal(t, types.PhasePlaying, s.Phase)
	assert.Equal(t, grid.Height, s.Height())
	assert.Equal(t, grid.Width, s.Width())
	assert.Equal(t, "Square", s.Current.Shape)
	assert.Len(t, s.Current.Preview, grid.PreviewSize)
	assert.Len(t, s.Next.Preview, grid.PreviewSize)
	assert.Len(t, s.Cells, piece.TileCount)
	assert.Contains(t, s.Cells, piece.Coord{Row: 0, Col: 3})
	assert.Contains(t, s.Highlight, piece.Coord{Row: grid.Height - 1, Col: 4})
	assert.True(t, s.Autoplay)
	assert.Empty(t, s.Histogram)

	// Snapshots are copies.
	s.Board[grid.Height-1][0] = 5
	assert.Equal(t, grid.Empty, g.board[grid.Height-1][0])
}

func TestParseCommand(t *testing.T) {
	for c := ShiftDown; c <= ToggleAutoplay; c++ {
		got, err := ParseCommand(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCommand("jump")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, "Command(42)", Command(42).String())
}

func TestSpeedToDelay(t *testing.T) {
	assert.Equal(t, SpeedToDelay(10), SpeedToDelay(15))
	assert.Zero(t, SpeedToDelay(10))
	assert.Greater(t, SpeedToDelay(0), SpeedToDelay(5))
}

func TestDelayToSpeedInvertsSpeedToDelay(t *testing.T) {
	for level := 0; level <= 10; level++ {
		assert.Equal(t, level, DelayToSpeed(SpeedToDelay(level)), "level %d", level)
	}
	assert.Equal(t, 0, DelayToSpeed(time.Hour))
	assert.Equal(t, 7, DelayToSpeed(120*time.Millisecond))
}
