package local

import (
	"bytes"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termblocks/engine"
	"termblocks/types"
)

var _ engine.GameEngine = (*LocalEngine)(nil)

// manualConfig returns a config whose ticker never fires during a test, so
// the game only advances through Step.
func manualConfig(autoplay bool, maxPieces int) engine.GameConfig {
	return engine.GameConfig{DropDelay: time.Hour, Autoplay: autoplay, Seed: 11, MaxPieces: maxPieces}
}

func TestNotStarted(t *testing.T) {
	e := NewLocalEngine(manualConfig(false, 0))
	assert.Nil(t, e.GetGameState())
	assert.ErrorIs(t, e.Apply(engine.ShiftLeft), engine.ErrNotStarted)
	assert.False(t, e.Step())
	e.Close()
}

func TestConnectTwice(t *testing.T) {
	e := NewLocalEngine(manualConfig(false, 0))
	require.NoError(t, e.Connect())
	defer e.Close()
	assert.Error(t, e.Connect())
}

func TestApplyNotifies(t *testing.T) {
	e := NewLocalEngine(manualConfig(false, 0))
	require.NoError(t, e.Connect())
	defer e.Close()

	var got *types.GameState
	e.OnUpdate(func(state *types.GameState) { got = state })

	require.NoError(t, e.Apply(engine.ShiftDown))
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Row)

	got = nil
	assert.ErrorIs(t, e.Apply(engine.Command(99)), engine.ErrUnknownCommand)
	assert.Nil(t, got, "failed commands do not notify")
}

func TestStepPlaysToPieceLimit(t *testing.T) {
	e := NewLocalEngine(manualConfig(true, 5))
	require.NoError(t, e.Connect())
	defer e.Close()

	updates := 0
	var outcomes []string
	e.OnUpdate(func(*types.GameState) { updates++ })
	e.OnGameEnd(func(outcome string) { outcomes = append(outcomes, outcome) })

	steps := 0
	for e.Step() {
		steps++
		require.Less(t, steps, 1000)
	}
	assert.Equal(t, steps+1, updates)
	require.Len(t, outcomes, 1)
	assert.Contains(t, outcomes[0], "Piece limit")

	state := e.GetGameState()
	assert.True(t, state.Finished())
	assert.Equal(t, 5, state.PiecesPlaced)
	assert.False(t, e.Step(), "finished games do not advance")
	assert.ErrorIs(t, e.Apply(engine.Rotate), engine.ErrGameOver)
}

func TestTickerRunsGame(t *testing.T) {
	e := NewLocalEngine(engine.GameConfig{Autoplay: true, Seed: 3, MaxPieces: 20})

	var once sync.Once
	ended := make(chan string)
	e.OnGameEnd(func(outcome string) {
		once.Do(func() { ended <- outcome })
	})
	require.NoError(t, e.Connect())
	defer e.Close()

	select {
	case outcome := <-ended:
		assert.NotEmpty(t, outcome)
	case <-time.After(10 * time.Second):
		t.Fatal("game did not finish")
	}
	assert.Equal(t, 20, e.GetGameState().PiecesPlaced)
}

func TestCloseIsIdempotent(t *testing.T) {
	e := NewLocalEngine(manualConfig(false, 0))
	require.NoError(t, e.Connect())
	e.Close()
	e.Close()
}

func TestTimedStepLogsLock(t *testing.T) {
	var buf bytes.Buffer
	saved := debugLog
	debugLog = log.New(&buf, "", 0)
	t.Cleanup(func() { debugLog = saved })

	e := NewLocalEngine(manualConfig(false, 0))
	require.NoError(t, e.Connect())
	defer e.Close()

	for i := 0; i < 100 && e.GetGameState().PiecesPlaced == 0; i++ {
		e.Step()
	}
	require.Equal(t, 1, e.GetGameState().PiecesPlaced)
	assert.Contains(t, buf.String(), "Step: locked piece 1, cleared 0 rows")
}
