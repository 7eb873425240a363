// Package local runs games in-process on a timer, driving engine.Game the way
// a remote engine would be driven: commands in, state callbacks out.
package local

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"termblocks/engine"
	"termblocks/types"
)

var debugLog *log.Logger

func init() {
	f, err := os.Create(filepath.Join(os.TempDir(), "termblocks-debug.log"))
	if err != nil {
		debugLog = log.New(io.Discard, "", 0)
		return
	}
	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)
}

// LocalEngine implements the GameEngine interface with an in-process game
// advanced by a ticker goroutine.
type LocalEngine struct {
	config engine.GameConfig
	game   *engine.Game

	updateCallback func(state *types.GameState)
	endCallback    func(outcome string)

	cancel context.CancelFunc
	done   chan struct{}

	mu sync.Mutex
}

// NewLocalEngine creates a new local engine with the given configuration.
func NewLocalEngine(cfg engine.GameConfig) *LocalEngine {
	return &LocalEngine{config: cfg}
}

// Connect creates the game and starts the drop ticker.
func (e *LocalEngine) Connect() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.game != nil {
		return errors.New("engine already connected")
	}
	e.game = engine.NewGame(e.config)

	interval := max(e.config.DropDelay, engine.MinDropDelay)
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	debugLog.Printf("Connect: seed=%d autoplay=%v interval=%v", e.config.Seed, e.config.Autoplay, interval)

	go e.run(ctx, interval, e.done)
	return nil
}

func (e *LocalEngine) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			debugLog.Printf("run: cancelled")
			return
		case <-ticker.C:
			if !e.Step() {
				debugLog.Printf("run: game finished")
				return
			}
		}
	}
}

// Step advances the game by one tick and reports whether it is still
// running. With autoplay on, a fresh piece is first moved where the agent
// wants it. A zero drop delay plays a whole autoplay turn per step.
func (e *LocalEngine) Step() bool {
	e.mu.Lock()

	g := e.game
	if g == nil || g.Over() {
		e.mu.Unlock()
		return false
	}

	pieces, lines := g.Pieces(), g.Lines()
	if g.Autoplay() && e.config.DropDelay == 0 {
		g.Turn()
	} else {
		if g.Autoplay() && g.Fresh() {
			g.RunAgent()
		}
		g.Tick()
	}
	if g.Pieces() > pieces {
		debugLog.Printf("Step: locked piece %d, cleared %d rows", g.Pieces(), g.Lines()-lines)
	}

	state := g.Snapshot()
	over := g.Over()
	update, end := e.updateCallback, e.endCallback
	e.mu.Unlock()

	// Notify callbacks (outside lock to prevent deadlock)
	if update != nil {
		update(state)
	}
	if over {
		debugLog.Printf("Step: %s", state.Outcome)
		if end != nil {
			end(state.Outcome)
		}
	}
	return !over
}

// GetGameState returns a snapshot of the game, or nil before Connect.
func (e *LocalEngine) GetGameState() *types.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return nil
	}
	return e.game.Snapshot()
}

// Apply executes a player command.
func (e *LocalEngine) Apply(cmd engine.Command) error {
	e.mu.Lock()
	if e.game == nil {
		e.mu.Unlock()
		return engine.ErrNotStarted
	}
	if err := e.game.Apply(cmd); err != nil {
		e.mu.Unlock()
		return err
	}
	state := e.game.Snapshot()
	update := e.updateCallback
	e.mu.Unlock()

	if update != nil {
		update(state)
	}
	return nil
}

// OnUpdate registers a callback for when the game state changes.
func (e *LocalEngine) OnUpdate(callback func(state *types.GameState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updateCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *LocalEngine) OnGameEnd(callback func(outcome string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endCallback = callback
}

// Close stops the ticker and waits for it to exit. It must not be called
// from inside a callback.
func (e *LocalEngine) Close() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel = nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	debugLog.Printf("Close: stopped")
}
