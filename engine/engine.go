// Package engine defines the interface for game engines and the turn state
// machine they drive.
package engine

import (
	"errors"
	"time"

	"termblocks/types"
)

var (
	// ErrGameOver is returned for commands sent after the game has ended.
	ErrGameOver = errors.New("game is over")
	// ErrNotStarted is returned for commands sent before Connect.
	ErrNotStarted = errors.New("game not started")
	// ErrUnknownCommand is returned for commands outside the command table.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBlocked is returned when a command's target placement is not valid.
	ErrBlocked = errors.New("placement blocked")
)

// GameEngine defines the interface for running a game.
type GameEngine interface {
	// Connect starts the engine and initializes the game.
	Connect() error

	// GetGameState returns a snapshot of the current game.
	GetGameState() *types.GameState

	// Apply executes a player command.
	// Returns an error if the command could not be applied.
	Apply(cmd Command) error

	// OnUpdate registers a callback for when the game state changes.
	// state is passed directly to avoid lock contention.
	OnUpdate(func(state *types.GameState))

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close shuts down the engine.
	Close()
}

// MinDropDelay is the shortest interval between two engine ticks.
const MinDropDelay = 10 * time.Millisecond

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	DropDelay time.Duration // Gravity interval; 0 runs one full autoplay turn per tick
	Autoplay  bool          // Let the agent choose placements
	Seed      int64         // Random source seed for piece draws
	MaxPieces int           // Stop after this many placements; 0 means unlimited
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		DropDelay: 100 * time.Millisecond,
		Autoplay:  true,
		Seed:      time.Now().UnixNano(),
	}
}

// SpeedToDelay maps a speed level in [0, 10] to a drop delay. Level 10 is
// the fastest and yields a delay of 0.
func SpeedToDelay(level int) time.Duration {
	level = max(0, min(10, level))
	return time.Duration(10-level) * 50 * time.Millisecond
}

// DelayToSpeed is the inverse of SpeedToDelay, rounding towards slower
// levels for delays between two steps.
func DelayToSpeed(delay time.Duration) int {
	steps := int((delay + 50*time.Millisecond - 1) / (50 * time.Millisecond))
	return max(0, min(10, 10-steps))
}
