package engine

import "fmt"

// Command is a player input the engine understands.
type Command int

const (
	ShiftDown Command = iota
	ShiftLeft
	ShiftRight
	Rotate
	Hold
	HardDrop
	ToggleAutoplay
)

var commandNames = map[Command]string{
	ShiftDown:      "down",
	ShiftLeft:      "left",
	ShiftRight:     "right",
	Rotate:         "rotate",
	Hold:           "hold",
	HardDrop:       "drop",
	ToggleAutoplay: "autoplay",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand returns the command with the given name.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownCommand)
}

// actions maps each command to the state change it performs on a game.
var actions = map[Command]func(g *Game) error{
	ShiftDown:  func(g *Game) error { return g.move(1, 0) },
	ShiftLeft:  func(g *Game) error { return g.move(0, -1) },
	ShiftRight: func(g *Game) error { return g.move(0, 1) },
	Rotate:     (*Game).rotate,
	Hold:       (*Game).hold,
	HardDrop:   (*Game).hardDrop,
	ToggleAutoplay: func(g *Game) error {
		g.autoplay = !g.autoplay
		return nil
	},
}
