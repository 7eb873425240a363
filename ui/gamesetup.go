// Package ui provides terminal UI components for termblocks.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termblocks/config"
	"termblocks/engine"
)

// menuItem is a focusable control inside the setup card.
type menuItem interface {
	SetFocused(bool)
	HandleKey(*tcell.EventKey) bool
}

// GameSetupUI is the new game card: speed, play mode, seed and actions.
type GameSetupUI struct {
	*MenuCard

	speed   *LevelSlider
	mode    *RadioSelect
	seed    *SeedInput
	buttons []*MenuButton

	items []menuItem
	focus int

	defaults config.GameDefaults
}

// NewGameSetup creates the setup card with values taken from defaults.
func NewGameSetup(defaults config.GameDefaults, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		MenuCard: NewMenuCard("T E R M B L O C K S"),
		defaults: defaults,
	}
	setup.SetFooter("Tab next · ←→ adjust · ↑↓ choose · ⏎ select")

	initialSpeed := engine.DelayToSpeed(defaults.EngineConfig().DropDelay)
	setup.speed = NewLevelSlider("Speed", 0, 10, initialSpeed, nil)

	mode := 0
	if !defaults.Autoplay {
		mode = 1
	}
	setup.mode = NewRadioSelect("Mode", []RadioOption{
		{Label: "Autoplay", Description: "agent places pieces"},
		{Label: "Manual", Description: "you place pieces"},
	}, mode, nil)

	setup.seed = NewSeedInput("Seed", defaults.Seed, nil)

	setup.buttons = []*MenuButton{
		NewMenuButton("Start", true, func() { onStart(setup.GameConfig()) }),
		NewMenuButton("Colors", false, func() {
			if onColors != nil {
				onColors()
			}
		}),
		NewMenuButton("Quit", false, onCancel),
	}

	setup.items = []menuItem{setup.speed, setup.mode, setup.seed}
	for _, b := range setup.buttons {
		setup.items = append(setup.items, b)
	}
	setup.setFocus(0)
	return setup
}

// GameConfig returns the engine settings chosen in the card.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	cfg := s.defaults.EngineConfig()
	cfg.DropDelay = engine.SpeedToDelay(s.speed.Value())
	cfg.Autoplay = s.mode.Selected() == 0
	if seed := s.seed.Value(); seed != 0 {
		cfg.Seed = seed
	}
	return cfg
}

func (s *GameSetupUI) setFocus(i int) {
	n := len(s.items)
	s.focus = ((i % n) + n) % n
	for j, item := range s.items {
		item.SetFocused(j == s.focus)
	}
}

// Draw renders the card and its controls.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	s.MenuCard.SetFocused(s.HasFocus())
	s.MenuCard.Draw(screen)

	x, _, width, _ := s.GetInnerRect()
	left := x + 3
	row := s.ContentTop() + 1

	row += s.speed.Draw(screen, left, row, width-6) + 1
	row += s.mode.Draw(screen, left, row, width-6) + 1
	row += s.seed.Draw(screen, left, row, width-6) + 1

	total := 0
	for _, b := range s.buttons {
		total += b.Width() + 2
	}
	col := x + (width-total+2)/2
	for _, b := range s.buttons {
		col += b.Draw(screen, col, row+1) + 2
	}
}

// InputHandler routes keys to the focused control. Tab and Shift+Tab move
// focus; Left and Right also move between buttons.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab:
			s.setFocus(s.focus + 1)
			return
		case tcell.KeyBacktab:
			s.setFocus(s.focus - 1)
			return
		}
		if s.items[s.focus].HandleKey(event) {
			return
		}
		if _, ok := s.items[s.focus].(*MenuButton); ok {
			switch event.Key() {
			case tcell.KeyLeft:
				if s.focus > len(s.items)-len(s.buttons) {
					s.setFocus(s.focus - 1)
				}
			case tcell.KeyRight:
				if s.focus < len(s.items)-1 {
					s.setFocus(s.focus + 1)
				}
			}
		}
	})
}
