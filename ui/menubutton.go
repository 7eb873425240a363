package ui

import (
	"github.com/gdamore/tcell/v2"
)

// MenuButton is a styled button component.
type MenuButton struct {
	label    string
	primary  bool
	focused  bool
	onSelect func()
}

// NewMenuButton creates a new menu button.
func NewMenuButton(label string, primary bool, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		primary:  primary,
		onSelect: onSelect,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	if event.Key() != tcell.KeyEnter {
		return false
	}
	if b.onSelect != nil {
		b.onSelect()
	}
	return true
}

func (b *MenuButton) text() string {
	if b.primary {
		return "▶ " + b.label
	}
	return b.label
}

// Draw renders the button at the given position and returns its width.
// A focused button is drawn as a filled pill, otherwise in brackets.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	width := b.Width()

	if b.focused {
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		drawText(screen, x+1, y, b.text(), style)
		return width
	}

	dimStyle := tcell.StyleDefault.
		Foreground(MenuColors.Hint).
		Background(MenuColors.CardBG)
	bracketStyle := dimStyle.Foreground(MenuColors.Border)

	screen.SetContent(x, y, '[', nil, bracketStyle)
	col := x + 1 + drawText(screen, x+1, y, b.text(), dimStyle)
	screen.SetContent(col, y, ']', nil, bracketStyle)
	return width
}

// Width returns the button width, including padding or brackets.
func (b *MenuButton) Width() int {
	return textWidth(b.text()) + 2
}
