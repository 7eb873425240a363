package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// seedFieldWidth is the visible width of the seed text.
const seedFieldWidth = 12

// SeedInput is a numeric input field for the piece seed. An empty field
// means a new random seed per game.
type SeedInput struct {
	label    string
	text     string
	focused  bool
	cursor   int
	onChange func(int64)
}

// NewSeedInput creates a new seed input field. A zero initial seed leaves
// the field empty.
func NewSeedInput(label string, initial int64, onChange func(int64)) *SeedInput {
	s := &SeedInput{
		label:    label,
		onChange: onChange,
	}
	if initial != 0 {
		s.text = strconv.FormatInt(initial, 10)
		s.cursor = len(s.text)
	}
	return s
}

// SetFocused sets the focus state.
func (s *SeedInput) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (s *SeedInput) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		if s.cursor > 0 {
			s.cursor--
		}
		return true
	case tcell.KeyRight:
		if s.cursor < len(s.text) {
			s.cursor++
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.cursor > 0 {
			s.text = s.text[:s.cursor-1] + s.text[s.cursor:]
			s.cursor--
			s.changed()
		}
		return true
	case tcell.KeyDelete:
		if s.cursor < len(s.text) {
			s.text = s.text[:s.cursor] + s.text[s.cursor+1:]
			s.changed()
		}
		return true
	case tcell.KeyRune:
		ch := event.Rune()
		if ch < '0' || ch > '9' || len(s.text) >= 18 {
			return true
		}
		s.text = s.text[:s.cursor] + string(ch) + s.text[s.cursor:]
		s.cursor++
		s.changed()
		return true
	}
	return false
}

func (s *SeedInput) changed() {
	if s.onChange != nil {
		s.onChange(s.Value())
	}
}

// Draw renders the input on one row and returns the rows used.
func (s *SeedInput) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := bgStyle.Foreground(MenuColors.Label)
	accentStyle := bgStyle.Foreground(MenuColors.TitleAccent)
	selectedStyle := bgStyle.Foreground(MenuColors.Selected)
	inputStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(tcell.PaletteColor(238))
	placeholderStyle := inputStyle.Foreground(MenuColors.Hint)
	cursorStyle := tcell.StyleDefault.Foreground(MenuColors.CardBG).Background(MenuColors.Selected)

	col := x
	if s.focused {
		screen.SetContent(col, y, '▸', nil, selectedStyle)
	} else {
		screen.SetContent(col, y, ' ', nil, bgStyle)
	}
	col += 2

	col += drawText(screen, col, y, "◈ ", accentStyle)
	col += drawText(screen, col, y, s.label, labelStyle)
	col += 3

	col += drawText(screen, col, y, "[ ", labelStyle)
	inputStart := col

	if s.text == "" && !s.focused {
		col += drawText(screen, col, y, "random", placeholderStyle)
	}
	for i, ch := range s.text {
		style := inputStyle
		if s.focused && i == s.cursor {
			style = cursorStyle
		}
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
	if s.focused && s.cursor >= len(s.text) {
		screen.SetContent(col, y, ' ', nil, cursorStyle)
		col++
	}
	for col < inputStart+seedFieldWidth {
		screen.SetContent(col, y, ' ', nil, inputStyle)
		col++
	}
	drawText(screen, col, y, " ]", labelStyle)
	return 1
}

// Value returns the entered seed, or 0 when the field is empty.
func (s *SeedInput) Value() int64 {
	v, err := strconv.ParseInt(s.text, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// SetValue replaces the field contents.
func (s *SeedInput) SetValue(v int64) {
	s.text = ""
	if v != 0 {
		s.text = strconv.FormatInt(v, 10)
	}
	s.cursor = len(s.text)
	s.changed()
}
