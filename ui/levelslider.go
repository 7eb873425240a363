package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// LevelSlider is a horizontal slider for picking an integer in [min, max].
type LevelSlider struct {
	label    string
	min      int
	max      int
	value    int
	focused  bool
	onChange func(int)
}

// NewLevelSlider creates a new level slider.
func NewLevelSlider(label string, min, max, initial int, onChange func(int)) *LevelSlider {
	s := &LevelSlider{
		label:    label,
		min:      min,
		max:      max,
		onChange: onChange,
	}
	s.value = s.clamp(initial)
	return s
}

func (s *LevelSlider) clamp(v int) int {
	return max(s.min, min(s.max, v))
}

// SetFocused sets the focus state.
func (s *LevelSlider) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (s *LevelSlider) HandleKey(event *tcell.EventKey) bool {
	step := 0
	switch event.Key() {
	case tcell.KeyLeft:
		step = -1
	case tcell.KeyRight:
		step = 1
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			step = -1
		case 'l':
			step = 1
		}
	}
	if step == 0 {
		return false
	}
	s.SetValue(s.value + step)
	return true
}

// Draw renders the slider on one row and returns the rows used.
func (s *LevelSlider) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := bgStyle.Foreground(MenuColors.Label)
	accentStyle := bgStyle.Foreground(MenuColors.TitleAccent)
	selectedStyle := bgStyle.Foreground(MenuColors.Selected)
	unselectedStyle := bgStyle.Foreground(MenuColors.Unselected)

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

	arrowStyle := unselectedStyle
	if s.focused {
		arrowStyle = selectedStyle
	}
	col += drawText(screen, col, y, "◀ ", arrowStyle)

	filled := s.value - s.min + 1
	for i := 0; i <= s.max-s.min; i++ {
		if i < filled {
			screen.SetContent(col, y, '█', nil, selectedStyle)
		} else {
			screen.SetContent(col, y, '░', nil, unselectedStyle)
		}
		col++
	}
	col++

	col += drawText(screen, col, y, strconv.Itoa(s.value), labelStyle)
	col++
	drawText(screen, col, y, "▶", arrowStyle)
	return 1
}

// Value returns the current slider value.
func (s *LevelSlider) Value() int {
	return s.value
}

// SetValue moves the slider to v, clamped to its range.
func (s *LevelSlider) SetValue(v int) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(s.value)
	}
}
