package ui

import (
	"github.com/gdamore/tcell/v2"
)

// RadioOption represents a single radio button option.
type RadioOption struct {
	Label       string
	Description string
}

// RadioSelect is a vertical group of mutually exclusive options.
type RadioSelect struct {
	label    string
	options  []RadioOption
	selected int
	focused  bool
	onChange func(int)
}

// NewRadioSelect creates a new radio select component.
func NewRadioSelect(label string, options []RadioOption, initial int, onChange func(int)) *RadioSelect {
	return &RadioSelect{
		label:    label,
		options:  options,
		selected: initial,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	switch {
	case event.Key() == tcell.KeyUp, event.Key() == tcell.KeyRune && event.Rune() == 'k':
		r.SetSelected(r.selected - 1)
		return true
	case event.Key() == tcell.KeyDown, event.Key() == tcell.KeyRune && event.Rune() == 'j':
		r.SetSelected(r.selected + 1)
		return true
	}
	return false
}

// Draw renders the label and one row per option. Returns the rows used.
func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := bgStyle.Foreground(MenuColors.Label)
	accentStyle := bgStyle.Foreground(MenuColors.TitleAccent)
	selectedStyle := bgStyle.Foreground(MenuColors.Selected)
	unselectedStyle := bgStyle.Foreground(MenuColors.Unselected)
	hintStyle := bgStyle.Foreground(MenuColors.Hint)

	row := y
	col := x + 2
	col += drawText(screen, col, row, "◈ ", accentStyle)
	drawText(screen, col, row, r.label, labelStyle)
	row++

	for i, opt := range r.options {
		col = x + 4
		if r.focused && i == r.selected {
			screen.SetContent(col, row, '▸', nil, selectedStyle)
		} else {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
		col += 2

		style := unselectedStyle
		bullet := "○ "
		if i == r.selected {
			bullet = "● "
			style = selectedStyle
		}
		col += drawText(screen, col, row, bullet, style)
		col += drawText(screen, col, row, opt.Label, style)

		if opt.Description != "" && col-x < width {
			drawText(screen, col+1, row, opt.Description, hintStyle)
		}
		row++
	}

	return row - y
}

// Selected returns the currently selected index.
func (r *RadioSelect) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out of range indexes are ignored.
func (r *RadioSelect) SetSelected(index int) {
	if index < 0 || index >= len(r.options) || index == r.selected {
		return
	}
	r.selected = index
	if r.onChange != nil {
		r.onChange(r.selected)
	}
}
