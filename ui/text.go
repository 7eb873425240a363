package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes s starting at (x, y), advancing by each rune's display
// width. It returns the number of columns used.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	col := x
	for _, ch := range s {
		screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
	return col - x
}

// textWidth returns the display width of s.
func textWidth(s string) int {
	return runewidth.StringWidth(s)
}
