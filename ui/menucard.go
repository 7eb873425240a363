package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuCard is a styled card container with rounded borders, a title row and
// an optional footer hint.
type MenuCard struct {
	*tview.Box
	title   string
	footer  string
	focused bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title string) *MenuCard {
	return &MenuCard{
		Box:   tview.NewBox(),
		title: title,
	}
}

// SetFooter sets the hint drawn centered on the bottom border.
func (c *MenuCard) SetFooter(footer string) {
	c.footer = footer
}

func (c *MenuCard) borderStyle() tcell.Style {
	color := MenuColors.Border
	if c.focused {
		color = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(color).Background(MenuColors.CardBG)
}

// Draw renders the card frame. Content is drawn by the embedding widget
// below ContentTop.
func (c *MenuCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	c.drawRule(screen, y, '╭', '╮')
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}
	c.drawRule(screen, y+height-1, '╰', '╯')

	if c.title != "" {
		titleStyle := bgStyle.Foreground(MenuColors.Title).Bold(true)
		accentStyle := bgStyle.Foreground(MenuColors.TitleAccent)

		fullTitle := "▦  " + c.title
		titleX := x + (width-textWidth(fullTitle))/2
		col := titleX + drawText(screen, titleX, y+2, "▦  ", accentStyle)
		drawText(screen, col, y+2, c.title, titleStyle)

		c.DrawDivider(screen, y+4)
	}

	if c.footer != "" && textWidth(c.footer)+4 < width {
		hintStyle := bgStyle.Foreground(MenuColors.Hint)
		footer := " " + c.footer + " "
		drawText(screen, x+(width-textWidth(footer))/2, y+height-1, footer, hintStyle)
	}
}

// ContentTop returns the first row below the title divider.
func (c *MenuCard) ContentTop() int {
	_, y, _, _ := c.GetInnerRect()
	if c.title == "" {
		return y + 1
	}
	return y + 5
}

func (c *MenuCard) drawRule(screen tcell.Screen, ruleY int, left, right rune) {
	x, _, width, _ := c.GetInnerRect()
	style := c.borderStyle()
	screen.SetContent(x, ruleY, left, nil, style)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, ruleY, '─', nil, style)
	}
	screen.SetContent(x+width-1, ruleY, right, nil, style)
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	c.drawRule(screen, divY, '├', '┤')
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}
