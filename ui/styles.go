package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// MenuColors is the Nord-inspired chrome shared by the menu card, the info
// panel and the board banner. Piece colors come from the config palette.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	CardBG      tcell.Color
	Title       tcell.Color
	TitleAccent tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	Selected    tcell.Color
	Unselected  tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
	Warning     tcell.Color
}{
	Border:      tcell.PaletteColor(60),
	BorderFocus: tcell.PaletteColor(109),
	CardBG:      tcell.PaletteColor(236),
	Title:       tcell.PaletteColor(255),
	TitleAccent: tcell.PaletteColor(109),
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	Selected:    tcell.PaletteColor(109),
	Unselected:  tcell.PaletteColor(245),
	ButtonFocus: tcell.PaletteColor(109),
	ButtonText:  tcell.PaletteColor(255),
	Warning:     tcell.PaletteColor(174),
}

// colorTag returns the tview style tag "[#rrggbb]" for c.
func colorTag(c tcell.Color) string {
	if c.Hex() < 0 {
		return "[-]"
	}
	return fmt.Sprintf("[#%06x]", c.Hex())
}
