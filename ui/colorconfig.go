package ui

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/tview"

	"termblocks/config"
	"termblocks/grid"
	"termblocks/piece"
)

// ColorConfigUI edits the block palette with a live preview of every shape.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// palette is the working copy shown in the preview.
	palette []string
	slot    int
	// pickingColor is true while choosing a swatch for slot.
	pickingColor bool
	save         func() error
	saveErr      error
}

// swatches are the colors offered for a slot: the default palette followed
// by a ring of evenly spaced hues.
var swatches = func() []string {
	out := slices.Clone(config.DefaultTheme.Palette)
	for hue := 0.0; hue < 360; hue += 30 {
		out = append(out, colorful.Hsv(hue, 0.65, 0.95).Hex())
	}
	for _, l := range []float64{0.9, 0.6, 0.3} {
		out = append(out, colorful.Hsl(0, 0, l).Hex())
	}
	return out
}()

// NewColorConfig creates the palette editor.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:     cfg,
		onDone:  onDone,
		palette: slices.Clone(cfg.Theme.Palette),
		save:    cfg.Save,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.pickingColor && index >= 0 && index < len(swatches) {
			cc.palette[cc.slot] = swatches[index]
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.selectItem(index)
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Piece Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// selectItem handles Enter on the list: in slot mode it opens the swatches
// for a slot (or adds one), in swatch mode it commits the choice.
func (cc *ColorConfigUI) selectItem(index int) {
	if cc.pickingColor {
		if index < 0 || index >= len(swatches) {
			return
		}
		cc.palette[cc.slot] = swatches[index]
		cc.commit()
		cc.pickingColor = false
		cc.populateColorList()
		return
	}

	if index == len(cc.palette) {
		cc.palette = append(cc.palette, swatches[len(cc.palette)%len(swatches)])
		cc.commit()
		cc.populateColorList()
		return
	}
	if index >= 0 && index < len(cc.palette) {
		cc.slot = index
		cc.pickingColor = true
		cc.populateColorList()
	}
}

// RemoveSlot drops the selected slot. The last slot cannot be removed.
func (cc *ColorConfigUI) RemoveSlot() {
	index := cc.colorList.GetCurrentItem()
	if cc.pickingColor || len(cc.palette) <= 1 || index >= len(cc.palette) {
		return
	}
	cc.palette = slices.Delete(cc.palette, index, index+1)
	cc.commit()
	cc.populateColorList()
}

// Cancel leaves swatch mode, restoring the saved palette. It reports
// whether there was anything to cancel.
func (cc *ColorConfigUI) Cancel() bool {
	if !cc.pickingColor {
		return false
	}
	cc.palette = slices.Clone(cc.cfg.Theme.Palette)
	cc.pickingColor = false
	cc.populateColorList()
	return true
}

func (cc *ColorConfigUI) commit() {
	cc.cfg.Theme.Palette = slices.Clone(cc.palette)
	cc.saveErr = cc.save()
	if cc.onDone != nil {
		cc.onDone()
	}
}

// populateColorList fills the list for the current mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	if cc.pickingColor {
		cc.colorList.SetTitle(fmt.Sprintf(" Color for slot %d (Esc: back) ", cc.slot+1))
		want, current := cc.palette[cc.slot], 0
		for i, hex := range swatches {
			cc.colorList.AddItem(fmt.Sprintf("[%s]████[-] %s", hex, hex), "", 0, nil)
			if hex == want {
				current = i
			}
		}
		cc.colorList.SetCurrentItem(current)
		cc.palette[cc.slot] = want
		return
	}

	cc.colorList.SetTitle(" Palette (⏎ edit, d delete) ")
	for i, hex := range cc.palette {
		cc.colorList.AddItem(fmt.Sprintf("[%s]████[-] Slot %d  %s", hex, i+1, hex), "", rune('1'+i%9), nil)
	}
	cc.colorList.AddItem("[::d]+ Add color[-:-:-]", "", '+', nil)
	cc.colorList.SetCurrentItem(min(cc.slot, len(cc.palette)))
}

// drawPreview draws every shape in its palette color, identity token i for
// shape i, so each slot in use is visible.
func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < 20 || height < 8 {
		return x, y, width, height
	}
	bg := tcell.StyleDefault.Background(tcell.PaletteColor(cc.cfg.Theme.Colors.BackgroundColor))

	startX, startY := x+2, y+1
	for i, shape := range piece.Shapes {
		p := piece.New(shape, 0, i)
		g := grid.Preview(p)

		originX := startX + (i%3)*(grid.PreviewSize*2+2)
		originY := startY + (i/3)*(grid.PreviewSize+1)
		for row := range g {
			for col, cell := range g[row] {
				style := bg
				r := ' '
				if cell != grid.Empty {
					style = bg.Foreground(cc.swatchColor(int(cell)))
					r = cc.cfg.Theme.Symbols.Block
				}
				screen.SetContent(originX+col*2, originY+row, r, nil, style)
				screen.SetContent(originX+col*2+1, originY+row, r, nil, style)
			}
		}
	}

	info := fmt.Sprintf("%d colors", len(cc.palette))
	if cc.saveErr != nil {
		info = fmt.Sprintf("Save failed: %v", cc.saveErr)
	}
	drawText(screen, startX, startY+2*(grid.PreviewSize+1), info, tcell.StyleDefault)
	return x, y, width, height
}

func (cc *ColorConfigUI) swatchColor(token int) tcell.Color {
	c, err := colorful.Hex(cc.palette[token%len(cc.palette)])
	if err != nil {
		return tcell.ColorWhite
	}
	return toTcell(c)
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// Palette returns the palette being edited.
func (cc *ColorConfigUI) Palette() []string {
	return cc.palette
}
