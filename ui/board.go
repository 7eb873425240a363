package ui

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/tview"

	"termblocks/config"
	"termblocks/engine"
	"termblocks/types"
)

// Chrome color slots in BoardUI.styles.
const (
	styleBackground = iota
	styleGridLine
	styleBorder
	styleText
)

type BoardUI struct {
	Box       *tview.Box
	State     *types.GameState
	hint      *tview.TextView
	cfg       *config.Config
	finished  bool
	app       *tview.Application
	eng       engine.GameEngine
	styles    []tcell.Color
	palette   []tcell.Color
	dimmed    []tcell.Color
	infoPanel *GameInfoPanel
	focusMode bool

	// latest is written by engine callbacks and read on the UI goroutine.
	latest atomic.Pointer[types.GameState]
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:   tview.NewBox(),
		State: &types.GameState{},
		hint:  hint,
		app:   app,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

// BoardSize returns the screen size of a board with the given cell counts:
// two columns per cell plus the side walls, and one row for the floor.
func BoardSize(rows, cols int) (width, height int) {
	return cols*2 + 2, rows + 1
}

func (g *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	s := g.State
	if s == nil || s.Width() == 0 {
		return x, y, 1, 1
	}
	boardW, boardH := BoardSize(s.Height(), s.Width())
	left := x + 1

	bg := g.styles[styleBackground]
	wallStyle := tcell.StyleDefault.Foreground(g.styles[styleBorder]).Background(bg)
	for row := 0; row < s.Height(); row++ {
		screen.SetContent(x, y+row, '│', nil, wallStyle)
		screen.SetContent(left+s.Width()*2, y+row, '│', nil, wallStyle)
	}
	screen.SetContent(x, y+s.Height(), '└', nil, wallStyle)
	for col := 0; col < s.Width()*2; col++ {
		screen.SetContent(left+col, y+s.Height(), '─', nil, wallStyle)
	}
	screen.SetContent(left+s.Width()*2, y+s.Height(), '┘', nil, wallStyle)

	symbols := g.cfg.Theme.Symbols
	for row := 0; row < s.Height(); row++ {
		for col := 0; col < s.Width(); col++ {
			token, highlighted := s.CellAt(row, col)

			style := tcell.StyleDefault.Background(bg)
			r1, r2 := symbols.Empty, symbols.Empty
			switch {
			case token >= 0:
				style = style.Foreground(g.paletteColor(g.palette, token))
				r1, r2 = symbols.Block, symbols.Block
			case highlighted:
				style = style.Foreground(g.paletteColor(g.dimmed, s.Current.ID))
				r1, r2 = symbols.Preview, symbols.Preview
			case g.cfg.Theme.UseGridLines:
				style = style.Foreground(g.styles[styleGridLine])
				r1, r2 = '·', ' '
			}
			screen.SetContent(left+col*2, y+row, r1, nil, style)
			screen.SetContent(left+col*2+1, y+row, r2, nil, style)
		}
	}

	if s.Finished() {
		banner := " GAME OVER "
		bannerStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.Warning).Bold(true)
		drawText(screen, x+(boardW-textWidth(banner))/2, y+s.Height()/2, banner, bannerStyle)
	}
	return x, y, boardW, boardH
}

func (g *BoardUI) paletteColor(colors []tcell.Color, token int) tcell.Color {
	if len(colors) == 0 || token < 0 {
		return g.styles[styleText]
	}
	return colors[token%len(colors)]
}

// ConnectEngine connects the board to a game engine.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) error {
	g.finished = false
	g.eng = e

	e.OnUpdate(func(state *types.GameState) {
		g.latest.Store(state)
		// Spawn goroutine to avoid deadlock when called from the UI goroutine
		go g.app.QueueUpdateDraw(g.syncState)
	})

	e.OnGameEnd(func(outcome string) {
		go g.app.QueueUpdateDraw(func() {
			g.finished = true
			g.syncState()
		})
	})

	if err := e.Connect(); err != nil {
		return err
	}

	g.State = e.GetGameState()
	g.refreshHint()
	return nil
}

// syncState picks up the newest state published by the engine.
func (g *BoardUI) syncState() {
	if state := g.latest.Load(); state != nil {
		g.State = state
	}
	g.refreshHint()
}

// Apply sends a player command to the engine. Blocked moves are ignored.
func (g *BoardUI) Apply(cmd engine.Command) error {
	if g.finished || g.eng == nil {
		return nil
	}
	err := g.eng.Apply(cmd)
	if errors.Is(err, engine.ErrBlocked) || errors.Is(err, engine.ErrGameOver) {
		return nil
	}
	return err
}

// Close disconnects the engine.
func (g *BoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
	g.latest.Store(nil)
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BackgroundColor), // styleBackground
		tcell.PaletteColor(c.Theme.Colors.GridLineColor),   // styleGridLine
		tcell.PaletteColor(c.Theme.Colors.BorderColor),     // styleBorder
		tcell.PaletteColor(c.Theme.Colors.TextColor),       // styleText
	}

	colors, err := c.Theme.PaletteColors()
	if err != nil {
		colors, _ = config.DefaultTheme.PaletteColors()
	}
	background := toColorful(g.styles[styleBackground])
	g.palette = make([]tcell.Color, len(colors))
	g.dimmed = make([]tcell.Color, len(colors))
	for i, col := range colors {
		g.palette[i] = toTcell(col)
		g.dimmed[i] = toTcell(col.BlendLab(background, c.Theme.PreviewBlend).Clamped())
	}
	g.cfg = c

	if g.infoPanel != nil {
		g.infoPanel.SetPalette(c.Theme.Palette)
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetGameState(g.State)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	if g.finished {
		outcome := ""
		if g.State != nil {
			outcome = g.State.Outcome
		}
		g.hint.SetText(fmt.Sprintf("  Result: %s\n  q · return to menu", outcome))
		return
	}

	mode := "✋ Manual"
	if g.State != nil && g.State.Autoplay {
		mode = "▶ Autoplay"
	}
	g.hint.SetText(fmt.Sprintf("  %s\n  ←↓→/hjl move   ↑/k rotate   c hold   ␣ drop   a auto   f focus   q quit", mode))
}
