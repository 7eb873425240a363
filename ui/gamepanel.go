package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"termblocks/grid"
	"termblocks/types"
)

// panelWidth is the fixed width of the info panel.
const panelWidth = 26

var clearNames = map[int]string{
	1: "Single",
	2: "Double",
	3: "Triple",
	4: "Quad",
}

// GameInfoPanel displays totals, the hold and next pieces and the line
// clear histogram alongside the board.
type GameInfoPanel struct {
	box     *tview.TextView
	state   *types.GameState
	palette []string
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel(palette []string) *GameInfoPanel {
	panel := &GameInfoPanel{
		box:     tview.NewTextView(),
		palette: palette,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetGameState updates the panel with the current game.
func (p *GameInfoPanel) SetGameState(state *types.GameState) {
	p.state = state
	p.refresh()
}

// SetPalette sets the "#rrggbb" colors pieces are drawn with.
func (p *GameInfoPanel) SetPalette(palette []string) {
	p.palette = palette
	p.refresh()
}

func (p *GameInfoPanel) color(token int) string {
	if len(p.palette) == 0 {
		return "white"
	}
	return p.palette[token%len(p.palette)]
}

func section(title string) string {
	return fmt.Sprintf("%s[::b]%s[-:-:-]\n%s%s[-:-:-]\n",
		colorTag(MenuColors.Title), title, colorTag(MenuColors.Border), strings.Repeat("─", panelWidth-4))
}

func field(label string, value any) string {
	return fmt.Sprintf("%s%s[-:-:-] %v\n", colorTag(MenuColors.Label), runewidth.FillRight(label, 8), value)
}

// previewText renders a preview grid two columns per cell.
func (p *GameInfoPanel) previewText(piece types.PieceState) string {
	var sb strings.Builder
	for _, row := range piece.Preview {
		sb.WriteString("  ")
		for _, cell := range row {
			if cell < 0 {
				sb.WriteString("  ")
				continue
			}
			fmt.Fprintf(&sb, "[%s]██[-]", p.color(cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.state == nil || p.state.Width() == 0 {
		p.box.SetText("")
		return
	}
	s := p.state

	var text strings.Builder
	text.WriteString(section("Game"))
	text.WriteString(field("Lines:", s.LinesCleared))
	text.WriteString(field("Pieces:", s.PiecesPlaced))
	mode := "Manual"
	if s.Autoplay {
		mode = "Autoplay"
	}
	text.WriteString(field("Mode:", mode))

	text.WriteString("\n")
	text.WriteString(section("Hold"))
	text.WriteString(p.previewText(s.Held))
	text.WriteString(section("Next"))
	text.WriteString(p.previewText(s.Next))

	if len(s.Histogram) > 0 {
		text.WriteString(section("Clears"))
		rows := make([]int, 0, len(s.Histogram))
		for r := range s.Histogram {
			rows = append(rows, r)
		}
		slices.Sort(rows)
		for _, r := range rows {
			name, ok := clearNames[r]
			if !ok {
				name = fmt.Sprintf("%d rows", r)
			}
			text.WriteString(field(name+":", s.Histogram[r]))
		}
	}

	p.box.SetText(text.String())
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm centers a primitive horizontally and vertically.
func CreateCenteredForm(form tview.Primitive, maxWidth, maxHeight int) *tview.Flex {
	row := tview.NewFlex().SetDirection(tview.FlexColumn)
	row.AddItem(nil, 0, 1, false)
	row.AddItem(form, maxWidth, 0, true)
	row.AddItem(nil, 0, 1, false)

	centered := tview.NewFlex().SetDirection(tview.FlexRow)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(row, maxHeight, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel(board.cfg.Theme.Palette)
	board.infoPanel = infoPanel
	if board.State != nil {
		infoPanel.SetGameState(board.State)
	}

	boardW, _ := BoardSize(grid.Height, grid.Width)
	if board.State != nil && board.State.Width() > 0 {
		boardW, _ = BoardSize(board.State.Height(), board.State.Width())
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(nil, 0, 1, false)
	boardRow.AddItem(board.Box, boardW, 0, true)
	boardRow.AddItem(nil, 2, 0, false)
	boardRow.AddItem(infoPanel.Box(), panelWidth, 0, false)
	boardRow.AddItem(nil, 0, 1, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()

	boardW, boardH := BoardSize(grid.Height, grid.Width)
	if board.State != nil && board.State.Width() > 0 {
		boardW, boardH = BoardSize(board.State.Height(), board.State.Width())
	}

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardW, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardH, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
