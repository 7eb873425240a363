// termblocks is a terminal falling-block game with an autoplaying agent.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termblocks/bench"
	"termblocks/config"
	"termblocks/engine"
	"termblocks/engine/local"
	"termblocks/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagSpeed      = flag.Int("speed", -1, "Drop speed (0 slowest, 10 fastest)")
	flagManual     = flag.Bool("manual", false, "Place pieces yourself instead of the agent")
	flagSeed       = flag.Int64("seed", 0, "Seed for piece draws (0 picks one)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagHeadless   = flag.Bool("headless", false, "Play autoplay games without the UI and print results")
	flagGames      = flag.Int("games", 10, "Headless: number of games")
	flagWorkers    = flag.Int("workers", 0, "Headless: concurrent games (0 uses all CPUs)")
	flagPieces     = flag.Int("pieces", 1000, "Headless: piece limit per game (0 plays until topped out)")
	flagJSON       = flag.Bool("json", false, "Headless: print JSON lines instead of a table")
	flagOutput     = flag.String("output", "", "Headless: also write one JSON file per game to this directory")
	flagConfig     = flag.String("config", "", "Read config from this file instead of the default location")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

// keyCommands maps the arrow keys to engine commands.
var keyCommands = map[tcell.Key]engine.Command{
	tcell.KeyDown:  engine.ShiftDown,
	tcell.KeyLeft:  engine.ShiftLeft,
	tcell.KeyRight: engine.ShiftRight,
	tcell.KeyUp:    engine.Rotate,
}

// runeCommands comes from the config key bindings.
var runeCommands map[rune]engine.Command

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termblocks %s\n", Version)
		return
	}

	var err error
	if *flagConfig != "" {
		cfg, err = config.Load(*flagConfig)
	} else {
		cfg, err = config.InitConfig()
	}
	if err == nil {
		runeCommands, err = cfg.KeyBindings()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagHeadless {
		if err := runHeadless(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	quickStart := *flagQuickStart || *flagSpeed >= 0 || *flagManual || *flagSeed != 0 || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ▦ termblocks ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(app, cfg, gameHint)
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if cmd, ok := keyCommands[event.Key()]; ok {
			gameBoard.Apply(cmd)
			return nil
		}
		if event.Key() != tcell.KeyRune {
			return event
		}
		if cmd, ok := runeCommands[event.Rune()]; ok {
			gameBoard.Apply(cmd)
			return nil
		}
		switch event.Rune() {
		case 'q':
			gameBoard.Close()
			rootPage.SwitchToPage("setup")
			return nil
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
			return nil
		}
		return event
	})

	setupUI := ui.NewGameSetup(
		cfg.Game,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			if !colorConfig.Cancel() {
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		if event.Key() == tcell.KeyRune && event.Rune() == 'd' {
			colorConfig.RemoveSlot()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI, 56, 22), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(buildGameConfigFromFlags())
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
	gameBoard.Close()
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()

	eng := local.NewLocalEngine(gameCfg)
	if err := gameBoard.ConnectEngine(eng); err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	if !gameBoard.IsFocusMode() {
		ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
	}
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
}

// buildGameConfigFromFlags creates a GameConfig from config defaults and
// command-line flags.
func buildGameConfigFromFlags() engine.GameConfig {
	gameCfg := cfg.Game.EngineConfig()

	if *flagSpeed >= 0 {
		gameCfg.DropDelay = engine.SpeedToDelay(*flagSpeed)
	}
	if *flagManual {
		gameCfg.Autoplay = false
	}
	if *flagSeed != 0 {
		gameCfg.Seed = *flagSeed
	}
	return gameCfg
}

// runHeadless plays bench games and prints the results.
func runHeadless() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seed := *flagSeed
	if seed == 0 {
		seed = cfg.Game.EngineConfig().Seed
	}

	results, err := bench.Run(ctx, bench.Options{
		Games:     *flagGames,
		Seed:      seed,
		MaxPieces: *flagPieces,
		Workers:   *flagWorkers,
		OutputDir: *flagOutput,
	})
	if err != nil {
		return err
	}
	summary := bench.Summarize(results)

	if *flagJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return enc.Encode(summary)
	}

	fmt.Printf("%5s  %20s  %7s  %6s  %s\n", "game", "seed", "pieces", "lines", "end")
	for _, r := range results {
		end := "limit"
		if r.GameOver {
			end = "topped out"
		}
		fmt.Printf("%5d  %20d  %7d  %6d  %s\n", r.Game, r.Seed, r.Pieces, r.Lines, end)
	}
	fmt.Printf("\n%d games, %d pieces, %d lines (mean %.1f, best %d), %d topped out\n",
		summary.Games, summary.Pieces, summary.Lines, summary.MeanLines, summary.BestLines, summary.ToppedOut)

	for _, r := range slices.Sorted(maps.Keys(summary.Histogram)) {
		fmt.Printf("  %d-row clears: %d\n", r, summary.Histogram[r])
	}
	return nil
}
