// Package gui is the fyne front-end: the player's tiles as buttons, the AI hand
// face down, and the turn sequence staged with short delays.
package gui

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/events"
	"example.com/tilematch/internal/game"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

const (
	selectionDelay = 500 * time.Millisecond // Before the two picked tiles are compared
	flashDelay     = 800 * time.Millisecond // How long the match/mismatch colors stay up
)

// AppUI holds all the GUI widgets and the current session.
type AppUI struct {
	app    fyne.App
	window fyne.Window
	cfg    config.GameConfig
	log    *logrus.Logger
	rand   *rand.Rand

	game          *game.Game
	busy          bool // Set while a staged comparison or the AI turn is pending.
	generation    int  // Bumped on every new game so stale timers are dropped.
	flash         map[int]widget.Importance
	result        string
	gameOverShown bool

	// UI Components.
	infoLabel        *widget.Label
	scoreLabel       *widget.Label
	deckLabel        *widget.Label
	playerHand       *fyne.Container
	aiHand           *fyne.Container
	drawButton       *widget.Button
	difficultyButton *widget.Button
}

// New creates the window and the first game. Call Run to show it.
func New(a fyne.App, cfg *config.GameConfig, log *logrus.Logger) *AppUI {
	ui := &AppUI{
		app:    a,
		window: a.NewWindow("Tile Matching Game"),
		cfg:    *cfg,
		log:    log,
		rand:   cfg.NewRand(),
	}
	ui.window.SetContent(ui.buildLayout())
	ui.window.Resize(fyne.NewSize(520, 360))
	ui.newGame()
	return ui
}

// Run shows the window and blocks until the application quits.
func (ui *AppUI) Run() {
	ui.window.CenterOnScreen()
	ui.window.SetCloseIntercept(func() {
		dialog.ShowConfirm("Exit", "Are you sure you want to quit?", func(confirmed bool) {
			if confirmed {
				ui.app.Quit()
			}
		}, ui.window)
	})
	ui.window.ShowAndRun()
}

func (ui *AppUI) buildLayout() fyne.CanvasObject {
	ui.infoLabel = widget.NewLabel("")
	ui.infoLabel.Alignment = fyne.TextAlignCenter
	ui.scoreLabel = widget.NewLabel("")
	ui.deckLabel = widget.NewLabel("")
	ui.deckLabel.Alignment = fyne.TextAlignTrailing

	ui.playerHand = container.NewHBox()
	ui.aiHand = container.NewHBox()

	ui.drawButton = widget.NewButton("Draw Tile", ui.onDraw)
	ui.difficultyButton = widget.NewButton("Choose Difficulty", ui.chooseDifficulty)

	topBar := container.NewBorder(nil, nil, ui.scoreLabel, ui.deckLabel)
	controls := container.NewHBox(layout.NewSpacer(), ui.drawButton, ui.difficultyButton, layout.NewSpacer())

	return container.NewVBox(
		topBar,
		ui.infoLabel,
		widget.NewLabel("Your tiles"),
		container.NewCenter(ui.playerHand),
		widget.NewLabel("AI tiles"),
		container.NewCenter(ui.aiHand),
		controls,
	)
}

// newGame throws away the current session, if any, and deals a fresh one.
func (ui *AppUI) newGame() {
	ui.generation++
	ui.busy = false
	ui.flash = nil
	ui.result = ""
	ui.gameOverShown = false

	builder := game.NewBuilder(&ui.cfg, ui.log, ui.rand)
	builder.EventManager().Subscribe(events.ListenerFunc(ui.handleEvent))
	g, err := builder.Build()
	if err != nil {
		ui.log.Errorf("Failed to build game: %v", err)
		dialog.ShowError(err, ui.window)
		return
	}
	ui.game = g
	ui.updateUI()
}

// handleEvent mirrors the game's events into the info label. Core calls only
// happen on the UI goroutine, so widgets can be touched directly.
func (ui *AppUI) handleEvent(e events.Event) {
	msg, ok := messageFor(e)
	if !ok {
		return
	}
	ui.infoLabel.SetText(msg)
	if _, over := e.(events.GameOverEvent); over {
		ui.result = msg
	}
}

// after runs f on the UI goroutine once d has elapsed, unless a new game was
// started in the meantime.
func (ui *AppUI) after(d time.Duration, f func()) {
	gen := ui.generation
	time.AfterFunc(d, func() {
		fyne.Do(func() {
			if gen != ui.generation {
				return
			}
			f()
		})
	})
}

func (ui *AppUI) onTileTapped(idx int) {
	if ui.game == nil || ui.busy || ui.game.IsOver() {
		return
	}
	sel, err := ui.game.Select(idx)
	if err != nil {
		ui.log.Debugf("Tile %d rejected: %v", idx, err)
		return
	}
	if sel.Ready() {
		ui.busy = true
		ui.after(selectionDelay, ui.revealSelection)
	}
	ui.updateUI()
}

// revealSelection flashes the two picked tiles before the comparison is applied.
func (ui *AppUI) revealSelection() {
	sel := ui.game.Selection()
	if !sel.Ready() {
		ui.busy = false
		ui.updateUI()
		return
	}
	hand := ui.game.PlayerHand()
	imp := widget.DangerImportance
	if hand[sel[0]] == hand[sel[1]] {
		imp = widget.SuccessImportance
	}
	ui.flash = map[int]widget.Importance{sel[0]: imp, sel[1]: imp}
	ui.updateUI()
	ui.after(flashDelay, ui.resolveSelection)
}

func (ui *AppUI) resolveSelection() {
	ui.flash = nil
	res, err := ui.game.ResolveSelection()
	switch {
	case err != nil:
		ui.log.Warnf("Resolving the selection failed: %v", err)
		ui.busy = false
	case res.Status == game.Matched && !ui.game.IsOver():
		ui.scheduleAITurn()
	default:
		// A mismatch leaves the turn with the player.
		ui.busy = false
	}
	ui.updateUI()
}

func (ui *AppUI) onDraw() {
	if ui.game == nil || ui.busy || ui.game.IsOver() {
		return
	}
	res, err := ui.game.DrawForPlayer()
	if err != nil {
		ui.log.Warnf("Draw failed: %v", err)
		return
	}
	if res.Status != game.DrawForbidden && !ui.game.IsOver() {
		ui.scheduleAITurn()
	}
	ui.updateUI()
}

func (ui *AppUI) scheduleAITurn() {
	ui.busy = true
	ui.infoLabel.SetText("AI's Turn...")
	ui.after(ui.cfg.AIDelay, ui.runAITurn)
}

func (ui *AppUI) runAITurn() {
	if _, err := ui.game.RunAITurn(); err != nil {
		ui.log.Warnf("AI turn failed: %v", err)
	}
	ui.busy = false
	ui.updateUI()
}

func (ui *AppUI) chooseDifficulty() {
	dialog.ShowConfirm("Difficulty", "Play on Hard mode?", func(hard bool) {
		level := config.DifficultyEasy
		if hard {
			level = config.DifficultyHard
		}
		ui.cfg.Difficulty = level
		if ui.game == nil {
			return
		}
		if err := ui.game.SetDifficulty(level); err != nil {
			ui.infoLabel.SetText(fmt.Sprintf("Difficulty %s applies to the next game.", level))
		}
		ui.updateUI()
	}, ui.window)
}

func (ui *AppUI) showGameOver() {
	ui.gameOverShown = true
	body := gameOverText(ui.result, ui.game.SuddenDeathRounds(), ui.game.AIHand())
	d := dialog.NewConfirm("Game Over", body, func(again bool) {
		if again {
			ui.newGame()
		}
	}, ui.window)
	d.SetConfirmText("New Game")
	d.SetDismissText("Close")
	d.Show()
}

func (ui *AppUI) updateUI() {
	g := ui.game
	locked := ui.busy || g.IsOver()

	// Player tiles.
	sel := g.Selection()
	buttons := make([]fyne.CanvasObject, 0, len(g.PlayerHand()))
	for i, t := range g.PlayerHand() {
		btn := widget.NewButton(strconv.Itoa(int(t)), func() { ui.onTileTapped(i) })
		btn.Importance = tileImportance(i, sel, ui.flash)
		if locked {
			btn.Disable()
		}
		buttons = append(buttons, btn)
	}
	ui.playerHand.Objects = buttons
	ui.playerHand.Refresh()

	// AI tiles stay face down.
	hidden := make([]fyne.CanvasObject, 0, g.AIHandSize())
	for i := 0; i < g.AIHandSize(); i++ {
		hidden = append(hidden, widget.NewLabel("[ ? ]"))
	}
	ui.aiHand.Objects = hidden
	ui.aiHand.Refresh()

	ui.scoreLabel.SetText(fmt.Sprintf("You %d - %d AI (%s)", g.PlayerMatches(), g.AIMatches(), g.Difficulty()))
	ui.deckLabel.SetText(fmt.Sprintf("Deck: %d", g.DeckLen()))
	if locked {
		ui.drawButton.Disable()
	} else {
		ui.drawButton.Enable()
	}

	if g.IsOver() && !ui.gameOverShown {
		ui.showGameOver()
	}
}
