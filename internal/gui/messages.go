package gui

import (
	"fmt"
	"strings"

	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/events"
	"example.com/tilematch/internal/game"
	"example.com/tilematch/internal/tiles"

	"fyne.io/fyne/v2/widget"
)

// messageFor turns a game event into the text shown in the info label.
func messageFor(e events.Event) (string, bool) {
	switch event := e.(type) {
	case events.GameReadyEvent:
		return "Welcome to Tile Matching! Pick two equal tiles.", true
	case events.DifficultyChangedEvent:
		return fmt.Sprintf("Difficulty set to %s.", strings.ToUpper(event.Difficulty)), true
	case events.PlayerDrewEvent:
		return fmt.Sprintf("Drew a %d!", event.Tile), true
	case events.PlayerDeckEmptyEvent:
		return "Deck empty, can't draw!", true
	case events.DrawForbiddenEvent:
		return "You can still match, no draw allowed!", true
	case events.PlayerMatchedEvent:
		return "You made a match!", true
	case events.PlayerMismatchedEvent:
		return "Not a match!", true
	case events.AIMatchedEvent:
		if event.Policy == config.DifficultyHard.String() {
			return "AI matched smartly!", true
		}
		return "AI matched randomly!", true
	case events.AIDrewEvent:
		return "AI drew a tile.", true
	case events.AIDeckEmptyEvent:
		return "Deck empty for AI!", true
	case events.SuddenDeathStartedEvent:
		return "Sudden Death Mode Activated!", true
	case events.SuddenDeathRoundEvent:
		return fmt.Sprintf("Player draws %d vs AI draws %d!", event.PlayerTile, event.AITile), true
	case events.GameOverEvent:
		return resultText(event), true
	}
	return "", false
}

func resultText(event events.GameOverEvent) string {
	var headline string
	switch event.Outcome {
	case game.PlayerWin.String():
		headline = "YOU WIN"
	case game.AIWin.String():
		headline = "AI WINS"
	default:
		headline = "It's a draw"
	}
	if event.Reason == string(game.ReasonSuddenDeath) {
		headline += " by Sudden Death"
	}
	return fmt.Sprintf("%s! Matches: You %d - %d AI", headline, event.PlayerMatches, event.AIMatches)
}

// gameOverText is the body of the game-over dialog.
func gameOverText(result string, rounds []game.SuddenDeathRound, aiHand tiles.Hand) string {
	var b strings.Builder
	b.WriteString(result)
	for i, r := range rounds {
		fmt.Fprintf(&b, "\nRound %d: you %d vs AI %d", i+1, r.PlayerTile, r.AITile)
	}
	if len(aiHand) > 0 {
		fmt.Fprintf(&b, "\nThe AI was holding %v.", []tiles.Tile(aiHand))
	}
	return b.String()
}

// tileImportance colors a hand button: a pending flash wins over the selection highlight.
func tileImportance(idx int, sel game.Selection, flash map[int]widget.Importance) widget.Importance {
	if imp, ok := flash[idx]; ok {
		return imp
	}
	if sel.Contains(idx) {
		return widget.HighImportance
	}
	return widget.MediumImportance
}
