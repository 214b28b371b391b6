package cli

import (
	"io"
	"os"

	"example.com/tilematch/internal/events"
	"example.com/tilematch/internal/game"
)

// ConsoleRenderer implements the events.Listener interface to print game progress to the console.
type ConsoleRenderer struct {
	out io.Writer
}

// NewConsoleRenderer writes to w, or to stdout when w is nil.
func NewConsoleRenderer(w io.Writer) *ConsoleRenderer {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleRenderer{out: w}
}

// HandleEvent is the central dispatcher for rendering events.
func (r *ConsoleRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.GameReadyEvent:
		C.Header.Fprintln(r.out, "--- New Game ---")
		C.Info.Fprintf(r.out, "Dealt %d tiles each, %d left in the deck. AI plays %s.\n",
			len(event.PlayerHand), event.DeckSize, event.Difficulty)
	case events.DifficultyChangedEvent:
		C.Info.Fprintf(r.out, "AI difficulty is now %s.\n", event.Difficulty)
	case events.PlayerDrewEvent:
		C.Info.Fprintf(r.out, "You drew a %s.\n", ColorizeTile(event.Tile))
	case events.PlayerDeckEmptyEvent:
		C.Warn.Fprintln(r.out, "The deck is empty, nothing to draw.")
	case events.DrawForbiddenEvent:
		C.Warn.Fprintln(r.out, "You still hold a pair, match it first.")
	case events.PlayerMatchedEvent:
		C.Yes.Fprintf(r.out, "Match! Two %ss removed (%d so far).\n", ColorizeTile(event.Tile), event.Matches)
	case events.PlayerMismatchedEvent:
		C.No.Fprintf(r.out, "No match: %s and %s. Your turn is over.\n",
			ColorizeTile(event.Tiles[0]), ColorizeTile(event.Tiles[1]))
	case events.AIMatchedEvent:
		C.Info.Fprintf(r.out, "AI matched a pair of %ss (%d so far).\n", ColorizeTile(event.Tile), event.Matches)
	case events.AIDrewEvent:
		C.Info.Fprintln(r.out, "AI drew a tile.")
	case events.AIDeckEmptyEvent:
		if event.Forfeit {
			C.Warn.Fprintln(r.out, "AI cannot draw from the empty deck.")
		} else {
			C.Info.Fprintln(r.out, "AI passes, the deck is empty.")
		}
	case events.SuddenDeathStartedEvent:
		C.Header.Fprintln(r.out, "\n--- SUDDEN DEATH ---")
	case events.SuddenDeathRoundEvent:
		C.Maybe.Fprintf(r.out, "Round %d: you %s vs AI %s\n",
			event.Round, ColorizeTile(event.PlayerTile), ColorizeTile(event.AITile))
	case events.GameOverEvent:
		r.renderGameResult(event)
	}
}

func (r *ConsoleRenderer) renderGameResult(event events.GameOverEvent) {
	C.Header.Fprintln(r.out, "\n--- GAME OVER ---")
	C.Info.Fprintf(r.out, "Matches: you %d, AI %d (%s).\n", event.PlayerMatches, event.AIMatches, event.Reason)
	if len(event.AIHand) > 0 {
		C.Info.Fprintf(r.out, "The AI was holding: %s\n", colorizeTiles(event.AIHand))
	}
	switch event.Outcome {
	case game.PlayerWin.String():
		C.Yes.Fprintln(r.out, "You win!")
	case game.AIWin.String():
		C.No.Fprintln(r.out, "The AI wins.")
	default:
		C.Maybe.Fprintln(r.out, "It's a draw.")
	}
}
