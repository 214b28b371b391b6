package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"example.com/tilematch/internal/game"
	"example.com/tilematch/internal/tiles"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Yes, No, Maybe, Info, Warn, Header, Prompt, Debug *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
	Debug:  color.New(color.FgMagenta),
}

// TileColors gives every tile value its own color on the console.
var TileColors = map[tiles.Tile]*color.Color{
	1: color.New(color.FgRed),
	2: color.New(color.FgGreen),
	3: color.New(color.FgYellow),
	4: color.New(color.FgBlue),
	5: color.New(color.FgMagenta),
	6: color.New(color.FgCyan),
	7: color.New(color.FgHiRed),
	8: color.New(color.FgHiGreen),
	9: color.New(color.FgHiBlue),
}

// ColorizeTile returns a tile value as a colored string.
func ColorizeTile(t tiles.Tile) string {
	if c, ok := TileColors[t]; ok {
		return c.Sprint(int(t))
	}
	return strconv.Itoa(int(t))
}

func colorizeTiles(ts []tiles.Tile) string {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, ColorizeTile(t))
	}
	return strings.Join(parts, ", ")
}

// Input errors. Any of them makes the player lose the turn.
var (
	errNotANumber  = errors.New("not a number")
	errWrongCount  = errors.New("exactly two indexes are needed")
	errOutOfRange  = errors.New("index out of range")
	errSameIndexes = errors.New("the two indexes must differ")
)

// parseSelection reads two 0-based hand indexes separated by whitespace.
func parseSelection(input string, handSize int) (int, int, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w, got %d", errWrongCount, len(fields))
	}
	var idx [2]int
	for k, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", errNotANumber, f)
		}
		if n < 0 || n >= handSize {
			return 0, 0, fmt.Errorf("%w: %d (0-%d)", errOutOfRange, n, handSize-1)
		}
		idx[k] = n
	}
	if idx[0] == idx[1] {
		return 0, 0, errSameIndexes
	}
	return idx[0], idx[1], nil
}

func isQuit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

// RenderHand writes the player's hand as a one-row table with the indexes as header.
func RenderHand(w io.Writer, title string, hand tiles.Hand) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	header := table.Row{"Index"}
	row := table.Row{"Tile"}
	for i, tile := range hand {
		header = append(header, i)
		row = append(row, ColorizeTile(tile))
	}
	t.AppendHeader(header)
	t.AppendRow(row)
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.Render()
}

// RenderScoreboard writes the public state of a session: matches, hidden AI hand size
// and what is left in the deck.
func RenderScoreboard(w io.Writer, g *game.Game) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"", "Matches", "Hand"})
	t.AppendRows([]table.Row{
		{"You", g.PlayerMatches(), len(g.PlayerHand())},
		{"AI (" + g.Difficulty().String() + ")", g.AIMatches(), strings.Repeat("[ ? ] ", g.AIHandSize())},
	})
	t.AppendFooter(table.Row{"Deck", "", g.DeckLen()})
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// RenderSimulationReport writes the aggregate result of a headless batch.
func RenderSimulationReport(w io.Writer, r game.SimulationReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Simulation of %d games", r.Games))
	t.AppendHeader(table.Row{"Result", "Games", "Share"})
	share := func(n int) string {
		if r.Games == 0 {
			return "-"
		}
		return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(r.Games))
	}
	t.AppendRows([]table.Row{
		{C.Yes.Sprint("Player wins"), r.PlayerWins, share(r.PlayerWins)},
		{C.No.Sprint("AI wins"), r.AIWins, share(r.AIWins)},
		{C.Maybe.Sprint("Draws"), r.Draws, share(r.Draws)},
	})
	if r.Unfinished > 0 {
		t.AppendRow(table.Row{C.Warn.Sprint("Unfinished"), r.Unfinished, share(r.Unfinished)})
	}
	t.AppendSeparator()
	for _, reason := range []game.Reason{
		game.ReasonPlayerEmptyHand,
		game.ReasonAIEmptyHand,
		game.ReasonMatchCount,
		game.ReasonSuddenDeath,
		game.ReasonAICouldNotDraw,
	} {
		if n := r.Reasons[reason]; n > 0 {
			t.AppendRow(table.Row{"  " + string(reason), n, share(n)})
		}
	}
	t.AppendFooter(table.Row{"Avg. rounds", fmt.Sprintf("%.1f", r.AverageRounds()), ""})
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

// --- Prompting and Usage ---

func (c *CLI) printUsage() {
	C.Header.Println("\n--- Tile Match ---")
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/tiles [flags] play")
	fmt.Println("    Play a game against the AI (the default).")
	fmt.Println("  go run ./cmd/tiles [flags] simulate <games>")
	fmt.Println("    Play a batch of headless games and show the statistics.")
	fmt.Println("\nFlags:")
	fmt.Println("  -loglevel debug    Enable detailed game and AI tracing.")
	fmt.Println("  -difficulty hard   Let the AI keep its high tiles.")
	fmt.Println("  -tiebreak sudden_death")
	fmt.Println("                     Settle stalled games with a draw-off.")
	fmt.Println("  -strict            The AI loses when it cannot draw.")
	fmt.Println("  -seed <n>          Replay a specific shuffle.")
}

func (c *CLI) printPlayHelp() {
	C.Header.Println("\n--- How to play ---")
	fmt.Println("Match two equal tiles to remove them. Empty your hand first to win.")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Input", "Description"})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"<i> <j>", "Match the tiles at indexes i and j."},
		{"hard / easy", "Change the AI difficulty."},
		{"help", "Show this help message."},
		{"quit", "Leave the game."},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
	fmt.Println("Without a pair a tile is drawn for you automatically.")
}

// promptForString reads one non-empty line. liner.ErrPromptAborted and io.EOF are
// returned as is so the caller can leave quietly.
func (c *CLI) promptForString(prompt string) (string, error) {
	for {
		C.Prompt.Println(prompt)
		input, err := c.line.Prompt("> ")
		if err != nil {
			return "", err
		}
		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			c.line.AppendHistory(trimmed)
			return trimmed, nil
		}
	}
}
