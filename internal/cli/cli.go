package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/game"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

const selectPrompt = "Select two tiles to match (indexes separated by space)"

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{
		log:  log,
		line: line,
	}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(args []string, cfg *config.GameConfig, rand *rand.Rand) error {
	defer c.line.Close()
	if len(args) < 1 {
		return c.runPlayMode(cfg, rand)
	}

	switch args[0] {
	case "play":
		return c.runPlayMode(cfg, rand)
	case "simulate":
		if len(args) != 2 {
			c.printUsage()
			return errors.New("invalid arguments for 'simulate' command")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			c.printUsage()
			return fmt.Errorf("invalid number of games '%s'", args[1])
		}
		return c.runSimulationMode(cfg, n, rand)
	case "help", "-h", "--help":
		c.printUsage()
		return nil
	default:
		c.printUsage()
		return fmt.Errorf("unknown command '%s'", args[0])
	}
}

func (c *CLI) runSimulationMode(cfg *config.GameConfig, n int, rand *rand.Rand) error {
	C.Header.Println("--- Running Fast Simulation ---")
	report, err := game.Simulate(cfg, c.log, rand, n)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	RenderSimulationReport(os.Stdout, report)
	return nil
}

func (c *CLI) runPlayMode(cfg *config.GameConfig, rand *rand.Rand) error {
	// Create a builder and subscribe the renderer before the deal is published.
	builder := game.NewBuilder(cfg, c.log, rand)
	builder.EventManager().Subscribe(NewConsoleRenderer(os.Stdout))

	g, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build game: %w", err)
	}
	c.printPlayHelp()

	for turn := 1; !g.IsOver(); turn++ {
		C.Header.Printf("\n--- Turn %d ---\n", turn)
		RenderScoreboard(os.Stdout, g)
		RenderHand(os.Stdout, "Your Hand", g.PlayerHand())

		quit, err := c.playerTurn(g)
		if err != nil {
			return err
		}
		if quit {
			C.Info.Println("Leaving the game. Goodbye!")
			return nil
		}
		if g.IsOver() {
			break
		}

		if _, err := g.RunAITurn(); err != nil {
			return fmt.Errorf("ai turn failed: %w", err)
		}
	}
	RenderScoreboard(os.Stdout, g)
	return nil
}

// playerTurn plays the human seat once. It reports quit when the player asked to
// leave or the prompt was aborted.
func (c *CLI) playerTurn(g *game.Game) (bool, error) {
	if !g.PlayerCanMatch() {
		if _, err := g.DrawForPlayer(); err != nil {
			return false, fmt.Errorf("draw failed: %w", err)
		}
		return false, nil
	}

	for {
		input, err := c.promptForString(selectPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return true, nil
			}
			return false, fmt.Errorf("error reading line: %w", err)
		}

		switch cmd := strings.ToLower(input); {
		case isQuit(cmd):
			return true, nil
		case cmd == "help" || cmd == "h":
			c.printPlayHelp()
			continue
		case cmd == "easy" || cmd == "hard":
			level, _ := config.ParseDifficulty(cmd)
			if err := g.SetDifficulty(level); err != nil {
				C.Warn.Printf("Could not change difficulty: %v\n", err)
			}
			continue
		}

		i, j, err := parseSelection(input, len(g.PlayerHand()))
		if err != nil {
			c.log.Debugf("Rejected input %q: %v", input, err)
			C.Warn.Printf("Invalid input (%v). You lose this turn.\n", err)
			return false, nil
		}
		if _, err := g.TryMatch(i, j); err != nil {
			C.Warn.Printf("Invalid selection (%v). You lose this turn.\n", err)
		}
		return false, nil
	}
}
