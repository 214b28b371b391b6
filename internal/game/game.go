package game

import (
	"errors"
	"math/rand"

	"example.com/tilematch/internal/ai"
	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/events"
	"example.com/tilematch/internal/tiles"

	"github.com/sirupsen/logrus"
)

var (
	ErrGameOver            = errors.New("game is over")
	ErrInvalidIndex        = errors.New("invalid hand index")
	ErrDuplicateIndex      = errors.New("the same tile was selected twice")
	ErrSelectionIncomplete = errors.New("two tiles must be selected")
	ErrSelectionFull       = errors.New("two tiles are already selected")
)

// Outcome is the state of a session as seen by the termination check.
type Outcome int

const (
	InProgress Outcome = iota
	PlayerWin
	AIWin
	Draw
)

func (o Outcome) String() string {
	return []string{"in progress", "player wins", "ai wins", "draw"}[o]
}

// Terminal reports whether no further moves are allowed.
func (o Outcome) Terminal() bool { return o != InProgress }

// Reason records why a game ended.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonPlayerEmptyHand Reason = "player hand empty"
	ReasonAIEmptyHand     Reason = "ai hand empty"
	ReasonMatchCount      Reason = "match count"
	ReasonSuddenDeath     Reason = "sudden death"
	ReasonAICouldNotDraw  Reason = "ai could not draw"
)

// SuddenDeathRound is one draw-off between the two hands.
type SuddenDeathRound struct {
	PlayerTile tiles.Tile
	AITile     tiles.Tile
}

// Game represents the state and logic of a single tile-matching session.
type Game struct {
	Config       config.GameConfig
	EventManager *events.Manager

	id            string
	deck          *tiles.Deck
	playerHand    tiles.Hand
	aiHand        tiles.Hand
	selection     []int
	playerMatches int
	aiMatches     int
	discarded     int // Tiles removed by sudden death
	difficulty    config.Difficulty
	brain         *ai.Brain
	chooser       ai.Chooser
	outcome       Outcome
	reason        Reason
	suddenDeath   []SuddenDeathRound
	aiTurns       int
	log           logrus.FieldLogger
	rand          *rand.Rand
}

// --- Read accessors for front-ends ---

func (g *Game) ID() string                    { return g.id }
func (g *Game) PlayerHand() tiles.Hand        { return g.playerHand.Clone() }
func (g *Game) AIHand() tiles.Hand            { return g.aiHand.Clone() }
func (g *Game) AIHandSize() int               { return len(g.aiHand) }
func (g *Game) DeckLen() int                  { return g.deck.Len() }
func (g *Game) PlayerMatches() int            { return g.playerMatches }
func (g *Game) AIMatches() int                { return g.aiMatches }
func (g *Game) Discarded() int                { return g.discarded }
func (g *Game) Difficulty() config.Difficulty { return g.difficulty }
func (g *Game) Outcome() Outcome              { return g.outcome }
func (g *Game) Reason() Reason                { return g.reason }
func (g *Game) AITurns() int                  { return g.aiTurns }
func (g *Game) IsOver() bool                  { return g.outcome.Terminal() }
func (g *Game) PlayerCanMatch() bool          { return tiles.CanMatch(g.playerHand) }

func (g *Game) SuddenDeathRounds() []SuddenDeathRound {
	out := make([]SuddenDeathRound, len(g.suddenDeath))
	copy(out, g.suddenDeath)
	return out
}

// Total counts every tile still accounted for. It equals the size of the
// starting deck for the whole life of a game.
func (g *Game) Total() int {
	return g.deck.Len() + len(g.playerHand) + len(g.aiHand) + 2*(g.playerMatches+g.aiMatches) + g.discarded
}

// SetDifficulty swaps the AI policy used from the next AI turn on.
func (g *Game) SetDifficulty(level config.Difficulty) error {
	if g.IsOver() {
		return ErrGameOver
	}
	policy, err := ai.NewPolicy(level, g.chooser)
	if err != nil {
		return err
	}
	g.difficulty = level
	g.brain.SetPolicy(policy)
	g.log.Debugf("Difficulty set to %s.", level)
	g.EventManager.Publish(events.DifficultyChangedEvent{GameID: g.id, Difficulty: level.String()})
	return nil
}

// RunSimulation is a pure, "headless" game loop. The player seat is driven by
// the given autopilot; it always matches when it can and draws otherwise.
// It returns the outcome and the number of rounds played, stopping early at maxRounds.
func (g *Game) RunSimulation(autopilot *ai.Brain, maxRounds int) (Outcome, int) {
	rounds := 0
	for !g.IsOver() && rounds < maxRounds {
		rounds++
		move := autopilot.Decide(g.playerHand)
		switch move.Kind {
		case ai.MoveMatch:
			if _, err := g.TryMatch(move.Pair.I, move.Pair.J); err != nil {
				g.log.Warnf("Autopilot match rejected: %v", err)
			}
		case ai.MoveDraw:
			if _, err := g.DrawForPlayer(); err != nil {
				g.log.Warnf("Autopilot draw rejected: %v", err)
			}
		}
		if g.IsOver() {
			break
		}
		if _, err := g.RunAITurn(); err != nil {
			g.log.Warnf("AI turn rejected: %v", err)
		}
	}
	return g.outcome, rounds
}
