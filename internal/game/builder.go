package game

import (
	"errors"
	"math/rand"

	"example.com/tilematch/internal/ai"
	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/events"
	"example.com/tilematch/internal/tiles"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Builder provides a step-by-step API for constructing a Game object.
type Builder struct {
	cfg          config.GameConfig
	eventManager *events.Manager
	log          *logrus.Logger
	rand         *rand.Rand
	chooser      ai.Chooser
	deck         []tiles.Tile
	playerHand   []tiles.Tile
	aiHand       []tiles.Tile
	scriptedDeal bool
}

// NewBuilder creates a new Builder with its required dependencies.
func NewBuilder(cfg *config.GameConfig, logger *logrus.Logger, rand *rand.Rand) *Builder {
	return &Builder{
		cfg:          *cfg,
		log:          logger,
		rand:         rand,
		eventManager: events.NewManager(),
	}
}

// EventManager is a public getter for the unexported field, so renderers can
// subscribe before the deal is published.
func (b *Builder) EventManager() *events.Manager {
	return b.eventManager
}

func (b *Builder) WithDifficulty(d config.Difficulty) *Builder {
	b.cfg.Difficulty = d
	return b
}

func (b *Builder) WithTieBreak(t config.TieBreak) *Builder {
	b.cfg.TieBreak = t
	return b
}

func (b *Builder) WithAIEmptyDeck(r config.AIEmptyDeckRule) *Builder {
	b.cfg.AIEmptyDeck = r
	return b
}

// WithChooser replaces the random pair chooser used by the easy policy.
func (b *Builder) WithChooser(c ai.Chooser) *Builder {
	b.chooser = c
	return b
}

// WithDeck uses the given tiles, in order and unshuffled, as the deck.
func (b *Builder) WithDeck(deck []tiles.Tile) *Builder {
	b.deck = append([]tiles.Tile{}, deck...)
	return b
}

// WithHands skips the deal and starts both seats with the given tiles.
func (b *Builder) WithHands(player, ai []tiles.Tile) *Builder {
	b.playerHand = append([]tiles.Tile{}, player...)
	b.aiHand = append([]tiles.Tile{}, ai...)
	b.scriptedDeal = true
	return b
}

// Build constructs the Game object after all options have been configured.
func (b *Builder) Build() (*Game, error) {
	if b.log == nil || b.rand == nil {
		return nil, errors.New("builder needs a logger and a random source")
	}
	if b.cfg.HandSize < 1 {
		return nil, errors.New("invalid hand size")
	}

	id := uuid.New().String()
	log := b.log.WithField("game", id[:8])

	// 1. Create the deck
	var deck *tiles.Deck
	if b.deck != nil {
		deck = tiles.NewDeckFrom(b.deck)
	} else {
		deck = tiles.NewDeck(b.rand)
	}

	// 2. Create the AI seat
	chooser := b.chooser
	if chooser == nil {
		chooser = ai.NewRandomChooser(rand.New(rand.NewSource(b.rand.Int63())))
	}
	policy, err := ai.NewPolicy(b.cfg.Difficulty, chooser)
	if err != nil {
		return nil, err
	}

	game := &Game{
		Config:       b.cfg,
		EventManager: b.eventManager,
		id:           id,
		deck:         deck,
		difficulty:   b.cfg.Difficulty,
		brain:        ai.NewBrain(log, "AI", policy),
		chooser:      chooser,
		log:          log,
		rand:         b.rand,
	}

	// 3. Deal the tiles
	if b.scriptedDeal {
		game.playerHand = tiles.Hand(b.playerHand)
		game.aiHand = tiles.Hand(b.aiHand)
	} else {
		game.deal(b.cfg.HandSize)
	}
	log.Debugf("Player hand: %v, AI hand: %v, deck: %v", game.playerHand, game.aiHand, deck.Tiles())

	b.eventManager.Publish(events.GameReadyEvent{
		GameID:     id,
		PlayerHand: game.PlayerHand(),
		AIHandSize: len(game.aiHand),
		DeckSize:   deck.Len(),
		Difficulty: b.cfg.Difficulty.String(),
	})

	return game, nil
}

// deal gives each seat up to n tiles, player first. A short deck truncates silently.
func (g *Game) deal(n int) {
	g.playerHand = make(tiles.Hand, 0, n)
	g.aiHand = make(tiles.Hand, 0, n)
	for i := 0; i < n; i++ {
		if t, ok := g.deck.Draw(); ok {
			g.playerHand.Add(t)
		}
	}
	for i := 0; i < n; i++ {
		if t, ok := g.deck.Draw(); ok {
			g.aiHand.Add(t)
		}
	}
	g.aiHand.Sort()
}
