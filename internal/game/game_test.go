package game

import (
	"io"
	"math/rand"
	"testing"

	"example.com/tilematch/internal/ai"
	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/events"
	"example.com/tilematch/internal/tiles"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	// For debugging a test, uncomment the line below:
	// log.SetLevel(logrus.DebugLevel)
	return log
}

// scriptedGame builds a game with a fixed deck and fixed hands, so no randomness
// is involved in the setup.
func scriptedGame(t *testing.T, deck, player, aiHand []tiles.Tile, opts ...func(*Builder)) *Game {
	t.Helper()
	b := NewBuilder(config.Default(), quietLogger(), rand.New(rand.NewSource(1))).
		WithDeck(deck).
		WithHands(player, aiHand).
		WithChooser(ai.FirstChooser{})
	for _, opt := range opts {
		opt(b)
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestGameDeal(t *testing.T) {
	// GIVEN a standard configuration and a seeded random source
	seededRand := rand.New(rand.NewSource(1))

	// WHEN we build a new game (which deals automatically)
	g, err := NewBuilder(config.Default(), quietLogger(), seededRand).Build()
	require.NoError(t, err)

	// THEN the resulting game state must be valid
	t.Run("each seat holds five tiles", func(t *testing.T) {
		assert.Len(t, g.PlayerHand(), 5)
		assert.Equal(t, 5, g.AIHandSize())
		assert.Equal(t, tiles.DeckSize-10, g.DeckLen())
	})

	t.Run("all tiles are accounted for", func(t *testing.T) {
		all := append(g.PlayerHand(), g.AIHand()...)
		all = append(all, g.deck.Tiles()...)
		counts := tiles.Counts(all)
		for v := tiles.MinValue; v <= tiles.MaxValue; v++ {
			assert.Equal(t, tiles.Copies, counts[tiles.Tile(v)], "value %d", v)
		}
		assert.Equal(t, tiles.DeckSize, g.Total())
	})

	t.Run("the game starts in progress with a session id", func(t *testing.T) {
		assert.Equal(t, InProgress, g.Outcome())
		assert.NotEmpty(t, g.ID())
		assert.Zero(t, g.PlayerMatches())
		assert.Zero(t, g.AIMatches())
	})
}

func TestDealTruncatesShortDeck(t *testing.T) {
	g, err := NewBuilder(config.Default(), quietLogger(), rand.New(rand.NewSource(1))).
		WithDeck([]tiles.Tile{1, 2, 3, 4, 5, 6, 7}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, tiles.Hand{1, 2, 3, 4, 5}, g.PlayerHand())
	assert.Equal(t, tiles.Hand{6, 7}, g.AIHand())
	assert.Zero(t, g.DeckLen())
}

func TestBuildPublishesGameReady(t *testing.T) {
	b := NewBuilder(config.Default(), quietLogger(), rand.New(rand.NewSource(3)))
	var ready []events.GameReadyEvent
	b.EventManager().Subscribe(events.ListenerFunc(func(e events.Event) {
		if ev, ok := e.(events.GameReadyEvent); ok {
			ready = append(ready, ev)
		}
	}))

	g, err := b.Build()
	require.NoError(t, err)

	require.Len(t, ready, 1)
	assert.Equal(t, g.ID(), ready[0].GameID)
	assert.Equal(t, []tiles.Tile(g.PlayerHand()), ready[0].PlayerHand)
	assert.Equal(t, 8, ready[0].DeckSize)
	assert.Equal(t, "easy", ready[0].Difficulty)
}

func TestPlayerMatchScenario(t *testing.T) {
	// GIVEN a player hand with a pair at the front
	g := scriptedGame(t, []tiles.Tile{1, 2}, []tiles.Tile{3, 3, 5, 7, 9}, []tiles.Tile{4, 6})

	// WHEN the player selects both 3s
	sel, err := g.Select(0)
	require.NoError(t, err)
	assert.False(t, sel.Ready())
	sel, err = g.Select(1)
	require.NoError(t, err)
	assert.True(t, sel.Ready())

	res, err := g.ResolveSelection()
	require.NoError(t, err)

	// THEN the pair is removed and the counter goes up
	assert.Equal(t, Matched, res.Status)
	assert.Equal(t, [2]tiles.Tile{3, 3}, res.Tiles)
	assert.Equal(t, tiles.Hand{5, 7, 9}, g.PlayerHand())
	assert.Equal(t, 1, g.PlayerMatches())
	assert.Empty(t, g.Selection())
	assert.False(t, g.IsOver())
}

func TestPlayerMismatch(t *testing.T) {
	g := scriptedGame(t, []tiles.Tile{1}, []tiles.Tile{2, 8, 2}, []tiles.Tile{4, 6})

	_, _ = g.Select(0)
	_, _ = g.Select(1)
	res, err := g.ResolveSelection()

	require.NoError(t, err)
	assert.Equal(t, Mismatched, res.Status)
	assert.Equal(t, tiles.Hand{2, 8, 2}, g.PlayerHand())
	assert.Zero(t, g.PlayerMatches())
	assert.Empty(t, g.Selection())
}

func TestSelection(t *testing.T) {
	g := scriptedGame(t, []tiles.Tile{1}, []tiles.Tile{2, 8, 2}, []tiles.Tile{4, 6})

	t.Run("selecting twice deselects", func(t *testing.T) {
		sel, err := g.Select(2)
		require.NoError(t, err)
		assert.Equal(t, Selection{2}, sel)
		sel, err = g.Select(2)
		require.NoError(t, err)
		assert.Empty(t, sel)
	})

	t.Run("a third tile is refused", func(t *testing.T) {
		_, _ = g.Select(0)
		_, _ = g.Select(1)
		sel, err := g.Select(2)
		assert.ErrorIs(t, err, ErrSelectionFull)
		assert.Equal(t, Selection{0, 1}, sel)
		assert.Equal(t, Selection{1}, g.Deselect(0))
		g.ClearSelection()
	})

	t.Run("invalid index", func(t *testing.T) {
		_, err := g.Select(3)
		assert.ErrorIs(t, err, ErrInvalidIndex)
		_, err = g.Select(-1)
		assert.ErrorIs(t, err, ErrInvalidIndex)
	})

	t.Run("resolving one tile is refused", func(t *testing.T) {
		_, _ = g.Select(0)
		_, err := g.ResolveSelection()
		assert.ErrorIs(t, err, ErrSelectionIncomplete)
	})
}

func TestTryMatchValidation(t *testing.T) {
	g := scriptedGame(t, []tiles.Tile{1}, []tiles.Tile{2, 8, 2}, []tiles.Tile{4, 6})

	_, err := g.TryMatch(1, 1)
	assert.ErrorIs(t, err, ErrDuplicateIndex)
	_, err = g.TryMatch(0, 7)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, tiles.Hand{2, 8, 2}, g.PlayerHand())

	res, err := g.TryMatch(2, 0)
	require.NoError(t, err)
	assert.Equal(t, Matched, res.Status)
	assert.Equal(t, tiles.Hand{8}, g.PlayerHand())
}

func TestDrawForPlayer(t *testing.T) {
	t.Run("draws when no pair is held", func(t *testing.T) {
		// GIVEN a player hand with no duplicates
		g := scriptedGame(t, []tiles.Tile{6, 7}, []tiles.Tile{1, 2, 3, 4, 5}, []tiles.Tile{8, 9})

		// WHEN the player draws
		res, err := g.DrawForPlayer()

		// THEN one tile moves from the deck to the end of the hand
		require.NoError(t, err)
		assert.Equal(t, Drew, res.Status)
		assert.Equal(t, tiles.Tile(6), res.Tile)
		assert.Equal(t, tiles.Hand{1, 2, 3, 4, 5, 6}, g.PlayerHand())
		assert.Equal(t, 1, g.DeckLen())
	})

	t.Run("forbidden while a pair is held", func(t *testing.T) {
		g := scriptedGame(t, []tiles.Tile{6, 7}, []tiles.Tile{3, 5, 3}, []tiles.Tile{8, 9})
		var forbidden int
		g.EventManager.Subscribe(events.ListenerFunc(func(e events.Event) {
			if _, ok := e.(events.DrawForbiddenEvent); ok {
				forbidden++
			}
		}))

		res, err := g.DrawForPlayer()

		require.NoError(t, err)
		assert.Equal(t, DrawForbidden, res.Status)
		assert.Equal(t, tiles.Hand{3, 5, 3}, g.PlayerHand())
		assert.Equal(t, 2, g.DeckLen())
		assert.Equal(t, 1, forbidden)
	})

	t.Run("signals an empty deck", func(t *testing.T) {
		// The AI can still match, so the game is not over yet.
		g := scriptedGame(t, []tiles.Tile{}, []tiles.Tile{1, 2}, []tiles.Tile{4, 4, 6})

		res, err := g.DrawForPlayer()

		require.NoError(t, err)
		assert.Equal(t, DeckEmpty, res.Status)
		assert.Equal(t, tiles.Hand{1, 2}, g.PlayerHand())
		assert.Zero(t, g.DeckLen())
		assert.False(t, g.IsOver())
	})
}

func TestAITurn(t *testing.T) {
	// GIVEN an AI holding a pair and a one-tile deck
	g := scriptedGame(t, []tiles.Tile{1}, []tiles.Tile{2, 3}, []tiles.Tile{6, 4, 4})

	// WHEN the AI plays twice
	first, err := g.RunAITurn()
	require.NoError(t, err)
	second, err := g.RunAITurn()
	require.NoError(t, err)

	// THEN it matches first and draws second, keeping its hand sorted
	assert.Equal(t, AIResult{Status: AIMatched, Tile: 4}, first)
	assert.Equal(t, AIResult{Status: AIDrew}, second)
	assert.Equal(t, tiles.Hand{1, 6}, g.AIHand())
	assert.Equal(t, 1, g.AIMatches())
	assert.Equal(t, 2, g.AITurns())
	assert.Zero(t, g.DeckLen())
}

func TestAIPolicyByDifficulty(t *testing.T) {
	aiHand := []tiles.Tile{8, 2, 8, 2}

	t.Run("easy takes the first pair found", func(t *testing.T) {
		g := scriptedGame(t, []tiles.Tile{1}, []tiles.Tile{5, 6}, aiHand)
		res, err := g.RunAITurn()
		require.NoError(t, err)
		assert.Equal(t, tiles.Tile(8), res.Tile)
	})

	t.Run("hard takes the lowest pair", func(t *testing.T) {
		g := scriptedGame(t, []tiles.Tile{1}, []tiles.Tile{5, 6}, aiHand)
		require.NoError(t, g.SetDifficulty(config.DifficultyHard))
		assert.Equal(t, config.DifficultyHard, g.Difficulty())

		res, err := g.RunAITurn()
		require.NoError(t, err)
		assert.Equal(t, tiles.Tile(2), res.Tile)
		assert.Equal(t, tiles.Hand{8, 8}, g.AIHand())
	})
}

func TestAIEmptyDeckRule(t *testing.T) {
	player := []tiles.Tile{3, 3}
	aiHand := []tiles.Tile{1, 2}

	t.Run("forfeit ends the game in the AI's favour", func(t *testing.T) {
		g := scriptedGame(t, []tiles.Tile{}, player, aiHand, func(b *Builder) {
			b.WithAIEmptyDeck(config.AIEmptyDeckForfeit)
		})

		res, err := g.RunAITurn()

		require.NoError(t, err)
		assert.Equal(t, AIDeckEmptyLoss, res.Status)
		assert.Equal(t, AIWin, g.Outcome())
		assert.Equal(t, ReasonAICouldNotDraw, g.Reason())
	})

	t.Run("continue falls through to the end-of-deck check", func(t *testing.T) {
		g := scriptedGame(t, []tiles.Tile{}, player, aiHand)

		res, err := g.RunAITurn()
		require.NoError(t, err)
		assert.Equal(t, AIDeckEmpty, res.Status)
		assert.False(t, g.IsOver(), "player still holds a pair")

		_, err = g.TryMatch(0, 1)
		require.NoError(t, err)
		assert.Equal(t, PlayerWin, g.Outcome())
		assert.Equal(t, ReasonPlayerEmptyHand, g.Reason())
	})
}

func TestCheckTerminal(t *testing.T) {
	tests := []struct {
		name          string
		player        []tiles.Tile
		ai            []tiles.Tile
		deck          []tiles.Tile
		playerMatches int
		aiMatches     int
		wantOutcome   Outcome
		wantReason    Reason
	}{
		{
			name:        "player hand empty wins first",
			player:      []tiles.Tile{},
			ai:          []tiles.Tile{},
			wantOutcome: PlayerWin,
			wantReason:  ReasonPlayerEmptyHand,
		},
		{
			name:        "ai hand empty",
			player:      []tiles.Tile{1},
			ai:          []tiles.Tile{},
			deck:        []tiles.Tile{5},
			wantOutcome: AIWin,
			wantReason:  ReasonAIEmptyHand,
		},
		{
			name:          "player ahead on matches",
			player:        []tiles.Tile{2},
			ai:            []tiles.Tile{7},
			playerMatches: 3,
			aiMatches:     1,
			wantOutcome:   PlayerWin,
			wantReason:    ReasonMatchCount,
		},
		{
			name:          "ai ahead on matches",
			player:        []tiles.Tile{2, 4},
			ai:            []tiles.Tile{7},
			playerMatches: 1,
			aiMatches:     2,
			wantOutcome:   AIWin,
			wantReason:    ReasonMatchCount,
		},
		{
			name:          "equal matches is a draw",
			player:        []tiles.Tile{2},
			ai:            []tiles.Tile{7},
			playerMatches: 2,
			aiMatches:     2,
			wantOutcome:   Draw,
			wantReason:    ReasonMatchCount,
		},
		{
			name:        "deck left keeps the game going",
			player:      []tiles.Tile{2},
			ai:          []tiles.Tile{7},
			deck:        []tiles.Tile{9},
			wantOutcome: InProgress,
		},
		{
			name:        "a matchable hand keeps the game going",
			player:      []tiles.Tile{2, 2},
			ai:          []tiles.Tile{7},
			wantOutcome: InProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := scriptedGame(t, tt.deck, tt.player, tt.ai)
			g.playerMatches = tt.playerMatches
			g.aiMatches = tt.aiMatches

			outcome, over := g.CheckTerminal()

			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantOutcome.Terminal(), over)
			assert.Equal(t, tt.wantReason, g.Reason())
		})
	}
}

func TestTerminalStateIsSticky(t *testing.T) {
	// GIVEN a game that has just ended
	g := scriptedGame(t, []tiles.Tile{}, []tiles.Tile{2}, []tiles.Tile{7})
	var gameOver int
	g.EventManager.Subscribe(events.ListenerFunc(func(e events.Event) {
		if _, ok := e.(events.GameOverEvent); ok {
			gameOver++
		}
	}))
	outcome, over := g.CheckTerminal()
	require.True(t, over)
	require.Equal(t, Draw, outcome)

	// WHEN anything else is attempted
	_, drawErr := g.DrawForPlayer()
	_, aiErr := g.RunAITurn()
	_, selErr := g.Select(0)
	_, matchErr := g.TryMatch(0, 1)
	diffErr := g.SetDifficulty(config.DifficultyHard)
	g.CheckTerminal()

	// THEN every mutation is refused and game over is announced once
	assert.ErrorIs(t, drawErr, ErrGameOver)
	assert.ErrorIs(t, aiErr, ErrGameOver)
	assert.ErrorIs(t, selErr, ErrGameOver)
	assert.ErrorIs(t, matchErr, ErrGameOver)
	assert.ErrorIs(t, diffErr, ErrGameOver)
	assert.Equal(t, 1, gameOver)
	assert.Equal(t, tiles.Hand{2}, g.PlayerHand())
	assert.Equal(t, tiles.Hand{7}, g.AIHand())
}

func TestSuddenDeath(t *testing.T) {
	suddenDeath := func(b *Builder) { b.WithTieBreak(config.TieBreakSuddenDeath) }

	t.Run("higher tile wins", func(t *testing.T) {
		g := scriptedGame(t, []tiles.Tile{}, []tiles.Tile{9}, []tiles.Tile{1}, suddenDeath)
		var rounds []events.SuddenDeathRoundEvent
		g.EventManager.Subscribe(events.ListenerFunc(func(e events.Event) {
			if ev, ok := e.(events.SuddenDeathRoundEvent); ok {
				rounds = append(rounds, ev)
			}
		}))

		outcome, over := g.CheckTerminal()

		assert.True(t, over)
		assert.Equal(t, PlayerWin, outcome)
		assert.Equal(t, ReasonSuddenDeath, g.Reason())
		assert.Equal(t, []SuddenDeathRound{{PlayerTile: 9, AITile: 1}}, g.SuddenDeathRounds())
		require.Len(t, rounds, 1)
		assert.Equal(t, 1, rounds[0].Round)
		assert.Equal(t, 2, g.Discarded())
		assert.Equal(t, 2, g.Total())
	})

	t.Run("ties that empty both hands are a draw", func(t *testing.T) {
		g := scriptedGame(t, []tiles.Tile{}, []tiles.Tile{5}, []tiles.Tile{5}, suddenDeath)

		outcome, _ := g.CheckTerminal()

		assert.Equal(t, Draw, outcome)
		assert.Len(t, g.SuddenDeathRounds(), 1)
	})

	t.Run("emptying a hand first wins", func(t *testing.T) {
		// Round one is either 5 vs 2 (player wins on value) or a 5-5 tie that
		// leaves the player with an empty hand; both end in a player win.
		for seed := int64(1); seed <= 10; seed++ {
			g, err := NewBuilder(config.Default(), quietLogger(), rand.New(rand.NewSource(seed))).
				WithDeck([]tiles.Tile{}).
				WithHands([]tiles.Tile{5}, []tiles.Tile{5, 2}).
				WithTieBreak(config.TieBreakSuddenDeath).
				Build()
			require.NoError(t, err)

			outcome, _ := g.CheckTerminal()
			assert.Equal(t, PlayerWin, outcome, "seed %d", seed)
		}
	})

	t.Run("match count is ignored", func(t *testing.T) {
		g := scriptedGame(t, []tiles.Tile{}, []tiles.Tile{1}, []tiles.Tile{9}, suddenDeath)
		g.playerMatches = 5

		outcome, _ := g.CheckTerminal()
		assert.Equal(t, AIWin, outcome)
	})
}

// TestConservation plays many random games and checks after every published
// event that no tile was created or lost.
func TestConservation(t *testing.T) {
	variants := []func(*Builder){
		func(b *Builder) {},
		func(b *Builder) { b.WithTieBreak(config.TieBreakSuddenDeath) },
		func(b *Builder) { b.WithAIEmptyDeck(config.AIEmptyDeckForfeit) },
		func(b *Builder) { b.WithDifficulty(config.DifficultyHard) },
	}
	for vi, variant := range variants {
		for seed := int64(1); seed <= 25; seed++ {
			b := NewBuilder(config.Default(), quietLogger(), rand.New(rand.NewSource(seed)))
			variant(b)

			var g *Game
			violations := 0
			b.EventManager().Subscribe(events.ListenerFunc(func(e events.Event) {
				if g != nil && g.Total() != tiles.DeckSize {
					violations++
				}
			}))
			var err error
			g, err = b.Build()
			require.NoError(t, err)

			policy, err := ai.NewPolicy(config.DifficultyEasy, ai.FirstChooser{})
			require.NoError(t, err)
			outcome, _ := g.RunSimulation(ai.NewBrain(quietLogger(), "Player", policy), MaxSimulationRounds)

			assert.True(t, outcome.Terminal(), "variant %d seed %d did not finish", vi, seed)
			assert.Zero(t, violations, "variant %d seed %d", vi, seed)
			assert.Equal(t, tiles.DeckSize, g.Total())
		}
	}
}

func TestFullSimulation_GoldenRun(t *testing.T) {
	// GIVEN a fixed deck: the player is dealt 1-5, the AI 1-4 and 6
	deck := []tiles.Tile{1, 2, 3, 4, 5, 1, 2, 3, 4, 6, 5, 6, 7, 8, 9, 7, 8, 9}
	g, err := NewBuilder(config.Default(), quietLogger(), rand.New(rand.NewSource(1))).
		WithDeck(deck).
		WithChooser(ai.FirstChooser{}).
		Build()
	require.NoError(t, err)
	policy, err := ai.NewPolicy(config.DifficultyEasy, ai.FirstChooser{})
	require.NoError(t, err)

	// WHEN the autopilot plays the player's seat to the end
	outcome, rounds := g.RunSimulation(ai.NewBrain(quietLogger(), "Player", policy), MaxSimulationRounds)

	// THEN both sides make one pair and the deck runs dry on a level score
	assert.Equal(t, Draw, outcome)
	assert.Equal(t, ReasonMatchCount, g.Reason())
	assert.Equal(t, 5, rounds)
	assert.Equal(t, 1, g.PlayerMatches())
	assert.Equal(t, 1, g.AIMatches())
	assert.Equal(t, tiles.Hand{1, 2, 3, 4, 7, 9, 8}, g.PlayerHand())
	assert.Equal(t, tiles.Hand{1, 2, 3, 4, 7, 8, 9}, g.AIHand())
}
