package game

import (
	"fmt"

	"example.com/tilematch/internal/ai"
	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/events"
	"example.com/tilematch/internal/tiles"
)

// DrawStatus is the result of the player asking for a tile.
type DrawStatus int

const (
	Drew DrawStatus = iota
	DeckEmpty
	DrawForbidden // A pair is still on hand
)

func (s DrawStatus) String() string {
	return []string{"drew", "deck empty", "forbidden"}[s]
}

type DrawResult struct {
	Status DrawStatus
	Tile   tiles.Tile // Set when Status is Drew
}

// MatchStatus is the result of comparing the two selected tiles.
type MatchStatus int

const (
	Matched MatchStatus = iota
	Mismatched
)

func (s MatchStatus) String() string {
	return []string{"matched", "mismatched"}[s]
}

type MatchResult struct {
	Status  MatchStatus
	Indexes [2]int
	Tiles   [2]tiles.Tile
}

// AIStatus is what happened on the AI's turn.
type AIStatus int

const (
	AIMatched AIStatus = iota
	AIDrew
	// AIDeckEmpty means the AI had nothing to do; the end-of-deck check decides.
	AIDeckEmpty
	// AIDeckEmptyLoss means the AI could not draw under the forfeit rule and the
	// game ended at once in the AI's favour.
	AIDeckEmptyLoss
)

func (s AIStatus) String() string {
	return []string{"matched", "drew", "deck empty", "deck empty (game over)"}[s]
}

type AIResult struct {
	Status AIStatus
	Tile   tiles.Tile // The matched value when Status is AIMatched
}

// Selection is the set of pending player hand indexes, in the order chosen.
type Selection []int

// Ready reports whether two tiles are pending and the pair can be resolved.
func (s Selection) Ready() bool { return len(s) == 2 }

// Contains reports whether idx is pending.
func (s Selection) Contains(idx int) bool {
	for _, i := range s {
		if i == idx {
			return true
		}
	}
	return false
}

func (g *Game) Selection() Selection {
	return append(Selection{}, g.selection...)
}

// Select toggles index in the pending selection. Selecting a pending index
// deselects it.
func (g *Game) Select(index int) (Selection, error) {
	if g.IsOver() {
		return g.Selection(), ErrGameOver
	}
	if index < 0 || index >= len(g.playerHand) {
		return g.Selection(), fmt.Errorf("%w: %d (hand size %d)", ErrInvalidIndex, index, len(g.playerHand))
	}
	if Selection(g.selection).Contains(index) {
		g.Deselect(index)
		return g.Selection(), nil
	}
	if len(g.selection) == 2 {
		return g.Selection(), ErrSelectionFull
	}
	g.selection = append(g.selection, index)
	return g.Selection(), nil
}

// Deselect drops index from the pending selection. It is a no-op if index is not pending.
func (g *Game) Deselect(index int) Selection {
	kept := g.selection[:0]
	for _, i := range g.selection {
		if i != index {
			kept = append(kept, i)
		}
	}
	g.selection = kept
	return g.Selection()
}

// ClearSelection drops every pending index.
func (g *Game) ClearSelection() {
	g.selection = nil
}

// ResolveSelection compares the two pending tiles. A match removes both from the
// player's hand; either way the selection is cleared.
func (g *Game) ResolveSelection() (MatchResult, error) {
	if g.IsOver() {
		return MatchResult{}, ErrGameOver
	}
	if len(g.selection) != 2 {
		return MatchResult{}, ErrSelectionIncomplete
	}
	i, j := g.selection[0], g.selection[1]
	g.selection = nil

	res := MatchResult{
		Indexes: [2]int{i, j},
		Tiles:   [2]tiles.Tile{g.playerHand[i], g.playerHand[j]},
	}
	if res.Tiles[0] != res.Tiles[1] {
		res.Status = Mismatched
		g.log.Debugf("Player mismatch: %d at %d vs %d at %d.", res.Tiles[0], i, res.Tiles[1], j)
		g.EventManager.Publish(events.PlayerMismatchedEvent{GameID: g.id, Tiles: res.Tiles, Indexes: res.Indexes})
		return res, nil
	}

	if _, err := g.playerHand.RemovePair(i, j); err != nil {
		return MatchResult{}, err
	}
	g.playerMatches++
	res.Status = Matched
	g.log.Debugf("Player matched %d; hand is now %v.", res.Tiles[0], g.playerHand)
	g.EventManager.Publish(events.PlayerMatchedEvent{GameID: g.id, Tile: res.Tiles[0], Indexes: res.Indexes, Matches: g.playerMatches})
	g.CheckTerminal()
	return res, nil
}

// TryMatch selects i and j and resolves them in one step.
func (g *Game) TryMatch(i, j int) (MatchResult, error) {
	if g.IsOver() {
		return MatchResult{}, ErrGameOver
	}
	if i == j {
		return MatchResult{}, fmt.Errorf("%w: %d", ErrDuplicateIndex, i)
	}
	for _, idx := range []int{i, j} {
		if idx < 0 || idx >= len(g.playerHand) {
			return MatchResult{}, fmt.Errorf("%w: %d (hand size %d)", ErrInvalidIndex, idx, len(g.playerHand))
		}
	}
	g.selection = []int{i, j}
	return g.ResolveSelection()
}

// DrawForPlayer gives the player the front tile of the deck. It is refused,
// without any change, while the player still holds a pair.
func (g *Game) DrawForPlayer() (DrawResult, error) {
	if g.IsOver() {
		return DrawResult{}, ErrGameOver
	}
	if tiles.CanMatch(g.playerHand) {
		g.EventManager.Publish(events.DrawForbiddenEvent{GameID: g.id})
		return DrawResult{Status: DrawForbidden}, nil
	}
	t, ok := g.deck.Draw()
	if !ok {
		g.log.Debugf("Player tried to draw from an empty deck.")
		g.EventManager.Publish(events.PlayerDeckEmptyEvent{GameID: g.id})
		g.CheckTerminal()
		return DrawResult{Status: DeckEmpty}, nil
	}
	g.playerHand.Add(t)
	g.log.Debugf("Player drew %d; %d left in deck.", t, g.deck.Len())
	g.EventManager.Publish(events.PlayerDrewEvent{GameID: g.id, Tile: t})
	g.CheckTerminal()
	return DrawResult{Status: Drew, Tile: t}, nil
}

// RunAITurn lets the AI match a pair if its policy finds one, and draw otherwise.
func (g *Game) RunAITurn() (AIResult, error) {
	if g.IsOver() {
		return AIResult{}, ErrGameOver
	}
	g.aiTurns++

	move := g.brain.Decide(g.aiHand)
	if move.Kind == ai.MoveMatch {
		t, err := g.aiHand.RemovePair(move.Pair.I, move.Pair.J)
		if err != nil {
			return AIResult{}, fmt.Errorf("ai policy %s chose an invalid pair: %w", g.brain.Policy().Name(), err)
		}
		g.aiMatches++
		g.aiHand.Sort()
		g.EventManager.Publish(events.AIMatchedEvent{GameID: g.id, Policy: g.brain.Policy().Name(), Tile: t, Matches: g.aiMatches})
		g.CheckTerminal()
		return AIResult{Status: AIMatched, Tile: t}, nil
	}

	t, ok := g.deck.Draw()
	if ok {
		g.aiHand.Add(t)
		g.aiHand.Sort()
		g.EventManager.Publish(events.AIDrewEvent{GameID: g.id})
		g.CheckTerminal()
		return AIResult{Status: AIDrew}, nil
	}

	if g.Config.AIEmptyDeck == config.AIEmptyDeckForfeit {
		g.EventManager.Publish(events.AIDeckEmptyEvent{GameID: g.id, Forfeit: true})
		g.finish(AIWin, ReasonAICouldNotDraw)
		return AIResult{Status: AIDeckEmptyLoss}, nil
	}
	g.EventManager.Publish(events.AIDeckEmptyEvent{GameID: g.id})
	g.CheckTerminal()
	return AIResult{Status: AIDeckEmpty}, nil
}
