package events

import (
	"example.com/tilematch/internal/tiles"
)

// Event is a marker interface for all event types.
type Event interface{}

// Listener defines an interface for any component that wants to react to events.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(e Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Manager (or Event Bus) manages listeners and dispatches events synchronously.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}
func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}
func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// --- Event Types for Rendering ---

// GameReadyEvent is published once the deck is shuffled and both hands are dealt.
type GameReadyEvent struct {
	GameID     string
	PlayerHand []tiles.Tile
	AIHandSize int
	DeckSize   int
	Difficulty string
}

type DifficultyChangedEvent struct {
	GameID     string
	Difficulty string
}

type PlayerDrewEvent struct {
	GameID string
	Tile   tiles.Tile
}

// PlayerDeckEmptyEvent is published when the player wanted a tile but none were left.
type PlayerDeckEmptyEvent struct {
	GameID string
}

// DrawForbiddenEvent is published when the player asks to draw while holding a pair.
type DrawForbiddenEvent struct {
	GameID string
}

type PlayerMatchedEvent struct {
	GameID  string
	Tile    tiles.Tile
	Indexes [2]int
	Matches int
}

type PlayerMismatchedEvent struct {
	GameID  string
	Tiles   [2]tiles.Tile
	Indexes [2]int
}

// AIMatchedEvent carries the value only; the AI hand stays hidden from renderers.
type AIMatchedEvent struct {
	GameID  string
	Policy  string
	Tile    tiles.Tile
	Matches int
}

type AIDrewEvent struct {
	GameID string
}

type AIDeckEmptyEvent struct {
	GameID  string
	Forfeit bool
}

type SuddenDeathStartedEvent struct {
	GameID string
}

type SuddenDeathRoundEvent struct {
	GameID     string
	Round      int
	PlayerTile tiles.Tile
	AITile     tiles.Tile
}

type GameOverEvent struct {
	GameID        string
	Outcome       string
	Reason        string
	PlayerMatches int
	AIMatches     int
	AIHand        []tiles.Tile // Revealed at the end
}
