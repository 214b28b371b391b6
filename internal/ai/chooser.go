package ai

import (
	"math/rand"

	"example.com/tilematch/internal/tiles"
)

// Chooser defines an interface for selecting one pair from a list of candidates.
// This allows us to swap out random and deterministic selection strategies.
type Chooser interface {
	Choose(pairs []tiles.Pair) tiles.Pair
}

// --- Implementations ---

// RandomChooser implements the Chooser interface by picking a candidate at random.
type RandomChooser struct {
	rand *rand.Rand
}

// NewRandomChooser creates a new random chooser.
func NewRandomChooser(rand *rand.Rand) *RandomChooser {
	return &RandomChooser{rand: rand}
}

func (r *RandomChooser) Choose(pairs []tiles.Pair) tiles.Pair {
	if len(pairs) == 0 {
		return tiles.Pair{}
	}
	return pairs[r.rand.Intn(len(pairs))]
}

// FirstChooser implements the Chooser interface by always picking the first
// candidate in scan order. This is used for predictable testing.
type FirstChooser struct{}

func (FirstChooser) Choose(pairs []tiles.Pair) tiles.Pair {
	if len(pairs) == 0 {
		return tiles.Pair{}
	}
	return pairs[0]
}
