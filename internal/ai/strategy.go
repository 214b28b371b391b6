package ai

import (
	"fmt"

	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/tiles"
)

// Policy decides which pair, if any, the AI removes from its hand.
type Policy interface {
	Name() string
	ChoosePair(hand tiles.Hand) (tiles.Pair, bool)
}

// NewPolicy creates the policy for the given difficulty.
func NewPolicy(level config.Difficulty, chooser Chooser) (Policy, error) {
	switch level {
	case config.DifficultyEasy:
		if chooser == nil {
			return nil, fmt.Errorf("easy policy needs a chooser")
		}
		return &EasyPolicy{chooser: chooser}, nil
	case config.DifficultyHard:
		return &HardPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %d", level)
	}
}

// --- Policy Implementations ---

// 1. EasyPolicy takes whichever pair its chooser picks.
type EasyPolicy struct {
	chooser Chooser
}

func (p *EasyPolicy) Name() string { return config.DifficultyEasy.String() }

func (p *EasyPolicy) ChoosePair(hand tiles.Hand) (tiles.Pair, bool) {
	pairs := tiles.Pairs(hand)
	if len(pairs) == 0 {
		return tiles.Pair{}, false
	}
	return p.chooser.Choose(pairs), true
}

// 2. HardPolicy sheds its lowest pair first so that high tiles are still in hand
// if the game goes to a sudden-death draw-off.
type HardPolicy struct{}

func (p *HardPolicy) Name() string { return config.DifficultyHard.String() }

func (p *HardPolicy) ChoosePair(hand tiles.Hand) (tiles.Pair, bool) {
	var best tiles.Pair
	found := false
	for _, pair := range tiles.Pairs(hand) {
		if !found || hand[pair.I] < hand[best.I] {
			best = pair
			found = true
		}
	}
	return best, found
}
