package ai

import (
	"example.com/tilematch/internal/tiles"

	"github.com/sirupsen/logrus"
)

// MoveKind is what a seat does on its turn.
type MoveKind int

const (
	MoveMatch MoveKind = iota
	MoveDraw
)

func (k MoveKind) String() string {
	return []string{"match", "draw"}[k]
}

// Move represents the decision made by the AI.
type Move struct {
	Kind MoveKind
	Pair tiles.Pair
}

// Brain drives one seat: it matches whenever its policy finds a pair and draws otherwise.
type Brain struct {
	name   string
	policy Policy
	log    logrus.FieldLogger
}

// NewBrain is the constructor for an AI seat. It injects dependencies.
func NewBrain(logger logrus.FieldLogger, name string, policy Policy) *Brain {
	return &Brain{
		name:   name,
		policy: policy,
		log:    logger.WithField("seat", name),
	}
}

func (b *Brain) Name() string   { return b.name }
func (b *Brain) Policy() Policy { return b.policy }

// SetPolicy swaps the decision policy, e.g. after a difficulty change.
func (b *Brain) SetPolicy(p Policy) {
	b.policy = p
	b.log.Debugf("Policy switched to %s.", p.Name())
}

// Decide inspects the hand and returns the move for this turn.
func (b *Brain) Decide(hand tiles.Hand) Move {
	if pair, ok := b.policy.ChoosePair(hand); ok {
		b.log.Debugf("Policy %s: matching %d at positions %d and %d.", b.policy.Name(), hand[pair.I], pair.I, pair.J)
		return Move{Kind: MoveMatch, Pair: pair}
	}
	b.log.Debugf("Policy %s: no pair in a hand of %d, drawing.", b.policy.Name(), len(hand))
	return Move{Kind: MoveDraw}
}
