package tiles

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

const (
	// MinValue and MaxValue bound the face value of a tile.
	MinValue = 1
	MaxValue = 9
	// Copies is how many tiles of each value go into a fresh deck.
	Copies = 2
	// DeckSize is the total number of tiles in play for a game.
	DeckSize = (MaxValue - MinValue + 1) * Copies
)

var (
	ErrIndexOutOfRange = errors.New("tile index out of range")
	ErrSameIndex       = errors.New("a pair needs two distinct indexes")
	ErrNotAPair        = errors.New("tiles do not match")
)

// Tile is a playing piece. Two tiles are interchangeable if their values are equal.
type Tile int

// Valid reports whether the tile carries a value that can appear in a deck.
func (t Tile) Valid() bool { return t >= MinValue && t <= MaxValue }

// Deck is the shared draw pile, consumed from the front and never replenished.
type Deck struct {
	tiles []Tile
}

// NewDeck builds the standard deck and shuffles it with the given source.
func NewDeck(r *rand.Rand) *Deck {
	tiles := make([]Tile, 0, DeckSize)
	for c := 0; c < Copies; c++ {
		for v := MinValue; v <= MaxValue; v++ {
			tiles = append(tiles, Tile(v))
		}
	}
	r.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })
	return &Deck{tiles: tiles}
}

// NewDeckFrom returns a deck holding exactly the given tiles, in order.
func NewDeckFrom(tiles []Tile) *Deck {
	d := &Deck{tiles: make([]Tile, len(tiles))}
	copy(d.tiles, tiles)
	return d
}

// Draw pops the front tile. The boolean is false when the deck is empty.
func (d *Deck) Draw() (Tile, bool) {
	if len(d.tiles) == 0 {
		return 0, false
	}
	t := d.tiles[0]
	d.tiles = d.tiles[1:]
	return t, true
}

func (d *Deck) Len() int      { return len(d.tiles) }
func (d *Deck) IsEmpty() bool { return len(d.tiles) == 0 }

// Tiles returns a copy of the remaining tiles, front first.
func (d *Deck) Tiles() []Tile {
	out := make([]Tile, len(d.tiles))
	copy(out, d.tiles)
	return out
}

// Pair is two distinct hand positions, I < J.
type Pair struct {
	I, J int
}

// Hand is an ordered collection of tiles.
type Hand []Tile

// Add appends a tile to the end of the hand.
func (h *Hand) Add(t Tile) { *h = append(*h, t) }

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// CanMatch reports whether any two positions hold equal values.
func CanMatch(h Hand) bool {
	_, _, ok := FirstPair(h)
	return ok
}

// FirstPair returns the lexicographically first (i, j) with i < j and h[i] == h[j].
func FirstPair(h Hand) (int, int, bool) {
	for i := 0; i < len(h); i++ {
		for j := i + 1; j < len(h); j++ {
			if h[i] == h[j] {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Pairs lists every matching pair of positions in scan order.
func Pairs(h Hand) []Pair {
	var pairs []Pair
	for i := 0; i < len(h); i++ {
		for j := i + 1; j < len(h); j++ {
			if h[i] == h[j] {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
	}
	return pairs
}

// Counts tallies how many times each value occurs in the hand.
func Counts(h Hand) map[Tile]int {
	counts := make(map[Tile]int, len(h))
	for _, t := range h {
		counts[t]++
	}
	return counts
}

// RemovePair deletes the tiles at i and j, which must be distinct, in range and equal.
// The larger index is removed first so the smaller one stays valid.
func (h *Hand) RemovePair(i, j int) (Tile, error) {
	hand := *h
	if i < 0 || i >= len(hand) || j < 0 || j >= len(hand) {
		return 0, fmt.Errorf("%w: %d, %d (hand size %d)", ErrIndexOutOfRange, i, j, len(hand))
	}
	if i == j {
		return 0, fmt.Errorf("%w: %d", ErrSameIndex, i)
	}
	if hand[i] != hand[j] {
		return 0, fmt.Errorf("%w: %d != %d", ErrNotAPair, hand[i], hand[j])
	}
	matched := hand[i]
	hi, lo := i, j
	if lo > hi {
		hi, lo = lo, hi
	}
	hand = append(hand[:hi], hand[hi+1:]...)
	hand = append(hand[:lo], hand[lo+1:]...)
	*h = hand
	return matched, nil
}

// RemoveAt deletes and returns the tile at index i.
func (h *Hand) RemoveAt(i int) (Tile, error) {
	hand := *h
	if i < 0 || i >= len(hand) {
		return 0, fmt.Errorf("%w: %d (hand size %d)", ErrIndexOutOfRange, i, len(hand))
	}
	t := hand[i]
	*h = append(hand[:i], hand[i+1:]...)
	return t, nil
}

// Sort orders the hand ascending in place.
func (h Hand) Sort() {
	sort.Slice(h, func(i, j int) bool { return h[i] < h[j] })
}
