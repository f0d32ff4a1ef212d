package evaluator

import (
	"math/bits"

	"github.com/lox/holdem-engine/internal/deck"
)

// CardSet is a 52-bit set of cards, one bit per rank and suit pair.
type CardSet uint64

// cardBit converts a card to its bit index (0-51).
func cardBit(c deck.Card) int {
	return int(c.Rank-deck.Two)*4 + int(c.Suit)
}

// Add puts a card in the set.
func (cs *CardSet) Add(c deck.Card) {
	*cs |= 1 << cardBit(c)
}

// Contains reports whether the card is in the set.
func (cs CardSet) Contains(c deck.Card) bool {
	return cs&(1<<cardBit(c)) != 0
}

// Count returns the number of distinct cards in the set.
func (cs CardSet) Count() int {
	return bits.OnesCount64(uint64(cs))
}

// NewCardSet builds a set from a slice of cards.
func NewCardSet(cards []deck.Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}

// FirstDuplicate returns the first card appearing more than once, for
// validating user-supplied hands before evaluation.
func FirstDuplicate(cards []deck.Card) (deck.Card, bool) {
	var seen CardSet
	for _, c := range cards {
		if seen.Contains(c) {
			return c, true
		}
		seen.Add(c)
	}
	return deck.Card{}, false
}
