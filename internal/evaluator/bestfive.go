package evaluator

import (
	"math"

	"github.com/lox/holdem-engine/internal/deck"
)

// BestFive returns the strongest five-card hand contained in cards,
// along with its score, by evaluating every five-card subset. With five
// or fewer cards it scores the hand as given. Ties between subsets go to
// the earliest in combination order, so the choice is deterministic.
//
// Unlike Evaluate on the full hand, this finds flushes hiding in mixed
// suits, at the cost of enumerating up to 21 subsets for seven cards.
func BestFive(cards []deck.Card) ([]deck.Card, int64) {
	if len(cards) <= 5 {
		best := make([]deck.Card, len(cards))
		copy(best, cards)
		return best, Evaluate(cards)
	}

	var best []deck.Card
	bestScore := int64(math.MaxInt64)

	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						hand := []deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						if s := Evaluate(hand); s < bestScore {
							bestScore = s
							best = hand
						}
					}
				}
			}
		}
	}

	return best, bestScore
}
