package deck

import (
	"fmt"
	"math/rand"
)

// Deck is an ordered 52-card sequence dealt from the front. Construction
// and Reset produce every rank and suit combination exactly once; dealt
// cards and remaining cards stay disjoint until the next Reset.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a shuffled 52-card deck using the provided random
// source. The source is required so callers control determinism.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("deck: rng is required")
	}

	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.fill()
	d.Shuffle()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
}

// Shuffle randomizes the order of the remaining cards
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the first n cards. Asking for more cards than
// remain is a caller bug and panics.
func (d *Deck) Deal(n int) []Card {
	if n > len(d.cards) {
		panic(fmt.Sprintf("deck: cannot deal %d card(s), only %d remaining", n, len(d.cards)))
	}

	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	return dealt
}

// DealOne removes and returns the top card
func (d *Deck) DealOne() Card {
	return d.Deal(1)[0]
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true once every card has been dealt
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Reset restores the full 52-card deck and reshuffles it
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}
