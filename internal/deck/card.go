package deck

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol
func (s Suit) String() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return [...]string{"♠", "♥", "♦", "♣"}[s]
}

// Letter returns the single-letter suit notation used in card strings
func (s Suit) Letter() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return [...]string{"s", "h", "d", "c"}[s]
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank, Two through Ace
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character rank notation
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"}[r-Two]
}

// Card is an immutable rank and suit pair. Ordering between cards is by
// rank alone; suit never breaks ties and only matters for flush detection.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the card in symbol notation (e.g. "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Notation returns the card in parseable two-character form (e.g. "As")
func (c Card) Notation() string {
	return c.Rank.String() + c.Suit.Letter()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}
