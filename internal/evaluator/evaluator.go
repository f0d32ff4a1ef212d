package evaluator

import (
	"fmt"
	"slices"
	"sort"

	"github.com/lox/holdem-engine/internal/deck"
)

// Hand categories, strongest first. The category occupies the most
// significant decimal field of a score, so any hand in a stronger
// category outranks every hand in a weaker one.
const (
	StraightFlush int64 = iota + 1
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	Pair
	HighCard
)

// scoreBase separates category fields in a score.
const scoreBase = 100_000_000_000

// componentWeights positions each tie-break component two decimal digits
// below the previous one. A score never carries more than five components.
var componentWeights = [5]int64{
	10_000_000_000,
	100_000_000,
	1_000_000,
	10_000,
	100,
}

// Evaluate scores a hand of two to seven cards. Lower scores are stronger
// hands. The input is not modified and its order never affects the result.
//
// Flush and straight flush detection requires every input card to share
// one suit, so hands of six or seven cards holding a five-card flush
// among mixed suits score as their rank-pattern category instead. Use
// BestFive when the true best five-card holding is needed.
func Evaluate(cards []deck.Card) int64 {
	if len(cards) < 2 || len(cards) > 7 {
		panic(fmt.Sprintf("evaluator: hand must have 2 to 7 cards, got %d", len(cards)))
	}

	h := analyze(cards)
	category, comps := h.classify()
	return packScore(category, comps)
}

// Describe returns a human-readable name for the hand, such as
// "Full House, Ks over Qs". Hands of fewer than two cards describe as
// "Invalid hand".
func Describe(cards []deck.Card) string {
	if len(cards) < 2 {
		return "Invalid hand"
	}

	h := analyze(cards)
	switch {
	case h.flush && h.straightHigh == 12:
		return "Royal Flush"
	case h.flush && h.straightHigh >= 0:
		return fmt.Sprintf("Straight Flush, %s high", rankName(h.straightHigh))
	case h.hasCount(4):
		return fmt.Sprintf("Four of a Kind, %ss", rankName(h.highestWithCount(4)))
	case h.hasCount(3) && h.hasCount(2):
		return fmt.Sprintf("Full House, %ss over %ss",
			rankName(h.highestWithCount(3)), rankName(h.highestWithCount(2)))
	case h.flush:
		return fmt.Sprintf("Flush, %s high", rankName(h.ranks[0]))
	case h.straightHigh >= 0:
		return fmt.Sprintf("Straight, %s high", rankName(h.straightHigh))
	case h.hasCount(3):
		return fmt.Sprintf("Three of a Kind, %ss", rankName(h.highestWithCount(3)))
	case h.pairCount() >= 2:
		pairs := h.ranksWithCount(2)
		return fmt.Sprintf("Two Pair, %ss and %ss", rankName(pairs[0]), rankName(pairs[1]))
	case h.hasCount(2):
		return fmt.Sprintf("Pair of %ss", rankName(h.highestWithCount(2)))
	default:
		return fmt.Sprintf("%s high", rankName(h.ranks[0]))
	}
}

// handInfo holds the rank and suit structure of a hand. Rank indexes run
// 0 (two) through 12 (ace).
type handInfo struct {
	ranks        []int   // rank indexes, descending, duplicates kept
	counts       [13]int // occurrences per rank index
	flush        bool    // every card shares one suit and there are at least five
	straightHigh int     // rank index of the straight's high card, -1 if none
}

func analyze(cards []deck.Card) handInfo {
	h := handInfo{ranks: make([]int, len(cards))}
	for i, c := range cards {
		h.ranks[i] = rankIndex(c.Rank)
		h.counts[h.ranks[i]]++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(h.ranks)))

	h.flush = len(cards) >= 5
	for _, c := range cards {
		if c.Suit != cards[0].Suit {
			h.flush = false
			break
		}
	}

	h.straightHigh = h.findStraightHigh()
	return h
}

func (h *handInfo) findStraightHigh() int {
	unique := make([]int, 0, len(h.ranks))
	for _, r := range h.ranks {
		if len(unique) == 0 || unique[len(unique)-1] != r {
			unique = append(unique, r)
		}
	}

	for i := 0; i+4 < len(unique); i++ {
		if unique[i]-unique[i+4] == 4 {
			return unique[i]
		}
	}

	// The wheel: ace plays low under 5-4-3-2, so the straight is 5 high.
	if h.counts[12] > 0 && h.counts[3] > 0 && h.counts[2] > 0 && h.counts[1] > 0 && h.counts[0] > 0 {
		return 3
	}
	return -1
}

// classify picks the hand's category and its ordered tie-break
// components. Components are derived as 12 minus the rank index, so a
// lower component means a higher card.
func (h *handInfo) classify() (int64, []int) {
	switch {
	case h.flush && h.straightHigh >= 0:
		return StraightFlush, []int{12 - h.straightHigh}

	case h.hasCount(4):
		quad := h.highestWithCount(4)
		return FourOfAKind, append([]int{12 - quad}, h.kickers([]int{quad}, 1)...)

	case h.hasCount(3) && h.hasCount(2):
		return FullHouse, []int{12 - h.highestWithCount(3), 12 - h.highestWithCount(2)}

	case h.flush:
		return Flush, h.topComponents()

	case h.straightHigh >= 0:
		return Straight, []int{12 - h.straightHigh}

	case h.hasCount(3):
		trips := h.highestWithCount(3)
		return ThreeOfAKind, append([]int{12 - trips}, h.kickers([]int{trips}, 2)...)

	case h.pairCount() >= 2:
		pairs := h.ranksWithCount(2)
		comps := []int{12 - pairs[0], 12 - pairs[1]}
		return TwoPair, append(comps, h.kickers(pairs, 1)...)

	case h.hasCount(2):
		pair := h.highestWithCount(2)
		return Pair, append([]int{12 - pair}, h.kickers([]int{pair}, 3)...)

	default:
		return HighCard, h.topComponents()
	}
}

// hasCount reports whether any rank occurs exactly n times. Exactness
// matters: six cards holding two sets of trips have no rank with count
// two, so they classify as three of a kind rather than a full house.
func (h *handInfo) hasCount(n int) bool {
	for _, c := range h.counts {
		if c == n {
			return true
		}
	}
	return false
}

// highestWithCount returns the highest rank index occurring exactly n
// times. Callers must have established one exists via hasCount.
func (h *handInfo) highestWithCount(n int) int {
	for r := 12; r >= 0; r-- {
		if h.counts[r] == n {
			return r
		}
	}
	panic(fmt.Sprintf("evaluator: no rank with count %d", n))
}

func (h *handInfo) pairCount() int {
	pairs := 0
	for _, c := range h.counts {
		if c == 2 {
			pairs++
		}
	}
	return pairs
}

// ranksWithCount returns every rank index occurring exactly n times,
// highest first.
func (h *handInfo) ranksWithCount(n int) []int {
	var out []int
	for r := 12; r >= 0; r-- {
		if h.counts[r] == n {
			out = append(out, r)
		}
	}
	return out
}

// kickers returns up to n tie-break components from the highest distinct
// ranks outside the excluded set.
func (h *handInfo) kickers(exclude []int, n int) []int {
	var out []int
	for _, r := range h.ranks {
		if slices.Contains(exclude, r) {
			continue
		}
		comp := 12 - r
		if slices.Contains(out, comp) {
			continue
		}
		out = append(out, comp)
		if len(out) == n {
			break
		}
	}
	return out
}

// topComponents returns components for up to the five highest cards,
// used by flush and high-card hands where every card is its own kicker.
func (h *handInfo) topComponents() []int {
	n := min(5, len(h.ranks))
	comps := make([]int, n)
	for i, r := range h.ranks[:n] {
		comps[i] = 12 - r
	}
	return comps
}

func packScore(category int64, comps []int) int64 {
	s := category * scoreBase
	for i, c := range comps {
		s += int64(c) * componentWeights[i]
	}
	return s
}

func rankIndex(r deck.Rank) int {
	return int(r - deck.Two)
}

func rankName(rankIdx int) string {
	return (deck.Two + deck.Rank(rankIdx)).String()
}
