package evaluator

import (
	"reflect"
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
)

func TestBestFiveFindsStraightInSeven(t *testing.T) {
	t.Parallel()

	cards := deck.MustParseCards("2s3h4d5c6s7h9d")
	best, score := BestFive(cards)

	if want := int64(570_000_000_000); score != want {
		t.Errorf("BestFive score = %d, want %d (seven-high straight)", score, want)
	}
	if got := Describe(best); got != "Straight, 7 high" {
		t.Errorf("Describe(best) = %q, want %q", got, "Straight, 7 high")
	}
	if len(best) != 5 {
		t.Errorf("BestFive returned %d cards, want 5", len(best))
	}
}

func TestBestFivePassesThroughSmallHands(t *testing.T) {
	t.Parallel()

	for _, cards := range []string{"AsKh", "AsAhKd", "QsQhQd8c", "JsJhTsTh3c"} {
		parsed := deck.MustParseCards(cards)
		best, score := BestFive(parsed)

		if !reflect.DeepEqual(best, parsed) {
			t.Errorf("BestFive(%s) returned %v, want the input unchanged", cards, best)
		}
		if want := Evaluate(parsed); score != want {
			t.Errorf("BestFive(%s) score = %d, want %d", cards, score, want)
		}
	}
}

func TestBestFiveAgreesWithEvaluateOnRankPatterns(t *testing.T) {
	t.Parallel()

	// No hidden flushes, no third pair, no double trips: whole-hand
	// scoring and subset scoring pick the same five cards.
	for _, cards := range []string{
		"AsAhKd9c7h5s2d", // pair with kickers
		"8s8h8dKcQh2s3d", // trips with kickers
		"AsAhAdKsKh2c3c", // full house
		"Ts9s8h7c6d2s3h", // straight
	} {
		parsed := deck.MustParseCards(cards)
		direct := Evaluate(parsed)
		_, best := BestFive(parsed)
		if direct != best {
			t.Errorf("BestFive(%s) = %d, Evaluate = %d, want agreement", cards, best, direct)
		}
	}
}

// When two subsets tie, the earliest in combination order wins, so
// results are reproducible run to run.
func TestBestFiveTiesGoToFirstSubset(t *testing.T) {
	t.Parallel()

	// The queen of spades and queen of hearts are interchangeable here;
	// the subset taking the earlier card (index 4) must win.
	cards := deck.MustParseCards("AsAhKdKcQsQh2d")
	best, _ := BestFive(cards)

	want := deck.MustParseCards("AsAhKdKcQs")
	if !reflect.DeepEqual(best, want) {
		t.Errorf("BestFive tie broke to %v, want %v", best, want)
	}
}

func TestBestFivePrefersFlushOverStraight(t *testing.T) {
	t.Parallel()

	// Both a straight (9-K mixed) and a flush (hearts) are available.
	cards := deck.MustParseCards("KhQhJh9hTc2h3s")
	_, score := BestFive(cards)
	if got := score / scoreBase; got != Flush {
		t.Errorf("BestFive category = %d, want %d", got, Flush)
	}
}
