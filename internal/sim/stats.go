// Package sim drives complete hands through the rules engine with
// scripted policies, one goroutine per table. It exists to exercise the
// engine the way an integrating service would: configuration decides
// the tables, policies decide the actions, and the runner checks that
// the chips always add up.
package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/holdem-engine/internal/game"
)

// HandOutcome is one finished hand as seen by a table runner.
type HandOutcome struct {
	Pot            int        // final pot in chips
	WentToShowdown bool       // false when folds ended the hand early
	Street         game.Phase // phase the hand ended on
	Winners        int        // players who shared the pot
}

// TableStats aggregates hand outcomes for a single table. Pot sizes are
// tracked in big blinds so tables at different stakes compare directly.
type TableStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for variance
	Values []float64 // every pot in big blinds, for median/percentiles

	Showdowns int // hands resolved by comparing hands
	FoldWins  int // hands resolved by everyone else folding
	SplitPots int // hands where the pot was shared

	ShowdownPotBB float64 // pot volume through showdowns
	FoldPotBB     float64 // pot volume through fold wins

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int // pots of at least 50 big blinds

	StreetCounts [6]int // hands ending at each phase, indexed by game.Phase

	bigBlind int
}

// NewTableStats creates stats normalized to the table's big blind. A
// non-positive big blind is a caller bug.
func NewTableStats(bigBlind int) *TableStats {
	if bigBlind <= 0 {
		panic(fmt.Sprintf("sim: invalid big blind %d", bigBlind))
	}
	return &TableStats{bigBlind: bigBlind}
}

// Add incorporates a finished hand.
func (s *TableStats) Add(o HandOutcome) {
	potBB := float64(o.Pot) / float64(s.bigBlind)
	s.Hands++
	s.SumBB += potBB
	s.SumBB2 += potBB * potBB
	s.Values = append(s.Values, potBB)

	if o.WentToShowdown {
		s.Showdowns++
		s.ShowdownPotBB += potBB
	} else {
		s.FoldWins++
		s.FoldPotBB += potBB
	}
	if o.Winners > 1 {
		s.SplitPots++
	}

	if o.Pot > s.MaxPotChips {
		s.MaxPotChips = o.Pot
		s.MaxPotBB = potBB
	}
	if potBB >= 50 {
		s.BigPots++
	}

	if o.Street >= 0 && int(o.Street) < len(s.StreetCounts) {
		s.StreetCounts[o.Street]++
	}
}

// Mean returns the average pot in big blinds.
func (s *TableStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of pot sizes.
func (s *TableStats) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of pot sizes.
func (s *TableStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean pot size.
func (s *TableStats) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// pot size.
func (s *TableStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median pot in big blinds.
func (s *TableStats) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the pot size at the given percentile (0.0 to 1.0),
// linearly interpolated.
func (s *TableStats) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ShowdownRate returns the fraction of hands that reached showdown.
func (s *TableStats) ShowdownRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Showdowns) / float64(s.Hands)
}

// IsLedgerBalanced checks that the showdown and fold-win pot buckets
// sum to the total.
func (s *TableStats) IsLedgerBalanced() bool {
	return math.Abs(s.SumBB-s.ShowdownPotBB-s.FoldPotBB) <= 1e-6
}

// Validate checks the internal accounting for consistency.
func (s *TableStats) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: SumBB=%.6f, ShowdownPotBB=%.6f, FoldPotBB=%.6f",
			s.SumBB, s.ShowdownPotBB, s.FoldPotBB)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	if s.Showdowns+s.FoldWins != s.Hands {
		return fmt.Errorf("resolution counts (%d showdown + %d fold) do not match hands count (%d)",
			s.Showdowns, s.FoldWins, s.Hands)
	}

	streetTotal := 0
	for _, n := range s.StreetCounts {
		streetTotal += n
	}
	if streetTotal != s.Hands {
		return fmt.Errorf("street counts total (%d) does not match hands count (%d)",
			streetTotal, s.Hands)
	}

	return nil
}
