package game

import "sort"

// SidePot is a share of the money at stake and the players eligible to
// win it. Pots are disjoint and ordered broadest-eligibility first, so
// the main pot is always index 0.
type SidePot struct {
	Amount    int
	PlayerIDs []int
}

// CalculateSidePots splits the money at stake into pots by all-in
// investment level and returns them, broadest eligibility first. The
// split replaces the engine's pot state: the main pot is folded into
// the returned pots, so TotalPot is unchanged.
//
// With nobody all-in there is a single pot of the total for the active
// players (no pots at all if everyone folded or sat out). Otherwise,
// each distinct total-investment level among players still in
// contention (active or all-in) caps one pot: its amount is the level's
// increment over the previous level multiplied by the number of
// contenders who invested at least that much, and exactly those
// contenders are eligible, in seating order. Pots that would be empty
// are skipped.
func (bm *BettingManager) CalculateSidePots(players []*Player) []SidePot {
	pots := bm.partition(players)

	bm.sidePots = bm.sidePots[:0]
	for _, pot := range pots {
		ids := make([]int, len(pot.PlayerIDs))
		copy(ids, pot.PlayerIDs)
		bm.sidePots = append(bm.sidePots, SidePot{Amount: pot.Amount, PlayerIDs: ids})
	}
	if len(pots) > 0 {
		bm.mainPot = 0
	}

	return pots
}

func (bm *BettingManager) partition(players []*Player) []SidePot {
	anyAllIn := false
	for _, p := range players {
		if p.AllIn {
			anyAllIn = true
			break
		}
	}

	if !anyAllIn {
		var eligible []int
		for _, p := range players {
			if p.IsActive() {
				eligible = append(eligible, p.ID)
			}
		}
		if len(eligible) == 0 {
			return nil
		}
		return []SidePot{{Amount: bm.TotalPot(), PlayerIDs: eligible}}
	}

	levelSet := make(map[int]bool)
	for _, p := range players {
		if p.IsActive() || p.AllIn {
			levelSet[bm.investments[p.ID]] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var pots []SidePot
	previous := 0
	for _, level := range levels {
		var eligible []int
		for _, p := range players {
			if (p.IsActive() || p.AllIn) && bm.investments[p.ID] >= level {
				eligible = append(eligible, p.ID)
			}
		}

		if len(eligible) > 0 {
			amount := (level - previous) * len(eligible)
			if amount > 0 {
				pots = append(pots, SidePot{Amount: amount, PlayerIDs: eligible})
			}
		}
		previous = level
	}

	return pots
}

// DistributeWinnings splits each pot among its winners and returns the
// payout per player id. Within a pot the split is integral; remainder
// chips go one at a time to winners in listed order, so the first
// listed winner collects the odd chip. Pots with no listed winners are
// skipped, and pairs beyond the shorter of the two lists are ignored.
// Crediting the chips to stacks is the caller's job.
func (bm *BettingManager) DistributeWinnings(winnersByPot [][]int, pots []SidePot) map[int]int {
	winnings := make(map[int]int)

	n := min(len(winnersByPot), len(pots))
	for i := 0; i < n; i++ {
		winners := winnersByPot[i]
		if len(winners) == 0 {
			continue
		}

		share := pots[i].Amount / len(winners)
		remainder := pots[i].Amount % len(winners)
		for j, id := range winners {
			amount := share
			if j < remainder {
				amount++
			}
			winnings[id] += amount
		}
	}

	return winnings
}

// ClearPots empties the main pot and side pots once winnings are paid
// out. Investments and history survive for post-hand inspection; the
// next StartNewHand clears those.
func (bm *BettingManager) ClearPots() {
	bm.mainPot = 0
	bm.sidePots = bm.sidePots[:0]
}
