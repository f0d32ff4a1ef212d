package game

import (
	"reflect"
	"testing"
)

func TestCalculateSidePotsNoAllIns(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	players := []*Player{
		NewPlayer(1, "Alice", 1000),
		NewPlayer(2, "Bob", 1000),
		NewPlayer(3, "Carol", 1000),
	}
	bm.mainPot = 150

	pots := bm.CalculateSidePots(players)

	if len(pots) != 1 {
		t.Fatalf("Expected a single pot with no all-ins, got %d", len(pots))
	}
	if pots[0].Amount != 150 {
		t.Errorf("Expected the whole 150, got %d", pots[0].Amount)
	}
	if !reflect.DeepEqual(pots[0].PlayerIDs, []int{1, 2, 3}) {
		t.Errorf("Expected all three eligible, got %v", pots[0].PlayerIDs)
	}
}

func TestCalculateSidePotsWithAllIn(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	a := NewPlayer(1, "Alice", 100)
	b := NewPlayer(2, "Bob", 1000)
	c := NewPlayer(3, "Carol", 1000)
	players := []*Player{a, b, c}

	bm.ProcessAllIn(a)
	bm.investments[2] = 200
	bm.investments[3] = 200

	pots := bm.CalculateSidePots(players)

	// 100 * 3 = 300 for everyone, then 100 * 2 = 200 for the two
	// players who kept betting.
	if len(pots) != 2 {
		t.Fatalf("Expected 2 pots, got %d", len(pots))
	}
	if pots[0].Amount != 300 || !reflect.DeepEqual(pots[0].PlayerIDs, []int{1, 2, 3}) {
		t.Errorf("Unexpected main pot: %+v", pots[0])
	}
	if pots[1].Amount != 200 || !reflect.DeepEqual(pots[1].PlayerIDs, []int{2, 3}) {
		t.Errorf("Unexpected side pot: %+v", pots[1])
	}
}

func TestCalculateSidePotsMultipleAllIns(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	a := NewPlayer(1, "Alice", 1000)
	b := NewPlayer(2, "Bob", 1000)
	c := NewPlayer(3, "Carol", 1000)
	d := NewPlayer(4, "Dave", 1000)
	players := []*Player{a, b, c, d}

	a.AllIn = true
	b.AllIn = true
	bm.investments[1] = 30
	bm.investments[2] = 70
	bm.investments[3] = 100
	bm.investments[4] = 100

	pots := bm.CalculateSidePots(players)

	if len(pots) != 3 {
		t.Fatalf("Expected 3 pots, got %d", len(pots))
	}

	wantAmounts := []int{120, 120, 60}
	wantEligible := [][]int{{1, 2, 3, 4}, {2, 3, 4}, {3, 4}}
	for i, pot := range pots {
		if pot.Amount != wantAmounts[i] {
			t.Errorf("Pot %d: expected amount %d, got %d", i, wantAmounts[i], pot.Amount)
		}
		if !reflect.DeepEqual(pot.PlayerIDs, wantEligible[i]) {
			t.Errorf("Pot %d: expected eligible %v, got %v", i, wantEligible[i], pot.PlayerIDs)
		}
	}

	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	if total != 300 {
		t.Errorf("Pots must account for all 300 invested, got %d", total)
	}
}

func TestCalculateSidePotsNobodyLeft(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	a := NewPlayer(1, "Alice", 1000)
	b := NewPlayer(2, "Bob", 1000)
	a.Fold()
	b.Fold()
	bm.mainPot = 40

	if pots := bm.CalculateSidePots([]*Player{a, b}); pots != nil {
		t.Errorf("Expected no pots with nobody active, got %v", pots)
	}
}

func TestCalculateSidePotsSkipsEmptyLevels(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	a := NewPlayer(1, "Alice", 1000)
	b := NewPlayer(2, "Bob", 1000)
	c := NewPlayer(3, "Carol", 1000)
	players := []*Player{a, b, c}

	a.AllIn = true
	bm.investments[1] = 0
	bm.investments[2] = 100
	bm.investments[3] = 100

	pots := bm.CalculateSidePots(players)

	if len(pots) != 1 {
		t.Fatalf("Expected the empty level skipped, got %d pots", len(pots))
	}
	if pots[0].Amount != 200 || !reflect.DeepEqual(pots[0].PlayerIDs, []int{2, 3}) {
		t.Errorf("Unexpected pot: %+v", pots[0])
	}
}

func TestCalculateSidePotsKeepsTotalPot(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	a := NewPlayer(1, "Alice", 100)
	b := NewPlayer(2, "Bob", 1000)
	c := NewPlayer(3, "Carol", 1000)
	players := []*Player{a, b, c}

	bm.ProcessAllIn(a)
	bm.ProcessCall(b)
	bm.ProcessCall(c)

	before := bm.TotalPot()
	pots := bm.CalculateSidePots(players)
	after := bm.TotalPot()

	if before != 300 {
		t.Fatalf("Expected 300 at stake, got %d", before)
	}
	if after != before {
		t.Errorf("Splitting pots must not change the total: %d -> %d", before, after)
	}
	if len(pots) != 1 || pots[0].Amount != 300 {
		t.Errorf("Expected one 300 pot at a single level, got %+v", pots)
	}
	if info := bm.PotInfo(); info.SidePots != 1 || info.MainPot != 0 {
		t.Errorf("Partition should replace the main pot, got %+v", info)
	}
}

func TestDistributeWinningsSinglePot(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	pots := []SidePot{{Amount: 300, PlayerIDs: []int{1, 2, 3}}}

	winnings := bm.DistributeWinnings([][]int{{2}}, pots)

	if !reflect.DeepEqual(winnings, map[int]int{2: 300}) {
		t.Errorf("Expected player 2 to take 300, got %v", winnings)
	}
}

func TestDistributeWinningsTie(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	pots := []SidePot{{Amount: 300, PlayerIDs: []int{1, 2, 3}}}

	winnings := bm.DistributeWinnings([][]int{{1, 2}}, pots)

	if !reflect.DeepEqual(winnings, map[int]int{1: 150, 2: 150}) {
		t.Errorf("Expected an even split, got %v", winnings)
	}
}

func TestDistributeWinningsRemainderToFirstListed(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	pots := []SidePot{{Amount: 301, PlayerIDs: []int{1, 2, 3}}}

	winnings := bm.DistributeWinnings([][]int{{1, 2, 3}}, pots)

	if !reflect.DeepEqual(winnings, map[int]int{1: 101, 2: 100, 3: 100}) {
		t.Errorf("Expected the odd chip to go first-listed, got %v", winnings)
	}
}

func TestDistributeWinningsMultiplePots(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	pots := []SidePot{
		{Amount: 300, PlayerIDs: []int{1, 2, 3}},
		{Amount: 200, PlayerIDs: []int{2, 3}},
	}

	winnings := bm.DistributeWinnings([][]int{{2}, {3}}, pots)

	if !reflect.DeepEqual(winnings, map[int]int{2: 300, 3: 200}) {
		t.Errorf("Expected per-pot payouts, got %v", winnings)
	}
}

func TestDistributeWinningsSkipsEmptyWinnerLists(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	pots := []SidePot{
		{Amount: 100, PlayerIDs: []int{1, 2}},
		{Amount: 50, PlayerIDs: []int{1}},
	}

	winnings := bm.DistributeWinnings([][]int{{}, {1}}, pots)

	if !reflect.DeepEqual(winnings, map[int]int{1: 50}) {
		t.Errorf("Expected the unclaimed pot skipped, got %v", winnings)
	}
}

func TestDistributeWinningsIgnoresExtraPairs(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()

	onePot := []SidePot{{Amount: 100, PlayerIDs: []int{1}}}
	winnings := bm.DistributeWinnings([][]int{{1}, {2}}, onePot)
	if !reflect.DeepEqual(winnings, map[int]int{1: 100}) {
		t.Errorf("Extra winner lists must be ignored, got %v", winnings)
	}

	twoPots := []SidePot{{Amount: 100, PlayerIDs: []int{1}}, {Amount: 200, PlayerIDs: []int{2}}}
	winnings = bm.DistributeWinnings([][]int{{1}}, twoPots)
	if !reflect.DeepEqual(winnings, map[int]int{1: 100}) {
		t.Errorf("Pots without winner lists must be ignored, got %v", winnings)
	}
}

func TestClearPots(t *testing.T) {
	t.Parallel()
	bm := NewBettingManager()
	bm.mainPot = 100
	bm.sidePots = []SidePot{{Amount: 50, PlayerIDs: []int{1}}}

	bm.ClearPots()

	if bm.TotalPot() != 0 {
		t.Errorf("Expected empty pots, got %d", bm.TotalPot())
	}
}
