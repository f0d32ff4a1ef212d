package sim

import (
	"fmt"
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// newTestGame builds a game with 5/10 blinds and starts the first hand.
// The dealer button lands on seat 1, so three-handed the small blind is
// seat 2, the big blind seat 0, and seat 1 opens the action.
func newTestGame(t *testing.T, chips ...int) *game.Game {
	t.Helper()
	players := make([]*game.Player, len(chips))
	for i, c := range chips {
		players[i] = game.NewPlayer(i, fmt.Sprintf("Player%d", i), c)
	}
	g := game.NewGame(players, 5, 10, randutil.New(1))
	g.StartNewHand()
	return g
}

func actionSet(valid []ValidAction) map[game.Action]ValidAction {
	m := make(map[game.Action]ValidAction, len(valid))
	for _, va := range valid {
		m[va.Action] = va
	}
	return m
}

func TestValidActionsPreflopOpener(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	if g.CurrentPlayer() != 1 {
		t.Fatalf("Expected seat 1 to open, got seat %d", g.CurrentPlayer())
	}

	actions := actionSet(ValidActionsFor(g, 1))

	if _, ok := actions[game.Fold]; !ok {
		t.Error("Expected fold to be valid")
	}
	if _, ok := actions[game.Check]; ok {
		t.Error("Expected no check while owing the big blind")
	}
	if _, ok := actions[game.Bet]; ok {
		t.Error("Expected no bet while a bet is already live")
	}
	if _, ok := actions[game.AllIn]; !ok {
		t.Error("Expected all-in to be valid")
	}

	call, ok := actions[game.Call]
	if !ok {
		t.Fatal("Expected call to be valid")
	}
	if call.Min != 10 || call.Max != 10 {
		t.Errorf("Expected call bounds 10/10, got %d/%d", call.Min, call.Max)
	}

	raise, ok := actions[game.Raise]
	if !ok {
		t.Fatal("Expected raise to be valid")
	}
	if raise.Min != 20 {
		t.Errorf("Expected minimum raise 20, got %d", raise.Min)
	}
	if raise.Max != 1000 {
		t.Errorf("Expected maximum raise 1000, got %d", raise.Max)
	}
}

func TestValidActionsBigBlindOption(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	if !g.ProcessAction(1, game.Call, 0) {
		t.Fatal("Expected seat 1 call to succeed")
	}
	if !g.ProcessAction(2, game.Call, 0) {
		t.Fatal("Expected seat 2 call to succeed")
	}

	actions := actionSet(ValidActionsFor(g, 0))

	if _, ok := actions[game.Check]; !ok {
		t.Error("Expected the big blind to have the check option")
	}
	if _, ok := actions[game.Call]; ok {
		t.Error("Expected no call when already matching the bet")
	}

	raise, ok := actions[game.Raise]
	if !ok {
		t.Fatal("Expected the big blind to be able to raise its option")
	}
	if raise.Min != 20 || raise.Max != 1000 {
		t.Errorf("Expected raise bounds 20/1000, got %d/%d", raise.Min, raise.Max)
	}
}

func TestValidActionsPostflopOpener(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	g.ProcessAction(1, game.Call, 0)
	g.ProcessAction(2, game.Call, 0)
	g.ProcessAction(0, game.Check, 0)
	if !g.IsBettingRoundComplete() {
		t.Fatal("Expected preflop betting to be complete")
	}
	g.AdvancePhase()
	if g.Phase() != game.Flop {
		t.Fatalf("Expected flop, got %s", g.Phase())
	}

	idx := g.CurrentPlayer()
	if idx != 2 {
		t.Fatalf("Expected seat 2 to open the flop, got seat %d", idx)
	}

	actions := actionSet(ValidActionsFor(g, idx))

	if _, ok := actions[game.Check]; !ok {
		t.Error("Expected check with no live bet")
	}
	if _, ok := actions[game.Call]; ok {
		t.Error("Expected no call with no live bet")
	}
	if _, ok := actions[game.Raise]; ok {
		t.Error("Expected no raise with no live bet")
	}

	bet, ok := actions[game.Bet]
	if !ok {
		t.Fatal("Expected bet to be valid")
	}
	if bet.Min != 10 {
		t.Errorf("Expected minimum bet 10, got %d", bet.Min)
	}
	if bet.Max != 990 {
		t.Errorf("Expected maximum bet 990, got %d", bet.Max)
	}
}

func TestValidActionsShortStackCannotRaise(t *testing.T) {
	// Heads-up with 30-chip stacks: seat 1 takes the button and small
	// blind, seat 0 the big blind and first action.
	g := newTestGame(t, 30, 30)
	if !g.ProcessAction(0, game.Raise, 20) {
		t.Fatal("Expected big blind raise to 20 to succeed")
	}

	actions := actionSet(ValidActionsFor(g, 1))

	call, ok := actions[game.Call]
	if !ok {
		t.Fatal("Expected call to be valid")
	}
	if call.Min != 15 {
		t.Errorf("Expected call amount 15, got %d", call.Min)
	}
	if _, ok := actions[game.Raise]; ok {
		t.Error("Expected no raise when the stack cannot reach the minimum")
	}
	if _, ok := actions[game.AllIn]; !ok {
		t.Error("Expected all-in to remain valid")
	}
}

func TestValidActionsFoldedPlayer(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	if !g.ProcessAction(1, game.Fold, 0) {
		t.Fatal("Expected fold to succeed")
	}
	if valid := ValidActionsFor(g, 1); valid != nil {
		t.Errorf("Expected no actions for a folded player, got %v", valid)
	}
}

func TestNewPolicyKnownNames(t *testing.T) {
	rng := randutil.New(1)
	for _, name := range PolicyNames() {
		p, err := NewPolicy(name, rng)
		if err != nil {
			t.Errorf("Expected policy %q to construct, got error: %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("Expected policy name %q, got %q", name, p.Name())
		}
	}
}

func TestNewPolicyUnknownName(t *testing.T) {
	_, err := NewPolicy("gto", randutil.New(1))
	if err == nil {
		t.Fatal("Expected an error for an unknown policy name")
	}
	if got := err.Error(); got != `sim: unknown policy "gto"` {
		t.Errorf("Expected unknown policy error, got %q", got)
	}
}

func TestCallPolicyPrefersCheck(t *testing.T) {
	p := NewCallPolicy()
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Check},
		{Action: game.Bet, Min: 10, Max: 100},
		{Action: game.AllIn},
	}
	if dec := p.Decide(nil, 0, valid); dec.Action != game.Check {
		t.Errorf("Expected check, got %s", dec.Action)
	}
}

func TestCallPolicyCallsWhenOwed(t *testing.T) {
	p := NewCallPolicy()
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 15, Max: 15},
		{Action: game.AllIn},
	}
	if dec := p.Decide(nil, 0, valid); dec.Action != game.Call {
		t.Errorf("Expected call, got %s", dec.Action)
	}
}

func TestCallPolicyFoldsWithoutOptions(t *testing.T) {
	p := NewCallPolicy()
	if dec := p.Decide(nil, 0, nil); dec.Action != game.Fold {
		t.Errorf("Expected fold, got %s", dec.Action)
	}
}

func TestFoldPolicyChecksWhenFree(t *testing.T) {
	p := NewFoldPolicy()
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Check},
		{Action: game.Bet, Min: 10, Max: 100},
	}
	if dec := p.Decide(nil, 0, valid); dec.Action != game.Check {
		t.Errorf("Expected check, got %s", dec.Action)
	}
}

func TestFoldPolicyFoldsToBets(t *testing.T) {
	p := NewFoldPolicy()
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 10, Max: 10},
		{Action: game.AllIn},
	}
	if dec := p.Decide(nil, 0, valid); dec.Action != game.Fold {
		t.Errorf("Expected fold, got %s", dec.Action)
	}
}

func TestRandPolicyStaysWithinMenu(t *testing.T) {
	p := NewRandPolicy(randutil.New(42))
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Check},
		{Action: game.Bet, Min: 10, Max: 100},
		{Action: game.AllIn},
	}

	seen := make(map[game.Action]int)
	for i := 0; i < 200; i++ {
		dec := p.Decide(nil, 0, valid)
		if _, ok := findAction(valid, dec.Action); !ok {
			t.Fatalf("Decision %s is not on the menu", dec.Action)
		}
		if dec.Action == game.Bet && (dec.Amount < 10 || dec.Amount > 100) {
			t.Fatalf("Bet amount %d outside 10..100", dec.Amount)
		}
		seen[dec.Action]++
	}

	for _, va := range valid {
		if seen[va.Action] == 0 {
			t.Errorf("Expected action %s to be chosen at least once in 200 decisions", va.Action)
		}
	}
}

func TestManiacPolicyShovesShortStacks(t *testing.T) {
	g := newTestGame(t, 100, 100)
	p := NewManiacPolicy(randutil.New(42))
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Check},
		{Action: game.Bet, Min: 10, Max: 90},
		{Action: game.AllIn},
	}

	allIns := 0
	for i := 0; i < 200; i++ {
		dec := p.Decide(g, 0, valid)
		switch dec.Action {
		case game.AllIn:
			allIns++
		case game.Check:
		default:
			t.Fatalf("Expected only shoves or checks from a short stack, got %s", dec.Action)
		}
	}
	if allIns < 100 {
		t.Errorf("Expected a short stack to shove most of the time, got %d/200", allIns)
	}
}

func TestManiacPolicyPressuresFacingBets(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	p := NewManiacPolicy(randutil.New(7))
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 10, Max: 10},
		{Action: game.Raise, Min: 20, Max: 1000},
		{Action: game.AllIn},
	}

	counts := make(map[game.Action]int)
	for i := 0; i < 200; i++ {
		dec := p.Decide(g, 1, valid)
		if _, ok := findAction(valid, dec.Action); !ok {
			t.Fatalf("Decision %s is not on the menu", dec.Action)
		}
		counts[dec.Action]++
	}

	aggressive := counts[game.AllIn] + counts[game.Raise]
	if aggressive == 0 || counts[game.Call] == 0 || counts[game.Fold] == 0 {
		t.Errorf("Expected a mix of aggression, calls and folds, got %v", counts)
	}
}

func TestManiacPolicyRaisesTheMaximum(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	p := NewManiacPolicy(randutil.New(3))
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 10, Max: 10},
		{Action: game.Raise, Min: 40, Max: 200},
	}

	sawRaise := false
	for i := 0; i < 200; i++ {
		dec := p.Decide(g, 1, valid)
		if dec.Action != game.Raise {
			continue
		}
		sawRaise = true
		if dec.Amount != 200 {
			t.Fatalf("Expected maniac raises to take the maximum 200, got %d", dec.Amount)
		}
	}
	if !sawRaise {
		t.Error("Expected at least one raise in 200 decisions")
	}
}

func TestTagPolicyRaisesPremiumHands(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	g.Player(1).HoleCards = deck.MustParseCards("As Ah")
	p := NewTagPolicy(randutil.New(1))
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 10, Max: 10},
		{Action: game.Raise, Min: 20, Max: 1000},
		{Action: game.AllIn},
	}

	dec := p.Decide(g, 1, valid)
	if dec.Action != game.Raise {
		t.Fatalf("Expected aces to raise, got %s", dec.Action)
	}
	if dec.Amount != 265 {
		t.Errorf("Expected a raise to 265, got %d", dec.Amount)
	}
}

func TestTagPolicyCallsPlayableHands(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	g.Player(1).HoleCards = deck.MustParseCards("8s 8h")
	p := NewTagPolicy(randutil.New(1))
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 10, Max: 10},
		{Action: game.Raise, Min: 20, Max: 1000},
		{Action: game.AllIn},
	}

	if dec := p.Decide(g, 1, valid); dec.Action != game.Call {
		t.Errorf("Expected a middling pair to call, got %s", dec.Action)
	}
}

func TestTagPolicyFoldsTrashToABet(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	g.Player(1).HoleCards = deck.MustParseCards("7h 2s")
	p := NewTagPolicy(randutil.New(1))
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 10, Max: 10},
		{Action: game.Raise, Min: 20, Max: 1000},
		{Action: game.AllIn},
	}

	if dec := p.Decide(g, 1, valid); dec.Action != game.Fold {
		t.Errorf("Expected seven-deuce to fold, got %s", dec.Action)
	}
}

func TestTagPolicyChecksTrashWhenFree(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	g.Player(0).HoleCards = deck.MustParseCards("7h 2s")
	p := NewTagPolicy(randutil.New(1))
	valid := []ValidAction{
		{Action: game.Fold},
		{Action: game.Check},
		{Action: game.Raise, Min: 20, Max: 1000},
		{Action: game.AllIn},
	}

	if dec := p.Decide(g, 0, valid); dec.Action != game.Check {
		t.Errorf("Expected seven-deuce to take the free option, got %s", dec.Action)
	}
}
