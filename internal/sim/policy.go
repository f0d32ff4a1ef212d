package sim

import (
	"fmt"
	"math/rand"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
)

// ValidAction is one legal move for the acting player. Min and Max
// bound the amount where the action takes one: the chips owed for a
// call, the opening sizes for a bet, the reachable levels for a raise.
type ValidAction struct {
	Action game.Action
	Min    int
	Max    int
}

// Decision is a policy's chosen move. Amount is the chips to put in
// for a bet and the level to reach for a raise; other actions ignore
// it.
type Decision struct {
	Action game.Action
	Amount int
}

// Policy picks one of the valid actions for the player to act.
// Policies are scripted table occupants, not opponents worth beating:
// they exist to push varied, legal action through the engine.
type Policy interface {
	Name() string
	Decide(g *game.Game, playerIdx int, valid []ValidAction) Decision
}

// NewPolicy returns the named policy. Policies that randomize share the
// table's random source so runs stay reproducible under one seed.
func NewPolicy(name string, rng *rand.Rand) (Policy, error) {
	switch name {
	case "call":
		return NewCallPolicy(), nil
	case "fold":
		return NewFoldPolicy(), nil
	case "rand":
		return NewRandPolicy(rng), nil
	case "maniac":
		return NewManiacPolicy(rng), nil
	case "tag":
		return NewTagPolicy(rng), nil
	default:
		return nil, fmt.Errorf("sim: unknown policy %q", name)
	}
}

// PolicyNames lists the accepted policy names.
func PolicyNames() []string {
	return []string{"call", "fold", "maniac", "rand", "tag"}
}

// ValidActionsFor enumerates the legal moves for the player, with
// amount bounds. A player who cannot act has no moves. The big blind's
// option appears as a Check even though a bet is live.
func ValidActionsFor(g *game.Game, playerIdx int) []ValidAction {
	p := g.Player(playerIdx)
	bm := g.Betting()
	if !p.CanAct() {
		return nil
	}

	var actions []ValidAction
	bet := bm.CurrentBet()

	actions = append(actions, ValidAction{Action: game.Fold})
	if bm.CanPlayerCheck(p) || (bet > 0 && p.CurrentBet == bet) {
		actions = append(actions, ValidAction{Action: game.Check})
	}
	if bm.CanPlayerCall(p) {
		owed := bm.CallAmount(p)
		actions = append(actions, ValidAction{Action: game.Call, Min: owed, Max: owed})
	}
	if bm.CanPlayerBet(p) {
		minBet := max(1, min(g.BigBlind(), p.Chips))
		actions = append(actions, ValidAction{Action: game.Bet, Min: minBet, Max: p.Chips})
	}
	if bet > 0 && p.Chips > bm.CallAmount(p) && p.CurrentBet+p.Chips >= bm.MinimumRaise() {
		actions = append(actions, ValidAction{
			Action: game.Raise,
			Min:    bm.MinimumRaise(),
			Max:    p.CurrentBet + p.Chips,
		})
	}
	if p.HasChips() {
		actions = append(actions, ValidAction{Action: game.AllIn})
	}
	return actions
}

func findAction(valid []ValidAction, action game.Action) (ValidAction, bool) {
	for _, va := range valid {
		if va.Action == action {
			return va, true
		}
	}
	return ValidAction{}, false
}

// CallPolicy checks when it can and calls when it must. It never
// initiates betting, so a table of callers checks down to showdown.
type CallPolicy struct{}

// NewCallPolicy creates a call policy.
func NewCallPolicy() *CallPolicy { return &CallPolicy{} }

func (c *CallPolicy) Name() string { return "call" }

func (c *CallPolicy) Decide(_ *game.Game, _ int, valid []ValidAction) Decision {
	if _, ok := findAction(valid, game.Check); ok {
		return Decision{Action: game.Check}
	}
	if _, ok := findAction(valid, game.Call); ok {
		return Decision{Action: game.Call}
	}
	return Decision{Action: game.Fold}
}

// FoldPolicy folds to any bet and checks when checking is free.
type FoldPolicy struct{}

// NewFoldPolicy creates a fold policy.
func NewFoldPolicy() *FoldPolicy { return &FoldPolicy{} }

func (f *FoldPolicy) Name() string { return "fold" }

func (f *FoldPolicy) Decide(_ *game.Game, _ int, valid []ValidAction) Decision {
	if _, ok := findAction(valid, game.Check); ok {
		return Decision{Action: game.Check}
	}
	return Decision{Action: game.Fold}
}

// RandPolicy picks a uniform random legal action, with a uniform
// random amount for bets and raises.
type RandPolicy struct {
	rng *rand.Rand
}

// NewRandPolicy creates a random policy over the given source.
func NewRandPolicy(rng *rand.Rand) *RandPolicy { return &RandPolicy{rng: rng} }

func (r *RandPolicy) Name() string { return "rand" }

func (r *RandPolicy) Decide(_ *game.Game, _ int, valid []ValidAction) Decision {
	if len(valid) == 0 {
		return Decision{Action: game.Fold}
	}

	va := valid[r.rng.Intn(len(valid))]
	amount := va.Min
	if (va.Action == game.Bet || va.Action == game.Raise) && va.Max > va.Min {
		amount = va.Min + r.rng.Intn(va.Max-va.Min+1)
	}
	return Decision{Action: va.Action, Amount: amount}
}

// ManiacPolicy bets and raises relentlessly: it shoves short stacks,
// raises near the top of the range otherwise, and folds only a fifth
// of the time when facing a bet it will not shove over.
type ManiacPolicy struct {
	rng *rand.Rand
}

// NewManiacPolicy creates a maniac policy over the given source.
func NewManiacPolicy(rng *rand.Rand) *ManiacPolicy { return &ManiacPolicy{rng: rng} }

func (m *ManiacPolicy) Name() string { return "maniac" }

func (m *ManiacPolicy) Decide(g *game.Game, playerIdx int, valid []ValidAction) Decision {
	p := g.Player(playerIdx)
	raise, canRaise := findAction(valid, game.Raise)
	bet, canBet := findAction(valid, game.Bet)
	_, canCheck := findAction(valid, game.Check)
	_, canCall := findAction(valid, game.Call)
	_, canShove := findAction(valid, game.AllIn)

	if canCheck {
		if m.rng.Float64() < 0.85 {
			shortStack := p.Chips <= 20*g.BigBlind()
			if (shortStack || m.rng.Float64() < 0.3) && canShove {
				return Decision{Action: game.AllIn}
			}
			if canRaise {
				return Decision{Action: game.Raise, Amount: raise.Min + (raise.Max-raise.Min)*3/4}
			}
			if canBet {
				return Decision{Action: game.Bet, Amount: bet.Min + (bet.Max-bet.Min)*3/4}
			}
		}
		return Decision{Action: game.Check}
	}

	r := m.rng.Float64()
	if r < 0.4 {
		if canShove {
			return Decision{Action: game.AllIn}
		}
		if canRaise {
			return Decision{Action: game.Raise, Amount: raise.Max}
		}
	}
	if r < 0.8 && canCall {
		return Decision{Action: game.Call}
	}
	return Decision{Action: game.Fold}
}

// TagPolicy plays tight and aggressive: premium starting hands raise,
// playable ones see the flop, everything else folds to pressure.
// Postflop it bets when the hole cards improve on the board and backs
// off when they do not.
type TagPolicy struct {
	rng *rand.Rand
}

// NewTagPolicy creates a tight-aggressive policy over the given source.
func NewTagPolicy(rng *rand.Rand) *TagPolicy { return &TagPolicy{rng: rng} }

func (t *TagPolicy) Name() string { return "tag" }

func (t *TagPolicy) Decide(g *game.Game, playerIdx int, valid []ValidAction) Decision {
	p := g.Player(playerIdx)
	if g.Phase() == game.Preflop {
		return t.decidePreflop(p, valid)
	}
	return t.decidePostflop(g, p, valid)
}

func (t *TagPolicy) decidePreflop(p *game.Player, valid []ValidAction) Decision {
	pct := deck.StartingHandPercentile(p.HoleCards)

	if pct >= 0.90 {
		if raise, ok := findAction(valid, game.Raise); ok {
			return Decision{Action: game.Raise, Amount: raise.Min + (raise.Max-raise.Min)/4}
		}
		if _, ok := findAction(valid, game.Call); ok {
			return Decision{Action: game.Call}
		}
	}
	if pct >= 0.70 {
		if _, ok := findAction(valid, game.Call); ok {
			return Decision{Action: game.Call}
		}
	}
	if _, ok := findAction(valid, game.Check); ok {
		return Decision{Action: game.Check}
	}
	return Decision{Action: game.Fold}
}

func (t *TagPolicy) decidePostflop(g *game.Game, p *game.Player, valid []ValidAction) Decision {
	improved := false
	board := g.Board()
	if len(p.HoleCards) == 2 && len(board) >= 3 {
		seven := make([]deck.Card, 0, len(board)+2)
		seven = append(seven, p.HoleCards...)
		seven = append(seven, board...)
		improved = evaluator.Evaluate(seven) < evaluator.Evaluate(board)
	}

	if improved {
		if bet, ok := findAction(valid, game.Bet); ok {
			return Decision{Action: game.Bet, Amount: clamp(g.Pot()*2/3, bet.Min, bet.Max)}
		}
		if raise, ok := findAction(valid, game.Raise); ok && t.rng.Float64() < 0.5 {
			return Decision{Action: game.Raise, Amount: raise.Min}
		}
		if _, ok := findAction(valid, game.Call); ok {
			return Decision{Action: game.Call}
		}
	}

	if _, ok := findAction(valid, game.Check); ok {
		return Decision{Action: game.Check}
	}
	if t.rng.Float64() < 0.3 {
		if _, ok := findAction(valid, game.Call); ok {
			return Decision{Action: game.Call}
		}
	}
	return Decision{Action: game.Fold}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
