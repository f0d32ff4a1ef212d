package game

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
)

// Player holds one seat's chip stack and per-hand betting state. The
// money operations are the only way chips move: Bet and Call move chips
// into the current bet, AddChips credits winnings, and nothing else
// touches the stack.
//
// CurrentBet is the amount committed to the betting round in progress
// and resets each round; TotalBet accumulates across the whole hand and
// drives side-pot partitioning.
type Player struct {
	ID         int
	Name       string
	Chips      int
	HoleCards  []deck.Card
	CurrentBet int
	TotalBet   int
	Folded     bool
	AllIn      bool
	SittingOut bool
}

// NewPlayer creates a player with a starting stack. Negative chips or a
// blank name is a caller bug.
func NewPlayer(id int, name string, chips int) *Player {
	if chips < 0 {
		panic(fmt.Sprintf("game: invalid chip count %d", chips))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		panic("game: player name cannot be empty")
	}

	return &Player{ID: id, Name: name, Chips: chips}
}

// DealHoleCards gives the player their two private cards. The slice is
// copied so later deck state cannot alias into the hand.
func (p *Player) DealHoleCards(cards []deck.Card) {
	if len(cards) != 2 {
		panic(fmt.Sprintf("game: must deal exactly 2 hole cards, got %d", len(cards)))
	}
	p.HoleCards = make([]deck.Card, 2)
	copy(p.HoleCards, cards)
}

// Bet commits up to amount chips, capped at the stack, and returns the
// amount actually moved. Betting the whole stack marks the player
// all-in. Non-positive amounts and bets by folded, all-in, or
// sitting-out players are contract violations.
func (p *Player) Bet(amount int) int {
	if amount <= 0 {
		panic(fmt.Sprintf("game: bet amount must be positive, got %d", amount))
	}
	if p.Folded {
		panic("game: folded player cannot bet")
	}
	if p.AllIn {
		panic("game: all-in player cannot bet more")
	}
	if p.SittingOut {
		panic("game: sitting-out player cannot bet")
	}

	actual := min(amount, p.Chips)
	p.Chips -= actual
	p.CurrentBet += actual
	p.TotalBet += actual
	p.AllIn = p.Chips == 0
	return actual
}

// Call matches the table's bet level, paying only the shortfall between
// the player's round bet and callAmount, capped at the stack. A player
// who already matches the level pays nothing. Negative amounts and
// calls by folded or sitting-out players are contract violations.
func (p *Player) Call(callAmount int) int {
	if callAmount < 0 {
		panic(fmt.Sprintf("game: call amount cannot be negative, got %d", callAmount))
	}
	if p.Folded {
		panic("game: folded player cannot call")
	}
	if p.SittingOut {
		panic("game: sitting-out player cannot call")
	}

	needed := max(0, callAmount-p.CurrentBet)
	actual := min(needed, p.Chips)
	p.Chips -= actual
	p.CurrentBet += actual
	p.TotalBet += actual
	p.AllIn = p.Chips == 0
	return actual
}

// Fold removes the player from the hand. Folding twice or while sitting
// out is a contract violation.
func (p *Player) Fold() {
	if p.Folded {
		panic("game: player already folded")
	}
	if p.SittingOut {
		panic("game: sitting-out player cannot fold")
	}
	p.Folded = true
}

// Check verifies the player may decline to bet. It moves no chips; the
// point is the contract: folded, all-in, and sitting-out players have
// no checking rights.
func (p *Player) Check() {
	if p.Folded {
		panic("game: folded player cannot check")
	}
	if p.AllIn {
		panic("game: all-in player cannot check")
	}
	if p.SittingOut {
		panic("game: sitting-out player cannot check")
	}
}

// GoAllIn commits the entire remaining stack and returns it. A folded
// or empty-stacked player going all-in is a contract violation; callers
// route zero-chip cases through BettingManager.ProcessAllIn, which
// rejects them gracefully.
func (p *Player) GoAllIn() int {
	if p.Folded {
		panic("game: folded player cannot go all-in")
	}
	if p.Chips <= 0 {
		panic("game: player has no chips to go all-in")
	}
	return p.Bet(p.Chips)
}

// AddChips credits winnings. Zero or negative credits are caller bugs.
func (p *Player) AddChips(amount int) {
	if amount <= 0 {
		panic(fmt.Sprintf("game: cannot add non-positive chips: %d", amount))
	}
	p.Chips += amount
}

// ResetForHand clears per-hand state. Sitting out persists across
// hands; it is a table-level condition, not a hand-level one.
func (p *Player) ResetForHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBet = 0
	p.AllIn = false
	p.Folded = false
}

// ResetCurrentBet zeroes the per-round commitment at the start of a new
// betting round. TotalBet is untouched.
func (p *Player) ResetCurrentBet() {
	p.CurrentBet = 0
}

// CanAct reports whether the player may take a voluntary action.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && !p.SittingOut
}

// HasChips reports whether any stack remains.
func (p *Player) HasChips() bool {
	return p.Chips > 0
}

// IsActive reports whether the player is still contesting the hand.
// All-in players remain active; they can win but cannot act.
func (p *Player) IsActive() bool {
	return !p.Folded && !p.SittingOut
}

// SitOut marks the player away from the table.
func (p *Player) SitOut() {
	p.SittingOut = true
}

// SitIn returns the player to the table.
func (p *Player) SitIn() {
	p.SittingOut = false
}

func (p *Player) String() string {
	var status []string
	if p.Folded {
		status = append(status, "FOLDED")
	}
	if p.AllIn {
		status = append(status, "ALL-IN")
	}
	if p.SittingOut {
		status = append(status, "SITTING OUT")
	}

	s := fmt.Sprintf("%s: $%d", p.Name, p.Chips)
	if len(status) > 0 {
		s += " (" + strings.Join(status, ", ") + ")"
	}
	return s
}
