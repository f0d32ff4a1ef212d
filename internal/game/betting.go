package game

// BetRecord is one entry in the append-only betting history: who acted,
// what they did, the chips that moved, and their running investment for
// the hand after the action.
type BetRecord struct {
	PlayerID   int
	Action     Action
	Amount     int
	Investment int
}

// BettingManager owns the money side of one hand: the pot, the table
// bet level to match, per-player investments, and the action history.
// Operations return the chips actually moved; a return of 0 from the
// Process methods means the action was rejected and nothing changed.
// Contract violations (folded players betting, non-positive amounts)
// panic from inside Player's money operations.
type BettingManager struct {
	mainPot     int
	sidePots    []SidePot
	currentBet  int
	investments map[int]int
	history     []BetRecord
}

// NewBettingManager creates an empty engine ready for a hand.
func NewBettingManager() *BettingManager {
	return &BettingManager{
		investments: make(map[int]int),
	}
}

// StartNewHand clears every pot, the bet level, investments, and the
// history.
func (bm *BettingManager) StartNewHand() {
	bm.mainPot = 0
	bm.sidePots = bm.sidePots[:0]
	bm.currentBet = 0
	bm.history = bm.history[:0]
	clear(bm.investments)
}

// StartNewBettingRound resets only the bet level; pots and investments
// carry across rounds within a hand. Callers reset each player's
// round bet alongside this.
func (bm *BettingManager) StartNewBettingRound() {
	bm.currentBet = 0
}

// PostBlind forces a blind bet, capped at the player's stack, and
// returns the amount actually posted. Blinds are the first money in, so
// the player's investment is assigned rather than accumulated. A blind
// of 0 posts nothing but is still recorded, so zero-blind games work.
func (bm *BettingManager) PostBlind(p *Player, amount int, isBigBlind bool) int {
	actual := 0
	if amount > 0 {
		actual = p.Bet(amount)
	}

	bm.mainPot += actual
	bm.currentBet = max(bm.currentBet, actual)
	bm.investments[p.ID] = actual

	kind := SmallBlind
	if isBigBlind {
		kind = BigBlind
	}
	bm.record(p.ID, kind, actual)
	return actual
}

// ProcessFold marks the player folded and records it. Folding is always
// legal for a live player.
func (bm *BettingManager) ProcessFold(p *Player) {
	p.Fold()
	bm.record(p.ID, Fold, 0)
}

// ProcessCheck records a check, or returns false when there is a bet to
// match.
func (bm *BettingManager) ProcessCheck(p *Player) bool {
	if bm.currentBet > 0 {
		return false
	}

	p.Check()
	bm.record(p.ID, Check, 0)
	return true
}

// ProcessCall matches the table bet, paying only the player's
// shortfall, and returns the chips moved. Returns 0 without side
// effects when there is no bet to call. A player already matching the
// bet calls for 0, which still counts as acting and is recorded.
func (bm *BettingManager) ProcessCall(p *Player) int {
	if bm.currentBet == 0 {
		return 0
	}

	actual := p.Call(bm.currentBet)
	bm.mainPot += actual
	bm.addInvestment(p.ID, actual)
	bm.record(p.ID, Call, actual)
	return actual
}

// ProcessBet opens the betting. Returns 0 when a bet already exists
// (use ProcessRaise). The table bet level becomes the amount actually
// paid, which a short stack caps.
func (bm *BettingManager) ProcessBet(p *Player, amount int) int {
	if bm.currentBet > 0 {
		return 0
	}

	actual := p.Bet(amount)
	bm.mainPot += actual
	bm.currentBet = actual
	bm.addInvestment(p.ID, actual)
	bm.record(p.ID, Bet, actual)
	return actual
}

// ProcessRaise raises the table bet to raiseTo, charging the call and
// the additional raise as one combined action, and returns the total
// chips moved. Returns 0 when there is no bet to raise or raiseTo does
// not exceed it. The new table bet is the player's actual round total:
// a short stack that cannot reach raiseTo moves the bet only to what it
// could pay.
func (bm *BettingManager) ProcessRaise(p *Player, raiseTo int) int {
	if bm.currentBet == 0 {
		return 0
	}
	if raiseTo <= bm.currentBet {
		return 0
	}

	actualCall := p.Call(bm.currentBet)
	actualRaise := p.Bet(raiseTo - bm.currentBet)
	total := actualCall + actualRaise

	bm.mainPot += total
	bm.currentBet = p.CurrentBet
	bm.addInvestment(p.ID, total)
	bm.record(p.ID, Raise, total)
	return total
}

// ProcessAllIn commits the player's whole stack and returns it. Returns
// 0 for an empty stack. The table bet rises only when the player's
// round total exceeds it; a short all-in under the bet level changes
// nothing for the other players.
func (bm *BettingManager) ProcessAllIn(p *Player) int {
	if p.Chips == 0 {
		return 0
	}

	amount := p.GoAllIn()
	bm.mainPot += amount
	if p.CurrentBet > bm.currentBet {
		bm.currentBet = p.CurrentBet
	}
	bm.addInvestment(p.ID, amount)
	bm.record(p.ID, AllIn, amount)
	return amount
}

// CanPlayerCheck reports whether checking is legal: no bet pending and
// the player may act.
func (bm *BettingManager) CanPlayerCheck(p *Player) bool {
	return bm.currentBet == 0 && p.CanAct()
}

// CanPlayerCall reports whether calling would move chips: a bet exists
// and the player is below it.
func (bm *BettingManager) CanPlayerCall(p *Player) bool {
	return bm.currentBet > 0 && p.CanAct() && p.CurrentBet < bm.currentBet
}

// CanPlayerBet reports whether opening a bet is legal.
func (bm *BettingManager) CanPlayerBet(p *Player) bool {
	return bm.currentBet == 0 && p.CanAct() && p.HasChips()
}

// CanPlayerRaise reports whether raising is legal. This is the strict
// engine-level view requiring the player to be under the current bet;
// the state machine separately allows the big blind to raise their own
// option.
func (bm *BettingManager) CanPlayerRaise(p *Player) bool {
	return bm.currentBet > 0 && p.CanAct() && p.HasChips() && p.CurrentBet < bm.currentBet
}

// MinimumRaise returns the smallest legal raise target, twice the
// current bet, or 0 when there is no bet to raise.
func (bm *BettingManager) MinimumRaise() int {
	if bm.currentBet == 0 {
		return 0
	}
	return bm.currentBet * 2
}

// CallAmount returns the chips the player would owe to call.
func (bm *BettingManager) CallAmount(p *Player) int {
	return max(0, bm.currentBet-p.CurrentBet)
}

// IsBettingCapped reports whether no further betting can occur: at most
// one active player still holds chips and is not all-in.
func (bm *BettingManager) IsBettingCapped(players []*Player) bool {
	withChips := 0
	for _, p := range players {
		if p.IsActive() && p.HasChips() && !p.AllIn {
			withChips++
		}
	}
	return withChips <= 1
}

// TotalPot returns all chips at stake.
func (bm *BettingManager) TotalPot() int {
	total := bm.mainPot
	for _, sp := range bm.sidePots {
		total += sp.Amount
	}
	return total
}

// CurrentBet returns the table bet level for this round.
func (bm *BettingManager) CurrentBet() int {
	return bm.currentBet
}

// PlayerInvestment returns the chips the player has put in this hand.
func (bm *BettingManager) PlayerInvestment(playerID int) int {
	return bm.investments[playerID]
}

// History returns a copy of the betting history. The engine's log is
// append-only; mutating the returned slice affects nothing.
func (bm *BettingManager) History() []BetRecord {
	out := make([]BetRecord, len(bm.history))
	copy(out, bm.history)
	return out
}

// PotInfo is a read-only snapshot of pot state for display layers.
type PotInfo struct {
	MainPot    int
	SidePots   int
	TotalPot   int
	CurrentBet int
	Details    []SidePot
}

// PotInfo snapshots the pot state.
func (bm *BettingManager) PotInfo() PotInfo {
	details := make([]SidePot, len(bm.sidePots))
	copy(details, bm.sidePots)
	return PotInfo{
		MainPot:    bm.mainPot,
		SidePots:   len(bm.sidePots),
		TotalPot:   bm.TotalPot(),
		CurrentBet: bm.currentBet,
		Details:    details,
	}
}

// ActionSummary aggregates the betting history for reporting.
type ActionSummary struct {
	TotalActions  int
	ByAction      map[Action]int
	TotalInvested int
	AverageAction float64
}

// ActionSummary tallies the history by action kind.
func (bm *BettingManager) ActionSummary() ActionSummary {
	summary := ActionSummary{ByAction: make(map[Action]int)}
	for _, rec := range bm.history {
		summary.ByAction[rec.Action]++
		summary.TotalInvested += rec.Amount
	}
	summary.TotalActions = len(bm.history)
	if summary.TotalActions > 0 {
		summary.AverageAction = float64(summary.TotalInvested) / float64(summary.TotalActions)
	}
	return summary
}

func (bm *BettingManager) addInvestment(playerID, amount int) {
	bm.investments[playerID] += amount
}

func (bm *BettingManager) record(playerID int, action Action, amount int) {
	bm.history = append(bm.history, BetRecord{
		PlayerID:   playerID,
		Action:     action,
		Amount:     amount,
		Investment: bm.investments[playerID],
	})
}
