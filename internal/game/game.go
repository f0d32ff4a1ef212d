package game

import (
	"fmt"
	"math/rand"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// Game drives one table's hand lifecycle: blinds, hole cards, the four
// betting rounds, showdown, and pot distribution. It owns the player
// records by index, the deck, the board, and, through a BettingManager,
// all the money. A Game is not safe for concurrent use; callers
// serialize every mutation on one instance.
type Game struct {
	players    []*Player
	smallBlind int
	bigBlind   int

	deck    *deck.Deck
	board   []deck.Card
	phase   Phase
	betting *BettingManager

	dealerPos  int
	currentIdx int
	lastRaiser int // player index, -1 when nobody has raised this round
	acted      map[int]bool
}

// NewGame creates a table of 2 to 10 players with the given blinds. The
// random source feeds the deck shuffle; injecting it keeps whole hands
// reproducible under a fixed seed.
func NewGame(players []*Player, smallBlind, bigBlind int, rng *rand.Rand) *Game {
	if len(players) < 2 || len(players) > 10 {
		panic(fmt.Sprintf("game: invalid player count %d", len(players)))
	}
	if smallBlind < 0 || smallBlind > bigBlind {
		panic(fmt.Sprintf("game: invalid blinds %d/%d", smallBlind, bigBlind))
	}
	if rng == nil {
		panic("game: rng must not be nil")
	}

	return &Game{
		players:    players,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		deck:       deck.NewDeck(rng),
		phase:      Preflop,
		betting:    NewBettingManager(),
		lastRaiser: -1,
		acted:      make(map[int]bool),
	}
}

// StartNewHand resets the table for the next hand: fresh shuffled deck,
// cleared board and betting state, dealer button advanced one seat,
// blinds posted, first-to-act set three seats past the button. Heads-up
// the dealer posts the small blind and acts last preflop.
func (g *Game) StartNewHand() {
	g.deck.Reset()
	g.board = g.board[:0]
	g.phase = Preflop

	for _, p := range g.players {
		p.ResetForHand()
	}

	g.betting.StartNewHand()
	g.dealerPos = (g.dealerPos + 1) % len(g.players)
	g.postBlinds()

	g.currentIdx = (g.dealerPos + 3) % len(g.players)
	g.lastRaiser = -1
	clear(g.acted)
}

func (g *Game) postBlinds() {
	n := len(g.players)

	var sbIdx, bbIdx int
	if n == 2 {
		sbIdx = g.dealerPos
		bbIdx = (g.dealerPos + 1) % n
	} else {
		sbIdx = (g.dealerPos + 1) % n
		bbIdx = (g.dealerPos + 2) % n
	}

	g.betting.PostBlind(g.players[sbIdx], g.smallBlind, false)
	g.betting.PostBlind(g.players[bbIdx], g.bigBlind, true)
}

// DealHoleCards deals two cards to every seated player. Dealing outside
// the preflop phase is a caller bug.
func (g *Game) DealHoleCards() {
	if g.phase != Preflop {
		panic(fmt.Sprintf("game: cannot deal hole cards during %s", g.phase))
	}

	for _, p := range g.players {
		if !p.SittingOut {
			p.DealHoleCards(g.deck.Deal(2))
		}
	}
}

// AdvancePhase moves to the next street, burning and dealing as the
// street requires: three cards on the flop, one each on the turn and
// river. Entering a postflop street opens a fresh betting round: the
// bet level and every player's round bet reset, first-to-act is the
// first player past the button who can act, and the raiser and
// acted-set clear. Showdown and Finished deal nothing; advancing past
// Finished is a no-op.
func (g *Game) AdvancePhase() {
	switch g.phase {
	case Preflop:
		g.deck.DealOne()
		g.board = append(g.board, g.deck.Deal(3)...)
		g.phase = Flop
	case Flop:
		g.deck.DealOne()
		g.board = append(g.board, g.deck.DealOne())
		g.phase = Turn
	case Turn:
		g.deck.DealOne()
		g.board = append(g.board, g.deck.DealOne())
		g.phase = River
	case River:
		g.phase = Showdown
	case Showdown:
		g.phase = Finished
	}

	if g.phase == Flop || g.phase == Turn || g.phase == River {
		g.betting.StartNewBettingRound()
		for _, p := range g.players {
			p.ResetCurrentBet()
		}
		g.currentIdx = g.firstToAct()
		g.lastRaiser = -1
		clear(g.acted)
	}
}

// firstToAct scans from the seat after the button for the first player
// who can act this round.
func (g *Game) firstToAct() int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		idx := (g.dealerPos + i) % n
		if g.players[idx].CanAct() {
			return idx
		}
	}
	return (g.dealerPos + 1) % n
}

// ProcessAction applies one player action and advances the turn. Acting
// out of turn, or while folded or sitting out, is a caller bug and
// panics. Honest-but-illegal actions (checking into a live bet, betting
// over an existing bet, raising at or below it, calling nothing, going
// all-in without chips) are rejected: ProcessAction returns false and
// no state changes, so the caller can re-prompt.
//
// Checking is legal with no bet pending, or when the player's round bet
// already matches the table bet (the big blind's option). An option
// check moves through Player directly and does not appear in the
// betting history.
func (g *Game) ProcessAction(playerIdx int, action Action, amount int) bool {
	if playerIdx != g.currentIdx {
		panic(fmt.Sprintf("game: not player %d's turn", playerIdx))
	}
	p := g.players[playerIdx]
	if !p.IsActive() {
		panic(fmt.Sprintf("game: player %d is not active", playerIdx))
	}

	switch action {
	case Fold:
		g.betting.ProcessFold(p)

	case Check:
		if g.betting.CurrentBet() == 0 {
			if !g.betting.ProcessCheck(p) {
				return false
			}
		} else if p.CanAct() && p.CurrentBet == g.betting.CurrentBet() {
			p.Check()
		} else {
			return false
		}

	case Call:
		if g.betting.CurrentBet() == 0 {
			return false
		}
		g.betting.ProcessCall(p)

	case Bet:
		if !g.betting.CanPlayerBet(p) {
			return false
		}
		g.betting.ProcessBet(p, amount)
		g.lastRaiser = playerIdx

	case Raise:
		if g.betting.CurrentBet() == 0 || !p.CanAct() || !p.HasChips() {
			return false
		}
		if amount <= g.betting.CurrentBet() {
			return false
		}
		g.betting.ProcessRaise(p, amount)
		g.lastRaiser = playerIdx

	case AllIn:
		before := g.betting.CurrentBet()
		if g.betting.ProcessAllIn(p) == 0 {
			return false
		}
		if g.betting.CurrentBet() > before {
			g.lastRaiser = playerIdx
		}

	default:
		panic(fmt.Sprintf("game: invalid action %s", action))
	}

	g.acted[playerIdx] = true
	g.advanceTurn()
	return true
}

// advanceTurn moves the turn to the next player who can act, wrapping
// around the table. With fewer than two active players, or nobody else
// able to act, the turn stays put.
func (g *Game) advanceTurn() {
	if len(g.ActivePlayers()) < 2 {
		return
	}

	start := g.currentIdx
	for {
		g.currentIdx = (g.currentIdx + 1) % len(g.players)
		if g.players[g.currentIdx].CanAct() {
			return
		}
		if g.currentIdx == start {
			return
		}
	}
}

// ActivePlayers returns the indices of players still contesting the
// hand, in seat order. All-in players count: they can win the pot even
// though they cannot act.
func (g *Game) ActivePlayers() []int {
	var active []int
	for i, p := range g.players {
		if p.IsActive() {
			active = append(active, i)
		}
	}
	return active
}

// IsBettingRoundComplete reports whether the current round needs no
// further action. The round is over when fewer than two players remain
// active, or when every active player able to act has acted and, if
// someone raised, the turn has come back around to the raiser. An
// all-in raiser cannot be returned to, so their raise closes once
// everyone else has acted.
func (g *Game) IsBettingRoundComplete() bool {
	active := g.ActivePlayers()
	if len(active) < 2 {
		return true
	}

	for _, idx := range active {
		if !g.players[idx].CanAct() {
			continue
		}
		if !g.acted[idx] {
			return false
		}
	}

	if g.lastRaiser >= 0 {
		return g.currentIdx == g.lastRaiser || !g.players[g.lastRaiser].CanAct()
	}
	return true
}

// HandScore pairs a player index with their hand's score. Lower scores
// are stronger.
type HandScore struct {
	PlayerIdx int
	Score     int64
}

// EvaluateHands scores every active player's best hand from their two
// hole cards and the full board, in seat order. Calling before the
// river is dealt is a caller bug.
func (g *Game) EvaluateHands() []HandScore {
	if len(g.board) != 5 {
		panic(fmt.Sprintf("game: evaluating hands requires 5 board cards, have %d", len(g.board)))
	}

	var results []HandScore
	for i, p := range g.players {
		if p.IsActive() && len(p.HoleCards) == 2 {
			cards := make([]deck.Card, 0, 7)
			cards = append(cards, p.HoleCards...)
			cards = append(cards, g.board...)
			results = append(results, HandScore{PlayerIdx: i, Score: evaluator.Evaluate(cards)})
		}
	}
	return results
}

// DetermineWinner returns the indices of every player holding the best
// hand, in seat order. An empty result means nobody reached showdown
// with cards.
func (g *Game) DetermineWinner() []int {
	scores := g.EvaluateHands()
	if len(scores) == 0 {
		return nil
	}

	best := scores[0].Score
	for _, hs := range scores[1:] {
		if hs.Score < best {
			best = hs.Score
		}
	}

	var winners []int
	for _, hs := range scores {
		if hs.Score == best {
			winners = append(winners, hs.PlayerIdx)
		}
	}
	return winners
}

// DistributePot splits the whole pot evenly among the winners and
// credits their stacks, leftover chips going one each to the earliest
// listed. The pot empties afterwards. No winners means no distribution;
// the pot stays for the caller to settle.
func (g *Game) DistributePot(winners []int) {
	if len(winners) == 0 {
		return
	}

	pot := g.betting.TotalPot()
	share := pot / len(winners)
	remainder := pot % len(winners)

	for i, idx := range winners {
		amount := share
		if i < remainder {
			amount++
		}
		if amount > 0 {
			g.players[idx].AddChips(amount)
		}
	}

	g.betting.ClearPots()
}

// Phase returns the current step of the hand.
func (g *Game) Phase() Phase { return g.phase }

// Board returns a copy of the community cards dealt so far.
func (g *Game) Board() []deck.Card {
	board := make([]deck.Card, len(g.board))
	copy(board, g.board)
	return board
}

// Pot returns every chip at stake this hand.
func (g *Game) Pot() int { return g.betting.TotalPot() }

// CurrentBet returns the bet level players must match this round.
func (g *Game) CurrentBet() int { return g.betting.CurrentBet() }

// CurrentPlayer returns the index of the player to act.
func (g *Game) CurrentPlayer() int { return g.currentIdx }

// DealerPosition returns the button's player index.
func (g *Game) DealerPosition() int { return g.dealerPos }

// SmallBlind returns the small blind amount.
func (g *Game) SmallBlind() int { return g.smallBlind }

// BigBlind returns the big blind amount.
func (g *Game) BigBlind() int { return g.bigBlind }

// Player returns the player record at idx.
func (g *Game) Player(idx int) *Player { return g.players[idx] }

// NumPlayers returns the seat count.
func (g *Game) NumPlayers() int { return len(g.players) }

// Betting exposes the betting engine for history and pot queries.
func (g *Game) Betting() *BettingManager { return g.betting }

// PlayerState is the read-only public view of one player.
type PlayerState struct {
	ID         int
	Name       string
	Chips      int
	CurrentBet int
	TotalBet   int
	Folded     bool
	AllIn      bool
	SittingOut bool
	HasCards   bool
}

// GameState is a read-only snapshot of the table for display and
// logging layers. Mutating it affects nothing.
type GameState struct {
	Phase      Phase
	Board      []deck.Card
	Pot        int
	CurrentBet int
	Dealer     int
	ToAct      int
	Players    []PlayerState
}

// State snapshots the table.
func (g *Game) State() GameState {
	players := make([]PlayerState, len(g.players))
	for i, p := range g.players {
		players[i] = PlayerState{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			TotalBet:   p.TotalBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			SittingOut: p.SittingOut,
			HasCards:   len(p.HoleCards) == 2,
		}
	}
	return GameState{
		Phase:      g.phase,
		Board:      g.Board(),
		Pot:        g.Pot(),
		CurrentBet: g.CurrentBet(),
		Dealer:     g.dealerPos,
		ToAct:      g.currentIdx,
		Players:    players,
	}
}

func (g *Game) String() string {
	return fmt.Sprintf("Game(phase=%s, players=%d, pot=%d)", g.phase, len(g.ActivePlayers()), g.Pot())
}
