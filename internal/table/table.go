// Package table manages seating around a poker table: who sits where,
// which seats post the blinds, where action starts, and per-table
// stats. The table owns no hand state; callers build the dense player
// list from occupied seats and hand it to the game package.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"

	"github.com/lox/holdem-engine/internal/game"
)

// Status is the table lifecycle state.
type Status int

const (
	Paused Status = iota
	Active
	Closed
)

func (s Status) String() string {
	switch s {
	case Paused:
		return "paused"
	case Active:
		return "active"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ErrNotEnoughPlayers is returned when blind or action seats are
// requested with fewer than two active players.
var ErrNotEnoughPlayers = errors.New("table: need at least 2 active players")

// SeatedPlayer pairs a player with the seat they occupy.
type SeatedPlayer struct {
	Seat   int
	Player *game.Player
}

// Option configures a Table during creation.
type Option func(*config)

type config struct {
	id         string
	maxPlayers int
	smallBlind int
	bigBlind   int
}

// WithID sets the table ID. Default is a fresh UUID.
func WithID(id string) Option {
	return func(c *config) { c.id = id }
}

// WithMaxPlayers sets the seat count, 2 to 10. Default 10.
func WithMaxPlayers(n int) Option {
	return func(c *config) { c.maxPlayers = n }
}

// WithBlinds sets the stakes. Default 1/2.
func WithBlinds(small, big int) Option {
	return func(c *config) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// Table is a fixed array of seats, each empty or holding one player.
// Seat numbers are stable for the table's lifetime; players keep their
// seat until removed or moved.
type Table struct {
	id         string
	maxPlayers int
	smallBlind int
	bigBlind   int
	status     Status

	seats      []*game.Player
	dealerSeat int
	handNumber int

	handsPlayed     int
	totalPotAwarded int
	biggestPot      int
}

// New creates a paused table. Invalid configuration panics: a blank
// ID, a seat count outside 2-10, a non-positive small blind, or a big
// blind not above the small.
func New(opts ...Option) *Table {
	cfg := &config{maxPlayers: 10, smallBlind: 1, bigBlind: 2}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.New().String()
	}

	id := strings.TrimSpace(cfg.id)
	if id == "" {
		panic("table: table ID cannot be empty")
	}
	if cfg.maxPlayers < 2 || cfg.maxPlayers > 10 {
		panic(fmt.Sprintf("table: invalid max players %d", cfg.maxPlayers))
	}
	if cfg.smallBlind <= 0 {
		panic("table: small blind must be positive")
	}
	if cfg.bigBlind <= cfg.smallBlind {
		panic(fmt.Sprintf("table: big blind %d must exceed small blind %d", cfg.bigBlind, cfg.smallBlind))
	}

	return &Table{
		id:         id,
		maxPlayers: cfg.maxPlayers,
		smallBlind: cfg.smallBlind,
		bigBlind:   cfg.bigBlind,
		status:     Paused,
		seats:      make([]*game.Player, cfg.maxPlayers),
	}
}

// AddPlayer seats the player at the first free seat and returns it.
// Returns false when the table is full or the player is already
// seated. A player without chips cannot join; that is a caller bug.
func (t *Table) AddPlayer(p *game.Player) (int, bool) {
	t.checkJoin(p)
	if _, seated := t.FindPlayerSeat(p.ID); seated {
		return 0, false
	}
	for seat := range t.seats {
		if t.seats[seat] == nil {
			t.seats[seat] = p
			return seat, true
		}
	}
	return 0, false
}

// AddPlayerAt seats the player at a specific seat. Returns false when
// the seat is taken or out of range, or the player is already seated.
func (t *Table) AddPlayerAt(p *game.Player, seat int) bool {
	t.checkJoin(p)
	if _, seated := t.FindPlayerSeat(p.ID); seated {
		return false
	}
	if !t.IsSeatAvailable(seat) {
		return false
	}
	t.seats[seat] = p
	return true
}

func (t *Table) checkJoin(p *game.Player) {
	if p == nil {
		panic("table: player must not be nil")
	}
	if p.Chips <= 0 {
		panic("table: player must have chips to join")
	}
}

// RemovePlayer empties the seat and returns its occupant, nil if the
// seat was already empty. An out-of-range seat panics.
func (t *Table) RemovePlayer(seat int) *game.Player {
	t.checkSeat(seat)
	p := t.seats[seat]
	t.seats[seat] = nil
	return p
}

// RemovePlayerByID removes the player holding the given ID, returning
// nil when nobody has it.
func (t *Table) RemovePlayerByID(playerID int) *game.Player {
	if seat, ok := t.FindPlayerSeat(playerID); ok {
		return t.RemovePlayer(seat)
	}
	return nil
}

// PlayerAt returns the player in the seat, nil for an empty seat. An
// out-of-range seat panics.
func (t *Table) PlayerAt(seat int) *game.Player {
	t.checkSeat(seat)
	return t.seats[seat]
}

func (t *Table) checkSeat(seat int) {
	if seat < 0 || seat >= t.maxPlayers {
		panic(fmt.Sprintf("table: invalid seat %d", seat))
	}
}

// FindPlayerSeat returns the seat holding the player ID.
func (t *Table) FindPlayerSeat(playerID int) (int, bool) {
	for seat, p := range t.seats {
		if p != nil && p.ID == playerID {
			return seat, true
		}
	}
	return 0, false
}

func (t *Table) seated() []SeatedPlayer {
	out := make([]SeatedPlayer, 0, t.maxPlayers)
	for seat, p := range t.seats {
		if p != nil {
			out = append(out, SeatedPlayer{Seat: seat, Player: p})
		}
	}
	return out
}

// ActivePlayers returns seated players who are in the action: not
// sitting out and holding chips, in seat order.
func (t *Table) ActivePlayers() []SeatedPlayer {
	return funk.Filter(t.seated(), func(sp SeatedPlayer) bool {
		return !sp.Player.SittingOut && sp.Player.Chips > 0
	}).([]SeatedPlayer)
}

// PlayersInHand returns active players still contesting the current
// hand (not folded).
func (t *Table) PlayersInHand() []SeatedPlayer {
	return funk.Filter(t.ActivePlayers(), func(sp SeatedPlayer) bool {
		return sp.Player.IsActive()
	}).([]SeatedPlayer)
}

// IsSeatAvailable reports whether the seat exists and is empty.
func (t *Table) IsSeatAvailable(seat int) bool {
	return seat >= 0 && seat < t.maxPlayers && t.seats[seat] == nil
}

// AvailableSeats returns the empty seat numbers in order.
func (t *Table) AvailableSeats() []int {
	var seats []int
	for seat := range t.seats {
		if t.seats[seat] == nil {
			seats = append(seats, seat)
		}
	}
	return seats
}

// OccupiedSeats returns the taken seat numbers in order.
func (t *Table) OccupiedSeats() []int {
	var seats []int
	for seat := range t.seats {
		if t.seats[seat] != nil {
			seats = append(seats, seat)
		}
	}
	return seats
}

// SeatCount returns how many seats are taken.
func (t *Table) SeatCount() int {
	return len(t.OccupiedSeats())
}

// CanStart reports whether play can begin: the table is paused and at
// least minPlayers players are active.
func (t *Table) CanStart(minPlayers int) bool {
	if t.status != Paused {
		return false
	}
	return len(t.ActivePlayers()) >= minPlayers
}

// Start activates the table for a new hand: bumps the hand number and
// advances the dealer button to the next active seat. Returns false
// when the table cannot start.
func (t *Table) Start() bool {
	if !t.CanStart(2) {
		return false
	}
	t.status = Active
	t.handNumber++
	t.advanceDealerButton()
	return true
}

// Pause suspends an active table.
func (t *Table) Pause() {
	if t.status == Active {
		t.status = Paused
	}
}

// Resume reactivates a paused table if enough players remain.
func (t *Table) Resume() bool {
	if t.status == Paused && t.CanStart(2) {
		t.status = Active
		return true
	}
	return false
}

// End returns the table to paused between hands.
func (t *Table) End() {
	t.status = Paused
}

// Close shuts the table permanently.
func (t *Table) Close() {
	t.status = Closed
}

// BlindSeats computes the small and big blind seats for the current
// dealer position. Heads-up the dealer posts the small blind;
// otherwise the two seats after the dealer post.
func (t *Table) BlindSeats() (small, big int, err error) {
	active := t.ActivePlayers()
	if len(active) < 2 {
		return 0, 0, ErrNotEnoughPlayers
	}

	if len(active) == 2 {
		small = t.dealerSeat
		big, _ = t.nextActiveSeat(small)
		return small, big, nil
	}

	small, _ = t.nextActiveSeat(t.dealerSeat)
	big, _ = t.nextActiveSeat(small)
	return small, big, nil
}

// ActionSeat returns the first seat to act preflop, after the big
// blind. Returns false with fewer than two active players.
func (t *Table) ActionSeat() (int, bool) {
	_, big, err := t.BlindSeats()
	if err != nil {
		return 0, false
	}
	return t.nextActiveSeat(big)
}

// PrepareNewHand resets every seated player's per-hand state. Sitting
// out survives the reset.
func (t *Table) PrepareNewHand() {
	for _, p := range t.seats {
		if p != nil {
			p.ResetForHand()
		}
	}
}

// UpdateStats records a finished hand's pot.
func (t *Table) UpdateStats(potSize int) {
	t.handsPlayed++
	t.totalPotAwarded += potSize
	if potSize > t.biggestPot {
		t.biggestPot = potSize
	}
}

// MovePlayer relocates a seated player to an empty seat. Returns false
// when the source is empty or the destination unavailable.
func (t *Table) MovePlayer(fromSeat, toSeat int) bool {
	if !t.IsSeatAvailable(toSeat) {
		return false
	}
	p := t.PlayerAt(fromSeat)
	if p == nil {
		return false
	}
	t.seats[toSeat] = p
	t.seats[fromSeat] = nil
	return true
}

// advanceDealerButton moves the button to the next active seat. With
// no active players the button stays.
func (t *Table) advanceDealerButton() {
	if next, ok := t.nextActiveSeat(t.dealerSeat); ok {
		t.dealerSeat = next
	}
}

// nextActiveSeat returns the first active seat after current, wrapping
// around the table. A current seat that is not itself active resolves
// to the first active seat.
func (t *Table) nextActiveSeat(current int) (int, bool) {
	active := t.ActivePlayers()
	if len(active) == 0 {
		return 0, false
	}

	seats := make([]int, len(active))
	for i, sp := range active {
		seats[i] = sp.Seat
	}

	idx := funk.IndexOf(seats, current)
	if idx < 0 {
		return seats[0], true
	}
	return seats[(idx+1)%len(seats)], true
}

// Info is a display snapshot of the table.
type Info struct {
	ID             string
	Status         Status
	Players        int
	MaxPlayers     int
	DealerSeat     int
	SmallBlind     int
	BigBlind       int
	HandNumber     int
	AvailableSeats []int
	OccupiedSeats  []int
	HandsPlayed    int
	BiggestPot     int
}

// Info snapshots the table for display and logging.
func (t *Table) Info() Info {
	return Info{
		ID:             t.id,
		Status:         t.status,
		Players:        len(t.ActivePlayers()),
		MaxPlayers:     t.maxPlayers,
		DealerSeat:     t.dealerSeat,
		SmallBlind:     t.smallBlind,
		BigBlind:       t.bigBlind,
		HandNumber:     t.handNumber,
		AvailableSeats: t.AvailableSeats(),
		OccupiedSeats:  t.OccupiedSeats(),
		HandsPlayed:    t.handsPlayed,
		BiggestPot:     t.biggestPot,
	}
}

// SeatInfo is the public view of one occupied seat.
type SeatInfo struct {
	Seat          int
	PlayerID      int
	Name          string
	Chips         int
	IsDealer      bool
	Folded        bool
	AllIn         bool
	SittingOut    bool
	CurrentBet    int
	HoleCardCount int
}

// SeatInfo describes the seat's occupant, nil for an empty seat. An
// out-of-range seat panics.
func (t *Table) SeatInfo(seat int) *SeatInfo {
	p := t.PlayerAt(seat)
	if p == nil {
		return nil
	}
	return &SeatInfo{
		Seat:          seat,
		PlayerID:      p.ID,
		Name:          p.Name,
		Chips:         p.Chips,
		IsDealer:      seat == t.dealerSeat,
		Folded:        p.Folded,
		AllIn:         p.AllIn,
		SittingOut:    p.SittingOut,
		CurrentBet:    p.CurrentBet,
		HoleCardCount: len(p.HoleCards),
	}
}

// AllSeatInfo describes every seat in order, nil for empty seats.
func (t *Table) AllSeatInfo() []*SeatInfo {
	infos := make([]*SeatInfo, t.maxPlayers)
	for seat := range t.seats {
		infos[seat] = t.SeatInfo(seat)
	}
	return infos
}

// ID returns the table identifier.
func (t *Table) ID() string { return t.id }

// Status returns the lifecycle state.
func (t *Table) Status() Status { return t.status }

// MaxPlayers returns the seat count.
func (t *Table) MaxPlayers() int { return t.maxPlayers }

// SmallBlind returns the small blind amount.
func (t *Table) SmallBlind() int { return t.smallBlind }

// BigBlind returns the big blind amount.
func (t *Table) BigBlind() int { return t.bigBlind }

// DealerSeat returns the seat holding the button.
func (t *Table) DealerSeat() int { return t.dealerSeat }

// HandNumber returns how many hands have started.
func (t *Table) HandNumber() int { return t.handNumber }

// HandsPlayed returns how many hands have finished.
func (t *Table) HandsPlayed() int { return t.handsPlayed }

// TotalPotAwarded returns the chips paid out across finished hands.
func (t *Table) TotalPotAwarded() int { return t.totalPotAwarded }

// BiggestPot returns the largest single pot awarded.
func (t *Table) BiggestPot() int { return t.biggestPot }

func (t *Table) String() string {
	return fmt.Sprintf("Table %s: %d/%d players, $%d/$%d",
		t.id, t.SeatCount(), t.maxPlayers, t.smallBlind, t.bigBlind)
}
