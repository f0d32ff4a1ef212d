package phh

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// FromHandHistory converts a finished hand into PHH form. Seats are
// rotated into blind order: position one is the small blind and the
// button comes last, except heads-up where the button posts the small
// blind and leads. Blind posts become the blinds_or_straddles array;
// everything else becomes an action line.
func FromHandHistory(hh *game.HandHistory) *Hand {
	n := len(hh.Players)
	if n == 0 {
		return &Hand{Variant: variantNT, HandID: hh.HandID}
	}

	sbSeat := (hh.Dealer + 1) % n
	if n == 2 {
		sbSeat = hh.Dealer
	}
	pos := func(seat int) int { return (seat - sbSeat + n) % n }

	seatByName := make(map[string]int, n)
	byPos := make([]game.PlayerSnapshot, n)
	players := make([]string, n)
	starting := make([]int, n)
	for _, p := range hh.Players {
		seatByName[p.Name] = p.Seat
		byPos[pos(p.Seat)] = p
		players[pos(p.Seat)] = p.Name
		starting[pos(p.Seat)] = p.Chips
	}

	blinds := make([]int, n)
	contributed := make([]int, n)
	streetBet := make([]int, n)
	level := 0
	boardDealt := 0

	actions := make([]string, 0, len(hh.Actions)+n+4)

	// dealBoard emits the board cards dealt so far, up to upTo, as a
	// three-card flop followed by single turn and river cards.
	dealBoard := func(upTo int) {
		if upTo > len(hh.Board) {
			upTo = len(hh.Board)
		}
		if boardDealt < 3 && upTo >= 3 {
			actions = append(actions, "d db "+notation(hh.Board[:3]))
			boardDealt = 3
		}
		for boardDealt < upTo {
			actions = append(actions, "d db "+hh.Board[boardDealt].Notation())
			boardDealt++
		}
	}

	for i, p := range byPos {
		cards := "????"
		if len(p.HoleCards) > 0 {
			cards = notation(p.HoleCards)
		}
		actions = append(actions, fmt.Sprintf("d dh p%d %s", i+1, cards))
	}

	phase := game.Preflop
	for _, a := range hh.Actions {
		seat, ok := seatByName[a.PlayerName]
		if !ok {
			continue
		}
		i := pos(seat)

		if a.Phase != phase {
			phase = a.Phase
			for j := range streetBet {
				streetBet[j] = 0
			}
			level = 0
			dealBoard(streetCards(phase))
		}

		switch a.Action {
		case game.SmallBlind, game.BigBlind:
			blinds[i] = a.Amount
			contributed[i] += a.Amount
			streetBet[i] += a.Amount
			if streetBet[i] > level {
				level = streetBet[i]
			}
		case game.Fold:
			actions = append(actions, fmt.Sprintf("p%d f", i+1))
		case game.Check:
			actions = append(actions, fmt.Sprintf("p%d cc", i+1))
		case game.Call:
			contributed[i] += a.Amount
			streetBet[i] += a.Amount
			actions = append(actions, fmt.Sprintf("p%d cc", i+1))
		case game.Bet:
			contributed[i] += a.Amount
			streetBet[i] += a.Amount
			level = streetBet[i]
			actions = append(actions, fmt.Sprintf("p%d cbr %d", i+1, streetBet[i]))
		case game.Raise:
			// Raises record the level reached, not the chips paid.
			contributed[i] += a.Amount - streetBet[i]
			streetBet[i] = a.Amount
			level = a.Amount
			actions = append(actions, fmt.Sprintf("p%d cbr %d", i+1, a.Amount))
		case game.AllIn:
			contributed[i] += a.Amount
			streetBet[i] += a.Amount
			if streetBet[i] > level {
				level = streetBet[i]
				actions = append(actions, fmt.Sprintf("p%d cbr %d", i+1, streetBet[i]))
			} else {
				actions = append(actions, fmt.Sprintf("p%d cc", i+1))
			}
		}
	}

	// Streets with no actions still show their cards: an all-in hand
	// runs the remaining board out here.
	dealBoard(len(hh.Board))

	for i, p := range byPos {
		if len(p.HoleCards) > 0 {
			actions = append(actions, fmt.Sprintf("p%d sm %s", i+1, notation(p.HoleCards)))
		}
	}

	finishing := make([]int, n)
	for i := range finishing {
		finishing[i] = starting[i] - contributed[i]
	}
	for _, w := range hh.Winners {
		if seat, ok := seatByName[w.PlayerName]; ok {
			finishing[pos(seat)] += w.Amount
		}
	}

	start := hh.StartTime.UTC()
	return &Hand{
		Variant:           variantNT,
		HandID:            hh.HandID,
		SeatCount:         n,
		Players:           players,
		Antes:             make([]int, n),
		BlindsOrStraddles: blinds,
		MinBet:            hh.BigBlind,
		StartingStacks:    starting,
		FinishingStacks:   finishing,
		Actions:           actions,
		Year:              start.Year(),
		Month:             int(start.Month()),
		Day:               start.Day(),
		Time:              start.Format("15:04:05"),
		TimeZone:          "UTC",
		Seed:              hh.Seed,
	}
}

func streetCards(phase game.Phase) int {
	switch phase {
	case game.Flop:
		return 3
	case game.Turn:
		return 4
	case game.River:
		return 5
	default:
		return 0
	}
}

func notation(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Notation())
	}
	return b.String()
}
