package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/fileutil"
)

// HandHistoryWriter persists rendered hand histories.
type HandHistoryWriter interface {
	WriteHandHistory(handID string, content string) error
}

// FileHandHistoryWriter writes each hand to its own text file under a
// directory, creating the directory on first use.
type FileHandHistoryWriter struct {
	directory string
}

// NewFileHandHistoryWriter creates a file-based hand history writer.
func NewFileHandHistoryWriter(directory string) *FileHandHistoryWriter {
	return &FileHandHistoryWriter{directory: directory}
}

// WriteHandHistory writes the hand to hand_<id>.txt. The write goes
// through a temp file and rename, so a concurrent reader sees either
// the previous file or the complete new one, never a partial write.
func (w *FileHandHistoryWriter) WriteHandHistory(handID string, content string) error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return fmt.Errorf("failed to create hand history directory: %w", err)
	}
	filename := filepath.Join(w.directory, fmt.Sprintf("hand_%s.txt", handID))
	return fileutil.WriteFileAtomic(filename, []byte(content), 0o644)
}

// NoOpHandHistoryWriter discards hand histories.
type NoOpHandHistoryWriter struct{}

func (w *NoOpHandHistoryWriter) WriteHandHistory(handID string, content string) error {
	return nil
}

// HandAction is one recorded action and the pot after it. Amount
// carries what the verb implies: chips paid for blinds, calls, bets
// and all-ins; the level reached for raises.
type HandAction struct {
	PlayerName string
	Action     Action
	Amount     int
	PotAfter   int
	Phase      Phase
	Timestamp  time.Time
}

// PlayerSnapshot captures one seat at the start of the hand. HoleCards
// fill in at showdown and stay empty for mucked or folded hands.
type PlayerSnapshot struct {
	Seat      int
	Name      string
	Chips     int
	HoleCards []deck.Card
}

// WinnerInfo names a winner, the amount credited, and the winning
// hand's description.
type WinnerInfo struct {
	PlayerName string
	Amount     int
	HoleCards  []deck.Card
	HandRank   string
}

// HandHistory accumulates everything that happened in one hand: the
// table setup, every action with a timestamp, the board, and the
// result. The injected clock supplies timestamps so tests control
// them.
type HandHistory struct {
	HandID     string
	StartTime  time.Time
	Seed       int64
	SmallBlind int
	BigBlind   int
	Dealer     int
	Players    []PlayerSnapshot
	Actions    []HandAction
	Board      []deck.Card
	FinalPot   int
	Winners    []WinnerInfo

	clock  quartz.Clock
	writer HandHistoryWriter
}

// NewHandHistory snapshots the table for a new hand. Snapshot chips are
// start-of-hand stacks: any blind a player has already posted this hand
// is counted back in, so creating the history before or after the
// blinds makes no difference.
func NewHandHistory(g *Game, handID string, seed int64, clock quartz.Clock, writer HandHistoryWriter) *HandHistory {
	players := make([]PlayerSnapshot, g.NumPlayers())
	for i := range players {
		p := g.Player(i)
		players[i] = PlayerSnapshot{
			Seat:  i,
			Name:  p.Name,
			Chips: p.Chips + p.TotalBet,
		}
	}

	return &HandHistory{
		HandID:     handID,
		StartTime:  clock.Now(),
		Seed:       seed,
		SmallBlind: g.SmallBlind(),
		BigBlind:   g.BigBlind(),
		Dealer:     g.DealerPosition(),
		Players:    players,
		clock:      clock,
		writer:     writer,
	}
}

// RecordAction appends one action, timestamped from the clock.
func (hh *HandHistory) RecordAction(playerName string, action Action, amount, potAfter int, phase Phase) {
	hh.Actions = append(hh.Actions, HandAction{
		PlayerName: playerName,
		Action:     action,
		Amount:     amount,
		PotAfter:   potAfter,
		Phase:      phase,
		Timestamp:  hh.clock.Now(),
	})
}

// SetBoard records the community cards dealt so far.
func (hh *HandHistory) SetBoard(cards []deck.Card) {
	hh.Board = make([]deck.Card, len(cards))
	copy(hh.Board, cards)
}

// SetPlayerHoleCards fills in a seat's hole cards for the summary.
// Out-of-range seats are ignored.
func (hh *HandHistory) SetPlayerHoleCards(seat int, cards []deck.Card) {
	if seat < 0 || seat >= len(hh.Players) {
		return
	}
	hh.Players[seat].HoleCards = append([]deck.Card(nil), cards...)
}

// SetResults records the final pot and the winners.
func (hh *HandHistory) SetResults(pot int, winners []WinnerInfo) {
	hh.FinalPot = pot
	hh.Winners = winners
}

// Render formats the hand as text: header, seats, actions grouped by
// street with board reveals, and a summary once results are set.
func (hh *HandHistory) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== HAND %s ===\n", hh.HandID)
	fmt.Fprintf(&b, "Date: %s\n", hh.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Seed: %d\n", hh.Seed)
	fmt.Fprintf(&b, "Blinds: %d/%d\n", hh.SmallBlind, hh.BigBlind)
	fmt.Fprintf(&b, "Players: %d\n\n", len(hh.Players))

	for _, p := range hh.Players {
		marker := ""
		if p.Seat == hh.Dealer {
			marker = " [D]"
		}
		fmt.Fprintf(&b, "Seat %d: %s (%d chips)%s\n", p.Seat+1, p.Name, p.Chips, marker)
	}
	b.WriteString("\n")

	last := Phase(-1)
	for _, action := range hh.Actions {
		if action.Phase != last {
			hh.renderStreetHeader(&b, action.Phase)
			last = action.Phase
		}
		b.WriteString(hh.formatAction(action))
		b.WriteByte('\n')
	}
	if len(hh.Actions) > 0 {
		b.WriteString("\n")
	}

	if hh.FinalPot > 0 || len(hh.Winners) > 0 {
		hh.renderSummary(&b)
	}

	b.WriteString("=== END HAND ===\n")
	return b.String()
}

func (hh *HandHistory) renderStreetHeader(b *strings.Builder, phase Phase) {
	switch phase {
	case Preflop:
		b.WriteString("*** PRE-FLOP ***\n")
	case Flop:
		b.WriteString("\n*** FLOP ***\n")
		if len(hh.Board) >= 3 {
			fmt.Fprintf(b, "Board: [%s]\n", joinCards(hh.Board[:3]))
		}
	case Turn:
		b.WriteString("\n*** TURN ***\n")
		if len(hh.Board) >= 4 {
			fmt.Fprintf(b, "Board: [%s]\n", joinCards(hh.Board[:4]))
		}
	case River:
		b.WriteString("\n*** RIVER ***\n")
		if len(hh.Board) >= 5 {
			fmt.Fprintf(b, "Board: [%s]\n", joinCards(hh.Board[:5]))
		}
	case Showdown:
		b.WriteString("\n*** SHOWDOWN ***\n")
	}
}

func (hh *HandHistory) formatAction(a HandAction) string {
	switch a.Action {
	case SmallBlind:
		return fmt.Sprintf("%s: posts small blind $%d", a.PlayerName, a.Amount)
	case BigBlind:
		return fmt.Sprintf("%s: posts big blind $%d", a.PlayerName, a.Amount)
	case Fold:
		return fmt.Sprintf("%s: folds", a.PlayerName)
	case Check:
		return fmt.Sprintf("%s: checks", a.PlayerName)
	case Call:
		return fmt.Sprintf("%s: calls $%d (pot now: $%d)", a.PlayerName, a.Amount, a.PotAfter)
	case Bet:
		return fmt.Sprintf("%s: bets $%d (pot now: $%d)", a.PlayerName, a.Amount, a.PotAfter)
	case Raise:
		return fmt.Sprintf("%s: raises to $%d (pot now: $%d)", a.PlayerName, a.Amount, a.PotAfter)
	case AllIn:
		return fmt.Sprintf("%s: goes all-in for $%d (pot now: $%d)", a.PlayerName, a.Amount, a.PotAfter)
	default:
		return fmt.Sprintf("%s: %s $%d", a.PlayerName, a.Action, a.Amount)
	}
}

func (hh *HandHistory) renderSummary(b *strings.Builder) {
	b.WriteString("*** SUMMARY ***\n")
	fmt.Fprintf(b, "Total pot $%d\n", hh.FinalPot)
	if len(hh.Board) > 0 {
		fmt.Fprintf(b, "Board [%s]\n", joinCards(hh.Board))
	}

	for _, p := range hh.Players {
		line := fmt.Sprintf("Seat %d: %s", p.Seat+1, p.Name)
		if p.Seat == hh.Dealer {
			line += " (button)"
		}

		if w := hh.winner(p.Name); w != nil {
			if len(p.HoleCards) > 0 {
				line += fmt.Sprintf(" showed [%s] and won ($%d)", joinCards(p.HoleCards), w.Amount)
			} else {
				line += fmt.Sprintf(" won ($%d)", w.Amount)
			}
			if w.HandRank != "" {
				line += fmt.Sprintf(" with %s", w.HandRank)
			}
		} else if hh.playerFolded(p.Name) {
			line += " folded"
		} else if len(p.HoleCards) > 0 {
			line += fmt.Sprintf(" mucked [%s]", joinCards(p.HoleCards))
		}

		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func (hh *HandHistory) winner(playerName string) *WinnerInfo {
	for i := range hh.Winners {
		if hh.Winners[i].PlayerName == playerName {
			return &hh.Winners[i]
		}
	}
	return nil
}

func (hh *HandHistory) playerFolded(playerName string) bool {
	for _, a := range hh.Actions {
		if a.PlayerName == playerName && a.Action == Fold {
			return true
		}
	}
	return false
}

func joinCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Save renders the hand and writes it through the configured writer.
func (hh *HandHistory) Save() error {
	return hh.writer.WriteHandHistory(hh.HandID, hh.Render())
}
