package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/deck"
)

// scriptedHistory builds the record of a three-way hand: everyone sees
// the flop for 10, PlayerA bets the flop and PlayerB folds, the turn
// checks through, and PlayerA wins at showdown with a river bet paid.
func scriptedHistory(t *testing.T, writer HandHistoryWriter) *HandHistory {
	t.Helper()
	g, _ := testGame(t, 3)
	g.StartNewHand() // button 1, small 2, big 0

	hh := NewHandHistory(g, "h42", 42, quartz.NewMock(t), writer)
	hh.RecordAction("PlayerC", SmallBlind, 5, 5, Preflop)
	hh.RecordAction("PlayerA", BigBlind, 10, 15, Preflop)
	hh.RecordAction("PlayerB", Call, 10, 25, Preflop)
	hh.RecordAction("PlayerC", Call, 5, 30, Preflop)
	hh.RecordAction("PlayerA", Check, 0, 30, Preflop)

	hh.SetBoard(deck.MustParseCards("Ah Kd 7c"))
	hh.RecordAction("PlayerC", Check, 0, 30, Flop)
	hh.RecordAction("PlayerA", Bet, 20, 50, Flop)
	hh.RecordAction("PlayerB", Fold, 0, 50, Flop)
	hh.RecordAction("PlayerC", Call, 20, 70, Flop)

	hh.SetBoard(deck.MustParseCards("Ah Kd 7c 2s"))
	hh.RecordAction("PlayerC", Check, 0, 70, Turn)
	hh.RecordAction("PlayerA", Check, 0, 70, Turn)

	hh.SetBoard(deck.MustParseCards("Ah Kd 7c 2s 9d"))
	hh.RecordAction("PlayerC", Bet, 20, 90, River)
	hh.RecordAction("PlayerA", Raise, 40, 130, River)
	hh.RecordAction("PlayerC", Call, 20, 150, River)

	hh.SetPlayerHoleCards(0, deck.MustParseCards("As Qh"))
	hh.SetPlayerHoleCards(2, deck.MustParseCards("Kh Qs"))
	hh.SetResults(150, []WinnerInfo{{
		PlayerName: "PlayerA",
		Amount:     150,
		HoleCards:  deck.MustParseCards("As Qh"),
		HandRank:   "Pair of As",
	}})
	return hh
}

func TestHandHistorySnapshot(t *testing.T) {
	t.Parallel()
	g, _ := testGame(t, 3)
	g.StartNewHand()

	hh := NewHandHistory(g, "h7", 7, quartz.NewMock(t), &NoOpHandHistoryWriter{})

	if hh.HandID != "h7" || hh.Seed != 7 {
		t.Errorf("Unexpected identity: %s/%d", hh.HandID, hh.Seed)
	}
	if hh.SmallBlind != 5 || hh.BigBlind != 10 || hh.Dealer != 1 {
		t.Errorf("Unexpected table info: %d/%d dealer %d", hh.SmallBlind, hh.BigBlind, hh.Dealer)
	}
	if len(hh.Players) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", len(hh.Players))
	}
	// Blind posters already paid, but the snapshot shows hand-start stacks.
	for _, p := range hh.Players {
		if p.Chips != 1000 {
			t.Errorf("%s snapshot should show 1000 chips, got %d", p.Name, p.Chips)
		}
	}
	if hh.StartTime.IsZero() {
		t.Error("Expected a start time from the clock")
	}
}

func TestHandHistoryRecordAction(t *testing.T) {
	t.Parallel()
	g, _ := testGame(t, 3)
	hh := NewHandHistory(g, "h1", 1, quartz.NewMock(t), &NoOpHandHistoryWriter{})

	hh.RecordAction("PlayerA", Check, 0, 0, Preflop)

	if len(hh.Actions) != 1 {
		t.Fatalf("Expected 1 action, got %d", len(hh.Actions))
	}
	a := hh.Actions[0]
	if a.PlayerName != "PlayerA" || a.Action != Check || a.Phase != Preflop {
		t.Errorf("Unexpected action record: %+v", a)
	}
	if !a.Timestamp.Equal(hh.StartTime) {
		t.Errorf("Expected the mock clock's time, got %v", a.Timestamp)
	}
}

func TestHandHistoryRender(t *testing.T) {
	t.Parallel()
	hh := scriptedHistory(t, &NoOpHandHistoryWriter{})

	text := hh.Render()

	wantFragments := []string{
		"=== HAND h42 ===",
		"Date: " + hh.StartTime.Format("2006-01-02 15:04:05"),
		"Seed: 42",
		"Blinds: 5/10",
		"Players: 3",
		"Seat 1: PlayerA (1000 chips)",
		"Seat 2: PlayerB (1000 chips) [D]",
		"*** PRE-FLOP ***",
		"PlayerC: posts small blind $5",
		"PlayerA: posts big blind $10",
		"PlayerB: calls $10 (pot now: $25)",
		"PlayerA: checks",
		"*** FLOP ***",
		"Board: [A♥ K♦ 7♣]",
		"PlayerA: bets $20 (pot now: $50)",
		"PlayerB: folds",
		"*** TURN ***",
		"Board: [A♥ K♦ 7♣ 2♠]",
		"*** RIVER ***",
		"Board: [A♥ K♦ 7♣ 2♠ 9♦]",
		"PlayerA: raises to $40 (pot now: $130)",
		"*** SUMMARY ***",
		"Total pot $150",
		"Board [A♥ K♦ 7♣ 2♠ 9♦]",
		"Seat 1: PlayerA showed [A♠ Q♥] and won ($150) with Pair of As",
		"Seat 2: PlayerB (button) folded",
		"Seat 3: PlayerC mucked [K♥ Q♠]",
		"=== END HAND ===",
	}
	for _, want := range wantFragments {
		if !strings.Contains(text, want) {
			t.Errorf("Rendered history missing %q\n%s", want, text)
		}
	}

	// Streets render in play order.
	order := []string{"*** PRE-FLOP ***", "*** FLOP ***", "*** TURN ***", "*** RIVER ***", "*** SUMMARY ***"}
	lastIdx := -1
	for _, header := range order {
		idx := strings.Index(text, header)
		if idx <= lastIdx {
			t.Errorf("Expected %s after previous section, found at %d", header, idx)
		}
		lastIdx = idx
	}
}

func TestHandHistoryRenderWithoutResults(t *testing.T) {
	t.Parallel()
	g, _ := testGame(t, 2)
	hh := NewHandHistory(g, "h9", 9, quartz.NewMock(t), &NoOpHandHistoryWriter{})
	hh.RecordAction("PlayerA", Check, 0, 0, Preflop)

	text := hh.Render()

	if strings.Contains(text, "*** SUMMARY ***") {
		t.Error("No results recorded, so no summary section")
	}
	if !strings.Contains(text, "=== END HAND ===") {
		t.Error("Expected the end marker")
	}
}

func TestSetBoardCopies(t *testing.T) {
	t.Parallel()
	g, _ := testGame(t, 2)
	hh := NewHandHistory(g, "h1", 1, quartz.NewMock(t), &NoOpHandHistoryWriter{})

	cards := deck.MustParseCards("Ah Kd 7c")
	hh.SetBoard(cards)
	cards[0] = deck.MustParseCards("2c")[0]

	if hh.Board[0].String() != "A♥" {
		t.Errorf("Board must not alias the caller's slice, got %s", hh.Board[0])
	}
}

func TestSetPlayerHoleCardsIgnoresBadSeat(t *testing.T) {
	t.Parallel()
	g, _ := testGame(t, 2)
	hh := NewHandHistory(g, "h1", 1, quartz.NewMock(t), &NoOpHandHistoryWriter{})

	hh.SetPlayerHoleCards(-1, deck.MustParseCards("As Ah"))
	hh.SetPlayerHoleCards(99, deck.MustParseCards("As Ah"))

	for _, p := range hh.Players {
		if len(p.HoleCards) != 0 {
			t.Errorf("No seat should have cards, got %+v", p)
		}
	}
}

func TestFileHandHistoryWriter(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "hands", "nested")
	w := NewFileHandHistoryWriter(dir)

	if err := w.WriteHandHistory("abc", "hello\n"); err != nil {
		t.Fatalf("WriteHandHistory failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "hand_abc.txt"))
	if err != nil {
		t.Fatalf("Reading the history file failed: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("Expected %q, got %q", "hello\n", string(data))
	}

	// The temp file must be gone after the rename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Reading the directory failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the history file, got %d entries", len(entries))
	}
}

func TestFileHandHistoryWriterOverwrites(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := NewFileHandHistoryWriter(dir)

	if err := w.WriteHandHistory("abc", "one"); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := w.WriteHandHistory("abc", "two"); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "hand_abc.txt"))
	if err != nil {
		t.Fatalf("Reading the history file failed: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("Expected the second write to win, got %q", string(data))
	}
}

func TestNoOpHandHistoryWriter(t *testing.T) {
	t.Parallel()
	w := &NoOpHandHistoryWriter{}
	if err := w.WriteHandHistory("abc", "content"); err != nil {
		t.Errorf("NoOp writer must never fail, got %v", err)
	}
}

func TestHandHistorySave(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	hh := scriptedHistory(t, NewFileHandHistoryWriter(dir))

	if err := hh.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "hand_h42.txt"))
	if err != nil {
		t.Fatalf("Reading the saved hand failed: %v", err)
	}
	if !strings.Contains(string(data), "=== HAND h42 ===") {
		t.Error("Saved file should contain the rendered hand")
	}
}
