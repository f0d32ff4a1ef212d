package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/table"
)

// maxRoundActions bounds one betting round. Minimum raises double the
// bet level, so legitimate rounds stay far below this even at deep
// stacks; hitting it means the table is wedged.
const maxRoundActions = 1000

// TableResult is one table's completed run.
type TableResult struct {
	Name    string
	Hands   int
	Stats   *TableStats
	Info    table.Info
	Elapsed time.Duration
}

// Runner plays every configured table to completion, one goroutine per
// table. Each hand is settled through the engine and then checked for
// chip conservation before it counts toward the results.
type Runner struct {
	cfg    *Config
	log    *log.Logger
	clock  quartz.Clock
	writer game.HandHistoryWriter
	phh    *phh.FileWriter
}

// NewRunner creates a runner. A nil clock means wall time; a nil writer
// discards hand histories. The PHH export switches on when the config
// names a directory for it.
func NewRunner(cfg *Config, logger *log.Logger, clock quartz.Clock, writer game.HandHistoryWriter) *Runner {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if writer == nil {
		writer = &game.NoOpHandHistoryWriter{}
	}
	r := &Runner{cfg: cfg, log: logger, clock: clock, writer: writer}
	if cfg.Simulation.PHHDir != "" {
		r.phh = phh.NewFileWriter(cfg.Simulation.PHHDir)
	}
	return r
}

// Run executes the simulation and returns per-table results in
// configuration order. Tables run concurrently but each derives its own
// random stream from the run seed, so a fixed seed reproduces every
// hand regardless of scheduling. The first table error cancels the
// rest.
func (r *Runner) Run(ctx context.Context, seed int64) ([]TableResult, error) {
	results := make([]TableResult, len(r.cfg.Tables))

	eg, ctx := errgroup.WithContext(ctx)
	for i, tc := range r.cfg.Tables {
		eg.Go(func() error {
			res, err := r.runTable(ctx, tc, seed+int64(i))
			if err != nil {
				return fmt.Errorf("table %q: %w", tc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runTable seats one table and plays its configured hands. Policies are
// assigned to seats round-robin from the table's policy list. A player
// who busts sits out and the game is rebuilt around the survivors; the
// table stops early when fewer than two funded players remain.
func (r *Runner) runTable(ctx context.Context, tc TableConfig, seed int64) (TableResult, error) {
	if len(tc.Policies) == 0 {
		return TableResult{}, errors.New("no policies configured")
	}

	rng := randutil.New(seed)
	ids := handid.NewGenerator(r.clock, rng)
	logger := r.log.With("table", tc.Name)

	tbl := table.New(
		table.WithID(tc.Name),
		table.WithMaxPlayers(tc.Seats),
		table.WithBlinds(tc.SmallBlind, tc.BigBlind),
	)

	policies := make(map[int]Policy, tc.Seats)
	for seat := 0; seat < tc.Seats; seat++ {
		name := tc.Policies[seat%len(tc.Policies)]
		pol, err := NewPolicy(name, rng)
		if err != nil {
			return TableResult{}, err
		}
		policies[seat] = pol

		p := game.NewPlayer(seat, fmt.Sprintf("%s-%d", name, seat), tc.Chips)
		if !tbl.AddPlayerAt(p, seat) {
			return TableResult{}, fmt.Errorf("seat %d is unavailable", seat)
		}
	}
	if !tbl.Start() {
		return TableResult{}, errors.New("table cannot start")
	}

	logger.Debug("table starting",
		"seats", tc.Seats, "blinds", fmt.Sprintf("%d/%d", tc.SmallBlind, tc.BigBlind), "hands", tc.Hands)

	stats := NewTableStats(tc.BigBlind)
	start := r.clock.Now()

	var (
		g      *game.Game
		roster []*game.Player
	)

	hands := 0
	for hands < tc.Hands {
		if err := ctx.Err(); err != nil {
			return TableResult{}, err
		}

		if g == nil {
			active := tbl.ActivePlayers()
			if len(active) < 2 {
				logger.Info("table down to one funded player", "hands", hands)
				break
			}
			roster = make([]*game.Player, 0, len(active))
			for _, sp := range active {
				roster = append(roster, sp.Player)
			}
			g = game.NewGame(roster, tc.SmallBlind, tc.BigBlind, rng)
		}

		outcome, err := r.playHand(g, roster, policies, ids.New(), seed, logger)
		if err != nil {
			return TableResult{}, fmt.Errorf("hand %d: %w", hands+1, err)
		}

		stats.Add(outcome)
		tbl.UpdateStats(outcome.Pot)
		hands++

		for _, p := range roster {
			if !p.HasChips() && !p.SittingOut {
				p.SitOut()
				logger.Debug("player busted", "player", p.Name, "hand", hands)
				g = nil
			}
		}
	}

	tbl.End()

	if err := stats.Validate(); err != nil {
		return TableResult{}, fmt.Errorf("statistics validation failed: %w", err)
	}

	return TableResult{
		Name:    tc.Name,
		Hands:   hands,
		Stats:   stats,
		Info:    tbl.Info(),
		Elapsed: r.clock.Since(start),
	}, nil
}

// playHand drives one complete hand: blinds and hole cards, a betting
// round per street, then settlement at showdown or when folds leave one
// player. The recorded seed is the table's; hands replay only as part
// of their table's run.
func (r *Runner) playHand(g *game.Game, roster []*game.Player, policies map[int]Policy, handID string, seed int64, logger *log.Logger) (HandOutcome, error) {
	before := 0
	for _, p := range roster {
		before += p.Chips
	}

	g.StartNewHand()
	g.DealHoleCards()

	hh := game.NewHandHistory(g, handID, seed, r.clock, r.writer)

	// Blinds are already posted; harvest them from the engine history.
	pot := 0
	for _, rec := range g.Betting().History() {
		pot += rec.Amount
		hh.RecordAction(nameByID(roster, rec.PlayerID), rec.Action, rec.Amount, pot, game.Preflop)
	}

	for {
		if err := r.runBettingRound(g, policies, hh, logger); err != nil {
			return HandOutcome{}, err
		}
		if len(g.ActivePlayers()) < 2 {
			break
		}
		g.AdvancePhase()
		if g.Phase() == game.Showdown {
			break
		}
		hh.SetBoard(g.Board())
	}

	outcome := settle(g, hh)

	after := 0
	for _, p := range roster {
		after += p.Chips
	}
	if after != before {
		return HandOutcome{}, fmt.Errorf("chip conservation broken: %d chips before hand, %d after", before, after)
	}

	if err := hh.Save(); err != nil {
		return HandOutcome{}, fmt.Errorf("saving hand history: %w", err)
	}
	if r.phh != nil {
		if err := r.phh.WriteHand(hh); err != nil {
			return HandOutcome{}, fmt.Errorf("exporting phh: %w", err)
		}
	}
	return outcome, nil
}

// runBettingRound prompts policies until the round closes. A current
// player who cannot act is all-in from a blind; a zero-cost call moves
// the turn along without a policy decision or a history entry.
func (r *Runner) runBettingRound(g *game.Game, policies map[int]Policy, hh *game.HandHistory, logger *log.Logger) error {
	phase := g.Phase()

	for steps := 0; !g.IsBettingRoundComplete(); steps++ {
		if steps >= maxRoundActions {
			return fmt.Errorf("betting round stuck after %d actions on %s", maxRoundActions, phase)
		}

		idx := g.CurrentPlayer()
		p := g.Player(idx)

		if !p.CanAct() {
			g.ProcessAction(idx, game.Call, 0)
			continue
		}

		valid := ValidActionsFor(g, idx)
		dec := policies[p.ID].Decide(g, idx, valid)

		potBefore := g.Pot()
		if !g.ProcessAction(idx, dec.Action, dec.Amount) {
			logger.Warn("rejected action, folding instead",
				"player", p.Name, "action", dec.Action, "amount", dec.Amount, "phase", phase)
			dec = Decision{Action: game.Fold}
			g.ProcessAction(idx, game.Fold, 0)
		}

		amount := g.Pot() - potBefore
		if dec.Action == game.Raise {
			amount = g.CurrentBet()
		}
		hh.RecordAction(p.Name, dec.Action, amount, g.Pot(), phase)
	}
	return nil
}

// settle resolves the hand. One player left means the folds already
// decided it; otherwise every remaining hand is scored and the best
// split the pot, odd chips to the earliest seats.
func settle(g *game.Game, hh *game.HandHistory) HandOutcome {
	pot := g.Pot()
	active := g.ActivePlayers()
	street := g.Phase()

	if len(active) == 1 {
		winner := g.Player(active[0])
		g.DistributePot(active)
		hh.SetResults(pot, []game.WinnerInfo{{PlayerName: winner.Name, Amount: pot}})
		return HandOutcome{Pot: pot, Street: street, Winners: 1}
	}

	board := g.Board()
	for _, idx := range active {
		hh.SetPlayerHoleCards(idx, g.Player(idx).HoleCards)
	}

	winners := g.DetermineWinner()
	share := pot / len(winners)
	remainder := pot % len(winners)

	infos := make([]game.WinnerInfo, len(winners))
	for i, idx := range winners {
		amount := share
		if i < remainder {
			amount++
		}
		p := g.Player(idx)

		cards := make([]deck.Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, board...)

		infos[i] = game.WinnerInfo{
			PlayerName: p.Name,
			Amount:     amount,
			HoleCards:  p.HoleCards,
			HandRank:   evaluator.Describe(cards),
		}
	}

	g.DistributePot(winners)
	hh.SetResults(pot, infos)

	return HandOutcome{Pot: pot, WentToShowdown: true, Street: street, Winners: len(winners)}
}

func nameByID(roster []*game.Player, id int) string {
	for _, p := range roster {
		if p.ID == id {
			return p.Name
		}
	}
	return fmt.Sprintf("player-%d", id)
}

// PrintSummary writes one table's results to stdout.
func PrintSummary(res TableResult) {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== TABLE %s ===\n", res.Name)
	if res.Elapsed > 0 {
		fmt.Printf("Hands played: %d in %s (%.0f hands/sec)\n",
			res.Hands, res.Elapsed.Round(time.Millisecond), float64(res.Hands)/res.Elapsed.Seconds())
	} else {
		fmt.Printf("Hands played: %d\n", res.Hands)
	}

	fmt.Printf("\nPot sizes (big blinds):\n")
	fmt.Printf("  Mean: %.2f  Median: %.2f  StdDev: %.2f\n", stats.Mean(), stats.Median(), stats.StdDev())
	fmt.Printf("  95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Printf("  Percentiles: P5=%.2f P25=%.2f P75=%.2f P95=%.2f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Printf("  Max pot: %d chips (%.1f bb), pots >= 50bb: %d\n", stats.MaxPotChips, stats.MaxPotBB, stats.BigPots)

	fmt.Printf("\nResolution:\n")
	fmt.Printf("  Showdowns: %d (%.1f%%)  Fold wins: %d  Split pots: %d\n",
		stats.Showdowns, stats.ShowdownRate()*100, stats.FoldWins, stats.SplitPots)
	fmt.Printf("  Ended by street: preflop=%d flop=%d turn=%d river=%d showdown=%d\n",
		stats.StreetCounts[game.Preflop], stats.StreetCounts[game.Flop],
		stats.StreetCounts[game.Turn], stats.StreetCounts[game.River],
		stats.StreetCounts[game.Showdown])
}
