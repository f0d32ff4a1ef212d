package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/sim"
)

type CLI struct {
	Config     string `default:"simulation.hcl" help:"Simulation config file (HCL)"`
	Hands      int    `default:"0" help:"Override hands per table (0 keeps the config value)"`
	Seed       int64  `default:"0" help:"RNG seed (0 for random)"`
	HistoryDir string `help:"Write hand histories to this directory"`
	PhhDir     string `help:"Export hands in PHH format to this directory"`
	Verbose    bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	var logger *log.Logger
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	cfg, err := sim.LoadConfig(cli.Config)
	if err != nil {
		logger.Fatal("failed to load config", "file", cli.Config, "error", err)
	}
	if cli.Hands > 0 {
		cfg.Simulation.Hands = cli.Hands
		for i := range cfg.Tables {
			cfg.Tables[i].Hands = cli.Hands
		}
	}
	if cli.HistoryDir != "" {
		cfg.Simulation.HistoryDir = cli.HistoryDir
	}
	if cli.PhhDir != "" {
		cfg.Simulation.PHHDir = cli.PhhDir
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "error", err)
	}

	// Seed precedence: flag, then config, then the clock.
	seed := cli.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var writer game.HandHistoryWriter
	if dir := cfg.Simulation.HistoryDir; dir != "" {
		writer = game.NewFileHandHistoryWriter(dir)
	}

	fmt.Printf("Starting simulation: %d hands across %d tables (seed: %d)\n",
		cfg.TotalHands(), len(cfg.Tables), seed)

	startTime := time.Now()
	runner := sim.NewRunner(cfg, logger, quartz.NewReal(), writer)
	results, err := runner.Run(context.Background(), seed)
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}
	duration := time.Since(startTime)

	totalHands := 0
	for _, res := range results {
		sim.PrintSummary(res)
		totalHands += res.Hands
	}
	fmt.Printf("\nPlayed %d hands in %s (%.0f hands/sec)\n",
		totalHands, duration.Round(time.Millisecond), float64(totalHands)/duration.Seconds())

	ctx.Exit(0)
}
