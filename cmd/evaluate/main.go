package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

type CLI struct {
	Hands []string `arg:"" required:"true" help:"Hands to evaluate, e.g. 'AcKd' with --board or 'AcKdQh7s2d' standalone"`
	Board string   `short:"b" help:"Community board cards (e.g. 'Td7s8h')"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	bestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

type HandResult struct {
	Cards    []deck.Card
	BestFive []deck.Card
	Score    int64
	Rank     string
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	var board []deck.Card
	if cli.Board != "" {
		var err error
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			ctx.Exit(1)
		}
		if len(board) < 3 || len(board) > 5 {
			fmt.Fprintf(os.Stderr, "Board must have 3 to 5 cards, got %d\n", len(board))
			ctx.Exit(1)
		}
	}

	hands, err := parseHands(cli.Hands, len(board) > 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	all := make([]deck.Card, 0, len(board)+2*len(hands))
	all = append(all, board...)
	for _, hand := range hands {
		all = append(all, hand...)
	}
	if card, dup := evaluator.FirstDuplicate(all); dup {
		fmt.Fprintf(os.Stderr, "Error: duplicate card %s\n", card)
		ctx.Exit(1)
	}

	results := make([]HandResult, len(hands))
	for i, hand := range hands {
		full := make([]deck.Card, 0, len(hand)+len(board))
		full = append(full, hand...)
		full = append(full, board...)

		best, score := evaluator.BestFive(full)
		results[i] = HandResult{
			Cards:    hand,
			BestFive: best,
			Score:    score,
			Rank:     evaluator.Describe(best),
		}
	}

	displayResults(results, board)
}

func parseHands(handStrings []string, withBoard bool) ([][]deck.Card, error) {
	var hands [][]deck.Card

	for i, handStr := range handStrings {
		hand, err := deck.ParseCards(handStr)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %v", i+1, err)
		}
		if withBoard && len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards with a board, got %d", i+1, len(hand))
		}
		if !withBoard && (len(hand) < 2 || len(hand) > 7) {
			return nil, fmt.Errorf("hand %d: must contain 2 to 7 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}

	return hands, nil
}

func displayResults(results []HandResult, board []deck.Card) {
	if len(board) > 0 {
		fmt.Printf("%s\n", headerStyle.Render("board"))
		fmt.Printf("%s\n\n", formatCards(board))
	}

	// Lower scores are stronger hands.
	best := results[0].Score
	for _, r := range results[1:] {
		if r.Score < best {
			best = r.Score
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t\n",
		headerStyle.Render("hand"),
		headerStyle.Render("rank"),
		headerStyle.Render("best five"))

	for _, r := range results {
		marker := ""
		if r.Score == best && len(results) > 1 {
			marker = winStyle.Render("winner")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			handStyle.Render(formatCards(r.Cards)),
			rankStyle.Render(r.Rank),
			bestStyle.Render(formatCards(r.BestFive)),
			marker)
	}

	w.Flush()
}

func formatCards(cards []deck.Card) string {
	var parts []string
	for _, card := range cards {
		parts = append(parts, card.String())
	}
	return strings.Join(parts, " ")
}
