// Package evaluator scores poker hands of two to seven cards.
//
// Evaluate returns an int64 score where LOWER is better: a royal flush
// scores below every other straight flush, which scores below every four
// of a kind, and so on down to high card. Scores from hands of different
// sizes are directly comparable, which is what showdown needs when a
// board runs out but players hold differing live card counts.
//
// The score packs the hand category and up to five tie-break components
// into decimal fields, so two hands in the same category compare by their
// ordered component ranks exactly as poker's kicker rules require.
package evaluator
