// Package game implements the Texas Hold'em rules engine: player chip
// accounting, the betting and pot engine with side-pot partitioning,
// and the per-hand state machine from blinds through showdown.
//
// The engine is a library with no I/O and no internal locking: a Game
// owns its players, deck, and pots, and callers serialize all
// mutations on one Game. Independent Games share nothing and can run
// concurrently.
//
// Failures split into two classes. Contract violations (acting out of
// turn, money operations on folded players, malformed amounts) panic.
// In-game rejections a caller should expect during normal play
// (checking into a bet, raising below the bet level) return sentinel
// values, 0 or false, and change no state.
package game
