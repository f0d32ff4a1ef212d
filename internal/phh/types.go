// Package phh exports finished hands in the poker hand history (PHH)
// file format used by pokerkit-compatible tooling: one TOML document
// per hand, with seat-ordered arrays rotated so the small blind holds
// position one and the button position N.
package phh

// Hand is one hand in PHH form. Array fields are indexed by PHH
// position, not by table seat. Seed is an extension field carrying the
// table's random seed so a hand can be traced back to its run.
type Hand struct {
	Variant           string   `toml:"variant"`
	HandID            string   `toml:"hand"`
	SeatCount         int      `toml:"seat_count"`
	Players           []string `toml:"players"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Actions           []string `toml:"actions"`
	Year              int      `toml:"year,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Seed              int64    `toml:"seed,omitempty"`
}

// variantNT is the PHH code for no-limit Texas hold'em.
const variantNT = "NT"
