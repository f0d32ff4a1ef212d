package game

// Action is a closed enumeration of the moves recorded by the betting
// engine. Fold through AllIn are player decisions accepted by the state
// machine; SmallBlind and BigBlind appear only as forced posts in the
// betting history.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
	SmallBlind
	BigBlind
)

var actionNames = [...]string{
	"fold",
	"check",
	"call",
	"bet",
	"raise",
	"all_in",
	"small_blind",
	"big_blind",
}

func (a Action) String() string {
	if a < Fold || a > BigBlind {
		return "unknown"
	}
	return actionNames[a]
}

// Phase is one step of a hand's lifecycle. Phases advance strictly
// forward; a new hand restarts at Preflop.
type Phase int

const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
	Finished
)

var phaseNames = [...]string{
	"preflop",
	"flop",
	"turn",
	"river",
	"showdown",
	"finished",
}

func (p Phase) String() string {
	if p < Preflop || p > Finished {
		return "unknown"
	}
	return phaseNames[p]
}
