package engine

type Seat string

const (
	SB Seat = "SB"
	BB Seat = "BB"
)

type ActionKind string

// Heads-up action set. A call with nothing owed behaves as a check; the
// engine never exposes a separate check action.
const (
	Fold  ActionKind = "fold"
	Call  ActionKind = "call"
	Raise ActionKind = "raise"
)

type Action struct {
	Identity string     `json:"identity"`
	Kind     ActionKind `json:"action"`
	Amount   int        `json:"to,omitempty"`
}

// ValidAction is one entry of the legal-action envelope for the seat to act.
// Amount is the call price (0 when checking is free); Min/Max bound the
// raise-to total and are meaningful only when Kind is Raise.
type ValidAction struct {
	Kind   ActionKind `json:"action"`
	Amount int        `json:"amount,omitempty"`
	Min    int        `json:"min,omitempty"`
	Max    int        `json:"max,omitempty"`
}

type Card struct {
	Rank int
	Suit byte
} // e.g. "As" => rank 14, suit 's'
