package engine

import (
	"fmt"
	"sync/atomic"
)

// DecisionFunc is invoked once per legal action point. Implementations must
// return one of the offered kinds; anything else is coerced to a safe
// fallback by the engine.
type DecisionFunc func(legal []ValidAction, hole []Card, round RoundState) (ActionKind, int)

// RoundState is the table snapshot handed to a DecisionFunc.
type RoundState struct {
	HandID    string
	Street    string
	Board     []Card
	Pot       int
	Stacks    map[string]int
	Histories map[string][]Action // street -> actions in order
}

type seatReg struct {
	identity string
	decide   DecisionFunc
}

// GameConfig mirrors the configure/registerSeat/run collaborator contract:
// one call plays MaxHands hands (the match loop always uses 1) with both
// seats starting from InitialStack.
type GameConfig struct {
	MaxHands     int
	InitialStack int
	SmallBlind   int
	seats        []seatReg
}

func Configure(maxHands, initialStack, smallBlind int) *GameConfig {
	if maxHands <= 0 {
		maxHands = 1
	}
	return &GameConfig{MaxHands: maxHands, InitialStack: initialStack, SmallBlind: smallBlind}
}

func (c *GameConfig) RegisterSeat(identity string, decide DecisionFunc) error {
	if len(c.seats) >= 2 {
		return fmt.Errorf("game is heads-up: seat %q rejected", identity)
	}
	c.seats = append(c.seats, seatReg{identity: identity, decide: decide})
	return nil
}

type SeatResult struct {
	Identity   string `json:"identity"`
	FinalStack int    `json:"final_stack"`
}

type GameResult struct {
	Seats          []SeatResult `json:"seats"`
	Pot            int          `json:"pot"`
	Board          []Card       `json:"board"`
	WentToShowdown bool         `json:"went_to_showdown"`
}

var handSeq atomic.Int64

// Run plays the configured hands to completion. The first registered seat
// posts the small blind. Decision callbacks are invoked serially, one per
// action point; a panicking callback aborts the hand with an error rather
// than crashing the caller.
func Run(cfg *GameConfig) (res *GameResult, err error) {
	if len(cfg.seats) != 2 {
		return nil, fmt.Errorf("need exactly 2 seats, have %d", len(cfg.seats))
	}
	if cfg.InitialStack <= 0 {
		return nil, fmt.Errorf("initial stack must be positive")
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("hand aborted: %v", r)
		}
	}()

	hcfg := Config{SB: cfg.SmallBlind, BB: 2 * cfg.SmallBlind, StartStack: cfg.InitialStack}
	var h *Hand
	for i := 0; i < cfg.MaxHands; i++ {
		id := fmt.Sprintf("hand-%d", handSeq.Add(1))
		h = NewHand(id, hcfg, NewDeck(0), cfg.seats[0].identity, cfg.seats[1].identity)
		if err := playHand(h, cfg.seats[0].decide, cfg.seats[1].decide); err != nil {
			return nil, err
		}
	}
	return &GameResult{
		Seats: []SeatResult{
			{Identity: h.SB.Identity, FinalStack: h.SB.Stack},
			{Identity: h.BB.Identity, FinalStack: h.BB.Stack},
		},
		Pot:            h.Pot,
		Board:          h.Board,
		WentToShowdown: !h.SB.Folded && !h.BB.Folded,
	}, nil
}

const maxActionsPerStreet = 20

func playHand(h *Hand, sbDecide, bbDecide DecisionFunc) error {
	histories := map[string][]Action{}

	for {
		folded, settled := runStreet(h, sbDecide, bbDecide, histories)
		if folded {
			break
		}
		if h.Street == "river" {
			break
		}
		h.NextStreet()
		if settled {
			// Someone is all-in and matched: deal the board out with no
			// further action.
			for h.Street != "river" {
				h.NextStreet()
			}
			break
		}
	}

	payout(h)
	return nil
}

// runStreet runs one betting round. It reports whether the hand ended by a
// fold, and whether betting is finished for the rest of the hand (all-in).
func runStreet(h *Hand, sbDecide, bbDecide DecisionFunc, histories map[string][]Action) (folded, settled bool) {
	street := h.Street
	acted := 0

	for j := 0; j < maxActionsPerStreet; j++ {
		a := h.actor()
		legal := h.Legal()
		if legal == nil {
			// Seat is all-in; betting for the hand is over.
			return false, true
		}

		decide := sbDecide
		if a.Seat == BB {
			decide = bbDecide
		}
		kind, amount := decide(legal, a.Hole, RoundState{
			HandID:    h.ID,
			Street:    street,
			Board:     append([]Card{}, h.Board...),
			Pot:       h.Pot,
			Stacks:    map[string]int{h.SB.Identity: h.SB.Stack, h.BB.Identity: h.BB.Stack},
			Histories: histories,
		})

		if !kindOffered(legal, kind) || h.Apply(kind, amount) != nil {
			// One-shot fallback, mirroring the callback contract: call if
			// offered, else fold.
			kind = Call
			if !kindOffered(legal, Call) || h.Apply(Call, 0) != nil {
				kind = Fold
				_ = h.Apply(Fold, 0)
			}
		}
		last := h.History[len(h.History)-1]
		histories[street] = append(histories[street], last)
		acted++

		if last.Kind == Fold {
			return true, false
		}
		if h.SB.AllIn || h.BB.AllIn {
			if h.SB.Committed == h.BB.Committed || h.SB.AllIn && h.BB.AllIn {
				return false, true
			}
			continue
		}
		if acted >= 2 && h.SB.Committed == h.BB.Committed {
			return false, false
		}
	}
	return false, false
}

func kindOffered(legal []ValidAction, kind ActionKind) bool {
	for _, va := range legal {
		if va.Kind == kind {
			return true
		}
	}
	return false
}

func payout(h *Hand) {
	// Return any uncalled excess before awarding the contested pot.
	if exc := h.SB.Contributed - h.BB.Contributed; exc > 0 {
		h.SB.Stack += exc
		h.Pot -= exc
	} else if exc < 0 {
		h.BB.Stack += -exc
		h.Pot += exc
	}
	switch h.Showdown() {
	case SB:
		h.SB.Stack += h.Pot
	case BB:
		h.BB.Stack += h.Pot
	default:
		half := h.Pot / 2
		h.SB.Stack += half + h.Pot%2 // odd chip to the small blind
		h.BB.Stack += half
	}
}
