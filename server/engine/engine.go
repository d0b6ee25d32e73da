package engine

import "fmt"

type Config struct{ SB, BB, StartStack int }

type Player struct {
	Identity    string
	Seat        Seat
	Stack       int
	Committed   int // this street
	Contributed int // whole hand
	Hole        []Card
	Folded      bool
	AllIn       bool
}

type Hand struct {
	ID       string
	Cfg      Config
	Deck     []Card
	Board    []Card
	Pot      int
	Street   string
	SB, BB   *Player
	ToAct    Seat
	CurBet   int
	MinRaise int
	History  []Action
}

func NewHand(id string, cfg Config, deck []Card, sbIdentity, bbIdentity string) *Hand {
	h := &Hand{
		ID: id, Cfg: cfg, Deck: deck, Street: "preflop",
		SB: &Player{Identity: sbIdentity, Seat: SB, Stack: cfg.StartStack},
		BB: &Player{Identity: bbIdentity, Seat: BB, Stack: cfg.StartStack},
	}
	h.postBlinds()
	h.dealHole()
	h.ToAct = SB        // HU preflop: SB first
	h.MinRaise = cfg.BB // postflop increment; preflop min-to set by first raise
	return h
}

func (h *Hand) postBlinds() { h.bet(h.SB, h.Cfg.SB); h.bet(h.BB, h.Cfg.BB) }
func (h *Hand) dealHole()   { h.SB.Hole = []Card{h.pop(), h.pop()}; h.BB.Hole = []Card{h.pop(), h.pop()} }
func (h *Hand) pop() Card   { c := h.Deck[0]; h.Deck = h.Deck[1:]; return c }

func (h *Hand) bet(p *Player, amt int) {
	if amt >= p.Stack {
		amt = p.Stack
		p.AllIn = true
	}
	p.Stack -= amt
	p.Committed += amt
	p.Contributed += amt
	if p.Committed > h.CurBet {
		h.CurBet = p.Committed
	}
	h.Pot += amt
}

func (h *Hand) other(p *Player) *Player {
	if p.Seat == SB {
		return h.BB
	}
	return h.SB
}

func (h *Hand) actor() *Player {
	if h.ToAct == SB {
		return h.SB
	}
	return h.BB
}

// Legal returns the action envelope for the seat to act: fold, call (with
// the call price, 0 when nothing is owed) and, when both players can still
// bet, raise with its raise-to bounds.
func (h *Hand) Legal() []ValidAction {
	a := h.actor()
	if a.Folded || a.AllIn {
		return nil
	}
	toCall := h.CurBet - a.Committed
	if toCall < 0 {
		toCall = 0
	}
	out := []ValidAction{
		{Kind: Fold},
		{Kind: Call, Amount: toCall},
	}
	if !h.other(a).AllIn {
		minTo := h.CurBet + h.MinRaise
		if minTo < h.Cfg.BB {
			minTo = h.Cfg.BB
		}
		maxTo := a.Committed + a.Stack
		if minTo > maxTo {
			minTo = maxTo // short all-in is the only raise left
		}
		if maxTo > h.CurBet {
			out = append(out, ValidAction{Kind: Raise, Min: minTo, Max: maxTo})
		}
	}
	return out
}

func (h *Hand) Apply(kind ActionKind, amount int) error {
	a := h.actor()
	switch kind {
	case Fold:
		a.Folded = true
		h.History = append(h.History, Action{Identity: a.Identity, Kind: Fold})
	case Call:
		to := h.CurBet - a.Committed
		if to < 0 {
			to = 0
		}
		h.bet(a, to)
		h.History = append(h.History, Action{Identity: a.Identity, Kind: Call, Amount: to})
	case Raise:
		minTo := h.CurBet + h.MinRaise
		if minTo < h.Cfg.BB {
			minTo = h.Cfg.BB
		}
		maxTo := a.Committed + a.Stack
		if amount > maxTo {
			amount = maxTo
		}
		if amount < minTo && amount < maxTo {
			return fmt.Errorf("min raise to %d", minTo)
		}
		prevCur := h.CurBet
		h.bet(a, amount-a.Committed)
		h.MinRaise = amount - prevCur
		h.History = append(h.History, Action{Identity: a.Identity, Kind: Raise, Amount: amount})
	default:
		return fmt.Errorf("unknown action %q", kind)
	}
	h.ToAct = h.other(a).Seat
	return nil
}

func (h *Hand) NextStreet() {
	switch h.Street {
	case "preflop":
		h.Board = append(h.Board, h.pop(), h.pop(), h.pop())
		h.Street = "flop"
	case "flop":
		h.Board = append(h.Board, h.pop())
		h.Street = "turn"
	case "turn":
		h.Board = append(h.Board, h.pop())
		h.Street = "river"
	}
	h.CurBet = 0
	h.SB.Committed = 0
	h.BB.Committed = 0
	h.MinRaise = h.Cfg.BB
	h.ToAct = BB // postflop in HU
}

// Scores returns the band scores for both hands over the full board
// (larger is stronger).
func (h *Hand) Scores() (sb, bb int) {
	sb = RankScore(append(append([]Card{}, h.SB.Hole...), h.Board...))
	bb = RankScore(append(append([]Card{}, h.BB.Hole...), h.Board...))
	return
}

// Showdown resolves the hand. An empty seat means a chopped pot.
func (h *Hand) Showdown() Seat {
	if h.SB.Folded {
		return BB
	}
	if h.BB.Folded {
		return SB
	}
	sb, bb := h.Scores()
	switch {
	case sb > bb:
		return SB
	case bb > sb:
		return BB
	default:
		return ""
	}
}
