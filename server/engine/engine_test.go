package engine

import "testing"

func newTestHand(t *testing.T) *Hand {
	t.Helper()
	cfg := Config{SB: 5, BB: 10, StartStack: 1000}
	return NewHand("h1", cfg, NewDeck(7), "alice", "bob")
}

func TestNewHandPostsBlinds(t *testing.T) {
	h := newTestHand(t)
	if h.Pot != 15 {
		t.Fatalf("pot after blinds = %d, want 15", h.Pot)
	}
	if h.SB.Stack != 995 || h.BB.Stack != 990 {
		t.Fatalf("stacks after blinds = %d/%d, want 995/990", h.SB.Stack, h.BB.Stack)
	}
	if h.ToAct != SB {
		t.Fatalf("preflop first to act = %s, want SB", h.ToAct)
	}
	if len(h.SB.Hole) != 2 || len(h.BB.Hole) != 2 {
		t.Fatal("hole cards not dealt")
	}
}

func TestLegalEnvelopePreflop(t *testing.T) {
	h := newTestHand(t)
	legal := h.Legal()
	if len(legal) != 3 {
		t.Fatalf("want fold/call/raise, got %v", legal)
	}
	var call, raise ValidAction
	for _, va := range legal {
		switch va.Kind {
		case Call:
			call = va
		case Raise:
			raise = va
		}
	}
	if call.Amount != 5 {
		t.Errorf("call price = %d, want 5", call.Amount)
	}
	if raise.Min != 20 {
		t.Errorf("min raise-to = %d, want 20", raise.Min)
	}
	if raise.Max != 1000 {
		t.Errorf("max raise-to = %d, want 1000", raise.Max)
	}
}

func TestLegalOmitsRaiseAgainstAllIn(t *testing.T) {
	h := newTestHand(t)
	if err := h.Apply(Raise, 1000); err != nil { // SB shoves
		t.Fatal(err)
	}
	legal := h.Legal()
	for _, va := range legal {
		if va.Kind == Raise {
			t.Fatalf("raise offered against an all-in: %v", legal)
		}
	}
}

func TestLegalShortStackRaiseInterval(t *testing.T) {
	cfg := Config{SB: 5, BB: 10, StartStack: 12}
	h := NewHand("h1", cfg, NewDeck(7), "alice", "bob")
	// SB has 7 behind; a full min-raise to 20 is impossible, so the only
	// raise is the short all-in to 12.
	for _, va := range h.Legal() {
		if va.Kind == Raise {
			if va.Min != va.Max || va.Max != 12 {
				t.Fatalf("short-stack raise interval = [%d,%d], want [12,12]", va.Min, va.Max)
			}
			return
		}
	}
	t.Fatal("no raise offered")
}

func TestApplyRejectsUnderMinRaise(t *testing.T) {
	h := newTestHand(t)
	if err := h.Apply(Raise, 15); err == nil {
		t.Fatal("raise below minimum accepted")
	}
	if err := h.Apply(Raise, 20); err != nil {
		t.Fatalf("min raise rejected: %v", err)
	}
	if h.CurBet != 20 || h.MinRaise != 10 {
		t.Fatalf("after raise: curBet=%d minRaise=%d", h.CurBet, h.MinRaise)
	}
}

func TestNextStreetResetsBetting(t *testing.T) {
	h := newTestHand(t)
	_ = h.Apply(Call, 0)
	_ = h.Apply(Call, 0)
	h.NextStreet()
	if h.Street != "flop" || len(h.Board) != 3 {
		t.Fatalf("street=%s board=%d", h.Street, len(h.Board))
	}
	if h.CurBet != 0 || h.SB.Committed != 0 || h.BB.Committed != 0 {
		t.Fatal("street change should reset committed amounts")
	}
	if h.ToAct != BB {
		t.Fatalf("postflop first to act = %s, want BB", h.ToAct)
	}
}

func fixedDecision(kind ActionKind, amount int) DecisionFunc {
	return func(legal []ValidAction, hole []Card, round RoundState) (ActionKind, int) {
		return kind, amount
	}
}

func runGame(t *testing.T, sb, bb DecisionFunc) *GameResult {
	t.Helper()
	cfg := Configure(1, 1000, 5)
	if err := cfg.RegisterSeat("alice", sb); err != nil {
		t.Fatal(err)
	}
	if err := cfg.RegisterSeat("bob", bb); err != nil {
		t.Fatal(err)
	}
	res, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func stacksByIdentity(res *GameResult) map[string]int {
	m := map[string]int{}
	for _, s := range res.Seats {
		m[s.Identity] = s.FinalStack
	}
	return m
}

func TestRunInstantFoldAwardsBlinds(t *testing.T) {
	res := runGame(t, fixedDecision(Fold, 0), fixedDecision(Call, 0))
	st := stacksByIdentity(res)
	if st["alice"] != 995 || st["bob"] != 1005 {
		t.Fatalf("stacks = %v, want alice 995 / bob 1005", st)
	}
	if res.WentToShowdown {
		t.Fatal("folded hand marked as showdown")
	}
}

func TestRunCheckDownConservesChips(t *testing.T) {
	res := runGame(t, fixedDecision(Call, 0), fixedDecision(Call, 0))
	st := stacksByIdentity(res)
	if st["alice"]+st["bob"] != 2000 {
		t.Fatalf("chips not conserved: %v", st)
	}
	if res.Pot != 20 {
		t.Fatalf("checked-down pot = %d, want 20", res.Pot)
	}
	if !res.WentToShowdown {
		t.Fatal("checked-down hand should reach showdown")
	}
	if len(res.Board) != 5 {
		t.Fatalf("board = %d cards, want 5", len(res.Board))
	}
}

func TestRunAllInRunsOutBoard(t *testing.T) {
	shove := func(legal []ValidAction, hole []Card, round RoundState) (ActionKind, int) {
		for _, va := range legal {
			if va.Kind == Raise {
				return Raise, va.Max
			}
		}
		return Call, 0
	}
	res := runGame(t, shove, fixedDecision(Call, 0))
	st := stacksByIdentity(res)
	if st["alice"]+st["bob"] != 2000 {
		t.Fatalf("chips not conserved: %v", st)
	}
	if res.Pot != 2000 {
		t.Fatalf("all-in pot = %d, want 2000", res.Pot)
	}
	if len(res.Board) != 5 {
		t.Fatalf("all-in board must run out, got %d cards", len(res.Board))
	}
}

func TestRunSurvivesPanickingCallback(t *testing.T) {
	boom := func(legal []ValidAction, hole []Card, round RoundState) (ActionKind, int) {
		panic("bad decision")
	}
	cfg := Configure(1, 1000, 5)
	_ = cfg.RegisterSeat("alice", boom)
	_ = cfg.RegisterSeat("bob", fixedDecision(Call, 0))
	if _, err := Run(cfg); err == nil {
		t.Fatal("expected an error from a panicking callback")
	}
}

func TestRegisterSeatRejectsThird(t *testing.T) {
	cfg := Configure(1, 1000, 5)
	_ = cfg.RegisterSeat("a", fixedDecision(Call, 0))
	_ = cfg.RegisterSeat("b", fixedDecision(Call, 0))
	if err := cfg.RegisterSeat("c", fixedDecision(Call, 0)); err == nil {
		t.Fatal("third seat accepted")
	}
}
