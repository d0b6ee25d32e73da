package state

import (
	"fmt"
	"strings"
	"testing"
)

func newTestStore() *Store {
	return New([2]string{"Claude", "GPT"}, [2]string{"model-a", "model-b"}, 1000)
}

func TestNewStoreDefaults(t *testing.T) {
	s := newTestStore()
	snap := s.Snapshot()
	if snap.Seats[0].Name != "Claude" || snap.Seats[1].Name != "GPT" {
		t.Fatalf("names = %q/%q", snap.Seats[0].Name, snap.Seats[1].Name)
	}
	if snap.Seats[0].Stack != 1000 || snap.Seats[1].Stack != 1000 {
		t.Fatal("stacks not seeded")
	}
	if snap.Seats[0].Equity != 50.0 {
		t.Fatal("equity should start even")
	}
	if s.StartingTotal() != 2000 {
		t.Fatalf("starting total = %d", s.StartingTotal())
	}
}

func TestBeginHandAlternatesDealerAndClearsTransients(t *testing.T) {
	s := newTestStore()
	s.SetHoleCards(SeatA, []string{"A♠", "K♦"})
	s.PushAction("Claude raises $40")
	s.SetEquity(80, 20)

	hand, match, dealer := s.BeginHand()
	if hand != 1 || match != 1 || dealer != SeatA {
		t.Fatalf("first hand: hand=%d match=%d dealer=%v", hand, match, dealer)
	}
	snap := s.Snapshot()
	if len(snap.Seats[0].Cards) != 0 || len(snap.ActionHistory) != 0 {
		t.Fatal("transient fields not cleared")
	}
	if snap.Seats[0].Equity != 50.0 || snap.Seats[1].Equity != 50.0 {
		t.Fatal("equity not reset to even")
	}
	if snap.Street != "preflop" || snap.Winner != "" {
		t.Fatalf("street=%q winner=%q", snap.Street, snap.Winner)
	}

	_, _, dealer = s.BeginHand()
	if dealer != SeatB {
		t.Fatal("dealer did not alternate")
	}
}

func TestLogAndThoughtCaps(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 60; i++ {
		s.AddLog("line %d", i)
	}
	logs := s.Logs(100)
	if len(logs) != 50 {
		t.Fatalf("log cap = %d, want 50", len(logs))
	}
	if !strings.Contains(logs[len(logs)-1], "line 59") {
		t.Fatalf("newest log missing: %q", logs[len(logs)-1])
	}
	if got := s.Logs(20); len(got) != 20 {
		t.Fatalf("Logs(20) = %d entries", len(got))
	}

	for i := 0; i < 15; i++ {
		s.AddThought(SeatA, fmt.Sprintf("thought %d", i))
	}
	thoughts := s.Thoughts(100)
	if len(thoughts) != 10 {
		t.Fatalf("thought cap = %d, want 10", len(thoughts))
	}
	if !strings.HasPrefix(thoughts[0], "Claude: ") {
		t.Fatalf("thought not attributed: %q", thoughts[0])
	}
}

func TestActionHistoryNewestFirstCapped(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 12; i++ {
		s.PushAction(fmt.Sprintf("action %d", i))
	}
	snap := s.Snapshot()
	if len(snap.ActionHistory) != 10 {
		t.Fatalf("action cap = %d", len(snap.ActionHistory))
	}
	if snap.ActionHistory[0] != "action 11" {
		t.Fatalf("newest not first: %q", snap.ActionHistory[0])
	}
}

func TestRecordHandResultTrackers(t *testing.T) {
	s := newTestStore()
	s.BeginHand()
	s.SetStacks([2]int{1100, 900})
	s.RecordHandResult(1, SeatA, 200)

	snap := s.Snapshot()
	if snap.Seats[0].HandWins != 1 || snap.Seats[0].Streak != 1 {
		t.Fatal("winner counters not updated")
	}
	if snap.Winner != "Claude" {
		t.Fatalf("winner = %q", snap.Winner)
	}
	if snap.BiggestPot != 200 || snap.AveragePot != 200 {
		t.Fatalf("pot trackers: biggest=%d avg=%v", snap.BiggestPot, snap.AveragePot)
	}
	if len(snap.HandHistory) != 1 || !strings.Contains(snap.HandHistory[0], "Claude wins $200") {
		t.Fatalf("hand history: %v", snap.HandHistory)
	}
	if len(snap.StackHistory) != 1 || snap.StackHistory[0].Stacks != [2]int{1100, 900} {
		t.Fatalf("stack history: %v", snap.StackHistory)
	}

	s.BeginHand()
	s.RecordHandResult(2, SeatB, 100)
	snap = s.Snapshot()
	if snap.Seats[0].Streak != 0 || snap.Seats[1].Streak != 1 {
		t.Fatal("streaks not swapped by a loss")
	}
	if snap.AveragePot != 150 {
		t.Fatalf("average pot = %v, want 150", snap.AveragePot)
	}
}

func TestHandAndStackHistoryCaps(t *testing.T) {
	s := newTestStore()
	for i := 1; i <= 12; i++ {
		s.BeginHand()
		s.RecordHandResult(i, SeatA, 10*i)
	}
	snap := s.Snapshot()
	if len(snap.HandHistory) != 5 {
		t.Fatalf("hand history cap = %d, want 5", len(snap.HandHistory))
	}
	if !strings.Contains(snap.HandHistory[0], "Hand #12") {
		t.Fatalf("newest hand not first: %q", snap.HandHistory[0])
	}
	if len(snap.StackHistory) != 10 {
		t.Fatalf("stack history cap = %d, want 10", len(snap.StackHistory))
	}
	if snap.StackHistory[0].HandNumber != 3 {
		t.Fatalf("oldest stack point = %d, want 3", snap.StackHistory[0].HandNumber)
	}
}

func TestResetMatchClearsPerMatchOnly(t *testing.T) {
	s := newTestStore()
	s.BeginHand()
	s.SetStacks([2]int{1900, 100})
	s.RecordHandResult(1, SeatA, 1800)
	s.IncrementAllIn()
	length := s.RecordGameEnd(SeatA)
	if length != 1 {
		t.Fatalf("match length = %d", length)
	}
	s.ResetMatch()

	snap := s.Snapshot()
	if snap.Seats[0].Stack != 1000 || snap.Seats[1].Stack != 1000 {
		t.Fatal("stacks not restored to the even split")
	}
	if snap.Seats[0].HandWins != 0 || snap.Seats[0].Streak != 0 {
		t.Fatal("per-match counters survived reset")
	}
	if snap.MatchHands != 0 || snap.BiggestPot != 0 || snap.AllInCount != 0 {
		t.Fatal("match trackers survived reset")
	}
	if len(snap.HandHistory) != 0 || len(snap.StackHistory) != 0 {
		t.Fatal("histories survived reset")
	}
	// Cross-match state survives.
	if snap.Seats[0].GameWins != 1 {
		t.Fatal("game wins should survive reset")
	}
	if snap.HandNumber != 1 {
		t.Fatal("global hand counter should survive reset")
	}
	// Dealer rotation continues across the reset.
	_, _, dealer := s.BeginHand()
	if dealer != SeatB {
		t.Fatalf("dealer after reset = %v, want SeatB", dealer)
	}
}

func TestGameEndExtremes(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 3; i++ {
		s.BeginHand()
	}
	s.RecordGameEnd(SeatA)
	s.ResetMatch()
	s.BeginHand()
	s.RecordGameEnd(SeatB)

	snap := s.Snapshot()
	if snap.ShortestMatch != 1 || snap.LongestMatch != 3 {
		t.Fatalf("extremes = %d/%d, want 1/3", snap.ShortestMatch, snap.LongestMatch)
	}
}

func TestCountdownRequestIsConsumedOnce(t *testing.T) {
	s := newTestStore()
	if s.TakeCountdownRequest() {
		t.Fatal("fresh store should have no pending countdown")
	}
	s.RequestCountdown()
	if !s.TakeCountdownRequest() {
		t.Fatal("request not delivered")
	}
	if s.TakeCountdownRequest() {
		t.Fatal("request delivered twice")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore()
	s.SetHoleCards(SeatA, []string{"A♠", "K♦"})
	snap := s.Snapshot()
	snap.Seats[0].Cards[0] = "mutated"
	snap.Community = append(snap.Community, "extra")

	again := s.Snapshot()
	if again.Seats[0].Cards[0] != "A♠" {
		t.Fatal("snapshot shares card slice with the store")
	}
	if len(again.Community) != 0 {
		t.Fatal("snapshot shares community slice with the store")
	}
}

func TestRecordMixPercentages(t *testing.T) {
	s := newTestStore()
	s.RecordMix(SeatA, "raise", false)
	s.RecordMix(SeatA, "call", true) // checked
	s.RecordMix(SeatA, "call", false)
	s.RecordMix(SeatA, "fold", false)

	m := s.Snapshot().Mix[SeatA]
	if m.Raises != 1 || m.Checks != 1 || m.Calls != 1 || m.Folds != 1 || m.Total != 4 {
		t.Fatalf("mix counts: %+v", m)
	}
	if m.RaisePct != 25 || m.FoldPct != 25 {
		t.Fatalf("mix percentages: %+v", m)
	}
}
