// Package state holds the single mutable structure shared between the match
// loop (writer) and the HTTP read handlers. All access goes through the
// Store's lock; readers get value-copied snapshots. Readers may observe a
// hand mid-update (board ahead of pot, say) — that staleness window is
// accepted and harmless.
package state

import (
	"fmt"
	"sync"
	"time"
)

type SeatID int

const (
	SeatA SeatID = 0
	SeatB SeatID = 1
)

func (s SeatID) Other() SeatID {
	if s == SeatA {
		return SeatB
	}
	return SeatA
}

const (
	maxLogs          = 50
	maxThoughts      = 10
	maxActionHistory = 10
	maxHandHistory   = 5
	maxStackHistory  = 10
)

type Seat struct {
	Name          string   `json:"name"`
	Model         string   `json:"model"`
	Stack         int      `json:"stack"`
	Cards         []string `json:"cards"`
	CurrentAction string   `json:"current_action"`
	Thinking      bool     `json:"thinking"`
	Equity        float64  `json:"equity"`
	HandWins      int      `json:"hand_wins"`
	GameWins      int      `json:"game_wins"`
	Streak        int      `json:"streak"`
}

type StackPoint struct {
	HandNumber int    `json:"hand_number"`
	Stacks     [2]int `json:"stacks"`
}

// Snapshot is the value copy handed to readers (and serialized by the state
// endpoint).
type Snapshot struct {
	HandNumber     int          `json:"hand_number"`
	MatchHands     int          `json:"match_hands"`
	Street         string       `json:"street"`
	Pot            int          `json:"pot"`
	Community      []string     `json:"community_cards"`
	Winner         string       `json:"winner"`
	Dealer         string       `json:"dealer"`
	SmallBlind     int          `json:"small_blind"`
	BigBlind       int          `json:"big_blind"`
	Countdown      int          `json:"countdown"`
	PauseCountdown int          `json:"pause_countdown"`
	Playing        bool         `json:"is_playing"`
	Seats          [2]Seat      `json:"seats"`
	Mix            [2]ActionMix `json:"action_mix"`
	BiggestPot     int          `json:"biggest_pot"`
	AveragePot     float64      `json:"average_pot"`
	AllInCount     int          `json:"all_in_count"`
	ShortestMatch  int          `json:"shortest_match"`
	LongestMatch   int          `json:"longest_match"`
	ActionHistory  []string     `json:"action_history"`
	HandHistory    []string     `json:"hand_history"`
	StackHistory   []StackPoint `json:"stack_history"`
}

type Store struct {
	mu sync.RWMutex

	snap       Snapshot
	dealer     SeatID
	startTotal int

	potHistory []int
	logs       []string
	thoughts   []string

	countdownWanted bool
}

func New(names, models [2]string, startStack int) *Store {
	s := &Store{startTotal: 2 * startStack}
	s.snap.Street = "waiting"
	s.dealer = SeatB // first BeginHand flips to SeatA
	for i := range s.snap.Seats {
		s.snap.Seats[i].Name = names[i]
		s.snap.Seats[i].Model = models[i]
		s.snap.Seats[i].Stack = startStack
		s.snap.Seats[i].Equity = 50.0
	}
	return s
}

// StartingTotal is the fixed chip pool a match conserves.
func (s *Store) StartingTotal() int { return s.startTotal }

func (s *Store) Name(id SeatID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Seats[id].Name
}

func (s *Store) Model(id SeatID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Seats[id].Model
}

// Snapshot deep-copies the shared structure.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.snap
	out.Community = append([]string{}, s.snap.Community...)
	out.ActionHistory = append([]string{}, s.snap.ActionHistory...)
	out.HandHistory = append([]string{}, s.snap.HandHistory...)
	out.StackHistory = append([]StackPoint{}, s.snap.StackHistory...)
	for i := range out.Seats {
		out.Seats[i].Cards = append([]string{}, s.snap.Seats[i].Cards...)
	}
	return out
}

// Logs returns up to n of the most recent log lines, oldest first.
func (s *Store) Logs(n int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tail(s.logs, n)
}

// Thoughts returns up to n of the most recent thought lines, oldest first.
func (s *Store) Thoughts(n int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tail(s.thoughts, n)
}

func tail(ss []string, n int) []string {
	if n > len(ss) {
		n = len(ss)
	}
	return append([]string{}, ss[len(ss)-n:]...)
}

func (s *Store) AddLog(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	s.logs = append(s.logs, line)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

func (s *Store) AddThought(id SeatID, thought string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thoughts = append(s.thoughts, fmt.Sprintf("%s: %s", s.snap.Seats[id].Name, thought))
	if len(s.thoughts) > maxThoughts {
		s.thoughts = s.thoughts[len(s.thoughts)-maxThoughts:]
	}
}

func (s *Store) Playing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Playing
}

func (s *Store) SetPlaying(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Playing = v
}

// RequestCountdown asks the loop to run the pre-match countdown before the
// next hand. Set on explicit start and after every match reset.
func (s *Store) RequestCountdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdownWanted = true
}

// TakeCountdownRequest consumes a pending countdown request.
func (s *Store) TakeCountdownRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.countdownWanted
	s.countdownWanted = false
	return v
}

func (s *Store) SetCountdown(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Countdown = v
	s.snap.Street = "countdown"
}

func (s *Store) SetPauseCountdown(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.PauseCountdown = v
}

// BeginHand bumps the hand counters, wipes per-hand transient fields and
// alternates the dealer. Returns the new global hand number, the number of
// hands in the current match, and the dealer seat.
func (s *Store) BeginHand() (handNumber, matchHands int, dealer SeatID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.HandNumber++
	s.snap.MatchHands++
	s.snap.Street = "preflop"
	s.snap.Pot = 0
	s.snap.Community = nil
	s.snap.Winner = ""
	s.snap.Countdown = 0
	s.snap.PauseCountdown = 0
	s.snap.ActionHistory = nil
	s.dealer = s.dealer.Other()
	s.snap.Dealer = s.snap.Seats[s.dealer].Name
	for i := range s.snap.Seats {
		s.snap.Seats[i].Cards = nil
		s.snap.Seats[i].CurrentAction = ""
		s.snap.Seats[i].Thinking = false
		s.snap.Seats[i].Equity = 50.0
	}
	return s.snap.HandNumber, s.snap.MatchHands, s.dealer
}

func (s *Store) SetBlinds(small, big int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SmallBlind = small
	s.snap.BigBlind = big
}

func (s *Store) Stacks() [2]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return [2]int{s.snap.Seats[0].Stack, s.snap.Seats[1].Stack}
}

func (s *Store) SetStacks(stacks [2]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snap.Seats {
		s.snap.Seats[i].Stack = stacks[i]
	}
}

func (s *Store) ZeroStack(id SeatID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Seats[id].Stack = 0
}

// ProjectTable refreshes the viewer-facing table fields mid-hand. Called
// from the decision adapter only.
func (s *Store) ProjectTable(street string, board []string, pot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Street = street
	s.snap.Community = append([]string{}, board...)
	s.snap.Pot = pot
}

func (s *Store) SetHoleCards(id SeatID, cards []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Seats[id].Cards = append([]string{}, cards...)
}

func (s *Store) HoleCards(id SeatID) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.snap.Seats[id].Cards...)
}

func (s *Store) SetEquity(a, b float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Seats[SeatA].Equity = a
	s.snap.Seats[SeatB].Equity = b
}

func (s *Store) SetThinking(id SeatID, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Seats[id].Thinking = v
}

// PushAction prepends a formatted action entry (newest first, bounded).
func (s *Store) PushAction(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.ActionHistory = append([]string{entry}, s.snap.ActionHistory...)
	if len(s.snap.ActionHistory) > maxActionHistory {
		s.snap.ActionHistory = s.snap.ActionHistory[:maxActionHistory]
	}
}

func (s *Store) SetActionLabel(id SeatID, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Seats[id].CurrentAction = label
}

func (s *Store) IncrementAllIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.AllInCount++
}

// RecordHandResult settles display state and per-match counters after a
// completed hand.
func (s *Store) RecordHandResult(handNumber int, winner SeatID, pot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loser := winner.Other()
	s.snap.Winner = s.snap.Seats[winner].Name
	s.snap.Pot = pot
	s.snap.Seats[winner].HandWins++
	s.snap.Seats[winner].Streak++
	s.snap.Seats[loser].Streak = 0
	if pot > s.snap.BiggestPot {
		s.snap.BiggestPot = pot
	}
	s.potHistory = append(s.potHistory, pot)
	sum := 0
	for _, p := range s.potHistory {
		sum += p
	}
	s.snap.AveragePot = float64(sum) / float64(len(s.potHistory))

	entry := fmt.Sprintf("Hand #%d: %s wins $%d", handNumber, s.snap.Seats[winner].Name, pot)
	s.snap.HandHistory = append([]string{entry}, s.snap.HandHistory...)
	if len(s.snap.HandHistory) > maxHandHistory {
		s.snap.HandHistory = s.snap.HandHistory[:maxHandHistory]
	}

	s.snap.StackHistory = append(s.snap.StackHistory, StackPoint{
		HandNumber: handNumber,
		Stacks:     [2]int{s.snap.Seats[0].Stack, s.snap.Seats[1].Stack},
	})
	if len(s.snap.StackHistory) > maxStackHistory {
		s.snap.StackHistory = s.snap.StackHistory[len(s.snap.StackHistory)-maxStackHistory:]
	}
}

// RecordGameEnd credits a game win and folds the completed match length into
// the cross-match extremes. Returns the length of the match in hands.
func (s *Store) RecordGameEnd(winner SeatID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Seats[winner].GameWins++
	length := s.snap.MatchHands
	if s.snap.ShortestMatch == 0 || length < s.snap.ShortestMatch {
		s.snap.ShortestMatch = length
	}
	if length > s.snap.LongestMatch {
		s.snap.LongestMatch = length
	}
	return length
}

// ResetMatch restores the even split of the fixed chip pool and clears every
// per-match counter. Cross-match counters (game wins, extremes) and the
// dealer rotation survive.
func (s *Store) ResetMatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	half := s.startTotal / 2
	for i := range s.snap.Seats {
		s.snap.Seats[i].Stack = half
		s.snap.Seats[i].HandWins = 0
		s.snap.Seats[i].Streak = 0
	}
	s.snap.MatchHands = 0
	s.snap.BiggestPot = 0
	s.snap.AveragePot = 0
	s.snap.AllInCount = 0
	s.snap.HandHistory = nil
	s.snap.StackHistory = nil
	s.potHistory = nil
}
