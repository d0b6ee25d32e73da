// Package match drives the unattended lifecycle: countdown, hand, pause,
// repeat, with a match reset whenever a seat busts. All waiting goes through
// an injectable clock so the state machine is testable without real time.
package match

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"ai-pokerbattle/server/agent"
	"ai-pokerbattle/server/engine"
	"ai-pokerbattle/server/state"
	"ai-pokerbattle/server/store"
)

const (
	DefaultCountdownSeconds = 60
	DefaultPauseSeconds     = 10
)

type Loop struct {
	Store         *state.Store
	Adapter       *agent.Adapter
	Clock         quartz.Clock
	Logger        *log.Logger
	DB            *store.DB // nil disables archiving
	Models        [2]string
	CountdownSecs int
	PauseSecs     int
}

func NewLoop(st *state.Store, ad *agent.Adapter, clock quartz.Clock, logger *log.Logger, db *store.DB, models [2]string) *Loop {
	return &Loop{
		Store:         st,
		Adapter:       ad,
		Clock:         clock,
		Logger:        logger,
		DB:            db,
		Models:        models,
		CountdownSecs: DefaultCountdownSeconds,
		PauseSecs:     DefaultPauseSeconds,
	}
}

// Run loops until the context is cancelled. Each iteration is wrapped in a
// recover so a misbehaving hand never kills the process.
func (l *Loop) Run(ctx context.Context) {
	for ctx.Err() == nil {
		l.iterate(ctx)
	}
}

func (l *Loop) iterate(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			l.Logger.Error("match loop recovered", "panic", r)
			l.Store.AddLog("ERROR: match loop recovered: %v", r)
			l.sleep(ctx, 5*time.Second)
		}
	}()

	if !l.Store.Playing() {
		l.sleep(ctx, time.Second)
		return
	}
	if l.Store.TakeCountdownRequest() {
		l.Store.AddLog("New match starting in %d seconds...", l.CountdownSecs)
		l.countdown(ctx, l.CountdownSecs, l.Store.SetCountdown)
	}
	if ctx.Err() != nil || !l.Store.Playing() {
		return
	}
	matchEnded := l.playHand(ctx)
	if ctx.Err() != nil || matchEnded || !l.Store.Playing() {
		return
	}
	l.countdown(ctx, l.PauseSecs, l.Store.SetPauseCountdown)
}

// playHand runs one complete hand, settles stacks and counters, and reports
// whether a bust ended the match (in which case the reset and countdown
// request have already happened).
func (l *Loop) playHand(ctx context.Context) (matchEnded bool) {
	handNo, _, dealer := l.Store.BeginHand()
	sb, bb := Blinds(handNo)
	l.Store.SetBlinds(sb, bb)
	names := [2]string{l.Store.Name(state.SeatA), l.Store.Name(state.SeatB)}
	l.Store.AddLog("=== HAND #%d === blinds $%d/$%d, dealer %s", handNo, sb, bb, names[dealer])
	l.Logger.Info("hand start", "hand", handNo, "sb", sb, "bb", bb, "dealer", names[dealer])

	stacks := l.Store.Stacks()
	for _, seat := range []state.SeatID{state.SeatA, state.SeatB} {
		if stacks[seat] < bb {
			l.Store.ZeroStack(seat)
			l.Store.AddLog("%s cannot cover the $%d big blind and is busted!", names[seat], bb)
			l.endMatch(ctx, seat.Other())
			return true
		}
	}

	// The engine deals both seats identical stacks, so it gets the smaller
	// of the two; each seat's excess sits out the hand and comes back after.
	minStack := stacks[0]
	if stacks[1] < minStack {
		minStack = stacks[1]
	}
	excess := [2]int{stacks[0] - minStack, stacks[1] - minStack}

	cfg := engine.Configure(1, minStack, sb)
	sbSeat, bbSeat := dealer, dealer.Other()
	_ = cfg.RegisterSeat(names[sbSeat], l.Adapter.DecisionFunc(ctx, sbSeat, l.Models[sbSeat]))
	_ = cfg.RegisterSeat(names[bbSeat], l.Adapter.DecisionFunc(ctx, bbSeat, l.Models[bbSeat]))

	res, err := engine.Run(cfg)
	if err != nil {
		l.Store.SetStacks(stacks)
		l.Store.AddLog("ERROR: hand #%d aborted: %v", handNo, err)
		l.Logger.Error("hand aborted", "hand", handNo, "err", err)
		return false
	}

	var engineFinal, after [2]int
	for _, sr := range res.Seats {
		for seat, n := range names {
			if sr.Identity == n {
				engineFinal[seat] = sr.FinalStack
				after[seat] = sr.FinalStack + excess[seat]
			}
		}
	}
	l.Store.SetStacks(after)

	if diff := (stacks[0] + stacks[1]) - (after[0] + after[1]); diff > 1 || diff < -1 {
		l.Logger.Warn("chip conservation violated", "hand", handNo, "diff", diff)
		l.Store.AddLog("WARNING: chip count drifted by %d on hand #%d", diff, handNo)
	}

	// Both seats entered the engine with equal stacks, so the engine-side
	// final stacks decide the hand. Ties go to seat B.
	winner := state.SeatA
	if engineFinal[state.SeatB] >= engineFinal[state.SeatA] {
		winner = state.SeatB
	}
	loser := winner.Other()

	l.Store.RecordHandResult(handNo, winner, res.Pot)
	l.Store.AddLog("%s wins the $%d pot", names[winner], res.Pot)
	l.Logger.Info("hand done", "hand", handNo, "winner", names[winner], "pot", res.Pot)

	board := make([]string, len(res.Board))
	for i, c := range res.Board {
		board[i] = c.String()
	}
	if err := l.DB.InsertHand(ctx, handNo, names[winner], res.Pot, board, after[0], after[1], res.WentToShowdown); err != nil {
		l.Logger.Warn("hand archive failed", "err", err)
	}

	if after[loser] <= 0 {
		l.Store.AddLog("%s is busted!", names[loser])
		l.endMatch(ctx, winner)
		return true
	}
	return false
}

func (l *Loop) endMatch(ctx context.Context, winner state.SeatID) {
	name := l.Store.Name(winner)
	length := l.Store.RecordGameEnd(winner)
	l.Store.AddLog("🏆 %s WINS THE MATCH after %d hands!", name, length)
	l.Logger.Info("match over", "winner", name, "hands", length)
	if err := l.DB.InsertGame(ctx, name, length); err != nil {
		l.Logger.Warn("game archive failed", "err", err)
	}
	l.Store.ResetMatch()
	l.Store.RequestCountdown()
}

// countdown publishes secs..1 through set at one-second steps, then zeroes
// the field. Stops early on cancel or explicit stop.
func (l *Loop) countdown(ctx context.Context, secs int, set func(int)) {
	for i := secs; i > 0 && ctx.Err() == nil && l.Store.Playing(); i-- {
		set(i)
		l.sleep(ctx, time.Second)
	}
	set(0)
}

func (l *Loop) sleep(ctx context.Context, d time.Duration) {
	t := l.Clock.NewTimer(d, "match", "sleep")
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
