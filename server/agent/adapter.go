// Package agent adapts a chat model into the rules engine's decision
// callback. It owns all viewer-facing side effects of a decision point:
// thinking indicator, thought line, mid-hand table projection, live equity
// and the bounded action history.
package agent

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"ai-pokerbattle/server/engine"
	"ai-pokerbattle/server/equity"
	"ai-pokerbattle/server/state"
)

// Completer is the slice of the chat client the adapter needs.
type Completer interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

const (
	defaultThinkDelay  = 2 * time.Second
	defaultBluffChance = 0.10
	defaultShortStack  = 500
	completionTimeout  = 60 * time.Second
)

var thoughtTemplates = [2][]string{
	{
		"Analyzing pot odds...",
		"Evaluating hand strength...",
		"Calculating expected value...",
		"Considering position advantage...",
		"Reading opponent's pattern...",
		"Assessing risk/reward ratio...",
	},
	{
		"Reading the table...",
		"Thinking about bluff potential...",
		"Analyzing betting patterns...",
		"Considering stack sizes...",
		"Evaluating showdown value...",
		"Planning next street...",
	},
}

const systemPrompt = "You are playing Heads-Up No-Limit Texas Hold'em poker."

// Adapter builds decision callbacks for both seats. BluffChance and
// ShortStack gate prompt wording only; legality always comes from the
// engine's envelope.
type Adapter struct {
	Store       *state.Store
	LLM         Completer
	Clock       quartz.Clock
	Logger      *log.Logger
	ThinkDelay  time.Duration
	BluffChance float64
	ShortStack  int

	mu  sync.Mutex
	rng *rand.Rand
}

func New(store *state.Store, llm Completer, clock quartz.Clock, logger *log.Logger) *Adapter {
	return &Adapter{
		Store:       store,
		LLM:         llm,
		Clock:       clock,
		Logger:      logger,
		ThinkDelay:  defaultThinkDelay,
		BluffChance: defaultBluffChance,
		ShortStack:  defaultShortStack,
		rng:         rand.New(rand.NewSource(rand.Int63())),
	}
}

// Seed makes the bluff-flag draw reproducible.
func (a *Adapter) Seed(seed int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rng = rand.New(rand.NewSource(seed))
}

func (a *Adapter) randFloat() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Float64()
}

func (a *Adapter) pickThought(seat state.SeatID) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	set := thoughtTemplates[seat]
	return set[a.rng.Intn(len(set))]
}

// DecisionFunc returns the engine callback for one seat of the running hand.
// The context bounds every wait inside a decision, so a shutdown interrupts
// pending think delays instead of draining them.
func (a *Adapter) DecisionFunc(ctx context.Context, seat state.SeatID, model string) engine.DecisionFunc {
	return func(legal []engine.ValidAction, hole []engine.Card, round engine.RoundState) (engine.ActionKind, int) {
		return a.decide(ctx, seat, model, legal, hole, round)
	}
}

func (a *Adapter) decide(ctx context.Context, seat state.SeatID, model string, legal []engine.ValidAction, hole []engine.Card, round engine.RoundState) (engine.ActionKind, int) {
	name := a.Store.Name(seat)

	a.Store.AddThought(seat, a.pickThought(seat))
	a.Store.SetThinking(seat, true)
	defer a.Store.SetThinking(seat, false)

	street := streetName(len(round.Board))
	board := displayAll(round.Board)
	a.Store.ProjectTable(street, board, round.Pot)
	holeDisplay := displayAll(hole)
	a.Store.SetHoleCards(seat, holeDisplay)

	a.refreshEquity(seat, hole, round.Board)

	if a.ThinkDelay > 0 {
		timer := a.Clock.NewTimer(a.ThinkDelay, "agent", "think")
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	}

	myStack := round.Stacks[name]
	strength := ""
	if len(round.Board) >= 3 {
		strength = equity.StrengthLabel(engine.RankScore(append(append([]engine.Card{}, hole...), round.Board...)))
	}
	prompt := a.buildPrompt(holeDisplay, board, round, legal, name, myStack, strength)

	callCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()
	text, err := a.LLM.Complete(callCtx, model, systemPrompt, prompt)
	if err != nil {
		a.Logger.Error("completion failed", "seat", name, "err", err)
		a.Store.AddLog("ERROR %s: %v", name, err)
		return a.resolve(seat, name, engine.Fold, 0, legal, myStack)
	}

	kind, amount := ParseDecision(text)
	return a.resolve(seat, name, kind, amount, legal, myStack)
}

// resolve validates a requested action against the legal envelope, clamps
// raise amounts and records the outcome in shared state.
func (a *Adapter) resolve(seat state.SeatID, name string, kind engine.ActionKind, amount int, legal []engine.ValidAction, myStack int) (engine.ActionKind, int) {
	var callVA, raiseVA *engine.ValidAction
	callOK := false
	for i := range legal {
		switch legal[i].Kind {
		case engine.Call:
			callOK = true
			callVA = &legal[i]
		case engine.Raise:
			raiseVA = &legal[i]
		}
	}

	if kind == engine.Raise {
		if raiseVA == nil {
			kind = engine.Call
			amount = 0
		} else {
			lo := raiseVA.Min
			if lo < 20 {
				lo = 20
			}
			if amount < lo {
				amount = lo
			}
			if amount > raiseVA.Max {
				amount = raiseVA.Max
			}
			if amount < 0 {
				kind = engine.Call
				amount = 0
			}
		}
	}
	if kind == engine.Call && !callOK {
		kind = engine.Fold
		amount = 0
	}

	checked := kind == engine.Call && callVA != nil && callVA.Amount == 0
	a.Store.RecordMix(seat, string(kind), checked)

	switch kind {
	case engine.Raise:
		if myStack > 0 && amount*100 >= myStack*95 {
			a.Store.IncrementAllIn()
			a.Store.SetActionLabel(seat, fmt.Sprintf("All-in $%d", amount))
			a.Store.PushAction(fmt.Sprintf("%s goes ALL-IN $%d!", name, amount))
			a.Store.AddLog("%s goes ALL-IN $%d!", name, amount)
		} else {
			a.Store.SetActionLabel(seat, fmt.Sprintf("Raise $%d", amount))
			a.Store.PushAction(fmt.Sprintf("%s raises $%d", name, amount))
			a.Store.AddLog("%s raises $%d", name, amount)
		}
	case engine.Call:
		label, verb := "Call", "calls"
		if callVA != nil && callVA.Amount == 0 {
			label, verb = "Check", "checks"
		}
		a.Store.SetActionLabel(seat, label)
		a.Store.PushAction(fmt.Sprintf("%s %s", name, verb))
		a.Store.AddLog("%s %s", name, verb)
	default:
		kind = engine.Fold
		amount = 0
		a.Store.SetActionLabel(seat, "Fold")
		a.Store.PushAction(fmt.Sprintf("%s folds", name))
		a.Store.AddLog("%s folds", name)
	}
	return kind, amount
}

// refreshEquity recomputes both seats' win percentages. The opponent's hole
// cards come from shared state; until both adapters have run once this hand
// the estimate degrades to 50/50 on its own.
func (a *Adapter) refreshEquity(seat state.SeatID, hole []engine.Card, board []engine.Card) {
	villainCards := a.Store.HoleCards(seat.Other())
	villain := make([]engine.Card, 0, len(villainCards))
	for _, s := range villainCards {
		c, err := engine.ParseCard(s)
		if err != nil {
			villain = nil
			break
		}
		villain = append(villain, c)
	}
	heroPct, villainPct := equity.Estimate(hole, villain, board)
	if seat == state.SeatA {
		a.Store.SetEquity(heroPct, villainPct)
	} else {
		a.Store.SetEquity(villainPct, heroPct)
	}
}

func (a *Adapter) buildPrompt(hole, board []string, round engine.RoundState, legal []engine.ValidAction, name string, myStack int, strength string) string {
	community := "None yet"
	if len(board) > 0 {
		community = strings.Join(board, " ")
	}

	kinds := make([]string, 0, len(legal))
	minTo, maxTo := 20, myStack
	for _, va := range legal {
		kinds = append(kinds, string(va.Kind))
		if va.Kind == engine.Raise {
			if va.Min > minTo {
				minTo = va.Min
			}
			maxTo = va.Max
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your cards: %s\n", strings.Join(hole, " "))
	fmt.Fprintf(&b, "Community cards: %s\n", community)
	if strength != "" {
		fmt.Fprintf(&b, "Your current hand: %s\n", strength)
	}
	fmt.Fprintf(&b, "Pot: $%d\n", round.Pot)
	fmt.Fprintf(&b, "Your stack: $%d\n", myStack)
	fmt.Fprintf(&b, "Opponent's last action: %s\n\n", lastOpponentAction(round, name))
	fmt.Fprintf(&b, "Valid actions: %s\n\n", strings.Join(kinds, ", "))
	b.WriteString("Choose your action. Reply with ONLY one of:\n")
	b.WriteString("- \"fold\" (give up hand)\n")
	b.WriteString("- \"call\" (match current bet)\n")
	fmt.Fprintf(&b, "- \"raise X\" (where X is your raise-to amount, min %d, max %d)\n", minTo, maxTo)

	if myStack <= a.ShortStack {
		b.WriteString("\nYou are short-stacked. Play push-or-fold: either move all-in with a playable hand or fold. Small raises and loose calls will bleed you out.\n")
	}
	if a.randFloat() < a.BluffChance {
		b.WriteString("\nYou are feeling confident. Consider a well-timed bluff if the board favors it.\n")
	}

	b.WriteString("\nYour decision:")
	return b.String()
}

// lastOpponentAction finds the most recent action by anyone but name,
// scanning streets in play order.
func lastOpponentAction(round engine.RoundState, name string) string {
	last := "Game start"
	for _, street := range []string{"preflop", "flop", "turn", "river"} {
		for _, act := range round.Histories[street] {
			if act.Identity == name {
				continue
			}
			if act.Amount > 0 {
				last = fmt.Sprintf("%s %d", act.Kind, act.Amount)
			} else {
				last = string(act.Kind)
			}
		}
	}
	return last
}

func streetName(boardLen int) string {
	switch boardLen {
	case 0:
		return "preflop"
	case 3:
		return "flop"
	case 4:
		return "turn"
	default:
		return "river"
	}
}

func displayAll(cards []engine.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = engine.Display(c.String())
	}
	return out
}
