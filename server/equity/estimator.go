// Package equity estimates live win probabilities by Monte-Carlo sampling
// of the unseen community cards.
package equity

import (
	"math"
	"math/rand"
	"sync"

	"ai-pokerbattle/server/engine"
)

// Samples is the number of board completions drawn per estimate.
const Samples = 500

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(rand.Int63()))
)

// Estimate returns win percentages for hero and villain in [0,100] with one
// decimal place. Incomplete hole information yields 50/50 rather than an
// error, and any internal failure is swallowed the same way: the equity
// readout must never take the match loop down with it.
func Estimate(heroHole, villainHole, board []engine.Card) (heroPct, villainPct float64) {
	defer func() {
		if r := recover(); r != nil {
			heroPct, villainPct = 50.0, 50.0
		}
	}()

	if len(heroHole) != 2 || len(villainHole) != 2 {
		return 50.0, 50.0
	}

	// Full board: a single exact evaluation, no sampling.
	if len(board) >= 5 {
		hero := score(heroHole, board[:5])
		villain := score(villainHole, board[:5])
		switch {
		case hero > villain:
			return 100.0, 0.0
		case villain > hero:
			return 0.0, 100.0
		default:
			return 50.0, 50.0
		}
	}

	deck := samplingDeck(heroHole, villainHole, board)
	draws := 5 - len(board)
	if len(deck) < draws {
		return 50.0, 50.0
	}

	var wins, ties int
	full := make([]engine.Card, 0, 5)

	rngMu.Lock()
	defer rngMu.Unlock()
	for i := 0; i < Samples; i++ {
		// Partial Fisher-Yates: the first `draws` cards are a uniform
		// without-replacement sample.
		for j := 0; j < draws; j++ {
			k := j + rng.Intn(len(deck)-j)
			deck[j], deck[k] = deck[k], deck[j]
		}
		full = append(full[:0], board...)
		full = append(full, deck[:draws]...)

		hero := score(heroHole, full)
		villain := score(villainHole, full)
		switch {
		case hero > villain:
			wins++
		case hero == villain:
			ties++
		}
	}

	losses := Samples - wins - ties
	heroPct = round1((float64(wins) + 0.5*float64(ties)) / Samples * 100)
	villainPct = round1((float64(losses) + 0.5*float64(ties)) / Samples * 100)
	return heroPct, villainPct
}

func score(hole, board []engine.Card) int {
	return engine.RankScore(append(append([]engine.Card{}, hole...), board...))
}

// samplingDeck is the 52-card universe minus every known card.
func samplingDeck(known ...[]engine.Card) []engine.Card {
	used := map[engine.Card]bool{}
	for _, group := range known {
		for _, c := range group {
			used[c] = true
		}
	}
	out := make([]engine.Card, 0, 52)
	for _, c := range engine.FullDeck() {
		if !used[c] {
			out = append(out, c)
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
