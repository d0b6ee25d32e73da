package engine

import (
	poker "github.com/paulhankin/poker"
)

// Hand categories, weakest first. The numeric score for a hand is
// category*bandWidth plus a within-band tiebreak, so Straight Flush scores
// land at >= 8,000,000 and High Card stays below 1,000,000.
const (
	catHighCard = iota
	catPair
	catTwoPair
	catTrips
	catStraight
	catFlush
	catFullHouse
	catQuads
	catStraightFlush

	bandWidth = 1_000_000
)

// toPH converts an engine card to the evaluator library's representation.
// Our ranks run 2..14 (Ace=14); the library uses 1..13 with Ace=1.
func toPH(c Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	case 's':
		s = poker.Spade
	default:
		s = poker.Club
	}
	var r poker.Rank
	if c.Rank == 14 {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(c.Rank)
	}
	card, _ := poker.MakeCard(s, r)
	return card
}

// RankScore scores 5, 6 or 7 cards. Higher is stronger, and scores fall in
// fixed million-unit bands by hand category so strict comparison orders any
// two hands correctly.
func RankScore(cards []Card) int {
	return category(cards)*bandWidth + tiebreak(cards)
}

// tiebreak is the library's best-5 rank (larger is better); it is always
// far below bandWidth, so it can never push a score out of its band.
func tiebreak(cards []Card) int {
	n := len(cards)
	pcs := make([]poker.Card, n)
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	switch n {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		return int(poker.Eval7(&a7))
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		return int(poker.Eval5(&a5))
	default:
		// 6 cards: best 5-card subset.
		best := 0
		var five [5]poker.Card
		for skip := 0; skip < n; skip++ {
			k := 0
			for i := 0; i < n; i++ {
				if i == skip {
					continue
				}
				five[k] = pcs[i]
				k++
			}
			if s := int(poker.Eval5(&five)); s > best {
				best = s
			}
		}
		return best
	}
}

// category determines the best 5-card hand category available in the cards.
func category(cards []Card) int {
	rankCount := map[int]int{}
	suitCount := map[byte]int{}
	suitRanks := map[byte]map[int]bool{}
	allRanks := map[int]bool{}
	for _, c := range cards {
		rankCount[c.Rank]++
		suitCount[c.Suit]++
		if suitRanks[c.Suit] == nil {
			suitRanks[c.Suit] = map[int]bool{}
		}
		suitRanks[c.Suit][c.Rank] = true
		allRanks[c.Rank] = true
	}

	var flushSuit byte
	for s, n := range suitCount {
		if n >= 5 {
			flushSuit = s
		}
	}

	pairs, trips, quads := 0, 0, 0
	for _, n := range rankCount {
		switch {
		case n >= 4:
			quads++
		case n == 3:
			trips++
		case n == 2:
			pairs++
		}
	}

	switch {
	case flushSuit != 0 && hasStraight(suitRanks[flushSuit]):
		return catStraightFlush
	case quads > 0:
		return catQuads
	case trips >= 2 || (trips == 1 && pairs >= 1):
		return catFullHouse
	case flushSuit != 0:
		return catFlush
	case hasStraight(allRanks):
		return catStraight
	case trips == 1:
		return catTrips
	case pairs >= 2:
		return catTwoPair
	case pairs == 1:
		return catPair
	default:
		return catHighCard
	}
}

func hasStraight(ranks map[int]bool) bool {
	for high := 14; high >= 6; high-- {
		run := true
		for r := high; r > high-5; r-- {
			if !ranks[r] {
				run = false
				break
			}
		}
		if run {
			return true
		}
	}
	// wheel: A-2-3-4-5
	return ranks[14] && ranks[2] && ranks[3] && ranks[4] && ranks[5]
}
