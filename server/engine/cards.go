package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// FullDeck returns all 52 cards in a fixed order.
func FullDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range []byte("cdhs") {
		for r := 2; r <= 14; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// NewDeck returns a shuffled 52-card deck. A zero seed shuffles from the
// wall clock.
func NewDeck(seed int64) []Card {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	deck := FullDeck()
	for i := len(deck) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// String renders the canonical two-character form, e.g. "As", "Td".
func (c Card) String() string {
	ranks := "  23456789TJQKA"
	return fmt.Sprintf("%c%c", ranks[c.Rank], c.Suit)
}

var suitSymbols = map[byte]string{'s': "♠", 'h': "♥", 'd': "♦", 'c': "♣"}

// Display renders the viewer form of a card string ("As" -> "A♠",
// "Th" -> "10♥"). Empty or hidden cards render as a card back.
func Display(card string) string {
	if card == "" || card == "XX" {
		return "🂠"
	}
	if len(card) < 2 {
		return card
	}
	rank := string(card[0])
	if rank == "T" {
		rank = "10"
	}
	suit, ok := suitSymbols[card[1]]
	if !ok {
		suit = string(card[1])
	}
	return rank + suit
}

// ParseCard parses the canonical two-character form. The display form with
// suit symbols is accepted too, so viewer strings round-trip.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) < 2 {
		return Card{}, fmt.Errorf("card %q too short", s)
	}
	var rank int
	switch s[0] {
	case 'A':
		rank = 14
	case 'K':
		rank = 13
	case 'Q':
		rank = 12
	case 'J':
		rank = 11
	case 'T':
		rank = 10
	default:
		if s[0] >= '2' && s[0] <= '9' {
			rank = int(s[0] - '0')
		}
	}
	if rank == 0 {
		return Card{}, fmt.Errorf("bad rank in %q", s)
	}
	rest := s[1:]
	var suit byte
	switch rest {
	case "c", "C", "♣":
		suit = 'c'
	case "d", "D", "♦":
		suit = 'd'
	case "h", "H", "♥":
		suit = 'h'
	case "s", "S", "♠":
		suit = 's'
	default:
		return Card{}, fmt.Errorf("bad suit in %q", s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}
