package equity

// StrengthLabel maps a band score from engine.RankScore to a display label.
// The bands are fixed million-unit lower bounds; anything below the Pair
// band (including garbage input) reads as High Card. Display only — nothing
// decides on this.
func StrengthLabel(score int) string {
	switch {
	case score >= 8000000:
		return "Straight Flush"
	case score >= 7000000:
		return "Four of a Kind"
	case score >= 6000000:
		return "Full House"
	case score >= 5000000:
		return "Flush"
	case score >= 4000000:
		return "Straight"
	case score >= 3000000:
		return "Three of a Kind"
	case score >= 2000000:
		return "Two Pair"
	case score >= 1000000:
		return "Pair"
	default:
		return "High Card"
	}
}
