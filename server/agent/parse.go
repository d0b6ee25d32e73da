package agent

import (
	"regexp"
	"strconv"
	"strings"

	"ai-pokerbattle/server/engine"
)

var firstInt = regexp.MustCompile(`\d+`)

// ParseDecision turns free-form model text into an action request. The scan
// is ordered: "fold" anywhere wins, then "call", then "raise"/"bet" with the
// first embedded integer (20 when none). Anything else is a call.
func ParseDecision(text string) (engine.ActionKind, int) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(t, "fold"):
		return engine.Fold, 0
	case strings.Contains(t, "call"):
		return engine.Call, 0
	case strings.Contains(t, "raise") || strings.Contains(t, "bet"):
		if m := firstInt.FindString(t); m != "" {
			n, _ := strconv.Atoi(m)
			return engine.Raise, n
		}
		return engine.Raise, 20
	default:
		return engine.Call, 0
	}
}
