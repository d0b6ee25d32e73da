package match

// Blinds returns the escalating blind schedule for a global hand number
// (1-based). The small blind starts at 5 and grows by 5 every 10 hands; the
// big blind is always double. The schedule tracks the global counter, so
// blinds keep escalating across match resets.
func Blinds(handNumber int) (small, big int) {
	small = 5 + 5*(handNumber/10)
	return small, 2 * small
}
