package state

// ActionMix tallies how a seat has acted across the whole session. The
// percentages are integer-rounded for display.
type ActionMix struct {
	Checks int `json:"check_ct"`
	Calls  int `json:"call_ct"`
	Raises int `json:"raise_ct"`
	Folds  int `json:"fold_ct"`
	Total  int `json:"total_actions"`

	CheckPct int `json:"check_pct"`
	CallPct  int `json:"call_pct"`
	RaisePct int `json:"raise_pct"`
	FoldPct  int `json:"fold_pct"`
}

func (m *ActionMix) recompute() {
	if m.Total == 0 {
		m.CheckPct, m.CallPct, m.RaisePct, m.FoldPct = 0, 0, 0, 0
		return
	}
	pct := func(n int) int { return (n*100 + m.Total/2) / m.Total }
	m.CheckPct = pct(m.Checks)
	m.CallPct = pct(m.Calls)
	m.RaisePct = pct(m.Raises)
	m.FoldPct = pct(m.Folds)
}

// RecordMix folds one resolved action into the seat's session mix. A call
// with nothing owed counts as a check.
func (s *Store) RecordMix(id SeatID, kind string, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &s.snap.Mix[id]
	switch {
	case kind == "fold":
		m.Folds++
	case kind == "raise":
		m.Raises++
	case checked:
		m.Checks++
	default:
		m.Calls++
	}
	m.Total++
	m.recompute()
}
