package match

import "testing"

func TestBlindsSchedule(t *testing.T) {
	tests := []struct {
		hand  int
		small int
		big   int
	}{
		{1, 5, 10},
		{9, 5, 10},
		{10, 10, 20},
		{19, 10, 20},
		{20, 15, 30},
		{100, 55, 110},
	}
	for _, tt := range tests {
		sb, bb := Blinds(tt.hand)
		if sb != tt.small || bb != tt.big {
			t.Errorf("Blinds(%d) = %d/%d, want %d/%d", tt.hand, sb, bb, tt.small, tt.big)
		}
	}
}

func TestBlindsBigIsAlwaysDouble(t *testing.T) {
	for hand := 1; hand <= 500; hand++ {
		sb, bb := Blinds(hand)
		if bb != 2*sb {
			t.Fatalf("Blinds(%d): bb %d != 2*sb %d", hand, bb, sb)
		}
		if sb < 5 {
			t.Fatalf("Blinds(%d): sb %d below floor", hand, sb)
		}
	}
}
