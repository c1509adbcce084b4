package core

import "testing"

func TestActionPairSanitize(t *testing.T) {
	tests := []struct {
		name       string
		in         ActionPair
		expected   ActionPair
		badH, badV bool
	}{
		{"valid", Act(1, 2), Act(1, 2), false, false},
		{"bad horizontal", Act(3, 1), Act(0, 1), true, false},
		{"bad vertical", Act(2, 4), Act(2, 0), false, true},
		{"both negative", Act(-1, -1), Noop, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, badH, badV := tc.in.Sanitize()
			if got != tc.expected {
				t.Errorf("Sanitize() = %+v, expected %+v", got, tc.expected)
			}
			if badH != tc.badH || badV != tc.badV {
				t.Errorf("Sanitize() flags = (%v, %v), expected (%v, %v)", badH, badV, tc.badH, tc.badV)
			}
		})
	}
}

func TestDirections(t *testing.T) {
	if HorizontalRight.Direction() != 1 || HorizontalLeft.Direction() != -1 || HorizontalStill.Direction() != 0 {
		t.Error("Horizontal.Direction() mismatch")
	}
	if VerticalClimbUp.ClimbDirection() != 1 || VerticalClimbDown.ClimbDirection() != -1 || VerticalJump.ClimbDirection() != 0 {
		t.Error("Vertical.ClimbDirection() mismatch")
	}
}

func TestActionStrings(t *testing.T) {
	if HorizontalLeft.String() != "Left" {
		t.Errorf("String() = %q, expected Left", HorizontalLeft.String())
	}
	if Vertical(9).String() != "Unknown" {
		t.Errorf("String() = %q, expected Unknown", Vertical(9).String())
	}
}
