package core

import (
	"math"
	"testing"
)

func TestMoveVector(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right bool
		expected              Vec2
	}{
		{"none", false, false, false, false, V(0, 0)},
		{"up", true, false, false, false, V(0, -1)},
		{"right", false, false, false, true, V(1, 0)},
		{"opposite cancel", true, true, false, false, V(0, 0)},
		{"all cancel", true, true, true, true, V(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MoveVector(tc.up, tc.down, tc.left, tc.right)
			if got != tc.expected {
				t.Errorf("MoveVector() = %v, expected %v", got, tc.expected)
			}
		})
	}

	diag := MoveVector(false, true, false, true)
	if math.Abs(diag.Len()-1) > 1e-12 {
		t.Errorf("diagonal move should be unit length, got %f", diag.Len())
	}
}

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	f.Move = V(1, 0)
	f.Set(ActionAttack)

	if !f.Has(ActionAttack) {
		t.Error("Has(ActionAttack) should be true after Set")
	}
	if f.Has(ActionPause) {
		t.Error("Has(ActionPause) should be false")
	}

	clone := f.Clone()
	delete(f.Actions, ActionAttack)

	if clone.Move != V(1, 0) {
		t.Error("Clone should keep the move vector")
	}
	if !clone.Has(ActionAttack) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame should report no actions")
	}
}
