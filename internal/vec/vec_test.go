package vec

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := New(3, 4)
	b := New(-1, 2)

	if got := a.Add(b); got != New(2, 6) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != New(4, 2) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != New(6, 8) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot: got %v", got)
	}
}

func TestNorms(t *testing.T) {
	v := New(3, 4)
	if v.Norm2() != 25 {
		t.Errorf("Norm2: got %v", v.Norm2())
	}
	if v.Norm() != 5 {
		t.Errorf("Norm: got %v", v.Norm())
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want bool
	}{
		{"zero", Vec2{}, true},
		{"plain", New(1.5, -2.5), true},
		{"nan x", New(math.NaN(), 0), false},
		{"inf y", New(0, math.Inf(1)), false},
		{"neg inf x", New(math.Inf(-1), 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
