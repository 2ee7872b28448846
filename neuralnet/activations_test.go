package neuralnet

import (
	"math"
	"testing"
)

func TestSigmoidActivate(t *testing.T) {
	s := Sigmoid{}
	got := s.Activate(0)
	want := 0.5
	if diff := got - want; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("Sigmoid.Activate(0) = %v; want approx %v", got, want)
	}
}

func TestTanhActivate(t *testing.T) {
	th := Tanh{}
	if got := th.Activate(0.5); math.Abs(got-0.4621) > 1e-4 {
		t.Errorf("Tanh.Activate(0.5) = %v; want approx 0.4621", got)
	}
}

func TestActivationRange(t *testing.T) {
	for _, z := range []float64{-30, -5, -1, -1e-3, 0, 1e-3, 1, 5, 30} {
		if a := (Tanh{}).Activate(z); a <= -1 || a >= 1 {
			t.Errorf("Tanh.Activate(%v) = %v; want in (-1, 1)", z, a)
		}
		if a := (Sigmoid{}).Activate(z); a <= 0 || a >= 1 {
			t.Errorf("Sigmoid.Activate(%v) = %v; want in (0, 1)", z, a)
		}
	}
}

func TestDerivatives(t *testing.T) {
	const h = 1e-6
	for _, act := range []Activation{Tanh{}, Sigmoid{}} {
		for _, z := range []float64{-2, -0.3, 0, 0.7, 2} {
			numeric := (act.Activate(z+h) - act.Activate(z-h)) / (2 * h)
			if got := act.Derivative(z); math.Abs(got-numeric) > 1e-6 {
				t.Errorf("%T.Derivative(%v) = %v; want approx %v", act, z, got, numeric)
			}
		}
	}
}

func TestTanhSlopeMatchesDerivative(t *testing.T) {
	th := Tanh{}
	z := 0.8
	if got, want := TanhSlope(th.Activate(z)), th.Derivative(z); got != want {
		t.Errorf("TanhSlope = %v; want %v", got, want)
	}
}
