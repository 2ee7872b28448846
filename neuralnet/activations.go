package neuralnet

import "math"

// Activation is a scalar nonlinearity together with its derivative.
// Derivative takes the pre-activation value.
type Activation interface {
	Activate(x float64) float64
	Derivative(x float64) float64
}

// Sigmoid is the logistic function, used by the output units.
type Sigmoid struct{}

func (s Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func (s Sigmoid) Derivative(x float64) float64 {
	sigmoid := s.Activate(x)
	return sigmoid * (1 - sigmoid)
}

// Tanh is the hyperbolic tangent, used by the hidden units.
type Tanh struct{}

func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

func (t Tanh) Derivative(x float64) float64 {
	return TanhSlope(t.Activate(x))
}

// TanhSlope is the derivative of tanh expressed through its output a = tanh(z).
func TanhSlope(a float64) float64 {
	return 1 - a*a
}
