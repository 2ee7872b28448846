package neuralnet

import "math"

// LossEpsilon keeps the logarithms in BinaryCrossEntropy finite when an
// output unit saturates to exactly 0 or 1.
const LossEpsilon = 1e-15

// LossFunction scores sigmoid output activations against a one-hot target.
type LossFunction interface {
	// Compute sums the per-unit loss.
	Compute(output []float64, target []float64) float64
	// Gradient is taken wrt the sigmoid pre-activations z, with the sigmoid
	// slope already folded in, so Backward uses it as DZ directly.
	Gradient(output []float64, target []float64) []float64
}

// BinaryCrossEntropy treats every output unit as an independent sigmoid
// and sums the per-unit cross-entropy.
type BinaryCrossEntropy struct{}

// Compute returns Σ −[t·ln(a) + (1−t)·ln(1−a)].
func (bce BinaryCrossEntropy) Compute(output []float64, target []float64) float64 {
	var loss float64
	for i := range output {
		a := clamp(output[i], LossEpsilon, 1-LossEpsilon)
		loss -= target[i]*math.Log(a) + (1-target[i])*math.Log(1-a)
	}
	return loss
}

// Gradient returns the derivative of the loss wrt the output pre-activations
// when paired with a sigmoid: (output - target).
func (bce BinaryCrossEntropy) Gradient(output []float64, target []float64) []float64 {
	grad := make([]float64, len(output))
	for i := range output {
		grad[i] = output[i] - target[i]
	}
	return grad
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
