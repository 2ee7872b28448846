package neuralnet

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Target is a one-hot class vector.
type Target []int

// EncodeTarget returns a Target with a 1 at label and 0 elsewhere.
func EncodeTarget(label, numClasses int) (Target, error) {
	if numClasses <= 0 {
		return nil, fmt.Errorf("%w: %d classes", ErrShape, numClasses)
	}
	if label < 0 || label >= numClasses {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLabel, label, numClasses)
	}
	t := make(Target, numClasses)
	t[label] = 1
	return t, nil
}

// Class returns the index of the 1 entry.
func (t Target) Class() int {
	for i, v := range t {
		if v == 1 {
			return i
		}
	}
	return -1
}

func (t Target) floats() []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = float64(v)
	}
	return out
}

func (nn *Network) checkTarget(target Target) error {
	if len(target) != nn.shape.Outputs {
		return fmt.Errorf("%w: target has %d entries, network has %d outputs", ErrShape, len(target), nn.shape.Outputs)
	}
	ones := 0
	for _, v := range target {
		switch v {
		case 0:
		case 1:
			ones++
		default:
			return fmt.Errorf("%w: entry %d", ErrTarget, v)
		}
	}
	if ones != 1 {
		return fmt.Errorf("%w: %d hot entries", ErrTarget, ones)
	}
	return nil
}

// Predict returns the index of the output unit with the largest activation.
// Ties go to the lowest index.
func (nn *Network) Predict() int {
	return floats.MaxIdx(nn.Activations())
}

// Evaluate runs a forward pass and returns the predicted class.
func (nn *Network) Evaluate(sample Sample) (int, error) {
	if err := nn.Forward(sample); err != nil {
		return 0, err
	}
	return nn.Predict(), nil
}
