package neuralnet

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Sample is one image as a flat vector of pixels. Any non-zero pixel is
// treated as 1 when loaded into the network.
type Sample []float64

// LoadInput copies the sample into every hidden unit's input, thresholding
// non-zero pixels to 1.
func (nn *Network) LoadInput(sample Sample) error {
	if len(sample) != nn.shape.Inputs {
		return fmt.Errorf("%w: sample has %d pixels, network expects %d", ErrShape, len(sample), nn.shape.Inputs)
	}
	for _, unit := range nn.Hidden {
		for i, px := range sample {
			if px != 0 {
				unit.Input[i] = 1
			} else {
				unit.Input[i] = 0
			}
		}
	}
	return nil
}

// ForwardHidden computes z1 = input·w + b and a1 = tanh(z1) for every hidden unit.
// Reset must have been called since the previous pass.
func (nn *Network) ForwardHidden() {
	for _, unit := range nn.Hidden {
		unit.Z += floats.Dot(unit.Input, unit.Weights)
		unit.Z += unit.Bias
		unit.A = nn.hiddenActivation.Activate(unit.Z)
	}
}

// ForwardOutput computes z2 = a1·w + b and a2 = sigmoid(z2) for every output unit.
func (nn *Network) ForwardOutput() {
	hidden := nn.HiddenActivations()
	for _, unit := range nn.Output {
		unit.Z += floats.Dot(hidden, unit.Weights)
		unit.Z += unit.Bias
		unit.A = nn.outputActivation.Activate(unit.Z)
	}
}

// Forward runs reset, input loading and both layers for one sample.
// Gradient fields are not touched.
func (nn *Network) Forward(sample Sample) error {
	if len(sample) != nn.shape.Inputs {
		return fmt.Errorf("%w: sample has %d pixels, network expects %d", ErrShape, len(sample), nn.shape.Inputs)
	}
	nn.Reset()
	if err := nn.LoadInput(sample); err != nil {
		return err
	}
	nn.ForwardHidden()
	nn.ForwardOutput()
	return nil
}
