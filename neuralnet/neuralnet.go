package neuralnet

import (
	"fmt"
	"math/rand"
	"strings"
)

// Shape fixes the dimensions of a Network for its whole lifetime.
type Shape struct {
	Inputs  int
	Hidden  int
	Outputs int
}

// MNISTShape is 28x28 binary pixels, two tanh hidden units and one sigmoid
// output per digit.
var MNISTShape = Shape{Inputs: 28 * 28, Hidden: 2, Outputs: 10}

func (s Shape) Validate() error {
	if s.Inputs <= 0 || s.Hidden <= 0 || s.Outputs <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %+v", ErrShape, s)
	}
	return nil
}

// HiddenUnit is one tanh neuron. Input echoes the current sample.
type HiddenUnit struct {
	Input    []float64
	Weights  []float64
	DWeights []float64
	Bias     float64
	DBias    float64
	Z        float64
	A        float64
	DZ       float64
	DA       float64
}

// OutputUnit is one sigmoid neuron fed by every hidden unit.
type OutputUnit struct {
	Weights  []float64
	DWeights []float64
	Bias     float64
	DBias    float64
	Z        float64
	A        float64
	DZ       float64
	// DA is ∂L/∂A on the clamped activation. It is recorded for inspection
	// only; Backward derives DZ as A - t without going through it.
	DA       float64
}

// Network is a tanh hidden layer followed by a sigmoid output layer.
// It is owned by a single training loop and is not safe for concurrent use.
type Network struct {
	shape  Shape
	Hidden []*HiddenUnit
	Output []*OutputUnit

	hiddenActivation Activation
	outputActivation Activation
	loss             LossFunction
	rng              *rand.Rand
}

// New allocates a network of the given shape and initializes it from seed.
func New(shape Shape, seed int64) (*Network, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = NNSeed(shape)
	}

	nn := &Network{
		shape:            shape,
		Hidden:           make([]*HiddenUnit, shape.Hidden),
		Output:           make([]*OutputUnit, shape.Outputs),
		hiddenActivation: Tanh{},
		outputActivation: Sigmoid{},
		loss:             BinaryCrossEntropy{},
		rng:              rand.New(rand.NewSource(seed)),
	}
	for o := range nn.Hidden {
		nn.Hidden[o] = &HiddenUnit{
			Input:    make([]float64, shape.Inputs),
			Weights:  make([]float64, shape.Inputs),
			DWeights: make([]float64, shape.Inputs),
		}
	}
	for o := range nn.Output {
		nn.Output[o] = &OutputUnit{
			Weights:  make([]float64, shape.Hidden),
			DWeights: make([]float64, shape.Hidden),
		}
	}
	nn.Initialize()
	return nn, nil
}

// NNSeed derives a default seed from the dimensions.
func NNSeed(shape Shape) int64 {
	return int64(shape.Inputs + shape.Hidden + shape.Outputs)
}

func (nn *Network) Shape() Shape {
	return nn.shape
}

// Initialize draws every weight from U[0,1) and zeroes biases, inputs,
// activations and gradients. Calling it again re-randomizes the weights.
func (nn *Network) Initialize() {
	for _, unit := range nn.Hidden {
		for i := range unit.Weights {
			unit.Input[i] = 0
			unit.Weights[i] = nn.rng.Float64()
			unit.DWeights[i] = 0
		}
		unit.Bias, unit.DBias = 0, 0
		unit.Z, unit.A, unit.DZ, unit.DA = 0, 0, 0, 0
	}
	for _, unit := range nn.Output {
		for i := range unit.Weights {
			unit.Weights[i] = nn.rng.Float64()
			unit.DWeights[i] = 0
		}
		unit.Bias, unit.DBias = 0, 0
		unit.Z, unit.A, unit.DZ, unit.DA = 0, 0, 0, 0
	}
}

// Reset clears pre-activations and activations. Weights, biases and
// gradients are left alone.
func (nn *Network) Reset() {
	for _, unit := range nn.Hidden {
		unit.Z, unit.A = 0, 0
	}
	for _, unit := range nn.Output {
		unit.Z, unit.A = 0, 0
	}
}

// Activations returns a copy of the output activations.
func (nn *Network) Activations() []float64 {
	out := make([]float64, len(nn.Output))
	for i, unit := range nn.Output {
		out[i] = unit.A
	}
	return out
}

// HiddenActivations returns a copy of the hidden activations.
func (nn *Network) HiddenActivations() []float64 {
	out := make([]float64, len(nn.Hidden))
	for i, unit := range nn.Hidden {
		out[i] = unit.A
	}
	return out
}

func (nn *Network) String() string {
	var sb strings.Builder

	sb.WriteString("Hidden:\n")
	for i, unit := range nn.Hidden {
		sb.WriteString(fmt.Sprintf("  unit %d: z=%.4f a=%.4f dz=%.4f\n", i, unit.Z, unit.A, unit.DZ))
	}
	sb.WriteString("Output:\n")
	for i, unit := range nn.Output {
		sb.WriteString(fmt.Sprintf("  unit %d: z=%.4f a=%.4f dz=%.4f\n", i, unit.Z, unit.A, unit.DZ))
	}

	return sb.String()
}
