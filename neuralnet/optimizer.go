package neuralnet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Optimizer applies the gradients held by a network to its parameters.
type Optimizer interface {
	Apply(nn *Network) error
}

// SGD implements plain per-example gradient descent: p = p - lr * dp.
type SGD struct {
	LearningRate float64
}

// Apply updates hidden then output parameters. Every candidate value is
// checked before the first write, so a rejected update leaves the network
// unchanged.
func (o *SGD) Apply(nn *Network) error {
	lr := o.LearningRate
	if err := checkLearningRate(lr); err != nil {
		return err
	}
	if err := o.check(nn); err != nil {
		return err
	}

	for _, unit := range nn.Hidden {
		floats.AddScaled(unit.Weights, -lr, unit.DWeights)
		unit.Bias -= lr * unit.DBias
	}
	for _, unit := range nn.Output {
		floats.AddScaled(unit.Weights, -lr, unit.DWeights)
		unit.Bias -= lr * unit.DBias
	}
	return nil
}

func (o *SGD) check(nn *Network) error {
	lr := o.LearningRate
	for n, unit := range nn.Hidden {
		for i, w := range unit.Weights {
			if !finite(w - lr*unit.DWeights[i]) {
				return fmt.Errorf("%w: hidden unit %d weight %d", ErrNonFinite, n, i)
			}
		}
		if !finite(unit.Bias - lr*unit.DBias) {
			return fmt.Errorf("%w: hidden unit %d bias", ErrNonFinite, n)
		}
	}
	for k, unit := range nn.Output {
		for i, w := range unit.Weights {
			if !finite(w - lr*unit.DWeights[i]) {
				return fmt.Errorf("%w: output unit %d weight %d", ErrNonFinite, k, i)
			}
		}
		if !finite(unit.Bias - lr*unit.DBias) {
			return fmt.Errorf("%w: output unit %d bias", ErrNonFinite, k)
		}
	}
	return nil
}

var _ Optimizer = (*SGD)(nil)

// UpdateWeights applies one SGD step with the given learning rate.
func (nn *Network) UpdateWeights(learningRate float64) error {
	sgd := &SGD{LearningRate: learningRate}
	return sgd.Apply(nn)
}

func checkLearningRate(lr float64) error {
	if math.IsNaN(lr) || math.IsInf(lr, 0) || lr < 0 {
		return fmt.Errorf("%w: %v", ErrLearningRate, lr)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
