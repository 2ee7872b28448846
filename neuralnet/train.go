package neuralnet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// TrainStep runs forward, cost, backward and update for one example and
// returns the cost measured before the update. Inputs are validated before
// anything is mutated.
func (nn *Network) TrainStep(sample Sample, target Target, learningRate float64) (float64, error) {
	if len(sample) != nn.shape.Inputs {
		return 0, fmt.Errorf("%w: sample has %d pixels, network expects %d", ErrShape, len(sample), nn.shape.Inputs)
	}
	if err := nn.checkTarget(target); err != nil {
		return 0, err
	}
	if err := checkLearningRate(learningRate); err != nil {
		return 0, err
	}

	if err := nn.Forward(sample); err != nil {
		return 0, err
	}
	cost, err := nn.Cost(target)
	if err != nil {
		return 0, err
	}
	if err := nn.Backward(target); err != nil {
		return 0, err
	}
	if err := nn.UpdateWeights(learningRate); err != nil {
		return 0, err
	}
	return cost, nil
}

// CheckGradients compares the analytic gradients from Backward with central
// finite differences of Cost and returns the largest absolute difference.
// Parameters are restored before returning; gradient fields hold the
// analytic values.
func (nn *Network) CheckGradients(sample Sample, target Target) (float64, error) {
	if err := nn.Forward(sample); err != nil {
		return 0, err
	}
	if err := nn.Backward(target); err != nil {
		return 0, err
	}

	params, grads := nn.paramRefs()
	x0 := make([]float64, len(params))
	analytic := make([]float64, len(grads))
	for i := range params {
		x0[i] = *params[i]
		analytic[i] = *grads[i]
	}
	set := func(x []float64) {
		for i, p := range params {
			*p = x[i]
		}
	}

	var costErr error
	numeric := fd.Gradient(nil, func(x []float64) float64 {
		set(x)
		if err := nn.Forward(sample); err != nil {
			costErr = err
			return 0
		}
		c, err := nn.Cost(target)
		if err != nil {
			costErr = err
		}
		return c
	}, x0, &fd.Settings{Formula: fd.Central})

	set(x0)
	if err := nn.Forward(sample); err != nil {
		return 0, err
	}
	if costErr != nil {
		return 0, costErr
	}

	var maxDiff float64
	for i := range analytic {
		maxDiff = math.Max(maxDiff, math.Abs(analytic[i]-numeric[i]))
	}
	return maxDiff, nil
}
