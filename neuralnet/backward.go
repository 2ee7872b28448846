package neuralnet

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Cost returns the summed binary cross-entropy of the current output
// activations against target. It reads state left by Forward, so it must
// follow a forward pass on the same sample.
func (nn *Network) Cost(target Target) (float64, error) {
	if err := nn.checkTarget(target); err != nil {
		return 0, err
	}
	return nn.loss.Compute(nn.Activations(), target.floats()), nil
}

// Backward fills every gradient field for the sample of the preceding
// forward pass.
func (nn *Network) Backward(target Target) error {
	if err := nn.checkTarget(target); err != nil {
		return err
	}

	// output layer: dz2 = a2 - t, dw2 = a1 * dz2, db2 = dz2
	t := target.floats()
	dz2 := nn.loss.Gradient(nn.Activations(), t)
	hidden := nn.HiddenActivations()
	for k, unit := range nn.Output {
		// not on the gradient path, see OutputUnit.DA
		a := clamp(unit.A, LossEpsilon, 1-LossEpsilon)
		unit.DA = -t[k]/a + (1-t[k])/(1-a)
		unit.DZ = dz2[k]
		floats.ScaleTo(unit.DWeights, unit.DZ, hidden)
		unit.DBias = unit.DZ
	}

	// hidden layer: da1[n] = sum_k w2[k][n] * dz2[k]
	weights := ConvertWeightsDense(nn.Output)
	var da1 mat.VecDense
	da1.MulVec(weights.T(), mat.NewVecDense(len(dz2), dz2))

	for n, unit := range nn.Hidden {
		unit.DA = da1.AtVec(n)
		unit.DZ = unit.DA * TanhSlope(unit.A)
		floats.ScaleTo(unit.DWeights, unit.DZ, unit.Input)
		unit.DBias = unit.DZ
	}
	return nil
}

// ConvertWeightsDense lays the output weights out as an Outputs x Hidden
// matrix, row k holding output unit k's weights.
func ConvertWeightsDense(units []*OutputUnit) *mat.Dense {
	n := len(units)
	m := len(units[0].Weights)
	weights := make([]float64, n*m)
	for k, unit := range units {
		copy(weights[k*m:(k+1)*m], unit.Weights)
	}
	return mat.NewDense(n, m, weights)
}
