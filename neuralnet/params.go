package neuralnet

import "fmt"

// ParamGroup is a named run of parameter values, e.g. the weights of one
// hidden unit or the biases of a whole layer.
type ParamGroup struct {
	Name   string
	Values []float64
}

// Params returns copies of every weight and bias in a stable order: hidden
// weights per unit, hidden biases, output weights per unit, output biases.
func (nn *Network) Params() []ParamGroup {
	groups := make([]ParamGroup, 0, len(nn.Hidden)+len(nn.Output)+2)

	bias1 := make([]float64, len(nn.Hidden))
	for n, unit := range nn.Hidden {
		groups = append(groups, ParamGroup{
			Name:   fmt.Sprintf("weights1_cell%d", n),
			Values: append([]float64(nil), unit.Weights...),
		})
		bias1[n] = unit.Bias
	}
	groups = append(groups, ParamGroup{Name: "bias1", Values: bias1})

	bias2 := make([]float64, len(nn.Output))
	for k, unit := range nn.Output {
		groups = append(groups, ParamGroup{
			Name:   fmt.Sprintf("weights2_cell%d", k),
			Values: append([]float64(nil), unit.Weights...),
		})
		bias2[k] = unit.Bias
	}
	groups = append(groups, ParamGroup{Name: "bias2", Values: bias2})

	return groups
}

// SetParams overwrites weights and biases from groups laid out as Params
// returns them. Nothing is written unless every group matches.
func (nn *Network) SetParams(groups []ParamGroup) error {
	want := nn.Params()
	if len(groups) != len(want) {
		return fmt.Errorf("%w: got %d parameter groups, want %d", ErrShape, len(groups), len(want))
	}
	for i, g := range groups {
		if g.Name != want[i].Name || len(g.Values) != len(want[i].Values) {
			return fmt.Errorf("%w: group %d is %s[%d], want %s[%d]",
				ErrShape, i, g.Name, len(g.Values), want[i].Name, len(want[i].Values))
		}
		for j, v := range g.Values {
			if !finite(v) {
				return fmt.Errorf("%w: %s[%d]", ErrNonFinite, g.Name, j)
			}
		}
	}

	i := 0
	for n, unit := range nn.Hidden {
		copy(unit.Weights, groups[i].Values)
		unit.Bias = groups[len(nn.Hidden)].Values[n]
		i++
	}
	i++
	for k, unit := range nn.Output {
		copy(unit.Weights, groups[i].Values)
		unit.Bias = groups[len(groups)-1].Values[k]
		i++
	}
	return nil
}

// paramRefs returns pointers to every parameter and its gradient in the
// same order as Params flattened.
func (nn *Network) paramRefs() (params, grads []*float64) {
	for _, unit := range nn.Hidden {
		for i := range unit.Weights {
			params = append(params, &unit.Weights[i])
			grads = append(grads, &unit.DWeights[i])
		}
	}
	for _, unit := range nn.Hidden {
		params = append(params, &unit.Bias)
		grads = append(grads, &unit.DBias)
	}
	for _, unit := range nn.Output {
		for i := range unit.Weights {
			params = append(params, &unit.Weights[i])
			grads = append(grads, &unit.DWeights[i])
		}
	}
	for _, unit := range nn.Output {
		params = append(params, &unit.Bias)
		grads = append(grads, &unit.DBias)
	}
	return params, grads
}
