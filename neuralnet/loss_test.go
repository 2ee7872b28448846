package neuralnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryCrossEntropyCompute(t *testing.T) {
	bce := BinaryCrossEntropy{}
	output := []float64{0.5, 0.5}
	target := []float64{1.0, 0.0}
	loss := bce.Compute(output, target)
	want := -2 * math.Log(0.5)
	assert.InDelta(t, want, loss, 1e-9)
}

func TestBinaryCrossEntropyGradient(t *testing.T) {
	bce := BinaryCrossEntropy{}
	output := []float64{0.5, 0.5}
	target := []float64{1.0, 0.0}
	grad := bce.Gradient(output, target)
	assert.Equal(t, []float64{-0.5, 0.5}, grad)
}

func TestBinaryCrossEntropySaturated(t *testing.T) {
	bce := BinaryCrossEntropy{}
	loss := bce.Compute([]float64{0, 1}, []float64{1, 0})
	assert.False(t, math.IsInf(loss, 0), "loss must stay finite")
	assert.False(t, math.IsNaN(loss), "loss must stay finite")
	want := -math.Log(LossEpsilon) - math.Log(1-(1-LossEpsilon))
	assert.InDelta(t, want, loss, 1e-9)

	perfect := bce.Compute([]float64{1, 0}, []float64{1, 0})
	assert.InDelta(t, 0, perfect, 1e-12)
}
