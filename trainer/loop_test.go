package trainer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mnistnet/dataset"
	"mnistnet/neuralnet"
	"mnistnet/report"
)

type countingSink struct {
	samples   map[string]int
	summaries []report.Summary
}

func newCountingSink() *countingSink {
	return &countingSink{samples: map[string]int{}}
}

func (c *countingSink) Sample(phase string, _ report.Result, _ report.Summary) {
	c.samples[phase]++
}

func (c *countingSink) Summary(_ string, _ int, s report.Summary) error {
	c.summaries = append(c.summaries, s)
	return nil
}

func toySet(t *testing.T) *dataset.Set {
	t.Helper()
	set, err := dataset.FromSamples(
		[]neuralnet.Sample{{1, 0}, {0, 1}, {1, 0}, {0, 1}},
		[]int{0, 1, 0, 1},
	)
	require.NoError(t, err)
	return set
}

func toyNetwork(t *testing.T) *neuralnet.Network {
	t.Helper()
	nn, err := neuralnet.New(neuralnet.Shape{Inputs: 2, Hidden: 4, Outputs: 2}, 3)
	require.NoError(t, err)
	return nn
}

func TestRun(t *testing.T) {
	nn := toyNetwork(t)
	sink := newCountingSink()
	cfg := RunConfig{Epochs: 500, LearningRate: 0.5, Shuffle: true, Seed: 1}

	res, err := Run(context.Background(), nn, cfg, toySet(t), toySet(t), sink)
	require.NoError(t, err)
	require.Len(t, res.Epochs, 500)
	for _, s := range res.Epochs {
		assert.Equal(t, 4, s.Total())
	}
	assert.Less(t, res.Epochs[499].MeanCost, res.Epochs[0].MeanCost)
	assert.Equal(t, 4, res.Test.Correct)
	assert.Equal(t, 0, res.Test.Incorrect)

	assert.Equal(t, 2000, sink.samples[report.PhaseTrain])
	assert.Equal(t, 4, sink.samples[report.PhaseTest])
	assert.Len(t, sink.summaries, 501)
}

func TestRunWithoutTestSet(t *testing.T) {
	res, err := Run(context.Background(), toyNetwork(t), RunConfig{Epochs: 2, LearningRate: 0.1}, toySet(t), nil, nil)
	require.NoError(t, err)
	assert.Len(t, res.Epochs, 2)
	assert.Zero(t, res.Test.Total())
}

func TestRunValidates(t *testing.T) {
	_, err := Run(context.Background(), toyNetwork(t), RunConfig{}, toySet(t), nil, nil)
	assert.ErrorContains(t, err, "epochs")
	_, err = Run(context.Background(), toyNetwork(t), RunConfig{Epochs: 1}, nil, nil, nil)
	assert.ErrorContains(t, err, "empty")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	nn := toyNetwork(t)
	before := nn.Params()
	_, err := Run(ctx, nn, RunConfig{Epochs: 1, LearningRate: 0.5}, toySet(t), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, nn.Params())
}

func TestEpochRejectsBadLabel(t *testing.T) {
	set, err := dataset.FromSamples([]neuralnet.Sample{{1, 0}, {0, 1}}, []int{0, 5})
	require.NoError(t, err)

	nn := toyNetwork(t)
	before := nn.Params()
	_, err = Epoch(context.Background(), nn, set, 0.5, report.Multi())
	assert.ErrorIs(t, err, neuralnet.ErrLabel)
	assert.Equal(t, before, nn.Params(), "labels are checked before the first update")
}

func TestEvaluateDoesNotUpdate(t *testing.T) {
	nn := toyNetwork(t)
	before := nn.Params()
	sink := newCountingSink()

	summary, err := Evaluate(context.Background(), nn, toySet(t), sink)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total())
	assert.Greater(t, summary.MeanCost, 0.0)
	assert.Equal(t, before, nn.Params())
	assert.Equal(t, 4, sink.samples[report.PhaseTest])
}
