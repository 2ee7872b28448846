// Package trainer drives per-example training epochs and test evaluation.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"mnistnet/dataset"
	"mnistnet/neuralnet"
	"mnistnet/report"
)

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Epochs       int
	LearningRate float64
	Shuffle      bool
	Seed         int64
}

// Result holds one summary per training epoch and the test-set summary.
type Result struct {
	Epochs []report.Summary
	Test   report.Summary
}

// Run trains nn on train for cfg.Epochs epochs, one update per example,
// then evaluates it on test if test is non-nil. Cancellation is observed
// between examples.
func Run(ctx context.Context, nn *neuralnet.Network, cfg RunConfig, train, test *dataset.Set, sink report.Sink) (*Result, error) {
	if cfg.Epochs <= 0 {
		return nil, errors.New("trainer: epochs must be > 0")
	}
	if train == nil || train.Len() == 0 {
		return nil, errors.New("trainer: empty training set")
	}
	if sink == nil {
		sink = report.Multi()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	res := &Result{}
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if cfg.Shuffle {
			train.Shuffle(rng)
		}
		summary, err := Epoch(ctx, nn, train, cfg.LearningRate, sink)
		if err != nil {
			return res, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		res.Epochs = append(res.Epochs, summary)
		if err := sink.Summary(report.PhaseTrain, epoch, summary); err != nil {
			return res, err
		}
	}

	if test != nil {
		summary, err := Evaluate(ctx, nn, test, sink)
		if err != nil {
			return res, fmt.Errorf("test: %w", err)
		}
		res.Test = summary
		if err := sink.Summary(report.PhaseTest, cfg.Epochs-1, summary); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Epoch runs one TrainStep per example of set and returns the aggregate.
// Each prediction is taken from the forward pass that preceded its update.
func Epoch(ctx context.Context, nn *neuralnet.Network, set *dataset.Set, lr float64, sink report.Sink) (report.Summary, error) {
	var tally report.Tally
	onehot, err := set.OneHot(nn.Shape().Outputs)
	if err != nil {
		return tally.Current(), err
	}
	for i := 0; i < set.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return tally.Current(), err
		}
		sample, label := set.Sample(i)
		target := set.Target(onehot, i)
		cost, err := nn.TrainStep(sample, target, lr)
		if err != nil {
			return tally.Current(), fmt.Errorf("sample %d: %w", i, err)
		}
		r := report.Result{Index: i, Predicted: nn.Predict(), Actual: label, Cost: cost}
		tally.Record(r)
		sink.Sample(report.PhaseTrain, r, tally.Current())
	}
	return tally.Snapshot(), nil
}

// Evaluate predicts every example of set without updating nn.
func Evaluate(ctx context.Context, nn *neuralnet.Network, set *dataset.Set, sink report.Sink) (report.Summary, error) {
	var tally report.Tally
	onehot, err := set.OneHot(nn.Shape().Outputs)
	if err != nil {
		return tally.Current(), err
	}
	for i := 0; i < set.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return tally.Current(), err
		}
		sample, label := set.Sample(i)
		target := set.Target(onehot, i)
		predicted, err := nn.Evaluate(sample)
		if err != nil {
			return tally.Current(), fmt.Errorf("sample %d: %w", i, err)
		}
		cost, err := nn.Cost(target)
		if err != nil {
			return tally.Current(), fmt.Errorf("sample %d: %w", i, err)
		}
		r := report.Result{Index: i, Predicted: predicted, Actual: label, Cost: cost}
		tally.Record(r)
		sink.Sample(report.PhaseTest, r, tally.Current())
	}
	return tally.Snapshot(), nil
}
