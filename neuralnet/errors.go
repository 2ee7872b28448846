package neuralnet

import "errors"

var (
	// ErrShape reports a sample, target or parameter whose length does not
	// match the network's fixed dimensions.
	ErrShape = errors.New("shape mismatch")
	// ErrLabel reports a class label outside [0, numClasses).
	ErrLabel = errors.New("label out of range")
	// ErrTarget reports a target that is not one-hot.
	ErrTarget = errors.New("target is not one-hot")
	// ErrLearningRate reports a negative or non-finite learning rate.
	ErrLearningRate = errors.New("invalid learning rate")
	// ErrNonFinite reports an update that would leave a parameter NaN or Inf.
	ErrNonFinite = errors.New("non-finite parameter")
)
