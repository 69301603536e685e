// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package trainer

import (
	"log/slog"
	"math/rand"

	"github.com/born-ml/simpleai/internal/nn"
	"github.com/born-ml/simpleai/internal/parallel"
	"github.com/born-ml/simpleai/internal/serialization"
	"github.com/born-ml/simpleai/internal/trainer"
)

// Defaults.
const (
	DefaultSeed     = trainer.DefaultSeed
	DefaultLogEvery = trainer.DefaultLogEvery
)

// Errors.
var (
	// ErrEmptyDataset reports no samples, or inputs and targets of
	// different length.
	ErrEmptyDataset = trainer.ErrEmptyDataset

	// ErrModelNotFound reports that no network artifact exists at a path.
	ErrModelNotFound = serialization.ErrModelNotFound

	// ErrInvalidModel reports a malformed network artifact.
	ErrInvalidModel = serialization.ErrInvalidModel
)

// Trainer owns a network together with the configuration it was built from.
type Trainer = trainer.Trainer

// Options controls one Fit call.
type Options = trainer.Options

// History records what happened during Fit.
type History = trainer.History

// Option configures a Trainer.
type Option = trainer.Option

// ParallelConfig controls how batch inference fans out.
type ParallelConfig = parallel.Config

// DefaultOptions returns 1000 epochs, a 0.2 validation split and a
// patience of 5.
func DefaultOptions() Options {
	return trainer.DefaultOptions()
}

// New builds a trainer with a freshly initialized network for cfg.
func New(cfg nn.Config, opts ...Option) (*Trainer, error) {
	return trainer.New(cfg, opts...)
}

// AutoDetect builds a trainer from the model stored at path.
func AutoDetect(path string, opts ...Option) (*Trainer, error) {
	return trainer.AutoDetect(path, opts...)
}

// MeanSquaredError returns the mean squared difference over outputs.
func MeanSquaredError(target, prediction []float64) (float64, error) {
	return trainer.MeanSquaredError(target, prediction)
}

// ConfigPath returns where Save writes the configuration for modelPath.
func ConfigPath(modelPath string) string {
	return serialization.ConfigPath(modelPath)
}

// Options

// WithSeed seeds the random source used for initialization and shuffling.
func WithSeed(seed int64) Option {
	return trainer.WithSeed(seed)
}

// WithRand supplies the random source directly.
func WithRand(rng *rand.Rand) Option {
	return trainer.WithRand(rng)
}

// WithLogger sets the logger for training progress.
func WithLogger(logger *slog.Logger) Option {
	return trainer.WithLogger(logger)
}

// WithLogEvery sets the epoch interval between progress records.
func WithLogEvery(n int) Option {
	return trainer.WithLogEvery(n)
}

// WithParallel sets how batch inference and validation fan out.
func WithParallel(cfg ParallelConfig) Option {
	return trainer.WithParallel(cfg)
}

// DefaultParallelConfig uses every CPU for large batches.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// WithActivation sets the activation of the trainer's network.
func WithActivation(a nn.Activation) Option {
	return trainer.WithActivation(a)
}
