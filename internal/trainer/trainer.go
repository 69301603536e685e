// Package trainer runs the epoch loop around an nn.Network: train/validation
// split, per-epoch shuffling, loss tracking, early stopping and checkpoint
// restore. It also wraps persistence so a trained model can be saved and
// reconstructed together with its configuration.
package trainer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/simpleai/internal/matrix"
	"github.com/born-ml/simpleai/internal/nn"
	"github.com/born-ml/simpleai/internal/parallel"
)

// DefaultSeed seeds the random source when no WithSeed or WithRand option
// is given, so two trainers built the same way behave the same way.
const DefaultSeed int64 = 42

// DefaultLogEvery is the epoch interval between progress records.
const DefaultLogEvery = 100

// ErrEmptyDataset is returned when Fit receives no samples, or inputs and
// targets of different length.
var ErrEmptyDataset = errors.New("empty dataset")

// Trainer owns a network together with the configuration it was built from.
//
// A Trainer is not safe for concurrent use.
type Trainer struct {
	net      *nn.Network
	cfg      nn.Config
	netOpts  []nn.Option
	rng      *rand.Rand
	logger   *slog.Logger
	logEvery int
	parallel parallel.Config

	// validationLoss computes the held-out loss after each epoch. Nil means
	// meanLoss over the validation partition.
	validationLoss func(epoch int, val []sample) (float64, error)
}

// Option configures a Trainer.
type Option func(*trainerOptions)

type trainerOptions struct {
	seed     int64
	rng      *rand.Rand
	logger   *slog.Logger
	logEvery int
	parallel parallel.Config
	netOpts  []nn.Option
}

// WithSeed seeds a fresh random source used for weight initialization and
// shuffling.
func WithSeed(seed int64) Option {
	return func(o *trainerOptions) {
		o.seed = seed
	}
}

// WithRand supplies the random source directly. It takes precedence over
// WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(o *trainerOptions) {
		o.rng = rng
	}
}

// WithLogger sets the logger for epoch progress and early stopping.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *trainerOptions) {
		o.logger = logger
	}
}

// WithLogEvery sets the epoch interval between progress records.
// Values below 1 keep the default.
func WithLogEvery(n int) Option {
	return func(o *trainerOptions) {
		if n > 0 {
			o.logEvery = n
		}
	}
}

// WithParallel sets how batch inference and validation fan out.
func WithParallel(cfg parallel.Config) Option {
	return func(o *trainerOptions) {
		o.parallel = cfg
	}
}

// WithActivation sets the activation of the trainer's network.
func WithActivation(a nn.Activation) Option {
	return func(o *trainerOptions) {
		o.netOpts = append(o.netOpts, nn.WithActivation(a))
	}
}

func buildOptions(opts []Option) *trainerOptions {
	o := &trainerOptions{
		seed:     DefaultSeed,
		logEvery: DefaultLogEvery,
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(o.seed)) //nolint:gosec // Reproducibility, not security.
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// New builds a trainer with a freshly initialized network for cfg.
//
// Returns nn.ErrInvalidConfiguration if cfg does not validate.
func New(cfg nn.Config, opts ...Option) (*Trainer, error) {
	o := buildOptions(opts)
	net, err := nn.New(cfg, o.rng, o.netOpts...)
	if err != nil {
		return nil, err
	}
	return newTrainer(cfg, net, o), nil
}

func newTrainer(cfg nn.Config, net *nn.Network, o *trainerOptions) *Trainer {
	return &Trainer{
		net:      net,
		cfg:      cfg,
		netOpts:  o.netOpts,
		rng:      o.rng,
		logger:   o.logger,
		logEvery: o.logEvery,
		parallel: o.parallel,
	}
}

// Network returns the live network. Training mutates it in place.
func (t *Trainer) Network() *nn.Network {
	return t.net
}

// Config returns the configuration the trainer was built from.
func (t *Trainer) Config() nn.Config {
	return t.cfg
}

// Predict runs every sample through the network and returns the outputs in
// order. Samples may be evaluated concurrently; the network is not modified.
//
// Returns matrix.ErrDimensionMismatch for any sample of the wrong width.
func (t *Trainer) Predict(samples [][]float64) ([][]float64, error) {
	return parallel.Map(len(samples), func(i int) ([]float64, error) {
		out, err := t.net.Predict(samples[i])
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		return out, nil
	}, t.parallel)
}

// MeanSquaredError returns the mean over output dimensions of the squared
// difference between target and prediction. Empty vectors have zero error.
//
// Returns matrix.ErrDimensionMismatch if the lengths differ.
func MeanSquaredError(target, prediction []float64) (float64, error) {
	if len(target) != len(prediction) {
		return 0, fmt.Errorf("%w: target has %d values, prediction has %d",
			matrix.ErrDimensionMismatch, len(target), len(prediction))
	}
	if len(target) == 0 {
		return 0, nil
	}
	diff := make([]float64, len(target))
	floats.SubTo(diff, target, prediction)
	return floats.Dot(diff, diff) / float64(len(target)), nil
}
