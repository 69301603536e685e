// Package config loads the YAML run configuration used by the command line
// tool and applies flag overrides and dataset-size auto-tuning to it.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/simpleai/internal/nn"
	"github.com/born-ml/simpleai/internal/trainer"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid run config")

// RunConfig captures the knobs for one training run.
type RunConfig struct {
	HiddenSize            int     `yaml:"hidden_size"`
	NumLayers             int     `yaml:"num_layers"`
	LearningRate          float64 `yaml:"learning_rate"`
	Epochs                int     `yaml:"epochs"`
	ValidationSplit       float64 `yaml:"validation_split"`
	EarlyStoppingPatience int     `yaml:"early_stopping_patience"`
	Seed                  int64   `yaml:"seed"`
	LogEvery              int     `yaml:"log_every"`
	AutoTune              bool    `yaml:"auto_tune"`
}

// Overrides captures CLI supplied values. Zero values leave the config
// untouched.
type Overrides struct {
	HiddenSize   int
	NumLayers    int
	LearningRate float64
	Epochs       int
	Seed         int64
	LogEvery     int
	AutoTune     bool
}

// Default returns the settings used when no file is given.
func Default() *RunConfig {
	opts := trainer.DefaultOptions()
	return &RunConfig{
		HiddenSize:            10,
		NumLayers:             nn.DefaultNumLayers,
		LearningRate:          nn.DefaultLearningRate,
		Epochs:                5000,
		ValidationSplit:       opts.ValidationSplit,
		EarlyStoppingPatience: opts.EarlyStoppingPatience,
		Seed:                  trainer.DefaultSeed,
		LogEvery:              trainer.DefaultLogEvery,
	}
}

// Load reads a RunConfig from YAML. Keys missing from the file keep their
// Default values; unknown keys are rejected.
func Load(path string) (*RunConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *RunConfig) ApplyOverrides(o Overrides) {
	if o.HiddenSize > 0 {
		c.HiddenSize = o.HiddenSize
	}
	if o.NumLayers > 0 {
		c.NumLayers = o.NumLayers
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.AutoTune {
		c.AutoTune = true
	}
}

// Validate verifies the config is runnable.
func (c *RunConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if c.HiddenSize <= 0 {
		return fmt.Errorf("%w: hidden_size must be > 0 (got %d)", ErrInvalidConfig, c.HiddenSize)
	}
	if c.NumLayers < 1 {
		return fmt.Errorf("%w: num_layers must be >= 1 (got %d)", ErrInvalidConfig, c.NumLayers)
	}
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0) {
		return fmt.Errorf("%w: learning_rate must be a positive finite number (got %v)", ErrInvalidConfig, c.LearningRate)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("%w: epochs must be >= 0 (got %d)", ErrInvalidConfig, c.Epochs)
	}
	if c.ValidationSplit < 0 || c.ValidationSplit >= 1 {
		return fmt.Errorf("%w: validation_split must be in [0, 1) (got %v)", ErrInvalidConfig, c.ValidationSplit)
	}
	if c.EarlyStoppingPatience < 0 {
		return fmt.Errorf("%w: early_stopping_patience must be >= 0 (got %d)", ErrInvalidConfig, c.EarlyStoppingPatience)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = trainer.DefaultLogEvery
	}
	return nil
}

// Tune sizes the network from the dataset: more samples get a wider
// and, past 1000 samples, deeper network with epochs capped at 2000.
// It does nothing unless c.AutoTune is set.
func (c *RunConfig) Tune(samples, inputSize int) {
	if !c.AutoTune {
		return
	}
	switch {
	case samples > 1000:
		c.HiddenSize = min(256, inputSize*8)
		c.NumLayers = 3
		c.Epochs = min(c.Epochs, 2000)
	case samples > 100:
		c.HiddenSize = min(128, inputSize*4)
		c.NumLayers = 2
	default:
		c.HiddenSize = min(64, inputSize*2)
		c.NumLayers = 2
	}
}

// NetworkConfig returns the network configuration for a dataset of the
// given input and output width.
func (c *RunConfig) NetworkConfig(inputSize, outputSize int) nn.Config {
	return nn.Config{
		InputSize:    inputSize,
		HiddenSize:   c.HiddenSize,
		OutputSize:   outputSize,
		LearningRate: c.LearningRate,
		NumLayers:    c.NumLayers,
	}
}

// TrainOptions returns the Fit options for this run.
func (c *RunConfig) TrainOptions() trainer.Options {
	return trainer.Options{
		Epochs:                c.Epochs,
		ValidationSplit:       c.ValidationSplit,
		EarlyStoppingPatience: c.EarlyStoppingPatience,
	}
}
