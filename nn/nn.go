// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/simpleai/internal/nn"
)

// Default hyperparameters.
const (
	DefaultLearningRate = nn.DefaultLearningRate
	DefaultNumLayers    = nn.DefaultNumLayers
)

// ErrInvalidConfiguration reports an unusable topology or learning rate,
// or a configuration record missing a required field.
var ErrInvalidConfiguration = nn.ErrInvalidConfiguration

// Config describes a network's shape and learning rate.
type Config = nn.Config

// NewConfig returns a Config with the default learning rate and layer count.
func NewConfig(inputSize, hiddenSize, outputSize int) Config {
	return nn.NewConfig(inputSize, hiddenSize, outputSize)
}

// Network

// Network is a dense feed-forward network.
type Network = nn.Network

// Layer is one weight/bias pair.
type Layer = nn.Layer

// LayerActivation records one layer boundary of a forward pass.
type LayerActivation = nn.LayerActivation

// Option configures a Network.
type Option = nn.Option

// New builds a network for cfg with weights drawn from rng.
func New(cfg Config, rng *rand.Rand, opts ...Option) (*Network, error) {
	return nn.New(cfg, rng, opts...)
}

// FromLayers builds a network for cfg from existing matrices.
func FromLayers(cfg Config, layers []Layer, opts ...Option) (*Network, error) {
	return nn.FromLayers(cfg, layers, opts...)
}

// WithActivation overrides the default sigmoid activation.
func WithActivation(a Activation) Option {
	return nn.WithActivation(a)
}

// Activations

// Activation pairs an activation function with its derivative.
type Activation = nn.Activation

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return nn.Sigmoid(x)
}

// SigmoidDerivative returns the sigmoid derivative given its output y.
func SigmoidDerivative(y float64) float64 {
	return nn.SigmoidDerivative(y)
}

// ReLU returns max(0, x).
func ReLU(x float64) float64 {
	return nn.ReLU(x)
}

// ReLUDerivative returns the ReLU derivative given its output y.
func ReLUDerivative(y float64) float64 {
	return nn.ReLUDerivative(y)
}

// SigmoidActivation returns the sigmoid Activation.
func SigmoidActivation() Activation {
	return nn.SigmoidActivation()
}

// ReLUActivation returns the ReLU Activation.
func ReLUActivation() Activation {
	return nn.ReLUActivation()
}

// ActivationByName looks up an activation ("sigmoid" or "relu").
func ActivationByName(name string) (Activation, error) {
	return nn.ActivationByName(name)
}
