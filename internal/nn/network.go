// Package nn implements a fully connected feed-forward network trained one
// sample at a time by backpropagation.
//
// A Network with NumLayers hidden layers holds NumLayers+1 layers:
//
//	layer 0:            weights (hidden × input),  bias (hidden × 1)
//	layers 1..n-1:      weights (hidden × hidden), bias (hidden × 1)
//	layer n (output):   weights (output × hidden), bias (output × 1)
//
// The same activation function is applied after every layer, including the
// output layer.
package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/simpleai/internal/matrix"
	"github.com/born-ml/simpleai/internal/optim"
)

// initRange bounds the uniform draw used for fresh weights and biases.
const initRange = 1.0

// Layer is one weight/bias pair mapping an activation vector to the next.
type Layer struct {
	Weights *matrix.Matrix // (out × in)
	Bias    *matrix.Matrix // (out × 1)
}

// Copy returns a deep copy of l.
func (l Layer) Copy() Layer {
	return Layer{Weights: l.Weights.Copy(), Bias: l.Bias.Copy()}
}

// Network is a dense feed-forward network.
//
// A Network exclusively owns its layer matrices. Layers returns deep copies
// and SetLayers stores deep copies, so no matrix is ever shared with a
// caller or with another network.
//
// Network is not safe for concurrent mutation. Predict may be called from
// multiple goroutines as long as no Train or SetLayers call runs at the
// same time.
type Network struct {
	cfg        Config
	layers     []Layer
	activation Activation
	sgd        *optim.SGD
}

// Option configures a Network.
type Option func(*Network)

// WithActivation overrides the default sigmoid activation.
func WithActivation(a Activation) Option {
	return func(n *Network) {
		n.activation = a
	}
}

// New builds a network for cfg with every weight and bias drawn uniformly
// from [-1, 1) using rng.
//
// Returns ErrInvalidConfiguration if cfg does not validate.
func New(cfg Config, rng *rand.Rand, opts ...Option) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}

	layers := make([]Layer, cfg.NumLayers+1)
	for i := range layers {
		rows, cols := cfg.layerShape(i)
		layers[i] = Layer{
			Weights: matrix.New(rows, cols).Randomize(rng, -initRange, initRange),
			Bias:    matrix.New(rows, 1).Randomize(rng, -initRange, initRange),
		}
	}

	return newNetwork(cfg, layers, opts), nil
}

// FromLayers builds a network for cfg from existing matrices, for example
// ones read back from disk. The layers are deep-copied.
//
// Returns ErrInvalidConfiguration for an invalid cfg and
// matrix.ErrShapeMismatch if any layer disagrees with cfg.
func FromLayers(cfg Config, layers []Layer, opts ...Option) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkLayers(cfg, layers); err != nil {
		return nil, err
	}
	return newNetwork(cfg, copyLayers(layers), opts), nil
}

func newNetwork(cfg Config, layers []Layer, opts []Option) *Network {
	n := &Network{
		cfg:        cfg,
		layers:     layers,
		activation: DefaultActivation(),
		sgd:        optim.NewSGD(cfg.LearningRate),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Config returns the network's topology and learning rate.
func (n *Network) Config() Config {
	return n.cfg
}

// InputSize returns the expected input width.
func (n *Network) InputSize() int { return n.cfg.InputSize }

// OutputSize returns the produced output width.
func (n *Network) OutputSize() int { return n.cfg.OutputSize }

// LearningRate returns the fixed SGD step size.
func (n *Network) LearningRate() float64 { return n.cfg.LearningRate }

// Activation returns the activation pair applied after every layer.
func (n *Network) Activation() Activation { return n.activation }

// NumLayers returns the number of weight/bias layers (hidden layers + 1).
func (n *Network) NumLayers() int { return len(n.layers) }

// Layers returns a deep copy of every layer, in order.
func (n *Network) Layers() []Layer {
	return copyLayers(n.layers)
}

// SetLayers replaces every layer at once with deep copies of layers.
//
// Returns matrix.ErrShapeMismatch, leaving the network untouched, if the
// layer count or any matrix shape differs from the network's topology.
func (n *Network) SetLayers(layers []Layer) error {
	if err := checkLayers(n.cfg, layers); err != nil {
		return err
	}
	n.layers = copyLayers(layers)
	return nil
}

// Clone returns an independent copy of n.
func (n *Network) Clone() *Network {
	return &Network{
		cfg:        n.cfg,
		layers:     copyLayers(n.layers),
		activation: n.activation,
		sgd:        optim.NewSGD(n.cfg.LearningRate),
	}
}

// Predict runs a forward pass and returns the output activations.
//
// Returns matrix.ErrDimensionMismatch if len(input) != InputSize().
// Predict does not modify the network; identical inputs on an unmodified
// network yield bitwise identical outputs.
func (n *Network) Predict(input []float64) ([]float64, error) {
	if err := n.checkWidth("input", input, n.cfg.InputSize); err != nil {
		return nil, err
	}

	current := matrix.FromArray(input)
	for i, layer := range n.layers {
		next, err := n.step(layer, current)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		current = next
	}
	return current.ToArray(), nil
}

// step computes activation(W·x + b) into a new matrix.
func (n *Network) step(layer Layer, x *matrix.Matrix) (*matrix.Matrix, error) {
	z, err := matrix.Multiply(layer.Weights, x)
	if err != nil {
		return nil, err
	}
	if err := z.Add(layer.Bias); err != nil {
		return nil, err
	}
	z.Map(n.apply)
	return z, nil
}

func (n *Network) apply(v float64, _, _ int) float64 {
	return n.activation.Fn(v)
}

func (n *Network) derive(v float64, _, _ int) float64 {
	return n.activation.Derivative(v)
}

func (n *Network) checkWidth(what string, values []float64, want int) error {
	if len(values) != want {
		return fmt.Errorf("%w: %s has %d values, network expects %d", matrix.ErrDimensionMismatch, what, len(values), want)
	}
	return nil
}

func checkLayers(cfg Config, layers []Layer) error {
	if len(layers) != cfg.NumLayers+1 {
		return fmt.Errorf("%w: got %d layers, topology has %d", matrix.ErrShapeMismatch, len(layers), cfg.NumLayers+1)
	}
	for i, layer := range layers {
		if layer.Weights == nil || layer.Bias == nil {
			return fmt.Errorf("%w: layer %d is missing a matrix", matrix.ErrShapeMismatch, i)
		}
		rows, cols := cfg.layerShape(i)
		wr, wc := layer.Weights.Dims()
		if wr != rows || wc != cols {
			return fmt.Errorf("%w: layer %d weights are %d×%d, want %d×%d", matrix.ErrShapeMismatch, i, wr, wc, rows, cols)
		}
		br, bc := layer.Bias.Dims()
		if br != rows || bc != 1 {
			return fmt.Errorf("%w: layer %d bias is %d×%d, want %d×1", matrix.ErrShapeMismatch, i, br, bc, rows)
		}
	}
	return nil
}

func copyLayers(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Copy()
	}
	return out
}
