package nn

import (
	"errors"
	"fmt"
	"math"
)

// Default hyperparameters.
const (
	DefaultLearningRate = 0.1
	DefaultNumLayers    = 2
)

// ErrInvalidConfiguration is returned when a network topology or learning
// rate cannot be used, or a configuration record is missing a required
// field.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config describes a network's shape and learning rate.
//
// It is also the trainer-level configuration record persisted next to a
// saved model, so a model can be rebuilt without re-deriving its shape from
// the weight matrices.
type Config struct {
	InputSize    int     `json:"input_size"`    // Width of every input sample
	HiddenSize   int     `json:"hidden_size"`   // Width of every hidden layer
	OutputSize   int     `json:"output_size"`   // Width of every target
	LearningRate float64 `json:"learning_rate"` // Fixed SGD step size
	NumLayers    int     `json:"num_layers"`    // Number of hidden layers
}

// NewConfig returns a Config with the default learning rate and layer count.
func NewConfig(inputSize, hiddenSize, outputSize int) Config {
	return Config{
		InputSize:    inputSize,
		HiddenSize:   hiddenSize,
		OutputSize:   outputSize,
		LearningRate: DefaultLearningRate,
		NumLayers:    DefaultNumLayers,
	}
}

// Validate reports whether c describes a buildable network.
func (c Config) Validate() error {
	switch {
	case c.InputSize <= 0:
		return fmt.Errorf("%w: input_size must be > 0 (got %d)", ErrInvalidConfiguration, c.InputSize)
	case c.HiddenSize <= 0:
		return fmt.Errorf("%w: hidden_size must be > 0 (got %d)", ErrInvalidConfiguration, c.HiddenSize)
	case c.OutputSize <= 0:
		return fmt.Errorf("%w: output_size must be > 0 (got %d)", ErrInvalidConfiguration, c.OutputSize)
	case c.NumLayers < 1:
		return fmt.Errorf("%w: num_layers must be >= 1 (got %d)", ErrInvalidConfiguration, c.NumLayers)
	case math.IsNaN(c.LearningRate) || math.IsInf(c.LearningRate, 0) || c.LearningRate <= 0:
		return fmt.Errorf("%w: learning_rate must be a positive finite number (got %v)", ErrInvalidConfiguration, c.LearningRate)
	}
	return nil
}

// layerShape returns the (rows, cols) of layer i's weight matrix.
func (c Config) layerShape(i int) (rows, cols int) {
	rows, cols = c.HiddenSize, c.HiddenSize
	if i == 0 {
		cols = c.InputSize
	}
	if i == c.NumLayers {
		rows = c.OutputSize
	}
	return rows, cols
}
