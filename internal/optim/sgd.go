// Package optim implements the parameter update used by backpropagation.
//
// Only plain stochastic gradient steps with a fixed learning rate are
// supported: no momentum, no weight decay, no gradient clipping.
package optim

import (
	"fmt"

	"github.com/born-ml/simpleai/internal/matrix"
)

// SGD applies per-sample gradient updates to one layer at a time.
//
// Update rule for a layer with input activations x:
//
//	g = lr * gradient
//	weights += g × xᵀ
//	bias    += g
//
// The gradient passed in is already signed toward the target (it is built
// from target - output), so adding it moves the layer output toward the
// target. This is gradient descent on squared error.
type SGD struct {
	LR float64 // Learning rate
}

// NewSGD creates an SGD step with the given learning rate.
func NewSGD(lr float64) *SGD {
	return &SGD{LR: lr}
}

// Step scales gradient by the learning rate in place and applies the
// resulting weight and bias deltas to weights and bias.
//
// Shapes: weights (out×in), bias (out×1), gradient (out×1), input (in×1).
func (s *SGD) Step(weights, bias, gradient, input *matrix.Matrix) error {
	gradient.Scale(s.LR)

	delta, err := matrix.Multiply(gradient, matrix.Transpose(input))
	if err != nil {
		return fmt.Errorf("weight delta: %w", err)
	}
	if err := weights.Add(delta); err != nil {
		return fmt.Errorf("apply weight delta: %w", err)
	}
	if err := bias.Add(gradient); err != nil {
		return fmt.Errorf("apply bias delta: %w", err)
	}
	return nil
}
