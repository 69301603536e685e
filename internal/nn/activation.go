package nn

import (
	"fmt"
	"math"
)

// Activation pairs an elementwise activation function with its derivative.
//
// Derivative is evaluated on the already activated value y = Fn(x), never on
// the pre-activation sum x. Backpropagation only has the post-activation
// outputs at hand when it computes gradients.
type Activation struct {
	Name       string
	Fn         func(x float64) float64
	Derivative func(y float64) float64
}

// Sigmoid computes the logistic function 1 / (1 + e^-x).
//
// For large negative x, math.Exp overflows to +Inf and the result is
// exactly 0. For large positive x it underflows to 0 and the result is
// exactly 1. No input produces NaN except NaN itself.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidDerivative returns y * (1 - y) where y = Sigmoid(x).
func SigmoidDerivative(y float64) float64 {
	return y * (1 - y)
}

// ReLU computes max(0, x).
func ReLU(x float64) float64 {
	return math.Max(0, x)
}

// ReLUDerivative returns 1 if y > 0 and 0 otherwise.
//
// ReLU(x) > 0 exactly when x > 0, so the activated value gives the same
// answer as the pre-activation sum.
func ReLUDerivative(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

// SigmoidActivation returns the logistic activation pair.
func SigmoidActivation() Activation {
	return Activation{Name: "sigmoid", Fn: Sigmoid, Derivative: SigmoidDerivative}
}

// ReLUActivation returns the rectified linear activation pair.
func ReLUActivation() Activation {
	return Activation{Name: "relu", Fn: ReLU, Derivative: ReLUDerivative}
}

// DefaultActivation is the logistic sigmoid.
func DefaultActivation() Activation {
	return SigmoidActivation()
}

// ActivationByName resolves "sigmoid" or "relu".
func ActivationByName(name string) (Activation, error) {
	switch name {
	case "sigmoid", "":
		return SigmoidActivation(), nil
	case "relu":
		return ReLUActivation(), nil
	default:
		return Activation{}, fmt.Errorf("%w: unknown activation %q", ErrInvalidConfiguration, name)
	}
}
