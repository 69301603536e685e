package nn

import (
	"fmt"

	"github.com/born-ml/simpleai/internal/matrix"
)

// LayerActivation records one layer boundary of a forward pass.
//
// Record 0 is the network input (PreActivation and Output are both the
// input column). Record i+1 holds layer i's weighted sum W·x + b and its
// activated output.
type LayerActivation struct {
	PreActivation *matrix.Matrix
	Output        *matrix.Matrix
}

// Forward runs a forward pass and returns every layer boundary, input
// first. The records are freshly allocated and owned by the caller.
//
// Returns matrix.ErrDimensionMismatch if len(input) != InputSize().
func (n *Network) Forward(input []float64) ([]LayerActivation, error) {
	if err := n.checkWidth("input", input, n.cfg.InputSize); err != nil {
		return nil, err
	}

	x := matrix.FromArray(input)
	records := make([]LayerActivation, 0, len(n.layers)+1)
	records = append(records, LayerActivation{PreActivation: x, Output: x.Copy()})

	current := x
	for i, layer := range n.layers {
		z, err := matrix.Multiply(layer.Weights, current)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if err := z.Add(layer.Bias); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		out := matrix.MapStatic(z, n.apply)
		records = append(records, LayerActivation{PreActivation: z, Output: out})
		current = out
	}
	return records, nil
}

// Train performs one backpropagation update on a single sample.
//
// The output error is target - output. Working from the output layer back
// to the first, each layer's gradient is
//
//	gradient_l = lr * (activation'(output_l) ⊙ error_l)
//
// and the layer is updated by weights += gradient_l × inputᵀ and
// bias += gradient_l. The error handed to the layer below is
// transpose(weights_l) × error_l, using layer l's weights after its own
// update has been applied.
//
// Returns matrix.ErrDimensionMismatch if input or target has the wrong
// width. On error the network is not modified.
func (n *Network) Train(input, target []float64) error {
	if err := n.checkWidth("target", target, n.cfg.OutputSize); err != nil {
		return err
	}
	records, err := n.Forward(input)
	if err != nil {
		return err
	}

	last := len(records) - 1
	errs, err := matrix.Subtract(matrix.FromArray(target), records[last].Output)
	if err != nil {
		return fmt.Errorf("output error: %w", err)
	}

	for l := len(n.layers) - 1; l >= 0; l-- {
		if l < len(n.layers)-1 {
			errs, err = matrix.Multiply(matrix.Transpose(n.layers[l+1].Weights), errs)
			if err != nil {
				return fmt.Errorf("backpropagate into layer %d: %w", l, err)
			}
		}

		gradient := matrix.MapStatic(records[l+1].Output, n.derive)
		if err := gradient.Hadamard(errs); err != nil {
			return fmt.Errorf("layer %d gradient: %w", l, err)
		}
		if err := n.sgd.Step(n.layers[l].Weights, n.layers[l].Bias, gradient, records[l].Output); err != nil {
			return fmt.Errorf("layer %d update: %w", l, err)
		}
	}
	return nil
}
