package serialization

import (
	"fmt"

	"github.com/born-ml/simpleai/internal/nn"
)

// inferConfig builds the network configuration stored in file, filling
// absent topology fields from the matrix shapes.
func inferConfig(file *modelFile) (nn.Config, error) {
	if len(file.Weights) < 2 {
		return nn.Config{}, &ValidationError{
			Type:    "layer_count",
			Layer:   -1,
			Details: fmt.Sprintf("got %d weight matrices, need at least 2", len(file.Weights)),
		}
	}
	if len(file.Biases) != len(file.Weights) {
		return nn.Config{}, &ValidationError{
			Type:    "layer_count",
			Layer:   -1,
			Details: fmt.Sprintf("%d weight matrices but %d bias matrices", len(file.Weights), len(file.Biases)),
		}
	}
	for i := range file.Weights {
		if file.Weights[i] == nil || file.Biases[i] == nil {
			return nn.Config{}, &ValidationError{Type: "missing_matrix", Layer: i, Details: "null weight or bias"}
		}
	}

	first := file.Weights[0]
	last := file.Weights[len(file.Weights)-1]

	cfg := nn.Config{
		InputSize:    valueOr(file.InputSize, first.Cols()),
		HiddenSize:   valueOr(file.HiddenSize, first.Rows()),
		OutputSize:   valueOr(file.OutputSize, last.Rows()),
		NumLayers:    valueOr(file.NumLayers, len(file.Weights)-1),
		LearningRate: valueOr(file.LearningRate, nn.DefaultLearningRate),
	}
	if err := cfg.Validate(); err != nil {
		return nn.Config{}, err
	}
	return cfg, nil
}

// validateLayers checks every matrix against cfg and pairs them into layers.
func validateLayers(cfg nn.Config, file *modelFile) ([]nn.Layer, error) {
	if len(file.Weights) != cfg.NumLayers+1 {
		return nil, &ValidationError{
			Type:    "layer_count",
			Layer:   -1,
			Details: fmt.Sprintf("num_layers=%d needs %d weight matrices, got %d", cfg.NumLayers, cfg.NumLayers+1, len(file.Weights)),
		}
	}

	layers := make([]nn.Layer, len(file.Weights))
	for i := range file.Weights {
		rows, cols := cfg.HiddenSize, cfg.HiddenSize
		if i == 0 {
			cols = cfg.InputSize
		}
		if i == cfg.NumLayers {
			rows = cfg.OutputSize
		}

		w, b := file.Weights[i], file.Biases[i]
		if wr, wc := w.Dims(); wr != rows || wc != cols {
			return nil, &ValidationError{
				Type:    "weight_shape",
				Layer:   i,
				Details: fmt.Sprintf("got %d×%d, want %d×%d", wr, wc, rows, cols),
			}
		}
		if br, bc := b.Dims(); br != rows || bc != 1 {
			return nil, &ValidationError{
				Type:    "bias_shape",
				Layer:   i,
				Details: fmt.Sprintf("got %d×%d, want %d×1", br, bc, rows),
			}
		}
		layers[i] = nn.Layer{Weights: w, Bias: b}
	}
	return layers, nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
