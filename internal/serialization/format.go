package serialization

import (
	"path/filepath"
	"strings"

	"github.com/born-ml/simpleai/internal/matrix"
)

// ConfigSuffix is appended to the model base path (without extension) to
// address the configuration artifact.
const ConfigSuffix = "_config.json"

// modelFile is the network artifact.
//
// Topology fields are pointers so a reader can tell an absent field from a
// zero and fall back to inferring it from the matrices.
type modelFile struct {
	InputSize    *int             `json:"input_size,omitempty"`
	HiddenSize   *int             `json:"hidden_size,omitempty"`
	OutputSize   *int             `json:"output_size,omitempty"`
	NumLayers    *int             `json:"num_layers,omitempty"`
	LearningRate *float64         `json:"learning_rate,omitempty"`
	Weights      []*matrix.Matrix `json:"weights"`
	Biases       []*matrix.Matrix `json:"biases"`
}

// configFile is the configuration artifact. Pointers mark required fields
// that may be missing from hand-edited or older files.
type configFile struct {
	InputSize    *int     `json:"input_size"`
	HiddenSize   *int     `json:"hidden_size"`
	OutputSize   *int     `json:"output_size"`
	LearningRate *float64 `json:"learning_rate"`
	NumLayers    *int     `json:"num_layers"`
}

// ConfigPath returns the configuration artifact path for a model path:
// the extension is stripped and ConfigSuffix appended.
//
//	models/xor.json -> models/xor_config.json
//	xor_model.pth   -> xor_model_config.json
func ConfigPath(modelPath string) string {
	return strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ConfigSuffix
}

func ptr[T any](v T) *T {
	return &v
}
