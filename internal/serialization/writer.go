package serialization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/born-ml/simpleai/internal/matrix"
	"github.com/born-ml/simpleai/internal/nn"
)

// Save writes the network artifact to path and cfg to ConfigPath(path).
// Missing parent directories are created.
func Save(path string, net *nn.Network, cfg nn.Config) error {
	if err := SaveModel(path, net); err != nil {
		return err
	}
	return SaveConfig(ConfigPath(path), cfg)
}

// SaveModel writes the network artifact for net to path.
func SaveModel(path string, net *nn.Network) error {
	cfg := net.Config()
	layers := net.Layers()

	file := modelFile{
		InputSize:    ptr(cfg.InputSize),
		HiddenSize:   ptr(cfg.HiddenSize),
		OutputSize:   ptr(cfg.OutputSize),
		NumLayers:    ptr(cfg.NumLayers),
		LearningRate: ptr(cfg.LearningRate),
		Weights:      make([]*matrix.Matrix, len(layers)),
		Biases:       make([]*matrix.Matrix, len(layers)),
	}
	for i, layer := range layers {
		file.Weights[i] = layer.Weights
		file.Biases[i] = layer.Bias
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

// SaveConfig writes cfg as a configuration artifact at path.
//
// Note: path is the configuration file itself, not the model path; use
// ConfigPath to derive it.
func SaveConfig(path string, cfg nn.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// writeFile writes data to a temporary file next to path and renames it
// into place, so readers never observe a partially written artifact.
func writeFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name()) // Best effort cleanup on error
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
