package serialization

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/born-ml/simpleai/internal/nn"
)

// Load reads the model stored at path together with its configuration.
//
// If ConfigPath(path) exists it supplies the returned configuration;
// otherwise the configuration is rebuilt from the loaded network's own
// fields. Returns ErrModelNotFound when the network artifact is absent,
// whether or not a configuration artifact exists.
func Load(path string, opts ...nn.Option) (*nn.Network, nn.Config, error) {
	configPath := ConfigPath(path)
	cfg, cfgErr := LoadConfig(configPath)
	hasConfig := cfgErr == nil
	if cfgErr != nil && !errors.Is(cfgErr, ErrModelNotFound) {
		return nil, nn.Config{}, cfgErr
	}

	net, err := LoadModel(path, opts...)
	if err != nil {
		if errors.Is(err, ErrModelNotFound) && !hasConfig {
			return nil, nn.Config{}, fmt.Errorf("%w: no network at %s and no configuration at %s", ErrModelNotFound, path, configPath)
		}
		return nil, nn.Config{}, err
	}

	if !hasConfig {
		cfg = net.Config()
	}
	return net, cfg, nil
}

// LoadModel reads a network artifact.
//
// Topology fields absent from the file are inferred from the matrices:
// input_size from the first weight matrix's columns, hidden_size from its
// rows, output_size from the last weight matrix's rows and num_layers from
// the matrix count. A missing learning_rate defaults to
// nn.DefaultLearningRate.
func LoadModel(path string, opts ...nn.Option) (*nn.Network, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidModel, path, err)
	}

	cfg, err := inferConfig(&file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	layers, err := validateLayers(cfg, &file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	net, err := nn.FromLayers(cfg, layers, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}

// LoadConfig reads a configuration artifact.
//
// Returns ErrModelNotFound if the file does not exist and
// nn.ErrInvalidConfiguration if input_size, hidden_size or output_size is
// missing or the resulting configuration does not validate. A missing
// learning_rate or num_layers takes the nn package default.
func LoadConfig(path string) (nn.Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nn.Config{}, err
	}

	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nn.Config{}, fmt.Errorf("%w: %s: %w", nn.ErrInvalidConfiguration, path, err)
	}

	required := []struct {
		name  string
		value *int
	}{
		{"input_size", file.InputSize},
		{"hidden_size", file.HiddenSize},
		{"output_size", file.OutputSize},
	}
	for _, field := range required {
		if field.value == nil {
			return nn.Config{}, fmt.Errorf("%w: %s: missing %s", nn.ErrInvalidConfiguration, path, field.name)
		}
	}

	cfg := nn.NewConfig(*file.InputSize, *file.HiddenSize, *file.OutputSize)
	if file.LearningRate != nil {
		cfg.LearningRate = *file.LearningRate
	}
	if file.NumLayers != nil {
		cfg.NumLayers = *file.NumLayers
	}
	if err := cfg.Validate(); err != nil {
		return nn.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
