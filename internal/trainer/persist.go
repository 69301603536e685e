package trainer

import (
	"fmt"

	"github.com/born-ml/simpleai/internal/nn"
	"github.com/born-ml/simpleai/internal/serialization"
)

// Save writes the network to path and the trainer configuration to
// serialization.ConfigPath(path).
func (t *Trainer) Save(path string) error {
	if err := serialization.Save(path, t.net, t.cfg); err != nil {
		return err
	}
	t.logger.Debug("model saved", "path", path, "config_path", serialization.ConfigPath(path))
	return nil
}

// Load replaces the trainer's weights with the network stored at path.
// The stored network must have the trainer's topology; the trainer keeps
// its own learning rate.
//
// Returns serialization.ErrModelNotFound if path does not exist and
// matrix.ErrShapeMismatch if the topology differs.
func (t *Trainer) Load(path string) error {
	stored, err := serialization.LoadModel(path)
	if err != nil {
		return err
	}
	if err := t.net.SetLayers(stored.Layers()); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// AutoDetect builds a trainer from the model stored at path.
//
// The configuration comes from the configuration artifact when present
// and is otherwise rebuilt from the stored network's own fields. When both
// exist the configuration artifact wins, so its learning rate governs any
// further training.
//
// Returns serialization.ErrModelNotFound when the network artifact is
// missing and nn.ErrInvalidConfiguration for an incomplete configuration
// artifact.
func AutoDetect(path string, opts ...Option) (*Trainer, error) {
	o := buildOptions(opts)

	stored, cfg, err := serialization.Load(path)
	if err != nil {
		return nil, err
	}
	net, err := nn.FromLayers(cfg, stored.Layers(), o.netOpts...)
	if err != nil {
		return nil, fmt.Errorf("configuration for %s does not match the stored network: %w", path, err)
	}

	o.logger.Debug("model loaded",
		"path", path,
		"input_size", cfg.InputSize,
		"hidden_size", cfg.HiddenSize,
		"output_size", cfg.OutputSize,
		"num_layers", cfg.NumLayers,
	)
	return newTrainer(cfg, net, o), nil
}
