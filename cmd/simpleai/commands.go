package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/born-ml/simpleai/internal/config"
	"github.com/born-ml/simpleai/internal/dataset"
	"github.com/born-ml/simpleai/internal/nn"
	"github.com/born-ml/simpleai/internal/serialization"
	"github.com/born-ml/simpleai/internal/trainer"
)

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// runFlags registers the training flags shared by xor, train and auto.
func runFlags(fs *flag.FlagSet) (cfgPath *string, o *config.Overrides) {
	o = &config.Overrides{}
	cfgPath = fs.String("config", "", "Path to YAML run config")
	fs.IntVar(&o.HiddenSize, "hidden", 0, "Hidden layer size (default 10)")
	fs.IntVar(&o.NumLayers, "layers", 0, "Number of hidden layers (default 2)")
	fs.Float64Var(&o.LearningRate, "lr", 0, "Learning rate (default 0.1)")
	fs.IntVar(&o.Epochs, "epochs", 0, "Number of epochs (default 5000)")
	fs.Int64Var(&o.Seed, "seed", 0, "PRNG seed")
	fs.IntVar(&o.LogEvery, "log-every", 0, "Log every N epochs (default 100)")
	return cfgPath, o
}

func loadRunConfig(path string, o config.Overrides) (*config.RunConfig, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) newTrainer(cfg *config.RunConfig, netCfg nn.Config) (*trainer.Trainer, error) {
	return trainer.New(netCfg,
		trainer.WithSeed(cfg.Seed),
		trainer.WithLogger(a.logger),
		trainer.WithLogEvery(cfg.LogEvery),
	)
}

func (a *app) xor(args []string) error {
	fs := a.newFlagSet("xor")
	cfgPath, o := runFlags(fs)
	save := fs.String("save", "xor_model.json", "Path to save model")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadRunConfig(*cfgPath, *o)
	if err != nil {
		return err
	}

	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	targets := [][]float64{{0}, {1}, {1}, {0}}

	tr, err := a.newTrainer(cfg, cfg.NetworkConfig(2, 1))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Training model on XOR problem...")
	if _, err := tr.Fit(inputs, targets, cfg.TrainOptions()); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	preds, err := tr.Predict(inputs)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\nTesting model:")
	for i, in := range inputs {
		fmt.Fprintf(a.out, "Input: %v, Expected: %g, Predicted: %.4f\n", in, targets[i][0], preds[i][0])
	}

	if err := tr.Save(*save); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nModel saved as '%s'\n", *save)
	return nil
}

func (a *app) train(args []string) error {
	positionals, args := leadingPositionals(args, 1)
	fs := a.newFlagSet("train")
	cfgPath, o := runFlags(fs)
	fs.BoolVar(&o.AutoTune, "auto-tune", false, "Size the network from the dataset")
	save := fs.String("save", "model.json", "Path to save model")
	if err := fs.Parse(args); err != nil {
		return err
	}
	positionals = append(positionals, fs.Args()...)
	if len(positionals) != 1 {
		return errors.New("train: expected exactly one CSV file")
	}

	cfg, err := loadRunConfig(*cfgPath, *o)
	if err != nil {
		return err
	}
	return a.trainFile(positionals[0], *cfg, *save)
}

func (a *app) auto(args []string) error {
	fs := a.newFlagSet("auto")
	cfgPath, o := runFlags(fs)
	fs.BoolVar(&o.AutoTune, "auto-tune", false, "Size each network from its dataset")
	dir := fs.String("dir", ".", "Directory to search for datasets")
	outDir := fs.String("out", ".", "Directory to save models in")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadRunConfig(*cfgPath, *o)
	if err != nil {
		return err
	}

	datasets, err := dataset.Discover(*dir)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		return fmt.Errorf("no CSV datasets found in %s", *dir)
	}

	fmt.Fprintf(a.out, "Found %d datasets:\n", len(datasets))
	for i, path := range datasets {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, path)
	}
	for _, path := range datasets {
		fmt.Fprintf(a.out, "\nAutomatic training on %s...\n", path)
		if err := a.trainFile(path, *cfg, dataset.ModelPath(*outDir, path)); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.out, "\nAll datasets have been processed and models saved.")
	return nil
}

// trainFile trains a model on the CSV at path and saves it to save.
// cfg is a copy so auto-tuning one dataset does not leak into the next.
func (a *app) trainFile(path string, cfg config.RunConfig, save string) error {
	fmt.Fprintf(a.out, "Loading data from %s...\n", path)
	table, err := dataset.LoadCSV(path, dataset.CSVOptions{DetectHeader: true})
	if err != nil {
		return err
	}
	if table.Header != nil {
		a.logger.Info("detected header row", "path", path, "columns", len(table.Header))
	}
	if table.Skipped > 0 {
		a.logger.Warn("skipped rows with non-numeric data", "path", path, "rows", table.Skipped)
	}

	inputs, targets, err := dataset.Split(table.Rows)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	inputSize := len(inputs[0])

	if cfg.AutoTune {
		cfg.Tune(len(inputs), inputSize)
		a.logger.Info("auto-tuned parameters",
			"hidden_size", cfg.HiddenSize,
			"num_layers", cfg.NumLayers,
			"epochs", cfg.Epochs,
		)
	}

	tr, err := a.newTrainer(&cfg, cfg.NetworkConfig(inputSize, 1))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Training model on data from %s...\n", path)
	history, err := tr.Fit(inputs, targets, cfg.TrainOptions())
	if err != nil {
		return fmt.Errorf("training on %s failed: %w", path, err)
	}
	if history.StoppedEarly {
		fmt.Fprintf(a.out, "Early stopping at epoch %d, best validation loss %.6f (epoch %d)\n",
			history.StopEpoch, history.BestValLoss, history.BestEpoch)
	}

	if err := tr.Save(save); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nModel saved as '%s'\n", save)
	return nil
}

func (a *app) predict(args []string) error {
	positionals, args := leadingPositionals(args, 2)
	fs := a.newFlagSet("predict")
	inputSize := fs.Int("input-size", 0, "Input size of the model (used if auto-detection fails)")
	hidden := fs.Int("hidden", 0, "Hidden layer size (default 10)")
	outputSize := fs.Int("output-size", 0, "Output size of the model (default 1)")
	layers := fs.Int("layers", 0, "Number of hidden layers (default 2)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	positionals = append(positionals, fs.Args()...)
	if len(positionals) != 2 {
		return errors.New("predict: expected MODEL and INPUT")
	}
	modelPath, input := positionals[0], positionals[1]

	tr, err := trainer.AutoDetect(modelPath, trainer.WithLogger(a.logger))
	if err != nil {
		if errors.Is(err, serialization.ErrModelNotFound) || *inputSize <= 0 {
			return err
		}
		a.logger.Warn("auto-detection failed, using flag configuration", "error", err)
		tr, err = manualTrainer(modelPath, *inputSize, *hidden, *outputSize, *layers)
		if err != nil {
			return err
		}
	}

	samples, err := dataset.ParseInput(input)
	if err != nil {
		return err
	}
	if want := tr.Config().InputSize; len(samples[0]) != want {
		return fmt.Errorf("input has %d features, but model expects %d", len(samples[0]), want)
	}

	preds, err := tr.Predict(samples)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Prediction results:")
	for i, p := range preds {
		fmt.Fprintf(a.out, "Sample %d: %v\n", i+1, p)
	}
	return nil
}

// manualTrainer builds a trainer from flag values and loads the stored
// weights into it.
func manualTrainer(path string, inputSize, hidden, outputSize, layers int) (*trainer.Trainer, error) {
	cfg := nn.NewConfig(inputSize, valueOr(hidden, 10), valueOr(outputSize, 1))
	cfg.NumLayers = valueOr(layers, nn.DefaultNumLayers)

	tr, err := trainer.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := tr.Load(path); err != nil {
		return nil, err
	}
	return tr, nil
}

func valueOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
