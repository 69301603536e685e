package trainer

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/born-ml/simpleai/internal/matrix"
	"github.com/born-ml/simpleai/internal/nn"
	"github.com/born-ml/simpleai/internal/parallel"
)

// minValidationSamples is the dataset size a split needs to exceed before
// any samples are held out.
const minValidationSamples = 10

// Options controls one Fit call.
type Options struct {
	Epochs                int     // Number of passes over the training partition.
	ValidationSplit       float64 // Fraction held out for validation; <= 0 disables it.
	EarlyStoppingPatience int     // Non-improving epochs tolerated; <= 0 disables early stopping.
}

// DefaultOptions returns 1000 epochs, a 0.2 validation split and a patience
// of 5.
func DefaultOptions() Options {
	return Options{
		Epochs:                1000,
		ValidationSplit:       0.2,
		EarlyStoppingPatience: 5,
	}
}

// History records what happened during Fit. Epochs are 1-based.
type History struct {
	TrainLoss []float64 // Mean training loss per completed epoch.
	ValLoss   []float64 // Validation loss per completed epoch; empty without validation.

	// BestValLoss and BestEpoch describe the checkpoint. BestValLoss is
	// +Inf and BestEpoch 0 if validation never improved or was disabled.
	BestValLoss float64
	BestEpoch   int

	StoppedEarly bool // Patience ran out before the last epoch.
	StopEpoch    int  // Last epoch that ran.
	Restored     bool // The checkpoint replaced the final weights.
}

// Validated reports whether a validation partition was used.
func (h *History) Validated() bool {
	return len(h.ValLoss) > 0
}

type sample struct {
	input  []float64
	target []float64
}

// Fit trains the network on inputs/targets.
//
// The pairs are shuffled once. When there are more than 10 samples and
// opts.ValidationSplit > 0, the last floor(n*split) shuffled samples are
// held out for validation. Each epoch reshuffles the training partition
// and trains on it one sample at a time; the epoch's training loss is the
// mean of each sample's error measured right after its own update.
//
// With validation, a strictly lower validation loss snapshots every layer
// and resets the patience counter; anything else increments it. Once the
// counter reaches opts.EarlyStoppingPatience (when > 0) the loop stops
// and the best snapshot becomes the live weights. Without validation the
// network keeps whatever the last epoch produced.
//
// Returns ErrEmptyDataset for no samples or mismatched lengths (the latter
// also matches matrix.ErrDimensionMismatch) and matrix.ErrDimensionMismatch
// for any sample of the wrong width. No weights change on error.
func (t *Trainer) Fit(inputs, targets [][]float64, opts Options) (*History, error) {
	data, err := t.pair(inputs, targets)
	if err != nil {
		return nil, err
	}
	train, val, err := t.split(data, opts.ValidationSplit)
	if err != nil {
		return nil, err
	}

	logger := t.logger.With("run_id", uuid.NewString())
	logger.Info("training started",
		"epochs", opts.Epochs,
		"train_samples", len(train),
		"val_samples", len(val),
	)

	history := &History{BestValLoss: math.Inf(1)}
	var (
		best     []nn.Layer
		patience int
	)

	for epoch := 1; epoch <= opts.Epochs; epoch++ {
		trainLoss, err := t.runEpoch(train)
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		history.TrainLoss = append(history.TrainLoss, trainLoss)
		history.StopEpoch = epoch

		if len(val) == 0 {
			if epoch%t.logEvery == 0 {
				logger.Info("epoch", "epoch", epoch, "loss", trainLoss)
			}
			continue
		}

		valLoss, err := t.evaluate(epoch, val)
		if err != nil {
			return nil, fmt.Errorf("epoch %d validation: %w", epoch, err)
		}
		history.ValLoss = append(history.ValLoss, valLoss)

		if valLoss < history.BestValLoss {
			history.BestValLoss = valLoss
			history.BestEpoch = epoch
			best = t.net.Layers()
			patience = 0
		} else {
			patience++
		}

		if epoch%t.logEvery == 0 {
			logger.Info("epoch", "epoch", epoch, "loss", trainLoss, "val_loss", valLoss)
		}

		if opts.EarlyStoppingPatience > 0 && patience >= opts.EarlyStoppingPatience {
			history.StoppedEarly = true
			if best != nil {
				if err := t.net.SetLayers(best); err != nil {
					return nil, fmt.Errorf("restore checkpoint: %w", err)
				}
				history.Restored = true
			}
			logger.Info("early stopping",
				"epoch", epoch,
				"best_epoch", history.BestEpoch,
				"best_val_loss", history.BestValLoss,
			)
			break
		}
	}

	logger.Info("training finished", "epochs_run", history.StopEpoch, "stopped_early", history.StoppedEarly)
	return history, nil
}

// pair zips inputs and targets after checking every width, so that a bad
// sample is reported before any weight changes.
func (t *Trainer) pair(inputs, targets [][]float64) ([]sample, error) {
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("%w: %d inputs but %d targets (%w)",
			ErrEmptyDataset, len(inputs), len(targets), matrix.ErrDimensionMismatch)
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyDataset
	}

	data := make([]sample, len(inputs))
	for i := range inputs {
		if len(inputs[i]) != t.cfg.InputSize {
			return nil, fmt.Errorf("sample %d: %w: input has %d values, want %d",
				i, matrix.ErrDimensionMismatch, len(inputs[i]), t.cfg.InputSize)
		}
		if len(targets[i]) != t.cfg.OutputSize {
			return nil, fmt.Errorf("sample %d: %w: target has %d values, want %d",
				i, matrix.ErrDimensionMismatch, len(targets[i]), t.cfg.OutputSize)
		}
		data[i] = sample{input: inputs[i], target: targets[i]}
	}
	return data, nil
}

// split shuffles data once and carves off the validation partition.
func (t *Trainer) split(data []sample, fraction float64) (train, val []sample, err error) {
	t.rng.Shuffle(len(data), func(i, j int) {
		data[i], data[j] = data[j], data[i]
	})

	n := len(data)
	if n <= minValidationSamples || !(fraction > 0) {
		return data, nil, nil
	}
	size := int(math.Floor(float64(n) * fraction))
	if size >= n {
		return nil, nil, fmt.Errorf("%w: validation split %g leaves no training samples", ErrEmptyDataset, fraction)
	}
	return data[:n-size], data[n-size:], nil
}

// runEpoch reshuffles train and updates the network on each sample in turn.
func (t *Trainer) runEpoch(train []sample) (float64, error) {
	t.rng.Shuffle(len(train), func(i, j int) {
		train[i], train[j] = train[j], train[i]
	})

	var total float64
	for _, s := range train {
		if err := t.net.Train(s.input, s.target); err != nil {
			return 0, err
		}
		out, err := t.net.Predict(s.input)
		if err != nil {
			return 0, err
		}
		loss, err := MeanSquaredError(s.target, out)
		if err != nil {
			return 0, err
		}
		total += loss
	}
	return total / float64(len(train)), nil
}

func (t *Trainer) evaluate(epoch int, val []sample) (float64, error) {
	if t.validationLoss != nil {
		return t.validationLoss(epoch, val)
	}
	return t.meanLoss(val)
}

// meanLoss is the mean per-sample error over data. Samples are evaluated in
// parallel and summed in order, so the result does not depend on the
// worker count.
func (t *Trainer) meanLoss(data []sample) (float64, error) {
	losses, err := parallel.Map(len(data), func(i int) (float64, error) {
		out, err := t.net.Predict(data[i].input)
		if err != nil {
			return 0, err
		}
		return MeanSquaredError(data[i].target, out)
	}, t.parallel)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, l := range losses {
		total += l
	}
	return total / float64(len(data)), nil
}
