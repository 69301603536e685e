// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package trainer trains simpleai networks and saves or restores them.
//
// # Basic Usage
//
//	import (
//	    "log/slog"
//	    "os"
//
//	    "github.com/born-ml/simpleai/nn"
//	    "github.com/born-ml/simpleai/trainer"
//	)
//
//	func main() {
//	    tr, err := trainer.New(nn.NewConfig(2, 10, 1),
//	        trainer.WithSeed(1),
//	        trainer.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
//	    )
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    history, err := tr.Fit(inputs, targets, trainer.DefaultOptions())
//	    if err != nil {
//	        panic(err)
//	    }
//	    if history.StoppedEarly {
//	        // history.BestEpoch holds the restored checkpoint's epoch
//	    }
//
//	    _ = tr.Save("models/xor.json") // also writes models/xor_config.json
//	}
//
// # Validation and Early Stopping
//
// Datasets with more than 10 samples hold out the last
// floor(n × ValidationSplit) samples after an initial shuffle. After each
// epoch the validation loss is compared with the best so far; a strict
// improvement snapshots the weights. EarlyStoppingPatience consecutive
// epochs without improvement stop training and restore that snapshot.
//
// # Persistence
//
// Save writes two JSON artifacts: the network at the given path and the
// trainer configuration next to it with a "_config.json" suffix.
// AutoDetect rebuilds a trainer from them, preferring the configuration
// artifact and falling back to the shapes stored in the network artifact.
package trainer
