// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a fully connected feed-forward network trained by
// per-sample backpropagation.
//
// # Overview
//
// This package contains:
//   - Network: dense layers with one shared activation, Predict and Train
//   - Config: topology and learning rate, also the persisted trainer config
//   - Activations: Sigmoid (default) and ReLU
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/simpleai/nn"
//	)
//
//	func main() {
//	    cfg := nn.NewConfig(2, 10, 1) // lr 0.1, 2 hidden layers
//	    net, err := nn.New(cfg, rand.New(rand.NewSource(1)))
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    _ = net.Train([]float64{0, 1}, []float64{1})
//	    out, _ := net.Predict([]float64{0, 1})
//	}
//
// # Topology
//
// A network with NumLayers hidden layers has NumLayers+1 weight/bias
// pairs: input → hidden, hidden → hidden (NumLayers-1 times) and
// hidden → output. Weights and biases start uniform in [-1, 1).
//
// # Training
//
// Train applies one stochastic gradient step for a single sample. Updates
// are applied output layer first, and the error passed down to each layer
// is computed through the layer above it after that layer's update.
package nn
