// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/simpleai/matrix"
	"github.com/born-ml/simpleai/nn"
)

// TestPublicNetwork builds, trains and queries a network through the public package.
func TestPublicNetwork(t *testing.T) {
	cfg := nn.NewConfig(2, 4, 1)
	assert.InDelta(t, nn.DefaultLearningRate, cfg.LearningRate, 0)
	assert.Equal(t, nn.DefaultNumLayers, cfg.NumLayers)

	net, err := nn.New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	before, err := net.Predict([]float64{0, 1})
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Greater(t, before[0], 0.0)
	assert.Less(t, before[0], 1.0)

	again, err := net.Predict([]float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, before, again)

	_, err = net.Predict([]float64{0, 1, 1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	for i := 0; i < 50; i++ {
		require.NoError(t, net.Train([]float64{0, 1}, []float64{1}))
	}
	after, err := net.Predict([]float64{0, 1})
	require.NoError(t, err)
	assert.Greater(t, after[0], before[0])
}

func TestPublicFromLayers(t *testing.T) {
	cfg := nn.NewConfig(2, 3, 1)
	src, err := nn.New(cfg, rand.New(rand.NewSource(2)), nn.WithActivation(nn.ReLUActivation()))
	require.NoError(t, err)

	dst, err := nn.FromLayers(cfg, src.Layers(), nn.WithActivation(nn.ReLUActivation()))
	require.NoError(t, err)

	want, err := src.Predict([]float64{0.5, -0.25})
	require.NoError(t, err)
	got, err := dst.Predict([]float64{0.5, -0.25})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = nn.New(nn.NewConfig(0, 3, 1), rand.New(rand.NewSource(2)))
	require.ErrorIs(t, err, nn.ErrInvalidConfiguration)
}

func TestPublicActivations(t *testing.T) {
	assert.InDelta(t, 0.5, nn.Sigmoid(0), 1e-12)
	assert.InDelta(t, 0.25, nn.SigmoidDerivative(0.5), 1e-12)
	assert.InDelta(t, 0.0, nn.ReLU(-2), 0)

	act, err := nn.ActivationByName("relu")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, act.Fn(3), 0)

	_, err = nn.ActivationByName("tanh")
	require.Error(t, err)
}
