package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/simpleai/internal/matrix"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func mustNetwork(t *testing.T, cfg Config, seed int64) *Network {
	t.Helper()
	net, err := New(cfg, newRand(seed))
	require.NoError(t, err)
	return net
}

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, Sigmoid(0))
	for _, x := range []float64{-30, -5, -0.1, 0.1, 5, 30} {
		y := Sigmoid(x)
		assert.Greater(t, y, 0.0, "sigmoid(%v)", x)
		assert.Less(t, y, 1.0, "sigmoid(%v)", x)
	}
	assert.InDelta(t, 1-Sigmoid(2), Sigmoid(-2), 1e-15)
}

func TestSigmoid_Saturates(t *testing.T) {
	for _, x := range []float64{-1000, -1e300, -math.MaxFloat64} {
		assert.Equal(t, 0.0, Sigmoid(x), "sigmoid(%v)", x)
	}
	for _, x := range []float64{1000, 1e300, math.MaxFloat64} {
		assert.Equal(t, 1.0, Sigmoid(x), "sigmoid(%v)", x)
	}
}

func TestSigmoidDerivative_UsesActivatedValue(t *testing.T) {
	y := Sigmoid(0.3)
	assert.InDelta(t, y*(1-y), SigmoidDerivative(y), 1e-15)
	assert.Equal(t, 0.25, SigmoidDerivative(0.5))
	assert.Equal(t, 0.0, SigmoidDerivative(1))
}

func TestReLU(t *testing.T) {
	assert.Equal(t, 0.0, ReLU(-3))
	assert.Equal(t, 0.0, ReLU(0))
	assert.Equal(t, 2.5, ReLU(2.5))
	assert.Equal(t, 0.0, ReLUDerivative(0))
	assert.Equal(t, 0.0, ReLUDerivative(-1))
	assert.Equal(t, 1.0, ReLUDerivative(0.001))
}

func TestActivationByName(t *testing.T) {
	a, err := ActivationByName("relu")
	require.NoError(t, err)
	assert.Equal(t, "relu", a.Name)

	a, err = ActivationByName("sigmoid")
	require.NoError(t, err)
	assert.Equal(t, "sigmoid", a.Name)

	_, err = ActivationByName("tanh")
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestConfigValidate(t *testing.T) {
	valid := NewConfig(2, 4, 1)
	require.NoError(t, valid.Validate())
	assert.Equal(t, DefaultLearningRate, valid.LearningRate)
	assert.Equal(t, DefaultNumLayers, valid.NumLayers)

	cases := map[string]func(c *Config){
		"input":       func(c *Config) { c.InputSize = 0 },
		"hidden":      func(c *Config) { c.HiddenSize = -1 },
		"output":      func(c *Config) { c.OutputSize = 0 },
		"layers":      func(c *Config) { c.NumLayers = 0 },
		"zero lr":     func(c *Config) { c.LearningRate = 0 },
		"nan lr":      func(c *Config) { c.LearningRate = math.NaN() },
		"infinite lr": func(c *Config) { c.LearningRate = math.Inf(1) },
		"negative lr": func(c *Config) { c.LearningRate = -0.1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestNew_Topology(t *testing.T) {
	cfg := Config{InputSize: 3, HiddenSize: 5, OutputSize: 2, LearningRate: 0.1, NumLayers: 3}
	net := mustNetwork(t, cfg, 1)

	layers := net.Layers()
	require.Len(t, layers, 4)
	wantShapes := [][2]int{{5, 3}, {5, 5}, {5, 5}, {2, 5}}
	for i, layer := range layers {
		rows, cols := layer.Weights.Dims()
		assert.Equal(t, wantShapes[i], [2]int{rows, cols}, "layer %d weights", i)
		assert.Equal(t, wantShapes[i][0], layer.Bias.Rows(), "layer %d bias rows", i)
		assert.Equal(t, 1, layer.Bias.Cols(), "layer %d bias cols", i)
		for _, v := range append(layer.Weights.ToArray(), layer.Bias.ToArray()...) {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.Equal(t, cfg, net.Config())
	assert.Equal(t, "sigmoid", net.Activation().Name)
}

func TestNew_InvalidConfiguration(t *testing.T) {
	_, err := New(Config{InputSize: 2, HiddenSize: 2, OutputSize: 1, LearningRate: 0.1}, newRand(1))
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = New(NewConfig(2, 2, 1), nil)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNew_SeedIsReproducible(t *testing.T) {
	a := mustNetwork(t, NewConfig(2, 3, 1), 42)
	b := mustNetwork(t, NewConfig(2, 3, 1), 42)
	for i, layer := range a.Layers() {
		other := b.Layers()[i]
		assert.True(t, layer.Weights.Equal(other.Weights))
		assert.True(t, layer.Bias.Equal(other.Bias))
	}
}

func TestPredict_ShapeAndRange(t *testing.T) {
	net := mustNetwork(t, NewConfig(3, 4, 2), 1)
	out, err := net.Predict([]float64{0.1, -0.5, 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, v := range out {
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestPredict_DimensionMismatch(t *testing.T) {
	net := mustNetwork(t, NewConfig(3, 4, 2), 1)
	_, err := net.Predict([]float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestPredict_IsPure(t *testing.T) {
	net := mustNetwork(t, NewConfig(4, 6, 3), 9)
	before := net.Layers()
	input := []float64{0.3, -1.2, 0.7, 5}

	first, err := net.Predict(input)
	require.NoError(t, err)
	second, err := net.Predict(input)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, math.Float64bits(first[i]), math.Float64bits(second[i]))
	}
	for i, layer := range net.Layers() {
		assert.True(t, layer.Weights.Equal(before[i].Weights))
		assert.True(t, layer.Bias.Equal(before[i].Bias))
	}
}

func TestForward_Records(t *testing.T) {
	net := mustNetwork(t, NewConfig(2, 3, 1), 5)
	input := []float64{0.25, 0.75}

	records, err := net.Forward(input)
	require.NoError(t, err)
	require.Len(t, records, net.NumLayers()+1)

	assert.Equal(t, input, records[0].Output.ToArray())
	for i := 1; i < len(records); i++ {
		pre := records[i].PreActivation.ToArray()
		out := records[i].Output.ToArray()
		require.Len(t, out, len(pre))
		for j := range pre {
			assert.Equal(t, Sigmoid(pre[j]), out[j], "record %d element %d", i, j)
		}
	}

	predicted, err := net.Predict(input)
	require.NoError(t, err)
	assert.Equal(t, predicted, records[len(records)-1].Output.ToArray())
}

func TestTrain_DimensionMismatch(t *testing.T) {
	net := mustNetwork(t, NewConfig(2, 3, 1), 1)
	before := net.Layers()

	require.ErrorIs(t, net.Train([]float64{1}, []float64{0}), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, net.Train([]float64{1, 0}, []float64{0, 1}), matrix.ErrDimensionMismatch)

	for i, layer := range net.Layers() {
		assert.True(t, layer.Weights.Equal(before[i].Weights), "layer %d changed", i)
	}
}

// TestTrain_SingleStep checks one update by hand on a 1-1-1 network.
func TestTrain_SingleStep(t *testing.T) {
	cfg := Config{InputSize: 1, HiddenSize: 1, OutputSize: 1, LearningRate: 0.5, NumLayers: 1}
	w0, w1 := 0.5, 1.0
	layers := []Layer{
		{Weights: matrix.FromArray([]float64{w0}), Bias: matrix.FromArray([]float64{0})},
		{Weights: matrix.FromArray([]float64{w1}), Bias: matrix.FromArray([]float64{0})},
	}
	net, err := FromLayers(cfg, layers)
	require.NoError(t, err)

	x, target := 1.0, 1.0
	require.NoError(t, net.Train([]float64{x}, []float64{target}))

	h := Sigmoid(w0 * x)
	o := Sigmoid(w1 * h)
	e1 := target - o
	g1 := cfg.LearningRate * o * (1 - o) * e1
	w1New := w1 + g1*h

	// The hidden error flows through the already updated output weights.
	e0 := w1New * e1
	g0 := cfg.LearningRate * h * (1 - h) * e0
	w0New := w0 + g0*x

	got := net.Layers()
	assert.InDelta(t, w1New, got[1].Weights.At(0, 0), 1e-12)
	assert.InDelta(t, g1, got[1].Bias.At(0, 0), 1e-12)
	assert.InDelta(t, w0New, got[0].Weights.At(0, 0), 1e-12)
	assert.InDelta(t, g0, got[0].Bias.At(0, 0), 1e-12)
}

func TestTrain_MovesOutputTowardTarget(t *testing.T) {
	net := mustNetwork(t, NewConfig(3, 5, 2), 11)
	input := []float64{0.2, 0.4, 0.6}
	target := []float64{0.9, 0.1}

	before, err := net.Predict(input)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		require.NoError(t, net.Train(input, target))
	}
	after, err := net.Predict(input)
	require.NoError(t, err)

	assert.Less(t, sqErr(target, after), sqErr(target, before))
}

func TestTrain_XORConverges(t *testing.T) {
	if testing.Short() {
		t.Skip("slow convergence test")
	}
	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	targets := [][]float64{{0}, {1}, {1}, {0}}

	rng := newRand(3)
	net, err := New(NewConfig(2, 10, 1), rng)
	require.NoError(t, err)

	order := []int{0, 1, 2, 3}
	for epoch := 0; epoch < 5000; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, k := range order {
			require.NoError(t, net.Train(inputs[k], targets[k]))
		}
	}

	for i, in := range inputs {
		out, err := net.Predict(in)
		require.NoError(t, err)
		assert.InDelta(t, targets[i][0], out[0], 0.1, "xor%v", in)
	}
}

func TestSetLayers(t *testing.T) {
	net := mustNetwork(t, NewConfig(2, 3, 1), 1)
	other := mustNetwork(t, NewConfig(2, 3, 1), 2)

	require.NoError(t, net.SetLayers(other.Layers()))
	for i, layer := range net.Layers() {
		assert.True(t, layer.Weights.Equal(other.Layers()[i].Weights))
	}

	// Stored layers are copies: training one network leaves the other alone.
	snapshot := other.Layers()
	require.NoError(t, net.Train([]float64{1, 1}, []float64{0}))
	for i, layer := range other.Layers() {
		assert.True(t, layer.Weights.Equal(snapshot[i].Weights))
	}
}

func TestSetLayers_RejectsWrongShapes(t *testing.T) {
	net := mustNetwork(t, NewConfig(2, 3, 1), 1)
	before := net.Layers()

	wrongCount := before[:2]
	require.ErrorIs(t, net.SetLayers(wrongCount), matrix.ErrShapeMismatch)

	wrongShape := net.Layers()
	wrongShape[1].Weights = matrix.New(2, 3)
	require.ErrorIs(t, net.SetLayers(wrongShape), matrix.ErrShapeMismatch)

	wrongBias := net.Layers()
	wrongBias[0].Bias = matrix.New(3, 2)
	require.ErrorIs(t, net.SetLayers(wrongBias), matrix.ErrShapeMismatch)

	for i, layer := range net.Layers() {
		assert.True(t, layer.Weights.Equal(before[i].Weights), "layer %d changed", i)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	net := mustNetwork(t, NewConfig(2, 3, 1), 1)
	clone := net.Clone()
	require.NoError(t, clone.Train([]float64{1, 0}, []float64{1}))

	assert.False(t, clone.Layers()[0].Weights.Equal(net.Layers()[0].Weights))
}

func TestWithActivation_ReLU(t *testing.T) {
	net, err := New(NewConfig(2, 4, 1), newRand(1), WithActivation(ReLUActivation()))
	require.NoError(t, err)
	out, err := net.Predict([]float64{-3, 2})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, out[0], 0.0)
	assert.Equal(t, "relu", net.Activation().Name)
}

func sqErr(target, output []float64) float64 {
	var sum float64
	for i := range target {
		d := target[i] - output[i]
		sum += d * d
	}
	return sum
}
