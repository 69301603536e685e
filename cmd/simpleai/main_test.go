package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/simpleai/internal/matrix"
	"github.com/born-ml/simpleai/internal/serialization"
)

func newTestApp() (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{out: &out, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}, &out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_Version(t *testing.T) {
	a, out := newTestApp()
	require.NoError(t, a.run([]string{"version"}))
	assert.Equal(t, "simpleai "+version+"\n", out.String())
}

func TestRun_Usage(t *testing.T) {
	a, out := newTestApp()
	require.ErrorIs(t, a.run(nil), errUsage)
	assert.Contains(t, out.String(), "Commands:")

	require.Error(t, a.run([]string{"serve"}))
}

func TestXORThenPredict(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "xor.json")

	a, out := newTestApp()
	require.NoError(t, a.run([]string{"xor", "-epochs", "20", "-hidden", "4", "-save", model}))
	assert.Contains(t, out.String(), "Testing model:")
	assert.FileExists(t, model)
	assert.FileExists(t, serialization.ConfigPath(model))

	out.Reset()
	require.NoError(t, a.run([]string{"predict", model, "0,1"}))
	assert.Contains(t, out.String(), "Sample 1:")

	err := a.run([]string{"predict", model, "0,1,1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model expects 2")
}

func TestTrain(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	var sb strings.Builder
	sb.WriteString("a,b,y\n")
	for i := 0; i < 12; i++ {
		sb.WriteString("0.1,0.2,0.3\n")
	}
	sb.WriteString("x,0.2,0.3\n")
	writeFile(t, data, sb.String())

	model := filepath.Join(dir, "out", "data.json")
	a, out := newTestApp()
	require.NoError(t, a.run([]string{"train", data, "-epochs", "3", "-auto-tune", "-save", model}))
	assert.Contains(t, out.String(), "Model saved as")

	cfg, err := serialization.LoadConfig(serialization.ConfigPath(model))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.InputSize)
	assert.Equal(t, 4, cfg.HiddenSize) // auto-tuned: min(64, 2·inputs)

	// Flags may come before the file as well.
	require.NoError(t, a.run([]string{"train", "-epochs", "1", "-save", model, data}))
}

func TestTrain_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	writeFile(t, data, "1,2,3\n4,5,6\n")
	runCfg := filepath.Join(dir, "run.yaml")
	writeFile(t, runCfg, "hidden_size: 3\nnum_layers: 1\nepochs: 2\n")

	model := filepath.Join(dir, "m.json")
	a, _ := newTestApp()
	require.NoError(t, a.run([]string{"train", data, "-config", runCfg, "-save", model}))

	cfg, err := serialization.LoadConfig(serialization.ConfigPath(model))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.HiddenSize)
	assert.Equal(t, 1, cfg.NumLayers)
}

func TestTrain_Errors(t *testing.T) {
	a, _ := newTestApp()
	require.Error(t, a.run([]string{"train"}))

	dir := t.TempDir()
	data := filepath.Join(dir, "single.csv")
	writeFile(t, data, "1\n2\n")
	require.ErrorIs(t, a.run([]string{"train", data, "-epochs", "1", "-save", filepath.Join(dir, "m.json")}), matrix.ErrShapeMismatch)
}

func TestAuto(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.csv"), "0,0,0\n1,1,1\n")
	writeFile(t, filepath.Join(dir, "two.csv"), "f,g,h,t\n1,2,3,4\n4,3,2,1\n")
	outDir := filepath.Join(dir, "models")

	a, out := newTestApp()
	require.NoError(t, a.run([]string{"auto", "-dir", dir, "-out", outDir, "-epochs", "2"}))
	assert.Contains(t, out.String(), "Found 2 datasets:")
	assert.FileExists(t, filepath.Join(outDir, "one_model.json"))
	assert.FileExists(t, filepath.Join(outDir, "two_model.json"))

	cfg, err := serialization.LoadConfig(filepath.Join(outDir, "two_model_config.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.InputSize)

	require.Error(t, a.run([]string{"auto", "-dir", t.TempDir()}))
}

func TestPredict_FallsBackToFlags(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "xor.json")
	a, out := newTestApp()
	require.NoError(t, a.run([]string{"xor", "-epochs", "1", "-save", model}))

	// Break the configuration artifact; the flags describe the real shape.
	writeFile(t, serialization.ConfigPath(model), `{"input_size": 2}`)
	require.Error(t, a.run([]string{"predict", model, "1,0"}))

	out.Reset()
	require.NoError(t, a.run([]string{"predict", model, "-1,0", "-input-size", "2", "-hidden", "10", "-output-size", "1"}))
	assert.Contains(t, out.String(), "Sample 1:")

	require.ErrorIs(t, a.run([]string{"predict", filepath.Join(dir, "none.json"), "1,0", "-input-size", "2"}), serialization.ErrModelNotFound)
}

func TestLeadingPositionals(t *testing.T) {
	pos, rest := leadingPositionals([]string{"m.json", "-0.5,1", "-hidden", "3"}, 2)
	assert.Equal(t, []string{"m.json", "-0.5,1"}, pos)
	assert.Equal(t, []string{"-hidden", "3"}, rest)

	pos, rest = leadingPositionals([]string{"-epochs", "3", "data.csv"}, 1)
	assert.Empty(t, pos)
	assert.Equal(t, []string{"-epochs", "3", "data.csv"}, rest)
}
