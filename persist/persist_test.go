package persist

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mnistnet/neuralnet"
)

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	require.NoError(t, scanner.Err())
	return n
}

func TestExportLayout(t *testing.T) {
	dir := t.TempDir()
	nn, err := neuralnet.New(neuralnet.MNISTShape, 1)
	require.NoError(t, err)
	require.NoError(t, Export(dir, nn, 0))

	s := neuralnet.MNISTShape
	for n := 0; n < s.Hidden; n++ {
		assert.Equal(t, s.Inputs, countLines(t, filepath.Join(dir, "weights1_cell"+strconv.Itoa(n)+".txt")))
	}
	assert.Equal(t, s.Hidden, countLines(t, filepath.Join(dir, "bias1.txt")))
	for k := 0; k < s.Outputs; k++ {
		assert.Equal(t, s.Hidden, countLines(t, filepath.Join(dir, "weights2_cell"+strconv.Itoa(k)+".txt")))
	}
	assert.Equal(t, s.Outputs, countLines(t, filepath.Join(dir, "bias2.txt")))
}

func TestExportPrecision(t *testing.T) {
	dir := t.TempDir()
	nn, err := neuralnet.New(neuralnet.Shape{Inputs: 1, Hidden: 1, Outputs: 1}, 1)
	require.NoError(t, err)
	nn.Hidden[0].Weights[0] = 0.123456789
	require.NoError(t, Export(dir, nn, 0))

	data, err := os.ReadFile(filepath.Join(dir, "weights1_cell0.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0.12346\n", string(data))
}

func TestImportRestoresParams(t *testing.T) {
	dir := t.TempDir()
	shape := neuralnet.Shape{Inputs: 3, Hidden: 2, Outputs: 2}
	src, err := neuralnet.New(shape, 4)
	require.NoError(t, err)
	src.Hidden[1].Bias = -0.75
	src.Output[0].Bias = 1.5
	require.NoError(t, Export(dir, src, 17))

	dst, err := neuralnet.New(shape, 9)
	require.NoError(t, err)
	require.NoError(t, Import(dir, dst))
	assert.Equal(t, src.Params(), dst.Params())
}

func TestImportResumesTraining(t *testing.T) {
	dir := t.TempDir()
	shape := neuralnet.Shape{Inputs: 2, Hidden: 2, Outputs: 2}
	src, err := neuralnet.New(shape, 5)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		_, err := src.TrainStep(neuralnet.Sample{1, 0}, neuralnet.Target{0, 1}, 0.5)
		require.NoError(t, err)
	}
	require.NoError(t, Export(dir, src, 17))

	dst, err := neuralnet.New(shape, 6)
	require.NoError(t, err)
	require.NoError(t, Import(dir, dst))

	want, err := src.TrainStep(neuralnet.Sample{0, 1}, neuralnet.Target{1, 0}, 0.5)
	require.NoError(t, err)
	got, err := dst.TrainStep(neuralnet.Sample{0, 1}, neuralnet.Target{1, 0}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, src.Params(), dst.Params())
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	shape := neuralnet.Shape{Inputs: 3, Hidden: 2, Outputs: 2}
	src, err := neuralnet.New(shape, 4)
	require.NoError(t, err)
	require.NoError(t, Export(dir, src, 0))

	wider, err := neuralnet.New(neuralnet.Shape{Inputs: 4, Hidden: 2, Outputs: 2}, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, Import(dir, wider), neuralnet.ErrShape)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bias2.txt"), []byte("0.1\nnope\n"), 0o644))
	dst, err := neuralnet.New(shape, 1)
	require.NoError(t, err)
	assert.ErrorContains(t, Import(dir, dst), "line 2")

	assert.Error(t, Import(t.TempDir(), dst))
}
