package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNetworkShapes(t *testing.T) {
	n, err := NewNetwork(5000, 10, 1, 0.1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	r, c := n.InputWeights().Dims()
	assert.Equal(t, 5000, r)
	assert.Equal(t, 10, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if n.InputWeights().At(i, j) != 0 {
				t.Fatalf("input weight (%d,%d) = %v, want 0", i, j, n.InputWeights().At(i, j))
			}
		}
	}
	r, c = n.OutputWeights().Dims()
	assert.Equal(t, 10, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, 5000, n.InputNodes())
	assert.Equal(t, 10, n.HiddenNodes())
	assert.Equal(t, 1, n.OutputNodes())
	assert.Equal(t, 0.1, n.LearningRate())
}

func TestNewNetworkSeeded(t *testing.T) {
	a, err := NewNetwork(3, 4, 1, 0.1, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := NewNetwork(3, 4, 1, 0.1, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	nonZero := false
	for j := 0; j < 4; j++ {
		assert.Equal(t, a.OutputWeights().At(j, 0), b.OutputWeights().At(j, 0))
		if a.OutputWeights().At(j, 0) != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero)
}

func TestNewNetworkRejectsBadSizes(t *testing.T) {
	_, err := NewNetwork(0, 10, 1, 0.1, nil)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
	_, err = NewNetwork(10, 0, 1, 0.1, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewNetwork(10, 10, 1, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, sigmoid(0))
	assert.InDelta(t, 1/(1+math.Exp(-2)), sigmoid(2), 1e-15)
	assert.InDelta(t, 0.25, sigmoidOutputDerivative(0.5), 1e-15)
	assert.Equal(t, 0.0, sigmoidOutputDerivative(1))
}

func TestForwardEmptyInputIsHalf(t *testing.T) {
	n, err := NewNetwork(4, 3, 1, 0.1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, n.forward(nil))
	for _, h := range n.layer1 {
		assert.Equal(t, 0.0, h)
	}
}

func TestBackwardSingleStep(t *testing.T) {
	n, err := NewNetwork(3, 2, 1, 0.5, nil)
	require.NoError(t, err)
	n.weights12.Set(0, 0, 1)
	n.weights12.Set(1, 0, -2)

	// all-zero input rows: output 0.5, target 1
	out := n.forward([]int{0, 2})
	require.Equal(t, 0.5, out)
	n.backward([]int{0, 2}, out, 1)

	delta := (0.5 - 1) * 0.25
	// layer1 was zero, so hidden->output weights are unchanged
	assert.Equal(t, 1.0, n.weights12.At(0, 0))
	assert.Equal(t, -2.0, n.weights12.At(1, 0))
	for _, row := range []int{0, 2} {
		assert.InDelta(t, -0.5*delta*1, n.weights01.At(row, 0), 1e-15)
		assert.InDelta(t, -0.5*delta*-2, n.weights01.At(row, 1), 1e-15)
	}
	assert.Equal(t, 0.0, n.weights01.At(1, 0), "inactive rows are untouched")
	assert.Equal(t, 0.0, n.weights01.At(1, 1))

	// second pass: layer1 = sum of rows 0 and 2
	out = n.forward([]int{0, 2})
	h0, h1 := n.layer1[0], n.layer1[1]
	assert.InDelta(t, 2*n.weights01.At(0, 0), h0, 1e-15)
	assert.InDelta(t, sigmoid(h0*1+h1*-2), out, 1e-15)
	w0, w1 := n.weights12.At(0, 0), n.weights12.At(1, 0)
	n.backward([]int{0, 2}, out, 1)
	d2 := (out - 1) * out * (1 - out)
	assert.InDelta(t, w0-0.5*h0*d2, n.weights12.At(0, 0), 1e-15)
	assert.InDelta(t, w1-0.5*h1*d2, n.weights12.At(1, 0), 1e-15)
}
