package nn

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Network holds the two weight matrices and the hidden-layer scratch buffer.
// It is not safe for concurrent use: layer1 is shared by every forward pass.
type Network struct {
	inputNodes   int
	hiddenNodes  int
	outputNodes  int
	learningRate float64

	weights01 *mat.Dense // input x hidden
	weights12 *mat.Dense // hidden x output
	layer1    []float64
	delta1    []float64
}

// NewNetwork allocates a network. Input->hidden weights start at zero and
// hidden->output weights are drawn from N(0, outputNodes^-0.5).
func NewNetwork(inputNodes, hiddenNodes, outputNodes int, learningRate float64, rng *rand.Rand) (*Network, error) {
	if inputNodes <= 0 {
		return nil, errors.Wrapf(ErrEmptyVocabulary, "input nodes: %d", inputNodes)
	}
	if hiddenNodes <= 0 || outputNodes <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "hidden nodes %d, output nodes %d", hiddenNodes, outputNodes)
	}
	if learningRate <= 0 || math.IsNaN(learningRate) {
		return nil, errors.Wrapf(ErrInvalidConfig, "learning rate %v", learningRate)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	std := math.Pow(float64(outputNodes), -0.5)
	w12 := make([]float64, hiddenNodes*outputNodes)
	for i := range w12 {
		w12[i] = rng.NormFloat64() * std
	}
	return &Network{
		inputNodes:   inputNodes,
		hiddenNodes:  hiddenNodes,
		outputNodes:  outputNodes,
		learningRate: learningRate,
		weights01:    mat.NewDense(inputNodes, hiddenNodes, nil),
		weights12:    mat.NewDense(hiddenNodes, outputNodes, w12),
		layer1:       make([]float64, hiddenNodes),
		delta1:       make([]float64, hiddenNodes),
	}, nil
}

// Layer sizes and learning rate as given to NewNetwork.
func (n *Network) InputNodes() int       { return n.inputNodes }
func (n *Network) HiddenNodes() int      { return n.hiddenNodes }
func (n *Network) OutputNodes() int      { return n.outputNodes }
func (n *Network) LearningRate() float64 { return n.learningRate }

// InputWeights returns a read-only view of the input->hidden matrix.
func (n *Network) InputWeights() mat.Matrix { return n.weights01 }

// OutputWeights returns a read-only view of the hidden->output matrix.
func (n *Network) OutputWeights() mat.Matrix { return n.weights12 }

// forward sums the weight rows of the active indices into layer1 and returns
// the sigmoid of layer1 · weights12 for the first output node.
func (n *Network) forward(active []int) float64 {
	for j := range n.layer1 {
		n.layer1[j] = 0
	}
	for _, idx := range active {
		row := n.weights01.RawRowView(idx)
		for j, w := range row {
			n.layer1[j] += w
		}
	}
	var z float64
	for j, h := range n.layer1 {
		z += h * n.weights12.At(j, 0)
	}
	return sigmoid(z)
}

// backward applies one gradient descent step for the example whose forward
// pass produced out. It must run before layer1 is overwritten.
func (n *Network) backward(active []int, out, target float64) {
	delta := (out - target) * sigmoidOutputDerivative(out)

	// hidden layer is linear, so its delta equals its error
	for j := range n.delta1 {
		n.delta1[j] = delta * n.weights12.At(j, 0)
	}
	for j, h := range n.layer1 {
		n.weights12.Set(j, 0, n.weights12.At(j, 0)-n.learningRate*h*delta)
	}
	for _, idx := range active {
		row := n.weights01.RawRowView(idx)
		for j := range row {
			row[j] -= n.learningRate * n.delta1[j]
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// sigmoidOutputDerivative takes the sigmoid output, not its input.
func sigmoidOutputDerivative(y float64) float64 {
	return y * (1 - y)
}
