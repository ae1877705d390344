// Package layer implements a dense layer of neurons sharing one activation
package layer

import "fmt"
import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/neuron"

// Layer is a fully connected layer. Every neuron has the same input arity.
type Layer struct {
	neurons    []*neuron.Neuron
	activation activation.Function
	inputs     int
	pinnedBias bool
}

// New creates a layer of outputs neurons reading inputs values each.
// A nil rng uses the global source.
func New(inputs, outputs int, act activation.Function, rng *rand.Rand) *Layer {
	if inputs <= 0 || outputs <= 0 {
		panic(fmt.Sprintf("layer: invalid shape %dx%d", inputs, outputs))
	}
	l := &Layer{
		neurons:    make([]*neuron.Neuron, outputs),
		activation: act,
		inputs:     inputs,
	}
	for i := range l.neurons {
		l.neurons[i] = neuron.New(inputs, rng)
	}
	return l
}

// PinBias zeroes every bias and keeps it at zero through training
func (l *Layer) PinBias() {
	l.pinnedBias = true
	for _, n := range l.neurons {
		n.SetBias(0)
	}
}

// PinnedBias reports whether biases are pinned at zero
func (l *Layer) PinnedBias() bool {
	return l.pinnedBias
}

// Inputs returns the input count
func (l *Layer) Inputs() int {
	return l.inputs
}

// Outputs returns the number of neurons
func (l *Layer) Outputs() int {
	return len(l.neurons)
}

// Activation returns the activation shared by all neurons
func (l *Layer) Activation() activation.Function {
	return l.activation
}

// Neuron gets the n-th neuron
func (l *Layer) Neuron(n int) *neuron.Neuron {
	return l.neurons[n]
}

// Reset re-draws all weights, pinned biases stay zero
func (l *Layer) Reset(rng *rand.Rand) {
	for _, n := range l.neurons {
		n.Reset(rng)
		if l.pinnedBias {
			n.SetBias(0)
		}
	}
}

// HasNaN reports whether any neuron holds a NaN or infinite value
func (l *Layer) HasNaN() bool {
	for _, n := range l.neurons {
		if n.HasNaN() {
			return true
		}
	}
	return false
}

// Predict computes the activated output of every neuron
func (l *Layer) Predict(input []float64) []float64 {
	l.mustInputs(len(input))
	out := make([]float64, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = l.activation.Calculate(n.WeightedSum(input))
	}
	return out
}

// Train performs the backward pass of one example. input and output are the
// values seen by this layer during the forward pass, dLossdOutput the gradient
// arriving from above. It returns dLoss/dInput computed from the weights as
// they were before this update, then updates the weights in place.
func (l *Layer) Train(input, output, dLossdOutput []float64, rate float64) (dLossdInput []float64) {
	l.mustInputs(len(input))
	if len(output) != len(l.neurons) || len(dLossdOutput) != len(l.neurons) {
		panic(fmt.Sprintf("layer: got %d outputs and %d gradients for %d neurons",
			len(output), len(dLossdOutput), len(l.neurons)))
	}
	dLossdSum := make([]float64, len(l.neurons))
	for i := range l.neurons {
		dLossdSum[i] = dLossdOutput[i] * l.activation.Derivative(output[i])
	}
	dLossdInput = make([]float64, l.inputs)
	for i, n := range l.neurons {
		for h := range dLossdInput {
			dLossdInput[h] += dLossdSum[i] * n.Weight(h)
		}
	}
	for i, n := range l.neurons {
		n.Update(input, dLossdSum[i], rate, l.pinnedBias)
	}
	return dLossdInput
}

func (l *Layer) mustInputs(n int) {
	if n != l.inputs {
		panic(fmt.Sprintf("layer: got %d inputs, layer expects %d", n, l.inputs))
	}
}

// Descriptor is the structural description of a layer used for persistence
type Descriptor struct {
	Inputs     int
	Activation activation.Function
	PinnedBias bool
	Weights    [][]float64
	Biases     []float64
}

// Describe copies the layer into a Descriptor
func (l *Layer) Describe() Descriptor {
	d := Descriptor{
		Inputs:     l.inputs,
		Activation: l.activation,
		PinnedBias: l.pinnedBias,
		Weights:    make([][]float64, len(l.neurons)),
		Biases:     make([]float64, len(l.neurons)),
	}
	for i, n := range l.neurons {
		d.Weights[i] = n.Weights()
		d.Biases[i] = n.Bias()
	}
	return d
}

// FromDescriptor rebuilds a layer from its description
func FromDescriptor(d Descriptor) (*Layer, error) {
	if d.Inputs <= 0 {
		return nil, errors.Errorf("layer: invalid input count %d", d.Inputs)
	}
	if len(d.Weights) == 0 || len(d.Weights) != len(d.Biases) {
		return nil, errors.Errorf("layer: %d weight rows for %d biases", len(d.Weights), len(d.Biases))
	}
	l := &Layer{
		neurons:    make([]*neuron.Neuron, len(d.Weights)),
		activation: d.Activation,
		inputs:     d.Inputs,
		pinnedBias: d.PinnedBias,
	}
	for i, w := range d.Weights {
		if len(w) != d.Inputs {
			return nil, errors.Errorf("layer: neuron %d has %d weights, layer expects %d", i, len(w), d.Inputs)
		}
		if d.PinnedBias && d.Biases[i] != 0 {
			return nil, errors.Errorf("layer: neuron %d has bias %v on a pinned layer", i, d.Biases[i])
		}
		l.neurons[i] = neuron.FromWeights(w, d.Biases[i])
	}
	return l, nil
}
