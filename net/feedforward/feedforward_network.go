// Package feedforward implements a multi layer feedforward network trained by backpropagation
package feedforward

import "fmt"
import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/layer"
import "github.com/neurlang/castrank/loss"
import "github.com/neurlang/castrank/net/network"

// FeedforwardNetwork is an ordered sequence of dense layers, input to output.
// Build it with New followed by one NewLayer call per layer.
type FeedforwardNetwork struct {
	inputs int
	layers []*layer.Layer
	loss   loss.Function
	rate   float64
	rng    *rand.Rand
}

// New creates an empty network reading inputs values
func New(inputs int, opts network.Options) *FeedforwardNetwork {
	if inputs <= 0 {
		panic(fmt.Sprintf("feedforward: invalid input count %d", inputs))
	}
	return &FeedforwardNetwork{
		inputs: inputs,
		loss:   opts.Loss,
		rate:   opts.Rate(),
		rng:    opts.Rand,
	}
}

// NewLayer adds a layer of n neurons to the end of network. Its input count
// is the output count of the previous layer.
func (f *FeedforwardNetwork) NewLayer(n int, act activation.Function) *layer.Layer {
	l := layer.New(f.lastOutputs(), n, act, f.rng)
	f.layers = append(f.layers, l)
	return l
}

func (f *FeedforwardNetwork) lastOutputs() int {
	if len(f.layers) == 0 {
		return f.inputs
	}
	return f.layers[len(f.layers)-1].Outputs()
}

// FromDescriptor rebuilds a network from its description
func FromDescriptor(d network.Descriptor) (*FeedforwardNetwork, error) {
	if d.Kind != network.Feedforward {
		return nil, errors.Errorf("feedforward: descriptor is of kind %q", d.Kind)
	}
	if len(d.Layers) == 0 {
		return nil, errors.New("feedforward: descriptor has no layers")
	}
	f := &FeedforwardNetwork{inputs: d.Layers[0].Inputs, loss: d.Loss, rate: d.LearningRate}
	for i, ld := range d.Layers {
		l, err := layer.FromDescriptor(ld)
		if err != nil {
			return nil, errors.Wrapf(err, "feedforward: layer %d", i)
		}
		if l.Inputs() != f.lastOutputs() {
			return nil, errors.Errorf("feedforward: layer %d reads %d inputs, previous layer has %d outputs",
				i, l.Inputs(), f.lastOutputs())
		}
		f.layers = append(f.layers, l)
	}
	return f, nil
}

// LenLayers returns the number of layers
func (f *FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// Len returns the number of neurons which are trained inside the network
func (f *FeedforwardNetwork) Len() (o int) {
	for _, l := range f.layers {
		o += l.Outputs()
	}
	return
}

// GetLayer gets the n-th layer
func (f *FeedforwardNetwork) GetLayer(n int) *layer.Layer {
	return f.layers[n]
}

// Inputs returns the input vector length
func (f *FeedforwardNetwork) Inputs() int {
	return f.inputs
}

// Outputs returns the output vector length
func (f *FeedforwardNetwork) Outputs() int {
	f.mustLayers()
	return f.lastOutputs()
}

// Loss returns the loss minimized by Train
func (f *FeedforwardNetwork) Loss() loss.Function {
	return f.loss
}

// LearningRate returns the gradient step size
func (f *FeedforwardNetwork) LearningRate() float64 {
	return f.rate
}

// SetLearningRate changes the gradient step size
func (f *FeedforwardNetwork) SetLearningRate(rate float64) {
	f.rate = rate
}

// HasNaN reports whether any weight or bias is NaN or infinite
func (f *FeedforwardNetwork) HasNaN() bool {
	for _, l := range f.layers {
		if l.HasNaN() {
			return true
		}
	}
	return false
}

// Reset re-draws all weights
func (f *FeedforwardNetwork) Reset(rng *rand.Rand) {
	for _, l := range f.layers {
		l.Reset(rng)
	}
}

func (f *FeedforwardNetwork) mustLayers() {
	if len(f.layers) == 0 {
		panic("feedforward: network has no layers")
	}
}

// forward returns the input followed by the output of every layer
func (f *FeedforwardNetwork) forward(inputs []float64) [][]float64 {
	f.mustLayers()
	network.MustLen("input", len(inputs), f.inputs)
	acts := make([][]float64, len(f.layers)+1)
	acts[0] = inputs
	for i, l := range f.layers {
		acts[i+1] = l.Predict(acts[i])
	}
	return acts
}

// Predict runs the forward pass through all layers
func (f *FeedforwardNetwork) Predict(inputs []float64) []float64 {
	acts := f.forward(inputs)
	return acts[len(acts)-1]
}

// Train predicts forward through all layers, then walks them in reverse. Each
// layer is updated from the gradient handed down by the layer above, which
// computed it before changing its own weights. The input layer is trained
// with the raw inputs.
func (f *FeedforwardNetwork) Train(inputs, expectedOutputs []float64) float64 {
	acts := f.forward(inputs)
	out := acts[len(acts)-1]
	network.MustLen("expected output", len(expectedOutputs), len(out))
	before := f.loss.Calculate(out, expectedOutputs)
	grad := f.loss.Derivative(out, expectedOutputs)
	for i := len(f.layers) - 1; i >= 0; i-- {
		grad = f.layers[i].Train(acts[i], acts[i+1], grad, f.rate)
	}
	return before
}

// Describe captures the network
func (f *FeedforwardNetwork) Describe() network.Descriptor {
	d := network.Descriptor{
		Kind:         network.Feedforward,
		Loss:         f.loss,
		LearningRate: f.rate,
		Layers:       make([]layer.Descriptor, len(f.layers)),
	}
	for i, l := range f.layers {
		d.Layers[i] = l.Describe()
	}
	return d
}
