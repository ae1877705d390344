// Package perceptron implements a single layer network
package perceptron

import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/layer"
import "github.com/neurlang/castrank/loss"
import "github.com/neurlang/castrank/net/network"

// Perceptron is a network consisting of exactly one dense layer
type Perceptron struct {
	layer *layer.Layer
	loss  loss.Function
	rate  float64
}

// New creates a perceptron mapping inputs values to outputs values
func New(inputs, outputs int, act activation.Function, opts network.Options) *Perceptron {
	return &Perceptron{
		layer: layer.New(inputs, outputs, act, opts.Rand),
		loss:  opts.Loss,
		rate:  opts.Rate(),
	}
}

// FromDescriptor rebuilds a perceptron from its description
func FromDescriptor(d network.Descriptor) (*Perceptron, error) {
	if d.Kind != network.Perceptron {
		return nil, errors.Errorf("perceptron: descriptor is of kind %q", d.Kind)
	}
	if len(d.Layers) != 1 {
		return nil, errors.Errorf("perceptron: descriptor has %d layers", len(d.Layers))
	}
	l, err := layer.FromDescriptor(d.Layers[0])
	if err != nil {
		return nil, errors.Wrap(err, "perceptron")
	}
	return &Perceptron{layer: l, loss: d.Loss, rate: d.LearningRate}, nil
}

// PinBias keeps every bias at zero
func (p *Perceptron) PinBias() {
	p.layer.PinBias()
}

// Layer exposes the only layer
func (p *Perceptron) Layer() *layer.Layer {
	return p.layer
}

// Inputs returns the input vector length
func (p *Perceptron) Inputs() int {
	return p.layer.Inputs()
}

// Outputs returns the output vector length
func (p *Perceptron) Outputs() int {
	return p.layer.Outputs()
}

// Loss returns the loss minimized by Train
func (p *Perceptron) Loss() loss.Function {
	return p.loss
}

// LearningRate returns the gradient step size
func (p *Perceptron) LearningRate() float64 {
	return p.rate
}

// SetLearningRate changes the gradient step size
func (p *Perceptron) SetLearningRate(rate float64) {
	p.rate = rate
}

// HasNaN reports whether any weight or bias is NaN or infinite
func (p *Perceptron) HasNaN() bool {
	return p.layer.HasNaN()
}

// Reset re-draws all weights
func (p *Perceptron) Reset(rng *rand.Rand) {
	p.layer.Reset(rng)
}

// Predict runs the forward pass
func (p *Perceptron) Predict(inputs []float64) []float64 {
	network.MustLen("input", len(inputs), p.Inputs())
	return p.layer.Predict(inputs)
}

// Train runs one gradient step and returns the loss before the update
func (p *Perceptron) Train(inputs, expectedOutputs []float64) float64 {
	network.MustLen("input", len(inputs), p.Inputs())
	network.MustLen("expected output", len(expectedOutputs), p.Outputs())
	out := p.layer.Predict(inputs)
	before := p.loss.Calculate(out, expectedOutputs)
	p.layer.Train(inputs, out, p.loss.Derivative(out, expectedOutputs), p.rate)
	return before
}

// OutputWeights returns a copy of the weights and the bias of the single output neuron
func (p *Perceptron) OutputWeights() ([]float64, float64) {
	p.mustSingleOutput()
	n := p.layer.Neuron(0)
	return n.Weights(), n.Bias()
}

// SetOutputWeights overwrites the weights and bias of the single output neuron
func (p *Perceptron) SetOutputWeights(weights []float64, bias float64) error {
	p.mustSingleOutput()
	if len(weights) != p.Inputs() {
		return errors.Errorf("perceptron: got %d weights for %d inputs", len(weights), p.Inputs())
	}
	if p.layer.PinnedBias() && bias != 0 {
		return errors.Errorf("perceptron: bias %v on a pinned layer", bias)
	}
	n := p.layer.Neuron(0)
	n.SetWeights(weights)
	n.SetBias(bias)
	return nil
}

func (p *Perceptron) mustSingleOutput() {
	network.MustLen("perceptron output", p.Outputs(), 1)
}

// Describe captures the perceptron
func (p *Perceptron) Describe() network.Descriptor {
	return network.Descriptor{
		Kind:         network.Perceptron,
		Loss:         p.loss,
		LearningRate: p.rate,
		Layers:       []layer.Descriptor{p.layer.Describe()},
	}
}
