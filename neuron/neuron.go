// Package neuron implements the weighted sum unit of a dense layer
package neuron

import "fmt"
import "math"
import "math/rand"

// Initial weights and biases are drawn uniformly from [InitialMin, InitialMax)
// so no two neurons start out symmetric and no gradient starts at zero.
const InitialMin = 0.2
const InitialMax = 0.8

// Neuron holds a weight for every input and a bias
type Neuron struct {
	weights []float64
	bias    float64
}

// New creates a neuron with n randomly initialized weights. A nil rng uses
// the global source.
func New(n int, rng *rand.Rand) *Neuron {
	if n <= 0 {
		panic(fmt.Sprintf("neuron: invalid input count %d", n))
	}
	o := &Neuron{weights: make([]float64, n)}
	o.Reset(rng)
	return o
}

// FromWeights creates a neuron owning a copy of weights and the given bias
func FromWeights(weights []float64, bias float64) *Neuron {
	if len(weights) == 0 {
		panic("neuron: no weights")
	}
	return &Neuron{weights: append([]float64(nil), weights...), bias: bias}
}

// Reset re-draws every weight and the bias
func (n *Neuron) Reset(rng *rand.Rand) {
	for i := range n.weights {
		n.weights[i] = initial(rng)
	}
	n.bias = initial(rng)
}

func initial(rng *rand.Rand) float64 {
	var r float64
	if rng == nil {
		r = rand.Float64()
	} else {
		r = rng.Float64()
	}
	return InitialMin + r*(InitialMax-InitialMin)
}

// Len returns the input arity of the neuron
func (n *Neuron) Len() int {
	return len(n.weights)
}

// Weight gets the i-th weight
func (n *Neuron) Weight(i int) float64 {
	return n.weights[i]
}

// Weights returns a copy of the weights
func (n *Neuron) Weights() []float64 {
	return append([]float64(nil), n.weights...)
}

// Bias gets the bias
func (n *Neuron) Bias() float64 {
	return n.bias
}

// SetWeights overwrites the weights, the length must not change
func (n *Neuron) SetWeights(weights []float64) {
	n.mustArity(len(weights))
	copy(n.weights, weights)
}

// SetBias overwrites the bias
func (n *Neuron) SetBias(bias float64) {
	n.bias = bias
}

// WeightedSum returns bias + Σ weights[i]*input[i]
func (n *Neuron) WeightedSum(input []float64) float64 {
	n.mustArity(len(input))
	return n.bias + Dot(n.weights, input)
}

// Update applies one gradient step: every weight moves by
// -rate*gradient*input[i] and, unless pinned, the bias by -rate*gradient.
func (n *Neuron) Update(input []float64, gradient, rate float64, pinnedBias bool) {
	n.mustArity(len(input))
	step := rate * gradient
	for i := range n.weights {
		n.weights[i] -= step * input[i]
	}
	if !pinnedBias {
		n.bias -= step
	}
}

// HasNaN reports whether any weight or the bias is NaN or infinite
func (n *Neuron) HasNaN() bool {
	if math.IsNaN(n.bias) || math.IsInf(n.bias, 0) {
		return true
	}
	for _, w := range n.weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return true
		}
	}
	return false
}

func (n *Neuron) mustArity(l int) {
	if l != len(n.weights) {
		panic(fmt.Sprintf("neuron: got %d inputs, neuron has %d weights", l, len(n.weights)))
	}
}
