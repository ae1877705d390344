// Package network defines the contract shared by the network variants and
// their structural description used to save and rebuild them.
package network

import "github.com/neurlang/castrank/layer"
import "github.com/neurlang/castrank/loss"

// Network is an ordered stack of dense layers trained one example at a time.
//
// Predict must not mutate the network, so concurrent Predict calls are safe.
// Train mutates weights in place and needs exclusive access.
type Network interface {

	// Predict runs the forward pass
	Predict(inputs []float64) []float64

	// Train runs one backpropagation step and returns the loss of the
	// prediction made before the update
	Train(inputs, expectedOutputs []float64) float64

	// Inputs returns the input vector length
	Inputs() int

	// Outputs returns the output vector length
	Outputs() int

	// Loss returns the loss function used by Train
	Loss() loss.Function

	// HasNaN reports whether any weight or bias is NaN or infinite
	HasNaN() bool

	// Describe captures the structure and parameters of the network
	Describe() Descriptor
}

// Kind names a network variant
type Kind string

const (
	Perceptron  Kind = "perceptron"
	Feedforward Kind = "feedforward"
)

// Descriptor is an explicit structural description of a network: variant,
// loss, learning rate and every layer with its weights.
type Descriptor struct {
	Kind         Kind
	Loss         loss.Function
	LearningRate float64
	Layers       []layer.Descriptor
}
