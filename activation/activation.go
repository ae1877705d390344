// Package activation implements the closed set of neuron activation functions
package activation

import "math"
import "strings"

import "github.com/pkg/errors"

// Kind selects an activation function
type Kind byte

const (
	Sigmoid Kind = iota
	Tanh
	ReLU
	LeakyReLU
	ELU
)

// default slopes used when Function.Alpha is zero
const defaultLeakySlope = 0.01
const defaultELUAlpha = 1.0

var names = [...]string{
	Sigmoid:   "sigmoid",
	Tanh:      "tanh",
	ReLU:      "relu",
	LeakyReLU: "leakyrelu",
	ELU:       "elu",
}

// String returns the configuration name of the kind
func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// ParseKind parses the configuration name of an activation
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, v := range names {
		if v == name {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("activation: unknown kind %q", name)
}

// Function is an activation strategy. Alpha is the negative slope of
// LeakyReLU and the saturation value of ELU, other kinds ignore it.
type Function struct {
	Kind  Kind
	Alpha float64
}

// New creates an activation function of kind k with the default constants
func New(k Kind) Function {
	return Function{Kind: k}
}

func (f Function) alpha() float64 {
	if f.Alpha != 0 {
		return f.Alpha
	}
	switch f.Kind {
	case LeakyReLU:
		return defaultLeakySlope
	case ELU:
		return defaultELUAlpha
	}
	return 0
}

// Calculate applies the activation to the weighted sum x
func (f Function) Calculate(x float64) float64 {
	switch f.Kind {
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	case ReLU:
		if x > 0 {
			return x
		}
		return 0
	case LeakyReLU:
		if x > 0 {
			return x
		}
		return f.alpha() * x
	case ELU:
		if x > 0 {
			return x
		}
		return f.alpha() * (math.Exp(x) - 1)
	}
	panic("activation: unknown kind " + f.Kind.String())
}

// Derivative returns the slope of the activation expressed in terms of
// its output out, which is what the backward pass keeps around.
func (f Function) Derivative(out float64) float64 {
	switch f.Kind {
	case Sigmoid:
		return out * (1 - out)
	case Tanh:
		return 1 - out*out
	case ReLU:
		if out > 0 {
			return 1
		}
		return 0
	case LeakyReLU:
		if out > 0 {
			return 1
		}
		return f.alpha()
	case ELU:
		if out > 0 {
			return 1
		}
		return out + f.alpha()
	}
	panic("activation: unknown kind " + f.Kind.String())
}
