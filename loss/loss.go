// Package loss implements the closed set of loss functions used for training
package loss

import "strings"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

// Kind selects a loss function
type Kind byte

const (
	MeanSquaredError Kind = iota
	ClassificationError
)

// DefaultThreshold is the decision boundary New gives a ClassificationError
const DefaultThreshold = 0.5

var names = [...]string{
	MeanSquaredError:    "mse",
	ClassificationError: "classification",
}

// String returns the configuration name of the kind
func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// ParseKind parses the configuration name of a loss
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, v := range names {
		if v == name {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("loss: unknown kind %q", name)
}

// Function is a loss strategy. Threshold is the decision boundary of
// ClassificationError and is used as is, zero included.
type Function struct {
	Kind      Kind
	Threshold float64
}

// New creates a loss function of kind k, a ClassificationError gets DefaultThreshold
func New(k Kind) Function {
	if k == ClassificationError {
		return NewClassification(DefaultThreshold)
	}
	return Function{Kind: k}
}

// NewClassification creates a ClassificationError loss with the given decision boundary
func NewClassification(threshold float64) Function {
	return Function{Kind: ClassificationError, Threshold: threshold}
}

// correct reports whether out sits on the same side of the threshold as its target
func (f Function) correct(out, expected float64) bool {
	t := f.Threshold
	if expected >= t {
		return out > t
	}
	return out < t
}

func mustMatch(outputs, expected []float64) {
	if len(outputs) != len(expected) {
		panic("loss: outputs and expected outputs differ in length")
	}
	if len(outputs) == 0 {
		panic("loss: empty outputs")
	}
}

// Calculate returns the loss of outputs against expected
func (f Function) Calculate(outputs, expected []float64) float64 {
	mustMatch(outputs, expected)
	switch f.Kind {
	case MeanSquaredError:
		var diff = make([]float64, len(outputs))
		floats.SubTo(diff, outputs, expected)
		return floats.Dot(diff, diff) / float64(len(diff))
	case ClassificationError:
		var wrong int
		for i := range outputs {
			if !f.correct(outputs[i], expected[i]) {
				wrong++
			}
		}
		return float64(wrong) / float64(len(outputs))
	}
	panic("loss: unknown kind " + f.Kind.String())
}

// Derivative returns dLoss/dOutput for every output. For a single output the
// mean squared error gradient reduces to 2*mean(out-exp).
func (f Function) Derivative(outputs, expected []float64) []float64 {
	mustMatch(outputs, expected)
	var grad = make([]float64, len(outputs))
	floats.SubTo(grad, outputs, expected)
	floats.Scale(2/float64(len(outputs)), grad)
	if f.Kind == ClassificationError {
		for i := range grad {
			if f.correct(outputs[i], expected[i]) {
				grad[i] = 0
			}
		}
	} else if f.Kind != MeanSquaredError {
		panic("loss: unknown kind " + f.Kind.String())
	}
	return grad
}
