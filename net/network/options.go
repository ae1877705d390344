package network

import "fmt"
import "math/rand"

import "github.com/neurlang/castrank/loss"

// DefaultLearningRate is used when Options.LearningRate is zero
const DefaultLearningRate = 0.1

// Options configures a new network
type Options struct {
	LearningRate float64       // step size of every gradient update
	Loss         loss.Function // loss minimized by Train
	Rand         *rand.Rand    // source of initial weights, nil uses the global source
}

// Rate returns the learning rate with the default applied
func (o Options) Rate() float64 {
	if o.LearningRate == 0 {
		return DefaultLearningRate
	}
	return o.LearningRate
}

// MustLen panics unless a vector of length got fits a slot of length want.
// Wrong lengths are wiring bugs, not recoverable conditions.
func MustLen(what string, got, want int) {
	if got != want {
		panic(fmt.Sprintf("network: %s has length %d, expected %d", what, got, want))
	}
}
