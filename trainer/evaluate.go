package trainer

import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/net/network"

// Evaluate returns the loss of every pair without training
func Evaluate(net network.Network, pairs []datasets.Pair) []float64 {
	out := make([]float64, len(pairs))
	for i, p := range pairs {
		out[i] = net.Loss().Calculate(net.Predict(p.Input), p.Output)
	}
	return out
}
