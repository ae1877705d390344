package datasets

// Pair is one training example: an input vector and the expected output
type Pair struct {
	Input  []float64
	Output []float64
}

// NewPair creates a pair with a single expected output
func NewPair(input []float64, output float64) Pair {
	return Pair{Input: input, Output: []float64{output}}
}
