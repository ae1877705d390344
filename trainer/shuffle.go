package trainer

import "math/rand"

// order returns the visiting order of n examples. Without shuffling it is
// the stable order 0..n-1.
func order(n int, rng *rand.Rand) (o []int) {
	o = make([]int, n)
	for i := range o {
		o[i] = i
	}
	if rng != nil {
		rng.Shuffle(n, func(i, j int) { o[i], o[j] = o[j], o[i] })
	}
	return o
}
