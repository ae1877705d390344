// Package comparator turns a network trained on pairwise examples into a
// three-way comparison of entities.
package comparator

import "github.com/neurlang/castrank/pairwise"

// Undecided is the prediction at which neither entity is preferred
const Undecided = 0.5

// Predictor is the read-only part of a network
type Predictor interface {
	Predict(inputs []float64) []float64
}

// Comparator compares entities E in contexts C. Predict must not mutate the
// network, so Compare is safe for concurrent use while nobody trains it.
type Comparator[E, C any] struct {
	net Predictor
	enc *pairwise.Encoder[E, C]
}

// New creates a comparator over a network with enc.Width() inputs and one output
func New[E, C any](net Predictor, enc *pairwise.Encoder[E, C]) *Comparator[E, C] {
	return &Comparator[E, C]{net: net, enc: enc}
}

// Preference returns the predicted probability that a is preferred over b
func (c *Comparator[E, C]) Preference(a, b E, context C) float64 {
	return c.net.Predict(c.enc.Encode(a, b, context))[0]
}

// Compare returns 1 when a is preferred, -1 when b is preferred and 0 when
// the network cannot tell. Both orders are predicted and compared, so
// Compare(a, b) == -Compare(b, a) holds exactly even where the two weighted
// sums round differently. For a seeded antisymmetric network this is the
// sign of Preference(a, b) - Undecided.
func (c *Comparator[E, C]) Compare(a, b E, context C) int {
	d := c.Preference(a, b, context) - c.Preference(b, a, context)
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}

// For binds the comparator to a context
func (c *Comparator[E, C]) For(context C) func(a, b E) int {
	return func(a, b E) int {
		return c.Compare(a, b, context)
	}
}

// Descending binds the comparator to a context for slices.SortFunc, the
// preferred entities sort first.
func (c *Comparator[E, C]) Descending(context C) func(a, b E) int {
	return func(a, b E) int {
		return -c.Compare(a, b, context)
	}
}
