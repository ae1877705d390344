// Package pairwise turns "A was preferred over B" decisions into symmetric
// training examples for a single shared network.
//
// With N registered features the encoded vector has length 2N: slots [0, N)
// hold the features of the first entity, slots [N, 2N) the same features of
// the second. Features the context does not use stay zero, so one network can
// serve contexts with different feature subsets.
package pairwise

import "github.com/neurlang/castrank/datasets"

// Feature extracts one numeric property of an entity
type Feature[E any] interface {

	// Value returns the feature value of entity
	Value(entity E) float64

	// Describe names the feature of entity for diagnostics
	Describe(entity E) string
}

// Relevance reports whether a feature is used when comparing in a context
type Relevance[C any] interface {
	Relevant(context C, feature int) bool
}

// RelevanceFunc adapts a function to Relevance
type RelevanceFunc[C any] func(context C, feature int) bool

// Relevant calls f(context, feature)
func (f RelevanceFunc[C]) Relevant(context C, feature int) bool {
	return f(context, feature)
}

// Picked is the expected output of an example whose first entity was preferred
const Picked = 1.0

// NotPicked is the expected output of an example whose second entity was preferred
const NotPicked = 0.0

// Encoder builds pairwise vectors of entities E compared in contexts C
type Encoder[E, C any] struct {
	features  []Feature[E]
	relevance Relevance[C]
}

// NewEncoder creates an encoder over the registered features
func NewEncoder[E, C any](relevance Relevance[C], features ...Feature[E]) *Encoder[E, C] {
	if len(features) == 0 {
		panic("pairwise: no features")
	}
	if relevance == nil {
		panic("pairwise: nil relevance")
	}
	return &Encoder[E, C]{features: features, relevance: relevance}
}

// Len returns the number of registered features N
func (e *Encoder[E, C]) Len() int {
	return len(e.features)
}

// Width returns the length 2N of an encoded vector
func (e *Encoder[E, C]) Width() int {
	return 2 * len(e.features)
}

// Feature gets the n-th registered feature
func (e *Encoder[E, C]) Feature(n int) Feature[E] {
	return e.features[n]
}

// Mask flags the features relevant in context
func (e *Encoder[E, C]) Mask(context C) []bool {
	m := make([]bool, len(e.features))
	for i := range e.features {
		m[i] = e.relevance.Relevant(context, i)
	}
	return m
}

// Encode builds the vector comparing a (first half) with b (second half)
func (e *Encoder[E, C]) Encode(a, b E, context C) []float64 {
	n := len(e.features)
	v := make([]float64, 2*n)
	for i, f := range e.features {
		if !e.relevance.Relevant(context, i) {
			continue
		}
		v[i] = f.Value(a)
		v[n+i] = f.Value(b)
	}
	return v
}

// Pairs returns both directions of one decision: (picked, notPicked) expecting
// Picked and (notPicked, picked) expecting NotPicked.
func (e *Encoder[E, C]) Pairs(picked, notPicked E, context C) [2]datasets.Pair {
	return [2]datasets.Pair{
		datasets.NewPair(e.Encode(picked, notPicked, context), Picked),
		datasets.NewPair(e.Encode(notPicked, picked, context), NotPicked),
	}
}

// Decision expands a casting decision, every picked entity preferred over
// every entity which was not picked, into training pairs.
func (e *Encoder[E, C]) Decision(picked, notPicked []E, context C) []datasets.Pair {
	o := make([]datasets.Pair, 0, 2*len(picked)*len(notPicked))
	for _, p := range picked {
		for _, n := range notPicked {
			both := e.Pairs(p, n, context)
			o = append(o, both[0], both[1])
		}
	}
	return o
}

// Describe lists the relevant features of entity in context
func (e *Encoder[E, C]) Describe(entity E, context C) []string {
	var o []string
	for i, f := range e.features {
		if e.relevance.Relevant(context, i) {
			o = append(o, f.Describe(entity))
		}
	}
	return o
}
