package comparator

import "sync"

// Key identifies an ordered pair of entities
type Key[K comparable] struct {
	A, B K
}

// Cached memoizes the comparisons of one comparator in one context, keyed
// by the entity identifiers. The memo is only valid for the network state it
// was filled from; Invalidate it whenever the network is retrained.
type Cached[E any, C any, K comparable] struct {
	cmp     *Comparator[E, C]
	context C
	id      func(E) K

	mut  sync.Mutex
	memo map[Key[K]]int
}

// NewCached wraps cmp for context
func NewCached[E any, C any, K comparable](cmp *Comparator[E, C], context C, id func(E) K) *Cached[E, C, K] {
	return &Cached[E, C, K]{cmp: cmp, context: context, id: id, memo: make(map[Key[K]]int)}
}

// Compare is Comparator.Compare in the cached context
func (c *Cached[E, C, K]) Compare(a, b E) int {
	k := Key[K]{c.id(a), c.id(b)}
	c.mut.Lock()
	v, ok := c.memo[k]
	c.mut.Unlock()
	if ok {
		return v
	}
	v = c.cmp.Compare(a, b, c.context)
	c.mut.Lock()
	c.memo[k] = v
	c.mut.Unlock()
	return v
}

// Len returns the number of memoized comparisons
func (c *Cached[E, C, K]) Len() int {
	c.mut.Lock()
	defer c.mut.Unlock()
	return len(c.memo)
}

// Invalidate drops every memoized comparison
func (c *Cached[E, C, K]) Invalidate() {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.memo = make(map[Key[K]]int)
}
