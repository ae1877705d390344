package datasets

import "sync"

import "github.com/google/uuid"

// Policy decides what happens to collected pairs once they were trained on
type Policy byte

const (
	// Clear drops pairs after every training run
	Clear Policy = iota
	// Stockpile keeps pairs so later runs train on the whole history
	Stockpile
)

// Session collects training pairs produced by user decisions. It is owned by
// the caller and handed to the engine on every decision and export.
type Session struct {
	ID     uuid.UUID
	Policy Policy

	mut      sync.Mutex
	pairs    []Pair
	contexts []string
	masks    map[string][]bool
}

// NewSession creates an empty session
func NewSession(policy Policy) *Session {
	return &Session{ID: uuid.New(), Policy: policy, masks: make(map[string][]bool)}
}

func merge(dst, src []bool) []bool {
	if len(dst) < len(src) {
		dst = append(dst, make([]bool, len(src)-len(dst))...)
	}
	for i, r := range src {
		dst[i] = dst[i] || r
	}
	return dst
}

// Add records pairs produced in the named context. relevant flags the
// features that context uses, they are merged into the context mask.
func (s *Session) Add(context string, relevant []bool, pairs ...Pair) {
	s.mut.Lock()
	defer s.mut.Unlock()
	if s.masks == nil {
		s.masks = make(map[string][]bool)
	}
	s.masks[context] = merge(s.masks[context], relevant)
	for _, p := range pairs {
		s.pairs = append(s.pairs, p)
		s.contexts = append(s.contexts, context)
	}
}

// Len returns the number of collected pairs
func (s *Session) Len() int {
	s.mut.Lock()
	defer s.mut.Unlock()
	return len(s.pairs)
}

// Pairs returns the collected pairs
func (s *Session) Pairs() []Pair {
	s.mut.Lock()
	defer s.mut.Unlock()
	return append([]Pair(nil), s.pairs...)
}

// PairsIn returns the pairs collected in the named context
func (s *Session) PairsIn(context string) (o []Pair) {
	s.mut.Lock()
	defer s.mut.Unlock()
	for i, c := range s.contexts {
		if c == context {
			o = append(o, s.pairs[i])
		}
	}
	return
}

// LastContext returns the context of the most recently added pair
func (s *Session) LastContext() string {
	s.mut.Lock()
	defer s.mut.Unlock()
	if len(s.contexts) == 0 {
		return ""
	}
	return s.contexts[len(s.contexts)-1]
}

// Relevant returns the union of the masks of every context
func (s *Session) Relevant() (o []bool) {
	s.mut.Lock()
	defer s.mut.Unlock()
	for _, m := range s.masks {
		o = merge(o, m)
	}
	return
}

// RelevantIn returns the mask of the named context
func (s *Session) RelevantIn(context string) []bool {
	s.mut.Lock()
	defer s.mut.Unlock()
	return append([]bool(nil), s.masks[context]...)
}

// Consumed is called after a training run on every pair. Under the Clear
// policy every pair and mask is dropped.
func (s *Session) Consumed() {
	if s.Policy != Clear {
		return
	}
	s.mut.Lock()
	defer s.mut.Unlock()
	s.pairs = nil
	s.contexts = nil
	s.masks = make(map[string][]bool)
}

// ConsumedIn is called after a training run on the pairs of one context.
// Under the Clear policy only that context is dropped.
func (s *Session) ConsumedIn(context string) {
	if s.Policy != Clear {
		return
	}
	s.mut.Lock()
	defer s.mut.Unlock()
	var pairs []Pair
	var contexts []string
	for i, c := range s.contexts {
		if c != context {
			pairs = append(pairs, s.pairs[i])
			contexts = append(contexts, c)
		}
	}
	s.pairs, s.contexts = pairs, contexts
	delete(s.masks, context)
}
