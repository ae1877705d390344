package engine

import "context"
import "sync"

import "github.com/neurlang/castrank/comparator"
import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/net/network"
import "github.com/neurlang/castrank/trainer"

// learner is the part shared by the variants that train a network. Compare
// may run concurrently, training takes the network exclusively.
type learner[E any, C comparable] struct {
	cfg Config[E, C]
	net network.Network
	cmp *comparator.Comparator[E, C]

	mut sync.RWMutex

	memoMut sync.Mutex
	memo    map[C]*comparator.Cached[E, C, string]
}

func newLearner[E any, C comparable](cfg Config[E, C], net network.Network) *learner[E, C] {
	return &learner[E, C]{
		cfg:  cfg,
		net:  net,
		cmp:  comparator.New(net, cfg.Encoder),
		memo: make(map[C]*comparator.Cached[E, C, string]),
	}
}

// Network returns the trained network
func (l *learner[E, C]) Network() network.Network {
	return l.net
}

func (l *learner[E, C]) cached(role C) *comparator.Cached[E, C, string] {
	l.memoMut.Lock()
	defer l.memoMut.Unlock()
	c, ok := l.memo[role]
	if !ok {
		c = comparator.NewCached(l.cmp, role, l.cfg.ID)
		l.memo[role] = c
	}
	return c
}

// invalidate drops the memoized comparisons of every context
func (l *learner[E, C]) invalidate() {
	l.memoMut.Lock()
	defer l.memoMut.Unlock()
	for _, c := range l.memo {
		c.Invalidate()
	}
}

func (l *learner[E, C]) Compare(a, b E, role C) int {
	l.mut.RLock()
	defer l.mut.RUnlock()
	if l.cfg.ID == nil {
		return l.cmp.Compare(a, b, role)
	}
	return l.cached(role).Compare(a, b)
}

// UserDecision records the decision and drops memoized comparisons, as a
// decision usually changes the features of the cast entities.
func (l *learner[E, C]) UserDecision(s *datasets.Session, picked, notPicked []E, role C) {
	s.Add(l.cfg.name(role), l.cfg.Encoder.Mask(role), l.cfg.Encoder.Decision(picked, notPicked, role)...)
	l.invalidate()
}

// batch is what one export trains on
type batch struct {
	context  string // trained context, empty for the whole session
	pairs    []datasets.Pair
	relevant []bool
}

// collect returns the pairs to train on and the features they exercise
func (l *learner[E, C]) collect(s *datasets.Session) batch {
	if l.cfg.Scope == RoleScope {
		last := s.LastContext()
		return batch{context: last, pairs: s.PairsIn(last), relevant: s.RelevantIn(last)}
	}
	return batch{pairs: s.Pairs(), relevant: s.Relevant()}
}

// consume marks the trained pairs of b as used, pairs of contexts that were
// not trained stay in the session
func (l *learner[E, C]) consume(s *datasets.Session, b batch) {
	if l.cfg.Scope == RoleScope {
		s.ConsumedIn(b.context)
		return
	}
	s.Consumed()
}

// train runs the trainer over pairs. The caller holds l.mut.
func (l *learner[E, C]) train(ctx context.Context, pairs []datasets.Pair) (trainer.Montage, error) {
	t, err := trainer.New(l.net, pairs, l.cfg.Hyper)
	if err != nil {
		return trainer.Montage{}, err
	}
	m := t.Train(ctx)
	l.invalidate()
	switch {
	case m.Cancelled:
		return m, ctx.Err()
	case m.ContainsNaN:
		return m, ErrDiverged
	}
	return m, nil
}
