package engine

import "context"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/net/perceptron"
import "github.com/neurlang/castrank/reconcile"

// neural trains a zero bias perceptron seeded from the domain parameters and
// proposes the learned weights back to the user
type neural[E any, C comparable] struct {
	*learner[E, C]
	p   *perceptron.Perceptron
	rec *reconcile.Reconciler
}

func newNeural[E any, C comparable](cfg Config[E, C]) (*neural[E, C], error) {
	p := perceptron.New(cfg.Encoder.Width(), 1, activation.New(activation.Sigmoid), cfg.Options)
	p.PinBias()
	rec := reconcile.New(cfg.Parameters, cfg.Policy, cfg.Confirm)
	rec.SetLogger(cfg.Logger)
	if err := rec.Seed(p); err != nil {
		return nil, errors.Wrap(ErrConfig, err.Error())
	}
	return &neural[E, C]{learner: newLearner(cfg, p), p: p, rec: rec}, nil
}

func (n *neural[E, C]) ExportChanges(ctx context.Context, s *datasets.Session) (r Report, err error) {
	b := n.collect(s)
	r.Pairs = len(b.pairs)
	if len(b.pairs) == 0 {
		return r, nil
	}
	n.mut.Lock()
	defer n.mut.Unlock()
	defer n.invalidate()

	r.Montage, err = n.train(ctx, b.pairs)
	if err != nil {
		// unconfirmed drift of a failed run never survives
		if serr := n.rec.Seed(n.p); serr != nil {
			return r, serr
		}
		return r, err
	}
	n.cfg.logger().Printf("engine: trained %d pairs, %s", len(b.pairs), r.Montage.Reason())
	r.Outcome, err = n.rec.Reconcile(n.p, b.relevant)
	if err != nil {
		return r, err
	}
	n.consume(s, b)
	return r, nil
}
