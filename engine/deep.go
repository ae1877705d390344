package engine

import "context"
import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/net/feedforward"

// deep trains a feedforward network with hidden layers. Its weights have no
// domain meaning, so nothing is proposed back.
type deep[E any, C comparable] struct {
	*learner[E, C]
}

func newDeep[E any, C comparable](cfg Config[E, C]) (*deep[E, C], error) {
	net := cfg.Network
	if net == nil {
		f := feedforward.New(cfg.Encoder.Width(), cfg.Options)
		for _, n := range cfg.Hidden {
			f.NewLayer(n, cfg.Activation)
		}
		f.NewLayer(1, activation.New(activation.Sigmoid))
		net = f
	}
	if net.Inputs() != cfg.Encoder.Width() || net.Outputs() != 1 {
		return nil, errors.Wrapf(ErrConfig, "network %dx%d for %d wide pairs",
			net.Inputs(), net.Outputs(), cfg.Encoder.Width())
	}
	return &deep[E, C]{learner: newLearner(cfg, net)}, nil
}

type resetter interface {
	Reset(rng *rand.Rand)
}

func (d *deep[E, C]) ExportChanges(ctx context.Context, s *datasets.Session) (r Report, err error) {
	b := d.collect(s)
	r.Pairs = len(b.pairs)
	if len(b.pairs) == 0 {
		return r, nil
	}
	d.mut.Lock()
	defer d.mut.Unlock()

	r.Montage, err = d.train(ctx, b.pairs)
	if errors.Cause(err) == ErrDiverged {
		if net, ok := d.net.(resetter); ok {
			net.Reset(d.cfg.Options.Rand)
		}
	}
	if err != nil {
		return r, err
	}
	d.cfg.logger().Printf("engine: trained %d pairs, %s", len(b.pairs), r.Montage.Reason())
	d.consume(s, b)
	return r, nil
}
