package engine

import "context"

import "gonum.org/v1/gonum/floats"

import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/reconcile"

// weighted ranks by the average of the relevant features weighted by the
// current domain parameters
type weighted[E any, C comparable] struct {
	cfg Config[E, C]
	rec *reconcile.Reconciler
}

func newWeighted[E any, C comparable](cfg Config[E, C]) *weighted[E, C] {
	return &weighted[E, C]{cfg: cfg, rec: reconcile.New(cfg.Parameters, cfg.Policy, nil)}
}

// Score returns the weighted average of the relevant features of e
func (w *weighted[E, C]) Score(e E, role C) float64 {
	enc := w.cfg.Encoder
	weights := w.rec.Weights()[:enc.Len()]
	values := make([]float64, enc.Len())
	var norm float64
	for i, relevant := range enc.Mask(role) {
		if !relevant {
			weights[i] = 0
			continue
		}
		values[i] = enc.Feature(i).Value(e)
		if weights[i] > 0 {
			norm += weights[i]
		}
	}
	if norm == 0 {
		norm = 1
	}
	return floats.Dot(weights, values) / norm
}

func (w *weighted[E, C]) Compare(a, b E, role C) int {
	sa, sb := w.Score(a, role), w.Score(b, role)
	switch {
	case sa > sb:
		return 1
	case sa < sb:
		return -1
	}
	return 0
}

func (w *weighted[E, C]) UserDecision(s *datasets.Session, picked, notPicked []E, role C) {
	s.Add(w.cfg.name(role), w.cfg.Encoder.Mask(role), w.cfg.Encoder.Decision(picked, notPicked, role)...)
}

// ExportChanges learns nothing, it only consumes the session
func (w *weighted[E, C]) ExportChanges(ctx context.Context, s *datasets.Session) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	s.Consumed()
	return Report{}, nil
}
