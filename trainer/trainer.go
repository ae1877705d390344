package trainer

import "context"
import "math"
import "math/rand"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/net/network"

var (
	ErrNoStoppingCondition = errors.New("trainer: no stopping condition configured")
	ErrEmptyTrainingSet    = errors.New("trainer: empty training set")
	ErrShape               = errors.New("trainer: training pair does not fit the network")
)

// Trainer repeatedly trains a network over a fixed set of examples
type Trainer struct {
	net   network.Network
	pairs []datasets.Pair
	h     HyperParameters
}

// New validates the hyper parameters and every pair against the network
func New(net network.Network, pairs []datasets.Pair, h HyperParameters) (*Trainer, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	for i, p := range pairs {
		if len(p.Input) != net.Inputs() || len(p.Output) != net.Outputs() {
			return nil, errors.Wrapf(ErrShape, "pair %d is %dx%d, network is %dx%d",
				i, len(p.Input), len(p.Output), net.Inputs(), net.Outputs())
		}
	}
	return &Trainer{
		net:   net,
		pairs: append([]datasets.Pair(nil), pairs...),
		h:     h,
	}, nil
}

func below(losses []float64, threshold float64) bool {
	for _, l := range losses {
		if !(l < threshold) {
			return false
		}
	}
	return true
}

func stalled(losses, previous []float64, threshold float64) bool {
	if previous == nil {
		return false
	}
	for i := range losses {
		if !(math.Abs(losses[i]-previous[i]) < threshold) {
			return false
		}
	}
	return true
}

// Train runs epochs until a stopping condition holds. The context is only
// consulted between epochs, an epoch is never interrupted.
func (t *Trainer) Train(ctx context.Context) (m Montage) {
	l := t.h.logger()
	var rng *rand.Rand
	if t.h.Shuffle {
		rng = rand.New(rand.NewSource(t.h.Seed))
	}
	losses := make([]float64, len(t.pairs))
	var previous []float64

	defer func() {
		m.FinalLoss = append([]float64(nil), losses...)
		l.Println(m.String())
	}()

	for epoch := 0; ; epoch++ {
		if err := ctx.Err(); err != nil {
			m.Cancelled = true
			return
		}
		for _, i := range order(len(t.pairs), rng) {
			losses[i] = t.net.Train(t.pairs[i].Input, t.pairs[i].Output)
			if t.net.HasNaN() || math.IsNaN(losses[i]) {
				m.ContainsNaN = true
				m.Iterations = epoch + 1
				if epoch == 0 {
					m.InitialLoss = append([]float64(nil), losses...)
				}
				l.Printf("epoch %d: NaN after example %d, aborting", epoch+1, i)
				return
			}
		}
		m.Iterations = epoch + 1
		if epoch == 0 {
			m.InitialLoss = append([]float64(nil), losses...)
		}
		if t.h.LogEvery > 0 && m.Iterations%t.h.LogEvery == 0 {
			l.Printf("epoch %d: %d examples, max loss %.6f", m.Iterations, len(losses), floats.Max(losses))
		}

		if t.h.LossThreshold > 0 && below(losses, t.h.LossThreshold) {
			m.Success = true
			return
		}
		if t.h.ChangeThreshold > 0 && stalled(losses, previous, t.h.ChangeThreshold) {
			m.ReachedStableLoss = true
			return
		}
		if t.h.MaxIterations > 0 && m.Iterations >= t.h.MaxIterations {
			m.ReachedMaxIterations = true
			return
		}
		previous = append(previous[:0], losses...)
	}
}
