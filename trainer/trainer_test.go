package trainer

import "bytes"
import "context"
import "log"
import "math"
import "math/rand"
import "strings"
import "testing"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/loss"
import "github.com/neurlang/castrank/net/network"
import "github.com/neurlang/castrank/net/perceptron"

func andSet() []datasets.Pair {
	return []datasets.Pair{
		datasets.NewPair([]float64{0, 0}, 0),
		datasets.NewPair([]float64{0, 1}, 0),
		datasets.NewPair([]float64{1, 0}, 0),
		datasets.NewPair([]float64{1, 1}, 1),
	}
}

func andNet(rate float64) *perceptron.Perceptron {
	return perceptron.New(2, 1, activation.New(activation.Sigmoid), network.Options{
		LearningRate: rate,
		Loss:         loss.New(loss.MeanSquaredError),
		Rand:         rand.New(rand.NewSource(1)),
	})
}

func TestConvergesOnAnd(t *testing.T) {
	net := andNet(0.5)
	tr, err := New(net, andSet(), HyperParameters{MaxIterations: 10000, LossThreshold: 0.05})
	if err != nil {
		t.Fatal(err)
	}
	m := tr.Train(context.Background())
	if !m.Success || m.ReachedMaxIterations {
		t.Fatalf("did not converge: %v", m)
	}
	for i, l := range m.FinalLoss {
		if l >= 0.05 {
			t.Errorf("example %d final loss %v", i, l)
		}
	}
	if m.MaxFinalLoss() >= floats.Max(m.InitialLoss) {
		t.Errorf("loss did not decrease: %v -> %v", m.InitialLoss, m.FinalLoss)
	}
}

func TestMaxIterationsOnly(t *testing.T) {
	tr, err := New(andNet(0.01), andSet(), HyperParameters{MaxIterations: 5, LossThreshold: 1e-300})
	if err != nil {
		t.Fatal(err)
	}
	m := tr.Train(context.Background())
	if m.Iterations != 5 || !m.ReachedMaxIterations || m.Success {
		t.Errorf("got %+v", m)
	}
	if len(m.InitialLoss) != 4 || len(m.FinalLoss) != 4 {
		t.Errorf("loss vectors %v %v", m.InitialLoss, m.FinalLoss)
	}
}

func TestStableLoss(t *testing.T) {
	tr, err := New(andNet(1e-9), andSet(), HyperParameters{ChangeThreshold: 1e-6, MaxIterations: 100})
	if err != nil {
		t.Fatal(err)
	}
	m := tr.Train(context.Background())
	if !m.ReachedStableLoss || m.Iterations != 2 {
		t.Errorf("got %+v", m)
	}
}

func TestNaNAborts(t *testing.T) {
	net := andNet(1)
	pairs := []datasets.Pair{
		datasets.NewPair([]float64{1, 1}, 1),
		datasets.NewPair([]float64{math.Inf(1), 1}, 0),
		datasets.NewPair([]float64{0, 1}, 0),
	}
	tr, err := New(net, pairs, HyperParameters{MaxIterations: 100})
	if err != nil {
		t.Fatal(err)
	}
	m := tr.Train(context.Background())
	if !m.ContainsNaN || m.Iterations != 1 || m.Success {
		t.Errorf("got %+v", m)
	}
	if m.Reason() != "nan" {
		t.Errorf("reason %q", m.Reason())
	}
}

func TestCancelledBetweenEpochs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr, err := New(andNet(0.5), andSet(), HyperParameters{MaxIterations: 100})
	if err != nil {
		t.Fatal(err)
	}
	m := tr.Train(ctx)
	if !m.Cancelled || m.Iterations != 0 {
		t.Errorf("got %+v", m)
	}
}

func TestConstructionErrors(t *testing.T) {
	if _, err := New(andNet(0.1), andSet(), HyperParameters{}); errors.Cause(err) != ErrNoStoppingCondition {
		t.Errorf("no stopping condition: %v", err)
	}
	if _, err := New(andNet(0.1), nil, HyperParameters{MaxIterations: 1}); errors.Cause(err) != ErrEmptyTrainingSet {
		t.Errorf("empty set: %v", err)
	}
	bad := []datasets.Pair{datasets.NewPair([]float64{1, 2, 3}, 1)}
	if _, err := New(andNet(0.1), bad, HyperParameters{MaxIterations: 1}); errors.Cause(err) != ErrShape {
		t.Errorf("shape: %v", err)
	}
}

func TestInputsAreNotMutated(t *testing.T) {
	pairs := andSet()
	tr, err := New(andNet(0.5), pairs, HyperParameters{MaxIterations: 20, Shuffle: true, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	tr.Train(context.Background())
	for i, p := range andSet() {
		for j := range p.Input {
			if pairs[i].Input[j] != p.Input[j] || pairs[i].Output[0] != p.Output[0] {
				t.Fatalf("pair %d was modified", i)
			}
		}
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	h := HyperParameters{MaxIterations: 4, LogEvery: 2}
	h.SetLogger(log.New(&buf, "", 0))
	tr, err := New(andNet(0.5), andSet(), h)
	if err != nil {
		t.Fatal(err)
	}
	tr.Train(context.Background())
	if got := strings.Count(buf.String(), "epoch"); got != 2 {
		t.Errorf("logged %d epochs:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "max iterations") {
		t.Errorf("missing summary:\n%s", buf.String())
	}
}

func TestEvaluate(t *testing.T) {
	net := andNet(0.5)
	losses := Evaluate(net, andSet())
	tr, err := New(net, andSet(), HyperParameters{MaxIterations: 1})
	if err != nil {
		t.Fatal(err)
	}
	m := tr.Train(context.Background())
	// the first example is trained on the untouched network
	if losses[0] != m.InitialLoss[0] {
		t.Errorf("evaluate %v, train %v", losses[0], m.InitialLoss[0])
	}
}
