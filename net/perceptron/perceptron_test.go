package perceptron

import "math/rand"
import "testing"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/loss"
import "github.com/neurlang/castrank/net/network"

func TestOutputWeights(t *testing.T) {
	p := New(4, 1, activation.New(activation.Sigmoid), network.Options{Rand: rand.New(rand.NewSource(1))})
	p.PinBias()
	if err := p.SetOutputWeights([]float64{1, 2, -1, -2}, 0); err != nil {
		t.Fatal(err)
	}
	w, b := p.OutputWeights()
	if w[1] != 2 || w[3] != -2 || b != 0 {
		t.Errorf("got %v %v", w, b)
	}
	if err := p.SetOutputWeights([]float64{1, 2, -1, -2}, 0.5); err == nil {
		t.Error("expected error for bias on pinned layer")
	}
	if err := p.SetOutputWeights([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for short weights")
	}
}

func TestTrainMovesTowardsTarget(t *testing.T) {
	p := New(2, 1, activation.New(activation.Sigmoid), network.Options{
		LearningRate: 0.5,
		Loss:         loss.New(loss.MeanSquaredError),
		Rand:         rand.New(rand.NewSource(3)),
	})
	in := []float64{1, -1}
	first := p.Train(in, []float64{0})
	var last float64
	for i := 0; i < 50; i++ {
		last = p.Train(in, []float64{0})
	}
	if last >= first {
		t.Errorf("loss %v did not fall below %v", last, first)
	}
}

func TestDescriptorKind(t *testing.T) {
	p := New(2, 1, activation.New(activation.Tanh), network.Options{})
	d := p.Describe()
	if d.Kind != network.Perceptron || d.LearningRate != network.DefaultLearningRate {
		t.Errorf("descriptor %+v", d)
	}
	d.Kind = network.Feedforward
	if _, err := FromDescriptor(d); err == nil {
		t.Error("expected kind error")
	}
}
