package loader

import "bytes"
import "math/rand"
import "path/filepath"
import "testing"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/loss"
import "github.com/neurlang/castrank/net/feedforward"
import "github.com/neurlang/castrank/net/network"
import "github.com/neurlang/castrank/net/perceptron"

func trainedFeedforward() *feedforward.FeedforwardNetwork {
	net := feedforward.New(3, network.Options{
		LearningRate: 0.3,
		Loss:         loss.NewClassification(0.4),
		Rand:         rand.New(rand.NewSource(11)),
	})
	net.NewLayer(4, activation.Function{Kind: activation.ELU, Alpha: 0.7})
	net.NewLayer(2, activation.New(activation.Sigmoid))
	for i := 0; i < 20; i++ {
		net.Train([]float64{0.1 * float64(i), 1, -0.5}, []float64{1, 0})
	}
	return net
}

func samePredictions(t *testing.T, a, b network.Network) {
	t.Helper()
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 10; i++ {
		in := make([]float64, a.Inputs())
		for j := range in {
			in[j] = rng.NormFloat64()
		}
		pa, pb := a.Predict(in), b.Predict(in)
		for j := range pa {
			if pa[j] != pb[j] {
				t.Fatalf("prediction %d differs: %v != %v", j, pa[j], pb[j])
			}
		}
	}
}

func TestTextRoundTripIsExact(t *testing.T) {
	net := trainedFeedforward()
	var buf bytes.Buffer
	if err := Save(&buf, net); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	restored, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	samePredictions(t, net, restored)
	if restored.Loss() != net.Loss() {
		t.Errorf("loss %v restored as %v", net.Loss(), restored.Loss())
	}
	var again bytes.Buffer
	if err := Save(&again, restored); err != nil {
		t.Fatal(err)
	}
	if again.String() != text {
		t.Error("second save differs from first")
	}
}

func TestCompressedFileRoundTrip(t *testing.T) {
	p := perceptron.New(4, 1, activation.New(activation.Sigmoid), network.Options{Rand: rand.New(rand.NewSource(2))})
	p.PinBias()
	name := filepath.Join(t.TempDir(), "model.txt.lzw")
	if err := SaveFile(name, p); err != nil {
		t.Fatal(err)
	}
	restored, err := LoadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	rp, ok := restored.(*perceptron.Perceptron)
	if !ok {
		t.Fatalf("restored a %T", restored)
	}
	if !rp.Layer().PinnedBias() {
		t.Error("pinned bias lost")
	}
	samePredictions(t, p, rp)
}

func TestUnknownKind(t *testing.T) {
	_, err := Build(network.Descriptor{Kind: "recurrent"})
	if errors.Cause(err) != ErrKind {
		t.Errorf("got %v", err)
	}
}

func TestMalformedStream(t *testing.T) {
	for _, s := range []string{
		"",
		"castrank-network\nkind perceptron\n",
		"castrank-network\nkind perceptron\nloss mse 0\nrate 0.1\nlayers 1\nlayer 2 1 sigmoid 0 false\nneuron 0 1\n",
		"castrank-network\nkind perceptron\nloss hinge 0\n",
	} {
		if _, err := Load(bytes.NewBufferString(s)); errors.Cause(err) != network.ErrFormat {
			t.Errorf("%q: got %v", s, err)
		}
	}
}
