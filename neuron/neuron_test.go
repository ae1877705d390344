package neuron

import "math"
import "math/rand"
import "testing"

func TestInitialRange(t *testing.T) {
	n := New(50, rand.New(rand.NewSource(1)))
	for i := 0; i < n.Len(); i++ {
		if w := n.Weight(i); w < InitialMin || w >= InitialMax {
			t.Fatalf("weight %d = %v out of range", i, w)
		}
	}
	if b := n.Bias(); b < InitialMin || b >= InitialMax {
		t.Fatalf("bias %v out of range", b)
	}
}

func TestSeededNeuronsAreEqual(t *testing.T) {
	a := New(5, rand.New(rand.NewSource(7)))
	b := New(5, rand.New(rand.NewSource(7)))
	for i := 0; i < 5; i++ {
		if a.Weight(i) != b.Weight(i) {
			t.Fatal("same seed produced different weights")
		}
	}
}

func TestWeightedSum(t *testing.T) {
	n := FromWeights([]float64{1, -2, 0.5}, 0.25)
	if got := n.WeightedSum([]float64{2, 1, 4}); got != 2.25 {
		t.Errorf("weighted sum = %v, want 2.25", got)
	}
}

func TestUpdate(t *testing.T) {
	n := FromWeights([]float64{1, 1}, 1)
	n.Update([]float64{1, 2}, 0.5, 0.1, false)
	if math.Abs(n.Weight(0)-0.95) > 1e-15 || math.Abs(n.Weight(1)-0.9) > 1e-15 || math.Abs(n.Bias()-0.95) > 1e-15 {
		t.Errorf("unexpected update result %v %v", n.Weights(), n.Bias())
	}
	n.SetBias(0)
	n.Update([]float64{1, 2}, 0.5, 0.1, true)
	if n.Bias() != 0 {
		t.Errorf("pinned bias moved to %v", n.Bias())
	}
}

func TestArityMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on input length mismatch")
		}
	}()
	FromWeights([]float64{1, 2}, 0).WeightedSum([]float64{1})
}

func TestHasNaN(t *testing.T) {
	n := FromWeights([]float64{1, 2}, 0)
	if n.HasNaN() {
		t.Fatal("finite neuron reported NaN")
	}
	n.SetWeights([]float64{1, math.Inf(1)})
	if !n.HasNaN() {
		t.Error("infinite weight not reported")
	}
	n.SetWeights([]float64{1, 2})
	n.SetBias(math.NaN())
	if !n.HasNaN() {
		t.Error("NaN bias not reported")
	}
}

func TestDotMatchesLoop(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := make([]float64, 33)
	b := make([]float64, 33)
	for i := range a {
		a[i], b[i] = rng.NormFloat64(), rng.NormFloat64()
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	if d := Dot(a, b) - sum; math.Abs(d) > 1e-12 {
		t.Errorf("dot differs from the loop by %v", d)
	}
}
