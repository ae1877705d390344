package activation

import "math"
import "testing"

func TestCalculate(t *testing.T) {
	for _, tc := range []struct {
		f    Function
		x    float64
		want float64
	}{
		{New(Sigmoid), 0, 0.5},
		{New(Tanh), 0, 0},
		{New(ReLU), -2, 0},
		{New(ReLU), 3, 3},
		{New(LeakyReLU), -2, -0.02},
		{Function{Kind: LeakyReLU, Alpha: 0.1}, -2, -0.2},
		{New(ELU), 1.5, 1.5},
		{Function{Kind: ELU, Alpha: 2}, math.Log(0.5), -1},
	} {
		if got := tc.f.Calculate(tc.x); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%v(%v) = %v, want %v", tc.f.Kind, tc.x, got, tc.want)
		}
	}
}

// derivative from output must match a numeric derivative of Calculate
func TestDerivativeMatchesNumeric(t *testing.T) {
	const h = 1e-6
	for _, f := range []Function{New(Sigmoid), New(Tanh), New(ReLU), New(LeakyReLU), New(ELU), {Kind: ELU, Alpha: 0.5}} {
		for _, x := range []float64{-1.7, -0.3, 0.4, 2.2} {
			numeric := (f.Calculate(x+h) - f.Calculate(x-h)) / (2 * h)
			got := f.Derivative(f.Calculate(x))
			if math.Abs(numeric-got) > 1e-5 {
				t.Errorf("%v derivative at %v: %v, numeric %v", f.Kind, x, got, numeric)
			}
		}
	}
}

func TestParseKind(t *testing.T) {
	for k := Sigmoid; k <= ELU; k++ {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatal(err)
		}
		if parsed != k {
			t.Errorf("parsed %v as %v", k, parsed)
		}
	}
	if _, err := ParseKind("softmax"); err == nil {
		t.Error("expected error for unknown activation")
	}
}
