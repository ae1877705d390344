package reconcile

import "math"
import "strings"
import "testing"

import "github.com/pkg/errors"

type params []Parameter

func (p params) Len() int { return len(p) }
func (p params) Parameter(i int) Parameter { return p[i] }
func (p params) Set(i int, v float64) { p[i].Value = v }

type model struct {
	w     []float64
	b     float64
	seeds int
}

func (m *model) OutputWeights() ([]float64, float64) {
	return append([]float64(nil), m.w...), m.b
}

func (m *model) SetOutputWeights(w []float64, b float64) error {
	if m.w != nil && len(w) != len(m.w) {
		return errors.New("bad length")
	}
	m.w = append([]float64(nil), w...)
	m.b = b
	m.seeds++
	return nil
}

func show() params {
	return params{
		{ID: "overall", Name: "Overall", Kind: Importance, Value: 1},
		{ID: "sing", Name: "Singing", Kind: Suitability, Value: 2},
		{ID: "sing-cost", Name: "Singing", Kind: Cost, Value: 25, Scale: 1},
	}
}

func TestCostRoundTrip(t *testing.T) {
	for _, s := range []float64{-3, 0.5, 1, 7} {
		for _, c := range []float64{0.01, 1, 33.3, 99.9} {
			if got := WeightToCost(CostToWeight(c, s), s); math.Abs(got-c) > 1e-9 {
				t.Errorf("cost %v at %v came back as %v", c, s, got)
			}
		}
	}
	if w := CostToWeight(50, 2); w != -1 {
		t.Errorf("weight = %v, want -1", w)
	}
}

func TestSeedIsAntisymmetric(t *testing.T) {
	r := New(show(), Always, nil)
	m := &model{b: 3}
	if err := r.Seed(m); err != nil {
		t.Fatal(err)
	}
	if m.b != 0 {
		t.Errorf("bias %v", m.b)
	}
	want := []float64{1, 2, -0.5}
	for i, w := range want {
		if m.w[i] != w || m.w[3+i] != -w {
			t.Errorf("pair %d = (%v, %v), want (%v, %v)", i, m.w[i], m.w[3+i], w, -w)
		}
	}
}

func TestDecodeOfSeedChangesNothing(t *testing.T) {
	p := show()
	r := New(p, Always, nil)
	changes, err := r.Decode(r.Weights(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 3 {
		t.Fatalf("got %d changes", len(changes))
	}
	for i, c := range changes {
		if math.Abs(c.NewValue-p[i].Value) > 1e-9 || c.Significant {
			t.Errorf("change %d: %+v", i, c)
		}
	}
}

func TestDecodeNormalizes(t *testing.T) {
	p := show()
	r := New(p, Always, nil)
	// overall tripled, singing untouched: the sum went from 3 to 5
	w := []float64{3, 2, -0.5, -3, -2, 0.5}
	changes, err := r.Decode(w, nil)
	if err != nil {
		t.Fatal(err)
	}
	sum := changes[0].NewValue + changes[1].NewValue
	if math.Abs(sum-3) > 1e-9 {
		t.Errorf("relevant sum %v, want 3", sum)
	}
	if changes[0].NewValue <= p[0].Value || changes[1].NewValue >= p[1].Value {
		t.Errorf("direction lost: %+v", changes)
	}
	// the cost weight was scaled with the rest, and read against the new singing weight
	ratio := 5.0 / 3
	wantCost := WeightToCost(-0.5/ratio, 2/ratio)
	if math.Abs(changes[2].NewValue-wantCost) > 1e-9 {
		t.Errorf("cost %v, want %v", changes[2].NewValue, wantCost)
	}
}

func TestDecodeOnlyRelevant(t *testing.T) {
	p := show()
	r := New(p, Always, nil)
	w := []float64{1, 4, -0.5, -1, -4, 0.5}
	changes, err := r.Decode(w, []bool{false, true, false})
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || changes[0].SubjectID != "sing" {
		t.Fatalf("got %+v", changes)
	}
	// a single relevant weight is normalized back onto itself
	if math.Abs(changes[0].NewValue-2) > 1e-9 {
		t.Errorf("got %v", changes[0].NewValue)
	}
}

func TestDecodeClampsPolarity(t *testing.T) {
	p := params{
		{ID: "a", Kind: Suitability, Value: 1},
		{ID: "b", Kind: Suitability, Value: 1},
	}
	r := New(p, Always, nil)
	r.Epsilon = 0.01
	changes, err := r.Decode([]float64{-1, 2, 1, -2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// a clamps to (0.01, -0.01), b averages to 2; ratio (2.01/2)
	if math.Abs(changes[0].NewValue-0.01/(2.01/2)) > 1e-9 {
		t.Errorf("a = %v", changes[0].NewValue)
	}
	if changes[0].NewValue <= 0 {
		t.Error("suitability weight lost its polarity")
	}
}

func TestDecodeClampsCost(t *testing.T) {
	p := params{
		{ID: "s", Kind: Suitability, Value: 1},
		{ID: "c", Kind: Cost, Value: 10, Scale: 0},
	}
	r := New(p, Always, nil)
	changes, err := r.Decode([]float64{1, -5, -1, 5}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if changes[1].NewValue != MaxCost {
		t.Errorf("cost %v, want %v", changes[1].NewValue, MaxCost)
	}
	r.Epsilon = 1e-5
	changes, err = r.Decode([]float64{1, 3, -1, -3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if changes[1].NewValue != MinCost {
		t.Errorf("cost %v, want %v", changes[1].NewValue, MinCost)
	}
}

func TestDecodeShape(t *testing.T) {
	r := New(show(), Always, nil)
	if _, err := r.Decode([]float64{1, 2}, nil); errors.Cause(err) != ErrShape {
		t.Errorf("got %v", err)
	}
}

func TestReloadPolicies(t *testing.T) {
	drift := []float64{3, 2, -0.5, -3, -2, 0.5}
	for _, tc := range []struct {
		policy  ReloadPolicy
		confirm bool
		reload  bool
	}{
		{Always, true, true},
		{Always, false, true},
		{OnChange, true, true},
		{OnChange, false, true},
		{OnlyWhenRefused, true, false},
		{OnlyWhenRefused, false, true},
	} {
		p := show()
		var asked string
		r := New(p, tc.policy, func(msg string) bool {
			asked = msg
			return tc.confirm
		})
		m := &model{w: append([]float64(nil), drift...)}
		o, err := r.Reconcile(m, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !o.Proposed || o.Confirmed != tc.confirm || o.Reloaded != tc.reload {
			t.Errorf("policy %d confirm %v: %+v", tc.policy, tc.confirm, o)
		}
		if asked == "" || !strings.Contains(asked, "Overall importance") {
			t.Errorf("message %q", asked)
		}
		if changed := p[0].Value != 1; changed != tc.confirm {
			t.Errorf("policy %d confirm %v: overall = %v", tc.policy, tc.confirm, p[0].Value)
		}
		if tc.reload && (m.seeds != 1 || m.w[0] != p[0].Value) {
			t.Errorf("model not reseeded: %v", m.w)
		}
		if !tc.reload && m.w[0] != drift[0] {
			t.Errorf("model reseeded: %v", m.w)
		}
	}
}

func TestNoProposalWithoutSignificantChange(t *testing.T) {
	p := show()
	called := false
	r := New(p, OnChange, func(string) bool {
		called = true
		return true
	})
	m := &model{}
	if err := r.Seed(m); err != nil {
		t.Fatal(err)
	}
	m.w[0] += 0.01
	m.w[3] -= 0.01
	o, err := r.Reconcile(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if called || o.Proposed || o.Reloaded || o.Message != "" {
		t.Errorf("got %+v", o)
	}
	if p[0].Value != 1 {
		t.Error("parameters changed without confirmation")
	}
}

func TestNilConfirmDeclines(t *testing.T) {
	p := show()
	r := New(p, OnlyWhenRefused, nil)
	m := &model{w: []float64{3, 2, -0.5, -3, -2, 0.5}}
	o, err := r.Reconcile(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if o.Confirmed || !o.Reloaded || p[0].Value != 1 {
		t.Errorf("got %+v", o)
	}
}

func TestParseReloadPolicy(t *testing.T) {
	for _, p := range []ReloadPolicy{Always, OnChange, OnlyWhenRefused} {
		if got, err := ParseReloadPolicy(p.String()); err != nil || got != p {
			t.Errorf("%v: got %v %v", p, got, err)
		}
	}
	if _, err := ParseReloadPolicy("never"); err == nil {
		t.Error("expected error")
	}
}
