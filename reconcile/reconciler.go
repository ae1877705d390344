package reconcile

import "io"
import "log"
import "math"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

// DefaultEpsilon is the smallest magnitude a decoded weight keeps
const DefaultEpsilon = 0.001

// ReloadPolicy decides when the network is re-seeded from the domain
// parameters after a reconciliation pass
type ReloadPolicy byte

const (
	// Always re-seeds, unconfirmed drift never survives a pass
	Always ReloadPolicy = iota
	// OnChange re-seeds whenever a change was proposed, confirmed or not
	OnChange
	// OnlyWhenRefused re-seeds only when the user declined
	OnlyWhenRefused
)

var policies = [...]string{
	Always:          "always",
	OnChange:        "onchange",
	OnlyWhenRefused: "refused",
}

func (p ReloadPolicy) String() string {
	if int(p) < len(policies) {
		return policies[p]
	}
	return "unknown"
}

// ParseReloadPolicy parses the String form of a policy
func ParseReloadPolicy(name string) (ReloadPolicy, error) {
	for p, v := range policies {
		if v == name {
			return ReloadPolicy(p), nil
		}
	}
	return 0, errors.Errorf("reconcile: unknown reload policy %q", name)
}

// Model is a network with a single output neuron whose weights can be read and replaced
type Model interface {
	OutputWeights() ([]float64, float64)
	SetOutputWeights(weights []float64, bias float64) error
}

// Confirm asks the user to accept the proposed changes described by message
type Confirm func(message string) bool

// ErrShape is returned when the model does not have two weights per parameter
var ErrShape = errors.New("reconcile: model does not match the parameter set")

// Reconciler converts between domain parameters and network weights
type Reconciler struct {
	params  Parameters
	Policy  ReloadPolicy
	Epsilon float64
	Confirm Confirm // nil declines every proposal

	l *log.Logger
}

// New creates a reconciler over params
func New(params Parameters, policy ReloadPolicy, confirm Confirm) *Reconciler {
	return &Reconciler{params: params, Policy: policy, Epsilon: DefaultEpsilon, Confirm: confirm}
}

// SetLogger sets the logger of reconciliation passes
func (r *Reconciler) SetLogger(l *log.Logger) {
	r.l = l
}

func (r *Reconciler) logger() *log.Logger {
	if r.l == nil {
		return log.New(io.Discard, "", 0)
	}
	return r.l
}

// Len returns the number of parameters
func (r *Reconciler) Len() int {
	return r.params.Len()
}

// weight returns the network weight of parameter p
func (r *Reconciler) weight(p Parameter) float64 {
	if p.Kind == Cost {
		return CostToWeight(p.Value, r.params.Parameter(p.Scale).Value)
	}
	return p.Value
}

// Weights returns the seed vector (w_0..w_n-1, -w_0..-w_n-1)
func (r *Reconciler) Weights() []float64 {
	n := r.params.Len()
	w := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		w[i] = r.weight(r.params.Parameter(i))
		w[n+i] = -w[i]
	}
	return w
}

// Seed writes the domain parameters into m with a zero bias
func (r *Reconciler) Seed(m Model) error {
	if err := m.SetOutputWeights(r.Weights(), 0); err != nil {
		return errors.Wrap(ErrShape, err.Error())
	}
	return nil
}

func (r *Reconciler) epsilon() float64 {
	if r.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return r.Epsilon
}

// Undirected clamps every weight pair to its polarity and averages it into
// one weight per parameter. Costs keep a negative first half.
func (r *Reconciler) Undirected(weights []float64) ([]float64, error) {
	n := r.params.Len()
	if len(weights) != 2*n {
		return nil, errors.Wrapf(ErrShape, "%d weights for %d parameters", len(weights), n)
	}
	eps := r.epsilon()
	avg := make([]float64, n)
	for i := 0; i < n; i++ {
		a, b := weights[i], weights[n+i]
		if r.params.Parameter(i).Kind == Cost {
			a, b = math.Min(a, -eps), math.Max(b, eps)
		} else {
			a, b = math.Max(a, eps), math.Min(b, -eps)
		}
		avg[i] = (a - b) / 2
	}
	return avg, nil
}

func isRelevant(relevant []bool, i int) bool {
	return relevant == nil || (i < len(relevant) && relevant[i])
}

// Decode turns trained weights into proposed values of the relevant
// parameters, a nil relevant means all of them. The relevant importance and
// suitability weights are scaled to keep their old sum; cost weights are
// scaled alike so the separator keeps its direction, then converted back to
// costs against the new suitability values.
func (r *Reconciler) Decode(weights []float64, relevant []bool) ([]WeightChange, error) {
	avg, err := r.Undirected(weights)
	if err != nil {
		return nil, err
	}
	n := r.params.Len()
	var oldSum, newSum []float64
	for i := 0; i < n; i++ {
		p := r.params.Parameter(i)
		if !isRelevant(relevant, i) || p.Kind == Cost {
			continue
		}
		oldSum = append(oldSum, p.Value)
		newSum = append(newSum, avg[i])
	}
	if len(oldSum) > 0 {
		ratio := floats.Sum(newSum) / floats.Sum(oldSum)
		if ratio > 0 && !math.IsInf(ratio, 0) {
			for i := 0; i < n; i++ {
				if isRelevant(relevant, i) {
					avg[i] /= ratio
				}
			}
		} else {
			r.logger().Printf("reconcile: skipping normalization, ratio %v", ratio)
		}
	}

	var changes []WeightChange
	for i := 0; i < n; i++ {
		if !isRelevant(relevant, i) {
			continue
		}
		p := r.params.Parameter(i)
		value := avg[i]
		if p.Kind == Cost {
			s := r.params.Parameter(p.Scale).Value
			if isRelevant(relevant, p.Scale) {
				s = avg[p.Scale]
			}
			if s == 0 {
				continue
			}
			value = math.Max(MinCost, math.Min(MaxCost, WeightToCost(value, s)))
		}
		changes = append(changes, newChange(i, p, value))
	}
	return changes, nil
}

// Outcome reports one reconciliation pass
type Outcome struct {
	Changes   []WeightChange
	Message   string // text shown to the user, empty when nothing was proposed
	Proposed  bool   // at least one change was significant
	Confirmed bool   // the user accepted and the parameters were updated
	Reloaded  bool   // the model was re-seeded from the parameters
}

// Reconcile decodes the model, asks for confirmation when a change is
// significant, commits accepted changes and re-seeds the model as the
// reload policy demands.
func (r *Reconciler) Reconcile(m Model, relevant []bool) (o Outcome, err error) {
	weights, _ := m.OutputWeights()
	o.Changes, err = r.Decode(weights, relevant)
	if err != nil {
		return o, err
	}
	o.Proposed = len(Significant(o.Changes)) > 0
	if o.Proposed {
		o.Message = Message(o.Changes)
		if r.Confirm != nil {
			o.Confirmed = r.Confirm(o.Message)
		}
		if o.Confirmed {
			for _, c := range o.Changes {
				r.params.Set(c.index, c.NewValue)
			}
		}
		r.logger().Printf("reconcile: %d changes proposed, confirmed %v", len(Significant(o.Changes)), o.Confirmed)
	}
	switch r.Policy {
	case Always:
		o.Reloaded = true
	case OnChange:
		o.Reloaded = o.Proposed
	case OnlyWhenRefused:
		o.Reloaded = o.Proposed && !o.Confirmed
	}
	if o.Reloaded {
		if err := r.Seed(m); err != nil {
			return o, err
		}
	}
	return o, nil
}
