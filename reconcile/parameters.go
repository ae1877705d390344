// Package reconcile keeps a single output neuron in step with the domain
// importance parameters it was seeded from.
//
// Every domain parameter i owns the antisymmetric weight pair (w_i, -w_i) of
// the first and second half of a pairwise input vector. After training the
// pairs are decoded back into proposed parameter values which the user
// confirms or declines.
package reconcile

// Kind classifies a domain parameter
type Kind byte

const (
	// Importance is the overall importance scalar
	Importance Kind = iota
	// Suitability is the weight of one requirement
	Suitability
	// Cost is the penalty of already holding roles with a requirement. It is
	// expressed against the suitability parameter named by Parameter.Scale
	// and its weight is negative.
	Cost
)

func (k Kind) String() string {
	switch k {
	case Importance:
		return "importance"
	case Suitability:
		return "suitability"
	case Cost:
		return "cost"
	}
	return "unknown"
}

// Parameter describes one domain parameter and its current value
type Parameter struct {
	ID    string
	Name  string
	Kind  Kind
	Value float64
	Scale int // index of the suitability parameter of a Cost
}

// Parameters is the authoritative domain parameter set. Parameter i belongs
// to pairwise feature i.
type Parameters interface {
	Len() int
	Parameter(i int) Parameter
	Set(i int, value float64)
}

// Costs are kept within [MinCost, MaxCost]
const MinCost = 0.01
const MaxCost = 100

// CostToWeight converts an existing assignment cost into a network weight
func CostToWeight(cost, suitability float64) float64 {
	return -cost * suitability / 100
}

// WeightToCost is the inverse of CostToWeight
func WeightToCost(weight, suitability float64) float64 {
	return -weight * 100 / suitability
}
