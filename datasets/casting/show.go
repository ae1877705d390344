package casting

import "fmt"
import "math/rand"

import "github.com/google/uuid"

import "github.com/neurlang/castrank/pairwise"
import "github.com/neurlang/castrank/reconcile"

// MaxMark is the best mark an applicant can get for a criterion
const MaxMark = 100

// Applicant auditioned for the show
type Applicant struct {
	ID    uuid.UUID
	Name  string
	Marks []float64 // one mark per show criterion
	Roles []string  // roles already cast
}

// Criterion is something applicants are marked on
type Criterion struct {
	Name        string
	Suitability float64 // weight of the mark for roles requiring it
	Cost        float64 // penalty of already holding roles requiring it
}

// Role is cast from applicants with the required criteria
type Role struct {
	Name         string
	Requirements []int // criterion indexes
	Count        int   // applicants needed
}

// Show holds the weights the applicants are ranked by. Its weights are
// exposed as reconcile.Parameters in feature order: the overall importance,
// one suitability per criterion, one cost per criterion.
type Show struct {
	Overall    float64
	Criteria   []Criterion
	Roles      []Role
	Applicants []*Applicant
}

// Role gets a role by name
func (s *Show) Role(name string) *Role {
	for i := range s.Roles {
		if s.Roles[i].Name == name {
			return &s.Roles[i]
		}
	}
	return nil
}

// Requires reports whether the role requires criterion c
func (r *Role) Requires(c int) bool {
	for _, req := range r.Requirements {
		if req == c {
			return true
		}
	}
	return false
}

// Cast records that the applicants got role
func (s *Show) Cast(role string, applicants ...*Applicant) {
	for _, a := range applicants {
		a.Roles = append(a.Roles, role)
	}
}

// Held counts the roles of a requiring criterion c
func (s *Show) Held(a *Applicant, c int) (n int) {
	for _, name := range a.Roles {
		if r := s.Role(name); r != nil && r.Requires(c) {
			n++
		}
	}
	return
}

// Len returns the number of features and parameters
func (s *Show) Len() int {
	return 1 + 2*len(s.Criteria)
}

// criterion maps a feature index to its criterion and whether it is a cost
func (s *Show) criterion(i int) (c int, cost bool) {
	i--
	if i >= len(s.Criteria) {
		return i - len(s.Criteria), true
	}
	return i, false
}

// Parameter describes the i-th weight
func (s *Show) Parameter(i int) reconcile.Parameter {
	if i == 0 {
		return reconcile.Parameter{ID: "overall", Name: "Overall", Kind: reconcile.Importance, Value: s.Overall}
	}
	c, cost := s.criterion(i)
	crit := s.Criteria[c]
	if cost {
		return reconcile.Parameter{ID: "cost:" + crit.Name, Name: crit.Name, Kind: reconcile.Cost, Value: crit.Cost, Scale: 1 + c}
	}
	return reconcile.Parameter{ID: "suitability:" + crit.Name, Name: crit.Name, Kind: reconcile.Suitability, Value: crit.Suitability}
}

// Set replaces the i-th weight
func (s *Show) Set(i int, value float64) {
	if i == 0 {
		s.Overall = value
		return
	}
	c, cost := s.criterion(i)
	if cost {
		s.Criteria[c].Cost = value
	} else {
		s.Criteria[c].Suitability = value
	}
}

// Relevant reports whether feature i is used when casting role. The overall
// mark always is.
func (s *Show) Relevant(role string, i int) bool {
	if i == 0 {
		return true
	}
	r := s.Role(role)
	if r == nil {
		return false
	}
	c, _ := s.criterion(i)
	return r.Requires(c)
}

// Overall mark of an applicant, the mean of all marks
type overall struct{}

func (overall) Value(a *Applicant) float64 {
	if len(a.Marks) == 0 {
		return 0
	}
	var sum float64
	for _, m := range a.Marks {
		sum += m
	}
	return sum / float64(len(a.Marks)) / MaxMark
}

func (o overall) Describe(a *Applicant) string {
	return fmt.Sprintf("%s overall %.0f", a.Name, o.Value(a)*MaxMark)
}

type mark struct {
	c    int
	name string
}

func (m mark) Value(a *Applicant) float64 {
	return a.Marks[m.c] / MaxMark
}

func (m mark) Describe(a *Applicant) string {
	return fmt.Sprintf("%s %s %.0f", a.Name, m.name, a.Marks[m.c])
}

type held struct {
	show *Show
	c    int
}

func (h held) Value(a *Applicant) float64 {
	return float64(h.show.Held(a, h.c))
}

func (h held) Describe(a *Applicant) string {
	return fmt.Sprintf("%s holds %d %s roles", a.Name, h.show.Held(a, h.c), h.show.Criteria[h.c].Name)
}

// Encoder builds the pairwise encoder of applicants compared for a role
func (s *Show) Encoder() *pairwise.Encoder[*Applicant, string] {
	features := []pairwise.Feature[*Applicant]{overall{}}
	for c, crit := range s.Criteria {
		features = append(features, mark{c: c, name: crit.Name})
	}
	for c := range s.Criteria {
		features = append(features, held{show: s, c: c})
	}
	return pairwise.NewEncoder[*Applicant, string](pairwise.RelevanceFunc[string](s.Relevant), features...)
}

// ID is the memo key of an applicant
func ID(a *Applicant) string {
	return a.ID.String()
}

var names = [...]string{"Ada", "Ben", "Cleo", "Dev", "Elin", "Finn", "Gia", "Hugo", "Ines", "Jon", "Kira", "Leo"}

// Sample creates a show of singing, acting and dancing roles with n
// applicants marked at random.
func Sample(n int, rng *rand.Rand) *Show {
	s := &Show{
		Overall: 1,
		Criteria: []Criterion{
			{Name: "Singing", Suitability: 1, Cost: 10},
			{Name: "Acting", Suitability: 1, Cost: 10},
			{Name: "Dancing", Suitability: 1, Cost: 10},
		},
		Roles: []Role{
			{Name: "Lead", Requirements: []int{0, 1}, Count: 1},
			{Name: "Villain", Requirements: []int{1}, Count: 1},
			{Name: "Chorus", Requirements: []int{0, 2}, Count: 3},
			{Name: "Ensemble", Requirements: []int{2}, Count: 2},
		},
	}
	for i := 0; i < n; i++ {
		a := &Applicant{
			ID:    uuid.New(),
			Name:  fmt.Sprintf("%s %d", names[i%len(names)], i/len(names)+1),
			Marks: make([]float64, len(s.Criteria)),
		}
		for c := range a.Marks {
			a.Marks[c] = float64(rng.Intn(MaxMark + 1))
		}
		s.Applicants = append(s.Applicants, a)
	}
	return s
}
