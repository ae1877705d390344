package casting

import "sort"

import "gonum.org/v1/gonum/floats"

// Director casts by hidden taste, one weight per feature of the show
// encoder. It stands in for the user of the casting commands.
type Director struct {
	Taste []float64
}

// Score rates a for role with the director's taste
func (d Director) Score(s *Show, a *Applicant, role string) float64 {
	enc := s.Encoder()
	values := make([]float64, enc.Len())
	for i := range values {
		if s.Relevant(role, i) {
			values[i] = enc.Feature(i).Value(a)
		}
	}
	return floats.Dot(d.Taste, values)
}

// Pick casts the best uncast applicants for role and returns them with the
// applicants passed over.
func (d Director) Pick(s *Show, role string) (picked, notPicked []*Applicant) {
	r := s.Role(role)
	if r == nil {
		return nil, nil
	}
	var candidates []*Applicant
	for _, a := range s.Applicants {
		if !holds(a, role) {
			candidates = append(candidates, a)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return d.Score(s, candidates[i], role) > d.Score(s, candidates[j], role)
	})
	n := r.Count
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n], candidates[n:]
}

func holds(a *Applicant, role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
