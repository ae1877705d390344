package reconcile

import "fmt"
import "math"
import "strings"

// SignificantChange is the smallest difference a user is asked about
const SignificantChange = 0.1

// WeightChange proposes a new value for one domain parameter
type WeightChange struct {
	SubjectID   string
	Description string
	OldValue    float64
	NewValue    float64
	Significant bool

	index int
}

func newChange(i int, p Parameter, value float64) WeightChange {
	return WeightChange{
		SubjectID:   p.ID,
		Description: fmt.Sprintf("%s %s from %.2f to %.2f", p.Name, p.Kind, p.Value, value),
		OldValue:    p.Value,
		NewValue:    value,
		Significant: math.Abs(value-p.Value) > SignificantChange,
		index:       i,
	}
}

// Significant filters the significant changes
func Significant(changes []WeightChange) (o []WeightChange) {
	for _, c := range changes {
		if c.Significant {
			o = append(o, c)
		}
	}
	return
}

// Message composes the confirmation text of changes
func Message(changes []WeightChange) string {
	var b strings.Builder
	b.WriteString("Based on your casting decisions the following weights should change:\n")
	var minor int
	for _, c := range changes {
		if !c.Significant {
			minor++
			continue
		}
		b.WriteString("- ")
		b.WriteString(c.Description)
		b.WriteByte('\n')
	}
	if minor > 0 {
		fmt.Fprintf(&b, "along with %d minor adjustments.\n", minor)
	}
	b.WriteString("Do you want to apply these changes?")
	return b.String()
}
