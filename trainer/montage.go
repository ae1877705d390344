package trainer

import "fmt"

import "gonum.org/v1/gonum/floats"

// Montage reports a finished training run
type Montage struct {
	Success              bool // every example fell below the loss threshold
	ReachedMaxIterations bool
	ReachedStableLoss    bool // losses stopped changing
	ContainsNaN          bool // a weight or bias became NaN or infinite, the network is unusable
	Cancelled            bool // the context ended between two epochs

	InitialLoss []float64 // per example, first epoch
	FinalLoss   []float64 // per example, last epoch
	Iterations  int
}

// Reason names the condition which ended the run
func (m Montage) Reason() string {
	switch {
	case m.ContainsNaN:
		return "nan"
	case m.Cancelled:
		return "cancelled"
	case m.Success:
		return "loss threshold"
	case m.ReachedStableLoss:
		return "stable loss"
	case m.ReachedMaxIterations:
		return "max iterations"
	}
	return "none"
}

// MaxFinalLoss returns the worst per example loss of the last epoch
func (m Montage) MaxFinalLoss() float64 {
	if len(m.FinalLoss) == 0 {
		return 0
	}
	return floats.Max(m.FinalLoss)
}

// MeanFinalLoss returns the mean per example loss of the last epoch
func (m Montage) MeanFinalLoss() float64 {
	if len(m.FinalLoss) == 0 {
		return 0
	}
	return floats.Sum(m.FinalLoss) / float64(len(m.FinalLoss))
}

func (m Montage) String() string {
	return fmt.Sprintf("stopped by %s after %d iterations, final loss mean %.6f max %.6f",
		m.Reason(), m.Iterations, m.MeanFinalLoss(), m.MaxFinalLoss())
}
