package trainer

import "io"
import "log"
import "os"

import "github.com/pkg/errors"

// HyperParameters configures a training run. At least one of MaxIterations,
// LossThreshold and ChangeThreshold must be positive.
type HyperParameters struct {
	MaxIterations   int     // stop after this many epochs
	LossThreshold   float64 // stop once the loss of every example is below this
	ChangeThreshold float64 // stop once no example's loss moves by this much between epochs

	Shuffle bool  // visit examples in a new random order each epoch
	Seed    int64 // seed of the shuffling source

	LogEvery int // log progress every this many epochs, 0 disables

	l *log.Logger
}

// SetLogger sets the progress logger, nil disables logging
func (h *HyperParameters) SetLogger(l *log.Logger) {
	h.l = l
}

// SetLogFile appends progress logs to filename
func (h *HyperParameters) SetLogFile(filename string) error {
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrap(err, "trainer: log file")
	}
	h.l = log.New(outfile, "", log.LstdFlags)
	return nil
}

func (h *HyperParameters) logger() *log.Logger {
	if h.l == nil {
		return log.New(io.Discard, "", 0)
	}
	return h.l
}

// Validate checks that the run is bounded
func (h *HyperParameters) Validate() error {
	if h.MaxIterations < 0 || h.LossThreshold < 0 || h.ChangeThreshold < 0 {
		return errors.Wrapf(ErrNoStoppingCondition, "negative value in %d/%v/%v",
			h.MaxIterations, h.LossThreshold, h.ChangeThreshold)
	}
	if h.MaxIterations == 0 && h.LossThreshold == 0 && h.ChangeThreshold == 0 {
		return ErrNoStoppingCondition
	}
	return nil
}
