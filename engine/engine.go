// Package engine ranks entities for a context and learns from the choices a
// user makes. A SuitabilityEngine is one of a closed set of variants picked
// by Kind when it is built.
package engine

import "context"
import "fmt"
import "io"
import "log"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/net/network"
import "github.com/neurlang/castrank/pairwise"
import "github.com/neurlang/castrank/reconcile"
import "github.com/neurlang/castrank/trainer"

// SuitabilityEngine compares entities E within a context C and turns user
// decisions into training pairs kept in a caller owned session.
type SuitabilityEngine[E any, C comparable] interface {

	// Compare returns 1 when a suits the context better than b, -1 when b
	// does and 0 when the engine cannot tell.
	Compare(a, b E, role C) int

	// UserDecision records that every picked entity was preferred over every
	// entity not picked for role.
	UserDecision(s *datasets.Session, picked, notPicked []E, role C)

	// ExportChanges trains on the session and reports what it learned. The
	// session is consumed only when the export succeeds.
	ExportChanges(ctx context.Context, s *datasets.Session) (Report, error)
}

// Learner is implemented by the variants that own a network
type Learner interface {
	Network() network.Network
}

// Kind selects the engine variant
type Kind byte

const (
	// WeightedAverage scores entities by the domain weights, it does not learn
	WeightedAverage Kind = iota
	// Neural keeps a single output perceptron in step with the domain weights
	Neural
	// Deep trains a multi-layer network and never proposes domain changes
	Deep
)

func (k Kind) String() string {
	switch k {
	case WeightedAverage:
		return "weighted"
	case Neural:
		return "neural"
	case Deep:
		return "deep"
	}
	return "unknown"
}

// ParseKind parses the String form of a Kind
func ParseKind(name string) (Kind, error) {
	for k := WeightedAverage; k <= Deep; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrKind, "%q", name)
}

// Scope decides which session pairs a learning engine trains on
type Scope byte

const (
	// SessionScope trains on every pair of the session
	SessionScope Scope = iota
	// RoleScope trains only on the pairs of the most recent context
	RoleScope
)

var ErrKind = errors.New("engine: unknown kind")
var ErrConfig = errors.New("engine: invalid configuration")
var ErrDiverged = errors.New("engine: training produced NaN weights")

// Config configures New. Encoder is always required, Parameters for the
// WeightedAverage and Neural kinds.
type Config[E any, C comparable] struct {
	Kind    Kind
	Scope   Scope
	Encoder *pairwise.Encoder[E, C]

	ID   func(E) string // memo key of cached comparisons, nil disables caching
	Name func(C) string // session context name, nil uses fmt.Sprint

	Parameters reconcile.Parameters
	Policy     reconcile.ReloadPolicy
	Confirm    reconcile.Confirm

	Hyper   trainer.HyperParameters
	Options network.Options

	Hidden     []int               // hidden layer sizes of Deep
	Activation activation.Function // hidden activation of Deep
	Network    network.Network     // resumed Deep network, nil builds a fresh one

	Logger *log.Logger
}

func (c *Config[E, C]) name(role C) string {
	if c.Name == nil {
		return fmt.Sprint(role)
	}
	return c.Name(role)
}

func (c *Config[E, C]) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}

// Report summarizes one ExportChanges call
type Report struct {
	Pairs   int               // pairs trained on
	Montage trainer.Montage   // zero when nothing was trained
	Outcome reconcile.Outcome // Neural only
}

// Trained reports whether any training happened
func (r Report) Trained() bool {
	return r.Montage.Iterations > 0
}

// New builds the engine variant selected by cfg.Kind
func New[E any, C comparable](cfg Config[E, C]) (SuitabilityEngine[E, C], error) {
	if cfg.Encoder == nil {
		return nil, errors.Wrap(ErrConfig, "no encoder")
	}
	if cfg.Kind != Deep {
		if cfg.Parameters == nil {
			return nil, errors.Wrapf(ErrConfig, "%s engine without parameters", cfg.Kind)
		}
		if cfg.Parameters.Len() != cfg.Encoder.Len() {
			return nil, errors.Wrapf(ErrConfig, "%d parameters for %d features",
				cfg.Parameters.Len(), cfg.Encoder.Len())
		}
	}
	switch cfg.Kind {
	case WeightedAverage:
		return newWeighted(cfg), nil
	case Neural:
		e, err := newNeural(cfg)
		if err != nil {
			return nil, err
		}
		return e, nil
	case Deep:
		e, err := newDeep(cfg)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, errors.Wrapf(ErrKind, "%d", cfg.Kind)
}
