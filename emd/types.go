// Package emd - types, sentinel errors and configuration options for
// the Earth Mover's Distance wrapper around the netsimplex engine.
package emd

import (
	"errors"

	"github.com/nathanneike/POT/netsimplex"
)

// Sentinel errors returned by the EMD wrapper.
var (
	// ErrEmptyHistogram indicates that a or b has no entries.
	ErrEmptyHistogram = errors.New("emd: histograms must be non-empty")

	// ErrNegativeMass indicates a negative entry in a or b.
	ErrNegativeMass = errors.New("emd: histogram masses must be non-negative")

	// ErrUnbalanced indicates that Σa and Σb differ beyond
	// Options.BalanceTolerance (relative). Pre-balance the histograms.
	ErrUnbalanced = errors.New("emd: histogram masses are not balanced")

	// ErrArcRange indicates an arc endpoint outside its histogram.
	ErrArcRange = errors.New("emd: arc endpoint out of range")

	// ErrDimensionMismatch indicates a cost matrix whose shape is not
	// len(a) × len(b).
	ErrDimensionMismatch = errors.New("emd: cost matrix dimensions must match the histograms")
)

// Arc is one allowed transport move: Source indexes the supply
// histogram a, Target indexes the demand histogram b, and Cost is the
// price of moving one unit of mass along it.
type Arc struct {
	Source int
	Target int
	Cost   float64
}

// Result is the outcome of an EMD computation.
//
// Flow is indexed like the input arc list (for SolveDense, arc i→j
// lives at i·len(b)+j and the returned plan is the friendlier view).
// U and V are the classical dual potentials: feasibility means
// U[i] + V[j] ≤ cost(i, j) on every allowed arc, and at optimality
// Σ a·U + Σ b·V = Cost.
type Result struct {
	Flow   []float64
	Cost   float64
	U, V   []float64
	Status netsimplex.Status
}

// Options configures an EMD computation.
//
// MaxIterations     - pivot cap forwarded to the engine; 0 keeps the
// default below rather than unbounded, matching the solver's role as
// a building block inside larger pipelines.
//
// BalanceTolerance  - tolerance on |Σa − Σb| relative to
// max(Σa, Σb, 1). Within it, b is rescaled by Σa/Σb; beyond it Solve
// rejects with ErrUnbalanced.
//
// Pivot             - entering-arc pricing rule of the engine.
type Options struct {
	MaxIterations    int
	BalanceTolerance float64
	Pivot            netsimplex.PivotRule
}

// DefaultOptions returns production-safe defaults:
//   - MaxIterations:    100000
//   - BalanceTolerance: 1e-9
//   - Pivot:            BlockSearch
func DefaultOptions() Options {
	return Options{
		MaxIterations:    defaultMaxIterations,
		BalanceTolerance: defaultBalanceTol,
		Pivot:            netsimplex.BlockSearch,
	}
}

const (
	defaultMaxIterations = 100000
	defaultBalanceTol    = 1e-9
)

// normalize fills zero-value fields with their defaults.
func (o *Options) normalize() {
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if o.BalanceTolerance <= 0 {
		o.BalanceTolerance = defaultBalanceTol
	}
}
