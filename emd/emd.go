package emd

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/nathanneike/POT/netsimplex"
)

// Solve computes the Earth Mover's Distance between the mass
// histograms a and b over an explicit sparse set of allowed transport
// arcs.
//
// Steps:
//  1. Validate both histograms (non-empty, non-negative) and balance
//     them: within Options.BalanceTolerance the demand side is rescaled
//     by Σa/Σb, beyond it ErrUnbalanced is returned.
//  2. Build a bipartite min-cost-flow instance: supply node per a
//     entry, demand node per b entry, one uncapacitated arc per input
//     Arc.
//  3. Run the network simplex engine and map its flows back onto the
//     input arc order.
//  4. Extract the classical duals U[i] = −π(i), V[j] = π(len(a)+j), so
//     that Σ a·U + Σ b·V equals the optimal cost.
//
// The returned error is nil iff Result.Status is OPTIMAL. On the
// iteration limit the partial (feasible, suboptimal) result is still
// populated alongside netsimplex.ErrIterLimit; an infeasible arc set -
// some mass has no arc to travel over - yields netsimplex.ErrInfeasible.
//
// Complexity: the engine's pivot loop over len(arcs) arcs; building
// the instance is O(len(a) + len(b) + len(arcs)).
func Solve(a, b []float64, arcs []Arc, opts Options) (Result, error) {
	opts.normalize()

	// 1) Histogram validation and balancing.
	scale, err := balanceFactor(a, b, opts.BalanceTolerance)
	if err != nil {
		return Result{}, err
	}
	na, nb := len(a), len(b)
	for _, arc := range arcs {
		if arc.Source < 0 || arc.Source >= na || arc.Target < 0 || arc.Target >= nb {
			return Result{}, ErrArcRange
		}
	}

	// 2) Bipartite instance: a-nodes first, then b-nodes.
	nsOpts := netsimplex.DefaultOptions()
	nsOpts.MaxIterations = opts.MaxIterations
	nsOpts.Pivot = opts.Pivot
	solver, err := netsimplex.NewSolver(na+nb, len(arcs), nsOpts)
	if err != nil {
		return Result{}, err
	}
	for i, mass := range a {
		if err = solver.SetSupply(i, mass); err != nil {
			return Result{}, err
		}
	}
	for j, mass := range b {
		if err = solver.SetSupply(na+j, -mass*scale); err != nil {
			return Result{}, err
		}
	}
	for _, arc := range arcs {
		if _, err = solver.AddArc(arc.Source, na+arc.Target, arc.Cost, netsimplex.Inf); err != nil {
			return Result{}, err
		}
	}

	// 3) Solve; the iteration limit still leaves a readable basis.
	status, solveErr := solver.Solve()
	res := Result{Status: status}
	if status != netsimplex.StatusOptimal && status != netsimplex.StatusIterLimit {
		return res, solveErr
	}

	// 4) Flows and duals in caller coordinates.
	res.Flow = solver.Flows()
	res.Cost = solver.TotalCost()
	res.U = make([]float64, na)
	res.V = make([]float64, nb)
	for i := range res.U {
		res.U[i] = -solver.Potential(i)
	}
	for j := range res.V {
		res.V[j] = solver.Potential(na + j)
	}

	return res, solveErr
}

// SolveDense computes the EMD over a full cost matrix C (len(a) rows,
// len(b) columns) and additionally returns the transport plan as a
// dense matrix whose (i, j) entry is the mass shipped from a[i] to
// b[j]. Row sums of the plan reproduce a and column sums reproduce
// the (rescaled) b.
//
// This is the dense counterpart of Solve: it materializes every
// bipartite arc, so prefer Solve with a sparse arc list when most
// moves are disallowed.
func SolveDense(a, b []float64, C mat.Matrix, opts Options) (*mat.Dense, Result, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, Result{}, ErrEmptyHistogram
	}
	rows, cols := C.Dims()
	if rows != len(a) || cols != len(b) {
		return nil, Result{}, ErrDimensionMismatch
	}

	arcs := make([]Arc, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			arcs = append(arcs, Arc{Source: i, Target: j, Cost: C.At(i, j)})
		}
	}

	res, err := Solve(a, b, arcs, opts)
	if res.Flow == nil {
		return nil, res, err
	}

	plan := mat.NewDense(rows, cols, nil)
	for k, arc := range arcs {
		if f := res.Flow[k]; f != 0 {
			plan.Set(arc.Source, arc.Target, f)
		}
	}

	return plan, res, err
}

// balanceFactor validates the histograms and returns the factor the
// demand masses are multiplied by so both sides carry the same total.
func balanceFactor(a, b []float64, tol float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyHistogram
	}
	var sa, sb float64
	for _, m := range a {
		if m < 0 || math.IsNaN(m) {
			return 0, ErrNegativeMass
		}
		sa += m
	}
	for _, m := range b {
		if m < 0 || math.IsNaN(m) {
			return 0, ErrNegativeMass
		}
		sb += m
	}

	// Both sides empty of mass: nothing to transport, factor is moot.
	if sa == 0 && sb == 0 {
		return 1, nil
	}
	limit := sa
	if sb > limit {
		limit = sb
	}
	if limit < 1 {
		limit = 1
	}
	if math.Abs(sa-sb) > tol*limit || sb == 0 || sa == 0 {
		return 0, ErrUnbalanced
	}

	return sa / sb, nil
}
