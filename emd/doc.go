// Package emd computes the Earth Mover's Distance (the discrete
// optimal-transport optimum) between two non-negative mass histograms,
// layered on the network simplex engine of the netsimplex package.
//
// Two entry points cover the usual shapes of the problem:
//
//   - Solve - sparse: an explicit list of allowed transport arcs with
//     per-unit costs. This is the right call when the cost structure is
//     sparsified upfront (nearest-neighbour arcs, thresholded plans),
//     because the engine's work scales with the arc count.
//
//   - SolveDense - a full cost matrix (gonum mat.Matrix) over all
//     source/sink pairs, returning the transport plan as a *mat.Dense
//     alongside the shared Result.
//
// Both return the optimum cost, the per-arc flows, and the dual
// potential pair (U, V) satisfying U[i] + V[j] ≤ cost(i, j) with
// Σ a·U + Σ b·V = Cost at optimality - the certificate that the plan
// is truly optimal.
//
// # Balancing
//
// The transport LP needs Σa = Σb. Exact equality is brittle under
// floating point, so the wrapper rescales b by Σa/Σb when the imbalance
// |Σa − Σb| is within Options.BalanceTolerance·max(Σa, Σb, 1) and
// rejects with
// ErrUnbalanced beyond it. Callers with deliberately unbalanced masses
// must pre-process (add a slack bin or normalize both sides).
//
// # Example
//
//	a := []float64{0.5, 0.5}
//	b := []float64{0.5, 0.5}
//	C := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
//	plan, res, err := emd.SolveDense(a, b, C, emd.DefaultOptions())
//	// res.Cost == 0, plan keeps all mass in place
//
// # Errors
//
//	ErrEmptyHistogram, ErrNegativeMass, ErrArcRange,
//	ErrDimensionMismatch - input shape violations.
//	ErrUnbalanced        - Σa and Σb differ beyond the tolerance.
//	netsimplex.ErrInfeasible - some mass has no allowed arc to leave by.
//	netsimplex.ErrIterLimit  - pivot cap hit; the partial result is
//	                           feasible but not proven optimal.
package emd
