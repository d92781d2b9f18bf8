// Package pot is a Go optimal-transport toolkit: compute the Earth
// Mover's Distance between discrete mass distributions, or solve the
// underlying minimum-cost flow problem directly, with exact network
// simplex pivoting.
//
// What lives where:
//
//	netsimplex/ — the core engine: spanning-tree basis, block-search
//	              pricing, cycle augmentation, thread-order tree
//	              restructuring, dual potentials
//	emd/        — Earth Mover's Distance wrapper: histogram balancing,
//	              sparse arc lists or dense gonum cost matrices,
//	              transport plans and the (U, V) dual certificate
//	cmd/emdcli/ — DIMACS-like command-line front end
//
// Why network simplex?
//
//   - Exact optima with a duality certificate, not a regularized
//     approximation
//   - Flat parallel-array state, allocated once per solve - no pointer
//     graphs, no GC churn in the pivot loop
//   - Sparse by construction: the work scales with the arcs you allow,
//     which is what makes thresholded transport plans cheap
//
// Quick start:
//
//	a := []float64{0.5, 0.5}
//	b := []float64{0.5, 0.5}
//	C := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
//	plan, res, err := emd.SolveDense(a, b, C, emd.DefaultOptions())
//
// See netsimplex for the solver-level API and emd for the wrapper
// contract.
//
//	go get github.com/nathanneike/POT
package pot
