// Package netsimplex implements the network simplex method for the
// minimum-cost flow problem over an explicit arc list, the exact LP
// that the Earth Mover's Distance between two discrete mass
// distributions reduces to.
//
// Given signed node supplies that sum to zero, directed arcs with
// per-unit costs and optional capacities, the solver routes all supply
// to demand at provably minimum total cost and exposes the dual node
// potentials alongside the flows.
//
// # Algorithm
//
// The engine maintains a feasible spanning-tree basis rooted at a
// synthetic node and improves it one pivot at a time:
//
//   - Basis: the arc set is partitioned into tree arcs (flow free),
//     lower-bound arcs (flow 0) and upper-bound arcs (flow = capacity).
//     The tree is encoded in flat parallel arrays - parent, pred,
//     thread (depth-first pre-order as a cyclic list), revThread,
//     succNum, lastSucc, forward - so every pivot touches only integer
//     indices, never pointer structures.
//   - Pricing: an entering arc with negative signed reduced cost
//     state·(cost + π(src) − π(tgt)) is located by the block-search
//     rule (blocks of max(⌈√M⌉, 10) arcs behind a round-robin cursor);
//     Dantzig and first-eligible rules are available via Options.
//   - Pivot: the entering arc closes a unique cycle through the lowest
//     common ancestor of its endpoints. The leaving arc is the first
//     residual bottleneck along the cycle (strict < on one half, ≤ on
//     the other - the asymmetry is the anti-cycling rule), the flow is
//     augmented by the bottleneck delta, the cut subtree is re-rooted
//     onto the other endpoint with thread-order maintenance, and its
//     potentials get a uniform shift that re-tightens the new tree arc.
//   - Start: a star tree of artificial arcs to the root is feasible by
//     construction; a one-pass heuristic pivots cheap real arcs in
//     first, and any artificial still carrying flow at optimality
//     proves infeasibility.
//
// Complexity per pivot is O(block scan + cycle length + moved subtree);
// the block scan over the flat arc arrays dominates in practice, which
// is why all state is laid out as dense parallel slices.
//
// # API
//
//	s, err := netsimplex.NewSolver(nodes, arcs, netsimplex.DefaultOptions())
//	s.SetSupply(0, 1)
//	s.SetSupply(1, -1)
//	s.AddArc(0, 1, cost, netsimplex.Inf)
//	status, err := s.Solve()
//	s.Flows(), s.Potentials(), s.TotalCost()
//
// The solver is single-use and single-threaded: all buffers are
// allocated up front from the node and arc counts, Solve never yields,
// and no internal locking exists. Wrap Solve externally if
// cancellation is required.
//
// # Errors
//
//	ErrNoNodes, ErrNodeRange, ErrNegativeCapacity - invalid construction.
//	ErrUnbalanced      - Σ supply beyond Options.BalanceTolerance.
//	ErrInfeasible      - supplies cannot be routed over the given arcs.
//	ErrUnbounded       - negative-cost cycle of uncapacitated arcs.
//	ErrIterLimit       - Options.MaxIterations pivots were not enough.
//	ErrAlreadySolved   - the single-use lifecycle was violated.
//
// See the emd package for the Earth Mover's Distance wrapper that
// builds bipartite instances from mass histograms and cost matrices.
package netsimplex
