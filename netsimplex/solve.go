package netsimplex

import (
	"fmt"
	"math"
)

// Solve runs the network simplex method over the arcs and supplies
// declared so far and returns the terminal status.
//
// Steps:
//  1. Build the star-tree basis with artificial arcs (initBasis);
//     rejects unbalanced supplies with ErrUnbalanced.
//  2. Instantiate the pricing rule selected by Options.Pivot.
//  3. Run the heuristic initial pivots to drain artificials early.
//  4. Main loop: price an entering arc; if none, the basis is optimal.
//     Otherwise find the join, the leaving arc and delta, augment the
//     cycle, restructure the tree and shift the moved potentials.
//     Degenerate pivots (delta = 0) are permitted; the strict/non-strict
//     tie-break in findLeavingArc prevents cycling.
//  5. On optimality, verify that every artificial arc has drained:
//     residuals within BalanceTolerance are snapped to zero, anything
//     larger means the real arc set cannot carry the supplies
//     (StatusInfeasible).
//
// Termination: finite for exact data; for floating point the scaled
// ε gate of the pricing rule bounds the loop. MaxIterations > 0 caps
// the pivot count regardless and yields StatusIterLimit with the
// current feasible basis left readable.
//
// The returned error is nil exactly when the status is StatusOptimal;
// otherwise it wraps the matching sentinel (ErrInfeasible,
// ErrUnbounded, ErrIterLimit, ErrUnbalanced, ErrUnknownPivotRule).
// Solve may be called once per Solver; later calls return
// ErrAlreadySolved.
//
// Complexity: O(pivots · (block scan + cycle length + subtree size));
// the block scan dominates in practice.
func (s *Solver) Solve() (Status, error) {
	if s.status != StatusNotSolved {
		return s.status, ErrAlreadySolved
	}

	// 1) Feasible starting basis.
	if err := s.initBasis(); err != nil {
		return StatusNotSolved, err
	}

	// 2) Entering-arc strategy.
	pricing, err := s.newPricingRule()
	if err != nil {
		return StatusNotSolved, err
	}

	// 3) Heuristic warm-up pivots.
	if !s.initialPivots() {
		s.status = StatusUnbounded

		return s.status, ErrUnbounded
	}

	// 4) Pivot loop.
	s.status = StatusOptimal
	iter := 0
	for pricing.findEnteringArc() {
		if iter++; s.opts.MaxIterations > 0 && iter > s.opts.MaxIterations {
			s.status = StatusIterLimit

			break
		}

		s.findJoinNode()
		change := s.findLeavingArc()
		if s.delta >= Inf {
			s.status = StatusUnbounded

			return s.status, ErrUnbounded
		}
		s.changeFlow(change)
		if change {
			s.updateTreeStructure()
			s.updatePotential()
		}
		if s.opts.Verbose {
			fmt.Printf("netsimplex: pivot %d: arc %d in, node %d out, delta %g\n",
				iter, s.inArc, s.uOut, s.delta)
		}
	}

	// 5) Feasibility: the artificial arcs must carry nothing.
	if s.status == StatusOptimal {
		for e := s.searchArcNum; e < s.allArcNum; e++ {
			if f := s.flow[e]; f != 0 {
				if math.Abs(f) > s.opts.BalanceTolerance {
					s.status = StatusInfeasible

					return s.status, ErrInfeasible
				}
				s.flow[e] = 0
			}
		}
	}

	if s.status == StatusIterLimit {
		return s.status, ErrIterLimit
	}

	return s.status, nil
}
