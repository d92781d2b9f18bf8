package netsimplex

import "math"

// initBasis builds the initial star-tree basis rooted at the synthetic
// root node: one artificial arc per user node, oriented with the sign
// of its supply and carrying |supply| flow, so that flow conservation,
// the spanning-tree property and the zero-reduced-cost condition on
// tree arcs all hold from the first pivot.
//
// Demand-side artificials get cost artCost and their nodes potential
// artCost; any real arc into a sink then has a strongly negative
// reduced cost, which steers the earliest pivots toward evicting the
// artificials.
//
// Steps:
//  1. Verify Σ supply within BalanceTolerance (else ErrUnbalanced).
//  2. Derive artCost = (1 + max|cost|)·(nodes+1) unless overridden.
//  3. Reset all user arcs to LOWER with zero flow.
//  4. For each node u: append artificial arc u↔root, link u under the
//     root (parent/pred/thread/succNum/lastSucc), set π(u).
//  5. Close the thread cycle through the root.
//
// Complexity: O(nodes + arcs) time, no allocation beyond the artificial
// tail of the arc buffers.
func (s *Solver) initBasis() error {
	// 1) Balance gate.
	var sum float64
	for u := 0; u < s.nodeCount; u++ {
		sum += s.supply[u]
	}
	if math.Abs(sum) > s.opts.BalanceTolerance {
		return ErrUnbalanced
	}

	s.searchArcNum = len(s.source)
	s.allArcNum = s.searchArcNum + s.nodeCount

	// 2) Artificial cost sentinel.
	s.artCost = s.opts.ArtificialCost
	if s.artCost == 0 {
		var maxCost float64
		for e := 0; e < s.searchArcNum; e++ {
			if c := math.Abs(s.cost[e]); c > maxCost {
				maxCost = c
			}
		}
		s.artCost = (maxCost + 1) * float64(s.nodeCount+1)
	}

	// 3) All user arcs start at their lower bound.
	s.flow = make([]float64, s.searchArcNum, s.allArcNum)
	s.state = make([]int8, s.searchArcNum, s.allArcNum)
	for e := 0; e < s.searchArcNum; e++ {
		s.state[e] = stateLower
	}

	// 4) Star tree: every user node hangs off the root by its own
	// artificial arc e = searchArcNum + u.
	for u, e := 0, s.searchArcNum; u < s.nodeCount; u, e = u+1, e+1 {
		s.parent[u] = s.root
		s.pred[u] = e
		s.thread[u] = u + 1
		s.revThread[u+1] = u
		s.succNum[u] = 1
		s.lastSucc[u] = u

		s.capacity = append(s.capacity, Inf)
		s.state = append(s.state, stateTree)
		if s.supply[u] >= 0 {
			s.forward[u] = true
			s.pi[u] = 0
			s.source = append(s.source, u)
			s.target = append(s.target, s.root)
			s.flow = append(s.flow, s.supply[u])
			s.cost = append(s.cost, 0)
		} else {
			s.forward[u] = false
			s.pi[u] = s.artCost
			s.source = append(s.source, s.root)
			s.target = append(s.target, u)
			s.flow = append(s.flow, -s.supply[u])
			s.cost = append(s.cost, s.artCost)
		}
	}

	// 5) Root bookkeeping; thread is a cycle over all nodeCount+1 nodes.
	s.parent[s.root] = -1
	s.pred[s.root] = -1
	s.thread[s.root] = 0
	s.revThread[0] = s.root
	s.succNum[s.root] = s.nodeCount + 1
	s.lastSucc[s.root] = s.nodeCount - 1
	s.pi[s.root] = 0

	return nil
}

// initialPivots runs the one-pass heuristic that pivots promising real
// arcs into the basis before the main loop, draining artificials early.
//
// Arc selection:
//   - exactly one source and one sink: reverse depth-first search from
//     the sink over incoming real arcs, collecting every tree arc of
//     the search until the source is reached;
//   - otherwise: the cheapest incoming real arc of every demand node
//     (or, when there are no demand nodes at all, the cheapest outgoing
//     arc of every supply node).
//
// Each candidate is pivoted in through the standard sequence (join,
// leaving arc, augment, restructure, potentials) iff it violates its
// optimality condition under the current potentials; non-violating
// candidates are skipped. Correctness never depends on the heuristic -
// it only shortens the main loop.
//
// Returns false when a pivot exposes an unbounded augmenting cycle.
//
// Complexity: O(arcs + pivots·tree work).
func (s *Solver) initialPivots() bool {
	var supplyNodes, demandNodes []int
	for u := 0; u < s.nodeCount; u++ {
		switch {
		case s.supply[u] > 0:
			supplyNodes = append(supplyNodes, u)
		case s.supply[u] < 0:
			demandNodes = append(demandNodes, u)
		}
	}

	var candidates []int
	switch {
	case len(supplyNodes) == 1 && len(demandNodes) == 1:
		candidates = s.reversePathArcs(supplyNodes[0], demandNodes[0])
	case len(demandNodes) > 0:
		candidates = s.cheapestArcs(demandNodes, true)
	case len(supplyNodes) > 0:
		candidates = s.cheapestArcs(supplyNodes, false)
	}

	for _, e := range candidates {
		// Skip arcs that already satisfy their optimality condition.
		if float64(s.state[e])*(s.cost[e]+s.pi[s.source[e]]-s.pi[s.target[e]]) >= 0 {
			continue
		}
		s.inArc = e
		s.findJoinNode()
		change := s.findLeavingArc()
		if s.delta >= Inf {
			return false
		}
		s.changeFlow(change)
		if change {
			s.updateTreeStructure()
			s.updatePotential()
		}
	}

	return true
}

// reversePathArcs collects arcs discovered by a reverse DFS from sink
// toward src over the incoming real arcs of each reached node. The
// search stops as soon as src is popped.
func (s *Solver) reversePathArcs(src, sink int) []int {
	// Incoming adjacency over user arcs, built once for this search.
	inArcs := make([][]int, s.nodeCount)
	for e := 0; e < s.searchArcNum; e++ {
		inArcs[s.target[e]] = append(inArcs[s.target[e]], e)
	}

	var (
		arcs    []int
		reached = make([]bool, s.nodeCount)
		stack   = make([]int, 0, s.nodeCount)
	)
	reached[sink] = true
	stack = append(stack, sink)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v == src {
			break
		}
		for _, e := range inArcs[v] {
			if u := s.source[e]; !reached[u] {
				arcs = append(arcs, e)
				reached[u] = true
				stack = append(stack, u)
			}
		}
	}

	return arcs
}

// cheapestArcs returns, for every node in nodes, its minimum-cost
// incoming (incoming=true) or outgoing user arc, when one exists.
// A single sweep over the arc list replaces per-node adjacency; the
// first arc attaining the minimum wins.
func (s *Solver) cheapestArcs(nodes []int, incoming bool) []int {
	best := make([]int, s.nodeCount)
	for u := range best {
		best[u] = -1
	}
	mark := make([]bool, s.nodeCount)
	for _, u := range nodes {
		mark[u] = true
	}

	for e := 0; e < s.searchArcNum; e++ {
		u := s.target[e]
		if !incoming {
			u = s.source[e]
		}
		if !mark[u] {
			continue
		}
		if best[u] < 0 || s.cost[e] < s.cost[best[u]] {
			best[u] = e
		}
	}

	arcs := make([]int, 0, len(nodes))
	for _, u := range nodes {
		if best[u] >= 0 {
			arcs = append(arcs, best[u])
		}
	}

	return arcs
}
