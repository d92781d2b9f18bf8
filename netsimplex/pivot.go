package netsimplex

// This file holds the four phases of one simplex pivot after pricing:
// join search, leaving-arc selection on the entering cycle, flow
// augmentation, and the tree restructure with its potential shift.
// The phases communicate exclusively through the pivot scratch fields
// on Solver (inArc, join, uIn, vIn, uOut, delta).

// findJoinNode locates the lowest common ancestor of the entering
// arc's endpoints in the basis tree and stores it in s.join.
//
// The climb uses subtree sizes instead of explicit depths: succNum
// strictly increases along any root path, so repeatedly lifting the
// endpoint with the smaller subtree can never step over the common
// ancestor.
//
// Complexity: O(cycle length).
func (s *Solver) findJoinNode() {
	u, v := s.source[s.inArc], s.target[s.inArc]
	for u != v {
		if s.succNum[u] < s.succNum[v] {
			u = s.parent[u]
		} else {
			v = s.parent[v]
		}
	}
	s.join = u
}

// findLeavingArc walks the two halves of the entering cycle and
// determines the maximum augmentation delta together with the basis
// arc that blocks it.
//
// Orientation: a LOWER entering arc pushes flow source→target, so the
// "first" half is the source-side root path (flow decreases on forward
// basis arcs there) and the "second" half is the target side; an UPPER
// entering arc swaps the roles. Residuals on the first half are
// flow(pred) for forward nodes and capacity−flow otherwise, mirrored
// on the second half.
//
// Tie-break: strict < on the first half, ≤ on the second. The
// asymmetry is the anti-cycling rule - it fixes which side sheds its
// blocking arc on degenerate (delta = 0) pivots, and swapping the two
// comparisons can stall the solver in an infinite loop.
//
// On return: s.delta, s.uOut (node whose pred leaves), and the
// endpoint split s.uIn (roots the subtree that will move) / s.vIn (the
// attachment point in the surviving tree). The result is false when no
// basis arc bounds the cycle, i.e. the entering arc itself leaves by
// jumping to its opposite bound; delta ≥ Inf then signals an unbounded
// cycle to the driver.
//
// Complexity: O(cycle length).
func (s *Solver) findLeavingArc() bool {
	var first, second int
	if s.state[s.inArc] == stateLower {
		first, second = s.source[s.inArc], s.target[s.inArc]
	} else {
		first, second = s.target[s.inArc], s.source[s.inArc]
	}
	s.delta = s.capacity[s.inArc]

	var (
		result int
		d      float64
	)
	for u := first; u != s.join; u = s.parent[u] {
		e := s.pred[u]
		if s.forward[u] {
			d = s.flow[e]
		} else if c := s.capacity[e]; c >= Inf {
			d = Inf
		} else {
			d = c - s.flow[e]
		}
		if d < s.delta {
			s.delta = d
			s.uOut = u
			result = 1
		}
	}
	for u := second; u != s.join; u = s.parent[u] {
		e := s.pred[u]
		if !s.forward[u] {
			d = s.flow[e]
		} else if c := s.capacity[e]; c >= Inf {
			d = Inf
		} else {
			d = c - s.flow[e]
		}
		if d <= s.delta {
			s.delta = d
			s.uOut = u
			result = 2
		}
	}

	if result == 1 {
		s.uIn, s.vIn = first, second
	} else {
		s.uIn, s.vIn = second, first
	}

	return result != 0
}

// changeFlow augments delta units around the entering cycle and
// reclassifies the entering and leaving arcs.
//
// The signed amount state(inArc)·delta is added on the entering arc
// and propagated along both root paths with signs chosen by each basis
// arc's forward flag. With change=false the entering arc saturated
// itself and simply flips bound (LOWER↔UPPER); otherwise it becomes a
// tree arc and the leaving arc lands on the bound its final flow
// indicates.
//
// Complexity: O(cycle length).
func (s *Solver) changeFlow(change bool) {
	if s.delta > 0 {
		val := float64(s.state[s.inArc]) * s.delta
		s.flow[s.inArc] += val
		for u := s.source[s.inArc]; u != s.join; u = s.parent[u] {
			if s.forward[u] {
				s.flow[s.pred[u]] -= val
			} else {
				s.flow[s.pred[u]] += val
			}
		}
		for u := s.target[s.inArc]; u != s.join; u = s.parent[u] {
			if s.forward[u] {
				s.flow[s.pred[u]] += val
			} else {
				s.flow[s.pred[u]] -= val
			}
		}
	}

	if change {
		s.state[s.inArc] = stateTree
		if s.flow[s.pred[s.uOut]] == 0 {
			s.state[s.pred[s.uOut]] = stateLower
		} else {
			s.state[s.pred[s.uOut]] = stateUpper
		}
	} else {
		s.state[s.inArc] = -s.state[s.inArc]
	}
}

// updateTreeStructure re-roots the subtree cut off by the leaving arc
// onto vIn via the entering arc. Removing pred[uOut] separates the old
// subtree of uOut from the rest of the tree; uIn lies inside it (uOut
// sits on the path uIn → join), so the component is re-rooted at uIn,
// its parent/pred chain down to uOut reversed, and the whole block
// re-spliced into the thread order immediately after vIn.
//
// The update runs in two phases so each one works on a consistent
// tree:
//
//  1. Excision - the component occupies a contiguous thread block
//     [uOut .. lastSucc[uOut]]; unlink it, then walk the surviving
//     ancestors of vOut: every one whose subtree ended at the block's
//     tail now ends at the node just before the block, and every one
//     up to the root sheds the component's size.
//
//  2. Re-root and splice - reverse the stem uIn → uOut (each stem node
//     adopts its former child's basis arc with flipped orientation),
//     rebuild the component's preorder, subtree sizes and tails from
//     its new parent relations, thread it back in right after vIn, and
//     mirror the ancestor walk on the grown side: subtrees that ended
//     exactly at vIn now end at the component's new tail, sizes grow
//     back by the component's size. Above the join the two size walks
//     cancel, as they must.
//
// Complexity: O(moved component size + tree depth); scratch slices are
// reused across pivots, so the pivot loop stays allocation-free.
func (s *Solver) updateTreeStructure() {
	var (
		uOut      = s.uOut
		size      = s.succNum[uOut]
		oldTail   = s.lastSucc[uOut]
		prevBlock = s.revThread[uOut]
		vOut      = s.parent[uOut]
	)

	// Collect the moving component in its old thread order.
	s.comp = s.comp[:0]
	for x, i := uOut, 0; i < size; x, i = s.thread[x], i+1 {
		s.comp = append(s.comp, x)
	}

	// Phase 1: excise the contiguous thread block of the component.
	after := s.thread[oldTail]
	s.thread[prevBlock] = after
	s.revThread[after] = prevBlock

	for a := vOut; a != -1 && s.lastSucc[a] == oldTail; a = s.parent[a] {
		s.lastSucc[a] = prevBlock
	}
	for a := vOut; a != -1; a = s.parent[a] {
		s.succNum[a] -= size
	}

	// Phase 2a: reverse the stem chain uIn → uOut. Each visited node's
	// new parent is its predecessor on the stem (vIn for uIn itself),
	// and it inherits the basis arc that used to hang it below, with
	// the forward flag flipped along with the direction.
	node := s.uIn
	newPar := s.vIn
	arcToPar := s.inArc
	fwd := s.uIn == s.source[s.inArc]
	for {
		oldPar, oldArc, oldFwd := s.parent[node], s.pred[node], s.forward[node]
		s.parent[node] = newPar
		s.pred[node] = arcToPar
		s.forward[node] = fwd
		if node == uOut {
			break
		}
		newPar, arcToPar, fwd = node, oldArc, !oldFwd
		node = oldPar
	}

	// Phase 2b: rebuild the component's preorder from its new parent
	// relations. Children lists are built by a reverse sweep over the
	// old preorder, which keeps sibling order stable and the pivot
	// deterministic.
	for _, x := range s.comp {
		s.firstChild[x] = -1
		s.nextSibling[x] = -1
	}
	for i := len(s.comp) - 1; i >= 0; i-- {
		x := s.comp[i]
		if x == s.uIn {
			continue
		}
		p := s.parent[x]
		s.nextSibling[x] = s.firstChild[p]
		s.firstChild[p] = x
	}
	s.order = s.order[:0]
	for x := s.uIn; ; {
		s.compPos[x] = len(s.order)
		s.order = append(s.order, x)
		if s.firstChild[x] != -1 {
			x = s.firstChild[x]

			continue
		}
		for x != s.uIn && s.nextSibling[x] == -1 {
			x = s.parent[x]
		}
		if x == s.uIn {
			break
		}
		x = s.nextSibling[x]
	}

	// Subtree sizes by reverse accumulation, tails by position: the
	// subtree of x spans succNum[x] consecutive preorder slots.
	for _, x := range s.order {
		s.succNum[x] = 1
	}
	for i := len(s.order) - 1; i >= 1; i-- {
		s.succNum[s.parent[s.order[i]]] += s.succNum[s.order[i]]
	}
	for _, x := range s.order {
		s.lastSucc[x] = s.order[s.compPos[x]+s.succNum[x]-1]
	}

	// Phase 2c: splice the component back in right after vIn, making
	// uIn its first child in preorder.
	tail := s.order[len(s.order)-1]
	oldAfter := s.thread[s.vIn]
	s.thread[s.vIn] = s.uIn
	s.revThread[s.uIn] = s.vIn
	for i := 0; i+1 < len(s.order); i++ {
		s.thread[s.order[i]] = s.order[i+1]
		s.revThread[s.order[i+1]] = s.order[i]
	}
	s.thread[tail] = oldAfter
	s.revThread[oldAfter] = tail

	// Grown side: subtrees that ended exactly at vIn now extend to the
	// component's new tail, and every ancestor regains the size.
	for a := s.vIn; a != -1 && s.lastSucc[a] == s.vIn; a = s.parent[a] {
		s.lastSucc[a] = tail
	}
	for a := s.vIn; a != -1; a = s.parent[a] {
		s.succNum[a] += size
	}
}

// updatePotential applies the uniform dual shift to the moved subtree
// so the new basis arc prices to zero: every node from uIn through
// lastSucc[uIn] in thread order gains sigma, which preserves all
// potential differences inside the subtree and therefore every
// previously tight tree arc.
//
// Complexity: O(moved subtree size).
func (s *Solver) updatePotential() {
	var (
		e     = s.pred[s.uIn]
		sigma float64
	)
	if s.forward[s.uIn] {
		sigma = s.pi[s.vIn] - s.pi[s.uIn] - s.cost[e]
	} else {
		sigma = s.pi[s.vIn] - s.pi[s.uIn] + s.cost[e]
	}
	end := s.thread[s.lastSucc[s.uIn]]
	for u := s.uIn; u != end; u = s.thread[u] {
		s.pi[u] += sigma
	}
}
