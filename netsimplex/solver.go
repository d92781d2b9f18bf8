package netsimplex

import "math"

// Solver holds one minimum-cost-flow instance and its spanning-tree
// basis. All state lives in flat parallel slices indexed by node or arc
// id; the block scan of the pricing rule walks the arc slices
// sequentially, so keeping them dense and separate is what the whole
// layout is optimized for.
//
// The arc slices store the user arcs first, followed by one artificial
// arc per user node (added by initBasis). Node slices have one extra
// entry for the synthetic root at index nodeCount.
//
// A Solver is single-use: build with NewSolver, describe the problem
// via SetSupply/AddArc, call Solve once, then read Flows/Potentials/
// TotalCost. It is not safe for concurrent use.
type Solver struct {
	opts Options

	nodeCount int // user nodes; the root is nodeCount
	root      int

	// Arc attributes. Indices [0, searchArcNum) are user arcs and the
	// only ones the pricing rules examine; [searchArcNum, allArcNum)
	// are the artificial arcs of the star basis.
	source   []int
	target   []int
	cost     []float64
	capacity []float64
	flow     []float64
	state    []int8

	// Node attributes (nodeCount+1 entries each).
	supply    []float64
	pi        []float64
	parent    []int
	pred      []int
	thread    []int
	revThread []int
	succNum   []int
	lastSucc  []int
	forward   []bool

	searchArcNum int
	allArcNum    int
	artCost      float64

	// Pivot scratch, written by findJoinNode/findLeavingArc and read
	// by changeFlow/updateTreeStructure/updatePotential.
	inArc    int
	join     int
	uIn, vIn int
	uOut     int
	delta    float64

	// Restructure scratch, reused across pivots to keep the loop
	// allocation-free.
	comp        []int // moved component, old preorder
	order       []int // moved component, new preorder
	compPos     []int // position of a node within order
	firstChild  []int
	nextSibling []int

	status Status
}

// NewSolver allocates a solver for `nodes` user nodes. `arcHint` sizes
// the arc buffers up front (pass the exact arc count to avoid any
// regrowth; pass 0 if unknown). Supplies start at zero; declare them
// with SetSupply and add arcs with AddArc before calling Solve.
//
// Complexity: O(nodes + arcHint) allocation, performed once.
func NewSolver(nodes, arcHint int, opts Options) (*Solver, error) {
	if nodes <= 0 {
		return nil, ErrNoNodes
	}
	opts.normalize()
	if arcHint < 0 {
		arcHint = 0
	}

	// Arc buffers get headroom for the artificial arcs appended later.
	n := nodes + 1
	s := &Solver{
		opts:        opts,
		nodeCount:   nodes,
		root:        nodes,
		source:      make([]int, 0, arcHint+nodes),
		target:      make([]int, 0, arcHint+nodes),
		cost:        make([]float64, 0, arcHint+nodes),
		capacity:    make([]float64, 0, arcHint+nodes),
		supply:      make([]float64, n),
		pi:          make([]float64, n),
		parent:      make([]int, n),
		pred:        make([]int, n),
		thread:      make([]int, n),
		revThread:   make([]int, n),
		succNum:     make([]int, n),
		lastSucc:    make([]int, n),
		forward:     make([]bool, n),
		comp:        make([]int, 0, n),
		order:       make([]int, 0, n),
		compPos:     make([]int, n),
		firstChild:  make([]int, n),
		nextSibling: make([]int, n),
		status:      StatusNotSolved,
	}

	return s, nil
}

// SetSupply declares the signed mass of node u: positive = source,
// negative = sink, zero = transshipment. Supplies must sum to zero
// (within Options.BalanceTolerance) by the time Solve runs.
func (s *Solver) SetSupply(u int, supply float64) error {
	if s.status != StatusNotSolved {
		return ErrAlreadySolved
	}
	if u < 0 || u >= s.nodeCount {
		return ErrNodeRange
	}
	s.supply[u] = supply

	return nil
}

// AddArc appends a directed arc from→to with the given per-unit cost
// and capacity (use Inf for uncapacitated) and returns its arc id.
// Ids are assigned densely in insertion order and index the Flow
// accessor after the solve.
func (s *Solver) AddArc(from, to int, cost, capacity float64) (int, error) {
	if s.status != StatusNotSolved {
		return 0, ErrAlreadySolved
	}
	if from < 0 || from >= s.nodeCount || to < 0 || to >= s.nodeCount {
		return 0, ErrNodeRange
	}
	if capacity < 0 || math.IsNaN(capacity) {
		return 0, ErrNegativeCapacity
	}
	if capacity > Inf {
		capacity = Inf
	}

	id := len(s.source)
	s.source = append(s.source, from)
	s.target = append(s.target, to)
	s.cost = append(s.cost, cost)
	s.capacity = append(s.capacity, capacity)

	return id, nil
}

// NumNodes returns the number of user nodes (the synthetic root is not
// counted).
func (s *Solver) NumNodes() int { return s.nodeCount }

// NumArcs returns the number of user arcs added so far. The artificial
// arcs appended by the basis initializer are never counted.
func (s *Solver) NumArcs() int {
	if s.allArcNum > 0 {
		return s.searchArcNum
	}

	return len(s.source)
}

// Status returns the terminal state of the last Solve call, or
// StatusNotSolved before it.
func (s *Solver) Status() Status { return s.status }

// Flow returns the flow routed over user arc e after Solve. The value
// is only meaningful once Status is StatusOptimal or StatusIterLimit.
func (s *Solver) Flow(e int) float64 {
	if e < 0 || e >= s.NumArcs() || e >= len(s.flow) {
		return 0
	}

	return s.flow[e]
}

// Flows copies the per-arc flows of all user arcs, indexed by arc id.
func (s *Solver) Flows() []float64 {
	out := make([]float64, s.NumArcs())
	copy(out, s.flow)

	return out
}

// Potential returns the dual variable π(u) of user node u. Tree arcs
// satisfy cost + π(source) − π(target) = 0, so on a tight arc the
// potential difference π(target) − π(source) equals the arc cost.
// π(root) is pinned at zero.
func (s *Solver) Potential(u int) float64 {
	if u < 0 || u > s.nodeCount {
		return 0
	}

	return s.pi[u]
}

// Potentials copies the node potentials of all user nodes.
func (s *Solver) Potentials() []float64 {
	out := make([]float64, s.nodeCount)
	copy(out, s.pi)

	return out
}

// ArtificialResidual returns the total flow still carried by the
// artificial arcs of the basis. Zero after an optimal solve; strictly
// positive when the problem was reported infeasible. After a solve that
// stopped with StatusIterLimit or StatusUnbounded it is whatever the
// artificial arcs still carry, which may be positive.
func (s *Solver) ArtificialResidual() float64 {
	var residual float64
	for e := s.searchArcNum; e < s.allArcNum; e++ {
		if s.flow[e] > 0 {
			residual += s.flow[e]
		} else {
			residual -= s.flow[e]
		}
	}

	return residual
}

// TotalCost returns Σ flow(e)·cost(e) over the user arcs. Zero before
// Solve has built the flow vector.
func (s *Solver) TotalCost() float64 {
	var total float64
	for e := 0; e < s.NumArcs() && e < len(s.flow); e++ {
		if s.flow[e] != 0 {
			total += s.flow[e] * s.cost[e]
		}
	}

	return total
}
