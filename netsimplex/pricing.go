package netsimplex

import "math"

// pricingRule abstracts the entering-arc selection strategy of one
// pivot. findEnteringArc examines user arcs under the current
// potentials, stores the chosen violator in s.inArc and reports whether
// one was found; false means the basis is optimal within Epsilon.
//
// Implementations write only s.inArc and their own cursors and read the
// rest of the solver state, so a rule is valid for the lifetime of one
// solve.
type pricingRule interface {
	findEnteringArc() bool
}

// newPricingRule instantiates the rule selected by Options.Pivot.
func (s *Solver) newPricingRule() (pricingRule, error) {
	switch s.opts.Pivot {
	case BlockSearch:
		return newBlockSearch(s), nil
	case Dantzig:
		return &dantzigRule{s: s}, nil
	case FirstEligible:
		return &firstEligibleRule{s: s}, nil
	default:
		return nil, ErrUnknownPivotRule
	}
}

// reducedCost returns the signed reduced cost of user arc e:
// state(e)·(cost(e) + π(source) − π(target)). The state factor folds
// both bound directions into one test: e violates optimality iff the
// result is negative.
func (s *Solver) reducedCost(e int) float64 {
	return float64(s.state[e]) * (s.cost[e] + s.pi[s.source[e]] - s.pi[s.target[e]])
}

// pivotScale returns the magnitude that Epsilon is scaled by for the
// candidate arc: max(|π(i)|, |π(j)|, |cost|). Scaling keeps the gate
// meaningful when potentials grow large during the artificial phase.
func (s *Solver) pivotScale(e int) float64 {
	a := math.Abs(s.pi[s.source[e]])
	if b := math.Abs(s.pi[s.target[e]]); b > a {
		a = b
	}
	if c := math.Abs(s.cost[e]); c > a {
		a = c
	}

	return a
}

// blockSearchRule prices arcs in blocks of max(⌈√M⌉, 10), wrapping a
// persistent cursor over the user arcs. Within a block it tracks the
// minimum signed reduced cost seen; at each block boundary the best
// violator so far is accepted if it passes the ε gate, otherwise the
// scan continues into the next block. A full sweep without acceptance
// declares optimality.
type blockSearchRule struct {
	s         *Solver
	blockSize int
	nextArc   int
}

func newBlockSearch(s *Solver) *blockSearchRule {
	size := int(math.Ceil(math.Sqrt(float64(s.searchArcNum))))
	if size < minBlockSize {
		size = minBlockSize
	}

	return &blockSearchRule{s: s, blockSize: size}
}

const minBlockSize = 10

// findEnteringArc implements pricingRule.
//
// The first violator attaining the running minimum wins (strict <);
// the cursor resumes at the arc where the accepting block ended, so
// successive pivots sweep the arc list round-robin.
func (p *blockSearchRule) findEnteringArc() bool {
	var (
		s   = p.s
		min = 0.0
		cnt = p.blockSize
		e   int
	)
	for e = p.nextArc; e < s.searchArcNum; e++ {
		if c := s.reducedCost(e); c < min {
			min = c
			s.inArc = e
		}
		if cnt--; cnt == 0 {
			if min < -s.opts.Epsilon*s.pivotScale(s.inArc) {
				p.nextArc = e

				return true
			}
			cnt = p.blockSize
		}
	}
	for e = 0; e < p.nextArc; e++ {
		if c := s.reducedCost(e); c < min {
			min = c
			s.inArc = e
		}
		if cnt--; cnt == 0 {
			if min < -s.opts.Epsilon*s.pivotScale(s.inArc) {
				p.nextArc = e

				return true
			}
			cnt = p.blockSize
		}
	}
	// Partial final block: one last gate over the best violator seen.
	if min < -s.opts.Epsilon*s.pivotScale(s.inArc) {
		p.nextArc = e

		return true
	}

	return false
}

// dantzigRule scans every user arc each pivot and enters the one with
// the most negative signed reduced cost.
type dantzigRule struct {
	s *Solver
}

func (p *dantzigRule) findEnteringArc() bool {
	var (
		s    = p.s
		min  = 0.0
		best = -1
	)
	for e := 0; e < s.searchArcNum; e++ {
		if c := s.reducedCost(e); c < min {
			min = c
			best = e
		}
	}
	if best < 0 || min >= -s.opts.Epsilon*s.pivotScale(best) {
		return false
	}
	s.inArc = best

	return true
}

// firstEligibleRule enters the first arc after its cursor whose signed
// reduced cost passes the ε gate, wrapping once around the arc list.
type firstEligibleRule struct {
	s       *Solver
	nextArc int
}

func (p *firstEligibleRule) findEnteringArc() bool {
	s := p.s
	for e := p.nextArc; e < s.searchArcNum; e++ {
		if s.reducedCost(e) < -s.opts.Epsilon*s.pivotScale(e) {
			s.inArc = e
			p.nextArc = e + 1

			return true
		}
	}
	for e := 0; e < p.nextArc; e++ {
		if s.reducedCost(e) < -s.opts.Epsilon*s.pivotScale(e) {
			s.inArc = e
			p.nextArc = e + 1

			return true
		}
	}

	return false
}
