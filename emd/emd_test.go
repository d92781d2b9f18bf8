package emd_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"github.com/nathanneike/POT/emd"
	"github.com/nathanneike/POT/netsimplex"
)

// EMDSuite exercises the wrapper on histogram transport problems.
type EMDSuite struct {
	suite.Suite
}

// TestPointMassShift moves a unit point mass one bin over.
func (s *EMDSuite) TestPointMassShift() {
	res, err := emd.Solve(
		[]float64{1},
		[]float64{1},
		[]emd.Arc{{Source: 0, Target: 0, Cost: 3}},
		emd.DefaultOptions(),
	)
	require.NoError(s.T(), err)
	require.Equal(s.T(), netsimplex.StatusOptimal, res.Status)
	require.Equal(s.T(), 3.0, res.Cost)
	require.Equal(s.T(), []float64{1}, res.Flow)
}

// TestShiftedUniform computes the classic 1D case: two half-unit bins
// shifted by one position each, unit distance cost, total cost 1.
func (s *EMDSuite) TestShiftedUniform() {
	// a lives at positions {0, 1}, b at {1, 2}; cost = |x − y|.
	a := []float64{0.5, 0.5}
	b := []float64{0.5, 0.5}
	positionsA := []float64{0, 1}
	positionsB := []float64{1, 2}
	var arcs []emd.Arc
	for i := range a {
		for j := range b {
			d := positionsA[i] - positionsB[j]
			if d < 0 {
				d = -d
			}
			arcs = append(arcs, emd.Arc{Source: i, Target: j, Cost: d})
		}
	}

	res, err := emd.Solve(a, b, arcs, emd.DefaultOptions())
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 1.0, res.Cost, 1e-12)
}

// TestIdenticalHistograms keeps all mass in place at zero cost.
func (s *EMDSuite) TestIdenticalHistograms() {
	a := []float64{0.2, 0.3, 0.5}
	C := mat.NewDense(3, 3, []float64{
		0, 1, 2,
		1, 0, 1,
		2, 1, 0,
	})

	plan, res, err := emd.SolveDense(a, a, C, emd.DefaultOptions())
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Cost)
	for i, mass := range a {
		require.Equal(s.T(), mass, plan.At(i, i))
	}
}

// TestPlanMarginals checks that the dense plan's row and column sums
// reproduce the input histograms.
func (s *EMDSuite) TestPlanMarginals() {
	a := []float64{0.25, 0.25, 0.5}
	b := []float64{0.125, 0.375, 0.5}
	C := mat.NewDense(3, 3, []float64{
		0, 2, 4,
		2, 0, 2,
		4, 2, 0,
	})

	plan, res, err := emd.SolveDense(a, b, C, emd.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), netsimplex.StatusOptimal, res.Status)

	for i, mass := range a {
		require.InDelta(s.T(), mass, mat.Sum(plan.RowView(i)), 1e-12, "row %d", i)
	}
	for j, mass := range b {
		require.InDelta(s.T(), mass, mat.Sum(plan.ColView(j)), 1e-12, "col %d", j)
	}
}

// TestDualityCertificate pins Σ a·U + Σ b·V = Cost and the dual
// feasibility inequality on every arc.
func (s *EMDSuite) TestDualityCertificate() {
	r := rand.New(rand.NewSource(21))
	const n = 6
	a := make([]float64, n)
	b := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		a[i] = float64(1 + r.Intn(5))
		total += a[i]
	}
	remaining := total
	for j := 0; j < n-1; j++ {
		take := float64(r.Intn(int(remaining) / (n - j)))
		b[j] = take
		remaining -= take
	}
	b[n-1] = remaining

	data := make([]float64, n*n)
	for k := range data {
		data[k] = float64(r.Intn(10))
	}
	C := mat.NewDense(n, n, data)

	_, res, err := emd.SolveDense(a, b, C, emd.DefaultOptions())
	require.NoError(s.T(), err)

	var dual float64
	for i := range a {
		dual += a[i] * res.U[i]
	}
	for j := range b {
		dual += b[j] * res.V[j]
	}
	require.InDelta(s.T(), res.Cost, dual, 1e-9)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.LessOrEqual(s.T(), res.U[i]+res.V[j], C.At(i, j)+1e-9,
				"dual feasibility violated on arc %d→%d", i, j)
		}
	}
}

// TestSparseMatchesDense solves the same problem through both entry
// points; a full arc list fed to Solve must price identically to
// SolveDense.
func (s *EMDSuite) TestSparseMatchesDense() {
	a := []float64{2, 1, 3}
	b := []float64{1, 1, 4}
	data := []float64{
		1, 7, 3,
		2, 1, 6,
		5, 2, 1,
	}
	C := mat.NewDense(3, 3, data)

	var arcs []emd.Arc
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			arcs = append(arcs, emd.Arc{Source: i, Target: j, Cost: C.At(i, j)})
		}
	}

	sparse, err := emd.Solve(a, b, arcs, emd.DefaultOptions())
	require.NoError(s.T(), err)
	_, dense, err := emd.SolveDense(a, b, C, emd.DefaultOptions())
	require.NoError(s.T(), err)

	require.InDelta(s.T(), dense.Cost, sparse.Cost, 1e-12)
	require.Equal(s.T(), dense.Flow, sparse.Flow)
}

// TestSparseInfeasible removes every arc out of one loaded source.
func (s *EMDSuite) TestSparseInfeasible() {
	res, err := emd.Solve(
		[]float64{1, 1},
		[]float64{2},
		[]emd.Arc{{Source: 0, Target: 0, Cost: 1}}, // source 1 is stranded
		emd.DefaultOptions(),
	)
	require.ErrorIs(s.T(), err, netsimplex.ErrInfeasible)
	require.Equal(s.T(), netsimplex.StatusInfeasible, res.Status)
}

// TestBalancingWithinTolerance accepts sub-tolerance drift and
// rescales the demand side.
func (s *EMDSuite) TestBalancingWithinTolerance() {
	a := []float64{0.5, 0.5}
	b := []float64{0.5, 0.5 + 1e-12}
	arcs := []emd.Arc{
		{Source: 0, Target: 0, Cost: 0},
		{Source: 0, Target: 1, Cost: 1},
		{Source: 1, Target: 0, Cost: 1},
		{Source: 1, Target: 1, Cost: 0},
	}
	res, err := emd.Solve(a, b, arcs, emd.DefaultOptions())
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 0.0, res.Cost, 1e-9)
}

// TestInputRejections covers the wrapper's validation sentinels.
func (s *EMDSuite) TestInputRejections() {
	opts := emd.DefaultOptions()

	_, err := emd.Solve(nil, []float64{1}, nil, opts)
	require.ErrorIs(s.T(), err, emd.ErrEmptyHistogram)

	_, err = emd.Solve([]float64{1}, []float64{-1}, nil, opts)
	require.ErrorIs(s.T(), err, emd.ErrNegativeMass)

	_, err = emd.Solve([]float64{1}, []float64{2}, nil, opts)
	require.ErrorIs(s.T(), err, emd.ErrUnbalanced)

	_, err = emd.Solve([]float64{1}, []float64{1},
		[]emd.Arc{{Source: 0, Target: 5, Cost: 1}}, opts)
	require.ErrorIs(s.T(), err, emd.ErrArcRange)

	_, _, err = emd.SolveDense([]float64{1, 1}, []float64{2},
		mat.NewDense(1, 1, []float64{0}), opts)
	require.ErrorIs(s.T(), err, emd.ErrDimensionMismatch)
}

// Entry point for running the suite.
func TestEMDSuite(t *testing.T) {
	suite.Run(t, new(EMDSuite))
}
