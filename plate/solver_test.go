package plate_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isotherm/matrix"
	"github.com/katalvlaran/isotherm/plate"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestNewSolver_Errors verifies that NewSolver rejects plates without an
// interior and non-finite inputs.
func TestNewSolver_Errors(t *testing.T) {
	withCfg := func(f func(*plate.Config)) plate.Config {
		cfg := plate.DefaultConfig()
		f(&cfg)
		return cfg
	}
	cases := []struct {
		name string
		cfg  plate.Config
		err  error
	}{
		{"TwoRows", withCfg(func(c *plate.Config) { c.Rows = 2 }), plate.ErrInvalidDimensions},
		{"TwoCols", withCfg(func(c *plate.Config) { c.Cols = 2 }), plate.ErrInvalidDimensions},
		{"ZeroShape", withCfg(func(c *plate.Config) { c.Rows, c.Cols = 0, 0 }), plate.ErrInvalidDimensions},
		{"NegativeRows", withCfg(func(c *plate.Config) { c.Rows = -4 }), plate.ErrInvalidDimensions},
		{"NaNTop", withCfg(func(c *plate.Config) { c.Top = math.NaN() }), plate.ErrNonFinite},
		{"InfRight", withCfg(func(c *plate.Config) { c.Right = math.Inf(-1) }), plate.ErrNonFinite},
		{"InfTolerance", withCfg(func(c *plate.Config) { c.Tolerance = math.Inf(1) }), plate.ErrNonFinite},
		// shape is checked before finiteness
		{"ShapeFirst", withCfg(func(c *plate.Config) { c.Rows, c.Top = 1, math.NaN() }), plate.ErrInvalidDimensions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := plate.NewSolver(tc.cfg)
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, s)
		})
	}
}

// TestNewSolver_AcceptsNonPhysicalValues checks that negative temperatures
// and a negative tolerance are plain arithmetic input.
func TestNewSolver_AcceptsNonPhysicalValues(t *testing.T) {
	cfg := plate.Config{Rows: 3, Cols: 5, Top: -273.15, Bottom: -1, Left: 0, Right: 1e6, InteriorStart: -50, Tolerance: -1}
	s, err := plate.NewSolver(cfg)
	require.NoError(t, err)
	require.Equal(t, plate.Initialized, s.State())
	require.False(t, s.Sweep(), "negative tolerance never converges")
}

// TestNewSolver_ReferenceInitialGrid checks the initial 4×4 reference grid,
// corners included.
func TestNewSolver_ReferenceInitialGrid(t *testing.T) {
	s, err := plate.NewSolver(plate.DefaultConfig())
	require.NoError(t, err)

	want := [][]float64{
		{100, 100, 100, 100},
		{100, 0, 0, 200},
		{100, 0, 0, 200},
		{200, 200, 200, 200},
	}
	snap := s.Snapshot()
	if diff := cmp.Diff(want, snap.Values()); diff != "" {
		t.Fatalf("initial grid mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 0, snap.Sweep)
	require.False(t, snap.Converged)
	require.Equal(t, 0, s.Sweeps())
	require.Equal(t, plate.Initialized, s.State())
}

// TestNewSolver_CornersTakeRowTemperature uses four distinct edge values so
// the corner ownership is visible.
func TestNewSolver_CornersTakeRowTemperature(t *testing.T) {
	cfg := plate.Config{Rows: 5, Cols: 3, Top: 1, Bottom: 2, Left: 3, Right: 4, InteriorStart: 9, Tolerance: 0.1}
	s, err := plate.NewSolver(cfg)
	require.NoError(t, err)

	want := [][]float64{
		{1, 1, 1},
		{3, 9, 4},
		{3, 9, 4},
		{3, 9, 4},
		{2, 2, 2},
	}
	if diff := cmp.Diff(want, s.Snapshot().Values()); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

//----------------------------------------------------------------------------//
// Sweep
//----------------------------------------------------------------------------//

// referenceTrace is the exact interior after each sweep of the reference
// plate. All values are dyadic, so the comparison is exact.
var referenceTrace = []struct {
	interior  [][]float64
	maxDelta  float64
	converged bool
}{
	{[][]float64{{50, 87.5}, {87.5, 143.75}}, 143.75, false},
	{[][]float64{{93.75, 134.375}, {134.375, 167.1875}}, 46.875, false},
	{[][]float64{{117.1875, 146.09375}, {146.09375, 173.046875}}, 23.4375, false},
	{[][]float64{{123.046875, 149.0234375}, {149.0234375, 174.51171875}}, 5.859375, false},
	{[][]float64{{124.51171875, 149.755859375}, {149.755859375, 174.8779296875}}, 1.46484375, false},
	{[][]float64{{124.8779296875, 149.93896484375}, {149.93896484375, 174.969482421875}}, 0.3662109375, false},
	{[][]float64{{124.969482421875, 149.9847412109375}, {149.9847412109375, 174.99237060546875}}, 0.091552734375, true},
}

// TestSweep_ReferenceTrace replays the reference scenario sweep by sweep.
func TestSweep_ReferenceTrace(t *testing.T) {
	s, err := plate.NewSolver(plate.DefaultConfig())
	require.NoError(t, err)

	for i, step := range referenceTrace {
		got := s.Sweep()
		require.Equalf(t, step.converged, got, "sweep %d converged flag", i+1)
		snap := s.Snapshot()
		if diff := cmp.Diff(step.interior, snap.Interior()); diff != "" {
			t.Fatalf("sweep %d interior mismatch (-want +got):\n%s", i+1, diff)
		}
		require.Equal(t, step.maxDelta, s.MaxDelta())
		require.Equal(t, i+1, snap.Sweep)
	}
	require.Equal(t, len(referenceTrace), s.Sweeps())
	require.Equal(t, plate.Converged, s.State())
}

// roundInterior returns the interior of snap rounded half away from zero to
// one decimal place.
func roundInterior(snap plate.Snapshot) [][]float64 {
	in := snap.Interior()
	for _, row := range in {
		for c, v := range row {
			row[c] = math.Round(v*10) / 10
		}
	}
	return in
}

// TestSweep_ReferenceRounded compares the reference checkpoints at one
// decimal place, the precision the console trace shows.
func TestSweep_ReferenceRounded(t *testing.T) {
	s, err := plate.NewSolver(plate.DefaultConfig())
	require.NoError(t, err)
	require.False(t, s.Sweep())
	if diff := cmp.Diff([][]float64{{50.0, 87.5}, {87.5, 143.8}}, roundInterior(s.Snapshot())); diff != "" {
		t.Fatalf("sweep 1 (-want +got):\n%s", diff)
	}

	sweeps := 1
	for !s.Sweep() {
		sweeps++
	}
	sweeps++
	require.Equal(t, 7, sweeps)
	if diff := cmp.Diff([][]float64{{125.0, 150.0}, {150.0, 175.0}}, roundInterior(s.Snapshot())); diff != "" {
		t.Fatalf("sweep 7 (-want +got):\n%s", diff)
	}
}

// boundaryConfigs covers the reference plate plus asymmetric shapes and values.
var boundaryConfigs = []plate.Config{
	plate.DefaultConfig(),
	{Rows: 3, Cols: 3, Top: 10, Bottom: 20, Left: 30, Right: 40, InteriorStart: 0, Tolerance: 0.001},
	{Rows: 5, Cols: 6, Top: -10, Bottom: 40, Left: 0, Right: 25.5, InteriorStart: 3, Tolerance: 0.01},
	{Rows: 7, Cols: 4, Top: 0.1, Bottom: 0.3, Left: 1e-9, Right: -7, InteriorStart: 100, Tolerance: 1e-6},
}

// TestSweep_BoundaryInvariance checks every boundary cell equals its
// configured constant, bit for bit, after 0..n sweeps.
func TestSweep_BoundaryInvariance(t *testing.T) {
	for _, cfg := range boundaryConfigs {
		s, err := plate.NewSolver(cfg)
		require.NoError(t, err)
		for n := 0; n <= 25; n++ {
			if n > 0 {
				s.Sweep()
			}
			snap := s.Snapshot()
			for r := 0; r < cfg.Rows; r++ {
				for c := 0; c < cfg.Cols; c++ {
					want, ok := cfg.BoundaryValue(r, c)
					if !ok {
						continue
					}
					got, err := snap.At(r, c)
					require.NoError(t, err)
					require.Equalf(t, math.Float64bits(want), math.Float64bits(got),
						"%dx%d sweep %d cell (%d,%d): got %v want %v", cfg.Rows, cfg.Cols, n, r, c, got, want)
				}
			}
		}
	}
}

// TestSweep_OnlyInteriorChanges compares consecutive snapshots: boundary
// cells must be bit-identical, and at least one interior cell must move on
// an unconverged sweep.
func TestSweep_OnlyInteriorChanges(t *testing.T) {
	for _, cfg := range boundaryConfigs {
		s, err := plate.NewSolver(cfg)
		require.NoError(t, err)
		before := s.Snapshot().Values()
		converged := false
		for i := 0; i < 10 && !converged; i++ {
			converged = s.Sweep()
			after := s.Snapshot().Values()
			moved := false
			for r := range before {
				for c := range before[r] {
					if plate.IsBoundary(cfg.Rows, cfg.Cols, r, c) {
						require.Equal(t, math.Float64bits(before[r][c]), math.Float64bits(after[r][c]))
					} else if before[r][c] != after[r][c] {
						moved = true
					}
				}
			}
			if !converged {
				require.True(t, moved, "unconverged sweep must move an interior cell")
			}
			before = after
		}
	}
}

// TestSweep_ConvergedIsFixedPoint re-sweeps a converged plate: the flag
// stays true and the state stays Converged.
func TestSweep_ConvergedIsFixedPoint(t *testing.T) {
	for _, cfg := range boundaryConfigs {
		s, err := plate.NewSolver(cfg)
		require.NoError(t, err)
		for !s.Sweep() {
		}
		require.Equal(t, plate.Converged, s.State())
		for i := 0; i < 5; i++ {
			require.True(t, s.Sweep())
			require.LessOrEqual(t, s.MaxDelta(), cfg.Tolerance)
			require.Equal(t, plate.Converged, s.State())
		}
	}
}

// TestSweep_SingleInteriorCell checks the 3×3 plate: its only interior cell
// lands exactly on the neighbour mean in one sweep and never moves again.
func TestSweep_SingleInteriorCell(t *testing.T) {
	cfg := plate.DefaultConfig()
	cfg.Rows, cfg.Cols = 3, 3
	s, err := plate.NewSolver(cfg)
	require.NoError(t, err)

	// 0 → 150 is a change of 150 > 0.2, so the first sweep is not converged.
	require.False(t, s.Sweep())
	require.Equal(t, [][]float64{{150}}, s.Snapshot().Interior())
	require.True(t, s.Sweep())
	require.Equal(t, 0.0, s.MaxDelta())
	require.Equal(t, [][]float64{{150}}, s.Snapshot().Interior())

	// Starting on the mean converges on the first sweep.
	cfg.InteriorStart = 150
	s, err = plate.NewSolver(cfg)
	require.NoError(t, err)
	require.True(t, s.Sweep())
	require.Equal(t, 1, s.Sweeps())
}

// TestSweep_ToleranceIsInclusive checks that a change equal to the
// tolerance counts as converged and a larger one does not.
func TestSweep_ToleranceIsInclusive(t *testing.T) {
	cfg := plate.Config{Rows: 3, Cols: 3, Top: 1, Bottom: 1, Left: 1, Right: 1, InteriorStart: 0.75, Tolerance: 0.25}
	s, err := plate.NewSolver(cfg)
	require.NoError(t, err)
	require.True(t, s.Sweep(), "|1 - 0.75| == 0.25 is converged")

	cfg.Tolerance = 0.125
	s, err = plate.NewSolver(cfg)
	require.NoError(t, err)
	require.False(t, s.Sweep(), "|1 - 0.75| > 0.125 is not converged")
}

// jacobiSweep is a double-buffered sweep used only to show that the
// in-place order matters.
func jacobiSweep(g [][]float64, tol float64) bool {
	src := make([][]float64, len(g))
	for r := range g {
		src[r] = append([]float64(nil), g[r]...)
	}
	converged := true
	for r := 1; r < len(g)-1; r++ {
		for c := 1; c < len(g[r])-1; c++ {
			nv := (src[r-1][c] + src[r+1][c] + src[r][c-1] + src[r][c+1]) / 4.0
			if math.Abs(nv-src[r][c]) > tol {
				converged = false
			}
			g[r][c] = nv
		}
	}
	return converged
}

// TestSweep_OrderSensitivity contrasts the in-place sweep with a Jacobi sweep
// on the reference plate: different first step, different sweep count.
func TestSweep_OrderSensitivity(t *testing.T) {
	s, err := plate.NewSolver(plate.DefaultConfig())
	require.NoError(t, err)
	g := s.Snapshot().Values()

	s.Sweep()
	jacobiSweep(g, plate.DefaultTolerance)
	require.Equal(t, [][]float64{{50, 75}, {75, 100}}, [][]float64{g[1][1:3], g[2][1:3]})
	require.NotEqual(t, s.Snapshot().Interior(), [][]float64{g[1][1:3], g[2][1:3]})

	jd, err := matrix.NewDenseFromRows(g)
	require.NoError(t, err)
	gap, err := matrix.MaxAbsDiff(s.Snapshot(), jd)
	require.NoError(t, err)
	require.Equal(t, 43.75, gap, "143.75 in place vs 100 double-buffered")

	jacobi := 1
	for !jacobiSweep(g, plate.DefaultTolerance) {
		jacobi++
	}
	jacobi++
	require.Equal(t, 10, jacobi)
}

//----------------------------------------------------------------------------//
// Lifecycle, Reset, determinism
//----------------------------------------------------------------------------//

// TestStateMachine walks Initialized → Sweeping → Converged.
func TestStateMachine(t *testing.T) {
	s, err := plate.NewSolver(plate.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, plate.Initialized, s.State())
	s.Sweep()
	require.Equal(t, plate.Sweeping, s.State())
	for !s.Sweep() {
		require.Equal(t, plate.Sweeping, s.State())
	}
	require.Equal(t, plate.Converged, s.State())

	require.Equal(t, "uninitialized", plate.Uninitialized.String())
	require.Equal(t, "initialized", plate.Initialized.String())
	require.Equal(t, "sweeping", plate.Sweeping.String())
	require.Equal(t, "converged", plate.Converged.String())
	require.Equal(t, "state(9)", plate.State(9).String())
}

// TestZeroSolver checks the Uninitialized zero value is inert.
func TestZeroSolver(t *testing.T) {
	var s plate.Solver
	require.Equal(t, plate.Uninitialized, s.State())
	require.True(t, s.Sweep())
	require.Equal(t, 0, s.Sweeps())
	s.Reset()
	require.Equal(t, plate.Uninitialized, s.State())

	snap := s.Snapshot()
	require.Equal(t, 0, snap.Rows())
	require.Equal(t, 0, snap.Cols())
	require.Nil(t, snap.Values())
	require.Nil(t, snap.Interior())
	_, err := snap.At(0, 0)
	require.Error(t, err)
	_, err = snap.Matrix()
	require.Error(t, err)
}

// TestReset_ReplaysTrajectory runs a plate to equilibrium twice with a Reset
// in between and compares every snapshot.
func TestReset_ReplaysTrajectory(t *testing.T) {
	s, err := plate.NewSolver(plate.DefaultConfig())
	require.NoError(t, err)

	run := func() [][][]float64 {
		frames := [][][]float64{s.Snapshot().Values()}
		for !s.Sweep() {
			frames = append(frames, s.Snapshot().Values())
		}
		return append(frames, s.Snapshot().Values())
	}
	first := run()
	s.Reset()
	require.Equal(t, plate.Initialized, s.State())
	require.Equal(t, 0, s.Sweeps())
	require.Equal(t, 0.0, s.MaxDelta())
	second := run()

	require.Len(t, first, 8)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("replay differs (-first +second):\n%s", diff)
	}
}

// TestDeterminism builds independent solvers from identical configs.
func TestDeterminism(t *testing.T) {
	for _, cfg := range boundaryConfigs {
		collect := func() [][][]float64 {
			s, err := plate.NewSolver(cfg)
			require.NoError(t, err)
			var frames [][][]float64
			_, err = plate.Solve(s, plate.WithObserver(func(snap plate.Snapshot) error {
				frames = append(frames, snap.Values())
				return nil
			}))
			require.NoError(t, err)
			return frames
		}
		require.Equal(t, collect(), collect())
	}
}

//----------------------------------------------------------------------------//
// Snapshot
//----------------------------------------------------------------------------//

// TestSnapshot_IsIsolated checks snapshots neither alias the solver nor each other.
func TestSnapshot_IsIsolated(t *testing.T) {
	s, err := plate.NewSolver(plate.DefaultConfig())
	require.NoError(t, err)
	snap := s.Snapshot()

	vals := snap.Values()
	vals[1][1] = 999
	inner := snap.Interior()
	inner[0][0] = 999
	v, err := snap.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	s.Sweep()
	v, err = snap.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, v, "old snapshot must not see later sweeps")

	v, err = s.Snapshot().At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 50.0, v)
}

// TestSnapshot_Matrix checks the gonum copy matches the grid.
func TestSnapshot_Matrix(t *testing.T) {
	s, err := plate.NewSolver(plate.DefaultConfig())
	require.NoError(t, err)
	s.Sweep()
	snap := s.Snapshot()

	m, err := snap.Matrix()
	require.NoError(t, err)
	r, c := m.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)
	require.Equal(t, 143.75, m.At(2, 2))
	require.Equal(t, 100.0, m.At(0, 3))

	_, err = snap.At(4, 0)
	require.Error(t, err)
}

//----------------------------------------------------------------------------//
// Cell classification
//----------------------------------------------------------------------------//

// TestCellClassification checks IsInterior, IsBoundary and BoundaryValue on a 4×5 plate.
func TestCellClassification(t *testing.T) {
	cfg := plate.Config{Rows: 4, Cols: 5, Top: 1, Bottom: 2, Left: 3, Right: 4}
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			interior := r >= 1 && r <= 2 && c >= 1 && c <= 3
			require.Equal(t, interior, plate.IsInterior(cfg.Rows, cfg.Cols, r, c))
			require.Equal(t, !interior, plate.IsBoundary(cfg.Rows, cfg.Cols, r, c))
			_, ok := cfg.BoundaryValue(r, c)
			require.Equal(t, !interior, ok)
		}
	}
	require.False(t, plate.IsBoundary(cfg.Rows, cfg.Cols, -1, 0))
	require.False(t, plate.IsBoundary(cfg.Rows, cfg.Cols, 0, 5))

	v, _ := cfg.BoundaryValue(0, 0)
	require.Equal(t, 1.0, v)
	v, _ = cfg.BoundaryValue(3, 4)
	require.Equal(t, 2.0, v)
	v, _ = cfg.BoundaryValue(2, 0)
	require.Equal(t, 3.0, v)
	v, _ = cfg.BoundaryValue(1, 4)
	require.Equal(t, 4.0, v)
}

// TestPaintGrid_ReportsBrokenInvariants checks painting fails loudly instead
// of leaving cells unpainted when the grid and config disagree.
func TestPaintGrid_ReportsBrokenInvariants(t *testing.T) {
	cfg := plate.DefaultConfig()

	small, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, plate.PaintGrid(small, cfg), matrix.ErrDimensionMismatch)

	grid, err := matrix.NewDense(cfg.Rows, cfg.Cols)
	require.NoError(t, err)
	bad := cfg
	bad.Right = math.NaN()
	require.ErrorIs(t, plate.PaintGrid(grid, bad), matrix.ErrNaNInf)

	require.NoError(t, plate.PaintGrid(grid, cfg))
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			got, err := grid.At(r, c)
			require.NoError(t, err)
			want, ok := cfg.BoundaryValue(r, c)
			if !ok {
				want = cfg.InteriorStart
			}
			require.Equalf(t, want, got, "cell (%d,%d)", r, c)
		}
	}
}
