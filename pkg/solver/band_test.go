package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tholden/pulsedeck/pkg/memory"
)

// solveBand must reproduce a plain tridiagonal solve when L2/U2 are
// zero: here 2x + y = 5, x + 2y = 4 embedded as a 2x2 band system.
func TestSolveBandTridiagonal(t *testing.T) {
	mem := memory.New(1)
	mem.D[0], mem.U1[0], mem.B[0] = 2, 1, 5
	mem.L1[1], mem.D[1], mem.B[1] = 1, 2, 4

	solveBand(mem)

	require.InDelta(t, 2.0, mem.B[0], 1e-9)
	require.InDelta(t, 1.0, mem.B[1], 1e-9)
}

func TestSolveBandFloorsNearZeroDiagonal(t *testing.T) {
	mem := memory.New(1)
	mem.D[0] = 0
	mem.U1[0] = 1
	mem.B[0] = 1
	mem.D[1] = 1
	mem.B[1] = 2

	require.NotPanics(t, func() { solveBand(mem) })
	require.False(t, isNaNOrInf(mem.B[0]))
	require.False(t, isNaNOrInf(mem.B[1]))
}

func TestSolveBandFiveWideSystem(t *testing.T) {
	// Three nodes (six unknowns) on the full band storage: a pure-identity
	// system (D=1, every off-diagonal zero) must return the RHS unchanged.
	mem := memory.New(3)
	for i := range mem.D {
		mem.D[i] = 1
		mem.B[i] = float64(i + 1)
	}
	solveBand(mem)
	for i := range mem.D {
		require.InDelta(t, float64(i+1), mem.B[i], 1e-9)
	}
}

func isNaNOrInf(v float64) bool {
	return v != v || v > 1e300 || v < -1e300
}
