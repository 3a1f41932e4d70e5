package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tholden/pulsedeck/pkg/memory"
)

// solveGeneral rebuilds the full n x n system from the band arrays plus
// the sparse edit log and solves it with a dense LU decomposition
// (spec.md §4.3: "a dense solve if N is modest" — pulsed-power decks
// are small enough, even with several attached branches, that this
// fallback never needs a true sparse factorization). The result is
// written back into mem.B, matching solveBand's output convention.
func solveGeneral(mem *memory.Memory) error {
	n := len(mem.D)
	a := mat.NewDense(n, n, nil)

	for i := 0; i < n; i++ {
		set(a, n, i, i, mem.D[i])
		if i+1 < n {
			set(a, n, i, i+1, mem.U1[i])
		}
		if i-1 >= 0 {
			set(a, n, i, i-1, mem.L1[i])
		}
		if i+2 < n {
			set(a, n, i, i+2, mem.U2[i])
		}
		if i-2 >= 0 {
			set(a, n, i, i-2, mem.L2[i])
		}
	}
	for _, e := range mem.Edits {
		a.Set(e.Row, e.Col, a.At(e.Row, e.Col)+e.Value)
	}

	rhs := mat.NewVecDense(n, mem.B)
	var x mat.VecDense
	if err := x.SolveVec(a, rhs); err != nil {
		return &SolveError{Msg: "singular system: " + err.Error()}
	}
	for i := 0; i < n; i++ {
		mem.B[i] = x.AtVec(i)
	}
	return nil
}

func set(a *mat.Dense, n, row, col int, v float64) {
	if row < 0 || row >= n || col < 0 || col >= n {
		return
	}
	a.Set(row, col, a.At(row, col)+v)
}
