package solver

import (
	"math"

	"github.com/tholden/pulsedeck/pkg/memory"
)

// floor is the diagonal pivot guard from spec.md §4.3: any diagonal
// entry smaller in magnitude than this is floored to the same sign
// times this value before it is used as a divisor.
const floor = 1e-25

// solveBand eliminates the pure-series pentadiagonal system in place
// via a single forward sweep and back-substitution, with no pivoting
// (spec.md §4.3 step 1-2). Only valid when mem.Edits is empty, i.e. no
// branch attachments touched this assembly.
func solveBand(mem *memory.Memory) {
	d, l1, u1, l2, u2, b := mem.D, mem.L1, mem.U1, mem.L2, mem.U2, mem.B
	n := len(d)

	for i := 0; i <= n-2; i++ {
		floorPivot(d, i)
		if l1[i+1] != 0 {
			f := l1[i+1] / d[i]
			d[i+1] -= f * u1[i]
			u1[i+1] -= f * u2[i]
			b[i+1] -= f * b[i]
		}
		if i <= n-3 && l2[i+2] != 0 {
			f := l2[i+2] / d[i]
			l1[i+2] -= f * u1[i]
			d[i+2] -= f * u2[i]
			b[i+2] -= f * b[i]
		}
	}

	floorPivot(d, n-1)
	b[n-1] /= d[n-1]
	b[n-2] = (b[n-2] - u1[n-2]*b[n-1]) / d[n-2]
	for i := n - 3; i >= 0; i-- {
		b[i] = (b[i] - u1[i]*b[i+1] - u2[i]*b[i+2]) / d[i]
	}
}

func floorPivot(d []float64, i int) {
	if math.Abs(d[i]) < floor {
		d[i] = math.Copysign(floor, d[i])
	}
}
