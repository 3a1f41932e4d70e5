package memory

// StateBuffers double-buffers the per-node voltage and current
// unknowns. V_old/I_old hold the previous step's solution; V_new/I_new
// are populated by the solver and promoted to "old" by Swap.
//
// All four slices are owned exclusively here. Swap exchanges ownership
// by re-slicing, never by copying element-by-element.
type StateBuffers struct {
	VOld, IOld []float64
	VNew, INew []float64
}

// NewStateBuffers allocates buffers for n nodes. VOld is seeded from
// initial (a nil or shorter slice leaves the remaining entries zero);
// all currents start at zero.
func NewStateBuffers(n int, initial []float64) *StateBuffers {
	vOld := make([]float64, n)
	if initial != nil {
		copy(vOld, initial)
	}
	return &StateBuffers{
		VOld: vOld,
		IOld: make([]float64, n),
		VNew: make([]float64, n),
		INew: make([]float64, n),
	}
}

// Swap exchanges the (VOld, VNew) and (IOld, INew) buffer pairs. Two
// consecutive calls restore pointer identity (spec.md §8).
func (s *StateBuffers) Swap() {
	s.VOld, s.VNew = s.VNew, s.VOld
	s.IOld, s.INew = s.INew, s.IOld
}
