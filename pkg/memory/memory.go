// Package memory owns the per-timestep coefficient storage and the
// double-buffered state vectors consumed by pkg/solver. Every slice is
// sized once at construction; Clear and Swap never allocate, matching
// the no-allocation-inside-step requirement in spec.md §5.
package memory

// SparseEdit is one off-band or constraint-row entry produced by branch
// coupling, applied after the base pentadiagonal stencil is assembled.
type SparseEdit struct {
	Row, Col int
	Value    float64
}

// Memory holds the flat coefficient arrays for a 2N×2N system: the main
// diagonal D, the adjacent off-diagonals L1/U1, the two-off diagonals
// L2/U2, the right-hand side B, and the sparse edit log used for branch
// couplings and constraint-row overwrites.
type Memory struct {
	D, L1, U1, L2, U2, B []float64
	Edits                []SparseEdit
}

// New allocates a Memory sized for a system of 2*n unknowns.
func New(n int) *Memory {
	size := 2 * n
	return &Memory{
		D:     make([]float64, size),
		L1:    make([]float64, size),
		U1:    make([]float64, size),
		L2:    make([]float64, size),
		U2:    make([]float64, size),
		B:     make([]float64, size),
		Edits: make([]SparseEdit, 0, 16),
	}
}

// Clear zeroes all diagonals and the right-hand side, and empties the
// sparse edit log without releasing its backing array. Called at the
// start of every step because coefficients depend on current element
// values and on dt.
func (m *Memory) Clear() {
	zero(m.D)
	zero(m.L1)
	zero(m.U1)
	zero(m.L2)
	zero(m.U2)
	zero(m.B)
	m.Edits = m.Edits[:0]
}

// AddEdit appends a sparse entry to the edit log. Multiple edits to the
// same (row, col) accumulate by addition, matching the "+K(...)" style
// contributions in spec.md §4.3; callers that need to overwrite a row
// instead should clear the row with ClearRow and add fresh edits (as
// pkg/solver's applyCouplings does for constraint rows).
func (m *Memory) AddEdit(row, col int, value float64) {
	m.Edits = append(m.Edits, SparseEdit{Row: row, Col: col, Value: value})
}

// AddBand accumulates value into the band entry at (row, col) when col
// falls within the pentadiagonal offsets {-2,-1,0,+1,+2} of row, and
// into the sparse edit log otherwise. This is the single entry point
// pkg/solver uses to place stencil and branch-coupling coefficients,
// so callers never need to know whether a given column lands in-band.
func (m *Memory) AddBand(row, col int, value float64) {
	switch col - row {
	case -2:
		m.L2[row] += value
	case -1:
		m.L1[row] += value
	case 0:
		m.D[row] += value
	case 1:
		m.U1[row] += value
	case 2:
		m.U2[row] += value
	default:
		m.AddEdit(row, col, value)
	}
}

// ClearRow zeroes every band entry belonging to row and discards any
// sparse edits already logged against it, so a caller can overwrite the
// row entirely (used for branch constraint rows). It does not touch B;
// callers set the row's RHS directly.
func (m *Memory) ClearRow(row int) {
	m.D[row] = 0
	m.L1[row] = 0
	m.U1[row] = 0
	m.L2[row] = 0
	m.U2[row] = 0
	kept := m.Edits[:0]
	for _, e := range m.Edits {
		if e.Row != row {
			kept = append(kept, e)
		}
	}
	m.Edits = kept
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
