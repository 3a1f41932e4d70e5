// Package solver implements the theta-method stencil, branch-coupling
// edits, and both elimination paths described in spec.md §4.3: a
// hand-written pentadiagonal forward sweep for pure-series circuits,
// and a dense LU fallback (via gonum/mat) once branch attachments
// introduce off-band entries.
package solver

import (
	"sync/atomic"

	"github.com/tholden/pulsedeck/pkg/circuit"
	"github.com/tholden/pulsedeck/pkg/memory"
)

// Stats holds running counters a driver can sample concurrently with
// Step, mirroring the atomic checked/found counters the teacher's
// worker pool exposes for progress reporting.
type Stats struct {
	Steps        atomic.Uint64
	GeneralSolve atomic.Uint64
}

// Solver advances one Circuit's state vectors one fixed timestep at a
// time. It owns the coefficient memory and the double-buffered state;
// callers read results through State after each Step.
type Solver struct {
	Circuit *circuit.Circuit
	Mem     *memory.Memory
	State   *memory.StateBuffers
	Stats   Stats
}

// New builds a Solver for c, seeding V_old from every node's InitialV
// (zero where unset) and zeroing all currents.
func New(c *circuit.Circuit) *Solver {
	n := c.N()
	initial := make([]float64, n)
	for i, node := range c.Nodes {
		if node.InitialV != nil {
			initial[i] = *node.InitialV
		}
	}
	return &Solver{
		Circuit: c,
		Mem:     memory.New(n),
		State:   memory.NewStateBuffers(n, initial),
	}
}

// Step advances the circuit to time t: it updates switch resistances,
// assembles the per-step stencil, applies branch-coupling edits,
// eliminates the system, writes V_new/I_new, and swaps the buffers so
// State.VOld/IOld reflect the result of this step on return.
func (s *Solver) Step(t float64) error {
	s.Stats.Steps.Add(1)
	updateSwitches(s.Circuit, t)

	s.Mem.Clear()
	assembleStencil(s.Circuit, s.Mem, s.State, s.Circuit.Dt)

	branched := len(s.Circuit.Attachments) > 0
	if branched {
		applyCouplings(s.Circuit, s.Mem)
	}

	if branched || len(s.Mem.Edits) > 0 {
		s.Stats.GeneralSolve.Add(1)
		if err := solveGeneral(s.Mem); err != nil {
			return err
		}
	} else {
		solveBand(s.Mem)
	}

	n := s.Circuit.N()
	for i := 0; i < n; i++ {
		s.State.VNew[i] = s.Mem.B[2*i]
		s.State.INew[i] = s.Mem.B[2*i+1]
	}
	s.State.Swap()
	return nil
}
