package solver

import (
	"github.com/tholden/pulsedeck/pkg/circuit"
	"github.com/tholden/pulsedeck/pkg/memory"
)

// Theta is the trapezoidal-leaning weight of the implicit integrator
// (spec.md §4.3). Mild numerical damping relative to Crank-Nicolson's
// theta=0.5.
const Theta = 0.55

// kclRow and voltageRow return the two interleaved row indices for node
// i, with the row-swap convention that keeps the non-zero pattern
// pentadiagonal: RC_GROUND nodes carry the voltage row at 2i+1, the KCL
// row at 2i; RL_SERIES nodes carry voltage at 2i, KCL at 2i+1.
func kclRow(kind circuit.NodeKind, i int) int {
	if kind == circuit.RCGround {
		return 2 * i
	}
	return 2*i + 1
}

func voltageRow(kind circuit.NodeKind, i int) int {
	if kind == circuit.RCGround {
		return 2*i + 1
	}
	return 2 * i
}

// assembleStencil fills mem with the base pentadiagonal system for
// every node at time t, before any branch-coupling edits are applied.
// dt is the circuit's fixed timestep.
func assembleStencil(c *circuit.Circuit, mem *memory.Memory, state *memory.StateBuffers, dt float64) {
	n := c.N()
	for i := 0; i < n; i++ {
		node := c.Nodes[i]
		av := Theta*node.G + node.C/dt
		ai := Theta*node.R + node.L/dt

		rI := kclRow(node.Kind, i)
		rV := voltageRow(node.Kind, i)

		mem.AddBand(rI, 2*i, av)
		mem.AddBand(rI, 2*i+1, Theta)
		iPrev := 0.0
		if i > 0 {
			mem.AddBand(rI, 2*i-1, -Theta)
			iPrev = state.IOld[i-1]
		}
		mem.B[rI] += (1-Theta)*(iPrev-state.IOld[i]) + (node.C/dt-(1-Theta)*node.G)*state.VOld[i]

		if i == n-1 {
			mem.AddBand(rV, 2*i+1, 1)
			continue
		}
		mem.AddBand(rV, 2*i, Theta)
		mem.AddBand(rV, 2*i+1, -ai)
		mem.AddBand(rV, 2*i+2, -Theta)
		mem.B[rV] += (1-Theta)*(state.VOld[i+1]-state.VOld[i]) - (node.L/dt-(1-Theta)*node.R)*state.IOld[i]
	}
}
