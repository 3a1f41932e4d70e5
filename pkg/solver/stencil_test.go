package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tholden/pulsedeck/pkg/circuit"
	"github.com/tholden/pulsedeck/pkg/memory"
)

func twoNodeRCG(r, c float64) *circuit.Circuit {
	return &circuit.Circuit{
		Nodes: []circuit.Node{
			{Kind: circuit.RCGround, R: r, G: 1 / r, C: c},
			{Kind: circuit.RLSeries, R: 1e-7, L: 1e-11, IsPhantom: true},
		},
		Dt: 1e-8,
	}
}

func TestAssembleStencilRowPlacement(t *testing.T) {
	circ := twoNodeRCG(10, 1e-9)
	mem := memory.New(circ.N())
	state := memory.NewStateBuffers(circ.N(), nil)
	state.VOld[0] = 100

	assembleStencil(circ, mem, state, circ.Dt)

	av0 := Theta*circ.Nodes[0].G + circ.Nodes[0].C/circ.Dt
	require.InDelta(t, av0, mem.D[0], 1e-12, "node 0 KCL row lands on the diagonal for RC_GROUND")
	require.InDelta(t, Theta, mem.U1[0], 1e-12)

	// node 1 is the last node: its voltage row enforces I=0.
	require.InDelta(t, 1.0, mem.U1[2], 1e-12, "last node's voltage row is +1 at column 2i+1")

	// node 1's KCL row sits at row 3 (RL_SERIES), columns {1,2,3}.
	av1 := Theta*circ.Nodes[1].G + circ.Nodes[1].C/circ.Dt
	require.InDelta(t, -Theta, mem.L2[3], 1e-12)
	require.InDelta(t, av1, mem.L1[3], 1e-9)
	require.InDelta(t, Theta, mem.D[3], 1e-12)
}

func TestAssembleStencilRHSUsesPreviousState(t *testing.T) {
	circ := twoNodeRCG(10, 1e-9)
	mem := memory.New(circ.N())
	state := memory.NewStateBuffers(circ.N(), nil)
	state.VOld[0] = 50
	state.IOld[0] = 2

	assembleStencil(circ, mem, state, circ.Dt)

	want := (circ.Nodes[0].C/circ.Dt - (1-Theta)*circ.Nodes[0].G) * 50
	want += (1 - Theta) * (0 - 2)
	require.InDelta(t, want, mem.B[0], 1e-9)
}
