package solver

import (
	"github.com/tholden/pulsedeck/pkg/circuit"
	"github.com/tholden/pulsedeck/pkg/memory"
)

// kFactor returns the branch-coupling scale for the KCL row belonging
// to global node g: 1 for an interior row, 0.5 for a row anchored at
// its branch's first or last node (spec.md §4.3, the "both conventions
// are legitimate" open question — this implementation picks the
// unscaled-boundary form and applies it consistently).
func kFactor(c *circuit.Circuit, g int) float64 {
	br, ok := c.BranchOf(g)
	if !ok {
		return 1
	}
	if g == br.FirstNode || g == br.LastNode {
		return 0.5
	}
	return 1
}

// applyCouplings overwrites each attached child's first-node KCL row
// with a continuity constraint and adds the corresponding coupling
// term to the parent row(s), per spec.md §4.3. Must run after
// assembleStencil has populated the base system for every node.
func applyCouplings(c *circuit.Circuit, mem *memory.Memory) {
	for _, att := range c.Attachments {
		childBranch := c.Branches[att.ChildBranch]
		gc := childBranch.FirstNode
		rKc := kclRow(c.Nodes[gc].Kind, gc)

		switch att.Kind {
		case circuit.AttachEnd:
			gp := att.ParentNode
			rKp := kclRow(c.Nodes[gp].Kind, gp)
			mem.AddBand(rKp, 2*gc+1, kFactor(c, gp))

			mem.ClearRow(rKc)
			mem.AddBand(rKc, 2*gc, 1)
			mem.AddBand(rKc, 2*gp, -1)
			mem.B[rKc] = 0

		case circuit.AttachTop:
			gl, gr := att.ParentLeft, att.ParentRight
			rKl := kclRow(c.Nodes[gl].Kind, gl)
			rKr := kclRow(c.Nodes[gr].Kind, gr)
			mem.AddBand(rKl, 2*gc+1, kFactor(c, gl))
			mem.AddBand(rKr, 2*gc+1, -kFactor(c, gr))

			mem.ClearRow(rKc)
			mem.AddBand(rKc, 2*gc, 1)
			mem.AddBand(rKc, 2*gl, -1)
			mem.AddBand(rKc, 2*gr, 1)
			mem.B[rKc] = 0
		}
	}
}
