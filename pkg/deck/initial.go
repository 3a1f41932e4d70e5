package deck

import (
	"strconv"
	"strings"

	"github.com/tholden/pulsedeck/pkg/circuit"
)

// applyInitial implements "INITIAL <label> <V>" (spec.md §4.2). The
// label is the print name referenced nowhere else in the numeric
// pipeline; only V and the target block matter here.
func (c *compiler) applyInitial(line int, args []string) error {
	if len(c.blocks) == 0 {
		return &TopologyError{Reason: AnchorMissing, Line: line}
	}
	if len(args) < 2 {
		return &CompileError{Line: line, Token: "", Msg: "missing INITIAL arguments"}
	}
	v, err := c.number(line, args, 1)
	if err != nil {
		return err
	}

	block := c.blocks[len(c.blocks)-1]
	val := v

	if block.Type == circuit.BlockTRL {
		for i := block.FirstNode; i <= block.LastNode; i++ {
			if c.nodes[i].InitialV == nil {
				c.nodes[i].InitialV = &val
			}
		}
		return nil
	}

	// Lumped block: walk from last to first, find the first
	// non-phantom RC_GROUND, then continue backward assigning the
	// same V to contiguous phantom nodes.
	found := false
	for i := block.LastNode; i >= block.FirstNode; i-- {
		n := &c.nodes[i]
		if !found {
			if n.Kind == circuit.RCGround && !n.IsPhantom {
				n.InitialV = &val
				found = true
			}
			continue
		}
		if n.IsPhantom {
			n.InitialV = &val
			continue
		}
		break
	}
	return nil
}

// registerProbe implements "TXT <label>" (spec.md §4.2): a label
// starting with I probes current at the node just before the block's
// start (node 0 if the block begins at index 0); a label starting with
// V probes voltage at the block's last non-phantom node. Labels are
// deduplicated with a running "_N" suffix on collision.
func (c *compiler) registerProbe(line int, args []string) error {
	if len(args) < 1 {
		return &CompileError{Line: line, Token: "", Msg: "missing TXT label"}
	}
	if len(c.blocks) == 0 {
		return &TopologyError{Reason: AnchorMissing, Line: line}
	}
	label := args[0]
	block := c.blocks[len(c.blocks)-1]

	var kind circuit.ProbeKind
	var node int

	switch {
	case strings.HasPrefix(strings.ToUpper(label), "I"):
		kind = circuit.ProbeCurrent
		if block.FirstNode == 0 {
			node = 0
		} else {
			node = block.FirstNode - 1
		}
	case strings.HasPrefix(strings.ToUpper(label), "V"):
		kind = circuit.ProbeVoltage
		node = lastNonPhantom(c.nodes, block)
	default:
		return &CompileError{Line: line, Token: label, Msg: "probe label must start with I or V"}
	}

	c.probes = append(c.probes, circuit.Probe{Kind: kind, NodeIndex: node, Label: c.dedupLabel(label)})
	return nil
}

// lastNonPhantom returns the block's last non-phantom node, or its
// last node if every node in the block is phantom.
func lastNonPhantom(nodes []circuit.Node, b circuit.Block) int {
	for i := b.LastNode; i >= b.FirstNode; i-- {
		if !nodes[i].IsPhantom {
			return i
		}
	}
	return b.LastNode
}

func (c *compiler) dedupLabel(label string) string {
	n := c.labelCount[label]
	c.labelCount[label] = n + 1
	if n == 0 {
		return label
	}
	return label + "_" + strconv.Itoa(n)
}
