package deck

import (
	"math"
	"strings"

	"github.com/tholden/pulsedeck/pkg/circuit"
)

// Phantom/parasitic floors from spec.md §7 — documented design choices,
// never adjusted by the compiler based on input values.
const (
	rcgPhantomR   = 1e-7
	rcgPhantomL   = 1e-11
	switchL       = 1e-9
	shortCircuitG = 1e9
)

// addNode appends a node, updates the current branch's span, and
// records it in the branch-local physical-node history when it is not
// a phantom.
func (c *compiler) addNode(n circuit.Node) int {
	idx := len(c.nodes)
	c.nodes = append(c.nodes, n)

	br := &c.branches[c.currentBranch]
	br.LastNode = idx

	if !n.IsPhantom {
		c.physicalInBranch[c.currentBranch] = append(c.physicalInBranch[c.currentBranch], idx)
	}
	return idx
}

// addBlock records a block spanning [first,last] in the current branch
// and clears any pending "endbranch anchored the final block" flag for
// the main branch, since a new block now follows it.
func (c *compiler) addBlock(t circuit.BlockType, first, last int) {
	blockIdx := len(c.blocks)
	c.blocks = append(c.blocks, circuit.Block{Type: t, FirstNode: first, LastNode: last})
	c.blocksInBranch[c.currentBranch] = append(c.blocksInBranch[c.currentBranch], blockIdx)

	if c.currentBranch == 0 {
		c.pendingMainEndAnchorBlock = -1
	}
}

func (c *compiler) requireBranchOpen(line int) error {
	if c.currentBranch < 0 {
		return &TopologyError{Reason: AnchorMissing, Line: line}
	}
	return nil
}

// emitRCG implements "RCG <R> [C]" (spec.md §4.2).
func (c *compiler) emitRCG(line int, args []string) error {
	if err := c.requireBranchOpen(line); err != nil {
		return err
	}
	r, err := c.number(line, args, 0)
	if err != nil {
		return err
	}
	capacitance, err := c.optionalNumber(line, args, 1, 0)
	if err != nil {
		return err
	}

	g := shortCircuitG
	if r != 0 {
		g = 1 / r
	}

	first := len(c.nodes)
	c.addNode(circuit.Node{Kind: circuit.RCGround, R: r, G: g, C: capacitance})
	c.addNode(circuit.Node{Kind: circuit.RLSeries, R: rcgPhantomR, L: rcgPhantomL, IsPhantom: true})
	c.addBlock(circuit.BlockRCG, first, len(c.nodes)-1)
	return nil
}

// emitRLS implements "RLS <R> [L]" (spec.md §4.2).
func (c *compiler) emitRLS(line int, args []string) error {
	if err := c.requireBranchOpen(line); err != nil {
		return err
	}
	r, err := c.number(line, args, 0)
	if err != nil {
		return err
	}
	l, err := c.optionalNumber(line, args, 1, 0)
	if err != nil {
		return err
	}

	first := len(c.nodes)
	c.addNode(circuit.Node{Kind: circuit.RCGround, IsPhantom: true})
	c.addNode(circuit.Node{Kind: circuit.RLSeries, R: r, L: l})
	c.addBlock(circuit.BlockRLS, first, len(c.nodes)-1)
	return nil
}

// emitSwitch implements "SWITCH INSTANT ..." / "SWITCH EXPONENTIAL ..."
// (spec.md §4.2).
func (c *compiler) emitSwitch(line int, args []string) error {
	if err := c.requireBranchOpen(line); err != nil {
		return err
	}
	if len(args) == 0 {
		return &CompileError{Line: line, Token: "", Msg: "missing switch kind"}
	}
	kind := strings.ToUpper(args[0])
	rest := args[1:]

	var sw circuit.Switch
	var initialR float64
	switch kind {
	case "INSTANT":
		rOpen, err := c.number(line, rest, 0)
		if err != nil {
			return err
		}
		rClose, err := c.number(line, rest, 1)
		if err != nil {
			return err
		}
		tSwitch, err := c.number(line, rest, 2)
		if err != nil {
			return err
		}
		sw = circuit.Switch{Kind: circuit.SwitchInstant, ROpen: rOpen, RClose: rClose, TSwitch: tSwitch}
		initialR = rOpen
	case "EXPONENTIAL":
		r1, err := c.number(line, rest, 0)
		if err != nil {
			return err
		}
		r2, err := c.number(line, rest, 1)
		if err != nil {
			return err
		}
		k, err := c.number(line, rest, 2)
		if err != nil {
			return err
		}
		tSwitch, err := c.number(line, rest, 3)
		if err != nil {
			return err
		}
		sw = circuit.Switch{Kind: circuit.SwitchExponential, R1: r1, RClose: r2, K: k, TSwitch: tSwitch}
		initialR = r1 + r2
	default:
		return &CompileError{Line: line, Token: args[0], Msg: "unknown switch kind"}
	}

	first := len(c.nodes)
	c.addNode(circuit.Node{Kind: circuit.RCGround, IsPhantom: true})
	swNode := circuit.Node{Kind: circuit.RLSeries, R: initialR, L: switchL, Sw: &sw}
	c.addNode(swNode)
	c.addBlock(circuit.BlockSwitch, first, len(c.nodes)-1)
	return nil
}

// emitTRL implements "TRL LINEAR <delay> <Z> [resolution]" (spec.md
// §4.2). Each segment appends four nodes: real RC_GROUND, phantom
// RL_SERIES, phantom RC_GROUND, real RL_SERIES.
func (c *compiler) emitTRL(line int, args []string) error {
	if err := c.requireBranchOpen(line); err != nil {
		return err
	}
	if len(args) == 0 || strings.ToUpper(args[0]) != "LINEAR" {
		return &CompileError{Line: line, Token: strings.Join(args, " "), Msg: "unknown TRL kind"}
	}
	rest := args[1:]
	delay, err := c.number(line, rest, 0)
	if err != nil {
		return err
	}
	z, err := c.number(line, rest, 1)
	if err != nil {
		return err
	}

	res := c.resolutionTime / defaultResolutionDivisor
	if c.trlineResSet {
		res = c.trlineResolution
	}
	if len(rest) > 2 {
		v, err := c.number(line, rest, 2)
		if err != nil {
			return err
		}
		res = v
	}

	segments := 1
	if res > 0 {
		segments = int(math.Round(delay / res))
		if segments < 1 {
			segments = 1
		}
	}

	cSeg := (delay / z) / float64(segments)
	lSeg := (z * delay) / float64(segments)

	first := len(c.nodes)
	for i := 0; i < segments; i++ {
		c.addNode(circuit.Node{Kind: circuit.RCGround, C: cSeg})
		c.addNode(circuit.Node{Kind: circuit.RLSeries, R: rcgPhantomR, IsPhantom: true})
		c.addNode(circuit.Node{Kind: circuit.RCGround, G: 1e-9, IsPhantom: true})
		c.addNode(circuit.Node{Kind: circuit.RLSeries, L: lSeg})
	}
	c.addBlock(circuit.BlockTRL, first, len(c.nodes)-1)
	return nil
}
