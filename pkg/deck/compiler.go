// Package deck compiles the pulsed-power input deck described in
// spec.md §4.2/§6 into a circuit.Circuit: one physical/phantom node
// chain per branch, with attachment edits recorded for the solver.
package deck

import (
	"strconv"
	"strings"

	"github.com/tholden/pulsedeck/pkg/circuit"
)

// defaultResolutionDivisor is the fallback TRL resolution when neither a
// per-line override nor TRLINE-RESOLUTION is given: globalResolution/2.
const defaultResolutionDivisor = 2.0

type pendingCall struct {
	kind         circuit.AttachKind
	parentBranch int
	parentNode   int // AttachEnd
	parentLeft   int // AttachTop
	parentRight  int // AttachTop
	line         int
}

// compiler accumulates state across a single pass over the deck text.
type compiler struct {
	nodes       []circuit.Node
	blocks      []circuit.Block
	branches    []circuit.Branch
	attachments []circuit.Attachment
	probes      []circuit.Probe

	dt               float64
	tEnd             float64
	resolutionTime   float64
	trlineResolution float64
	trlineResSet     bool

	currentBranch int // -1 until the first BRANCH statement
	pending       []pendingCall

	// blocksInBranch[id] lists global block indices added while
	// branch id was current — used by ENDBRANCH to record its anchor
	// block for the EndbranchOnFinalBlock check. Anchor nodes
	// themselves come from physicalInBranch.
	blocksInBranch map[int][]int
	// physicalInBranch[id] lists global node indices of non-phantom
	// nodes added while branch id was current, in emission order.
	physicalInBranch map[int][]int

	labelCount map[string]int

	// pendingMainEndAnchorBlock tracks an ENDBRANCH issued while
	// building the main branch (id 0) whose anchor block has not yet
	// been followed by another block in the main branch. If the main
	// branch closes (another BRANCH starts, or EOF) while this is
	// still set, that is a compile error (spec.md §4.2).
	pendingMainEndAnchorBlock int
	pendingMainEndAnchorLine  int
}

func newCompiler() *compiler {
	return &compiler{
		resolutionTime:            0,
		currentBranch:             -1,
		blocksInBranch:            make(map[int][]int),
		physicalInBranch:          make(map[int][]int),
		labelCount:                make(map[string]int),
		pendingMainEndAnchorBlock: -1,
	}
}

// Compile parses deck text into a Circuit, applying every command in
// spec.md §4.2/§6 and enforcing the branch-structure rules in order.
func Compile(text string) (*circuit.Circuit, error) {
	c := newCompiler()

	lines := strings.Split(text, "\n")
	lastLine := 0
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		lastLine = lineNo

		fields := strings.Fields(line)
		cmd := strings.ToUpper(fields[0])
		args := fields[1:]

		if err := c.dispatch(lineNo, cmd, args); err != nil {
			return nil, err
		}
	}

	if c.currentBranch >= 0 {
		if err := c.closeBranch(lastLine); err != nil {
			return nil, err
		}
	}
	if len(c.pending) > 0 {
		return nil, &TopologyError{Reason: UnboundBranch, Line: lastLine}
	}

	out := &circuit.Circuit{
		Nodes:       c.nodes,
		Blocks:      c.blocks,
		Branches:    c.branches,
		Attachments: c.attachments,
		Probes:      c.probes,
		Dt:          c.dt,
		TEnd:        c.tEnd,
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *compiler) dispatch(line int, cmd string, args []string) error {
	switch cmd {
	case "TIME-STEP":
		v, err := c.number(line, args, 0)
		if err != nil {
			return err
		}
		c.dt = v
	case "END-TIME":
		v, err := c.number(line, args, 0)
		if err != nil {
			return err
		}
		c.tEnd = v
	case "RESOLUTION-TIME":
		v, err := c.number(line, args, 0)
		if err != nil {
			return err
		}
		c.resolutionTime = v
	case "TRLINE-RESOLUTION":
		v, err := c.number(line, args, 0)
		if err != nil {
			return err
		}
		c.trlineResolution = v
		c.trlineResSet = true
	case "RCG":
		return c.emitRCG(line, args)
	case "RLS":
		return c.emitRLS(line, args)
	case "SWITCH":
		return c.emitSwitch(line, args)
	case "TRL":
		return c.emitTRL(line, args)
	case "INITIAL":
		return c.applyInitial(line, args)
	case "TXT":
		return c.registerProbe(line, args)
	case "BRANCH":
		return c.doBranch(line)
	case "TOPBRANCH":
		return c.doTopbranch(line)
	case "ENDBRANCH":
		return c.doEndbranch(line)
	default:
		// Unknown command: ignored for forward compatibility.
	}
	return nil
}

// number parses args[idx] as a float, reporting line/token on failure.
func (c *compiler) number(line int, args []string, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, &CompileError{Line: line, Token: "", Msg: "missing numeric argument"}
	}
	v, err := strconv.ParseFloat(args[idx], 64)
	if err != nil {
		return 0, &CompileError{Line: line, Token: args[idx], Msg: "invalid number"}
	}
	return v, nil
}

// optionalNumber parses args[idx] if present, otherwise returns def.
func (c *compiler) optionalNumber(line int, args []string, idx int, def float64) (float64, error) {
	if idx >= len(args) {
		return def, nil
	}
	return c.number(line, args, idx)
}
