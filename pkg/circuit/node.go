// Package circuit holds the static data model produced by the deck
// compiler: nodes, blocks, branches, attachments, and probes.
package circuit

// NodeKind selects which physical equation a node carries.
type NodeKind uint8

const (
	// RCGround nodes carry a KCL (current-balance) equation with a
	// shunt conductance G and capacitance C to ground.
	RCGround NodeKind = iota
	// RLSeries nodes carry a voltage-drop equation across a series
	// R, L to the next node.
	RLSeries
)

func (k NodeKind) String() string {
	if k == RCGround {
		return "RC_GROUND"
	}
	return "RL_SERIES"
}

// SwitchKind tags which time schedule a switch node follows.
type SwitchKind uint8

const (
	// SwitchNone means the node is not a switch; R is constant.
	SwitchNone SwitchKind = iota
	// SwitchInstant flips R from ROpen to RClose at TSwitch.
	SwitchInstant
	// SwitchExponential decays R from R1+R2 toward RClose after TSwitch.
	SwitchExponential
)

// Switch is a tagged union of the two switch schedules the deck
// recognizes. Only the fields for Kind are meaningful.
type Switch struct {
	Kind    SwitchKind
	ROpen   float64 // SwitchInstant
	RClose  float64 // both kinds ("R2" in the exponential literature)
	TSwitch float64 // both kinds

	R1 float64 // SwitchExponential: initial resistance is R1+R2
	K  float64 // SwitchExponential: decay rate
}

// Node is one physical unknown pair (V_i, I_i) plus the element
// attributes that govern its row of the per-step linear system.
//
// Node is a plain struct with explicit optional fields rather than a
// dynamically-growing record: InitialV and Sw are nil until the deck
// sets them, everything else is always present.
type Node struct {
	Kind NodeKind

	R, L, G, C float64

	IsPhantom bool

	// InitialV is non-nil once an INITIAL statement (or TRL node
	// default) has assigned a starting voltage to this node.
	InitialV *float64

	// Sw is non-nil only for nodes created by a SWITCH statement.
	Sw *Switch
}

// IsSwitch reports whether this node's resistance is time-varying.
func (n *Node) IsSwitch() bool {
	return n.Sw != nil && n.Sw.Kind != SwitchNone
}
