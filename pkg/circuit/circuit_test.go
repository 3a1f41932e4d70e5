package circuit

import "testing"

func TestValidateCatchesOutOfRangeProbe(t *testing.T) {
	c := &Circuit{
		Nodes:  make([]Node, 2),
		Probes: []Probe{{Kind: ProbeVoltage, NodeIndex: 5, Label: "VC1"}},
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for an out-of-range probe")
	}
}

func TestValidateAcceptsWellFormedCircuit(t *testing.T) {
	c := &Circuit{
		Nodes: make([]Node, 4),
		Blocks: []Block{
			{Type: BlockRCG, FirstNode: 0, LastNode: 1},
			{Type: BlockRLS, FirstNode: 2, LastNode: 3},
		},
		Branches: []Branch{{ID: 0, FirstNode: 0, LastNode: 3}},
		Probes:   []Probe{{Kind: ProbeVoltage, NodeIndex: 0, Label: "VC1"}},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBranchOf(t *testing.T) {
	c := &Circuit{
		Nodes: make([]Node, 6),
		Branches: []Branch{
			{ID: 0, FirstNode: 0, LastNode: 3},
			{ID: 1, FirstNode: 4, LastNode: 5},
		},
	}
	br, ok := c.BranchOf(4)
	if !ok || br.ID != 1 {
		t.Fatalf("expected node 4 in branch 1, got %+v ok=%v", br, ok)
	}
	if _, ok := c.BranchOf(6); ok {
		t.Fatal("expected node 6 to be out of range")
	}
}

func TestIsSwitch(t *testing.T) {
	n := Node{}
	if n.IsSwitch() {
		t.Fatal("plain node should not report IsSwitch")
	}
	n.Sw = &Switch{Kind: SwitchInstant}
	if !n.IsSwitch() {
		t.Fatal("expected IsSwitch true once Sw is set to SwitchInstant")
	}
}
