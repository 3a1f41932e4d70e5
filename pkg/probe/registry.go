// Package probe resolves the labeled voltage/current readouts declared
// by TXT statements against a running Solver's state, and accumulates
// them into a table that can be persisted or exported.
package probe

import (
	"fmt"

	"github.com/tholden/pulsedeck/pkg/circuit"
	"github.com/tholden/pulsedeck/pkg/memory"
)

// Registry indirects a probe label to its live value in state. It
// holds no copy of the state: every Value call reads the buffers as
// they stand at call time, so it stays correct across Solver.Step's
// buffer swaps.
type Registry struct {
	state  *memory.StateBuffers
	probes map[string]circuit.Probe
	labels []string
}

// NewRegistry indexes every probe in c by its (already deduplicated)
// label.
func NewRegistry(c *circuit.Circuit, state *memory.StateBuffers) *Registry {
	r := &Registry{
		state:  state,
		probes: make(map[string]circuit.Probe, len(c.Probes)),
		labels: make([]string, 0, len(c.Probes)),
	}
	for _, p := range c.Probes {
		r.probes[p.Label] = p
		r.labels = append(r.labels, p.Label)
	}
	return r
}

// Labels returns every registered probe label, in deck declaration
// order.
func (r *Registry) Labels() []string {
	return r.labels
}

// Value returns the current reading for label: VOld for a voltage
// probe, IOld for a current probe.
func (r *Registry) Value(label string) (float64, error) {
	p, ok := r.probes[label]
	if !ok {
		return 0, fmt.Errorf("probe: unknown label %q", label)
	}
	if p.Kind == circuit.ProbeVoltage {
		return r.state.VOld[p.NodeIndex], nil
	}
	return r.state.IOld[p.NodeIndex], nil
}
