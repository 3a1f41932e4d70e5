package solver

import (
	"math"

	"github.com/tholden/pulsedeck/pkg/circuit"
)

// updateSwitches rewrites the resistance of every time-varying node for
// the upcoming step, ahead of stencil assembly (spec.md §4.3).
func updateSwitches(c *circuit.Circuit, t float64) {
	for i := range c.Nodes {
		n := &c.Nodes[i]
		if !n.IsSwitch() {
			continue
		}
		switch n.Sw.Kind {
		case circuit.SwitchInstant:
			if t < n.Sw.TSwitch {
				n.R = n.Sw.ROpen
			} else {
				n.R = n.Sw.RClose
			}
		case circuit.SwitchExponential:
			elapsed := t - n.Sw.TSwitch
			if elapsed < 0 {
				elapsed = 0
			}
			n.R = n.Sw.RClose + n.Sw.R1*math.Exp(-n.Sw.K*elapsed)
		}
	}
}
