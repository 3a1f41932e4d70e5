// Package pulsesim is the façade tying the deck compiler, solver, and
// probe registry into the three operations external callers use: compile
// a deck, advance a run one step at a time, and read back a probe.
package pulsesim

import (
	"fmt"

	"github.com/tholden/pulsedeck/pkg/circuit"
	"github.com/tholden/pulsedeck/pkg/deck"
	"github.com/tholden/pulsedeck/pkg/probe"
	"github.com/tholden/pulsedeck/pkg/solver"
)

// Compile parses deck text into a Circuit, ready to drive a Run.
func Compile(text string) (*circuit.Circuit, error) {
	return deck.Compile(text)
}

// Run owns one circuit's solver and probe state across its full
// timeline. Construct with NewRun, advance with Step, read out with
// Probe.
type Run struct {
	Circuit  *circuit.Circuit
	Solver   *solver.Solver
	Registry *probe.Registry
	Table    *probe.Table

	t float64
}

// NewRun builds a Run from an already-compiled circuit.
func NewRun(c *circuit.Circuit) *Run {
	s := solver.New(c)
	reg := probe.NewRegistry(c, s.State)
	return &Run{
		Circuit:  c,
		Solver:   s,
		Registry: reg,
		Table:    probe.NewTable(reg.Labels()),
	}
}

// Step advances the run to time t, which must equal the run's current
// time plus Circuit.Dt (the timeline is driven forward one fixed step
// at a time; callers do not pick arbitrary t).
func (r *Run) Step(t float64) error {
	if err := r.Solver.Step(t); err != nil {
		return fmt.Errorf("pulsesim: step at t=%g: %w", t, err)
	}
	r.t = t
	return r.Table.Record(t, r.Registry)
}

// Probe returns the current value of the probe registered under
// label.
func (r *Run) Probe(label string) (float64, error) {
	return r.Registry.Value(label)
}

// Run drives the circuit from t=0 through Circuit.TEnd in fixed steps
// of Circuit.Dt, recording every probe at every step.
func (r *Run) Run() error {
	if r.Circuit.Dt <= 0 {
		return fmt.Errorf("pulsesim: non-positive time-step %g", r.Circuit.Dt)
	}
	if err := r.Table.Record(0, r.Registry); err != nil {
		return err
	}
	for t := r.Circuit.Dt; t <= r.Circuit.TEnd+r.Circuit.Dt/2; t += r.Circuit.Dt {
		if err := r.Step(t); err != nil {
			return err
		}
	}
	return nil
}
