package solver

import "fmt"

// SolveError reports a singular system encountered during elimination.
// The general (branched) solve fills only Msg, with the factorization
// error text; it does not identify the offending row, so Branch and Node
// stay zero.
type SolveError struct {
	Branch int
	Node   int
	Msg    string
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solve: branch %d node %d: %s", e.Branch, e.Node, e.Msg)
}
