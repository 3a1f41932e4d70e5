package circuit

import "fmt"

// Circuit owns the full node graph produced by the compiler: the node
// list, blocks, branches, attachments, probes, and timing parameters.
// It is constructed once by pkg/deck and consumed for the lifetime of a
// single run by pkg/solver.
type Circuit struct {
	Nodes       []Node
	Blocks      []Block
	Branches    []Branch
	Attachments []Attachment
	Probes      []Probe

	Dt   float64
	TEnd float64
}

// N returns the number of physical nodes (the unknown-pair count).
func (c *Circuit) N() int {
	return len(c.Nodes)
}

// Validate checks the structural invariants from spec.md §3 that every
// compiled circuit must satisfy before it is handed to a solver:
//
//  1. node ids are dense and equal to their global indices (true by
//     construction of []Node, checked here only for blocks/branches).
//  2. every block's (first,last) range is within bounds.
//  3. every branch's (first,last) range is within bounds with
//     first <= last; NodeOffset is not checked.
//  4. every probe's node index is in range.
func (c *Circuit) Validate() error {
	n := c.N()
	for i, b := range c.Blocks {
		if b.FirstNode < 0 || b.LastNode >= n || b.FirstNode > b.LastNode {
			return fmt.Errorf("circuit: block %d has out-of-range node range [%d,%d] for %d nodes", i, b.FirstNode, b.LastNode, n)
		}
	}
	for i, br := range c.Branches {
		if br.FirstNode < 0 || br.LastNode >= n || br.FirstNode > br.LastNode {
			return fmt.Errorf("circuit: branch %d has out-of-range node range [%d,%d] for %d nodes", i, br.FirstNode, br.LastNode, n)
		}
	}
	for i, p := range c.Probes {
		if p.NodeIndex < 0 || p.NodeIndex >= n {
			return fmt.Errorf("circuit: probe %d (%s) references out-of-range node %d for %d nodes", i, p.Label, p.NodeIndex, n)
		}
	}
	return nil
}

// BranchOf returns the branch containing the given global node index,
// or false if it is out of range.
func (c *Circuit) BranchOf(node int) (Branch, bool) {
	for _, br := range c.Branches {
		if node >= br.FirstNode && node <= br.LastNode {
			return br, true
		}
	}
	return Branch{}, false
}
