package deck

import "github.com/tholden/pulsedeck/pkg/circuit"

// doBranch implements the BRANCH command (spec.md §4.2): the first
// BRANCH opens the main branch; every subsequent BRANCH closes the
// current branch and binds to the oldest unresolved TOPBRANCH/ENDBRANCH
// call, in FIFO order.
func (c *compiler) doBranch(line int) error {
	if c.currentBranch < 0 {
		c.openBranch(-1, circuit.Attachment{})
		return nil
	}

	if err := c.closeBranch(line); err != nil {
		return err
	}

	if len(c.pending) == 0 {
		return &TopologyError{Reason: AnchorMissing, Line: line}
	}
	call := c.pending[0]
	c.pending = c.pending[1:]

	att := circuit.Attachment{
		Kind:         call.kind,
		ParentBranch: call.parentBranch,
		ParentNode:   call.parentNode,
		ParentLeft:   call.parentLeft,
		ParentRight:  call.parentRight,
	}
	c.openBranch(call.parentBranch, att)
	return nil
}

// openBranch appends a new branch and makes it current. parentBranch
// is -1 for the main branch.
func (c *compiler) openBranch(parentBranch int, att circuit.Attachment) {
	id := len(c.branches)
	level := 0
	if parentBranch >= 0 {
		level = c.branches[parentBranch].Level + 1
	}

	first := len(c.nodes)
	c.branches = append(c.branches, circuit.Branch{
		ID:         id,
		Level:      level,
		NodeOffset: first,
		FirstNode:  first,
		LastNode:   first - 1, // empty until addNode runs
	})
	c.currentBranch = id
	c.blocksInBranch[id] = nil
	c.physicalInBranch[id] = nil

	if parentBranch >= 0 {
		att.ChildBranch = id
		c.attachments = append(c.attachments, att)
	}
}

// closeBranch finalizes bookkeeping for the branch currently being
// built. For the main branch, it enforces the EndbranchOnFinalBlock
// rule: an ENDBRANCH call cannot be the anchor for what turns out to be
// the main branch's last block.
func (c *compiler) closeBranch(line int) error {
	if c.currentBranch == 0 && c.pendingMainEndAnchorBlock != -1 {
		return &TopologyError{Reason: EndbranchOnFinalBlock, Line: c.pendingMainEndAnchorLine}
	}
	return nil
}

// doTopbranch implements TOPBRANCH: enqueues a TOP attachment anchored
// at the last two physical nodes added so far in the current branch.
func (c *compiler) doTopbranch(line int) error {
	if err := c.requireBranchOpen(line); err != nil {
		return err
	}
	phys := c.physicalInBranch[c.currentBranch]
	if len(phys) < 2 {
		return &TopologyError{Reason: AnchorMissing, Line: line}
	}
	left, right := phys[len(phys)-2], phys[len(phys)-1]
	c.pending = append(c.pending, pendingCall{
		kind:         circuit.AttachTop,
		parentBranch: c.currentBranch,
		parentLeft:   left,
		parentRight:  right,
		line:         line,
	})
	return nil
}

// doEndbranch implements ENDBRANCH: enqueues an END attachment anchored
// at the last physical node added so far in the current branch, and
// flags it (only when the current branch is the main branch) so that
// closeBranch can detect if no further block ever follows it.
func (c *compiler) doEndbranch(line int) error {
	if err := c.requireBranchOpen(line); err != nil {
		return err
	}
	phys := c.physicalInBranch[c.currentBranch]
	if len(phys) < 1 {
		return &TopologyError{Reason: AnchorMissing, Line: line}
	}
	anchor := phys[len(phys)-1]
	c.pending = append(c.pending, pendingCall{
		kind:         circuit.AttachEnd,
		parentBranch: c.currentBranch,
		parentNode:   anchor,
		line:         line,
	})

	if c.currentBranch == 0 {
		blocks := c.blocksInBranch[0]
		if len(blocks) > 0 {
			c.pendingMainEndAnchorBlock = blocks[len(blocks)-1]
			c.pendingMainEndAnchorLine = line
		}
	}
	return nil
}
