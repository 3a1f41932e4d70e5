package circuit

// Branch is a contiguous subrange of the global node list: a series
// chain. Branch 1 (ID 0 here, 0-based) is the main branch; later
// branches are bound to prior Topbranch/Endbranch calls in FIFO order
// and never reconnect.
type Branch struct {
	ID         int
	Level      int
	NodeOffset int // prefix sum of prior branches' node counts
	FirstNode  int
	LastNode   int
}

// AttachKind distinguishes the two ways a child branch couples to its
// parent.
type AttachKind uint8

const (
	// AttachEnd couples one parent node's KCL row to the child's
	// first-current column (parallel attachment at a single node).
	AttachEnd AttachKind = iota
	// AttachTop couples two adjacent parent KCL rows with opposite
	// sign (series attachment across two adjacent nodes).
	AttachTop
)

// Attachment is the linkage between a parent branch anchor and a child
// branch's first node, realized in pkg/solver as a small set of sparse
// matrix edits.
type Attachment struct {
	Kind AttachKind

	ParentBranch int
	ChildBranch  int

	// ParentNode is the anchor for AttachEnd.
	ParentNode int

	// ParentLeft/ParentRight are the adjacent anchor pair for AttachTop.
	ParentLeft  int
	ParentRight int
}
