package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTree is returned by [Tree.Validate] and the layout entry points
	// when the tree has no nodes.
	ErrEmptyTree = errors.New("tree has no nodes")

	// ErrHasRoot is returned by [Tree.AddRoot] when the tree already has a
	// root node. A tree holds exactly one root; forests are out of scope.
	ErrHasRoot = errors.New("tree already has a root")

	// ErrNodeNotFound is returned when a [NodeID] does not reference a node
	// in the arena (out of range or [None]).
	ErrNodeNotFound = errors.New("node not found")

	// ErrNegativeDimension is returned by [Tree.AddRoot], [Tree.AddChild]
	// and [Tree.Validate] for nodes with negative width or height.
	ErrNegativeDimension = errors.New("negative node dimension")

	// ErrMultipleRoots is returned by [Tree.Validate] when more than one
	// node has no parent.
	ErrMultipleRoots = errors.New("multiple parentless nodes")

	// ErrInconsistentLink is returned by [Tree.Validate] when parent and
	// children references disagree, or a node is listed as a child of two
	// parents.
	ErrInconsistentLink = errors.New("inconsistent parent/child link")

	// ErrCycle is returned by [Tree.Validate] when following children links
	// revisits a node already on the current path. Cycles are detected
	// using depth-first search with white/gray/black coloring.
	ErrCycle = errors.New("tree contains a cycle")

	// ErrUnreachable is returned by [Tree.Validate] when some nodes in the
	// arena cannot be reached from the root.
	ErrUnreachable = errors.New("unreachable nodes")
)

// NodeID is an index into a tree's node arena.
// IDs are dense, stable for the lifetime of the tree, and start at 0.
type NodeID int32

// None is the explicit "unset" sentinel for [NodeID] references.
// The zero NodeID is a valid node, so unset references must be None.
const None NodeID = -1

// Node is one tree position: caller-owned geometry plus the layout engine's
// scratch state.
//
// The caller supplies W and H (box dimensions, non-negative) and reads X
// and Y (final position, box origin at top-left) after layout. Everything
// from Prelim onward is scratch owned by the engine during a layout call:
// zero-valued (references None) on entry, unspecified after return.
type Node struct {
	ID       NodeID
	Label    string
	Parent   NodeID
	Children []NodeID

	// Output position and input dimensions.
	X, Y float64
	W, H float64

	// Engine scratch. Prelim is the horizontal position relative to the
	// node's own mod frame; Mod is the offset lazily propagated to the
	// whole subtree; Shift and Change hold deferred sibling spacing.
	Prelim, Mod   float64
	Shift, Change float64

	// Contour threads (TL, TR) and extreme nodes (EL, ER) with their
	// accumulated mod sums. Rebuilt from scratch on every layout call.
	TL, TR, EL, ER NodeID
	MSEL, MSER     float64
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Bottom returns the y coordinate of the node's lower edge.
func (n *Node) Bottom() float64 { return n.Y + n.H }

// Tree is an arena of nodes forming one rooted tree.
//
// The zero value is usable but empty; [New] is the conventional constructor.
// Node pointers returned by [Tree.Node] are invalidated by the next AddRoot
// or AddChild call, so hold NodeIDs, not pointers, across mutations.
type Tree struct {
	nodes []Node
	root  NodeID
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{root: None}
}

// AddRoot adds the root node and returns its ID.
// Returns ErrHasRoot if a root exists, or ErrNegativeDimension for bad w/h.
func (t *Tree) AddRoot(label string, w, h float64) (NodeID, error) {
	if t.root != None {
		return None, ErrHasRoot
	}
	if w < 0 || h < 0 {
		return None, fmt.Errorf("%w: %q (w=%v h=%v)", ErrNegativeDimension, label, w, h)
	}
	id := t.push(label, None, w, h)
	t.root = id
	return id, nil
}

// AddChild adds a node under parent, appended after its existing siblings,
// and returns its ID. Child order is significant: the layout engine places
// children left to right in insertion order.
func (t *Tree) AddChild(parent NodeID, label string, w, h float64) (NodeID, error) {
	if !t.valid(parent) {
		return None, fmt.Errorf("%w: parent %d", ErrNodeNotFound, parent)
	}
	if w < 0 || h < 0 {
		return None, fmt.Errorf("%w: %q (w=%v h=%v)", ErrNegativeDimension, label, w, h)
	}
	id := t.push(label, parent, w, h)
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id, nil
}

// push appends a fresh node with unset scratch references.
func (t *Tree) push(label string, parent NodeID, w, h float64) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		ID:     id,
		Label:  label,
		Parent: parent,
		W:      w,
		H:      h,
		TL:     None,
		TR:     None,
		EL:     None,
		ER:     None,
	})
	return id
}

// Node returns a pointer to the node with the given ID, or nil if the ID is
// out of range. The pointer stays valid until the next AddRoot/AddChild.
func (t *Tree) Node(id NodeID) *Node {
	if !t.valid(id) {
		return nil
	}
	return &t.nodes[id]
}

// Root returns the root's ID, or [None] for an empty tree.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Walk visits every node reachable from the root in depth-first preorder,
// children in index order. The walk stops early if fn returns false.
// It uses an explicit stack, so depth is bounded by heap, not call stack.
func (t *Tree) Walk(fn func(id NodeID) bool) {
	t.WalkDepth(func(id NodeID, _ int) bool { return fn(id) })
}

// WalkDepth is [Tree.Walk] with the node's depth (root = 0) passed along.
func (t *Tree) WalkDepth(fn func(id NodeID, depth int) bool) {
	if t.root == None {
		return
	}
	type item struct {
		id    NodeID
		depth int
	}
	stack := make([]item, 0, 64)
	stack = append(stack, item{t.root, 0})
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.id, it.depth) {
			return
		}
		children := t.nodes[it.id].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{children[i], it.depth + 1})
		}
	}
}

// Depth returns the maximum depth over all nodes (root = 0).
// Returns -1 for an empty tree.
func (t *Tree) Depth() int {
	max := -1
	t.WalkDepth(func(_ NodeID, depth int) bool {
		if depth > max {
			max = depth
		}
		return true
	})
	return max
}

// Leaves returns the number of leaf nodes reachable from the root.
func (t *Tree) Leaves() int {
	count := 0
	t.Walk(func(id NodeID) bool {
		if t.nodes[id].IsLeaf() {
			count++
		}
		return true
	})
	return count
}

// ResetScratch restores the layout precondition: all scratch floats zero
// and all scratch references [None]. Final X/Y positions are left intact.
// Call this before laying out a tree that has been laid out before.
func (t *Tree) ResetScratch() {
	for i := range t.nodes {
		n := &t.nodes[i]
		n.Prelim, n.Mod = 0, 0
		n.Shift, n.Change = 0, 0
		n.TL, n.TR = None, None
		n.EL, n.ER = None, None
		n.MSEL, n.MSER = 0, 0
	}
}

// Bounds returns the bounding box of all laid-out nodes as (minX, minY,
// maxX, maxY). Meaningful only after layout. Returns zeros for an empty tree.
func (t *Tree) Bounds() (minX, minY, maxX, maxY float64) {
	if len(t.nodes) == 0 {
		return 0, 0, 0, 0
	}
	first := true
	t.Walk(func(id NodeID) bool {
		n := &t.nodes[id]
		if first {
			minX, minY = n.X, n.Y
			maxX, maxY = n.X+n.W, n.Y+n.H
			first = false
			return true
		}
		minX = min(minX, n.X)
		minY = min(minY, n.Y)
		maxX = max(maxX, n.X+n.W)
		maxY = max(maxY, n.Y+n.H)
		return true
	})
	return minX, minY, maxX, maxY
}
