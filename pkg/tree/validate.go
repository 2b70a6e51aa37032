package tree

import "fmt"

// Validate checks structural integrity and returns nil if the tree is a
// well-formed layout input. It verifies:
//
//  1. The tree is non-empty and has exactly one parentless node, the root.
//  2. Parent and children references are mutually consistent and in range.
//  3. Following children links never revisits a node (no cycles, no node
//     shared between two parents).
//  4. Every node is reachable from the root.
//  5. No node has negative width or height.
//
// Returns one of the sentinel errors declared in this package, wrapped with
// the offending node. Run this before layout; the engine assumes a valid
// tree and computes nonsense geometry on a corrupt one.
//
// Validation runs in O(N) time on an explicit stack.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return ErrEmptyTree
	}
	if !t.valid(t.root) {
		return fmt.Errorf("%w: root %d", ErrNodeNotFound, t.root)
	}
	if err := t.validateLinks(); err != nil {
		return err
	}
	return t.validateReachability()
}

// validateLinks checks roots, link consistency, and dimensions in one scan.
func (t *Tree) validateLinks() error {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.W < 0 || n.H < 0 {
			return fmt.Errorf("%w: node %d %q (w=%v h=%v)", ErrNegativeDimension, n.ID, n.Label, n.W, n.H)
		}
		if n.Parent == None {
			if n.ID != t.root {
				return fmt.Errorf("%w: node %d %q has no parent but is not the root", ErrMultipleRoots, n.ID, n.Label)
			}
		} else if !t.valid(n.Parent) {
			return fmt.Errorf("%w: node %d references parent %d", ErrNodeNotFound, n.ID, n.Parent)
		}
		for _, c := range n.Children {
			if !t.valid(c) {
				return fmt.Errorf("%w: node %d references child %d", ErrNodeNotFound, n.ID, c)
			}
			if t.nodes[c].Parent != n.ID {
				return fmt.Errorf("%w: node %d lists child %d, but its parent is %d",
					ErrInconsistentLink, n.ID, c, t.nodes[c].Parent)
			}
		}
	}
	return nil
}

// validateReachability walks children links from the root with white/gray/
// black coloring: gray marks the current path (a gray child is a cycle),
// black marks completed subtrees (a black child has two parents).
func (t *Tree) validateReachability() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]uint8, len(t.nodes))
	visited := 0

	type frame struct {
		id   NodeID
		next int
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{id: t.root})
	color[t.root] = gray
	visited++

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		children := t.nodes[f.id].Children
		if f.next >= len(children) {
			color[f.id] = black
			stack = stack[:len(stack)-1]
			continue
		}
		c := children[f.next]
		f.next++
		switch color[c] {
		case gray:
			return fmt.Errorf("%w: via node %d", ErrCycle, c)
		case black:
			return fmt.Errorf("%w: node %d reached twice", ErrInconsistentLink, c)
		}
		color[c] = gray
		visited++
		stack = append(stack, frame{id: c})
	}

	if visited != len(t.nodes) {
		return fmt.Errorf("%w: %d of %d nodes not reachable from root", ErrUnreachable, len(t.nodes)-visited, len(t.nodes))
	}
	return nil
}
