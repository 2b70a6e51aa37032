// Package tidy computes non-overlapping, compact positions for every node
// of a rooted tree of boxes, in time linear in node count.
//
// # Overview
//
// The engine implements the non-layered tidy tree algorithm from
// A.J. van der Ploeg's "Drawing Non-layered Tidy Trees in Linear Time"
// (Software: Practice and Experience, 2014). Nodes keep their individual
// widths and heights — children hang a fixed gap below their parent's
// bottom edge rather than on a shared layer line — and sibling subtrees
// are packed as closely as the horizontal gap allows without overlap.
//
// Two passes run over the tree. The first, bottom-up, resolves horizontal
// conflicts between each subtree and all previously placed siblings by
// walking their facing contours; the second, top-down, turns the relative
// positions and deferred offsets the first pass produced into absolute
// coordinates.
//
// Linearity rests on two devices from the paper. Contour walks follow
// threads: when a shorter subtree's contour ends, a thread planted at its
// extreme node jumps the walk straight into the taller neighbor, so no node
// is scanned twice. And moves between non-adjacent siblings are not applied
// immediately — they are recorded as per-sibling shift/change corrections
// and folded into child offsets during the second pass.
//
// # Usage
//
// Build a [tree.Tree], then call [Layout]:
//
//	t := tree.New()
//	root, _ := t.AddRoot("root", 120, 40)
//	t.AddChild(root, "left", 80, 40)
//	t.AddChild(root, "right", 80, 300)
//
//	if err := tidy.Layout(t); err != nil {
//	    return err
//	}
//	n := t.Node(root) // n.X, n.Y now hold the final position
//
// Spacing is per-call configuration:
//
//	tidy.Layout(t, tidy.WithVerticalGap(32), tidy.WithHorizontalGap(12))
//
// # Preconditions
//
// Layout requires a finite, acyclic, consistently linked tree with
// non-negative box dimensions; [Layout] verifies this with [tree.Tree.Validate]
// unless [WithoutValidation] is given. It also requires every scratch field
// to be zero (references unset): a tree fresh from the builder satisfies
// this, a tree that has been laid out before does not. Call
// [tree.Tree.ResetScratch] before re-running layout on the same tree —
// stale contour threads from a previous run would send the contour walks
// into arbitrary parts of the tree.
//
// # Complexity
//
// Both passes visit each node a constant number of times; contour walking
// is amortized constant per node via threading, and the insertion-Y list
// only ever discards entries. Total work is O(n). Both passes run on
// explicit stacks, so call depth stays constant regardless of tree shape.
// [Stats] exposes the engine's operation counters, which the tests use to
// verify the linear bound without wall-clock flakiness.
//
// The engine is deterministic: structurally and dimensionally identical
// trees produce bit-identical coordinates, because the floating-point
// evaluation order is fixed.
//
// # Concurrency
//
// One layout call owns its tree exclusively. Laying out distinct trees
// from distinct goroutines is safe; sharing one tree between concurrent
// calls is not.
package tidy
