// Package tree provides an arena-backed rooted tree with per-node box
// geometry, the input structure for tidy layout computation.
//
// # Overview
//
// Tidytree positions boxes of arbitrary width and height so that subtrees
// never overlap. This package provides the tree those boxes live in: an
// indexed arena of [Node] values addressed by [NodeID] handles. Handles
// rather than pointers keep cross-references (parent, children, and the
// layout engine's contour threads) stable and cheap to reset, with [None]
// as the explicit "unset" sentinel.
//
// # Basic Usage
//
// Create a tree with [New], add the root with [Tree.AddRoot], and attach
// children with [Tree.AddChild]:
//
//	t := tree.New()
//	root, _ := t.AddRoot("ceo", 120, 40)
//	eng, _ := t.AddChild(root, "engineering", 100, 40)
//	t.AddChild(eng, "platform", 90, 40)
//
// Query structure with [Tree.Node], [Tree.Root], and [Tree.Walk]. Use
// [Tree.Validate] to verify structural integrity before layout.
//
// # Geometry and Scratch Fields
//
// Each node carries caller-supplied box dimensions (W, H) and receives its
// final position (X, Y) from the layout engine. The remaining fields
// (Prelim, Mod, Shift, Change, TL, TR, EL, ER, MSEL, MSER) are engine
// scratch: they must be zero (references [None]) when layout starts and are
// meaningless to callers afterwards. [Tree.ResetScratch] restores that
// state, which is required before laying out the same tree a second time.
//
// # Traversal
//
// All traversals in this package run on explicit stacks rather than
// recursion, so arbitrarily deep trees (a million-node path, say) cannot
// exhaust the call stack.
//
// # Concurrency
//
// Tree instances are not safe for concurrent use. Callers must serialize
// mutation and layout per tree instance.
package tree
