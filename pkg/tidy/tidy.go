package tidy

import (
	"errors"
	"fmt"

	"github.com/sibaiper/tidy-tree/pkg/tree"
)

// Spacing defaults, applied when no option overrides them.
const (
	// DefaultVerticalGap is the distance between a node's bottom edge and
	// the top edge of its children.
	DefaultVerticalGap = 20.0

	// DefaultHorizontalGap is the minimum distance kept between the facing
	// contours of adjacent sibling subtrees.
	DefaultHorizontalGap = 20.0
)

// ErrNegativeGap is returned by [Layout] when a spacing option is negative.
var ErrNegativeGap = errors.New("spacing gaps must be non-negative")

// Option configures a single [Layout] call.
type Option func(*settings)

type settings struct {
	vGap     float64
	hGap     float64
	validate bool
	stats    *Stats
}

// WithVerticalGap sets the vertical distance between a node's bottom and
// its children's top. Must be >= 0.
func WithVerticalGap(gap float64) Option {
	return func(s *settings) { s.vGap = gap }
}

// WithHorizontalGap sets the minimum horizontal distance between adjacent
// sibling subtree contours. Must be >= 0.
func WithHorizontalGap(gap float64) Option {
	return func(s *settings) { s.hGap = gap }
}

// WithoutValidation skips the structural validation that normally runs
// before layout. Use only on trees known to be well formed, e.g. straight
// from a builder; on a corrupt tree the engine computes nonsense geometry
// or loops.
func WithoutValidation() Option {
	return func(s *settings) { s.validate = false }
}

// WithStats copies the engine's operation counters into s when layout
// completes. The counters are deterministic for a given tree and
// configuration.
func WithStats(s *Stats) Option {
	return func(cfg *settings) { cfg.stats = s }
}

// Stats counts the elementary operations of one layout call. The counts
// grow linearly with node count regardless of tree shape, which makes them
// the right instrument for verifying the algorithm's complexity bound.
type Stats struct {
	Nodes          int // nodes entered by the first pass
	ContourSteps   int // contour cursor advances during conflict resolution
	IYLScans       int // insertion-Y list cursor advances
	DistanceChecks int // contour distance computations
	SubtreeMoves   int // subtree shifts applied (dist > 0)
	ThreadsSet     int // contour threads planted
	IYLPushes      int // insertion-Y list entries created
	IYLDrops       int // insertion-Y list entries discarded as dominated
}

// Total returns the sum of all counters, a single-figure proxy for the
// work one layout performed.
func (s Stats) Total() int {
	return s.Nodes + s.ContourSteps + s.IYLScans + s.DistanceChecks +
		s.SubtreeMoves + s.ThreadsSet + s.IYLPushes + s.IYLDrops
}

// Layout computes X and Y for every node reachable from the root of t.
//
// Preconditions: t is a valid tree (see [tree.Tree.Validate]) and every
// node's scratch fields are zero/unset. Trees fresh from the builder
// satisfy the second condition; call [tree.Tree.ResetScratch] before
// laying out the same tree again. Layout either fully succeeds or returns
// before touching the tree; there are no partial results.
//
// The root's box starts at y = 0; each child row hangs verticalGap below
// its parent's bottom edge. Horizontal positions are chosen so that the
// contours of adjacent sibling subtrees stay at least horizontalGap apart
// and each parent is centered over its first and last child.
func Layout(t *tree.Tree, opts ...Option) error {
	s := settings{
		vGap:     DefaultVerticalGap,
		hGap:     DefaultHorizontalGap,
		validate: true,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.vGap < 0 || s.hGap < 0 {
		return fmt.Errorf("%w: vertical=%v horizontal=%v", ErrNegativeGap, s.vGap, s.hGap)
	}
	if t == nil || t.Len() == 0 {
		return tree.ErrEmptyTree
	}
	if s.validate {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	l := layouter{t: t, vGap: s.vGap, hGap: s.hGap}
	l.firstWalk()
	l.secondWalk()

	if s.stats != nil {
		*s.stats = l.stats
	}
	return nil
}

// layouter holds the per-call state: the tree, the gaps, the IYL arena,
// and the operation counters.
type layouter struct {
	t     *tree.Tree
	vGap  float64
	hGap  float64
	iyl   []iylEntry
	stats Stats
}

// walkFrame is one suspended node of the iterative first pass: which child
// to descend into next and the head of the node's insertion-Y list.
type walkFrame struct {
	id   tree.NodeID
	next int
	iyl  iylRef
}

// firstWalk runs the bottom-up pass. Each node is entered once (assigning
// its y), then re-visited after each child subtree completes to resolve
// that child against the earlier siblings, and finally centered over its
// children once the last child is done.
func (l *layouter) firstWalk() {
	stack := make([]walkFrame, 0, 64)
	stack = append(stack, walkFrame{id: l.t.Root(), iyl: iylNone})

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		n := l.t.Node(f.id)

		if f.next == 0 {
			l.stats.Nodes++
			if n.Parent != tree.None {
				p := l.t.Node(n.Parent)
				n.Y = p.Y + p.H + l.vGap
			} else {
				n.Y = 0
			}
			if n.IsLeaf() {
				l.setExtremes(f.id)
				stack = stack[:len(stack)-1]
				continue
			}
		} else {
			// Child f.next-1 just finished its subtree.
			i := f.next - 1
			child := n.Children[i]
			if i == 0 {
				f.iyl = l.updateIYL(iylNone, l.bottom(child), 0)
			} else {
				minY := l.bottom(child)
				l.separate(f.id, i, f.iyl)
				f.iyl = l.updateIYL(f.iyl, minY, i)
			}
		}

		if f.next < len(n.Children) {
			child := n.Children[f.next]
			f.next++
			stack = append(stack, walkFrame{id: child, iyl: iylNone})
		} else {
			l.positionRoot(f.id)
			l.setExtremes(f.id)
			stack = stack[:len(stack)-1]
		}
	}
}

// secondWalk runs the top-down pass: it materializes absolute x
// coordinates from prelim plus the accumulated mod sum, folding the
// deferred shift/change corrections into child mods on the way down.
func (l *layouter) secondWalk() {
	type posFrame struct {
		id     tree.NodeID
		modsum float64
	}
	stack := make([]posFrame, 0, 64)
	stack = append(stack, posFrame{id: l.t.Root()})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := l.t.Node(f.id)
		modsum := f.modsum + n.Mod
		n.X = n.Prelim + modsum
		l.addChildSpacing(f.id)

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, posFrame{id: n.Children[i], modsum: modsum})
		}
	}
}

// addChildSpacing converts the deferred shift/change bookkeeping left by
// moveSubtree into ordinary mod contributions, left to right.
func (l *layouter) addChildSpacing(id tree.NodeID) {
	n := l.t.Node(id)
	d, modsumdelta := 0.0, 0.0
	for _, c := range n.Children {
		cn := l.t.Node(c)
		d += cn.Shift
		modsumdelta += d + cn.Change
		cn.Mod += modsumdelta
	}
}

// bottom returns the lower edge of a node's box.
func (l *layouter) bottom(id tree.NodeID) float64 {
	n := l.t.Node(id)
	return n.Y + n.H
}
