package tidy

import (
	"errors"
	"math"
	"testing"

	"github.com/sibaiper/tidy-tree/pkg/tree"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func checkPos(t *testing.T, tr *tree.Tree, id tree.NodeID, wantX, wantY float64) {
	t.Helper()
	n := tr.Node(id)
	if !approx(n.X, wantX) || !approx(n.Y, wantY) {
		t.Errorf("node %d %q at (%v, %v), want (%v, %v)", id, n.Label, n.X, n.Y, wantX, wantY)
	}
}

func TestLayoutSingleNode(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 100, 40)

	if err := Layout(tr); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	checkPos(t, tr, root, 0, 0)
}

func TestLayoutTwoLeaves(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 60, 20)
	a, _ := tr.AddChild(root, "a", 40, 30)
	b, _ := tr.AddChild(root, "b", 40, 30)

	if err := Layout(tr); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	// Children hang one vertical gap below the root and sit exactly one
	// horizontal gap apart; the root is centered over their span.
	checkPos(t, tr, root, 20, 0)
	checkPos(t, tr, a, 0, 40)
	checkPos(t, tr, b, 60, 40)
}

func TestLayoutChain(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 10, 10)
	a, _ := tr.AddChild(root, "a", 30, 10)
	b, _ := tr.AddChild(a, "b", 50, 10)

	if err := Layout(tr); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	// A single-child chain stacks centered: every box shares one midline.
	checkPos(t, tr, root, 20, 0)
	checkPos(t, tr, a, 10, 30)
	checkPos(t, tr, b, 0, 60)
}

func TestLayoutCustomGaps(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 60, 20)
	a, _ := tr.AddChild(root, "a", 40, 30)
	b, _ := tr.AddChild(root, "b", 40, 30)

	err := Layout(tr, WithVerticalGap(5), WithHorizontalGap(10))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	checkPos(t, tr, root, 15, 0)
	checkPos(t, tr, a, 0, 25)
	checkPos(t, tr, b, 50, 25)
}

func TestLayoutZeroGaps(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 60, 20)
	a, _ := tr.AddChild(root, "a", 40, 30)
	b, _ := tr.AddChild(root, "b", 40, 30)

	if err := Layout(tr, WithVerticalGap(0), WithHorizontalGap(0)); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	// Zero gaps are legal: boxes may touch but still do not overlap.
	checkPos(t, tr, root, 10, 0)
	checkPos(t, tr, a, 0, 20)
	checkPos(t, tr, b, 40, 20)
}

func TestLayoutZeroSizeNodes(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 0, 0)
	a, _ := tr.AddChild(root, "a", 0, 0)
	b, _ := tr.AddChild(root, "b", 0, 0)

	if err := Layout(tr); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	checkPos(t, tr, root, 10, 0)
	checkPos(t, tr, a, 0, 20)
	checkPos(t, tr, b, 20, 20)
}

// TestLayoutTallFirstChild pins down the interesting machinery in one
// five-node tree: a tall first child forces contour threads, the third
// child's wide grandchild collides with it two levels up the sibling
// list, and the slack from that collision is split with the short middle
// child.
//
//	root (20x10)
//	├── c0 (50x150)
//	├── c1 (4x10)
//	└── c2 (10x10)
//	    └── g2 (100x10)
func TestLayoutTallFirstChild(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 20, 10)
	c0, _ := tr.AddChild(root, "c0", 50, 150)
	c1, _ := tr.AddChild(root, "c1", 4, 10)
	c2, _ := tr.AddChild(root, "c2", 10, 10)
	g2, _ := tr.AddChild(c2, "g2", 100, 10)

	var stats Stats
	if err := Layout(tr, WithStats(&stats)); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	checkPos(t, tr, root, 52.5, 0)
	checkPos(t, tr, c0, 0, 30)
	checkPos(t, tr, c1, 80.5, 30)
	checkPos(t, tr, c2, 115, 30)
	checkPos(t, tr, g2, 70, 60)

	// g2 lands exactly one gap right of the tall child's edge, and the
	// middle child is pushed half the extra distance.
	want := Stats{
		Nodes:          5,
		ContourSteps:   4,
		IYLScans:       1,
		DistanceChecks: 3,
		SubtreeMoves:   3,
		ThreadsSet:     2,
		IYLPushes:      4,
		IYLDrops:       1,
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

// TestLayoutDeepSecondChild exercises the opposite thread direction: the
// left sibling runs out of contour first, so its contour is threaded into
// the deeper second child.
func TestLayoutDeepSecondChild(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 20, 10)
	c0, _ := tr.AddChild(root, "c0", 30, 10)
	c1, _ := tr.AddChild(root, "c1", 30, 10)
	g1, _ := tr.AddChild(c1, "g1", 30, 10)

	var stats Stats
	if err := Layout(tr, WithStats(&stats)); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	checkPos(t, tr, root, 30, 0)
	checkPos(t, tr, c0, 0, 30)
	checkPos(t, tr, c1, 50, 30)
	checkPos(t, tr, g1, 50, 60)

	if stats.ThreadsSet != 1 {
		t.Errorf("ThreadsSet = %d, want 1", stats.ThreadsSet)
	}
}

func TestLayoutErrors(t *testing.T) {
	valid := func() *tree.Tree {
		tr := tree.New()
		root, _ := tr.AddRoot("root", 10, 10)
		tr.AddChild(root, "a", 10, 10)
		return tr
	}

	tests := []struct {
		name string
		tr   *tree.Tree
		opts []Option
		want error
	}{
		{name: "NilTree", tr: nil, want: tree.ErrEmptyTree},
		{name: "EmptyTree", tr: tree.New(), want: tree.ErrEmptyTree},
		{name: "NegativeVerticalGap", tr: valid(), opts: []Option{WithVerticalGap(-1)}, want: ErrNegativeGap},
		{name: "NegativeHorizontalGap", tr: valid(), opts: []Option{WithHorizontalGap(-0.5)}, want: ErrNegativeGap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Layout(tt.tr, tt.opts...); !errors.Is(err, tt.want) {
				t.Errorf("Layout error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLayoutValidates(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 10, 10)
	a, _ := tr.AddChild(root, "a", 10, 10)
	b, _ := tr.AddChild(a, "b", 10, 10)

	// Close a cycle b -> root while keeping parent/child links mutually
	// consistent, so only the reachability pass can catch it.
	tr.Node(b).Children = append(tr.Node(b).Children, root)
	tr.Node(root).Parent = b

	if err := Layout(tr); !errors.Is(err, tree.ErrCycle) {
		t.Fatalf("Layout on cyclic tree = %v, want ErrCycle", err)
	}
}

func TestLayoutWithoutValidation(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 60, 20)
	tr.AddChild(root, "a", 40, 30)
	tr.AddChild(root, "b", 40, 30)

	if err := Layout(tr, WithoutValidation()); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	checkPos(t, tr, root, 20, 0)
}

func TestLayoutErrorLeavesTreeUntouched(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("root", 10, 10)
	tr.Node(root).X = 123

	if err := Layout(tr, WithHorizontalGap(-1)); !errors.Is(err, ErrNegativeGap) {
		t.Fatalf("Layout error = %v, want ErrNegativeGap", err)
	}
	if got := tr.Node(root).X; got != 123 {
		t.Errorf("failed Layout moved the root to x=%v", got)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	a := tree.Generate(9, 300, tree.ShapeRandom)
	b := tree.Generate(9, 300, tree.ShapeRandom)

	var sa, sb Stats
	if err := Layout(a, WithStats(&sa)); err != nil {
		t.Fatalf("Layout a: %v", err)
	}
	if err := Layout(b, WithStats(&sb)); err != nil {
		t.Fatalf("Layout b: %v", err)
	}

	if sa != sb {
		t.Errorf("stats differ between identical runs: %+v vs %+v", sa, sb)
	}
	for i := 0; i < a.Len(); i++ {
		na, nb := a.Node(tree.NodeID(i)), b.Node(tree.NodeID(i))
		if na.X != nb.X || na.Y != nb.Y {
			t.Fatalf("node %d differs between identical runs: (%v, %v) vs (%v, %v)",
				i, na.X, na.Y, nb.X, nb.Y)
		}
	}
}

func TestRelayoutAfterReset(t *testing.T) {
	tr := tree.Generate(4, 200, tree.ShapeBalanced)
	if err := Layout(tr); err != nil {
		t.Fatalf("first Layout: %v", err)
	}

	xs := make([]float64, tr.Len())
	ys := make([]float64, tr.Len())
	for i := 0; i < tr.Len(); i++ {
		n := tr.Node(tree.NodeID(i))
		xs[i], ys[i] = n.X, n.Y
	}

	tr.ResetScratch()
	if err := Layout(tr); err != nil {
		t.Fatalf("second Layout: %v", err)
	}

	for i := 0; i < tr.Len(); i++ {
		n := tr.Node(tree.NodeID(i))
		if n.X != xs[i] || n.Y != ys[i] {
			t.Fatalf("node %d moved after reset and relayout: (%v, %v) vs (%v, %v)",
				i, n.X, n.Y, xs[i], ys[i])
		}
	}
}

func TestLayoutProperties(t *testing.T) {
	const (
		n    = 150
		vGap = DefaultVerticalGap
		hGap = DefaultHorizontalGap
	)

	for _, shape := range tree.Shapes {
		t.Run(string(shape), func(t *testing.T) {
			tr := tree.Generate(5, n, shape)
			if err := Layout(tr); err != nil {
				t.Fatalf("Layout: %v", err)
			}

			tr.Walk(func(id tree.NodeID) bool {
				nd := tr.Node(id)

				// Every child row hangs exactly one vertical gap below
				// its parent's bottom edge.
				if nd.Parent != tree.None {
					p := tr.Node(nd.Parent)
					if !approx(nd.Y, p.Y+p.H+vGap) {
						t.Errorf("node %d y = %v, want %v", id, nd.Y, p.Y+p.H+vGap)
					}
				}

				// Parents sit centered over the span from their first
				// child's left edge to their last child's right edge.
				if !nd.IsLeaf() {
					first := tr.Node(nd.Children[0])
					last := tr.Node(nd.Children[len(nd.Children)-1])
					center := (first.X + last.X + last.W) / 2
					if !approx(nd.X+nd.W/2, center) {
						t.Errorf("node %d center = %v, want %v", id, nd.X+nd.W/2, center)
					}

					// Adjacent sibling boxes keep at least the gap.
					for i := 1; i < len(nd.Children); i++ {
						l := tr.Node(nd.Children[i-1])
						r := tr.Node(nd.Children[i])
						if sep := r.X - (l.X + l.W); sep < hGap-1e-6 {
							t.Errorf("siblings %d and %d are %v apart, want at least %v",
								l.ID, r.ID, sep, hGap)
						}
					}
				}
				return true
			})

			// No two boxes overlap anywhere in the drawing.
			for i := 0; i < tr.Len(); i++ {
				for j := i + 1; j < tr.Len(); j++ {
					a, b := tr.Node(tree.NodeID(i)), tr.Node(tree.NodeID(j))
					if a.Y+a.H <= b.Y || b.Y+b.H <= a.Y {
						continue
					}
					sep := math.Max(b.X-(a.X+a.W), a.X-(b.X+b.W))
					if sep < -1e-6 {
						t.Fatalf("nodes %d and %d overlap (separation %v)", i, j, sep)
					}
				}
			}
		})
	}
}

func TestStatsTotal(t *testing.T) {
	tr := tree.Generate(2, 500, tree.ShapeRandom)
	var stats Stats
	if err := Layout(tr, WithStats(&stats)); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	sum := stats.Nodes + stats.ContourSteps + stats.IYLScans + stats.DistanceChecks +
		stats.SubtreeMoves + stats.ThreadsSet + stats.IYLPushes + stats.IYLDrops
	if got := stats.Total(); got != sum {
		t.Errorf("Total() = %d, want %d", got, sum)
	}
	if stats.Nodes != 500 {
		t.Errorf("Nodes = %d, want 500", stats.Nodes)
	}
}
