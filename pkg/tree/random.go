package tree

import (
	"fmt"
	"math/rand/v2"
)

// Shape selects the structure of a generated tree.
type Shape string

const (
	// ShapeBalanced produces a roughly balanced tree with branching factor 3.
	ShapeBalanced Shape = "balanced"
	// ShapeDeep produces a single long path (worst case for call depth).
	ShapeDeep Shape = "deep"
	// ShapeBushy produces a root with all remaining nodes as direct children.
	ShapeBushy Shape = "bushy"
	// ShapeCaterpillar produces a spine where every spine node carries one leaf.
	ShapeCaterpillar Shape = "caterpillar"
	// ShapeRandom attaches each node to a uniformly random earlier node.
	ShapeRandom Shape = "random"
)

// Shapes lists all generator shapes, in a stable order.
var Shapes = []Shape{ShapeBalanced, ShapeDeep, ShapeBushy, ShapeCaterpillar, ShapeRandom}

// Generate builds a tree of n nodes with the given shape. Node dimensions
// are drawn from [16, 112) x [16, 64) so layouts exercise non-uniform boxes;
// the same seed always produces the same tree. Generate panics on n < 1 or
// an unknown shape, as both indicate programmer error in test setup.
func Generate(seed uint64, n int, shape Shape) *Tree {
	if n < 1 {
		panic(fmt.Sprintf("tree: Generate needs n >= 1, got %d", n))
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	t := New()
	root, _ := t.AddRoot("n0", dim(rng, 96), dim(rng, 48))
	parents := make([]NodeID, 1, n)
	parents[0] = root

	for i := 1; i < n; i++ {
		var parent NodeID
		switch shape {
		case ShapeBalanced:
			parent = parents[(i-1)/3]
		case ShapeDeep:
			parent = parents[i-1]
		case ShapeBushy:
			parent = root
		case ShapeCaterpillar:
			// Odd indices extend the spine, even indices hang a leaf on it.
			if i%2 == 1 {
				parent = parents[max(0, i-2)]
			} else {
				parent = parents[i-1]
			}
		case ShapeRandom:
			parent = parents[rng.IntN(i)]
		default:
			panic(fmt.Sprintf("tree: unknown shape %q", shape))
		}
		id, _ := t.AddChild(parent, fmt.Sprintf("n%d", i), dim(rng, 96), dim(rng, 48))
		parents = append(parents, id)
	}
	return t
}

func dim(rng *rand.Rand, spread float64) float64 {
	return 16 + rng.Float64()*spread
}
