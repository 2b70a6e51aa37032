// Package metrics computes quality measures over laid-out trees.
//
// The numbers describe the drawing, not the data: how wide and tall the
// layout came out, how densely the boxes fill their bounding box, how the
// nodes spread across depth levels, and how evenly siblings are spaced.
// They feed the stats command and the layout API responses.
package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sibaiper/tidy-tree/pkg/tree"
)

// Metrics summarizes the geometry of a laid-out tree.
type Metrics struct {
	Nodes  int `json:"nodes"`
	Depth  int `json:"depth"`
	Leaves int `json:"leaves"`

	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`

	// Density is total box area over bounding box area, in (0, 1] for
	// non-overlapping layouts.
	Density float64 `json:"density"`

	SiblingGaps GapStats     `json:"sibling_gaps"`
	Levels      []LevelStats `json:"levels,omitempty"`
}

// GapStats describes the distribution of horizontal gaps between adjacent
// siblings across the whole tree. StdDev is the sample standard deviation
// and zero when fewer than two gaps exist.
type GapStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// LevelStats describes one depth level of the drawing.
type LevelStats struct {
	Depth int `json:"depth"`
	Nodes int `json:"nodes"`
	// Width is the horizontal extent from the leftmost box edge to the
	// rightmost on this level.
	Width float64 `json:"width"`
	// Occupancy is the summed box width over the level extent: 1.0 means
	// the level is packed edge to edge.
	Occupancy float64 `json:"occupancy"`
}

// Compute derives layout metrics from final node positions. Call it after
// the layout engine has run; unlaid trees produce meaningless numbers.
func Compute(t *tree.Tree) Metrics {
	if t == nil || t.Len() == 0 {
		return Metrics{}
	}

	minX, minY, maxX, maxY := t.Bounds()
	m := Metrics{
		Nodes:  t.Len(),
		Depth:  t.Depth(),
		Leaves: t.Leaves(),
		Width:  maxX - minX,
		Height: maxY - minY,
	}
	if m.Height > 0 {
		m.AspectRatio = m.Width / m.Height
	}

	var boxArea float64
	t.Walk(func(id tree.NodeID) bool {
		n := t.Node(id)
		boxArea += n.W * n.H
		return true
	})
	if frame := m.Width * m.Height; frame > 0 {
		m.Density = boxArea / frame
	}

	m.SiblingGaps = gapStats(t)
	m.Levels = levelStats(t)
	return m
}

// gapStats collects the horizontal gap between each pair of adjacent
// siblings. Children are visited in insertion order, which the layout
// engine preserves left to right.
func gapStats(t *tree.Tree) GapStats {
	var gaps []float64
	t.Walk(func(id tree.NodeID) bool {
		children := t.Node(id).Children
		for i := 1; i < len(children); i++ {
			prev, cur := t.Node(children[i-1]), t.Node(children[i])
			gaps = append(gaps, cur.X-(prev.X+prev.W))
		}
		return true
	})

	if len(gaps) == 0 {
		return GapStats{}
	}

	gs := GapStats{
		Count: len(gaps),
		Min:   floats.Min(gaps),
		Max:   floats.Max(gaps),
		Mean:  stat.Mean(gaps, nil),
	}
	if len(gaps) > 1 {
		gs.StdDev = stat.StdDev(gaps, nil)
	}
	return gs
}

func levelStats(t *tree.Tree) []LevelStats {
	type level struct {
		nodes       int
		left, right float64
		widthSum    float64
	}
	levels := make([]level, t.Depth()+1)

	t.WalkDepth(func(id tree.NodeID, depth int) bool {
		n := t.Node(id)
		l := &levels[depth]
		if l.nodes == 0 {
			l.left, l.right = n.X, n.X+n.W
		} else {
			l.left = min(l.left, n.X)
			l.right = max(l.right, n.X+n.W)
		}
		l.nodes++
		l.widthSum += n.W
		return true
	})

	out := make([]LevelStats, len(levels))
	for d, l := range levels {
		ls := LevelStats{
			Depth: d,
			Nodes: l.nodes,
			Width: l.right - l.left,
		}
		if ls.Width > 0 {
			ls.Occupancy = l.widthSum / ls.Width
		} else if l.nodes > 0 {
			// Zero-width boxes still count as a fully packed level.
			ls.Occupancy = 1
		}
		out[d] = ls
	}
	return out
}
