package treebox

import (
	"bytes"
	"fmt"

	"github.com/sibaiper/tidy-tree/pkg/render/treebox/styles"
	"github.com/sibaiper/tidy-tree/pkg/tree"
)

// DefaultPadding is the whitespace kept around the drawing, in SVG user units.
const DefaultPadding = 24.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style          styles.Style
	padding        float64
	hideConnectors bool
	hideLabels     bool
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithPadding sets the whitespace around the drawing.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithoutConnectors omits the parent-child connector lines.
func WithoutConnectors() SVGOption { return func(r *svgRenderer) { r.hideConnectors = true } }

// WithoutLabels omits the node labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.hideLabels = true } }

// RenderSVG draws a laid-out tree as boxes with parent-child connectors.
// Node coordinates are read as-is, so run the layout first. The drawing is
// translated so its top-left corner sits at the padding offset; the tree's
// own coordinate origin does not matter.
func RenderSVG(t *tree.Tree, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	boxes, connectors := buildGeometry(t, r.padding)
	width, height := frameSize(t, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	r.style.RenderDefs(&buf)
	if !r.hideConnectors {
		for _, c := range connectors {
			r.style.RenderConnector(&buf, c)
		}
	}
	for _, b := range boxes {
		r.style.RenderBox(&buf, b)
	}
	if !r.hideLabels {
		for _, b := range boxes {
			r.style.RenderText(&buf, b)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// buildGeometry converts laid-out nodes into boxes and connectors in
// preorder, translated so the drawing starts at (padding, padding).
// Connectors run from the parent's bottom-center to the child's top-center.
func buildGeometry(t *tree.Tree, padding float64) ([]styles.Box, []styles.Connector) {
	if t == nil || t.Len() == 0 {
		return nil, nil
	}

	minX, minY, _, _ := t.Bounds()
	dx, dy := padding-minX, padding-minY

	boxes := make([]styles.Box, 0, t.Len())
	connectors := make([]styles.Connector, 0, t.Len()-1)
	t.WalkDepth(func(id tree.NodeID, depth int) bool {
		n := t.Node(id)
		b := styles.Box{
			ID:    int(id),
			Label: n.Label,
			X:     n.X + dx,
			Y:     n.Y + dy,
			W:     n.W,
			H:     n.H,
			Depth: depth,
			Leaf:  n.IsLeaf(),
		}
		b.CX = b.X + b.W/2
		b.CY = b.Y + b.H/2
		boxes = append(boxes, b)

		if n.Parent != tree.None {
			p := t.Node(n.Parent)
			connectors = append(connectors, styles.Connector{
				ParentID: int(n.Parent),
				ChildID:  int(id),
				X1:       p.X + dx + p.W/2,
				Y1:       p.Y + dy + p.H,
				X2:       b.CX,
				Y2:       b.Y,
			})
		}
		return true
	})
	return boxes, connectors
}

// frameSize returns the SVG frame dimensions: tree extent plus padding on
// all sides. An empty tree still gets a valid (if blank) frame.
func frameSize(t *tree.Tree, padding float64) (w, h float64) {
	if t == nil || t.Len() == 0 {
		return 2 * padding, 2 * padding
	}
	minX, minY, maxX, maxY := t.Bounds()
	return (maxX - minX) + 2*padding, (maxY - minY) + 2*padding
}
