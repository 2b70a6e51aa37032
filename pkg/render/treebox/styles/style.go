package styles

import "bytes"

// Style defines the visual appearance for box-and-connector rendering.
// Implementations control how node boxes, connectors, and labels are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients)
	// and any full-frame backdrop the style needs.
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the SVG for a single node box.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderConnector writes the SVG for a parent-child connector line.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderText writes the SVG for a box's label text.
	RenderText(buf *bytes.Buffer, b Box)
}

// Box contains all data needed to render a single node box.
type Box struct {
	ID         int     // Node identifier
	Label      string  // Display text
	X, Y, W, H float64 // Position and dimensions
	CX, CY     float64 // Center coordinates (for text)
	Depth      int     // Distance from the root (root = 0)
	Leaf       bool    // Whether the node has no children
}

// Connector contains positioning data for rendering a parent-child link.
// The line runs from the parent's bottom edge to the child's top edge.
type Connector struct {
	ParentID, ChildID int     // Connected node IDs
	X1, Y1, X2, Y2    float64 // Line coordinates
}
