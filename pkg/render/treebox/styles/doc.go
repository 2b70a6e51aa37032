// Package styles defines visual styles for box-and-connector rendering.
//
// # Overview
//
// A style controls how node boxes, parent-child connectors, and labels are
// drawn. This package provides:
//
//   - [Style]: The interface that all styles implement
//   - [Simple]: A clean, minimal style with white boxes and grey outlines
//   - [sketch]: A hand-drawn aesthetic with wobbly lines (in subpackage)
//
// # The Style Interface
//
// All styles implement [Style], which provides methods for rendering each
// visual element:
//
//   - RenderDefs: SVG <defs> section (filters, patterns, backdrops)
//   - RenderBox: Individual node boxes
//   - RenderConnector: Parent-child connector lines
//   - RenderText: Node labels
//
// Usage:
//
//	svg := treebox.RenderSVG(t, treebox.WithStyle(styles.Simple{}))
//
// The [sketch] subpackage takes a seed for reproducible randomness:
//
//	style := sketch.New(42)
//	svg := treebox.RenderSVG(t, treebox.WithStyle(style))
//
// # Box Data
//
// Styles receive [Box] structs containing all information needed for
// rendering: the node's ID and label, position and dimensions, center
// coordinates for text placement, depth, and whether the node is a leaf.
// Connectors arrive as [Connector] structs with both endpoint coordinates
// already resolved, so styles never need the tree itself.
//
// # Creating Custom Styles
//
// To create a custom style, implement the [Style] interface and write SVG
// elements to the provided bytes.Buffer using the [Box] and [Connector]
// geometry. [FontSize], [ShouldRotate], [TruncateLabel], and [EscapeXML]
// are exported so custom styles can reuse the label fitting logic.
//
// [sketch]: github.com/sibaiper/tidy-tree/pkg/render/treebox/styles/sketch
package styles
