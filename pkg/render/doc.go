// Package render provides visualization rendering for laid-out trees.
//
// # Overview
//
// This package contains the rendering layer that turns a tree with computed
// coordinates into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Box-and-connector drawings (in [treebox] subpackage)
//   - Graphviz node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers use them.
//
//	svg := treebox.RenderSVG(t, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Box Drawings
//
// The [treebox] subpackage draws each node as a rectangle at its computed
// position with connector lines from parents to children. This is the
// renderer that makes the layout itself visible: box edges touch exactly
// where sibling subtrees pack against each other.
//
// Key treebox subpackages:
//   - [treebox/styles]: Visual styles (simple, sketch)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the tree as a traditional directed
// diagram using Graphviz. Positions come from Graphviz itself, which is
// useful for comparing its layout against the computed one.
//
//	dot := nodelink.ToDOT(t, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//
// [treebox]: github.com/sibaiper/tidy-tree/pkg/render/treebox
// [treebox/styles]: github.com/sibaiper/tidy-tree/pkg/render/treebox/styles
// [nodelink]: github.com/sibaiper/tidy-tree/pkg/render/nodelink
package render
