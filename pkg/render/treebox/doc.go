// Package treebox renders laid-out trees as box-and-connector drawings.
//
// # Overview
//
// The renderer reads final node positions straight off a [tree.Tree] and
// produces output in several formats:
//
//   - SVG: Scalable vector graphics with pluggable visual styles
//   - JSON: Drawing geometry export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws one <rect>-or-<path> box per node and one connector
// line per parent-child link, translated so the drawing starts at the
// padding offset regardless of the tree's own coordinate origin:
//
//	svg := treebox.RenderSVG(t,
//	    treebox.WithStyle(sketch.New(seed)),
//	    treebox.WithPadding(32),
//	)
//
// Options: [WithStyle] ([styles.Simple] or [sketch.New]), [WithPadding],
// [WithoutConnectors], [WithoutLabels].
//
// # JSON Output
//
// [RenderJSON] exports the translated boxes and connectors as JSON for
// external visualization tools. The treefile package owns layout
// persistence; this export carries render geometry only.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the tree as PDF/PNG by first
// generating SVG, then converting via [render.ToPDF] and [render.ToPNG].
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// The conversion functions are shared with [nodelink] so both drawing
// types can export to PDF/PNG.
//
// [render.ToPDF]: github.com/sibaiper/tidy-tree/pkg/render.ToPDF
// [render.ToPNG]: github.com/sibaiper/tidy-tree/pkg/render.ToPNG
// [nodelink]: github.com/sibaiper/tidy-tree/pkg/render/nodelink
// [styles.Simple]: github.com/sibaiper/tidy-tree/pkg/render/treebox/styles.Simple
// [sketch.New]: github.com/sibaiper/tidy-tree/pkg/render/treebox/styles/sketch.New
// [tree.Tree]: github.com/sibaiper/tidy-tree/pkg/tree.Tree
package treebox
