// Package pkg provides the core libraries for tidytree layout and rendering.
//
// # Overview
//
// Tidytree draws trees with variable-sized nodes using a linear-time,
// non-layered layout algorithm: children sit a fixed gap below their
// parent rather than on global layers, so subtrees pack tightly. The pkg
// directory is organized into four main areas:
//
//  1. Layout engine ([tidy], [tree], [metrics])
//  2. Documents ([treefile], [dsl], [measure])
//  3. Rendering ([render/treebox], [render/nodelink])
//  4. Infrastructure ([pipeline], [cache], [store], [api], [config])
//
// # Architecture
//
// The typical data flow through tidytree:
//
//	JSON / YAML / DSL document
//	         ↓
//	    [treefile] package (parse into a tree)
//	         ↓
//	    [measure] package (resolve node sizes)
//	         ↓
//	    [tidy] package (compute positions)
//	         ↓
//	    [render] packages (SVG/PNG/PDF/JSON/DOT output)
//
// # Quick Start
//
// Lay out a small tree and render it:
//
//	import (
//	    "github.com/sibaiper/tidy-tree/pkg/tidy"
//	    "github.com/sibaiper/tidy-tree/pkg/tree"
//	    "github.com/sibaiper/tidy-tree/pkg/render/treebox"
//	)
//
//	t := tree.New()
//	root, _ := t.AddRoot("root", 100, 40)
//	t.AddChild(root, "left", 80, 40)
//	t.AddChild(root, "right", 120, 40)
//
//	if err := tidy.Layout(t); err != nil {
//	    // handle invalid input
//	}
//	svg := treebox.RenderSVG(t)
//
// # Main Packages
//
// [tree] - Arena-backed tree structure with contiguous node storage. Holds
// both the input boxes (width, height) and the engine's scratch fields.
//
// [tidy] - The layout engine. Two depth-first passes over the tree with
// contour threading and deferred shifts keep the whole computation linear
// in the node count.
//
// [metrics] - Post-layout quality metrics: bounding box, density, sibling
// gap distribution, per-level occupancy.
//
// [treefile] - JSON and YAML document formats for trees and computed
// layouts, plus conversions to and from [tree.Tree].
//
// [dsl] - A small text format for writing trees by hand, parsed with
// participle.
//
// [measure] - Expression-based node sizing: width and height computed from
// the label and depth with expr-lang expressions.
//
// [render/treebox] - Box-and-connector drawings of the layout itself.
// [render/nodelink] - Graphviz node-link diagrams of the tree structure.
//
// # Infrastructure
//
// [pipeline] - Complete parse → measure → layout → render pipeline with
// per-stage caching, used by both the CLI and the HTTP API.
//
// [cache] - Content-addressed result cache with file, Redis, and null
// backends.
//
// [store] - Persistence for computed layouts (in-memory and MongoDB).
//
// [api] - HTTP API over the pipeline and store.
//
// [config] - TOML configuration file loading with validation.
//
// [errors] - Coded errors shared across the CLI and API.
//
// [observability] - Pluggable hooks for pipeline, cache, and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/tidy/...     # Layout engine only
//	go test -run Example       # Examples only
package pkg
