// Package treefile provides serialization types for tree documents and
// computed layouts.
//
// This package defines the canonical wire format for tidytree's data, used
// for JSON and YAML files, API payloads, caching, and storage.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory
// arena and external formats:
//
//   - [Doc], [LayoutDoc]: Serialization types (this package)
//   - pkg/tree.Tree: Internal arena representation
//
// Use [ToTree]/[FromTree] and [NewLayoutDoc]/[LayoutDoc.ToTree] to convert
// between them.
//
// # Core Types
//
//   - [Doc]: nested input document describing a tree to lay out
//   - [NodeDoc]: one node of the input document (label, box, children)
//   - [LayoutDoc]: flat output document with computed positions
//   - [LayoutNode]: one positioned box of a layout
//
// # Input Documents
//
// Input documents nest nodes the way the tree nests:
//
//	{
//	  "name": "demo",
//	  "root": {
//	    "label": "root", "width": 60, "height": 20,
//	    "children": [
//	      {"label": "a", "width": 40, "height": 30},
//	      {"label": "b", "width": 40, "height": 30}
//	    ]
//	  }
//	}
//
// The same structure is accepted as YAML. Width and height may be omitted;
// sizing expressions fill them in later in the pipeline.
//
// Common operations:
//
//	doc, _ := treefile.ReadFile("input.json")   // File → Doc (JSON or YAML)
//	t, _ := treefile.ToTree(doc)                // Doc → arena
//	data, _ := treefile.Marshal(doc)            // Doc → pretty JSON
//
// # Layout Documents
//
// Layout documents are flat: every node carries its arena ID, parent ID
// (-1 for the root), depth and final box. Coordinates are normalized so
// the drawing's bounding box starts at (0, 0):
//
//	ld, _ := treefile.NewLayoutDoc(t, "demo", 20, 20)
//	data, _ := treefile.MarshalLayout(ld)
//
// # Formats
//
// This package is the single source of truth for input format names:
//
//	treefile.FormatJSON   // "json"
//	treefile.FormatYAML   // "yaml"
//	treefile.FormatDSL    // "dsl"
//
// [DetectFormat] picks a format from a file extension, falling back to
// sniffing the content. DSL parsing itself lives in pkg/dsl, which
// produces a [Doc].
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package treefile
