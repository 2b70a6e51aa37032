package treefile

import (
	"errors"
	"fmt"

	"github.com/sibaiper/tidy-tree/pkg/tree"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// DocVersion is the current document schema version. Marshalling stamps it
// on documents that do not carry one.
const DocVersion = 1

// Input format names.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDSL  = "dsl"
)

var (
	// ErrNoRoot is returned when a document has no root node.
	ErrNoRoot = errors.New("document has no root node")

	// ErrNilChild is returned when a children array contains a null entry.
	ErrNilChild = errors.New("null child entry")

	// ErrNoLayoutNodes is returned when a layout document has no nodes.
	ErrNoLayoutNodes = errors.New("layout document has no nodes")
)

// =============================================================================
// Doc - Tree Input Document
// =============================================================================

// Doc is the canonical input format for trees.
// Used for files, API requests, caching, and storage.
//
// The format nests the way the tree nests and is designed for round-trip
// fidelity: parse → convert → export → re-parse produces identical results.
type Doc struct {
	Version int      `json:"version,omitempty" bson:"version,omitempty" yaml:"version,omitempty"`
	Name    string   `json:"name,omitempty" bson:"name,omitempty" yaml:"name,omitempty"`
	Gaps    *Gaps    `json:"gaps,omitempty" bson:"gaps,omitempty" yaml:"gaps,omitempty"`
	Root    *NodeDoc `json:"root" bson:"root" yaml:"root"`
}

// Gaps carries per-document spacing overrides. When absent the engine
// defaults apply.
type Gaps struct {
	Vertical   float64 `json:"vertical" bson:"vertical" yaml:"vertical"`
	Horizontal float64 `json:"horizontal" bson:"horizontal" yaml:"horizontal"`
}

// NodeDoc is one node of an input document. Width and height may be zero;
// sizing expressions fill them in before layout.
type NodeDoc struct {
	Label    string     `json:"label" bson:"label" yaml:"label"`
	Width    float64    `json:"width,omitempty" bson:"width,omitempty" yaml:"width,omitempty"`
	Height   float64    `json:"height,omitempty" bson:"height,omitempty" yaml:"height,omitempty"`
	Children []*NodeDoc `json:"children,omitempty" bson:"children,omitempty" yaml:"children,omitempty"`
}

// Count returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *NodeDoc) Count() int {
	if n == nil {
		return 0
	}
	total := 0
	stack := []*NodeDoc{n}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		for _, c := range nd.Children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
	return total
}

// =============================================================================
// Doc ↔ Tree Conversion
// =============================================================================

// ToTree converts a document into an arena tree. Node IDs are assigned in
// depth-first preorder, children in document order. Returns an error for
// missing roots, null children, or negative dimensions.
func ToTree(d Doc) (*tree.Tree, error) {
	if d.Root == nil {
		return nil, ErrNoRoot
	}

	t := tree.New()
	type item struct {
		doc    *NodeDoc
		parent tree.NodeID
	}
	stack := make([]item, 0, 64)
	stack = append(stack, item{d.Root, tree.None})

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var id tree.NodeID
		var err error
		if it.parent == tree.None {
			id, err = t.AddRoot(it.doc.Label, it.doc.Width, it.doc.Height)
		} else {
			id, err = t.AddChild(it.parent, it.doc.Label, it.doc.Width, it.doc.Height)
		}
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", it.doc.Label, err)
		}

		for i := len(it.doc.Children) - 1; i >= 0; i-- {
			c := it.doc.Children[i]
			if c == nil {
				return nil, fmt.Errorf("node %q: %w", it.doc.Label, ErrNilChild)
			}
			stack = append(stack, item{c, id})
		}
	}
	return t, nil
}

// FromTree converts an arena tree back into a nested document.
// Positions are not part of the input format; use [NewLayoutDoc] for those.
func FromTree(t *tree.Tree, name string) (Doc, error) {
	if t == nil || t.Len() == 0 {
		return Doc{}, ErrNoRoot
	}

	docs := make([]*NodeDoc, t.Len())
	t.Walk(func(id tree.NodeID) bool {
		n := t.Node(id)
		nd := &NodeDoc{Label: n.Label, Width: n.W, Height: n.H}
		docs[id] = nd
		if n.Parent != tree.None {
			p := docs[n.Parent]
			p.Children = append(p.Children, nd)
		}
		return true
	})

	return Doc{Version: DocVersion, Name: name, Root: docs[t.Root()]}, nil
}
