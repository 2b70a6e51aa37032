package treefile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sibaiper/tidy-tree/pkg/tree"
)

// =============================================================================
// LayoutDoc - Computed Layout Document
// =============================================================================

// LayoutDoc is the canonical output format for computed layouts.
//
// Unlike [Doc] it is flat: nodes appear in depth-first preorder and carry
// their arena ID, their parent's ID (-1 for the root), their depth and
// their final box. Coordinates are normalized so the drawing's bounding
// box starts at (0, 0) with the recorded Width and Height.
type LayoutDoc struct {
	Version       int     `json:"version" bson:"version"`
	Generator     string  `json:"generator,omitempty" bson:"generator,omitempty"`
	Name          string  `json:"name,omitempty" bson:"name,omitempty"`
	VerticalGap   float64 `json:"vertical_gap" bson:"vertical_gap"`
	HorizontalGap float64 `json:"horizontal_gap" bson:"horizontal_gap"`
	Width         float64 `json:"width" bson:"width"`
	Height        float64 `json:"height" bson:"height"`

	Nodes []LayoutNode `json:"nodes" bson:"nodes"`
}

// LayoutNode is one positioned box of a layout document.
type LayoutNode struct {
	ID     int     `json:"id" bson:"id"`
	Parent int     `json:"parent" bson:"parent"` // -1 for the root
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
	Depth  int     `json:"depth" bson:"depth"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Root returns the layout's root node. Valid layout documents always have
// exactly one node with parent -1.
func (l LayoutDoc) Root() (LayoutNode, bool) {
	for _, n := range l.Nodes {
		if n.Parent < 0 {
			return n, true
		}
	}
	return LayoutNode{}, false
}

// NewLayoutDoc captures a laid-out tree as a layout document, translating
// all boxes so the bounding box origin is (0, 0). The gaps are recorded so
// consumers can reproduce or annotate the spacing.
func NewLayoutDoc(t *tree.Tree, name string, verticalGap, horizontalGap float64) (LayoutDoc, error) {
	if t == nil || t.Len() == 0 {
		return LayoutDoc{}, tree.ErrEmptyTree
	}

	minX, minY, maxX, maxY := t.Bounds()
	doc := LayoutDoc{
		Version:       DocVersion,
		Name:          name,
		VerticalGap:   verticalGap,
		HorizontalGap: horizontalGap,
		Width:         maxX - minX,
		Height:        maxY - minY,
		Nodes:         make([]LayoutNode, 0, t.Len()),
	}

	t.WalkDepth(func(id tree.NodeID, depth int) bool {
		n := t.Node(id)
		doc.Nodes = append(doc.Nodes, LayoutNode{
			ID:     int(n.ID),
			Parent: int(n.Parent),
			Label:  n.Label,
			Depth:  depth,
			X:      n.X - minX,
			Y:      n.Y - minY,
			Width:  n.W,
			Height: n.H,
		})
		return true
	})
	return doc, nil
}

// ToTree rebuilds an arena tree from a layout document, including the
// stored positions. Node IDs are reassigned in document order; parents
// must appear before their children, which [NewLayoutDoc] guarantees.
func (l LayoutDoc) ToTree() (*tree.Tree, error) {
	if len(l.Nodes) == 0 {
		return nil, ErrNoLayoutNodes
	}

	t := tree.New()
	ids := make(map[int]tree.NodeID, len(l.Nodes))
	for _, n := range l.Nodes {
		var id tree.NodeID
		var err error
		if n.Parent < 0 {
			id, err = t.AddRoot(n.Label, n.Width, n.Height)
		} else {
			p, ok := ids[n.Parent]
			if !ok {
				return nil, fmt.Errorf("node %d: parent %d not defined before use", n.ID, n.Parent)
			}
			id, err = t.AddChild(p, n.Label, n.Width, n.Height)
		}
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
		nd := t.Node(id)
		nd.X, nd.Y = n.X, n.Y
		ids[n.ID] = id
	}
	return t, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a layout to pretty-printed JSON bytes.
func MarshalLayout(l LayoutDoc) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a layout document.
// Validates that the document contains nodes.
func UnmarshalLayout(data []byte) (LayoutDoc, error) {
	var l LayoutDoc
	if err := json.Unmarshal(data, &l); err != nil {
		return LayoutDoc{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Nodes) == 0 {
		return LayoutDoc{}, ErrNoLayoutNodes
	}
	return l, nil
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(l LayoutDoc, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a layout from a JSON file.
func ReadLayoutFile(path string) (LayoutDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutDoc{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
