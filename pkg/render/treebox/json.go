package treebox

import (
	"encoding/json"

	"github.com/sibaiper/tidy-tree/pkg/tree"
)

// JSONOption configures JSON export via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	padding float64
	style   string
}

// WithJSONPadding sets the padding applied to the exported geometry
// (default [DefaultPadding]), matching the SVG renderer's translation.
func WithJSONPadding(p float64) JSONOption { return func(r *jsonRenderer) { r.padding = p } }

// WithJSONStyle records the style name (e.g., "simple", "sketch") in the
// output for documentation or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonOutput struct {
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Padding    float64         `json:"padding"`
	Style      string          `json:"style,omitempty"`
	Boxes      []jsonBox       `json:"boxes"`
	Connectors []jsonConnector `json:"connectors,omitempty"`
}

type jsonBox struct {
	ID     int     `json:"id"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  int     `json:"depth"`
	Leaf   bool    `json:"leaf,omitempty"`
}

type jsonConnector struct {
	Parent int `json:"parent"`
	Child  int `json:"child"`
}

// RenderJSON exports the drawing geometry as a pretty-printed JSON document:
// the same translated boxes and connectors the SVG renderer draws, for
// consumption by external visualization tools. This carries render geometry
// only; persisting and reloading layouts is the treefile package's job.
func RenderJSON(t *tree.Tree, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}

	boxes, connectors := buildGeometry(t, r.padding)
	width, height := frameSize(t, r.padding)

	out := jsonOutput{
		Width:   width,
		Height:  height,
		Padding: r.padding,
		Style:   r.style,
		Boxes:   make([]jsonBox, 0, len(boxes)),
	}
	for _, b := range boxes {
		out.Boxes = append(out.Boxes, jsonBox{
			ID:     b.ID,
			Label:  b.Label,
			X:      b.X,
			Y:      b.Y,
			Width:  b.W,
			Height: b.H,
			Depth:  b.Depth,
			Leaf:   b.Leaf,
		})
	}
	for _, c := range connectors {
		out.Connectors = append(out.Connectors, jsonConnector{Parent: c.ParentID, Child: c.ChildID})
	}

	return json.MarshalIndent(out, "", "  ")
}
