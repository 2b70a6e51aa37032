package nodelink

import (
	"strings"
	"testing"

	"github.com/sibaiper/tidy-tree/pkg/tree"
)

func TestToDOT_Basic(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("a", 100, 40)
	tr.AddChild(root, "b", 60, 40)

	dot := ToDOT(tr, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"0"`) {
		t.Error("ToDOT() output missing root node")
	}
	if !strings.Contains(dot, `"1"`) {
		t.Error("ToDOT() output missing child node")
	}
	if !strings.Contains(dot, `"0" -> "1"`) {
		t.Error("ToDOT() output missing edge")
	}
	if !strings.Contains(dot, `label="a"`) {
		t.Error("ToDOT() output missing root label")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("pkg", 100, 40)
	tr.AddChild(root, "kid", 60.5, 30)

	dot := ToDOT(tr, Options{Detailed: true})

	if !strings.Contains(dot, "depth: 0") {
		t.Error("ToDOT() detailed output missing root depth")
	}
	if !strings.Contains(dot, "depth: 1") {
		t.Error("ToDOT() detailed output missing child depth")
	}
	if !strings.Contains(dot, "size: 100x40") {
		t.Error("ToDOT() detailed output missing root dimensions")
	}
	if !strings.Contains(dot, "size: 60.5x30") {
		t.Error("ToDOT() detailed output missing child dimensions")
	}
}

func TestToDOT_RootFill(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("a", 100, 40)
	tr.AddChild(root, "b", 60, 40)

	dot := ToDOT(tr, Options{})

	if !strings.Contains(dot, `"0" [label="a", fillcolor=lightgrey];`) {
		t.Error("ToDOT() root missing lightgrey fill")
	}
	if !strings.Contains(dot, `"1" [label="b"];`) {
		t.Error("ToDOT() child should carry only its label attr")
	}
}

func TestToDOT_EmptyTree(t *testing.T) {
	dot := ToDOT(tree.New(), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() empty tree should still emit a digraph")
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() empty tree should emit no edges")
	}

	// nil tree behaves like an empty one
	if !strings.Contains(ToDOT(nil, Options{}), "digraph G") {
		t.Error("ToDOT() nil tree should still emit a digraph")
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	tr := tree.New()
	id, _ := tr.AddRoot("test-node", 80, 40)

	label := fmtLabel(tr.Node(id), 0, false)

	if label != "test-node" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", label, "test-node")
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("r", 80, 40)
	id, _ := tr.AddChild(root, "test-node", 50, 25)

	label := fmtLabel(tr.Node(id), 1, true)

	if !strings.HasPrefix(label, "test-node\n") {
		t.Errorf("fmtLabel() detailed should start with the label: %q", label)
	}
	if !strings.Contains(label, "depth: 1") {
		t.Errorf("fmtLabel() detailed missing depth: %q", label)
	}
	if !strings.Contains(label, "size: 50x25") {
		t.Errorf("fmtLabel() detailed missing dimensions: %q", label)
	}
}

func TestFmtAttrs_Child(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("r", 80, 40)
	id, _ := tr.AddChild(root, "child", 50, 25)

	attrs := fmtAttrs(tr.Node(id), "test-label")

	if len(attrs) != 1 {
		t.Errorf("fmtAttrs() child node should have 1 attr, got %d", len(attrs))
	}
	if !strings.Contains(attrs[0], "label=") {
		t.Errorf("fmtAttrs() child node missing label attr: %v", attrs)
	}
}

func TestFmtAttrs_Root(t *testing.T) {
	tr := tree.New()
	id, _ := tr.AddRoot("r", 80, 40)

	attrs := fmtAttrs(tr.Node(id), "root-label")

	if len(attrs) != 2 {
		t.Errorf("fmtAttrs() root should have 2 attrs, got %d: %v", len(attrs), attrs)
	}

	joined := strings.Join(attrs, " ")
	if !strings.Contains(joined, "lightgrey") {
		t.Error("fmtAttrs() root missing lightgrey fill")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	// Simple DOT that should render
	dot := `digraph G { a -> b; }`
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	// Invalid DOT syntax
	dot := `not valid DOT {{{`
	_, err := RenderSVG(dot)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
