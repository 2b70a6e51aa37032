package treefile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sibaiper/tidy-tree/pkg/tree"
)

func TestToTree(t *testing.T) {
	tests := []struct {
		name    string
		doc     Doc
		wantLen int
		errIs   error
		check   func(t *testing.T, tr *tree.Tree)
	}{
		{
			name: "Simple",
			doc: Doc{Root: &NodeDoc{Label: "r", Width: 20, Height: 10, Children: []*NodeDoc{
				{Label: "a", Width: 30, Height: 10},
				{Label: "b", Width: 40, Height: 10},
			}}},
			wantLen: 3,
			check: func(t *testing.T, tr *tree.Tree) {
				for id, want := range []string{"r", "a", "b"} {
					if got := tr.Node(tree.NodeID(id)).Label; got != want {
						t.Errorf("node %d label = %q, want %q", id, got, want)
					}
				}
				if n := tr.Node(1); n.Parent != 0 || n.W != 30 {
					t.Errorf("node 1 parent = %d w = %v, want parent 0 w 30", n.Parent, n.W)
				}
			},
		},
		{
			name: "PreorderIDs",
			doc: Doc{Root: &NodeDoc{Label: "r", Children: []*NodeDoc{
				{Label: "a", Children: []*NodeDoc{{Label: "c"}}},
				{Label: "b"},
			}}},
			wantLen: 4,
			check: func(t *testing.T, tr *tree.Tree) {
				for id, want := range []string{"r", "a", "c", "b"} {
					if got := tr.Node(tree.NodeID(id)).Label; got != want {
						t.Errorf("node %d label = %q, want %q", id, got, want)
					}
				}
				if got := tr.Node(0).Children; !reflect.DeepEqual(got, []tree.NodeID{1, 3}) {
					t.Errorf("root children = %v, want [1 3]", got)
				}
			},
		},
		{name: "NoRoot", doc: Doc{Name: "empty"}, errIs: ErrNoRoot},
		{
			name:  "NilChild",
			doc:   Doc{Root: &NodeDoc{Label: "r", Children: []*NodeDoc{nil}}},
			errIs: ErrNilChild,
		},
		{
			name:  "NegativeWidth",
			doc:   Doc{Root: &NodeDoc{Label: "r", Width: -1}},
			errIs: tree.ErrNegativeDimension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := ToTree(tt.doc)
			if tt.errIs != nil {
				if !errors.Is(err, tt.errIs) {
					t.Fatalf("err = %v, want %v", err, tt.errIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToTree: %v", err)
			}
			if tr.Len() != tt.wantLen {
				t.Errorf("len = %d, want %d", tr.Len(), tt.wantLen)
			}
			if tt.check != nil {
				tt.check(t, tr)
			}
		})
	}
}

func TestFromTree(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot("r", 20, 10)
	a, _ := tr.AddChild(root, "a", 30, 10)
	tr.AddChild(root, "b", 40, 10)
	tr.AddChild(a, "c", 10, 10)

	doc, err := FromTree(tr, "converted")
	if err != nil {
		t.Fatalf("FromTree: %v", err)
	}

	if doc.Version != DocVersion {
		t.Errorf("version = %d, want %d", doc.Version, DocVersion)
	}
	if doc.Name != "converted" {
		t.Errorf("name = %q, want %q", doc.Name, "converted")
	}
	if got := doc.Root.Count(); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
	if got := doc.Root.Children[0].Children[0].Label; got != "c" {
		t.Errorf("grandchild = %q, want %q", got, "c")
	}
	if got := doc.Root.Children[1].Width; got != 40 {
		t.Errorf("b width = %v, want 40", got)
	}
}

func TestFromTreeEmpty(t *testing.T) {
	if _, err := FromTree(nil, "x"); !errors.Is(err, ErrNoRoot) {
		t.Errorf("nil tree err = %v, want %v", err, ErrNoRoot)
	}
	if _, err := FromTree(tree.New(), "x"); !errors.Is(err, ErrNoRoot) {
		t.Errorf("empty tree err = %v, want %v", err, ErrNoRoot)
	}
}

func TestDocRoundTrip(t *testing.T) {
	doc := Doc{Root: &NodeDoc{Label: "r", Width: 20, Height: 10, Children: []*NodeDoc{
		{Label: "a", Width: 30, Height: 10, Children: []*NodeDoc{
			{Label: "c", Width: 10, Height: 10},
		}},
		{Label: "b", Width: 40, Height: 10},
	}}}

	tr, err := ToTree(doc)
	if err != nil {
		t.Fatalf("ToTree: %v", err)
	}
	back, err := FromTree(tr, "")
	if err != nil {
		t.Fatalf("FromTree: %v", err)
	}

	if !reflect.DeepEqual(back.Root, doc.Root) {
		t.Errorf("round trip root = %+v, want %+v", back.Root, doc.Root)
	}
}

func TestMarshalStampsVersion(t *testing.T) {
	doc := Doc{Root: &NodeDoc{Label: "r"}}

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"version": 1`) {
		t.Errorf("output missing stamped version:\n%s", data)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Version != DocVersion {
		t.Errorf("version = %d, want %d", got.Version, DocVersion)
	}
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errIs   error
		check   func(t *testing.T, d Doc)
	}{
		{
			name: "Valid",
			input: `{
				"name": "demo",
				"gaps": {"vertical": 30, "horizontal": 15},
				"root": {
					"label": "r",
					"width": 20,
					"height": 10,
					"children": [
						{"label": "a", "width": 30, "height": 10},
						{"label": "b", "width": 40, "height": 10}
					]
				}
			}`,
			check: func(t *testing.T, d Doc) {
				if d.Name != "demo" {
					t.Errorf("name = %q, want demo", d.Name)
				}
				if d.Gaps == nil || d.Gaps.Vertical != 30 || d.Gaps.Horizontal != 15 {
					t.Errorf("gaps = %+v, want 30/15", d.Gaps)
				}
				if got := len(d.Root.Children); got != 2 {
					t.Errorf("children = %d, want 2", got)
				}
			},
		},
		{name: "MissingRoot", input: `{"name": "demo"}`, wantErr: true, errIs: ErrNoRoot},
		{name: "FutureVersion", input: `{"version": 99, "root": {"label": "r"}}`, wantErr: true},
		{name: "Invalid", input: `{invalid json}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Unmarshal([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errIs != nil && !errors.Is(err, tt.errIs) {
					t.Errorf("err = %v, want %v", err, tt.errIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if tt.check != nil {
				tt.check(t, d)
			}
		})
	}
}

func TestUnmarshalYAML(t *testing.T) {
	input := `name: org
gaps:
  vertical: 30
  horizontal: 15
root:
  label: CEO
  children:
    - label: CTO
      children:
        - label: Dev
    - label: CFO
`
	d, err := UnmarshalYAML([]byte(input))
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}

	if d.Name != "org" {
		t.Errorf("name = %q, want org", d.Name)
	}
	if d.Gaps == nil || d.Gaps.Vertical != 30 || d.Gaps.Horizontal != 15 {
		t.Errorf("gaps = %+v, want 30/15", d.Gaps)
	}
	if got := d.Root.Count(); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
	if got := d.Root.Children[0].Children[0].Label; got != "Dev" {
		t.Errorf("grandchild = %q, want Dev", got)
	}
}

func TestUnmarshalYAMLNoRoot(t *testing.T) {
	if _, err := UnmarshalYAML([]byte("name: x\n")); !errors.Is(err, ErrNoRoot) {
		t.Errorf("err = %v, want %v", err, ErrNoRoot)
	}
}

func TestMarshalYAML(t *testing.T) {
	doc := Doc{Name: "demo", Root: &NodeDoc{Label: "r", Width: 20, Height: 10}}

	data, err := MarshalYAML(doc)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	got, err := UnmarshalYAML(data)
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}

	if got.Version != DocVersion || got.Name != "demo" || got.Root.Label != "r" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestWriteRead(t *testing.T) {
	doc := Doc{Root: &NodeDoc{Label: "r"}}

	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Root.Label != "r" || got.Version != DocVersion {
		t.Errorf("round trip = %+v", got)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want string
	}{
		{name: "JSONExt", path: "tree.json", want: FormatJSON},
		{name: "YAMLExt", path: "org.yaml", want: FormatYAML},
		{name: "YMLExt", path: "org.yml", want: FormatYAML},
		{name: "TreeExt", path: "family.tree", want: FormatDSL},
		{name: "DSLExt", path: "family.dsl", want: FormatDSL},
		{name: "ExtensionWins", path: "doc.json", data: "root:\n  label: r", want: FormatJSON},
		{name: "SniffObject", path: "stdin", data: `{"root": {}}`, want: FormatJSON},
		{name: "SniffArray", path: "stdin", data: `[1, 2]`, want: FormatJSON},
		{name: "SniffLineComment", path: "stdin", data: "// family tree", want: FormatDSL},
		{name: "SniffBlockComment", path: "stdin", data: "/* tree */", want: FormatDSL},
		{name: "SniffNode", path: "stdin", data: `node "r" {}`, want: FormatDSL},
		{name: "SniffGap", path: "stdin", data: "gap 20 20", want: FormatDSL},
		{name: "SniffSize", path: "stdin", data: "size 40 20", want: FormatDSL},
		{name: "SniffYAML", path: "stdin", data: "root:\n  label: r", want: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.path, []byte(tt.data)); got != tt.want {
				t.Errorf("DetectFormat(%q, %q) = %q, want %q", tt.path, tt.data, got, tt.want)
			}
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.json")

	doc := Doc{Name: "sample", Root: &NodeDoc{Label: "r", Width: 20, Height: 10}}
	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Name != "sample" || got.Root.Label != "r" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestReadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "org.yaml")

	content := "name: org\nroot:\n  label: CEO\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Name != "org" || got.Root.Label != "CEO" {
		t.Errorf("doc = %+v", got)
	}
}

func TestReadFileDSL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.tree")

	if err := os.WriteFile(path, []byte(`node "r"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Error("expected error for dsl input")
	}
}

func TestReadFileNotFound(t *testing.T) {
	if _, err := ReadFile("nonexistent.json"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

// positionedTree builds a three node tree with hand-set positions whose
// bounding box starts at (-20, 0), so normalization has work to do.
func positionedTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New()
	root, err := tr.AddRoot("r", 20, 10)
	if err != nil {
		t.Fatal(err)
	}
	a, err := tr.AddChild(root, "a", 30, 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := tr.AddChild(root, "b", 30, 10)
	if err != nil {
		t.Fatal(err)
	}

	n := tr.Node(root)
	n.X, n.Y = -5, 0
	n = tr.Node(a)
	n.X, n.Y = -20, 30
	n = tr.Node(b)
	n.X, n.Y = 30, 30
	return tr
}

func TestNewLayoutDoc(t *testing.T) {
	doc, err := NewLayoutDoc(positionedTree(t), "demo", 20, 20)
	if err != nil {
		t.Fatalf("NewLayoutDoc: %v", err)
	}

	if doc.Version != DocVersion {
		t.Errorf("version = %d, want %d", doc.Version, DocVersion)
	}
	if doc.Width != 80 || doc.Height != 40 {
		t.Errorf("size = %gx%g, want 80x40", doc.Width, doc.Height)
	}
	if doc.VerticalGap != 20 || doc.HorizontalGap != 20 {
		t.Errorf("gaps = %g/%g, want 20/20", doc.VerticalGap, doc.HorizontalGap)
	}

	want := []LayoutNode{
		{ID: 0, Parent: -1, Label: "r", Depth: 0, X: 15, Y: 0, Width: 20, Height: 10},
		{ID: 1, Parent: 0, Label: "a", Depth: 1, X: 0, Y: 30, Width: 30, Height: 10},
		{ID: 2, Parent: 0, Label: "b", Depth: 1, X: 50, Y: 30, Width: 30, Height: 10},
	}
	if !reflect.DeepEqual(doc.Nodes, want) {
		t.Errorf("nodes = %+v, want %+v", doc.Nodes, want)
	}

	root, ok := doc.Root()
	if !ok || root.Label != "r" {
		t.Errorf("root = %+v ok = %v, want r", root, ok)
	}
}

func TestNewLayoutDocEmpty(t *testing.T) {
	if _, err := NewLayoutDoc(nil, "x", 20, 20); !errors.Is(err, tree.ErrEmptyTree) {
		t.Errorf("nil err = %v, want %v", err, tree.ErrEmptyTree)
	}
	if _, err := NewLayoutDoc(tree.New(), "x", 20, 20); !errors.Is(err, tree.ErrEmptyTree) {
		t.Errorf("empty err = %v, want %v", err, tree.ErrEmptyTree)
	}
}

func TestLayoutDocToTree(t *testing.T) {
	doc, err := NewLayoutDoc(positionedTree(t), "demo", 20, 20)
	if err != nil {
		t.Fatal(err)
	}

	tr, err := doc.ToTree()
	if err != nil {
		t.Fatalf("ToTree: %v", err)
	}
	if tr.Len() != 3 {
		t.Fatalf("len = %d, want 3", tr.Len())
	}
	if n := tr.Node(0); n.Label != "r" || n.X != 15 || n.Y != 0 {
		t.Errorf("root = %q (%g,%g), want r (15,0)", n.Label, n.X, n.Y)
	}
	if n := tr.Node(2); n.Label != "b" || n.Parent != 0 || n.X != 50 {
		t.Errorf("node 2 = %q parent %d x %g, want b parent 0 x 50", n.Label, n.Parent, n.X)
	}
}

func TestLayoutDocToTreeErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   LayoutDoc
		errIs error
	}{
		{name: "NoNodes", doc: LayoutDoc{}, errIs: ErrNoLayoutNodes},
		{
			name: "OrphanParent",
			doc: LayoutDoc{Nodes: []LayoutNode{
				{ID: 0, Parent: -1, Label: "r"},
				{ID: 2, Parent: 7, Label: "x"},
			}},
		},
		{
			name: "TwoRoots",
			doc: LayoutDoc{Nodes: []LayoutNode{
				{ID: 0, Parent: -1, Label: "r"},
				{ID: 1, Parent: -1, Label: "s"},
			}},
			errIs: tree.ErrHasRoot,
		},
		{
			name: "NegativeDimension",
			doc: LayoutDoc{Nodes: []LayoutNode{
				{ID: 0, Parent: -1, Label: "r", Width: -3},
			}},
			errIs: tree.ErrNegativeDimension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.ToTree()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.errIs != nil && !errors.Is(err, tt.errIs) {
				t.Errorf("err = %v, want %v", err, tt.errIs)
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	doc, err := NewLayoutDoc(positionedTree(t), "demo", 20, 20)
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalLayout(doc)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}

	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip = %+v, want %+v", got, doc)
	}
}

func TestUnmarshalLayoutEmpty(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"nodes": []}`)); !errors.Is(err, ErrNoLayoutNodes) {
		t.Errorf("err = %v, want %v", err, ErrNoLayoutNodes)
	}
	if _, err := UnmarshalLayout([]byte(`{bad}`)); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestWriteReadLayoutFile(t *testing.T) {
	doc, err := NewLayoutDoc(positionedTree(t), "demo", 20, 20)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	if err := WriteLayoutFile(doc, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip = %+v, want %+v", got, doc)
	}
}

func TestNodeDocCount(t *testing.T) {
	tests := []struct {
		name string
		node *NodeDoc
		want int
	}{
		{name: "Nil", node: nil, want: 0},
		{name: "Leaf", node: &NodeDoc{Label: "r"}, want: 1},
		{
			name: "Nested",
			node: &NodeDoc{Label: "r", Children: []*NodeDoc{
				{Label: "a", Children: []*NodeDoc{{Label: "c"}}},
				{Label: "b"},
			}},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Count(); got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}
}
