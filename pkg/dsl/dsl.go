package dsl

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

var (
	// ErrNoNodes is returned when a document declares no node at all.
	ErrNoNodes = errors.New("dsl document has no nodes")

	// ErrMultipleRoots is returned when a document declares more than one
	// top level node.
	ErrMultipleRoots = errors.New("multiple top level nodes")

	// ErrDuplicateDirective is returned when gap or size appears twice.
	ErrDuplicateDirective = errors.New("duplicate directive")
)

// =============================================================================
// Grammar
// =============================================================================

var (
	treeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Brace", Pattern: `[{}]`},
	})

	docParser = participle.MustBuild[document](
		participle.Lexer(treeLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

type document struct {
	Stmts []*statement `parser:"@@*"`
}

type statement struct {
	Gap  *gapStmt  `parser:"  @@"`
	Size *sizeStmt `parser:"| @@"`
	Node *nodeStmt `parser:"| @@"`
}

type gapStmt struct {
	Pos        lexer.Position `parser:""`
	Vertical   float64        `parser:"'gap' @Number"`
	Horizontal float64        `parser:"@Number"`
}

type sizeStmt struct {
	Pos    lexer.Position `parser:""`
	Width  float64        `parser:"'size' @Number"`
	Height float64        `parser:"@Number"`
}

type nodeStmt struct {
	Pos      lexer.Position `parser:""`
	Label    stringLiteral  `parser:"'node' @String"`
	Size     *boxSize       `parser:"@@?"`
	Children []*nodeStmt    `parser:"( '{' @@* '}' )?"`
}

type boxSize struct {
	Width  float64 `parser:"@Number"`
	Height float64 `parser:"@Number"`
}

// stringLiteral unquotes Go-style strings on capture.
type stringLiteral string

// Capture implements participle.Capture.
func (s *stringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = stringLiteral(val)
	return nil
}

// =============================================================================
// Parsing API
// =============================================================================

// Parse parses DSL content from an io.Reader. The name labels the input
// in error positions and becomes the document name.
func Parse(r io.Reader, name string) (*treefile.Doc, error) {
	ast, err := docParser.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return build(ast, name)
}

// ParseString parses DSL content from a string.
func ParseString(input, name string) (*treefile.Doc, error) {
	ast, err := docParser.ParseString(name, input)
	if err != nil {
		return nil, err
	}
	return build(ast, name)
}

// build lowers the AST into a document, applying the size directive to
// nodes without explicit dimensions.
func build(ast *document, name string) (*treefile.Doc, error) {
	doc := &treefile.Doc{Version: treefile.DocVersion, Name: name}

	var defaults *boxSize
	var root *nodeStmt
	for _, st := range ast.Stmts {
		switch {
		case st.Gap != nil:
			if doc.Gaps != nil {
				return nil, fmt.Errorf("%s: %w: gap", st.Gap.Pos, ErrDuplicateDirective)
			}
			doc.Gaps = &treefile.Gaps{
				Vertical:   st.Gap.Vertical,
				Horizontal: st.Gap.Horizontal,
			}
		case st.Size != nil:
			if defaults != nil {
				return nil, fmt.Errorf("%s: %w: size", st.Size.Pos, ErrDuplicateDirective)
			}
			defaults = &boxSize{Width: st.Size.Width, Height: st.Size.Height}
		case st.Node != nil:
			if root != nil {
				return nil, fmt.Errorf("%s: %w", st.Node.Pos, ErrMultipleRoots)
			}
			root = st.Node
		}
	}

	if root == nil {
		return nil, ErrNoNodes
	}
	doc.Root = convert(root, defaults)
	return doc, nil
}

func convert(n *nodeStmt, defaults *boxSize) *treefile.NodeDoc {
	nd := &treefile.NodeDoc{Label: string(n.Label)}
	switch {
	case n.Size != nil:
		nd.Width, nd.Height = n.Size.Width, n.Size.Height
	case defaults != nil:
		nd.Width, nd.Height = defaults.Width, defaults.Height
	}
	for _, c := range n.Children {
		nd.Children = append(nd.Children, convert(c, defaults))
	}
	return nd
}
