package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// =============================================================================
// Canonical Formatting
// =============================================================================

// Format renders a document as canonical DSL text: the gap directive when
// gaps are present, then the node tree with two space indentation and the
// size pair spelled out on every node that carries one. Parsing the output
// reproduces the document.
func Format(d treefile.Doc) string {
	var b strings.Builder
	if d.Gaps != nil {
		fmt.Fprintf(&b, "gap %s %s\n\n", num(d.Gaps.Vertical), num(d.Gaps.Horizontal))
	}
	if d.Root != nil {
		writeNode(&b, d.Root, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *treefile.NodeDoc, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString("node ")
	b.WriteString(strconv.Quote(n.Label))
	if n.Width != 0 || n.Height != 0 {
		b.WriteString(" " + num(n.Width) + " " + num(n.Height))
	}
	if len(n.Children) > 0 {
		b.WriteString(" {\n")
		for _, c := range n.Children {
			if c == nil {
				continue
			}
			writeNode(b, c, depth+1)
		}
		b.WriteString(indent + "}")
	}
	b.WriteString("\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
