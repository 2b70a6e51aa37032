package styles

import (
	"bytes"
	"fmt"
)

// Simple is the default style: white boxes with thin grey outlines,
// solid connectors, and a serif face for labels. It writes no defs.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	radius := min(4.0, min(b.W, b.H)*0.1)
	fmt.Fprintf(buf,
		`  <rect id="box-%d" class="box" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" ry="%.1f" fill="white" stroke="#333" stroke-width="1.5"/>`+"\n",
		b.ID, b.X, b.Y, b.W, b.H, radius, radius)
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf,
		`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#333" stroke-width="1.5"/>`+"\n",
		c.X1, c.Y1, c.X2, c.Y2)
}

func (Simple) RenderText(buf *bytes.Buffer, b Box) {
	rotated := ShouldRotate(b)
	label := EscapeXML(TruncateLabel(b, rotated))

	fmt.Fprintf(buf, `  <g class="box-text" data-box="%d">`, b.ID)
	if rotated {
		fmt.Fprintf(buf,
			`<text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="Times,serif" font-size="%.1f" transform="rotate(-90 %.2f %.2f)">%s</text>`,
			b.CX, b.CY, FontSizeRotated(b), b.CX, b.CY, label)
	} else {
		fmt.Fprintf(buf,
			`<text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="Times,serif" font-size="%.1f">%s</text>`,
			b.CX, b.CY, FontSize(b), label)
	}
	buf.WriteString("</g>\n")
}
