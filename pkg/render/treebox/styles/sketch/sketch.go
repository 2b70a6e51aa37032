// Package sketch provides a hand-drawn rendering style with wobbly,
// imperfect lines. All randomness derives from a seed plus the node
// identity, so the same tree rendered twice produces identical bytes.
package sketch

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/sibaiper/tidy-tree/pkg/render/treebox/styles"
)

// Sketch implements [styles.Style] with a hand-drawn aesthetic: wobbled
// box outlines, per-node grey fills, curved connectors, and slightly
// tilted labels in a handwriting face.
type Sketch struct {
	seed uint64
}

// New creates a Sketch style. The seed controls the wobble; the same seed
// always produces the same drawing.
func New(seed uint64) Sketch { return Sketch{seed: seed} }

// RenderDefs writes a displacement filter that roughens every stroke.
func (s Sketch) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <filter id="roughen" x="-5%%" y="-5%%" width="110%%" height="110%%">
      <feTurbulence type="fractalNoise" baseFrequency="0.04" numOctaves="2" seed="%d" result="noise"/>
      <feDisplacementMap in="SourceGraphic" in2="noise" scale="1.5"/>
    </filter>
  </defs>
`, s.seed%100)
}

func (s Sketch) RenderBox(buf *bytes.Buffer, b styles.Box) {
	key := nodeKey(b)
	fmt.Fprintf(buf,
		`  <path id="box-%d" class="box" d="%s" fill="%s" stroke="#222" stroke-width="1.8" stroke-linejoin="round" filter="url(#roughen)"/>`+"\n",
		b.ID, wobbledRect(b.X, b.Y, b.W, b.H, s.seed, key), greyForID(key))
}

func (s Sketch) RenderConnector(buf *bytes.Buffer, c styles.Connector) {
	fmt.Fprintf(buf,
		`  <path d="%s" fill="none" stroke="#222" stroke-width="1.6" stroke-linecap="round" filter="url(#roughen)"/>`+"\n",
		curvedEdge(c.X1, c.Y1, c.X2, c.Y2))
}

func (s Sketch) RenderText(buf *bytes.Buffer, b styles.Box) {
	rotated := styles.ShouldRotate(b)
	label := styles.EscapeXML(styles.TruncateLabel(b, rotated))

	angle := rotationFor(nodeKey(b), b.W, b.H)
	size := styles.FontSize(b)
	if rotated {
		angle -= 90
		size = styles.FontSizeRotated(b)
	}

	fmt.Fprintf(buf, `  <g class="box-text" data-box="%d">`, b.ID)
	fmt.Fprintf(buf,
		`<text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="'Comic Sans MS','Segoe Print',cursive" font-size="%.1f" transform="rotate(%.2f %.2f %.2f)">%s</text>`,
		b.CX, b.CY, size, angle, b.CX, b.CY, label)
	buf.WriteString("</g>\n")
}

// nodeKey folds the label and ID into one string so nodes with the same
// label still wobble independently.
func nodeKey(b styles.Box) string {
	return b.Label + "#" + strconv.Itoa(b.ID)
}

var _ styles.Style = Sketch{}
