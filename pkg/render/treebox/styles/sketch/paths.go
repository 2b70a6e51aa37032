package sketch

import (
	"fmt"
	"math"
	"strings"
)

const (
	// wobbleAmp caps how far path points stray from the true rectangle.
	wobbleAmp = 1.8
	// curveThreshold is the connector length below which lines stay straight.
	curveThreshold = 40.0
	// maxTilt bounds label rotation, in degrees.
	maxTilt = 2.5
)

// rng is a small xorshift generator. Each drawing primitive seeds its own
// from the node key, so output never depends on call order.
type rng struct{ state uint64 }

func newRNG(seed uint64) *rng {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &rng{state: seed}
}

// next returns a float64 in [0, 1).
func (r *rng) next() float64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return float64(r.state>>11) / (1 << 53)
}

// wobbledRect traces a rectangle as four quadratic curves whose control and
// end points are jittered, giving a hand-drawn outline. Output depends only
// on the geometry, the seed, and the id.
func wobbledRect(x, y, w, h float64, seed uint64, id string) string {
	r := newRNG(hash(id, seed))
	amp := min(wobbleAmp, min(w, h)*0.08)
	j := func() float64 { return (r.next()*2 - 1) * amp }

	x2, y2 := x+w, y+h
	sx, sy := x+j(), y+j()

	var b strings.Builder
	fmt.Fprintf(&b, "M%.2f,%.2f", sx, sy)
	quad := func(mx, my, ex, ey float64) {
		fmt.Fprintf(&b, " Q%.2f,%.2f %.2f,%.2f", mx+j(), my+j(), ex+j(), ey+j())
	}
	quad((x+x2)/2, y, x2, y)
	quad(x2, (y+y2)/2, x2, y2)
	quad((x+x2)/2, y2, x, y2)
	quad(x, (y+y2)/2, sx, sy)
	b.WriteString(" Z")
	return b.String()
}

// curvedEdge draws a connector path. Short hops stay straight lines; longer
// ones bow sideways into a cubic curve so the drawing reads less mechanical.
func curvedEdge(x1, y1, x2, y2 float64) string {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist < curveThreshold {
		return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f", x1, y1, x2, y2)
	}

	bow := dist * 0.08
	px, py := -dy/dist, dx/dist
	c1x, c1y := x1+dx*0.25+px*bow, y1+dy*0.25+py*bow
	c2x, c2y := x1+dx*0.75+px*bow, y1+dy*0.75+py*bow
	return fmt.Sprintf("M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f",
		x1, y1, c1x, c1y, c2x, c2y, x2, y2)
}

// rotationFor returns a small deterministic tilt, in degrees, for a node's
// label. Wide boxes tilt half as much so long labels stay inside.
func rotationFor(id string, w, h float64) float64 {
	tilt := (newRNG(hash(id, 0)).next()*2 - 1) * maxTilt
	if w > h*2 {
		tilt *= 0.5
	}
	return tilt
}
