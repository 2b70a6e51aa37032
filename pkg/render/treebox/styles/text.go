package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio  = 0.6
	fontWidthRatio   = 0.85
	fontCharWidth    = 0.55
	fontSizeMin      = 8.0
	fontSizeMax      = 24.0
	rotateSizeDampen = 0.75
)

func FontSize(b Box) float64        { return fontSizeFor(b.W, b.H, len(b.Label)) }
func FontSizeRotated(b Box) float64 { return fontSizeFor(b.H*rotateSizeDampen, b.W, len(b.Label)) }

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func ShouldRotate(b Box) bool {
	horizSize := fontSizeFor(b.W, b.H, len(b.Label))
	rotSize := fontSizeFor(b.H, b.W, len(b.Label))
	if len(b.Label) > 10 {
		return rotSize*1.1 >= horizSize
	}
	return rotSize > horizSize
}

func TruncateLabel(b Box, rotated bool) string {
	label := b.Label
	availW := b.W * fontWidthRatio
	if rotated {
		availW = b.H * fontWidthRatio
	}

	fontSize := FontSize(b)
	if rotated {
		fontSize = FontSizeRotated(b)
	}

	charWidth := fontSize * fontCharWidth
	// The epsilon keeps an exactly-fitting label from losing its last
	// character to float rounding.
	maxChars := int(availW/charWidth + 1e-9)
	if maxChars < 3 {
		maxChars = 3
	}

	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
