package pipeline

import (
	"fmt"

	"github.com/sibaiper/tidy-tree/pkg/render/nodelink"
	"github.com/sibaiper/tidy-tree/pkg/render/treebox"
	"github.com/sibaiper/tidy-tree/pkg/render/treebox/styles"
	"github.com/sibaiper/tidy-tree/pkg/render/treebox/styles/sketch"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// Render generates output artifacts in the requested formats from a
// computed layout document.
func Render(l treefile.LayoutDoc, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	t, err := l.ToTree()
	if err != nil {
		return nil, fmt.Errorf("rebuild tree from layout: %w", err)
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = treebox.RenderSVG(t, svgOpts...)
		case FormatPNG:
			data, err = treebox.RenderPNG(t,
				treebox.WithPNGSVGOptions(svgOpts...),
				treebox.WithScale(opts.Scale))
		case FormatPDF:
			data, err = treebox.RenderPDF(t, treebox.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = treebox.RenderJSON(t,
				treebox.WithJSONPadding(opts.Padding),
				treebox.WithJSONStyle(opts.Style))
		case FormatDOT:
			data = []byte(nodelink.ToDOT(t, nodelink.Options{}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := treefile.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(parsed, opts)
}

// buildSVGOptions builds treebox rendering options from pipeline options.
func buildSVGOptions(opts Options) []treebox.SVGOption {
	svgOpts := []treebox.SVGOption{treebox.WithPadding(opts.Padding)}

	switch opts.Style {
	case StyleSketch:
		svgOpts = append(svgOpts, treebox.WithStyle(sketch.New(opts.Seed)))
	case StyleSimple:
		svgOpts = append(svgOpts, treebox.WithStyle(styles.Simple{}))
	}

	if opts.NoConnectors {
		svgOpts = append(svgOpts, treebox.WithoutConnectors())
	}
	if opts.NoLabels {
		svgOpts = append(svgOpts, treebox.WithoutLabels())
	}
	return svgOpts
}
