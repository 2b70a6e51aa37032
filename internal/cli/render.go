package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibaiper/tidy-tree/pkg/pipeline"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// renderCommand creates the render command for generating output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a tree document or layout to visual output",
		Long: `Render a tree document or layout to visual output.

The input may be a tree document (JSON, YAML, or DSL), in which case the
full parse, measure, and layout pipeline runs first, or a layout.json file
produced by 'layout', in which case only the rendering step runs.

Supported output formats are svg, png, pdf, json (positioned boxes), and
dot (Graphviz node-link view). Results are cached locally for faster
subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.overrideFromConfig(cmd, &opts)
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, yaml, dsl (default: detect)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")

	// Layout flags
	cmd.Flags().Float64Var(&opts.VerticalGap, "vertical-gap", opts.VerticalGap, "vertical distance between parent and child levels")
	cmd.Flags().Float64Var(&opts.HorizontalGap, "horizontal-gap", opts.HorizontalGap, "minimum horizontal distance between adjacent boxes")
	cmd.Flags().StringVar(&opts.WidthExpr, "width-expr", opts.WidthExpr, "expression computing node width from label/depth")
	cmd.Flags().StringVar(&opts.HeightExpr, "height-expr", opts.HeightExpr, "expression computing node height from label/depth")

	// Render flags
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), sketch")
	cmd.Flags().Float64Var(&opts.Padding, "padding", opts.Padding, "padding around the drawing in pixels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "raster scale factor for PNG output")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed for the sketch style")
	cmd.Flags().BoolVar(&opts.NoConnectors, "no-connectors", opts.NoConnectors, "omit parent-child connector lines")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", opts.NoLabels, "omit node labels")

	return cmd
}

// runRender dispatches on the input kind: layout files skip straight to
// rendering, tree documents run the whole pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	if layout, ok := readLayoutInput(input); ok {
		return c.renderLayout(ctx, runner, layout, opts, input, output)
	}

	opts.Input = input

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     result.Stats.NodeCount,
		depth:     result.Stats.Depth,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// renderLayout renders a precomputed layout document.
func (c *CLI) renderLayout(ctx context.Context, runner *pipeline.Runner, layout treefile.LayoutDoc, opts pipeline.Options, input, output string) error {
	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     len(layout.Nodes),
		cacheHit:  cacheHit,
	})
}

// readLayoutInput reports whether path holds a layout document.
// Tree documents have a "root" object instead of a "nodes" array, so a
// successfully parsed layout with nodes is unambiguous.
func readLayoutInput(path string) (treefile.LayoutDoc, bool) {
	if !strings.HasSuffix(path, ".json") {
		return treefile.LayoutDoc{}, false
	}
	layout, err := treefile.ReadLayoutFile(path)
	if err != nil || len(layout.Nodes) == 0 {
		return treefile.LayoutDoc{}, false
	}
	return layout, true
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles arguments for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodes     int
	depth     int
	cacheHit  bool
}

// writeArtifacts writes rendered artifacts to disk and prints a summary.
// With a single format the output path is used as-is; with multiple
// formats it becomes a base path and each file gets its format extension.
func writeArtifacts(p artifactWriteParams) error {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := outputPath(p.output, p.input, format, len(p.formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.nodes, p.depth, p.cacheHit)

	return nil
}

// outputPath derives the output file path for one format.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".layout")
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
