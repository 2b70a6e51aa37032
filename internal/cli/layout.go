package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibaiper/tidy-tree/pkg/pipeline"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "layout [input]",
		Short: "Compute node positions for a tree document",
		Long: `Compute node positions for a tree document.

The layout command takes a tree document (JSON, YAML, or DSL) and computes
absolute coordinates for every node using the tidy drawing algorithm. The
output is a layout.json file that can be rendered to SVG/PNG/PDF using the
'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.overrideFromConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, yaml, dsl (default: detect)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")

	// Layout flags
	cmd.Flags().Float64Var(&opts.VerticalGap, "vertical-gap", opts.VerticalGap, "vertical distance between parent and child levels")
	cmd.Flags().Float64Var(&opts.HorizontalGap, "horizontal-gap", opts.HorizontalGap, "minimum horizontal distance between adjacent boxes")
	cmd.Flags().StringVar(&opts.WidthExpr, "width-expr", opts.WidthExpr, "expression computing node width from label/depth")
	cmd.Flags().StringVar(&opts.HeightExpr, "height-expr", opts.HeightExpr, "expression computing node height from label/depth")
	cmd.Flags().BoolVar(&opts.SkipValidation, "no-validate", opts.SkipValidation, "skip post-layout overlap validation")

	return cmd
}

// runLayout parses the input, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Input = input
	opts.Logger = c.Logger

	t, doc, err := runner.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	opts.ApplyDocGaps(doc)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d nodes...", t.Len()))
	spinner.Start()

	layout, _, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, t, doc.Name, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := treefile.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(t.Len(), t.Depth(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
