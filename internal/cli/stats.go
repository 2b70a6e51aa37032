package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sibaiper/tidy-tree/pkg/metrics"
	"github.com/sibaiper/tidy-tree/pkg/pipeline"
	"github.com/sibaiper/tidy-tree/pkg/tidy"
)

// statsCommand creates the stats command for inspecting layout quality.
func (c *CLI) statsCommand() *cobra.Command {
	var asJSON bool
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "stats [input]",
		Short: "Compute layout metrics and algorithm counters for a tree",
		Long: `Compute layout metrics and algorithm counters for a tree.

The stats command lays out the input document and reports drawing metrics
(bounding box, density, sibling gap distribution, per-level occupancy)
along with counters from the layout engine itself. The layout always runs
fresh so the counters reflect real work.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.overrideFromConfig(cmd, &opts)
			return c.runStats(cmd.Context(), args[0], opts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit metrics as JSON")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, yaml, dsl (default: detect)")
	cmd.Flags().Float64Var(&opts.VerticalGap, "vertical-gap", opts.VerticalGap, "vertical distance between parent and child levels")
	cmd.Flags().Float64Var(&opts.HorizontalGap, "horizontal-gap", opts.HorizontalGap, "minimum horizontal distance between adjacent boxes")
	cmd.Flags().StringVar(&opts.WidthExpr, "width-expr", opts.WidthExpr, "expression computing node width from label/depth")
	cmd.Flags().StringVar(&opts.HeightExpr, "height-expr", opts.HeightExpr, "expression computing node height from label/depth")

	return cmd
}

// statsReport is the JSON shape of the stats output.
type statsReport struct {
	Name    string          `json:"name,omitempty"`
	Metrics metrics.Metrics `json:"metrics"`
	Ops     tidy.Stats      `json:"ops"`
}

func (c *CLI) runStats(ctx context.Context, input string, opts pipeline.Options, asJSON bool) error {
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

	// Bypass the layout cache: a cached layout reports zero counters.
	_, ops, err := pipeline.ComputeLayout(ctx, t, doc.Name, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	m := metrics.Compute(t)

	if asJSON {
		data, err := json.MarshalIndent(statsReport{Name: doc.Name, Metrics: m, Ops: ops}, "", "  ")
		if err != nil {
			return fmt.Errorf("serialize stats: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printStatsReport(doc.Name, m, ops)
	return nil
}

// printStatsReport renders the metrics as styled terminal output.
func printStatsReport(name string, m metrics.Metrics, ops tidy.Stats) {
	if name != "" {
		fmt.Println(StyleTitle.Render(name))
		printNewline()
	}

	printKeyValue("Nodes", strconv.Itoa(m.Nodes))
	printKeyValue("Depth", strconv.Itoa(m.Depth))
	printKeyValue("Leaves", strconv.Itoa(m.Leaves))
	printKeyValue("Bounding box", fmt.Sprintf("%.1f × %.1f", m.Width, m.Height))
	printKeyValue("Aspect ratio", fmt.Sprintf("%.2f", m.AspectRatio))
	printKeyValue("Density", fmt.Sprintf("%.2f", m.Density))

	if m.SiblingGaps.Count > 0 {
		printNewline()
		fmt.Println(StyleHighlight.Render("Sibling gaps"))
		printKeyValue("Count", strconv.Itoa(m.SiblingGaps.Count))
		printKeyValue("Min / Max", fmt.Sprintf("%.1f / %.1f", m.SiblingGaps.Min, m.SiblingGaps.Max))
		printKeyValue("Mean", fmt.Sprintf("%.1f", m.SiblingGaps.Mean))
		printKeyValue("Std dev", fmt.Sprintf("%.2f", m.SiblingGaps.StdDev))
	}

	if len(m.Levels) > 0 {
		printNewline()
		fmt.Println(StyleHighlight.Render("Levels"))
		fmt.Println(levelsTable(m.Levels))
	}

	printNewline()
	fmt.Println(StyleHighlight.Render("Engine counters"))
	fmt.Println(opsTable(ops))
}

// levelsTable renders per-level statistics as a bordered table.
func levelsTable(levels []metrics.LevelStats) string {
	rows := make([][]string, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, []string{
			strconv.Itoa(l.Depth),
			strconv.Itoa(l.Nodes),
			fmt.Sprintf("%.1f", l.Width),
			fmt.Sprintf("%.2f", l.Occupancy),
		})
	}
	return statsTable([]string{"Depth", "Nodes", "Width", "Occupancy"}, rows)
}

// opsTable renders the layout engine counters as a bordered table.
func opsTable(ops tidy.Stats) string {
	rows := [][]string{
		{"Contour steps", strconv.Itoa(ops.ContourSteps)},
		{"Distance checks", strconv.Itoa(ops.DistanceChecks)},
		{"Subtree moves", strconv.Itoa(ops.SubtreeMoves)},
		{"Threads set", strconv.Itoa(ops.ThreadsSet)},
		{"IYL scans", strconv.Itoa(ops.IYLScans)},
		{"IYL pushes", strconv.Itoa(ops.IYLPushes)},
		{"IYL drops", strconv.Itoa(ops.IYLDrops)},
	}
	return statsTable([]string{"Counter", "Value"}, rows)
}

func statsTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
