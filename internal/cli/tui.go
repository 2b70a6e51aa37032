package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sibaiper/tidy-tree/pkg/pipeline"
	"github.com/sibaiper/tidy-tree/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for interactively inspecting a layout.
func (c *CLI) tuiCommand() *cobra.Command {
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "tui [input]",
		Short: "Interactively inspect a laid-out tree",
		Long: `Interactively inspect a laid-out tree.

The tui command lays out the input document and opens an interactive
browser over the node hierarchy. Selecting a node shows its computed
position, box dimensions, and placement within its level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.overrideFromConfig(cmd, &opts)
			return c.runTUI(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, yaml, dsl (default: detect)")
	cmd.Flags().Float64Var(&opts.VerticalGap, "vertical-gap", opts.VerticalGap, "vertical distance between parent and child levels")
	cmd.Flags().Float64Var(&opts.HorizontalGap, "horizontal-gap", opts.HorizontalGap, "minimum horizontal distance between adjacent boxes")

	return cmd
}

func (c *CLI) runTUI(ctx context.Context, input string, opts pipeline.Options) error {
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

	if _, _, err := pipeline.ComputeLayout(ctx, t, doc.Name, opts); err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	model := NewInspectorModel(doc.Name, t)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// =============================================================================
// InspectorModel - Interactive node browser
// =============================================================================

// inspectorRow is one flattened node in the browser list.
type inspectorRow struct {
	ID    tree.NodeID
	Depth int
}

// InspectorModel is the bubbletea model for browsing a laid-out tree.
type InspectorModel struct {
	Name   string
	Tree   *tree.Tree
	Rows   []inspectorRow
	Cursor int
	Height int
	Offset int
}

// NewInspectorModel flattens the tree in preorder and builds the browser.
func NewInspectorModel(name string, t *tree.Tree) InspectorModel {
	rows := make([]inspectorRow, 0, t.Len())
	t.WalkDepth(func(id tree.NodeID, depth int) bool {
		rows = append(rows, inspectorRow{ID: id, Depth: depth})
		return true
	})
	return InspectorModel{
		Name:   name,
		Tree:   t,
		Rows:   rows,
		Height: 15,
	}
}

func (m InspectorModel) Init() tea.Cmd {
	return nil
}

func (m InspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			m.Cursor = len(m.Rows) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InspectorModel) View() string {
	var b strings.Builder

	title := m.Name
	if title == "" {
		title = "Tree Inspector"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]
		n := m.Tree.Node(row.ID)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		label := n.Label
		if label == "" {
			label = fmt.Sprintf("node %d", row.ID)
		}
		line := cursor + strings.Repeat("  ", row.Depth) + label

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// detailView renders the geometry table for the selected node.
func (m InspectorModel) detailView() string {
	if len(m.Rows) == 0 {
		return ""
	}
	row := m.Rows[m.Cursor]
	n := m.Tree.Node(row.ID)

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Position", "Size", "Depth", "Children").
		Rows([][]string{{
			fmt.Sprintf("%.1f, %.1f", n.X, n.Y),
			fmt.Sprintf("%.1f × %.1f", n.W, n.H),
			strconv.Itoa(row.Depth),
			strconv.Itoa(len(n.Children)),
		}}...).
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
