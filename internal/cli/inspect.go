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

	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/pipeline"
)

// Table styles
var (
	tableHeaderStyle  = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	tableBorderStyle  = lipgloss.NewStyle().Foreground(colorFaint)
	tableSelectStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tableOverflowCell = lipgloss.NewStyle().Foreground(colorWarn)
)

var featureColumns = []string{"#", "Label", "Kind", "Span", "Strand", "Level", "Label row"}

// inspectCommand creates the inspect command, an interactive table of the
// features of a record with their levels and label rows.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "Browse the features of a record with their levels and label rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			if err := applyFlagOrigin(cmd, &opts); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), opts, plain, noCache)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table instead of opening the browser")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLoadFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, plain, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	plan, rec, _, err := c.computePlan(ctx, runner, opts)
	if err != nil {
		return err
	}

	m := NewFeatureTableModel(rec, plan)
	if plain {
		fmt.Fprintln(stdout, m.Summary())
		fmt.Fprintln(stdout, renderFeatureTable(m.Rows, -1))
		return nil
	}
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// FeatureTableModel - Interactive feature browser
// =============================================================================

// FeatureTableModel is the bubbletea model for the feature browser.
type FeatureTableModel struct {
	Name      string
	Topology  feature.Topology
	Bounds    feature.Range
	NumLevels int
	LabelRows int
	Warnings  int

	Rows   [][]string
	Cursor int
	Offset int
	Height int
}

// NewFeatureTableModel builds one row per feature of rec, annotated from plan.
func NewFeatureTableModel(rec *feature.Record, plan *layout.Plan) FeatureTableModel {
	return FeatureTableModel{
		Name:      rec.Name,
		Topology:  rec.Topology,
		Bounds:    plan.Bounds,
		NumLevels: plan.NumLevels,
		LabelRows: plan.NumLabelRows,
		Warnings:  len(plan.Warnings),
		Rows:      featureRows(plan),
		Height:    15,
	}
}

// featureRows formats the glyphs of plan, in feature order.
func featureRows(plan *layout.Plan) [][]string {
	labels := make(map[int]layout.LabelPlacement, len(plan.Labels))
	for _, l := range plan.Labels {
		labels[l.Feature] = l
	}

	rows := make([][]string, 0, len(plan.Glyphs))
	for _, g := range plan.Glyphs {
		f := g.Feature
		span := fmt.Sprintf("%d..%d", f.Start, f.End)
		if len(g.Segments) > 1 {
			span += " (wraps)"
		}
		row := "-"
		if l, ok := labels[g.Index]; ok {
			switch {
			case l.Overflow:
				row = "overflow"
			case l.Inline:
				row = "inline"
			default:
				row = strconv.Itoa(l.Row)
			}
		}
		label := f.Label
		if label == "" {
			label = "-"
		}
		kind := f.Kind
		if kind == "" {
			kind = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(g.Index), label, kind, span, f.Strand.String(), strconv.Itoa(g.Level), row,
		})
	}
	return rows
}

func (m FeatureTableModel) Init() tea.Cmd {
	return nil
}

func (m FeatureTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Rows))
		case "end", "G":
			m.move(len(m.Rows))
		}
	case tea.WindowSizeMsg:
		// header, summary, help and table borders
		m.Height = max(msg.Height-9, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta rows and keeps it inside the window.
func (m *FeatureTableModel) move(delta int) {
	if len(m.Rows) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Summary returns the one-line record description shown above the table.
func (m FeatureTableModel) Summary() string {
	name := m.Name
	if name == "" {
		name = "record"
	}
	parts := []string{
		StyleTitle.Render(name),
		StyleDim.Render(fmt.Sprintf("%s %s", m.Topology, m.Bounds)),
		StyleNumber.Render(strconv.Itoa(m.NumLevels)) + StyleDim.Render(" levels"),
		StyleNumber.Render(strconv.Itoa(m.LabelRows)) + StyleDim.Render(" label rows"),
	}
	if m.Warnings > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d overflow", m.Warnings)))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func (m FeatureTableModel) View() string {
	var b strings.Builder

	b.WriteString(m.Summary())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  pgup/pgdn page  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(renderFeatureTable(m.Rows[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n")
	if len(m.Rows) > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	}
	return b.String()
}

// renderFeatureTable draws rows as a bordered table, highlighting the row at
// index selected (-1 for none).
func renderFeatureTable(rows [][]string, selected int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(featureColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			base := lipgloss.NewStyle().PaddingRight(1)
			if row == selected {
				return tableSelectStyle.PaddingRight(1)
			}
			if col == len(featureColumns)-1 && row < len(rows) && rows[row][col] == "overflow" {
				return tableOverflowCell.PaddingRight(1)
			}
			if col == 0 {
				return base.Foreground(colorFaint)
			}
			return base
		})
	return t.Render()
}
