package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/piechart/pkg/chart"
)

var (
	inspectHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	inspectDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags chartFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [dataset|layout.json]",
		Short: "Browse slice geometry and label placement",
		Long: `Browse slice geometry and label placement.

Shows every slice with its share, angles, fill and label anchor. Files ending
in .layout.json are shown as stored; datasets are laid out first using the
same options as 'layout'. The view is interactive on a terminal; use --plain
(or pipe the output) for a static table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := c.loadInspectLayout(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			if plain || !isTerminal(stdout) {
				fmt.Fprintln(stdout, newInspectModel(layout).table(-1).Render())
				printLayoutWarnings(layout)
				return nil
			}
			_, err = tea.NewProgram(newInspectModel(layout), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table instead of the interactive view")

	return cmd
}

func (c *CLI) loadInspectLayout(cmd *cobra.Command, input string, flags *chartFlags) (chart.Layout, error) {
	if strings.HasSuffix(input, layoutSuffix+".json") {
		return chart.ReadLayoutFile(input)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return chart.Layout{}, err
	}
	ds, err := chart.ReadDatasetFile(input)
	if err != nil {
		return chart.Layout{}, err
	}
	runner, err := c.newRunner(cmd.Context(), flags.noCache)
	if err != nil {
		return chart.Layout{}, err
	}
	defer runner.Close()

	opts := flags.options(cmd, cfg.Chart)
	opts.Logger = c.Logger
	return runner.GenerateLayout(cmd.Context(), ds, opts)
}

// =============================================================================
// inspectModel - Interactive slice table
// =============================================================================

// inspectModel is the bubbletea model for browsing slices.
type inspectModel struct {
	layout chart.Layout
	cursor int
	offset int
	height int
}

func newInspectModel(l chart.Layout) inspectModel {
	return inspectModel{layout: l, height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.layout.Slices)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(n-1, 0)
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	title := m.layout.Title
	if title == "" {
		title = "Untitled chart"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(inspectDimStyle.Render(fmt.Sprintf("%gx%g  radius %g  ↑/↓ navigate  q quit",
		m.layout.Width, m.layout.Height, m.layout.Radius)))
	b.WriteString("\n\n")

	if len(m.layout.Slices) == 0 {
		b.WriteString(StyleWarning.Render("no slices"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.table(m.height).Render())
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(inspectDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.layout.Slices))))
	return b.String()
}

// table renders the visible window of slices. A height below zero renders
// every slice without a cursor.
func (m inspectModel) table(height int) *table.Table {
	interactive := height >= 0
	start, end := 0, len(m.layout.Slices)
	if interactive {
		start = m.offset
		end = min(m.offset+height, end)
	}

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		s := m.layout.Slices[i]
		cursor := "  "
		if interactive && i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			s.Name,
			fmt.Sprintf("%g", s.Value),
			fmt.Sprintf("%.1f%%", s.Share*100),
			fmt.Sprintf("%.1f°–%.1f°", s.StartAngle, s.EndAngle),
			s.Fill,
			s.Label.Placement,
			fmt.Sprintf("(%.0f, %.0f) %s", s.Label.X, s.Label.Y, s.Label.TextAnchor),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Value", "Share", "Angles", "Fill", "Label", "Anchor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return inspectHeaderStyle
			}
			idx := start + row
			if idx >= end {
				return lipgloss.NewStyle()
			}
			s := m.layout.Slices[idx]
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 5:
				base = base.Foreground(lipgloss.Color(s.Fill))
			case 6:
				if s.Leader != nil {
					base = base.Foreground(colorYellow)
				}
			}
			if interactive && idx == m.cursor {
				return base.Bold(true)
			}
			return base
		})
}

// detail describes the selected slice's label.
func (m inspectModel) detail() string {
	s := m.layout.Slices[m.cursor]
	line := fmt.Sprintf("  %s %q", iconInfo, s.Label.Text)
	if s.Leader != nil {
		pts := make([]string, len(s.Leader))
		for i, p := range s.Leader {
			pts[i] = fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
		}
		line += "  leader " + strings.Join(pts, " → ")
	}
	return StyleValue.Render(line)
}
