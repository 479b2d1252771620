package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/buildplan/buildplan/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command: an interactive package browser.
func (c *CLI) browseCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse packages interactively",
		Long: `Browse opens an interactive list of workspace packages in build order.
Selecting a package shows its declared dependencies, the local subset, and
everything that transitively depends on it.

Examples:
  buildplan browse
  buildplan browse --from graph.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, err := c.loadGraph(ctx, &opts)
			if err != nil {
				return err
			}
			order, err := sortGraph(ctx, g)
			if err != nil {
				return err
			}

			model := newPackageListModel(g, order)
			p := tea.NewProgram(model, tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}

	registerGraphFlags(cmd, &opts)
	return cmd
}

// =============================================================================
// packageListModel - Interactive package browser
// =============================================================================

// packageListModel is the bubbletea model for browsing packages in build order.
type packageListModel struct {
	graph  *graph.DependencyGraph
	order  []string
	cursor int
	height int
	offset int
}

func newPackageListModel(g *graph.DependencyGraph, order []string) packageListModel {
	return packageListModel{
		graph:  g,
		order:  order,
		height: 15,
	}
}

func (m packageListModel) Init() tea.Cmd {
	return nil
}

func (m packageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.order)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g", "home":
			m.cursor = 0
			m.offset = 0
		case "G", "end":
			m.cursor = len(m.order) - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m packageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Workspace Packages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.order) {
		end = len(m.order)
	}

	for i := m.offset; i < end; i++ {
		name := m.order[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%3d  %s", cursor, i+1, name)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.order))))

	return b.String()
}

// detail renders the panel for the package under the cursor.
func (m packageListModel) detail() string {
	if len(m.order) == 0 {
		return ""
	}
	name := m.order[m.cursor]
	node, ok := m.graph.Node(name)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("  " + StyleValue.Render(node.Name) + listDimStyle.Render(" v"+node.Version))
	if node.Location != "" {
		b.WriteString(listDimStyle.Render("  "+node.Location))
	}
	b.WriteString("\n")

	b.WriteString(detailLine("depends on", m.graph.Dependencies(name)))
	b.WriteString(detailLine("depended on by", m.graph.Dependents(name)))

	dependents := graph.DependentsOf(name, m.graph)
	affected := make([]string, 0, len(dependents))
	for _, candidate := range m.graph.Names() {
		if dependents[candidate] {
			affected = append(affected, candidate)
		}
	}
	b.WriteString(detailLine("affects", affected))

	return b.String()
}

func detailLine(label string, names []string) string {
	value := "—"
	if len(names) > 0 {
		value = strings.Join(names, ", ")
	}
	return fmt.Sprintf("  %s %s\n", listDimStyle.Render(label+":"), value)
}
