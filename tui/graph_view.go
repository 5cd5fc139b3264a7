// ABOUTME: Graph view rendering a campaign or account relationship graph
// ABOUTME: Shows the Graphviz DOT source produced by the viz package
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outlab/viz"
)

func (m Model) renderGraphView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("GRAPH VIEW"))
	s.WriteString("\n\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.graphDOT == "":
		s.WriteString("Generating graph...\n")
	default:
		s.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Render(m.graphDOT))
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderGraphHelp())

	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.selectedID != 0 {
			m.viewMode = ViewDetail
		} else {
			m.viewMode = ViewList
		}
		m.graphDOT = ""
		m.err = nil
	}

	return m, nil
}

// generateGraph draws the selected campaign, or every campaign when nothing
// is selected.
func (m *Model) generateGraph() {
	generator := viz.NewGraphGenerator(m.db)

	var dot string
	var err error
	if m.selectedID != 0 {
		dot, err = generator.GenerateCampaignGraph(m.ctx, m.selectedID)
	} else {
		dot, err = generator.GenerateCompleteGraph(m.ctx)
	}

	m.graphDOT, m.err = dot, err
}
