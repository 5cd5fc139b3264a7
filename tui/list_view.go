// ABOUTME: Tabbed table view over campaigns, accounts, and opportunities
// ABOUTME: Builds table rows from the store for the selected entity tab
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outlab/db"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("OUTLAB"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	s.WriteString(m.renderTable())
	s.WriteString("\n\n")

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Campaigns", "Accounts", "Pipeline"}
	var rendered []string

	for i, tab := range tabs {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	columns, rows, err := m.tableData()
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", err))
	}
	if len(rows) == 0 {
		return helpStyle.Render("(nothing here yet)")
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) tableData() ([]table.Column, []table.Row, error) {
	switch m.entityType {
	case EntityCampaigns:
		campaigns, err := db.ListCampaigns(m.ctx, m.db)
		if err != nil {
			return nil, nil, err
		}
		columns := []table.Column{
			{Title: "Name", Width: 30},
			{Title: "Hypothesis", Width: 20},
			{Title: "Industry", Width: 15},
			{Title: "Created", Width: 12},
		}
		rows := make([]table.Row, 0, len(campaigns))
		for _, c := range campaigns {
			rows = append(rows, table.Row{c.Name, c.HypothesisType, c.Industry, c.CreatedAt.Format("2006-01-02")})
		}
		return columns, rows, nil

	case EntityAccounts:
		accounts, err := db.ListAccounts(m.ctx, m.db)
		if err != nil {
			return nil, nil, err
		}
		columns := []table.Column{
			{Title: "Name", Width: 30},
			{Title: "Industry", Width: 20},
			{Title: "Website", Width: 30},
		}
		rows := make([]table.Row, 0, len(accounts))
		for _, a := range accounts {
			rows = append(rows, table.Row{a.Name, a.Industry, a.Website})
		}
		return columns, rows, nil

	case EntityPipeline:
		entries, err := db.ListPipeline(m.ctx, m.db)
		if err != nil {
			return nil, nil, err
		}
		columns := []table.Column{
			{Title: "Contact", Width: 25},
			{Title: "Account", Width: 20},
			{Title: "Campaign", Width: 20},
			{Title: "Stage", Width: 10},
			{Title: "Amount", Width: 10},
		}
		rows := make([]table.Row, 0, len(entries))
		for _, e := range entries {
			contact := e.ContactName
			if contact == "" {
				contact = e.ContactEmail
			}
			rows = append(rows, table.Row{contact, e.AccountName, e.CampaignName, string(e.Stage), fmt.Sprintf("$%.0f", e.Amount)})
		}
		return columns, rows, nil
	}
	return nil, nil, nil
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: View details",
		"g: Graph of everything",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "tab":
		m.entityType = (m.entityType + 1) % entityCount
		m.selectedRow = 0
	case "enter":
		if id := m.getSelectedID(); id != 0 {
			m.viewMode = ViewDetail
			m.selectedID = id
		}
	case "g":
		m.selectedID = 0
		m.viewMode = ViewGraph
		m.generateGraph()
	}

	return m, nil
}

func (m Model) rowCount() int {
	_, rows, err := m.tableData()
	if err != nil {
		return 0
	}
	return len(rows)
}

func (m Model) getSelectedID() int64 {
	switch m.entityType {
	case EntityCampaigns:
		campaigns, _ := db.ListCampaigns(m.ctx, m.db)
		if m.selectedRow < len(campaigns) {
			return campaigns[m.selectedRow].ID
		}
	case EntityAccounts:
		accounts, _ := db.ListAccounts(m.ctx, m.db)
		if m.selectedRow < len(accounts) {
			return accounts[m.selectedRow].ID
		}
	case EntityPipeline:
		entries, _ := db.ListPipeline(m.ctx, m.db)
		if m.selectedRow < len(entries) {
			return entries[m.selectedRow].ID
		}
	}
	return 0
}
