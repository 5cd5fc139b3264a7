// ABOUTME: Detail view for the selected campaign, account, or opportunity
// ABOUTME: Campaign details include the computed metrics and next best action
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/metrics"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	actionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("DETAIL VIEW"))
	s.WriteString("\n\n")

	switch m.entityType {
	case EntityCampaigns:
		s.WriteString(m.renderCampaignDetail())
	case EntityAccounts:
		s.WriteString(m.renderAccountDetail())
	case EntityPipeline:
		s.WriteString(m.renderOpportunityDetail())
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderCampaignDetail() string {
	campaign, err := db.GetCampaign(m.ctx, m.db, m.selectedID)
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", err))
	}
	met, err := metrics.ComputeCampaignMetrics(m.ctx, m.db, campaign.ID)
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", err))
	}

	var s strings.Builder

	s.WriteString(m.renderField("Name", campaign.Name))
	s.WriteString(m.renderField("Hypothesis", campaign.HypothesisType))
	s.WriteString(m.renderField("Industry", campaign.Industry))
	s.WriteString(m.renderField("Personas", campaign.ICPPersonas))
	s.WriteString(m.renderField("Message Angle", campaign.MessageAngle))
	s.WriteString(m.renderField("Trigger", campaign.Trigger))
	s.WriteString(m.renderField("Product", campaign.Product))
	s.WriteString(m.renderField("User Story", campaign.HypothesisUserStory))

	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Bold(true).Render("METRICS"))
	s.WriteString("\n")

	for _, row := range metrics.OverviewRows(campaign, met) {
		if row.Object == "Campaign" || row.Object == "Next step" {
			continue
		}
		s.WriteString(m.renderField(row.Field, row.Value))
	}

	s.WriteString("\n")
	s.WriteString(actionStyle.Render("Next best action: " + string(met.NextBestAction)))
	s.WriteString("\n")

	docs, _ := db.ListDocuments(m.ctx, m.db, campaign.ID)
	if len(docs) > 0 {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Bold(true).Render("DOCUMENTS"))
		s.WriteString("\n")
		for _, doc := range docs {
			s.WriteString(fmt.Sprintf("  • %s (%s)\n", doc.Name, doc.UploadedAt.Format("2006-01-02")))
		}
	}

	return s.String()
}

func (m Model) renderAccountDetail() string {
	account, err := db.GetAccount(m.ctx, m.db, m.selectedID)
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", err))
	}

	var s strings.Builder

	s.WriteString(m.renderField("Name", account.Name))
	s.WriteString(m.renderField("Industry", account.Industry))
	s.WriteString(m.renderField("Website", account.Website))

	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Bold(true).Render("SIGNALS"))
	s.WriteString("\n")

	signals, _ := db.ListAccountSignals(m.ctx, m.db, account.ID)
	for _, sig := range signals {
		s.WriteString(fmt.Sprintf("  • [%s] %s: %s\n", sig.Date.Format("2006-01-02"), sig.SignalType, sig.Details))
	}

	return s.String()
}

func (m Model) renderOpportunityDetail() string {
	entries, err := db.ListPipeline(m.ctx, m.db)
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", err))
	}

	for _, e := range entries {
		if e.ID != m.selectedID {
			continue
		}
		var s strings.Builder
		s.WriteString(m.renderField("Contact", e.ContactName))
		s.WriteString(m.renderField("Email", e.ContactEmail))
		s.WriteString(m.renderField("Account", e.AccountName))
		s.WriteString(m.renderField("Campaign", e.CampaignName))
		s.WriteString(m.renderField("Cadence", e.CadenceName))
		s.WriteString(m.renderField("Stage", string(e.Stage)))
		s.WriteString(m.renderField("Amount", fmt.Sprintf("$%.2f", e.Amount)))
		s.WriteString(m.renderField("Created", e.CreatedAt.Format("2006-01-02")))
		return s.String()
	}
	return errorStyle.Render(fmt.Sprintf("Error: opportunity %d not found", m.selectedID))
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{"Esc: Back"}
	if m.entityType == EntityCampaigns {
		help = append(help, "g: View graph")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.selectedID = 0
	case "g":
		if m.entityType == EntityCampaigns {
			m.viewMode = ViewGraph
			m.generateGraph()
		}
	}

	return m, nil
}
