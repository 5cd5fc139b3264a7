// ABOUTME: Flattens campaign metrics into Campaign/Object/Field/Value summary rows
// ABOUTME: Shared by the CLI table, the HTTP overview endpoint, and the XLSX export
package metrics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
)

// Placeholder shown for blank hypothesis fields and empty label lists.
const Placeholder = "—"

type OverviewRow struct {
	Campaign string `json:"campaign"`
	Object   string `json:"object"`
	Field    string `json:"field"`
	Value    string `json:"value"`
}

// OverviewRows renders one campaign's hypothesis and metrics as summary rows.
func OverviewRows(campaign *models.Campaign, m *CampaignMetrics) []OverviewRow {
	var rows []OverviewRow
	add := func(object, field, value string) {
		rows = append(rows, OverviewRow{Campaign: campaign.Name, Object: object, Field: field, Value: value})
	}

	add("Campaign", "Hypothesis Type", orPlaceholder(campaign.HypothesisType))
	add("Campaign", "Industry", orPlaceholder(campaign.Industry))
	add("Campaign", "ICP (Personas)", orPlaceholder(campaign.ICPPersonas))
	add("Campaign", "Message Angle", orPlaceholder(campaign.MessageAngle))
	add("Campaign", "Trigger", orPlaceholder(campaign.Trigger))
	add("Campaign", "Product", orPlaceholder(campaign.Product))
	add("Campaign", "Hypothesis User Story", orPlaceholder(campaign.HypothesisUserStory))
	add("Documents", "PPTX", check(m.HasPPTX))
	add("Cadence", "Cadence", check(m.HasCadence))
	add("Accounts", "# of accounts", strconv.Itoa(m.AccountCount))
	add("Leads", "# of leads in campaign", strconv.Itoa(m.LeadCount))
	add("Leads", "Department types", joinLabels(m.DepartmentLabels))
	add("Leads", "Number of leads from "+string(DepartmentSEO), strconv.Itoa(m.SEOCount))
	add("Leads", "Number of leads from "+string(DepartmentManagement), strconv.Itoa(m.ManagementCount))
	add("Activities", "# of activities", strconv.Itoa(m.ActivityCount))
	add("Activities", "# of engaged leads", strconv.Itoa(m.EngagedLeads))
	add("Activities", "# of leads exhausted", strconv.Itoa(m.ExhaustedLeads))
	add("Activities", "Reply Rate", formatRate(m.ReplyRate))
	add("Activities", "Meeting Rate", formatRate(m.MeetingRate))
	add("Signals", "# of signals", strconv.Itoa(m.SignalCount))
	add("Opportunities", "# of opportunities", strconv.Itoa(m.OpportunityCount))
	add("Next step", "Next best action", string(m.NextBestAction))

	return rows
}

// Overview builds summary rows for every campaign, most recent first.
func Overview(ctx context.Context, q db.Querier) ([]OverviewRow, error) {
	campaigns, err := db.ListCampaigns(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	var rows []OverviewRow
	for i := range campaigns {
		m, err := ComputeCampaignMetrics(ctx, q, campaigns[i].ID)
		if err != nil {
			return nil, fmt.Errorf("campaign %q: %w", campaigns[i].Name, err)
		}
		rows = append(rows, OverviewRows(&campaigns[i], m)...)
	}
	return rows, nil
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func check(b bool) string {
	if b {
		return "✓"
	}
	return ""
}

func joinLabels(labels []Department) string {
	if len(labels) == 0 {
		return Placeholder
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, " | ")
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r*100, 'f', 0, 64) + "%"
}
