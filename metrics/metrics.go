// ABOUTME: Per-campaign metrics computed by walking cadence, contacts, accounts, and activities
// ABOUTME: Always recomputed from the store; nothing is cached between calls
package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
)

// CampaignMetrics is the derived view of one campaign. ReplyRate and
// MeetingRate stay zero because nothing in the store records replies or
// meetings.
type CampaignMetrics struct {
	CampaignID       int64        `json:"campaign_id"`
	CampaignName     string       `json:"campaign_name"`
	HasPPTX          bool         `json:"has_pptx"`
	HasCadence       bool         `json:"has_cadence"`
	CadenceID        int64        `json:"cadence_id,omitempty"`
	AccountCount     int          `json:"account_count"`
	LeadCount        int          `json:"lead_count"`
	DepartmentLabels []Department `json:"department_labels"`
	SEOCount         int          `json:"seo_count"`
	ManagementCount  int          `json:"management_count"`
	EngagedLeads     int          `json:"engaged_leads"`
	ExhaustedLeads   int          `json:"exhausted_leads"`
	ReplyRate        float64      `json:"reply_rate"`
	MeetingRate      float64      `json:"meeting_rate"`
	SignalCount      int          `json:"signal_count"`
	OpportunityCount int          `json:"opportunity_count"`
	ActivityCount    int          `json:"activity_count"`
	NextBestAction   Action       `json:"next_best_action"`
}

// Counters extracts the NextBestAction inputs.
func (m *CampaignMetrics) Counters() Counters {
	return Counters{
		Accounts:      m.AccountCount,
		Leads:         m.LeadCount,
		Engaged:       m.EngagedLeads,
		Exhausted:     m.ExhaustedLeads,
		Opportunities: m.OpportunityCount,
	}
}

// ComputeCampaignMetrics reads the campaign's whole graph. A campaign without a
// cadence is not an error; its counts are all zero.
func ComputeCampaignMetrics(ctx context.Context, q db.Querier, campaignID int64) (*CampaignMetrics, error) {
	campaign, err := db.GetCampaign(ctx, q, campaignID)
	if err != nil {
		return nil, err
	}

	m := &CampaignMetrics{
		CampaignID:       campaign.ID,
		CampaignName:     campaign.Name,
		DepartmentLabels: []Department{},
	}

	docs, err := db.ListDocuments(ctx, q, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	for i := range docs {
		if HasPPTX(&docs[i]) {
			m.HasPPTX = true
			break
		}
	}

	cadence, err := db.GetCadenceForCampaign(ctx, q, campaign.ID)
	if errors.Is(err, models.ErrNotFound) {
		m.NextBestAction = NextBestAction(m.Counters())
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	m.HasCadence = true
	m.CadenceID = cadence.ID

	contacts, err := db.ListContacts(ctx, q, cadence.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	m.LeadCount = len(contacts)

	accountSeen := make(map[int64]bool)
	labelSeen := make(map[Department]bool)

	for _, c := range contacts {
		if c.AccountID != nil {
			accountSeen[*c.AccountID] = true
		}

		if c.Status == models.StatusPaused {
			m.ExhaustedLeads++
		}

		dept, ok := ClassifyDepartment(c.Title)
		if !ok {
			continue
		}
		if !labelSeen[dept] {
			labelSeen[dept] = true
			m.DepartmentLabels = append(m.DepartmentLabels, dept)
		}
		switch dept {
		case DepartmentSEO:
			m.SEOCount++
		case DepartmentManagement:
			m.ManagementCount++
		}
	}
	m.AccountCount = len(accountSeen)

	engagement, err := db.CountCadenceEngagement(ctx, q, cadence.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count engagement: %w", err)
	}
	m.ActivityCount = engagement.Activities
	m.EngagedLeads = engagement.EngagedLeads
	m.SignalCount = engagement.Signals
	m.OpportunityCount = engagement.Opportunities

	m.NextBestAction = NextBestAction(m.Counters())
	return m, nil
}

// HasPPTX reports whether the document is a PowerPoint deck, judged by a
// case-insensitive ".pptx" suffix on either the stored path or the display name.
func HasPPTX(doc *models.Document) bool {
	return strings.HasSuffix(strings.ToLower(doc.FilePath), ".pptx") ||
		strings.HasSuffix(strings.ToLower(doc.Name), ".pptx")
}
