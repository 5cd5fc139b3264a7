// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII overview of the pipeline and each campaign's next best action
package viz

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/metrics"
	"github.com/harperreed/outlab/models"
)

type DashboardStats struct {
	PipelineByStage map[models.OpportunityStage]PipelineStageStats

	TotalCampaigns     int
	TotalAccounts      int
	TotalLeads         int
	TotalOpportunities int

	Campaigns []CampaignSummary

	// Campaigns whose next best action asks for a change of course
	NeedsAttention []CampaignSummary
}

type PipelineStageStats struct {
	Stage  models.OpportunityStage
	Count  int
	Amount float64
}

type CampaignSummary struct {
	Name           string
	Leads          int
	Exhausted      int
	NextBestAction metrics.Action
}

func GenerateDashboardStats(ctx context.Context, q db.Querier) (*DashboardStats, error) {
	stats := &DashboardStats{
		PipelineByStage: make(map[models.OpportunityStage]PipelineStageStats),
	}

	pipeline, err := db.ListPipeline(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pipeline: %w", err)
	}
	for _, e := range pipeline {
		pstats := stats.PipelineByStage[e.Stage]
		pstats.Stage = e.Stage
		pstats.Count++
		pstats.Amount += e.Amount
		stats.PipelineByStage[e.Stage] = pstats
	}
	stats.TotalOpportunities = len(pipeline)

	accounts, err := db.ListAccounts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	stats.TotalAccounts = len(accounts)

	campaigns, err := db.ListCampaigns(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaigns: %w", err)
	}
	stats.TotalCampaigns = len(campaigns)

	for _, c := range campaigns {
		m, err := metrics.ComputeCampaignMetrics(ctx, q, c.ID)
		if err != nil {
			return nil, err
		}
		summary := CampaignSummary{
			Name:           c.Name,
			Leads:          m.LeadCount,
			Exhausted:      m.ExhaustedLeads,
			NextBestAction: m.NextBestAction,
		}
		stats.TotalLeads += m.LeadCount
		stats.Campaigns = append(stats.Campaigns, summary)

		switch m.NextBestAction {
		case metrics.ActionModifyCampaign, metrics.ActionDisqualifyCadence:
			stats.NeedsAttention = append(stats.NeedsAttention, summary)
		}
	}

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  OUTLAB DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, stats.PipelineByStage)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  🎯 %d campaigns  🏢 %d accounts  📇 %d leads  💼 %d opportunities\n\n",
		stats.TotalCampaigns, stats.TotalAccounts, stats.TotalLeads, stats.TotalOpportunities))

	if len(stats.Campaigns) > 0 {
		out.WriteString("NEXT BEST ACTIONS\n")
		for _, c := range stats.Campaigns {
			out.WriteString(fmt.Sprintf("  %-24s %4d leads  → %s\n", truncate(c.Name, 24), c.Leads, c.NextBestAction))
		}
		out.WriteString("\n")
	}

	if len(stats.NeedsAttention) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		for _, c := range stats.NeedsAttention {
			out.WriteString(fmt.Sprintf("  ⚠️  %s - %d of %d leads exhausted\n", c.Name, c.Exhausted, c.Leads))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline map[models.OpportunityStage]PipelineStageStats) {
	if len(pipeline) == 0 {
		out.WriteString("  (no opportunities yet)\n")
		return
	}

	maxCount := 0
	for _, pstats := range pipeline {
		if pstats.Count > maxCount {
			maxCount = pstats.Count
		}
	}

	for _, stage := range models.OpportunityStages {
		pstats, exists := pipeline[stage]
		if !exists {
			continue
		}

		// 0-10 blocks
		barLength := (pstats.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-10s %s  %2d ($%.1fK)\n",
			stage, bar, pstats.Count, pstats.Amount/1000))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
