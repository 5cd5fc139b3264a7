// ABOUTME: MCP prompt handlers for reusable outreach workflow templates
// ABOUTME: Builds campaign review and pipeline analysis prompts from live metrics
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/metrics"
	"github.com/harperreed/outlab/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	db *sql.DB
}

func NewPromptHandlers(database *sql.DB) *PromptHandlers {
	return &PromptHandlers{db: database}
}

// Prompts lists the prompt definitions served by GetPrompt.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "campaign-review",
			Description: "Review one campaign's metrics and recommend next steps",
			Arguments: []*mcp.PromptArgument{
				{Name: "campaign_id", Description: "Campaign ID", Required: true},
			},
		},
		{
			Name:        "pipeline-analysis",
			Description: "Analyze the opportunity pipeline across all campaigns",
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "campaign-review":
		return h.getCampaignReviewPrompt(ctx, request.Params.Arguments)
	case "pipeline-analysis":
		return h.getPipelineAnalysisPrompt(ctx)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getCampaignReviewPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	idStr, ok := args["campaign_id"]
	if !ok {
		return nil, fmt.Errorf("%w: campaign_id is required", models.ErrValidation)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid campaign_id %q", models.ErrValidation, idStr)
	}

	campaign, err := db.GetCampaign(ctx, h.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaign: %w", err)
	}
	m, err := metrics.ComputeCampaignMetrics(ctx, h.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute metrics: %w", err)
	}

	var promptText strings.Builder
	promptText.WriteString("Please review this outbound campaign:\n\n")
	promptText.WriteString(fmt.Sprintf("Campaign: %s\n", campaign.Name))
	if campaign.HypothesisType != "" {
		promptText.WriteString(fmt.Sprintf("Hypothesis: %s\n", campaign.HypothesisType))
	}
	if campaign.Industry != "" {
		promptText.WriteString(fmt.Sprintf("Industry: %s\n", campaign.Industry))
	}
	if campaign.ICPPersonas != "" {
		promptText.WriteString(fmt.Sprintf("Personas: %s\n", campaign.ICPPersonas))
	}
	if campaign.MessageAngle != "" {
		promptText.WriteString(fmt.Sprintf("Message angle: %s\n", campaign.MessageAngle))
	}
	if campaign.HypothesisUserStory != "" {
		promptText.WriteString(fmt.Sprintf("\nUser story: %s\n", campaign.HypothesisUserStory))
	}

	promptText.WriteString("\nMetrics:\n")
	promptText.WriteString(fmt.Sprintf("  Accounts: %d\n", m.AccountCount))
	promptText.WriteString(fmt.Sprintf("  Leads: %d (%d engaged, %d exhausted)\n", m.LeadCount, m.EngagedLeads, m.ExhaustedLeads))
	promptText.WriteString(fmt.Sprintf("  Activities: %d\n", m.ActivityCount))
	promptText.WriteString(fmt.Sprintf("  Account signals: %d\n", m.SignalCount))
	promptText.WriteString(fmt.Sprintf("  Opportunities: %d\n", m.OpportunityCount))
	promptText.WriteString(fmt.Sprintf("  Suggested next best action: %s\n", m.NextBestAction))

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Whether the hypothesis is holding up")
	promptText.WriteString("\n2. Whether you agree with the suggested next best action")
	promptText.WriteString("\n3. Concrete changes to targeting or messaging")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Review of campaign: %s", campaign.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getPipelineAnalysisPrompt(ctx context.Context) (*mcp.GetPromptResult, error) {
	entries, err := db.ListPipeline(ctx, h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pipeline: %w", err)
	}

	stageCount := make(map[models.OpportunityStage]int)
	stageValue := make(map[models.OpportunityStage]float64)
	byCampaign := make(map[string]int)
	total := 0.0
	for _, e := range entries {
		stageCount[e.Stage]++
		stageValue[e.Stage] += e.Amount
		byCampaign[e.CampaignName]++
		total += e.Amount
	}

	var promptText strings.Builder
	promptText.WriteString("Please analyze the current opportunity pipeline:\n\n")
	promptText.WriteString(fmt.Sprintf("Total Opportunities: %d\n", len(entries)))
	promptText.WriteString(fmt.Sprintf("Total Value: $%.2f\n\n", total))
	promptText.WriteString("Pipeline by Stage:\n")
	for _, stage := range models.OpportunityStages {
		if stageCount[stage] == 0 {
			continue
		}
		promptText.WriteString(fmt.Sprintf("  - %s: %d opportunities, $%.2f\n", stage, stageCount[stage], stageValue[stage]))
	}
	if len(byCampaign) > 0 {
		promptText.WriteString("\nOpportunities by Campaign:\n")
		for name, n := range byCampaign {
			promptText.WriteString(fmt.Sprintf("  - %s: %d\n", name, n))
		}
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Analysis of pipeline health and distribution")
	promptText.WriteString("\n2. Which campaigns are producing and which are not")
	promptText.WriteString("\n3. Suggestions for improving conversion")

	return &mcp.GetPromptResult{
		Description: "Opportunity pipeline analysis",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}
