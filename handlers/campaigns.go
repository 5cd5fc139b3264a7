// ABOUTME: Campaign MCP tool handlers
// ABOUTME: Implements create_campaign, list_campaigns, get_campaign, and campaign_metrics tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/metrics"
	"github.com/harperreed/outlab/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CampaignHandlers struct {
	db *sql.DB
}

func NewCampaignHandlers(database *sql.DB) *CampaignHandlers {
	return &CampaignHandlers{db: database}
}

type CreateCampaignInput struct {
	Name                string `json:"name" jsonschema:"Campaign name, unique (required)"`
	HypothesisType      string `json:"hypothesis_type,omitempty" jsonschema:"Hypothesis type, e.g. use-case led, account led, intent driven"`
	Industry            string `json:"industry,omitempty" jsonschema:"Target industry"`
	ICPPersonas         string `json:"icp_personas,omitempty" jsonschema:"Ideal customer personas"`
	MessageAngle        string `json:"message_angle,omitempty" jsonschema:"Messaging angle"`
	Trigger             string `json:"trigger,omitempty" jsonschema:"Trigger event the hypothesis reacts to"`
	Product             string `json:"product,omitempty" jsonschema:"Product being pitched"`
	HypothesisUserStory string `json:"hypothesis_user_story,omitempty" jsonschema:"User story behind the hypothesis"`
}

func (h *CampaignHandlers) CreateCampaign(ctx context.Context, _ *mcp.CallToolRequest, input CreateCampaignInput) (*mcp.CallToolResult, CampaignOutput, error) {
	campaign := &models.Campaign{
		Name:                input.Name,
		HypothesisType:      input.HypothesisType,
		Industry:            input.Industry,
		ICPPersonas:         input.ICPPersonas,
		MessageAngle:        input.MessageAngle,
		Trigger:             input.Trigger,
		Product:             input.Product,
		HypothesisUserStory: input.HypothesisUserStory,
	}

	if err := db.CreateCampaign(ctx, h.db, campaign); err != nil {
		return nil, CampaignOutput{}, fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil, campaignToOutput(campaign), nil
}

type ListCampaignsInput struct{}

type ListCampaignsOutput struct {
	Campaigns []CampaignOutput `json:"campaigns"`
}

func (h *CampaignHandlers) ListCampaigns(ctx context.Context, _ *mcp.CallToolRequest, _ ListCampaignsInput) (*mcp.CallToolResult, ListCampaignsOutput, error) {
	campaigns, err := db.ListCampaigns(ctx, h.db)
	if err != nil {
		return nil, ListCampaignsOutput{}, fmt.Errorf("failed to list campaigns: %w", err)
	}
	result := make([]CampaignOutput, len(campaigns))
	for i := range campaigns {
		result[i] = campaignToOutput(&campaigns[i])
	}
	return nil, ListCampaignsOutput{Campaigns: result}, nil
}

// CampaignRef names a campaign by id or by exact name.
type CampaignRef struct {
	CampaignID int64  `json:"campaign_id,omitempty" jsonschema:"Campaign ID"`
	Campaign   string `json:"campaign,omitempty" jsonschema:"Campaign name (used when campaign_id is not given)"`
}

func (r CampaignRef) resolve(ctx context.Context, q db.Querier) (*models.Campaign, error) {
	switch {
	case r.CampaignID != 0:
		return db.GetCampaign(ctx, q, r.CampaignID)
	case r.Campaign != "":
		return db.GetCampaignByName(ctx, q, r.Campaign)
	default:
		return nil, fmt.Errorf("%w: campaign_id or campaign is required", models.ErrValidation)
	}
}

type GetCampaignOutput struct {
	Campaign  CampaignOutput   `json:"campaign"`
	Cadence   *CadenceOutput   `json:"cadence,omitempty"`
	Documents []DocumentOutput `json:"documents"`
}

func (h *CampaignHandlers) GetCampaign(ctx context.Context, _ *mcp.CallToolRequest, input CampaignRef) (*mcp.CallToolResult, GetCampaignOutput, error) {
	campaign, err := input.resolve(ctx, h.db)
	if err != nil {
		return nil, GetCampaignOutput{}, err
	}

	out := GetCampaignOutput{Campaign: campaignToOutput(campaign), Documents: []DocumentOutput{}}

	if cadence, err := db.GetCadenceForCampaign(ctx, h.db, campaign.ID); err == nil {
		c := cadenceToOutput(cadence)
		out.Cadence = &c
	}

	docs, err := db.ListDocuments(ctx, h.db, campaign.ID)
	if err != nil {
		return nil, GetCampaignOutput{}, fmt.Errorf("failed to list documents: %w", err)
	}
	for i := range docs {
		out.Documents = append(out.Documents, documentToOutput(&docs[i]))
	}

	return nil, out, nil
}

func (h *CampaignHandlers) CampaignMetrics(ctx context.Context, _ *mcp.CallToolRequest, input CampaignRef) (*mcp.CallToolResult, metrics.CampaignMetrics, error) {
	campaign, err := input.resolve(ctx, h.db)
	if err != nil {
		return nil, metrics.CampaignMetrics{}, err
	}

	m, err := metrics.ComputeCampaignMetrics(ctx, h.db, campaign.ID)
	if err != nil {
		return nil, metrics.CampaignMetrics{}, fmt.Errorf("failed to compute metrics: %w", err)
	}
	return nil, *m, nil
}
