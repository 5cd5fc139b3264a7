// ABOUTME: MCP resource handlers for exposing outreach data
// ABOUTME: Provides read-only JSON views of campaigns, accounts, the pipeline, and the overview
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/metrics"
	"github.com/harperreed/outlab/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "outlab://"

type ResourceHandlers struct {
	db *sql.DB
}

func NewResourceHandlers(database *sql.DB) *ResourceHandlers {
	return &ResourceHandlers{db: database}
}

// Resources lists the fixed resources; campaign detail is served through ResourceTemplate.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{URI: resourceScheme + "campaigns", Name: "campaigns", Description: "All campaigns", MIMEType: "application/json"},
		{URI: resourceScheme + "accounts", Name: "accounts", Description: "All accounts", MIMEType: "application/json"},
		{URI: resourceScheme + "pipeline", Name: "pipeline", Description: "Opportunities with their ownership chain", MIMEType: "application/json"},
		{URI: resourceScheme + "overview", Name: "overview", Description: "Campaign overview table (Campaign, Object, Field, Value)", MIMEType: "application/json"},
	}
}

func (h *ResourceHandlers) ResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		URITemplate: resourceScheme + "campaigns/{id}",
		Name:        "campaign",
		Description: "One campaign with its cadence and metrics",
		MIMEType:    "application/json",
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")

	var v any
	var err error
	switch parts[0] {
	case "campaigns":
		if len(parts) == 1 {
			v, err = db.ListCampaigns(ctx, h.db)
		} else {
			v, err = h.readCampaign(ctx, parts[1])
		}
	case "accounts":
		v, err = db.ListAccounts(ctx, h.db)
	case "pipeline":
		v, err = db.ListPipeline(ctx, h.db)
	case "overview":
		v, err = metrics.Overview(ctx, h.db)
	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

type campaignResource struct {
	models.Campaign
	Cadence *models.Cadence          `json:"cadence,omitempty"`
	Metrics *metrics.CampaignMetrics `json:"metrics"`
}

func (h *ResourceHandlers) readCampaign(ctx context.Context, idStr string) (*campaignResource, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid campaign ID %q", models.ErrValidation, idStr)
	}

	campaign, err := db.GetCampaign(ctx, h.db, id)
	if err != nil {
		return nil, err
	}
	m, err := metrics.ComputeCampaignMetrics(ctx, h.db, id)
	if err != nil {
		return nil, err
	}

	out := &campaignResource{Campaign: *campaign, Metrics: m}
	if cadence, err := db.GetCadenceForCampaign(ctx, h.db, id); err == nil {
		out.Cadence = cadence
	}
	return out, nil
}
