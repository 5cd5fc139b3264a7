// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph tool for agents
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/outlab/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	db *sql.DB
}

func NewVizHandlers(database *sql.DB) *VizHandlers {
	return &VizHandlers{db: database}
}

type GenerateGraphInput struct {
	CampaignID int64 `json:"campaign_id,omitempty" jsonschema:"Campaign to draw; omit to draw every campaign"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(ctx context.Context, _ *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	generator := viz.NewGraphGenerator(h.db)

	graphType := "complete"
	var dot string
	var err error
	if input.CampaignID != 0 {
		graphType = "campaign"
		dot, err = generator.GenerateCampaignGraph(ctx, input.CampaignID)
	} else {
		dot, err = generator.GenerateCompleteGraph(ctx)
	}
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return nil, GenerateGraphOutput{
		GraphType: graphType,
		DOTSource: dot,
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}
