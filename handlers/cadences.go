// ABOUTME: Cadence MCP tool handlers
// ABOUTME: Implements create_cadence and add_cadence_activity tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CadenceHandlers struct {
	db *sql.DB
}

func NewCadenceHandlers(database *sql.DB) *CadenceHandlers {
	return &CadenceHandlers{db: database}
}

type CreateCadenceInput struct {
	CampaignRef
	Name        string `json:"name" jsonschema:"Cadence name (required)"`
	Description string `json:"description,omitempty" jsonschema:"What the cadence does"`
}

func (h *CadenceHandlers) CreateCadence(ctx context.Context, _ *mcp.CallToolRequest, input CreateCadenceInput) (*mcp.CallToolResult, CadenceOutput, error) {
	campaign, err := input.resolve(ctx, h.db)
	if err != nil {
		return nil, CadenceOutput{}, err
	}

	cadence := &models.Cadence{CampaignID: campaign.ID, Name: input.Name, Description: input.Description}
	if err := db.CreateCadence(ctx, h.db, cadence); err != nil {
		return nil, CadenceOutput{}, fmt.Errorf("failed to create cadence: %w", err)
	}
	return nil, cadenceToOutput(cadence), nil
}

type AddCadenceActivityInput struct {
	CadenceID int64  `json:"cadence_id" jsonschema:"Cadence ID (required)"`
	Type      string `json:"type" jsonschema:"Activity type: email, call, linkedin, or task"`
	Content   string `json:"content" jsonschema:"Template content copied onto each contact's activity"`
}

type AddCadenceActivityOutput struct {
	Template          ActivityOutput `json:"template"`
	ActivitiesCreated int            `json:"activities_created"`
}

func (h *CadenceHandlers) AddCadenceActivity(ctx context.Context, _ *mcp.CallToolRequest, input AddCadenceActivityInput) (*mcp.CallToolResult, AddCadenceActivityOutput, error) {
	typ, err := models.ParseActivityType(input.Type)
	if err != nil {
		return nil, AddCadenceActivityOutput{}, err
	}

	template := &models.CadenceActivity{CadenceID: input.CadenceID, Type: typ, Content: input.Content}
	applied, err := db.AddCadenceActivity(ctx, h.db, template)
	if err != nil {
		return nil, AddCadenceActivityOutput{}, fmt.Errorf("failed to add cadence activity: %w", err)
	}

	return nil, AddCadenceActivityOutput{Template: templateToOutput(template), ActivitiesCreated: applied}, nil
}
