// ABOUTME: Lead MCP tool handlers
// ABOUTME: Implements import_leads, list_contacts, log_activity, convert_contact, and list_opportunities tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/importer"
	"github.com/harperreed/outlab/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type LeadHandlers struct {
	db       *sql.DB
	importer *importer.Importer
}

func NewLeadHandlers(database *sql.DB, im *importer.Importer) *LeadHandlers {
	return &LeadHandlers{db: database, importer: im}
}

type ImportLeadsInput struct {
	CadenceID             int64          `json:"cadence_id" jsonschema:"Cadence to import into (required)"`
	FilePath              string         `json:"file_path,omitempty" jsonschema:"Path to a .csv or .xlsx lead file"`
	Rows                  []importer.Row `json:"rows,omitempty" jsonschema:"Lead rows, used when file_path is empty"`
	SkipCadenceActivities bool           `json:"skip_cadence_activities,omitempty" jsonschema:"Don't stamp the cadence's activity templates onto imported leads"`
}

func (h *LeadHandlers) ImportLeads(ctx context.Context, _ *mcp.CallToolRequest, input ImportLeadsInput) (*mcp.CallToolResult, importer.Result, error) {
	rows := input.Rows
	if input.FilePath != "" {
		var err error
		if rows, err = importer.ReadFile(input.FilePath); err != nil {
			return nil, importer.Result{}, err
		}
	}

	result, err := h.importer.Ingest(ctx, input.CadenceID, rows, importer.Options{
		SkipCadenceActivities: input.SkipCadenceActivities,
	})
	if err != nil {
		return nil, importer.Result{}, fmt.Errorf("import failed: %w", err)
	}
	return nil, *result, nil
}

type ListContactsInput struct {
	CadenceID int64 `json:"cadence_id" jsonschema:"Cadence ID (required)"`
}

type ListContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *LeadHandlers) ListContacts(ctx context.Context, _ *mcp.CallToolRequest, input ListContactsInput) (*mcp.CallToolResult, ListContactsOutput, error) {
	if _, err := db.GetCadence(ctx, h.db, input.CadenceID); err != nil {
		return nil, ListContactsOutput{}, err
	}

	contacts, err := db.ListContacts(ctx, h.db, input.CadenceID)
	if err != nil {
		return nil, ListContactsOutput{}, fmt.Errorf("failed to list contacts: %w", err)
	}
	result := make([]ContactOutput, len(contacts))
	for i := range contacts {
		result[i] = contactToOutput(&contacts[i])
	}
	return nil, ListContactsOutput{Contacts: result}, nil
}

type LogActivityInput struct {
	ContactID int64  `json:"contact_id" jsonschema:"Contact ID (required)"`
	Type      string `json:"type" jsonschema:"Activity type: email, call, linkedin, or task"`
	Content   string `json:"content,omitempty" jsonschema:"What happened"`
}

func (h *LeadHandlers) LogActivity(ctx context.Context, _ *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	typ, err := models.ParseActivityType(input.Type)
	if err != nil {
		return nil, ActivityOutput{}, err
	}

	activity := &models.Activity{ContactID: input.ContactID, Type: typ, Content: input.Content}
	if err := db.LogActivity(ctx, h.db, activity); err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}
	return nil, activityToOutput(activity), nil
}

type ConvertContactInput struct {
	ContactID int64   `json:"contact_id" jsonschema:"Contact ID (required)"`
	Stage     string  `json:"stage,omitempty" jsonschema:"Opportunity stage: New, Qualified, Proposal, Won, or Lost (default New)"`
	Amount    float64 `json:"amount,omitempty" jsonschema:"Opportunity amount, zero or more"`
}

func (h *LeadHandlers) ConvertContact(ctx context.Context, _ *mcp.CallToolRequest, input ConvertContactInput) (*mcp.CallToolResult, OpportunityOutput, error) {
	stage, err := models.ParseOpportunityStage(input.Stage)
	if err != nil {
		return nil, OpportunityOutput{}, err
	}

	opp, err := db.ConvertContact(ctx, h.db, input.ContactID, stage, input.Amount)
	if err != nil {
		return nil, OpportunityOutput{}, fmt.Errorf("failed to convert contact: %w", err)
	}
	return nil, opportunityToOutput(opp), nil
}

type ListOpportunitiesInput struct {
	ContactIDs []int64 `json:"contact_ids,omitempty" jsonschema:"Only opportunities for these contacts; omit for the whole pipeline"`
}

type ListOpportunitiesOutput struct {
	Opportunities []OpportunityOutput `json:"opportunities"`
}

func (h *LeadHandlers) ListOpportunities(ctx context.Context, _ *mcp.CallToolRequest, input ListOpportunitiesInput) (*mcp.CallToolResult, ListOpportunitiesOutput, error) {
	out := ListOpportunitiesOutput{Opportunities: []OpportunityOutput{}}

	if len(input.ContactIDs) > 0 {
		opps, err := db.ListOpportunities(ctx, h.db, input.ContactIDs)
		if err != nil {
			return nil, ListOpportunitiesOutput{}, fmt.Errorf("failed to list opportunities: %w", err)
		}
		for i := range opps {
			out.Opportunities = append(out.Opportunities, opportunityToOutput(&opps[i]))
		}
		return nil, out, nil
	}

	entries, err := db.ListPipeline(ctx, h.db)
	if err != nil {
		return nil, ListOpportunitiesOutput{}, fmt.Errorf("failed to list opportunities: %w", err)
	}
	for i := range entries {
		out.Opportunities = append(out.Opportunities, pipelineToOutput(&entries[i]))
	}
	return nil, out, nil
}
