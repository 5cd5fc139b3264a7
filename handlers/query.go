// ABOUTME: Universal query tool handler
// ABOUTME: Implements substring search across campaigns, accounts, contacts, and opportunities
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/outlab/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type QueryHandlers struct {
	db *sql.DB
}

func NewQueryHandlers(database *sql.DB) *QueryHandlers {
	return &QueryHandlers{db: database}
}

type QueryInput struct {
	EntityType string `json:"entity_type" jsonschema:"Type of entity to query (campaign, account, contact, opportunity)"`
	Query      string `json:"query,omitempty" jsonschema:"Case-insensitive substring matched against names and emails"`
	CadenceID  int64  `json:"cadence_id,omitempty" jsonschema:"Cadence to search (required for contact)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum results to return (default 10)"`
}

type QueryOutput struct {
	EntityType string `json:"entity_type"`
	Results    []any  `json:"results"`
	Count      int    `json:"count"`
}

func (h *QueryHandlers) Query(ctx context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}
	needle := strings.ToLower(strings.TrimSpace(input.Query))

	var results []any
	switch input.EntityType {
	case "campaign":
		campaigns, err := db.ListCampaigns(ctx, h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to query campaigns: %w", err)
		}
		for i, c := range campaigns {
			if matches(needle, c.Name, c.Industry, c.Product) {
				results = append(results, campaignToOutput(&campaigns[i]))
			}
		}

	case "account":
		accounts, err := db.ListAccounts(ctx, h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to query accounts: %w", err)
		}
		for i, a := range accounts {
			if matches(needle, a.Name, a.Industry, a.Website) {
				results = append(results, accountToOutput(&accounts[i]))
			}
		}

	case "contact":
		if input.CadenceID == 0 {
			return nil, QueryOutput{}, fmt.Errorf("cadence_id is required for contact queries")
		}
		contacts, err := db.ListContacts(ctx, h.db, input.CadenceID)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to query contacts: %w", err)
		}
		for i := range contacts {
			c := &contacts[i]
			if matches(needle, c.FullName(), c.Email, c.Title) {
				results = append(results, contactToOutput(c))
			}
		}

	case "opportunity":
		entries, err := db.ListPipeline(ctx, h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to query opportunities: %w", err)
		}
		for i, e := range entries {
			if matches(needle, e.ContactName, e.ContactEmail, e.AccountName, e.CampaignName) {
				results = append(results, pipelineToOutput(&entries[i]))
			}
		}

	default:
		return nil, QueryOutput{}, fmt.Errorf("invalid entity_type: %s (valid: campaign, account, contact, opportunity)", input.EntityType)
	}

	if len(results) > input.Limit {
		results = results[:input.Limit]
	}
	if results == nil {
		results = []any{}
	}

	return nil, QueryOutput{EntityType: input.EntityType, Results: results, Count: len(results)}, nil
}

func matches(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
