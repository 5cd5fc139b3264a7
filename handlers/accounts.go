// ABOUTME: Account MCP tool handlers
// ABOUTME: Implements add_account and add_account_signal tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type AccountHandlers struct {
	db *sql.DB
}

func NewAccountHandlers(database *sql.DB) *AccountHandlers {
	return &AccountHandlers{db: database}
}

type AddAccountInput struct {
	Name     string `json:"name" jsonschema:"Account (company) name, unique (required)"`
	Industry string `json:"industry,omitempty" jsonschema:"Industry"`
	Website  string `json:"website,omitempty" jsonschema:"Website URL"`
}

func (h *AccountHandlers) AddAccount(ctx context.Context, _ *mcp.CallToolRequest, input AddAccountInput) (*mcp.CallToolResult, AccountOutput, error) {
	account := &models.Account{Name: input.Name, Industry: input.Industry, Website: input.Website}
	if err := db.CreateAccount(ctx, h.db, account); err != nil {
		return nil, AccountOutput{}, fmt.Errorf("failed to add account: %w", err)
	}
	return nil, accountToOutput(account), nil
}

type AddAccountSignalInput struct {
	AccountID  int64  `json:"account_id,omitempty" jsonschema:"Account ID"`
	Account    string `json:"account,omitempty" jsonschema:"Account name (used when account_id is not given)"`
	SignalType string `json:"signal_type" jsonschema:"Signal type, e.g. Funding, Hiring, Leadership change (required)"`
	Details    string `json:"details,omitempty" jsonschema:"Signal details"`
}

func (h *AccountHandlers) AddAccountSignal(ctx context.Context, _ *mcp.CallToolRequest, input AddAccountSignalInput) (*mcp.CallToolResult, SignalOutput, error) {
	accountID := input.AccountID
	if accountID == 0 {
		if input.Account == "" {
			return nil, SignalOutput{}, fmt.Errorf("%w: account_id or account is required", models.ErrValidation)
		}
		account, err := db.FindAccountByName(ctx, h.db, input.Account)
		if err != nil {
			return nil, SignalOutput{}, err
		}
		accountID = account.ID
	}

	signal := &models.AccountSignal{AccountID: accountID, SignalType: input.SignalType, Details: input.Details}
	if err := db.AddAccountSignal(ctx, h.db, signal); err != nil {
		return nil, SignalOutput{}, fmt.Errorf("failed to add signal: %w", err)
	}
	return nil, signalToOutput(signal), nil
}
