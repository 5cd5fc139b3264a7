// ABOUTME: MCP server assembly
// ABOUTME: Registers every outlab tool, prompt, and resource on a go-sdk server
package handlers

import (
	"database/sql"

	"github.com/harperreed/outlab/importer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the outlab tools.
func NewServer(database *sql.DB, im *importer.Importer, version string) *mcp.Server {
	campaigns := NewCampaignHandlers(database)
	cadences := NewCadenceHandlers(database)
	leads := NewLeadHandlers(database, im)
	accounts := NewAccountHandlers(database)
	query := NewQueryHandlers(database)
	graphs := NewVizHandlers(database)
	prompts := NewPromptHandlers(database)
	resources := NewResourceHandlers(database)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "outlab",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_campaign",
		Description: "Create an outbound campaign hypothesis",
	}, campaigns.CreateCampaign)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_campaigns",
		Description: "List campaigns, most recent first",
	}, campaigns.ListCampaigns)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_campaign",
		Description: "Get a campaign by id or name with its cadence and documents",
	}, campaigns.GetCampaign)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "campaign_metrics",
		Description: "Compute campaign metrics and the next best action",
	}, campaigns.CampaignMetrics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_cadence",
		Description: "Create the single cadence for a campaign",
	}, cadences.CreateCadence)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_cadence_activity",
		Description: "Add an activity template to a cadence and stamp it onto every contact already in it",
	}, cadences.AddCadenceActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_leads",
		Description: "Import leads into a cadence from rows or a CSV/XLSX file; the whole batch commits or none of it does",
	}, leads.ImportLeads)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List the contacts in a cadence",
	}, leads.ListContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log a touchpoint activity against a contact",
	}, leads.LogActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_contact",
		Description: "Convert a contact into an opportunity and mark it converted",
	}, leads.ConvertContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_opportunities",
		Description: "List opportunities with their contact, account, cadence and campaign",
	}, leads.ListOpportunities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_account",
		Description: "Add a target account",
	}, accounts.AddAccount)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_account_signal",
		Description: "Record a buying signal on an account",
	}, accounts.AddAccountSignal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query",
		Description: "Search campaigns, accounts, contacts, or opportunities by substring",
	}, query.Query)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Generate a GraphViz DOT graph of one campaign or of every campaign",
	}, graphs.GenerateGraph)

	for _, p := range prompts.Prompts() {
		server.AddPrompt(p, prompts.GetPrompt)
	}

	for _, r := range resources.Resources() {
		server.AddResource(r, resources.ReadResource)
	}
	server.AddResourceTemplate(resources.ResourceTemplate(), resources.ReadResource)

	return server
}
