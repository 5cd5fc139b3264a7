// ABOUTME: GraphViz generation for campaigns
// ABOUTME: Renders a campaign's cadence, leads, accounts, and opportunities as DOT
package viz

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
)

type GraphGenerator struct {
	db *sql.DB
}

func NewGraphGenerator(database *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: database}
}

var statusColors = map[models.ContactStatus]string{
	models.StatusNew:       "white",
	models.StatusActive:    "lightgreen",
	models.StatusPaused:    "lightgrey",
	models.StatusConverted: "gold",
}

// GenerateCampaignGraph draws one campaign and everything hanging off it.
func (g *GraphGenerator) GenerateCampaignGraph(ctx context.Context, campaignID int64) (string, error) {
	campaign, err := db.GetCampaign(ctx, g.db, campaignID)
	if err != nil {
		return "", err
	}

	return g.render(ctx, fmt.Sprintf("Campaign: %s", campaign.Name), func(b *builder) error {
		return b.addCampaign(ctx, campaign)
	})
}

// render owns the graphviz lifecycle; fill adds the nodes and edges.
func (g *GraphGenerator) render(ctx context.Context, label string, fill func(*builder) error) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel(label)
	graph.SetRankDir(cgraph.LRRank)

	b := &builder{db: g.db, graph: graph, accounts: make(map[int64]*cgraph.Node)}
	if err := fill(b); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

// builder accumulates nodes; accounts are shared across campaigns in one graph.
type builder struct {
	db       *sql.DB
	graph    *cgraph.Graph
	accounts map[int64]*cgraph.Node
}

func (b *builder) node(name, label, shape, fill string) (*cgraph.Node, error) {
	n, err := b.graph.CreateNodeByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create node %s: %w", name, err)
	}
	n.SetLabel(label)
	n.SetShape(cgraph.Shape(shape))
	n.SetStyle(cgraph.FilledNodeStyle)
	n.SetFillColor(fill)
	return n, nil
}

func (b *builder) edge(name string, from, to *cgraph.Node, label string) (*cgraph.Edge, error) {
	e, err := b.graph.CreateEdgeByName(name, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to create edge: %w", err)
	}
	if label != "" {
		e.SetLabel(label)
	}
	return e, nil
}

func (b *builder) addCampaign(ctx context.Context, campaign *models.Campaign) error {
	campaignNode, err := b.node(fmt.Sprintf("campaign_%d", campaign.ID), campaign.Name+"\n(Campaign)", "box", "lightblue")
	if err != nil {
		return err
	}

	cadence, err := db.GetCadenceForCampaign(ctx, b.db, campaign.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	cadenceNode, err := b.node(fmt.Sprintf("cadence_%d", cadence.ID), cadence.Name+"\n(Cadence)", "hexagon", "lightcyan")
	if err != nil {
		return err
	}
	if _, err := b.edge(fmt.Sprintf("runs_%d", cadence.ID), campaignNode, cadenceNode, "cadence"); err != nil {
		return err
	}

	contacts, err := db.ListContacts(ctx, b.db, cadence.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch contacts: %w", err)
	}

	contactNodes := make(map[int64]*cgraph.Node, len(contacts))
	for _, c := range contacts {
		label := c.Email
		if name := c.FullName(); name != "" {
			label = name + "\n" + c.Email
		}
		n, err := b.node(fmt.Sprintf("contact_%d", c.ID), label, "ellipse", statusColors[c.Status])
		if err != nil {
			return err
		}
		contactNodes[c.ID] = n

		if _, err := b.edge(fmt.Sprintf("enrolled_%d", c.ID), cadenceNode, n, ""); err != nil {
			return err
		}

		if c.AccountID != nil {
			accountNode, err := b.account(ctx, *c.AccountID)
			if err != nil {
				return err
			}
			e, err := b.edge(fmt.Sprintf("works_at_%d", c.ID), n, accountNode, "works at")
			if err != nil {
				return err
			}
			e.SetStyle(cgraph.DashedEdgeStyle)
		}
	}

	opps, err := db.ListCadenceOpportunities(ctx, b.db, cadence.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch opportunities: %w", err)
	}
	for _, o := range opps {
		n, err := b.node(fmt.Sprintf("opportunity_%d", o.ID), fmt.Sprintf("%s\n$%.0f", o.Stage, o.Amount), "diamond", "lightyellow")
		if err != nil {
			return err
		}
		if from, ok := contactNodes[o.ContactID]; ok {
			if _, err := b.edge(fmt.Sprintf("converted_%d", o.ID), from, n, "opportunity"); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *builder) account(ctx context.Context, id int64) (*cgraph.Node, error) {
	if n, ok := b.accounts[id]; ok {
		return n, nil
	}
	account, err := db.GetAccount(ctx, b.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	n, err := b.node(fmt.Sprintf("account_%d", id), account.Name+"\n(Account)", "box", "lightgreen")
	if err != nil {
		return nil, err
	}
	b.accounts[id] = n
	return n, nil
}
