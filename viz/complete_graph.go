// ABOUTME: Complete graph generation combining all campaigns
// ABOUTME: Accounts shared by several campaigns appear once and link to each
package viz

import (
	"context"
	"fmt"

	"github.com/harperreed/outlab/db"
)

// GenerateCompleteGraph draws every campaign in one graph.
func (g *GraphGenerator) GenerateCompleteGraph(ctx context.Context) (string, error) {
	campaigns, err := db.ListCampaigns(ctx, g.db)
	if err != nil {
		return "", fmt.Errorf("failed to fetch campaigns: %w", err)
	}

	return g.render(ctx, "All Campaigns", func(b *builder) error {
		for i := range campaigns {
			if err := b.addCampaign(ctx, &campaigns[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
