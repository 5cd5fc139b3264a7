// ABOUTME: Campaign database operations
// ABOUTME: Handles campaign creation, lookups by id or name, recency listing, and cascading delete
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outlab/models"
)

const campaignColumns = `id, name, hypothesis_type, industry, icp_personas, message_angle, trigger_event, product, hypothesis_user_story, created_at`

func CreateCampaign(ctx context.Context, q Querier, campaign *models.Campaign) error {
	campaign.Name = strings.TrimSpace(campaign.Name)
	if campaign.Name == "" {
		return fmt.Errorf("%w: campaign name is required", models.ErrValidation)
	}
	campaign.CreatedAt = time.Now().UTC()

	res, err := q.ExecContext(ctx, `
		INSERT INTO campaigns (name, hypothesis_type, industry, icp_personas, message_angle, trigger_event, product, hypothesis_user_story, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, campaign.Name,
		nullIfEmpty(campaign.HypothesisType),
		nullIfEmpty(campaign.Industry),
		nullIfEmpty(campaign.ICPPersonas),
		nullIfEmpty(campaign.MessageAngle),
		nullIfEmpty(campaign.Trigger),
		nullIfEmpty(campaign.Product),
		nullIfEmpty(campaign.HypothesisUserStory),
		campaign.CreatedAt,
	)
	if err != nil {
		return translateErr(err, fmt.Sprintf("campaign %q", campaign.Name))
	}

	campaign.ID, err = res.LastInsertId()
	return err
}

func GetCampaign(ctx context.Context, q Querier, id int64) (*models.Campaign, error) {
	row := q.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, id)
	campaign, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, notFound("campaign", id)
	}
	return campaign, err
}

func GetCampaignByName(ctx context.Context, q Querier, name string) (*models.Campaign, error) {
	name = strings.TrimSpace(name)
	row := q.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE name = ?`, name)
	campaign, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, notFound("campaign", fmt.Sprintf("%q", name))
	}
	return campaign, err
}

// ListCampaigns returns every campaign, most recently created first. It always
// reads through to the database; there is no cached campaign list to invalidate.
func ListCampaigns(ctx context.Context, q Querier) ([]models.Campaign, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}

	return campaigns, rows.Err()
}

// DeleteCampaign removes the campaign. Foreign keys cascade the delete to its
// documents and cadence, and from there to contacts, activities, opportunities
// and cadence activities. Stored document files are left for the caller.
func DeleteCampaign(ctx context.Context, q Querier, id int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("campaign", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var c models.Campaign
	var hypothesisType, industry, personas, angle, trigger, product, story sql.NullString

	err := row.Scan(
		&c.ID,
		&c.Name,
		&hypothesisType,
		&industry,
		&personas,
		&angle,
		&trigger,
		&product,
		&story,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.HypothesisType = hypothesisType.String
	c.Industry = industry.String
	c.ICPPersonas = personas.String
	c.MessageAngle = angle.String
	c.Trigger = trigger.String
	c.Product = product.String
	c.HypothesisUserStory = story.String

	return &c, nil
}
