// ABOUTME: Cadence and cadence activity template database operations
// ABOUTME: Adding a template fans out one activity to every contact already in the cadence
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outlab/models"
)

// CreateCadence attaches the single cadence a campaign may own. A second
// cadence for the same campaign fails with ErrConflict.
func CreateCadence(ctx context.Context, q Querier, cadence *models.Cadence) error {
	cadence.Name = strings.TrimSpace(cadence.Name)
	if cadence.Name == "" {
		return fmt.Errorf("%w: cadence name is required", models.ErrValidation)
	}
	cadence.Description = strings.TrimSpace(cadence.Description)
	cadence.CreatedAt = time.Now().UTC()

	res, err := q.ExecContext(ctx, `
		INSERT INTO cadences (campaign_id, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`, cadence.CampaignID, cadence.Name, nullIfEmpty(cadence.Description), cadence.CreatedAt)
	if err != nil {
		return translateErr(err, fmt.Sprintf("cadence for campaign %d", cadence.CampaignID))
	}

	cadence.ID, err = res.LastInsertId()
	return err
}

func GetCadence(ctx context.Context, q Querier, id int64) (*models.Cadence, error) {
	cadence, err := scanCadence(q.QueryRowContext(ctx, `
		SELECT id, campaign_id, name, description, created_at
		FROM cadences WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, notFound("cadence", id)
	}
	return cadence, err
}

// GetCadenceForCampaign returns ErrNotFound both when the campaign is missing
// and when it has no cadence yet.
func GetCadenceForCampaign(ctx context.Context, q Querier, campaignID int64) (*models.Cadence, error) {
	cadence, err := scanCadence(q.QueryRowContext(ctx, `
		SELECT id, campaign_id, name, description, created_at
		FROM cadences WHERE campaign_id = ?
	`, campaignID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no cadence for campaign %d", models.ErrNotFound, campaignID)
	}
	return cadence, err
}

func scanCadence(row rowScanner) (*models.Cadence, error) {
	var c models.Cadence
	var description sql.NullString
	if err := row.Scan(&c.ID, &c.CampaignID, &c.Name, &description, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Description = description.String
	return &c, nil
}

// AddCadenceActivity stores the template and, in the same transaction, creates
// one matching Activity for each contact currently in the cadence. It returns
// the number of activities created. Contacts added later pick the template up
// through ingestion, not from here.
func AddCadenceActivity(ctx context.Context, database *sql.DB, template *models.CadenceActivity) (int, error) {
	var applied int
	err := WithTx(ctx, database, func(tx *sql.Tx) error {
		var err error
		applied, err = addCadenceActivity(ctx, tx, template)
		return err
	})
	return applied, err
}

func addCadenceActivity(ctx context.Context, q Querier, template *models.CadenceActivity) (int, error) {
	if !template.Type.Valid() {
		return 0, fmt.Errorf("%w: unknown activity type %q", models.ErrValidation, template.Type)
	}
	template.Content = strings.TrimSpace(template.Content)
	if template.Content == "" {
		return 0, fmt.Errorf("%w: cadence activity content is required", models.ErrValidation)
	}

	if _, err := GetCadence(ctx, q, template.CadenceID); err != nil {
		return 0, err
	}

	template.CreatedAt = time.Now().UTC()
	res, err := q.ExecContext(ctx, `
		INSERT INTO cadence_activities (cadence_id, type, content, created_at)
		VALUES (?, ?, ?, ?)
	`, template.CadenceID, string(template.Type), template.Content, template.CreatedAt)
	if err != nil {
		return 0, translateErr(err, "cadence activity")
	}
	if template.ID, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	res, err = q.ExecContext(ctx, `
		INSERT INTO activities (contact_id, type, content, created_at)
		SELECT id, ?, ?, ? FROM contacts WHERE cadence_id = ?
	`, string(template.Type), template.Content, template.CreatedAt, template.CadenceID)
	if err != nil {
		return 0, fmt.Errorf("failed to apply cadence activity to contacts: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func ListCadenceActivities(ctx context.Context, q Querier, cadenceID int64) ([]models.CadenceActivity, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, cadence_id, type, content, created_at
		FROM cadence_activities
		WHERE cadence_id = ?
		ORDER BY created_at ASC, id ASC
	`, cadenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.CadenceActivity
	for rows.Next() {
		var a models.CadenceActivity
		var typ string
		var content sql.NullString
		if err := rows.Scan(&a.ID, &a.CadenceID, &typ, &content, &a.CreatedAt); err != nil {
			return nil, err
		}
		if a.Type, err = models.ParseActivityType(typ); err != nil {
			return nil, err
		}
		a.Content = content.String
		templates = append(templates, a)
	}

	return templates, rows.Err()
}

// CadenceEngagement holds the per-cadence totals the metrics engine reads.
type CadenceEngagement struct {
	Activities    int
	EngagedLeads  int
	Signals       int
	Opportunities int
}

// CountCadenceEngagement totals activities, engaged leads, account signals and
// opportunities for the contacts enrolled in a cadence. Signals are counted
// once per account even when several contacts share it.
func CountCadenceEngagement(ctx context.Context, q Querier, cadenceID int64) (*CadenceEngagement, error) {
	var e CadenceEngagement
	err := q.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM activities a
				JOIN contacts c ON c.id = a.contact_id
				WHERE c.cadence_id = ?),
			(SELECT COUNT(DISTINCT a.contact_id) FROM activities a
				JOIN contacts c ON c.id = a.contact_id
				WHERE c.cadence_id = ?),
			(SELECT COUNT(*) FROM account_signals s
				WHERE s.account_id IN (
					SELECT account_id FROM contacts
					WHERE cadence_id = ? AND account_id IS NOT NULL
				)),
			(SELECT COUNT(*) FROM opportunities o
				JOIN contacts c ON c.id = o.contact_id
				WHERE c.cadence_id = ?)
	`, cadenceID, cadenceID, cadenceID, cadenceID).Scan(&e.Activities, &e.EngagedLeads, &e.Signals, &e.Opportunities)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
