// ABOUTME: Opportunity database operations
// ABOUTME: Converts contacts into opportunities and lists the resulting pipeline
package db

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/harperreed/outlab/models"
)

// ConvertContact creates an opportunity for the contact and marks the contact
// converted, atomically. Converting an already-converted contact is allowed and
// adds another opportunity.
func ConvertContact(ctx context.Context, database *sql.DB, contactID int64, stage models.OpportunityStage, amount float64) (*models.Opportunity, error) {
	var opp *models.Opportunity
	err := WithTx(ctx, database, func(tx *sql.Tx) error {
		var err error
		opp, err = convertContact(ctx, tx, contactID, stage, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return opp, nil
}

func convertContact(ctx context.Context, q Querier, contactID int64, stage models.OpportunityStage, amount float64) (*models.Opportunity, error) {
	if stage == "" {
		stage = models.StageNew
	}
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: unknown opportunity stage %q", models.ErrValidation, stage)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return nil, fmt.Errorf("%w: opportunity amount must be a non-negative number, got %v", models.ErrValidation, amount)
	}

	if _, err := GetContact(ctx, q, contactID); err != nil {
		return nil, err
	}

	opp := &models.Opportunity{
		ContactID: contactID,
		Stage:     stage,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO opportunities (contact_id, stage, amount, created_at)
		VALUES (?, ?, ?, ?)
	`, opp.ContactID, string(opp.Stage), opp.Amount, opp.CreatedAt)
	if err != nil {
		return nil, translateErr(err, fmt.Sprintf("opportunity for contact %d", contactID))
	}
	if opp.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}

	if err := SetContactStatus(ctx, q, contactID, models.StatusConverted); err != nil {
		return nil, fmt.Errorf("failed to mark contact converted: %w", err)
	}

	return opp, nil
}

// ListOpportunities returns opportunities belonging to any of the given contacts.
func ListOpportunities(ctx context.Context, q Querier, contactIDs []int64) ([]models.Opportunity, error) {
	if len(contactIDs) == 0 {
		return nil, nil
	}
	placeholders, args := inClause(contactIDs)

	rows, err := q.QueryContext(ctx, `
		SELECT id, contact_id, stage, amount, created_at
		FROM opportunities
		WHERE contact_id IN (`+placeholders+`)
		ORDER BY created_at DESC, id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opps = append(opps, *o)
	}

	return opps, rows.Err()
}

// ListCadenceOpportunities returns opportunities for every contact enrolled in
// the cadence, newest first.
func ListCadenceOpportunities(ctx context.Context, q Querier, cadenceID int64) ([]models.Opportunity, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT o.id, o.contact_id, o.stage, o.amount, o.created_at
		FROM opportunities o
		JOIN contacts c ON c.id = o.contact_id
		WHERE c.cadence_id = ?
		ORDER BY o.created_at DESC, o.id DESC
	`, cadenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opps = append(opps, *o)
	}

	return opps, rows.Err()
}

// ListPipeline returns every opportunity with the contact, account, cadence
// and campaign names it hangs off, newest first.
func ListPipeline(ctx context.Context, q Querier) ([]models.PipelineEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT o.id, o.contact_id, o.stage, o.amount, o.created_at,
			c.first_name, c.last_name, c.email, a.name, cd.name, cp.name
		FROM opportunities o
		JOIN contacts c ON c.id = o.contact_id
		LEFT JOIN accounts a ON a.id = c.account_id
		LEFT JOIN cadences cd ON cd.id = c.cadence_id
		LEFT JOIN campaigns cp ON cp.id = cd.campaign_id
		ORDER BY o.created_at DESC, o.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.PipelineEntry
	for rows.Next() {
		var e models.PipelineEntry
		var stage string
		var firstName, lastName, account, cadence, campaign sql.NullString

		if err := rows.Scan(
			&e.ID, &e.ContactID, &stage, &e.Amount, &e.CreatedAt,
			&firstName, &lastName, &e.ContactEmail, &account, &cadence, &campaign,
		); err != nil {
			return nil, err
		}
		if e.Stage, err = models.ParseOpportunityStage(stage); err != nil {
			return nil, err
		}

		contact := models.Contact{FirstName: firstName.String, LastName: lastName.String}
		e.ContactName = contact.FullName()
		e.AccountName = account.String
		e.CadenceName = cadence.String
		e.CampaignName = campaign.String
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func scanOpportunity(row rowScanner) (*models.Opportunity, error) {
	var o models.Opportunity
	var stage string
	if err := row.Scan(&o.ID, &o.ContactID, &stage, &o.Amount, &o.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if o.Stage, err = models.ParseOpportunityStage(stage); err != nil {
		return nil, err
	}
	return &o, nil
}
