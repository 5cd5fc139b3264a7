// ABOUTME: Lead ingestion into a cadence with account resolution and contact upserts
// ABOUTME: A batch runs in one transaction so a failing row leaves the store untouched
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// By default every contact the batch touches, updated contacts included,
	// gets one activity per existing cadence template. SkipCadenceActivities
	// turns that off.
	SkipCadenceActivities bool
}

type Result struct {
	BatchID           string `json:"batch_id"`
	Processed         int    `json:"processed"`
	Created           int    `json:"created"`
	Updated           int    `json:"updated"`
	Skipped           int    `json:"skipped"`
	AccountsCreated   int    `json:"accounts_created"`
	ActivitiesCreated int    `json:"activities_created"`
}

type Importer struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func New(database *sql.DB, logger logrus.FieldLogger) *Importer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Importer{db: database, log: logger}
}

// Ingest upserts rows into the cadence. Rows with a blank email are skipped.
// The batch is all-or-nothing: any row error rolls back every row and the
// returned error names the failing line.
func (im *Importer) Ingest(ctx context.Context, cadenceID int64, rows []Row, opts Options) (*Result, error) {
	result := &Result{BatchID: uuid.New().String()}
	log := im.log.WithFields(logrus.Fields{
		"batch_id":   result.BatchID,
		"cadence_id": cadenceID,
		"rows":       len(rows),
	})

	err := db.WithTx(ctx, im.db, func(tx *sql.Tx) error {
		if _, err := db.GetCadence(ctx, tx, cadenceID); err != nil {
			return err
		}

		var templates []models.CadenceActivity
		if !opts.SkipCadenceActivities {
			var err error
			if templates, err = db.ListCadenceActivities(ctx, tx, cadenceID); err != nil {
				return fmt.Errorf("failed to load cadence activities: %w", err)
			}
		}

		for i, row := range rows {
			line := row.Line
			if line == 0 {
				line = i + 1
			}
			if err := im.ingestRow(ctx, tx, cadenceID, row, templates, result); err != nil {
				return fmt.Errorf("row %d (%s): %w", line, strings.TrimSpace(row.Email), err)
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("lead import rolled back")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"processed":  result.Processed,
		"created":    result.Created,
		"updated":    result.Updated,
		"skipped":    result.Skipped,
		"activities": result.ActivitiesCreated,
	}).Info("lead import committed")

	return result, nil
}

func (im *Importer) ingestRow(ctx context.Context, tx *sql.Tx, cadenceID int64, row Row, templates []models.CadenceActivity, result *Result) error {
	email := strings.TrimSpace(row.Email)
	if email == "" {
		result.Skipped++
		return nil
	}

	var accountID *int64
	if name := strings.TrimSpace(row.AccountName); name != "" {
		account, created, err := findOrCreateAccount(ctx, tx, name, row.AccountIndustry, row.AccountWebsite)
		if err != nil {
			return fmt.Errorf("failed to resolve account: %w", err)
		}
		if created {
			result.AccountsCreated++
		}
		accountID = &account.ID
	}

	existing, err := db.FindContactByEmail(ctx, tx, cadenceID, email)
	switch {
	case err == nil:
		mergeContact(existing, row, accountID)
		if err := db.UpdateContact(ctx, tx, existing); err != nil {
			return err
		}
		result.Updated++
	case errors.Is(err, models.ErrNotFound):
		existing = &models.Contact{
			CadenceID: cadenceID,
			AccountID: accountID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     email,
			Title:     row.Title,
			Status:    models.StatusNew,
		}
		if err := db.CreateContact(ctx, tx, existing); err != nil {
			return err
		}
		result.Created++
	default:
		return err
	}
	result.Processed++

	n, err := db.ApplyTemplates(ctx, tx, existing.ID, templates)
	result.ActivitiesCreated += n
	if err != nil {
		return fmt.Errorf("failed to apply cadence activities: %w", err)
	}

	return nil
}

// mergeContact overwrites only the fields the row actually carries, so a
// blank cell never erases stored data.
func mergeContact(contact *models.Contact, row Row, accountID *int64) {
	if v := strings.TrimSpace(row.FirstName); v != "" {
		contact.FirstName = v
	}
	if v := strings.TrimSpace(row.LastName); v != "" {
		contact.LastName = v
	}
	if v := strings.TrimSpace(row.Title); v != "" {
		contact.Title = v
	}
	if accountID != nil {
		contact.AccountID = accountID
	}
}

func findOrCreateAccount(ctx context.Context, tx *sql.Tx, name, industry, website string) (*models.Account, bool, error) {
	account, err := db.FindAccountByName(ctx, tx, name)
	if err == nil {
		return account, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	account = &models.Account{Name: name, Industry: industry, Website: website}
	if err := db.CreateAccount(ctx, tx, account); err != nil {
		return nil, false, err
	}
	return account, true, nil
}
