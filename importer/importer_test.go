// ABOUTME: Tests for lead ingestion into a cadence
// ABOUTME: Covers skips, non-destructive upserts, account resolution, template stamping, and rollback
package importer

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func seedCadence(t *testing.T, database *sql.DB) *models.Cadence {
	t.Helper()
	ctx := context.Background()

	campaign := &models.Campaign{Name: "Imports"}
	require.NoError(t, db.CreateCampaign(ctx, database, campaign))
	cadence := &models.Cadence{CampaignID: campaign.ID, Name: "5-step"}
	require.NoError(t, db.CreateCadence(ctx, database, cadence))
	return cadence
}

func countContacts(t *testing.T, database *sql.DB, cadenceID int64) int {
	t.Helper()
	contacts, err := db.ListContacts(context.Background(), database, cadenceID)
	require.NoError(t, err)
	return len(contacts)
}

func TestIngestSkipsBlankEmails(t *testing.T) {
	database := setupTestDB(t)
	cadence := seedCadence(t, database)
	im := New(database, quietLogger())

	result, err := im.Ingest(context.Background(), cadence.ID, []Row{
		{Email: "a@x.com"},
		{Email: "   ", FirstName: "Nobody"},
		{Email: ""},
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 1, countContacts(t, database, cadence.ID))
}

func TestIngestUpdatesOnlyNonEmptyFields(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	cadence := seedCadence(t, database)
	im := New(database, quietLogger())

	_, err := im.Ingest(ctx, cadence.ID, []Row{
		{Email: "a@x.com", FirstName: "Ada", LastName: "Lovelace", Title: "CMO"},
	}, Options{})
	require.NoError(t, err)

	contact, err := db.FindContactByEmail(ctx, database, cadence.ID, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, db.SetContactStatus(ctx, database, contact.ID, models.StatusActive))

	result, err := im.Ingest(ctx, cadence.ID, []Row{
		{Email: " a@x.com ", FirstName: "", LastName: "King", Title: "  "},
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Created)

	updated, err := db.FindContactByEmail(ctx, database, cadence.ID, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, contact.ID, updated.ID)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "King", updated.LastName)
	assert.Equal(t, "CMO", updated.Title)
	assert.Equal(t, models.StatusActive, updated.Status, "status survives re-ingestion")
	assert.Equal(t, 1, countContacts(t, database, cadence.ID))
}

func TestIngestResolvesAccounts(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	cadence := seedCadence(t, database)
	im := New(database, quietLogger())

	existing := &models.Account{Name: "Globex"}
	require.NoError(t, db.CreateAccount(ctx, database, existing))

	result, err := im.Ingest(ctx, cadence.ID, []Row{
		{Email: "a@acme.com", AccountName: "Acme", AccountIndustry: "Retail", AccountWebsite: ""},
		{Email: "b@acme.com", AccountName: "Acme"},
		{Email: "c@globex.com", AccountName: "Globex"},
		{Email: "d@x.com"},
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.AccountsCreated)

	acme, err := db.FindAccountByName(ctx, database, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Retail", acme.Industry)
	assert.Empty(t, acme.Website)

	a, err := db.FindContactByEmail(ctx, database, cadence.ID, "a@acme.com")
	require.NoError(t, err)
	b, err := db.FindContactByEmail(ctx, database, cadence.ID, "b@acme.com")
	require.NoError(t, err)
	c, err := db.FindContactByEmail(ctx, database, cadence.ID, "c@globex.com")
	require.NoError(t, err)
	d, err := db.FindContactByEmail(ctx, database, cadence.ID, "d@x.com")
	require.NoError(t, err)

	require.NotNil(t, a.AccountID)
	assert.Equal(t, acme.ID, *a.AccountID)
	assert.Equal(t, acme.ID, *b.AccountID)
	assert.Equal(t, existing.ID, *c.AccountID)
	assert.Nil(t, d.AccountID)

	// A later row with an account reassigns the contact
	_, err = im.Ingest(ctx, cadence.ID, []Row{{Email: "a@acme.com", AccountName: "Globex"}}, Options{})
	require.NoError(t, err)
	a, err = db.FindContactByEmail(ctx, database, cadence.ID, "a@acme.com")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, *a.AccountID)
}

func TestIngestAppliesCadenceActivities(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	cadence := seedCadence(t, database)
	im := New(database, quietLogger())

	for _, content := range []string{"intro", "follow up"} {
		_, err := db.AddCadenceActivity(ctx, database, &models.CadenceActivity{
			CadenceID: cadence.ID, Type: models.ActivityEmail, Content: content,
		})
		require.NoError(t, err)
	}

	rows := []Row{{Email: "a@x.com"}, {Email: "b@x.com"}}
	result, err := im.Ingest(ctx, cadence.ID, rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, result.ActivitiesCreated)

	// Re-ingesting accumulates another round; nothing is deduplicated
	result, err = im.Ingest(ctx, cadence.ID, rows[:1], Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ActivitiesCreated)

	a, err := db.FindContactByEmail(ctx, database, cadence.ID, "a@x.com")
	require.NoError(t, err)
	activities, err := db.ListActivities(ctx, database, []int64{a.ID})
	require.NoError(t, err)
	assert.Len(t, activities, 4)

	// Opting out stamps nothing
	result, err = im.Ingest(ctx, cadence.ID, []Row{{Email: "c@x.com"}}, Options{SkipCadenceActivities: true})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ActivitiesCreated)
	c, err := db.FindContactByEmail(ctx, database, cadence.ID, "c@x.com")
	require.NoError(t, err)
	activities, err = db.ListActivities(ctx, database, []int64{c.ID})
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestIngestRollsBackWholeBatch(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	cadence := seedCadence(t, database)
	im := New(database, quietLogger())

	_, err := im.Ingest(ctx, cadence.ID, []Row{{Email: "keep@x.com"}}, Options{})
	require.NoError(t, err)

	_, err = database.Exec(`
		CREATE TRIGGER reject_bad_lead BEFORE INSERT ON contacts
		WHEN NEW.email = 'bad@x.com'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END
	`)
	require.NoError(t, err)

	_, err = im.Ingest(ctx, cadence.ID, []Row{
		{Line: 2, Email: "new1@x.com", AccountName: "Fresh"},
		{Line: 3, Email: "keep@x.com", Title: "Changed"},
		{Line: 4, Email: "bad@x.com"},
	}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 4")

	// Nothing from the failed batch survives
	assert.Equal(t, 1, countContacts(t, database, cadence.ID))
	_, err = db.FindAccountByName(ctx, database, "Fresh")
	require.ErrorIs(t, err, models.ErrNotFound)
	kept, err := db.FindContactByEmail(ctx, database, cadence.ID, "keep@x.com")
	require.NoError(t, err)
	assert.Empty(t, kept.Title)
}

func TestIngestUnknownCadence(t *testing.T) {
	database := setupTestDB(t)
	im := New(database, quietLogger())

	_, err := im.Ingest(context.Background(), 9999, []Row{{Email: "a@x.com"}}, Options{})
	require.ErrorIs(t, err, models.ErrNotFound)
}
