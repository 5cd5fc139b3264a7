package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/outlab/models"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// seedCadence creates a campaign with a cadence and returns both.
func seedCadence(t *testing.T, database *sql.DB, name string) (*models.Campaign, *models.Cadence) {
	t.Helper()
	ctx := context.Background()

	campaign := &models.Campaign{Name: name}
	require.NoError(t, CreateCampaign(ctx, database, campaign))

	cadence := &models.Cadence{CampaignID: campaign.ID, Name: name + " cadence"}
	require.NoError(t, CreateCadence(ctx, database, cadence))

	return campaign, cadence
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	// Verify database file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Verify schema was initialized
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if count != 9 {
		t.Errorf("Expected 9 tables, got %d", count)
	}

	// Verify WAL mode
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected WAL mode, got %s", mode)
	}

	// Cascades depend on this
	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("Failed to query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("Expected foreign keys enabled, got %d", fk)
	}
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	// A regular file where the parent directory should be
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	dbPath := filepath.Join(blocker, "nested", "test.db")

	_, err := OpenDatabase(dbPath)
	if err == nil {
		t.Errorf("Expected error for invalid path, but OpenDatabase succeeded")
	}
}

func TestOpenDatabaseReinitializes(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, CreateCampaign(context.Background(), db, &models.Campaign{Name: "Persisted"}))
	require.NoError(t, db.Close())

	// CREATE TABLE IF NOT EXISTS must leave existing rows alone
	db, err = OpenDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	campaign, err := GetCampaignByName(context.Background(), db, "Persisted")
	require.NoError(t, err)
	require.Equal(t, "Persisted", campaign.Name)
}

func TestWithTxRollsBack(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, database, func(tx *sql.Tx) error {
		if err := CreateCampaign(ctx, tx, &models.Campaign{Name: "Doomed"}); err != nil {
			return err
		}
		return CreateCampaign(ctx, tx, &models.Campaign{Name: "Doomed"})
	})
	require.ErrorIs(t, err, models.ErrConflict)
	require.Equal(t, 0, countRows(t, database, "campaigns"))
}
