package files

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"), logger)
	require.NoError(t, err)
	return store
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

var storedName = regexp.MustCompile(`^doc-[0-9A-HJKMNP-TV-Z]{26}-Q1_deck.pptx$`)

func TestSaveAndOpen(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save("doc", "Q1 deck.pptx", strings.NewReader("slides"))
	require.NoError(t, err)
	assert.Equal(t, store.Dir(), filepath.Dir(path))
	assert.Regexp(t, storedName, filepath.Base(path))

	data, err := store.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "slides", string(data))

	// Two uploads with the same name never collide
	second, err := store.Save("doc", "Q1 deck.pptx", strings.NewReader("v2"))
	require.NoError(t, err)
	assert.NotEqual(t, path, second)
}

func TestOpenMissingFile(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save("doc", "gone.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, store.Exists(path))
	require.NoError(t, os.Remove(path))
	assert.False(t, store.Exists(path))

	_, err = store.Open(path)
	require.ErrorIs(t, err, ErrFileMissing)
	require.ErrorIs(t, err, models.ErrNotFound)

	// Removing it again is fine
	require.NoError(t, store.Remove(path))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestSaveFailureLeavesNothing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("doc", "broken.pdf", failingReader{})
	require.ErrorIs(t, err, models.ErrStorage)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAttachDocument(t *testing.T) {
	database := setupTestDB(t)
	store := newTestStore(t)
	ctx := context.Background()

	campaign := &models.Campaign{Name: "Docs"}
	require.NoError(t, db.CreateCampaign(ctx, database, campaign))

	doc, err := store.AttachDocument(ctx, database, campaign.ID, "Pitch.pptx", strings.NewReader("deck"))
	require.NoError(t, err)
	assert.FileExists(t, doc.FilePath)

	docs, err := db.ListDocuments(ctx, database, campaign.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Pitch.pptx", docs[0].Name)
}

func TestAttachDocumentRollsBackFile(t *testing.T) {
	database := setupTestDB(t)
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AttachDocument(ctx, database, 404, "Orphan.pdf", strings.NewReader("x"))
	require.ErrorIs(t, err, models.ErrNotFound)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "file must not outlive the failed row")

	_, err = store.AttachDocument(ctx, database, 1, "  ", strings.NewReader("x"))
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteCampaignRemovesFiles(t *testing.T) {
	database := setupTestDB(t)
	store := newTestStore(t)
	ctx := context.Background()

	campaign := &models.Campaign{Name: "Doomed"}
	require.NoError(t, db.CreateCampaign(ctx, database, campaign))
	doc, err := store.AttachDocument(ctx, database, campaign.ID, "a.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	missing, err := store.AttachDocument(ctx, database, campaign.ID, "b.pdf", strings.NewReader("y"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(missing.FilePath))

	require.NoError(t, store.DeleteCampaign(ctx, database, campaign.ID))

	assert.NoFileExists(t, doc.FilePath)
	_, err = db.GetCampaign(ctx, database, campaign.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"Q1 deck.pptx":        "Q1_deck.pptx",
		"../../etc/passwd":    "passwd",
		"..hidden":            "hidden",
		"résumé.pdf":          "r_sum_.pdf",
		"":                    "file",
		"report-final_v2.pdf": "report-final_v2.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeName(in), in)
	}
}
