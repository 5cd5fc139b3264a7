package tui

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func seed(t *testing.T, database *sql.DB) *models.Campaign {
	t.Helper()
	ctx := context.Background()

	campaign := &models.Campaign{Name: "Spring Push", HypothesisType: "use-case led"}
	require.NoError(t, db.CreateCampaign(ctx, database, campaign))
	cadence := &models.Cadence{CampaignID: campaign.ID, Name: "Main"}
	require.NoError(t, db.CreateCadence(ctx, database, cadence))

	account := &models.Account{Name: "Acme", Industry: "SaaS"}
	require.NoError(t, db.CreateAccount(ctx, database, account))
	require.NoError(t, db.AddAccountSignal(ctx, database, &models.AccountSignal{AccountID: account.ID, SignalType: "Funding", Details: "Series B"}))

	contact := &models.Contact{CadenceID: cadence.ID, AccountID: &account.ID, Email: "ada@acme.io", FirstName: "Ada"}
	require.NoError(t, db.CreateContact(ctx, database, contact))
	_, err := db.ConvertContact(ctx, database, contact.ID, models.StageQualified, 1200)
	require.NoError(t, err)
	return campaign
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestListViewShowsCampaigns(t *testing.T) {
	database := setupTestDB(t)
	seed(t, database)

	view := NewModel(database).View()
	assert.Contains(t, view, "OUTLAB")
	assert.Contains(t, view, "Spring Push")
}

func TestEmptyListView(t *testing.T) {
	view := NewModel(setupTestDB(t)).View()
	assert.Contains(t, view, "nothing here yet")
}

func TestCampaignDetailShowsNextBestAction(t *testing.T) {
	database := setupTestDB(t)
	campaign := seed(t, database)

	m := press(NewModel(database), "enter")
	require.Equal(t, ViewDetail, m.viewMode)
	assert.Equal(t, campaign.ID, m.selectedID)

	view := m.View()
	assert.Contains(t, view, "Spring Push")
	assert.Contains(t, view, "Next best action: Reveal More Contacts")

	m = press(m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}

func TestTabsCycleThroughEntities(t *testing.T) {
	database := setupTestDB(t)
	seed(t, database)

	m := press(NewModel(database), "tab")
	assert.Equal(t, EntityAccounts, m.entityType)
	assert.Contains(t, m.View(), "Acme")

	m = press(m, "enter")
	assert.Contains(t, m.View(), "Series B")

	m = press(m, "esc", "tab")
	assert.Equal(t, EntityPipeline, m.entityType)
	assert.Contains(t, m.View(), "Qualified")

	m = press(m, "enter")
	assert.Contains(t, m.View(), "$1200.00")

	m = press(m, "esc", "tab")
	assert.Equal(t, EntityCampaigns, m.entityType)
}

func TestCursorStaysInBounds(t *testing.T) {
	database := setupTestDB(t)
	seed(t, database)

	m := press(NewModel(database), "down", "down", "j")
	assert.Equal(t, 0, m.selectedRow)
	m = press(m, "up", "k")
	assert.Equal(t, 0, m.selectedRow)
}

func TestGraphView(t *testing.T) {
	database := setupTestDB(t)
	seed(t, database)

	m := press(NewModel(database), "enter", "g")
	require.Equal(t, ViewGraph, m.viewMode)
	require.NoError(t, m.err)
	assert.Contains(t, m.graphDOT, "Spring Push")

	m = press(m, "esc")
	assert.Equal(t, ViewDetail, m.viewMode)

	m = press(m, "esc", "g")
	require.Equal(t, ViewGraph, m.viewMode)
	assert.Contains(t, m.graphDOT, "All Campaigns")

	m = press(m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}

func TestQuit(t *testing.T) {
	_, cmd := NewModel(setupTestDB(t)).Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
