// ABOUTME: Tests for contact, account, signal, and activity operations
// ABOUTME: Covers per-cadence email uniqueness and account cascades
package db

import (
	"context"
	"testing"

	"github.com/harperreed/outlab/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContact(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	_, cadence := seedCadence(t, database, "Leads")
	contact := &models.Contact{
		CadenceID: cadence.ID,
		FirstName: "Ada",
		Email:     " ada@x.com ",
		Title:     "Head of SEO",
	}
	require.NoError(t, CreateContact(ctx, database, contact))
	assert.Equal(t, models.StatusNew, contact.Status)

	found, err := FindContactByEmail(ctx, database, cadence.ID, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, contact.ID, found.ID)
	assert.Equal(t, "Head of SEO", found.Title)
	assert.Nil(t, found.AccountID)
	assert.Empty(t, found.LastName)
}

func TestCreateContactUniquePerCadence(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	_, first := seedCadence(t, database, "One")
	_, second := seedCadence(t, database, "Two")

	require.NoError(t, CreateContact(ctx, database, &models.Contact{CadenceID: first.ID, Email: "a@x.com"}))

	err := CreateContact(ctx, database, &models.Contact{CadenceID: first.ID, Email: "a@x.com"})
	require.ErrorIs(t, err, models.ErrConflict)

	// Same email in a different cadence is fine
	require.NoError(t, CreateContact(ctx, database, &models.Contact{CadenceID: second.ID, Email: "a@x.com"}))
	assert.Equal(t, 2, countRows(t, database, "contacts"))
}

func TestCreateContactValidation(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	_, cadence := seedCadence(t, database, "Valid")

	err := CreateContact(ctx, database, &models.Contact{CadenceID: cadence.ID, Email: "  "})
	require.ErrorIs(t, err, models.ErrValidation)

	err = CreateContact(ctx, database, &models.Contact{CadenceID: cadence.ID, Email: "a@x.com", Status: "ghosted"})
	require.ErrorIs(t, err, models.ErrValidation)

	err = CreateContact(ctx, database, &models.Contact{CadenceID: 999, Email: "a@x.com"})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetContactStatus(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	_, cadence := seedCadence(t, database, "Status")

	contact := &models.Contact{CadenceID: cadence.ID, Email: "a@x.com"}
	require.NoError(t, CreateContact(ctx, database, contact))

	require.NoError(t, SetContactStatus(ctx, database, contact.ID, models.StatusPaused))
	found, err := GetContact(ctx, database, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, found.Status)

	require.ErrorIs(t, SetContactStatus(ctx, database, contact.ID, "archived"), models.ErrValidation)
	require.ErrorIs(t, SetContactStatus(ctx, database, 999, models.StatusActive), models.ErrNotFound)
}

func TestListContactsNewestFirst(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	_, cadence := seedCadence(t, database, "Order")

	for _, email := range []string{"a@x.com", "b@x.com"} {
		require.NoError(t, CreateContact(ctx, database, &models.Contact{CadenceID: cadence.ID, Email: email}))
	}

	contacts, err := ListContacts(ctx, database, cadence.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "b@x.com", contacts[0].Email)
}

func TestAccountsAndSignals(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	acme := &models.Account{Name: "Acme", Industry: "Retail"}
	require.NoError(t, CreateAccount(ctx, database, acme))
	require.ErrorIs(t, CreateAccount(ctx, database, &models.Account{Name: "Acme"}), models.ErrConflict)
	require.ErrorIs(t, CreateAccount(ctx, database, &models.Account{Name: " "}), models.ErrValidation)

	found, err := FindAccountByName(ctx, database, "Acme")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, found.ID)
	assert.Empty(t, found.Website)

	_, err = FindAccountByName(ctx, database, "acme")
	require.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, AddAccountSignal(ctx, database, &models.AccountSignal{
		AccountID: acme.ID, SignalType: "Funding", Details: "Series B",
	}))
	require.ErrorIs(t, AddAccountSignal(ctx, database, &models.AccountSignal{AccountID: acme.ID}), models.ErrValidation)
	require.ErrorIs(t, AddAccountSignal(ctx, database, &models.AccountSignal{AccountID: 999, SignalType: "Hiring"}), models.ErrNotFound)

	signals, err := ListAccountSignals(ctx, database, acme.ID)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, "Series B", signals[0].Details)

	accounts, err := ListAccounts(ctx, database)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestDeleteAccountCascades(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	_, cadence := seedCadence(t, database, "Acct")

	acme := &models.Account{Name: "Acme"}
	require.NoError(t, CreateAccount(ctx, database, acme))
	require.NoError(t, AddAccountSignal(ctx, database, &models.AccountSignal{AccountID: acme.ID, SignalType: "Hiring"}))

	linked := &models.Contact{CadenceID: cadence.ID, Email: "a@acme.com", AccountID: &acme.ID}
	require.NoError(t, CreateContact(ctx, database, linked))
	require.NoError(t, CreateContact(ctx, database, &models.Contact{CadenceID: cadence.ID, Email: "free@x.com"}))

	require.NoError(t, DeleteAccount(ctx, database, acme.ID))

	assert.Equal(t, 0, countRows(t, database, "account_signals"))
	assert.Equal(t, 1, countRows(t, database, "contacts"))
	_, err := GetContact(ctx, database, linked.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestLogActivity(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	_, cadence := seedCadence(t, database, "Acts")

	contact := &models.Contact{CadenceID: cadence.ID, Email: "a@x.com"}
	require.NoError(t, CreateContact(ctx, database, contact))

	require.NoError(t, LogActivity(ctx, database, &models.Activity{
		ContactID: contact.ID, Type: models.ActivityCall, Content: "left voicemail",
	}))
	require.ErrorIs(t, LogActivity(ctx, database, &models.Activity{ContactID: contact.ID, Type: "fax"}), models.ErrValidation)
	require.ErrorIs(t, LogActivity(ctx, database, &models.Activity{ContactID: 999, Type: models.ActivityCall}), models.ErrNotFound)

	activities, err := ListActivities(ctx, database, []int64{contact.ID})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "left voicemail", activities[0].Content)

	empty, err := ListActivities(ctx, database, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
