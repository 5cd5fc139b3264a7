// ABOUTME: Tests for cadence and cadence activity template operations
// ABOUTME: Covers the one-cadence-per-campaign rule and template fan-out
package db

import (
	"context"
	"testing"

	"github.com/harperreed/outlab/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCadenceOncePerCampaign(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	campaign, cadence := seedCadence(t, database, "Solo")

	found, err := GetCadenceForCampaign(ctx, database, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, cadence.ID, found.ID)
	assert.Equal(t, "Solo cadence", found.Name)

	err = CreateCadence(ctx, database, &models.Cadence{CampaignID: campaign.ID, Name: "Again"})
	require.ErrorIs(t, err, models.ErrConflict)
}

func TestCreateCadenceErrors(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	err := CreateCadence(ctx, database, &models.Cadence{CampaignID: 1})
	require.ErrorIs(t, err, models.ErrValidation)

	err = CreateCadence(ctx, database, &models.Cadence{CampaignID: 404, Name: "Nowhere"})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetCadenceForCampaignWithoutCadence(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	campaign := &models.Campaign{Name: "Bare"}
	require.NoError(t, CreateCampaign(ctx, database, campaign))

	_, err := GetCadenceForCampaign(ctx, database, campaign.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddCadenceActivityFansOut(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	_, cadence := seedCadence(t, database, "Fanout")
	var contactIDs []int64
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		c := &models.Contact{CadenceID: cadence.ID, Email: email}
		require.NoError(t, CreateContact(ctx, database, c))
		contactIDs = append(contactIDs, c.ID)
	}

	// Contacts in another cadence are untouched
	_, other := seedCadence(t, database, "Other")
	require.NoError(t, CreateContact(ctx, database, &models.Contact{CadenceID: other.ID, Email: "z@x.com"}))

	template := &models.CadenceActivity{CadenceID: cadence.ID, Type: models.ActivityLinkedIn, Content: "connect"}
	applied, err := AddCadenceActivity(ctx, database, template)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)
	assert.NotZero(t, template.ID)

	activities, err := ListActivities(ctx, database, contactIDs)
	require.NoError(t, err)
	require.Len(t, activities, 3)
	seen := map[int64]bool{}
	for _, a := range activities {
		assert.Equal(t, models.ActivityLinkedIn, a.Type)
		assert.Equal(t, "connect", a.Content)
		seen[a.ContactID] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 3, countRows(t, database, "activities"))

	templates, err := ListCadenceActivities(ctx, database, cadence.ID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "connect", templates[0].Content)
}

func TestAddCadenceActivityEmptyCadence(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	_, cadence := seedCadence(t, database, "Empty")
	applied, err := AddCadenceActivity(ctx, database, &models.CadenceActivity{
		CadenceID: cadence.ID, Type: models.ActivityTask, Content: "research",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, 1, countRows(t, database, "cadence_activities"))
}

func TestAddCadenceActivityRejectsBadInput(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	_, cadence := seedCadence(t, database, "Strict")
	require.NoError(t, CreateContact(ctx, database, &models.Contact{CadenceID: cadence.ID, Email: "a@x.com"}))

	_, err := AddCadenceActivity(ctx, database, &models.CadenceActivity{
		CadenceID: cadence.ID, Type: "sms", Content: "hi",
	})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = AddCadenceActivity(ctx, database, &models.CadenceActivity{
		CadenceID: 999, Type: models.ActivityCall, Content: "hi",
	})
	require.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, 0, countRows(t, database, "cadence_activities"))
	assert.Equal(t, 0, countRows(t, database, "activities"))
}
