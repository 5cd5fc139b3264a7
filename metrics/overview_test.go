package metrics

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewRows(t *testing.T) {
	campaign := &models.Campaign{Name: "Q1-SEO", Industry: "SaaS"}
	m := &CampaignMetrics{
		HasCadence:       true,
		LeadCount:        2,
		DepartmentLabels: []Department{DepartmentSEO, DepartmentGeneral},
		SEOCount:         1,
		NextBestAction:   ActionRevealContacts,
	}

	rows := OverviewRows(campaign, m)

	byField := make(map[string]OverviewRow)
	for _, r := range rows {
		assert.Equal(t, "Q1-SEO", r.Campaign)
		byField[r.Field] = r
	}

	want := map[string]string{
		"Industry":                            "SaaS",
		"Product":                             Placeholder,
		"PPTX":                                "",
		"Cadence":                             "✓",
		"# of leads in campaign":              "2",
		"Department types":                    "Marketing: SEO | Marketing: General",
		"Number of leads from Marketing: SEO": "1",
		"Reply Rate":                          "0%",
		"Next best action":                    "Reveal More Contacts",
	}
	got := make(map[string]string)
	for field := range want {
		got[field] = byField[field].Value
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overview values mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Leads", byField["Department types"].Object)
}

func TestOverviewAllCampaigns(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"older", "newer"} {
		require.NoError(t, db.CreateCampaign(ctx, database, &models.Campaign{Name: name}))
	}

	rows, err := Overview(ctx, database)
	require.NoError(t, err)

	perCampaign := len(OverviewRows(&models.Campaign{}, &CampaignMetrics{}))
	require.Len(t, rows, 2*perCampaign)
	assert.Equal(t, "newer", rows[0].Campaign)
	assert.Equal(t, "older", rows[perCampaign].Campaign)
}
