package demo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/outlab/metrics"
	"github.com/stretchr/testify/assert"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(42, 8)
	b := Generate(42, 8)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different dashboards (-first +second):\n%s", diff)
	}

	c := Generate(43, 8)
	assert.False(t, cmp.Equal(a, c), "different seeds should differ")
}

func TestGenerateShape(t *testing.T) {
	d := Generate(7, 12)

	assert.Len(t, d.UseCaseRows, 12)
	assert.Len(t, d.AccountRows, 12)
	assert.Len(t, d.IntentRows, 12)
	assert.Equal(t, "Acme #2", d.AccountRows[10].Account)

	for _, row := range d.AccountRows {
		assert.Equal(t, 1, row.Accounts)
		assert.Equal(t, metrics.ActionRevealContacts, row.NextBestAction)
	}
	for _, row := range d.IntentRows {
		assert.GreaterOrEqual(t, row.IntentScore, 40)
		assert.LessOrEqual(t, row.IntentScore, 100)
		assert.LessOrEqual(t, row.Engaged, row.Leads)
		assert.Equal(t, metrics.NextBestAction(toCounters(row.Counts)), row.NextBestAction)
	}
}

func TestGenerateEmpty(t *testing.T) {
	d := Generate(1, 0)
	assert.Empty(t, d.UseCaseRows)
	assert.Empty(t, Generate(1, -3).IntentRows)
}

func TestGenerateClampsToMaxRows(t *testing.T) {
	d := Generate(1, 200000)
	assert.Len(t, d.UseCaseRows, MaxRows)
	assert.Len(t, d.AccountRows, MaxRows)
	assert.Len(t, d.IntentRows, MaxRows)
}
