package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteOverviewXLSX(t *testing.T) {
	rows := []OverviewRow{
		{Campaign: "Spring", Object: "Campaign", Field: "Industry", Value: "SaaS"},
		{Campaign: "Spring", Object: "Next step", Field: "Next best action", Value: string(ActionBringLeads)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOverviewXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows(overviewSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Campaign", "Object", "Field", "Value"},
		{"Spring", "Campaign", "Industry", "SaaS"},
		{"Spring", "Next step", "Next best action", "Bring more leads"},
	}, got)
}

func TestWriteOverviewXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOverviewXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows(overviewSheet)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
