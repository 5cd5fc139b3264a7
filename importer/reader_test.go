// ABOUTME: Tests for the CSV and XLSX lead readers
// ABOUTME: Checks header mapping, missing columns, and reader parity
package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/outlab/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Email, First_Name,last name,Title,account_name,notes
a@x.com,Ada,Lovelace,Head of SEO,Acme,ignored
  ,Blank,,,,
b@x.com,,,Sales Rep
`

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	want := []Row{
		{Line: 2, Email: "a@x.com", FirstName: "Ada", LastName: "Lovelace", Title: "Head of SEO", AccountName: "Acme"},
		{Line: 3, Email: "", FirstName: "Blank"},
		{Line: 4, Email: "b@x.com", Title: "Sales Rep"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("ReadCSV mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVStripsByteOrderMark(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("\ufeffemail\nz@x.com\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "z@x.com", rows[0].Email)
}

func TestReadCSVRequiresEmailColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("first_name,title\nAda,CMO\n"))
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestReadXLSXMatchesCSV(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	records := [][]any{
		{"Email", " First_Name", "last name", "Title", "account_name", "notes"},
		{"a@x.com", "Ada", "Lovelace", "Head of SEO", "Acme", "ignored"},
		{"  ", "Blank"},
		{"b@x.com", "", "", "Sales Rep"},
	}
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &record))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	fromXLSX, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	fromCSV, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	if diff := cmp.Diff(fromCSV, fromXLSX); diff != "" {
		t.Errorf("XLSX rows differ from CSV rows (-csv +xlsx):\n%s", diff)
	}
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a workbook"))
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "leads.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))
	rows, err := ReadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = ReadFile(filepath.Join(dir, "leads.json"))
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}
