// ABOUTME: Spreadsheet readers that turn CSV and XLSX lead lists into import rows
// ABOUTME: Maps recognised header names and ignores every other column
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/outlab/models"
	"github.com/xuri/excelize/v2"
)

// Row is one lead from an import file. Line is the 1-based line in the source,
// counting the header, so errors can point at the spreadsheet row.
type Row struct {
	Line            int    `json:"line,omitempty"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Title           string `json:"title,omitempty"`
	AccountName     string `json:"account_name,omitempty"`
	AccountIndustry string `json:"account_industry,omitempty"`
	AccountWebsite  string `json:"account_website,omitempty"`
}

// Recognised column names. Anything else in the header is ignored.
const (
	colEmail           = "email"
	colFirstName       = "first_name"
	colLastName        = "last_name"
	colTitle           = "title"
	colAccountName     = "account_name"
	colAccountIndustry = "account_industry"
	colAccountWebsite  = "account_website"
)

var knownColumns = map[string]bool{
	colEmail:           true,
	colFirstName:       true,
	colLastName:        true,
	colTitle:           true,
	colAccountName:     true,
	colAccountIndustry: true,
	colAccountWebsite:  true,
}

// ReadCSV parses a CSV lead list. The first record is the header.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed CSV: %v", models.ErrValidation, err)
	}
	return parseRecords(records)
}

// ReadXLSX parses the first sheet of an XLSX workbook.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable workbook: %v", models.ErrValidation, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", models.ErrValidation)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return parseRecords(records)
}

// ReadFile picks a reader by file extension.
func ReadFile(path string) ([]Row, error) {
	if _, err := readerFor(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lead file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(filepath.Base(path), f)
}

// Read picks the format from the file name's extension.
func Read(name string, r io.Reader) ([]Row, error) {
	read, err := readerFor(name)
	if err != nil {
		return nil, err
	}
	return read(r)
}

func readerFor(name string) (func(io.Reader) ([]Row, error), error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV, nil
	case ".xlsx", ".xlsm":
		return ReadXLSX, nil
	default:
		return nil, fmt.Errorf("%w: unsupported lead file %q (want .csv or .xlsx)", models.ErrValidation, filepath.Base(name))
	}
}

func parseRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: lead file is empty", models.ErrValidation)
	}

	index := headerIndex(records[0])
	if _, ok := index[colEmail]; !ok {
		return nil, fmt.Errorf("%w: lead file has no %q column", models.ErrValidation, colEmail)
	}

	cell := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]Row, 0, len(records)-1)
	for n, record := range records[1:] {
		rows = append(rows, Row{
			Line:            n + 2,
			Email:           cell(record, colEmail),
			FirstName:       cell(record, colFirstName),
			LastName:        cell(record, colLastName),
			Title:           cell(record, colTitle),
			AccountName:     cell(record, colAccountName),
			AccountIndustry: cell(record, colAccountIndustry),
			AccountWebsite:  cell(record, colAccountWebsite),
		})
	}

	return rows, nil
}

// headerIndex maps each recognised column to its position. The first
// occurrence of a repeated column wins.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int)
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		if !knownColumns[key] {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return index
}
