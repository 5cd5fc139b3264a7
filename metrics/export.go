// ABOUTME: Spreadsheet export of the campaign overview table
// ABOUTME: Writes one Summary sheet with a header row via excelize
package metrics

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const overviewSheet = "Summary"

var overviewColumns = []string{"Campaign", "Object", "Field", "Value"}

// WriteOverviewXLSX writes the summary rows as a single-sheet workbook.
func WriteOverviewXLSX(w io.Writer, rows []OverviewRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(overviewSheet, "A1", &overviewColumns); err != nil {
		return err
	}
	if err := f.SetCellStyle(overviewSheet, "A1", "D1", headerStyle); err != nil {
		return err
	}

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(overviewSheet, cell, &[]string{r.Campaign, r.Object, r.Field, r.Value}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(overviewSheet, "A", "A", 28)
	_ = f.SetColWidth(overviewSheet, "B", "B", 16)
	_ = f.SetColWidth(overviewSheet, "C", "C", 40)
	_ = f.SetColWidth(overviewSheet, "D", "D", 32)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
