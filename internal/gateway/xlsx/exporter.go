// Package xlsx writes parse results to a workbook so an operator can review
// a dry run before importing.
package xlsx

import (
	"fmt"
	"io"

	"attendance-ingest/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	punchSheet = "Punches"
	errorSheet = "Parse Errors"
)

var (
	punchHeaders = []string{"Employee Code", "Name", "Card No", "Punch Datetime", "Status"}
	punchWidths  = []float64{18, 30, 14, 22, 10}
	errorHeaders = []string{"Format", "Message"}
	errorWidths  = []float64{12, 100}
)

// WriteParseResult writes the punches and errors of result to w.
func WriteParseResult(w io.Writer, result domain.ParseResult) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", punchSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeTable(f, punchSheet, headerStyle, punchHeaders, punchWidths, punchRows(result.Punches)); err != nil {
		return err
	}

	if _, err := f.NewSheet(errorSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	errRows := make([][]any, 0, len(result.Errors))
	for _, msg := range result.Errors {
		errRows = append(errRows, []any{string(result.Format), msg})
	}
	if err := writeTable(f, errorSheet, headerStyle, errorHeaders, errorWidths, errRows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func punchRows(punches []domain.ParsedPunch) [][]any {
	rows := make([][]any, 0, len(punches))
	for _, p := range punches {
		rows = append(rows, []any{p.EmployeeCode, p.Name, p.CardNo, p.PunchDatetime, p.RawStatus})
	}
	return rows
}

func writeTable(f *excelize.File, sheet string, headerStyle int, headers []string, widths []float64, rows [][]any) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}
