package report

import (
	"fmt"

	"github.com/cookmaa/probe/internal/harness"
	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Results"

	patternType    = "pattern"
	patternSolid   = 1
	errorBgColor   = "FF5900"
	warningBgColor = "FFEB9C"

	defaultColumnWidth = 14
)

var workbookHeaders = []string{
	"#", "Name", "Method", "URL", "Status", "Outcome",
	"Kind", "Duration (ms)", "Ingredients", "Steps", "Reason",
}

// WriteWorkbook writes the results of a run to an .xlsx file at path.
func WriteWorkbook(path string, run harness.Run, summary Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	last, _ := excelize.ColumnNumberToName(len(workbookHeaders))
	if err := f.SetColWidth(resultsSheet, "A", last, defaultColumnWidth); err != nil {
		return fmt.Errorf("error setting column width: %w", err)
	}

	for i, header := range workbookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(resultsSheet, cell, header); err != nil {
			return err
		}
	}

	errorStyle, err := fillStyle(f, errorBgColor)
	if err != nil {
		return err
	}

	warningStyle, err := fillStyle(f, warningBgColor)
	if err != nil {
		return err
	}

	for i, res := range run.Results {
		row := i + 2

		style := 0
		switch StatusOf(res) {
		case StatusTimeout:
			style = warningStyle
		case StatusFail, StatusError:
			style = errorStyle
		}

		if err := writeResult(f, row, i+1, res, style); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}
	}

	if err := writeSummary(f, len(run.Results)+3, summary); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	return nil
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    patternType,
			Pattern: patternSolid,
			Color:   []string{color},
		},
	})
}

func writeResult(f *excelize.File, row, number int, res harness.TestResult, style int) error {
	var ingredients, steps any
	if res.Recipe != nil {
		ingredients = res.Recipe.IngredientCount
		steps = res.Recipe.StepCount
	}

	var status any
	if res.StatusCode != 0 {
		status = res.StatusCode
	}

	cells := []any{
		number,
		res.Case.Name,
		res.Case.Method,
		res.Case.URL(),
		status,
		string(StatusOf(res)),
		string(res.Kind),
		res.Elapsed.Milliseconds(),
		ingredients,
		steps,
		res.Reason,
	}

	for i, value := range cells {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(resultsSheet, cell, value); err != nil {
			return err
		}

		if style != 0 {
			if err := f.SetCellStyle(resultsSheet, cell, cell, style); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeSummary(f *excelize.File, startRow int, summary Summary) error {
	rows := [][]any{
		{"Run", summary.RunID.String()},
		{"Target", summary.Target},
		{"Total", summary.Total},
		{"Passed", summary.Passed},
		{"Failed", summary.Failed},
		{"Errored", summary.Errored},
		{"Timed out", summary.TimedOut},
		{"Duration (ms)", summary.Duration.Milliseconds()},
	}

	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, startRow+i)
		if err := f.SetSheetRow(resultsSheet, cell, &values); err != nil {
			return err
		}
	}

	return nil
}
