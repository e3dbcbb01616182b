// Package export writes batch results to a spreadsheet.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/kycheck/internal/check"
	"github.com/Veraticus/kycheck/internal/model"
)

// SheetName is the sheet holding one row per checked document.
const SheetName = "Results"

// Headers are the column titles of the results sheet.
var Headers = []string{
	"Source",
	"Format",
	"Name",
	"ID Number",
	"Pass",
	"Fail",
	"N/A",
	"Missing Data",
	"Outstanding",
	"Failed Rules",
	"Note",
	"Error",
}

// Workbook builds the results workbook. The caller owns the returned file
// and must close it.
func Workbook(results []check.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	first := f.GetSheetName(0)
	if err := f.SetSheetName(first, SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(SheetName, cell, v)
	}

	for i, h := range Headers {
		if err := write(i+1, 1, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, res := range results {
		for col, v := range Row(res) {
			if err := write(col+1, i+2, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	for _, w := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 32},
		{"C", "D", 20},
		{"J", "K", 48},
	} {
		if err := f.SetColWidth(SheetName, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("set column width %s:%s: %w", w.from, w.to, err)
		}
	}

	return f, nil
}

// Save writes the results workbook to path.
func Save(path string, results []check.Result) error {
	f, err := Workbook(results)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// Row returns the cell values for one result, in Headers order.
func Row(res check.Result) []any {
	if res.Err != nil {
		row := make([]any, len(Headers))
		for i := range row {
			row[i] = ""
		}
		row[0] = res.Source
		row[len(row)-1] = res.Err.Error()
		return row
	}

	r := res.Report
	tally := r.Verdicts.Tally()
	return []any{
		res.Source,
		string(r.Format),
		r.Summary.Display.Name,
		r.Summary.Display.IDNumber,
		tally[model.OutcomePass],
		tally[model.OutcomeFail],
		tally[model.OutcomeNotApplicable],
		tally[model.OutcomeMissingData],
		r.Summary.Outstanding,
		strings.Join(FailedRules(r.Verdicts), ", "),
		r.Summary.Note,
		"",
	}
}

// FailedRules lists the labels of failing and missing-data verdicts.
func FailedRules(verdicts model.Verdicts) []string {
	var out []string
	for _, v := range verdicts {
		if v.Outcome == model.OutcomeFail || v.Outcome == model.OutcomeMissingData {
			out = append(out, v.Label)
		}
	}
	return out
}
