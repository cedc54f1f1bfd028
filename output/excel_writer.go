package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"overtrack/stats"
)

const (
	entriesSheet = "Entries"
	dailySheet   = "Daily"
	summarySheet = "Summary"
)

// ExcelWriter writes a workbook with a summary sheet, the entry rows and a
// daily sheet carrying a column chart of hours per day.
type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, report Report) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename first sheet: %w", err)
	}
	for _, name := range []string{entriesSheet, dailySheet} {
		if _, err := file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeSummarySheet(file, report); err != nil {
		return err
	}
	if err := writeEntriesSheet(file, report); err != nil {
		return err
	}
	if err := writeDailySheet(file, BuildDailySummaries(report)); err != nil {
		return err
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}

func writeSummarySheet(file *excelize.File, report Report) error {
	rows := [][]any{
		{"User", report.UserName},
		{"Month", report.Month.String()},
		{"Total hours", stats.RoundedTotal(report.Stats)},
		{"Entries", report.Stats.EntriesCount},
		{"Days worked", report.Stats.UniqueDays},
		{"Average per day", report.Stats.AvgPerDay},
	}
	if err := setRows(file, summarySheet, rows); err != nil {
		return err
	}
	if err := file.SetColWidth(summarySheet, "A", "A", 18); err != nil {
		return fmt.Errorf("set summary column width: %w", err)
	}
	return nil
}

func writeEntriesSheet(file *excelize.File, report Report) error {
	rows := make([][]any, 0, len(report.Rows)+1)
	rows = append(rows, stringsToRow(entryHeaders))
	for _, row := range report.Rows {
		rows = append(rows, []any{row.Date.String(), row.HoursWorked, row.ProjectLink, row.Supervisor, row.Notes})
	}
	if err := setRows(file, entriesSheet, rows); err != nil {
		return err
	}
	if err := file.SetColWidth(entriesSheet, "C", "C", 48); err != nil {
		return fmt.Errorf("set entries column width: %w", err)
	}
	return nil
}

func writeDailySheet(file *excelize.File, summaries []DailySummary) error {
	rows := make([][]any, 0, len(summaries)+1)
	rows = append(rows, stringsToRow(dailyHeaders))
	for _, summary := range summaries {
		rows = append(rows, []any{summary.Date, summary.Hours, summary.Entries, summary.Cumulative})
	}
	if err := setRows(file, dailySheet, rows); err != nil {
		return err
	}
	if len(summaries) == 0 {
		return nil
	}

	last := len(summaries) + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", dailySheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", dailySheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", dailySheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Hours per day"}},
		Legend: excelize.ChartLegend{Position: "none"},
	}
	if err := file.AddChart(dailySheet, "F2", chart); err != nil {
		return fmt.Errorf("add daily chart: %w", err)
	}
	return nil
}

func setRows(file *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolve cell for row %d: %w", i+1, err)
		}
		if err := file.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("set %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func stringsToRow(values []string) []any {
	row := make([]any, len(values))
	for i, value := range values {
		row[i] = value
	}
	return row
}
