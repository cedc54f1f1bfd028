package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// CSVWriter writes the report rows as a single table.
type CSVWriter struct{}

func (w *CSVWriter) Write(path string, report Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(entryHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{
			row.Date.String(),
			formatHours(row.HoursWorked),
			row.ProjectLink,
			row.Supervisor,
			row.Notes,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
