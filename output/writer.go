package output

import (
	"fmt"
	"strings"

	"overtrack/worklog"
)

// Report is the exportable view of one user's month. Rows carry no
// identifiers, so the same writers serve private exports and shared reports.
type Report struct {
	UserName string
	Month    worklog.Month
	Stats    worklog.MonthlyStats
	Rows     []worklog.RedactedEntry
}

func NewReport(userName string, month worklog.Month, entries []worklog.Entry, stats worklog.MonthlyStats) Report {
	rows := make([]worklog.RedactedEntry, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entry.Redacted())
	}
	return Report{UserName: userName, Month: month, Stats: stats, Rows: rows}
}

func ReportFromShare(shared worklog.SharedReport) Report {
	return Report{UserName: shared.UserName, Month: shared.Month, Stats: shared.Stats, Rows: shared.Entries}
}

type Writer interface {
	Write(path string, report Report) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

var entryHeaders = []string{"Date", "HoursWorked", "ProjectLink", "Supervisor", "Notes"}
