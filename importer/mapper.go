package importer

import (
	"fmt"

	"overtrack/worklog"
)

var (
	dateColumns        = []string{"date", "datum", "day", "workdate"}
	hoursColumns       = []string{"hoursworked", "hours", "stunden", "duration", "overtime"}
	projectLinkColumns = []string{"projectlink", "project", "projekt", "link", "url"}
	supervisorColumns  = []string{"supervisor", "manager", "vorgesetzter", "approver"}
	notesColumns       = []string{"notes", "note", "description", "beschreibung", "comment"}
)

// MapRecord turns one row into an entry draft. Rows without both a date and
// hours are skipped (ok is false). A row with only one of them is an error.
func MapRecord(record Record) (worklog.Draft, bool, error) {
	rawDate := record.Get(dateColumns...)
	rawHours := record.Get(hoursColumns...)
	if rawDate == "" && rawHours == "" {
		return worklog.Draft{}, false, nil
	}

	date, err := parseDate(rawDate)
	if err != nil {
		return worklog.Draft{}, false, fmt.Errorf("row %d: parse date: %w", record.RowNumber, err)
	}
	hours, err := parseHours(rawHours)
	if err != nil {
		return worklog.Draft{}, false, fmt.Errorf("row %d: parse hours: %w", record.RowNumber, err)
	}

	return worklog.Draft{
		ProjectLink: record.Get(projectLinkColumns...),
		HoursWorked: hours,
		Supervisor:  record.Get(supervisorColumns...),
		Date:        date,
		Notes:       record.Get(notesColumns...),
	}, true, nil
}
