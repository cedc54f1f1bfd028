package timeutil

import (
	"fmt"
	"strings"
	"time"

	"overtrack/worklog"
)

// ResolveDate parses a CLI date argument. Empty and "today" mean now's local
// date; "yesterday" is the day before.
func ResolveDate(raw string, now time.Time) (worklog.Date, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "today":
		return worklog.DateOf(now), nil
	case "yesterday":
		return worklog.DateOf(now).AddDays(-1), nil
	}
	date, err := worklog.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return worklog.Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return date, nil
}

// ResolveMonth parses a CLI month argument. Empty and "current" mean now's
// month; "previous" and "last" the month before.
func ResolveMonth(raw string, now time.Time) (worklog.Month, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "current":
		return worklog.MonthOf(now), nil
	case "previous", "last":
		return worklog.MonthOf(now).Previous(), nil
	}
	month, err := worklog.ParseMonth(strings.TrimSpace(raw))
	if err != nil {
		return worklog.Month{}, fmt.Errorf("parse month %q: %w", raw, err)
	}
	return month, nil
}
