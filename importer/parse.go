package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"overtrack/worklog"
)

// parseHours accepts dot or comma decimals ("7.5", "7,5", "1.234,5",
// "1,234.5"). The last separator is the decimal mark.
func parseHours(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(strings.TrimSuffix(cleaned, "h"), " ")
	if cleaned == "" {
		return 0, fmt.Errorf("empty hours")
	}
	if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	hours, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hours %q: %w", raw, err)
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("hours must be a finite number")
	}
	if hours <= 0 {
		return 0, fmt.Errorf("hours must be greater than 0")
	}
	return hours, nil
}

var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04",
}

// parseDate reads a calendar date. Layouts with a time of day keep only the
// date as written; no timezone conversion is applied.
func parseDate(raw string) (worklog.Date, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return worklog.Date{}, fmt.Errorf("empty date")
	}
	if date, err := worklog.ParseDate(value); err == nil {
		return date, nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return worklog.NewDate(parsed.Year(), parsed.Month(), parsed.Day())
		}
	}
	return worklog.Date{}, fmt.Errorf("unsupported date format: %q", raw)
}
