package cmd

import (
	"errors"
	"testing"

	"overtrack/worklog"
)

func TestDetectExportFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"report.csv":  "csv",
		"report.XLSX": "excel",
		"report.xlsm": "excel",
		"report.out":  "csv",
		"report":      "csv",
	}
	for path, want := range tests {
		if got := detectExportFormat(path); got != want {
			t.Fatalf("detectExportFormat(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestBuildExportReport_LiveMonth(t *testing.T) {
	t.Parallel()

	svc := newSeededDashboard(t)
	report, err := buildExportReport(svc, "demo_user_1", "2025-11", "")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.UserName != "John Doe" || len(report.Rows) != 11 || report.Stats.TotalHours != 91.25 {
		t.Fatalf("unexpected report: %s rows=%d total=%v", report.UserName, len(report.Rows), report.Stats.TotalHours)
	}

	if _, err := buildExportReport(svc, "", "2025-11", ""); err == nil {
		t.Fatalf("expected error without user")
	}
}

func TestBuildExportReport_SharedReportIsFrozen(t *testing.T) {
	t.Parallel()

	svc := newSeededDashboard(t)
	month := worklog.MustParseMonth("2025-11")
	shared, err := svc.ShareMonth("demo_user_2", month)
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if _, err := svc.Entries.Append("demo_user_2", worklog.Draft{HoursWorked: 1, Date: worklog.MustParseDate("2025-11-29")}); err != nil {
		t.Fatalf("append: %v", err)
	}

	report, err := buildExportReport(svc, "", "", shared.ID)
	if err != nil {
		t.Fatalf("build shared report: %v", err)
	}
	if len(report.Rows) != 11 || report.UserName != "Jane Smith" {
		t.Fatalf("expected frozen rows, got %d for %s", len(report.Rows), report.UserName)
	}

	if _, err := buildExportReport(svc, "", "", "missing"); !errors.Is(err, worklog.ErrNotFound) {
		t.Fatalf("expected not found for unknown share, got %v", err)
	}
}
