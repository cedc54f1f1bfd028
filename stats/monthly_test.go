package stats

import (
	"math"
	"testing"
	"time"

	"overtrack/worklog"
)

func TestComputeMonthlyStats_Empty(t *testing.T) {
	t.Parallel()

	got := ComputeMonthlyStats(nil)
	if got.TotalHours != 0 || got.EntriesCount != 0 || got.UniqueDays != 0 || got.AvgPerDay != 0 {
		t.Fatalf("expected zero stats, got %+v", got)
	}
	if got.ChartData == nil || len(got.ChartData) != 0 {
		t.Fatalf("expected empty non-nil chart data, got %#v", got.ChartData)
	}
}

func TestComputeMonthlyStats_ThreeDistinctDays(t *testing.T) {
	t.Parallel()

	entries := []worklog.Entry{
		entryOn("2025-11-05", 9.25),
		entryOn("2025-11-01", 8.5),
		entryOn("2025-11-03", 6.0),
	}

	got := ComputeMonthlyStats(entries)
	if got.TotalHours != 23.75 {
		t.Fatalf("expected total 23.75, got %v", got.TotalHours)
	}
	if RoundedTotal(got) != 23.8 {
		t.Fatalf("expected rounded total 23.8, got %v", RoundedTotal(got))
	}
	if got.EntriesCount != 3 || got.UniqueDays != 3 {
		t.Fatalf("expected 3 entries on 3 days, got %d on %d", got.EntriesCount, got.UniqueDays)
	}
	if got.AvgPerDay != 7.9 {
		t.Fatalf("expected avg 7.9, got %v", got.AvgPerDay)
	}

	wantDays := []string{"2025-11-01", "2025-11-03", "2025-11-05"}
	for i, day := range wantDays {
		if got.ChartData[i].Date.String() != day {
			t.Fatalf("chart[%d]: expected %s, got %s", i, day, got.ChartData[i].Date)
		}
	}
}

func TestComputeMonthlyStats_SameDateIsSummed(t *testing.T) {
	t.Parallel()

	got := ComputeMonthlyStats([]worklog.Entry{
		entryOn("2025-11-12", 8.5),
		entryOn("2025-11-12", 1.5),
	})
	if got.UniqueDays != 1 {
		t.Fatalf("expected 1 unique day, got %d", got.UniqueDays)
	}
	if len(got.ChartData) != 1 || got.ChartData[0].Hours != 10.0 {
		t.Fatalf("expected one bar of 10h, got %+v", got.ChartData)
	}
	if got.AvgPerDay != 10.0 {
		t.Fatalf("expected avg 10.0, got %v", got.AvgPerDay)
	}
}

func TestComputeMonthlyStats_ChartSumMatchesTotal(t *testing.T) {
	t.Parallel()

	hours := []float64{0.1, 0.2, 0.3, 7.75, 2.25, 1.333, 4.5, 0.05}
	days := []string{"2025-11-01", "2025-11-01", "2025-11-02", "2025-11-10", "2025-11-10", "2025-11-15", "2025-11-30", "2025-11-02"}

	entries := make([]worklog.Entry, 0, len(hours))
	for i := range hours {
		entries = append(entries, entryOn(days[i], hours[i]))
	}

	got := ComputeMonthlyStats(entries)
	sum := 0.0
	for _, bar := range got.ChartData {
		sum += bar.Hours
	}
	if math.Abs(sum-got.TotalHours) > 0.05 {
		t.Fatalf("chart sum %v differs from total %v", sum, got.TotalHours)
	}
	if got.UniqueDays != 5 {
		t.Fatalf("expected 5 unique days, got %d", got.UniqueDays)
	}
}

func TestSummarizeUsers(t *testing.T) {
	t.Parallel()

	users := []worklog.User{
		{ID: "u1", Name: "John Doe", Email: "john@example.com"},
		{ID: "u2", Name: "Jane Smith", Email: "jane@example.com"},
	}
	first := time.Date(2025, 11, 1, 18, 0, 0, 0, time.UTC)
	latest := time.Date(2025, 11, 3, 16, 30, 0, 0, time.UTC)

	entries := []worklog.Entry{
		{UserID: "u1", HoursWorked: 8.5, Date: worklog.MustParseDate("2025-11-01"), CreatedAt: first},
		{UserID: "u1", HoursWorked: 6.0, Date: worklog.MustParseDate("2025-11-03"), CreatedAt: latest},
		{UserID: "ghost", HoursWorked: 3, Date: worklog.MustParseDate("2025-11-03"), CreatedAt: latest},
	}

	got := SummarizeUsers(users, entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].TotalEntries != 2 || got[0].TotalHours != 14.5 || !got[0].LastEntry.Equal(latest) {
		t.Fatalf("unexpected summary for u1: %+v", got[0])
	}
	if got[1].TotalEntries != 0 || got[1].TotalHours != 0 || !got[1].LastEntry.IsZero() {
		t.Fatalf("unexpected summary for u2: %+v", got[1])
	}
}

func entryOn(day string, hours float64) worklog.Entry {
	return worklog.Entry{
		UserID:      "u1",
		HoursWorked: hours,
		Date:        worklog.MustParseDate(day),
	}
}
