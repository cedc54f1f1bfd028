package web

import (
	"math"
	"time"

	"overtrack/stats"
	"overtrack/worklog"
)

// BarView is one day column of the monthly bar chart.
type BarView struct {
	Date    string
	Day     int
	Hours   float64
	Percent int
	Weekend bool
}

type EntryView struct {
	ID          string
	Date        string
	Hours       float64
	ProjectLink string
	Supervisor  string
	Notes       string
}

type StatsView struct {
	TotalHours   float64
	EntriesCount int
	UniqueDays   int
	AvgPerDay    float64
}

// BuildBars lays chart out over every day of month. Days without entries get
// an empty bar; the tallest day is 100 percent.
func BuildBars(month worklog.Month, chart []worklog.DayHours) []BarView {
	if month.IsZero() {
		return []BarView{}
	}

	byDay := make(map[worklog.Date]float64, len(chart))
	peak := 0.0
	for _, point := range chart {
		if !month.Contains(point.Date) {
			continue
		}
		byDay[point.Date] += point.Hours
		peak = math.Max(peak, byDay[point.Date])
	}

	last := month.LastDay()
	bars := make([]BarView, 0, last.Day())
	for day := month.FirstDay(); !day.After(last); day = day.AddDays(1) {
		hours := byDay[day]
		bar := BarView{
			Date:    day.String(),
			Day:     day.Day(),
			Hours:   stats.Round1(hours),
			Weekend: isWeekend(day),
		}
		if peak > 0 {
			bar.Percent = int(math.Round(hours / peak * 100))
		}
		bars = append(bars, bar)
	}
	return bars
}

func BuildEntryViews(entries []worklog.Entry) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		out = append(out, EntryView{
			ID:          entry.ID,
			Date:        entry.Date.String(),
			Hours:       entry.HoursWorked,
			ProjectLink: entry.ProjectLink,
			Supervisor:  entry.Supervisor,
			Notes:       entry.Notes,
		})
	}
	return out
}

func BuildRedactedViews(entries []worklog.RedactedEntry) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		out = append(out, EntryView{
			Date:        entry.Date.String(),
			Hours:       entry.HoursWorked,
			ProjectLink: entry.ProjectLink,
			Supervisor:  entry.Supervisor,
			Notes:       entry.Notes,
		})
	}
	return out
}

func BuildStatsView(s worklog.MonthlyStats) StatsView {
	return StatsView{
		TotalHours:   stats.RoundedTotal(s),
		EntriesCount: s.EntriesCount,
		UniqueDays:   s.UniqueDays,
		AvgPerDay:    s.AvgPerDay,
	}
}

func isWeekend(day worklog.Date) bool {
	weekday := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC).Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}
