package stats

import (
	"math"
	"sort"
	"time"

	"overtrack/worklog"
)

// ComputeMonthlyStats reduces entries to their monthly statistics. Entries are
// grouped by their stored calendar date; the caller decides which month the
// entries belong to.
func ComputeMonthlyStats(entries []worklog.Entry) worklog.MonthlyStats {
	if len(entries) == 0 {
		return worklog.MonthlyStats{ChartData: []worklog.DayHours{}}
	}

	total := 0.0
	byDay := make(map[worklog.Date]float64)
	for _, entry := range entries {
		total += entry.HoursWorked
		byDay[entry.Date] += entry.HoursWorked
	}

	days := make([]worklog.Date, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	chart := make([]worklog.DayHours, 0, len(days))
	for _, day := range days {
		chart = append(chart, worklog.DayHours{Date: day, Hours: byDay[day]})
	}

	return worklog.MonthlyStats{
		TotalHours:   total,
		EntriesCount: len(entries),
		UniqueDays:   len(days),
		AvgPerDay:    averagePerDay(total, len(days)),
		ChartData:    chart,
	}
}

// Round1 rounds to one decimal, half away from zero.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// RoundedTotal is the one-decimal display value of s.TotalHours.
func RoundedTotal(s worklog.MonthlyStats) float64 {
	return Round1(s.TotalHours)
}

func averagePerDay(total float64, days int) float64 {
	if days == 0 {
		return 0
	}
	return Round1(total / float64(days))
}

// UserSummary is one row of the all-users overview.
type UserSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	TotalEntries int       `json:"totalEntries"`
	TotalHours   float64   `json:"totalHours"`
	LastEntry    time.Time `json:"lastEntry,omitzero"`
}

// SummarizeUsers totals every user's entries across all months. Users without
// entries are listed with zero totals.
func SummarizeUsers(users []worklog.User, entries []worklog.Entry) []UserSummary {
	byUser := make(map[string]*UserSummary, len(users))
	out := make([]UserSummary, len(users))
	for i, user := range users {
		out[i] = UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
		byUser[user.ID] = &out[i]
	}

	for _, entry := range entries {
		summary, ok := byUser[entry.UserID]
		if !ok {
			continue
		}
		summary.TotalEntries++
		summary.TotalHours += entry.HoursWorked
		if entry.CreatedAt.After(summary.LastEntry) {
			summary.LastEntry = entry.CreatedAt
		}
	}

	for i := range out {
		out[i].TotalHours = Round1(out[i].TotalHours)
	}
	return out
}
