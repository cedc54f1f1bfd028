package worklog

import "time"

// DayHours is one bar of the monthly chart.
type DayHours struct {
	Date  Date    `json:"date"`
	Hours float64 `json:"hours"`
}

// MonthlyStats is derived from a set of entries and never stored on its own.
// TotalHours keeps full precision; AvgPerDay is rounded to one decimal.
type MonthlyStats struct {
	TotalHours   float64    `json:"totalHours"`
	EntriesCount int        `json:"entriesCount"`
	UniqueDays   int        `json:"uniqueDays"`
	AvgPerDay    float64    `json:"avgPerDay"`
	ChartData    []DayHours `json:"chartData"`
}

// SharedReport is the frozen, publicly addressable snapshot of one user's month.
type SharedReport struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Month     Month           `json:"month"`
	UserName  string          `json:"userName"`
	Stats     MonthlyStats    `json:"stats"`
	Entries   []RedactedEntry `json:"entries"`
	CreatedAt time.Time       `json:"createdAt"`
}
