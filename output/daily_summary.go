package output

import (
	"fmt"

	"overtrack/stats"
)

// DailySummary is one chart day with its running month total.
type DailySummary struct {
	Date       string
	Hours      float64
	Entries    int
	Cumulative float64
}

func BuildDailySummaries(report Report) []DailySummary {
	if len(report.Stats.ChartData) == 0 {
		return []DailySummary{}
	}

	counts := make(map[string]int, len(report.Stats.ChartData))
	for _, row := range report.Rows {
		counts[row.Date.String()]++
	}

	summaries := make([]DailySummary, 0, len(report.Stats.ChartData))
	running := 0.0
	for _, day := range report.Stats.ChartData {
		running += day.Hours
		date := day.Date.String()
		summaries = append(summaries, DailySummary{
			Date:       date,
			Hours:      day.Hours,
			Entries:    counts[date],
			Cumulative: stats.Round1(running),
		})
	}
	return summaries
}

func WriteDailySummaries(path, format string, summaries []DailySummary) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeDailySummariesCSV(path, summaries)
	default:
		return fmt.Errorf("unsupported output format for daily summaries: %s", format)
	}
}
