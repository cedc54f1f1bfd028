package cmd

import (
	"fmt"
	"strings"
	"time"

	"overtrack/config"
	"overtrack/dashboard"
	"overtrack/internal/timeutil"
	"overtrack/storage"
	"overtrack/worklog"
)

// openDashboard loads the configuration and opens the configured store. The
// returned close function must be called when the command is done.
func openDashboard() (*dashboard.Service, *config.Config, func(), error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	closeStore := func() {
		_ = store.Close()
	}
	return dashboard.New(store), cfg, closeStore, nil
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("--user is required")
	}
	return nil
}

func resolveMonthFlag(raw string) (worklog.Month, error) {
	return timeutil.ResolveMonth(raw, time.Now())
}

func printStats(stats worklog.MonthlyStats, total float64) {
	fmt.Printf("Total hours: %.1f\n", total)
	fmt.Printf("Entries: %d\n", stats.EntriesCount)
	fmt.Printf("Days worked: %d\n", stats.UniqueDays)
	fmt.Printf("Average per day: %.1f\n", stats.AvgPerDay)
}
