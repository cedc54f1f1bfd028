package dashboard

import (
	"errors"
	"testing"

	"overtrack/storage"
	"overtrack/worklog"
)

func newSeededService(t *testing.T) *Service {
	t.Helper()

	svc := New(storage.NewMemoryStore())
	result, err := svc.Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if result.Users != 2 || result.Entries != 22 {
		t.Fatalf("unexpected seed result: %+v", result)
	}
	return svc
}

func TestSeed_OnlyLoadsIntoEmptyStore(t *testing.T) {
	t.Parallel()

	svc := newSeededService(t)
	again, err := svc.Seed()
	if err != nil {
		t.Fatalf("seed again: %v", err)
	}
	if again.Users != 0 || again.Entries != 0 {
		t.Fatalf("expected no-op on seeded store, got %+v", again)
	}
}

func TestOverview(t *testing.T) {
	t.Parallel()

	svc := newSeededService(t)
	overview, err := svc.Overview("demo_user_1", worklog.MustParseMonth("2025-11"))
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.User.Name != "John Doe" {
		t.Fatalf("unexpected user: %+v", overview.User)
	}
	if len(overview.Entries) != 11 || overview.Stats.EntriesCount != 11 {
		t.Fatalf("expected 11 entries, got %d (stats %d)", len(overview.Entries), overview.Stats.EntriesCount)
	}
	if overview.Stats.TotalHours != 91.25 {
		t.Fatalf("expected 91.25 hours, got %v", overview.Stats.TotalHours)
	}
	if got := overview.Entries[0].Date.String(); got != "2025-11-24" {
		t.Fatalf("expected most recent entry first, got %s", got)
	}

	empty, err := svc.Overview("demo_user_1", worklog.MustParseMonth("2025-12"))
	if err != nil {
		t.Fatalf("overview december: %v", err)
	}
	if len(empty.Entries) != 0 || empty.Stats.TotalHours != 0 || empty.Stats.ChartData == nil {
		t.Fatalf("expected empty month, got %+v", empty)
	}

	if _, err := svc.Overview("ghost", worklog.MustParseMonth("2025-11")); !errors.Is(err, worklog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestShareMonth_ReturnsSameReport(t *testing.T) {
	t.Parallel()

	svc := newSeededService(t)
	month := worklog.MustParseMonth("2025-11")

	first, err := svc.ShareMonth("demo_user_2", month)
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if first.UserName != "Jane Smith" || len(first.Entries) != 11 {
		t.Fatalf("unexpected report: %+v", first)
	}

	if _, err := svc.Entries.Append("demo_user_2", worklog.Draft{HoursWorked: 3, Date: worklog.MustParseDate("2025-11-28")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := svc.ShareMonth("demo_user_2", month)
	if err != nil {
		t.Fatalf("share again: %v", err)
	}
	if second.ID != first.ID || len(second.Entries) != 11 {
		t.Fatalf("expected frozen report %s, got %s with %d entries", first.ID, second.ID, len(second.Entries))
	}

	resolved, found, err := svc.ResolveShare(first.ID)
	if err != nil || !found || resolved.Stats.TotalHours != first.Stats.TotalHours {
		t.Fatalf("resolve: %+v found=%v err=%v", resolved, found, err)
	}
}

func TestBackupRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newSeededService(t)
	backup, err := svc.ExportBackup("demo_user_1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(backup.Entries) != 11 || backup.User.ID != "demo_user_1" {
		t.Fatalf("unexpected backup: %+v", backup)
	}

	backup.Entries = backup.Entries[:3]
	imported, err := svc.ImportBackup("demo_user_1", backup)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 3 {
		t.Fatalf("expected 3 imported entries, got %d", imported)
	}

	remaining, err := svc.Entries.ListByUser("demo_user_1", worklog.Month{})
	if err != nil || len(remaining) != 3 {
		t.Fatalf("expected 3 remaining entries, got %d err=%v", len(remaining), err)
	}
	other, err := svc.Entries.ListByUser("demo_user_2", worklog.Month{})
	if err != nil || len(other) != 11 {
		t.Fatalf("import must not touch other users, got %d err=%v", len(other), err)
	}

	if _, err := svc.ImportBackup("demo_user_2", backup); !errors.Is(err, worklog.ErrValidation) {
		t.Fatalf("expected validation error for foreign backup, got %v", err)
	}
}

func TestUsersOverview(t *testing.T) {
	t.Parallel()

	svc := newSeededService(t)
	summaries, err := svc.UsersOverview()
	if err != nil {
		t.Fatalf("users overview: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	for _, summary := range summaries {
		if summary.TotalEntries != 11 {
			t.Fatalf("expected 11 entries for %s, got %d", summary.Name, summary.TotalEntries)
		}
	}
}
