package share_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"overtrack/ledger"
	"overtrack/share"
	"overtrack/stats"
	"overtrack/storage"
	"overtrack/worklog"
)

type fixture struct {
	repo   *storage.MemoryStore
	ledger *ledger.Store
	sharer *share.Sharer
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	repo := storage.NewMemoryStore()
	if err := repo.InsertUser(worklog.User{ID: "u1", Name: "John Doe", Email: "john.doe@example.com", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return fixture{
		repo:   repo,
		ledger: ledger.NewStore(repo),
		sharer: share.NewSharer(repo, share.WithUserLookup(repo)),
	}
}

func (f fixture) shareMonth(t *testing.T, userID string, month worklog.Month) worklog.SharedReport {
	t.Helper()

	entries, err := f.ledger.ListByUser(userID, month)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	report, err := f.sharer.GetOrCreate(userID, month, entries, stats.ComputeMonthlyStats(entries), "John Doe")
	if err != nil {
		t.Fatalf("share month: %v", err)
	}
	return report
}

func (f fixture) log(t *testing.T, day string, hours float64) {
	t.Helper()
	_, err := f.ledger.Append("u1", worklog.Draft{
		ProjectLink: "https://jira.company.com/browse/API-123",
		HoursWorked: hours,
		Supervisor:  "Sarah Johnson",
		Date:        worklog.MustParseDate(day),
	})
	if err != nil {
		t.Fatalf("append entry: %v", err)
	}
}

func TestGetOrCreate_IsIdempotentAndFrozen(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	month := worklog.MustParseMonth("2025-11")
	f.log(t, "2025-11-01", 8.5)
	f.log(t, "2025-11-03", 6.0)
	f.log(t, "2025-11-05", 9.25)

	first := f.shareMonth(t, "u1", month)
	second := f.shareMonth(t, "u1", month)
	if first.ID == "" || first.ID != second.ID {
		t.Fatalf("expected identical ids, got %q and %q", first.ID, second.ID)
	}

	f.log(t, "2025-11-20", 4)
	third := f.shareMonth(t, "u1", month)
	if third.ID != first.ID {
		t.Fatalf("expected original snapshot id %q, got %q", first.ID, third.ID)
	}
	if len(third.Entries) != 3 {
		t.Fatalf("expected 3 frozen entries, got %d", len(third.Entries))
	}
	if third.Stats.TotalHours != 23.75 || third.Stats.EntriesCount != 3 {
		t.Fatalf("expected frozen stats, got %+v", third.Stats)
	}
	if !third.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("snapshot must not be refreshed")
	}
}

func TestGetOrCreate_RedactsIdentifiers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.log(t, "2025-11-01", 8.5)

	report := f.shareMonth(t, "u1", worklog.MustParseMonth("2025-11"))
	raw, err := json.Marshal(report.Entries)
	if err != nil {
		t.Fatalf("marshal entries: %v", err)
	}
	text := string(raw)
	for _, forbidden := range []string{`"id"`, `"userId"`} {
		if strings.Contains(text, forbidden) {
			t.Fatalf("redacted entries leak %s: %s", forbidden, text)
		}
	}
	if report.Entries[0].HoursWorked != 8.5 || report.Entries[0].Supervisor != "Sarah Johnson" {
		t.Fatalf("redacted entry lost data: %+v", report.Entries[0])
	}
	if report.UserName != "John Doe" {
		t.Fatalf("expected denormalized user name, got %q", report.UserName)
	}
}

func TestGetOrCreate_SeparatesMonths(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.log(t, "2025-10-31", 2)
	f.log(t, "2025-11-01", 8.5)

	october := f.shareMonth(t, "u1", worklog.MustParseMonth("2025-10"))
	november := f.shareMonth(t, "u1", worklog.MustParseMonth("2025-11"))
	if october.ID == november.ID {
		t.Fatalf("different months must get different reports")
	}
	if october.Stats.TotalHours != 2 || november.Stats.TotalHours != 8.5 {
		t.Fatalf("unexpected totals: oct=%v nov=%v", october.Stats.TotalHours, november.Stats.TotalHours)
	}
}

func TestGetOrCreate_UnknownUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.sharer.GetOrCreate("ghost", worklog.MustParseMonth("2025-11"), nil, stats.ComputeMonthlyStats(nil), "")
	var notFound *worklog.NotFoundError
	if !errors.As(err, &notFound) || notFound.Resource != "user" {
		t.Fatalf("expected user NotFoundError, got %v", err)
	}
}

func TestGetOrCreate_RequiresMonth(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.sharer.GetOrCreate("u1", worklog.Month{}, nil, stats.ComputeMonthlyStats(nil), "John Doe")
	if !errors.Is(err, worklog.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.log(t, "2025-11-01", 8.5)
	created := f.shareMonth(t, "u1", worklog.MustParseMonth("2025-11"))

	got, found, err := f.sharer.Resolve(created.ID)
	if err != nil || !found || got.ID != created.ID {
		t.Fatalf("resolve: %+v found=%v err=%v", got, found, err)
	}

	for _, id := range []string{"never-issued", ""} {
		_, found, err := f.sharer.Resolve(id)
		if err != nil {
			t.Fatalf("resolve %q: expected no error, got %v", id, err)
		}
		if found {
			t.Fatalf("resolve %q: expected absent", id)
		}
	}
}

func TestURL(t *testing.T) {
	t.Parallel()

	got := share.URL("http://localhost:8080/", "0190-abc")
	if got != "http://localhost:8080/?share=0190-abc" {
		t.Fatalf("unexpected url %q", got)
	}
}
