// Package dashboard wires the entry store, the aggregator and the sharer into
// the per-user monthly operations used by the web server and the CLI.
package dashboard

import (
	"fmt"
	"time"

	"overtrack/account"
	"overtrack/ledger"
	"overtrack/share"
	"overtrack/stats"
	"overtrack/storage"
	"overtrack/worklog"
)

type Service struct {
	store    storage.Store
	Accounts *account.Service
	Entries  *ledger.Store
	Sharer   *share.Sharer

	now func() time.Time
}

// Overview is one user's month: entries (most recent first) and their stats.
type Overview struct {
	User    worklog.Profile      `json:"user"`
	Month   worklog.Month        `json:"month"`
	Entries []worklog.Entry      `json:"entries"`
	Stats   worklog.MonthlyStats `json:"stats"`
}

// Backup is the portable form of one user's entries.
type Backup struct {
	User       worklog.Profile `json:"user"`
	Entries    []worklog.Entry `json:"entries"`
	ExportedAt time.Time       `json:"exportedAt"`
}

func New(store storage.Store) *Service {
	return &Service{
		store:    store,
		Accounts: account.NewService(store),
		Entries:  ledger.NewStore(store),
		Sharer:   share.NewSharer(store, share.WithUserLookup(store)),
		now:      time.Now,
	}
}

func (s *Service) Overview(userID string, month worklog.Month) (Overview, error) {
	if month.IsZero() {
		return Overview{}, &worklog.ValidationError{Field: "month", Reason: "is required"}
	}
	user, err := s.Accounts.Lookup(userID)
	if err != nil {
		return Overview{}, err
	}

	entries, err := s.Entries.ListByUser(userID, month)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		User:    user,
		Month:   month,
		Entries: entries,
		Stats:   stats.ComputeMonthlyStats(entries),
	}, nil
}

// ShareMonth returns the shared report of userID's month, creating it on the
// first request.
func (s *Service) ShareMonth(userID string, month worklog.Month) (worklog.SharedReport, error) {
	overview, err := s.Overview(userID, month)
	if err != nil {
		return worklog.SharedReport{}, err
	}
	return s.Sharer.GetOrCreate(userID, month, overview.Entries, overview.Stats, overview.User.Name)
}

func (s *Service) ResolveShare(shareID string) (worklog.SharedReport, bool, error) {
	return s.Sharer.Resolve(shareID)
}

func (s *Service) ExportBackup(userID string) (Backup, error) {
	user, err := s.Accounts.Lookup(userID)
	if err != nil {
		return Backup{}, err
	}
	entries, err := s.Entries.Export(userID)
	if err != nil {
		return Backup{}, err
	}
	return Backup{User: user, Entries: entries, ExportedAt: s.now()}, nil
}

// ImportBackup replaces userID's entries with those of backup. The backup must
// have been exported for the same user.
func (s *Service) ImportBackup(userID string, backup Backup) (int, error) {
	if _, err := s.Accounts.Lookup(userID); err != nil {
		return 0, err
	}
	if backup.User.ID != userID {
		return 0, &worklog.ValidationError{Field: "user", Reason: "backup belongs to a different user"}
	}

	drafts := make([]worklog.Draft, 0, len(backup.Entries))
	for _, entry := range backup.Entries {
		drafts = append(drafts, entry.Draft())
	}
	return s.Entries.Import(userID, drafts)
}

// ImportDrafts appends drafts to userID's entries and returns how many were
// stored before the first failure.
func (s *Service) ImportDrafts(userID string, drafts []worklog.Draft) (int, error) {
	if _, err := s.Accounts.Lookup(userID); err != nil {
		return 0, err
	}
	for i, draft := range drafts {
		if _, err := s.Entries.Append(userID, draft); err != nil {
			return i, fmt.Errorf("store imported entry %d: %w", i+1, err)
		}
	}
	return len(drafts), nil
}

func (s *Service) UsersOverview() ([]stats.UserSummary, error) {
	users, err := s.store.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	entries, err := s.store.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return stats.SummarizeUsers(users, entries), nil
}

// Reset removes all users, entries and shared reports.
func (s *Service) Reset() error {
	if err := s.store.Reset(); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	return nil
}
