package storage

import (
	"strings"
	"sync"

	"overtrack/worklog"
)

// MemoryStore keeps all collections in process memory. It mirrors the
// SQLite store's semantics and serves as the test double for it.
type MemoryStore struct {
	mu      sync.Mutex
	users   []worklog.User
	entries []worklog.Entry
	shares  []worklog.SharedReport
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) InsertUser(user worklog.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}
	s.users = append(s.users, user)
	return nil
}

func (s *MemoryStore) GetUserByID(id string) (worklog.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, true, nil
		}
	}
	return worklog.User{}, false, nil
}

func (s *MemoryStore) GetUserByEmail(email string) (worklog.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, true, nil
		}
	}
	return worklog.User{}, false, nil
}

func (s *MemoryStore) ListUsers() ([]worklog.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]worklog.User(nil), s.users...), nil
}

func (s *MemoryStore) InsertEntry(entry worklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStore) ListEntries() ([]worklog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]worklog.Entry(nil), s.entries...), nil
}

func (s *MemoryStore) ListEntriesByUser(userID string) ([]worklog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]worklog.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetEntry(id, userID string) (worklog.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.entryIndex(id, userID); i >= 0 {
		return s.entries[i], true, nil
	}
	return worklog.Entry{}, false, nil
}

func (s *MemoryStore) UpdateEntry(entry worklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.entryIndex(entry.ID, entry.UserID)
	if i < 0 {
		return ErrEntryNotFound
	}
	entry.CreatedAt = s.entries[i].CreatedAt
	s.entries[i] = entry
	return nil
}

func (s *MemoryStore) DeleteEntry(id, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.entryIndex(id, userID)
	if i < 0 {
		return false, nil
	}
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	return true, nil
}

func (s *MemoryStore) ReplaceUserEntries(userID string, entries []worklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]worklog.Entry, 0, len(s.entries)+len(entries))
	for _, entry := range s.entries {
		if entry.UserID != userID {
			kept = append(kept, entry)
		}
	}
	s.entries = append(kept, entries...)
	return nil
}

func (s *MemoryStore) InsertShareIfAbsent(report worklog.SharedReport) (worklog.SharedReport, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.shares {
		if existing.UserID == report.UserID && existing.Month == report.Month {
			return cloneReport(existing), false, nil
		}
	}
	s.shares = append(s.shares, cloneReport(report))
	return cloneReport(report), true, nil
}

func (s *MemoryStore) GetShareByID(id string) (worklog.SharedReport, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, report := range s.shares {
		if report.ID == id {
			return cloneReport(report), true, nil
		}
	}
	return worklog.SharedReport{}, false, nil
}

func (s *MemoryStore) GetShareByKey(userID string, month worklog.Month) (worklog.SharedReport, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, report := range s.shares {
		if report.UserID == userID && report.Month == month {
			return cloneReport(report), true, nil
		}
	}
	return worklog.SharedReport{}, false, nil
}

func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.entries = nil
	s.shares = nil
	return nil
}

func (s *MemoryStore) entryIndex(id, userID string) int {
	for i, entry := range s.entries {
		if entry.ID == id && entry.UserID == userID {
			return i
		}
	}
	return -1
}

// cloneReport detaches the report's slices so stored snapshots cannot be
// changed through a returned value.
func cloneReport(report worklog.SharedReport) worklog.SharedReport {
	report.Stats.ChartData = append([]worklog.DayHours{}, report.Stats.ChartData...)
	report.Entries = append([]worklog.RedactedEntry{}, report.Entries...)
	return report
}
