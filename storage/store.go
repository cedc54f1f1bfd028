package storage

import (
	"errors"
	"strings"

	"overtrack/worklog"
)

var (
	ErrEntryNotFound  = errors.New("entry not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// MemoryPath selects the in-memory store in Open.
const MemoryPath = ":memory:"

// Store owns the three persisted collections: users, work entries and shared
// reports. Entries are returned in insertion order.
type Store interface {
	InsertUser(user worklog.User) error
	GetUserByID(id string) (worklog.User, bool, error)
	GetUserByEmail(email string) (worklog.User, bool, error)
	ListUsers() ([]worklog.User, error)

	InsertEntry(entry worklog.Entry) error
	ListEntries() ([]worklog.Entry, error)
	ListEntriesByUser(userID string) ([]worklog.Entry, error)
	GetEntry(id, userID string) (worklog.Entry, bool, error)
	UpdateEntry(entry worklog.Entry) error
	DeleteEntry(id, userID string) (bool, error)
	ReplaceUserEntries(userID string, entries []worklog.Entry) error

	// InsertShareIfAbsent stores report unless one already exists for its
	// (UserID, Month). It returns the stored report and whether it was created.
	InsertShareIfAbsent(report worklog.SharedReport) (worklog.SharedReport, bool, error)
	GetShareByID(id string) (worklog.SharedReport, bool, error)
	GetShareByKey(userID string, month worklog.Month) (worklog.SharedReport, bool, error)

	Reset() error
	Close() error
}

// Open returns the SQLite store at path, or a fresh in-memory store for
// MemoryPath.
func Open(path string) (Store, error) {
	if strings.TrimSpace(path) == MemoryPath {
		return NewMemoryStore(), nil
	}
	return OpenSQLite(path)
}
