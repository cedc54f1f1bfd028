// Package share freezes a user's monthly statistics into a read-only report
// addressed by an opaque identifier.
package share

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"overtrack/worklog"
)

// QueryParam is the root-URL query parameter carrying a share ID.
const QueryParam = "share"

// Repository persists shared reports with at most one per (user, month).
type Repository interface {
	InsertShareIfAbsent(report worklog.SharedReport) (worklog.SharedReport, bool, error)
	GetShareByID(id string) (worklog.SharedReport, bool, error)
	GetShareByKey(userID string, month worklog.Month) (worklog.SharedReport, bool, error)
}

// UserLookup reports whether a user exists.
type UserLookup interface {
	GetUserByID(id string) (worklog.User, bool, error)
}

type Sharer struct {
	repo  Repository
	users UserLookup
	newID func() string
	now   func() time.Time

	mu sync.Mutex
}

type Option func(*Sharer)

// WithUserLookup makes GetOrCreate fail for users that do not exist.
func WithUserLookup(users UserLookup) Option {
	return func(s *Sharer) {
		s.users = users
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Sharer) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Sharer) {
		s.newID = newID
	}
}

func NewSharer(repo Repository, opts ...Option) *Sharer {
	s := &Sharer{
		repo:  repo,
		newID: newShareID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate returns the report already shared for (userID, month), or
// freezes stats and the redacted entries into a new one. An existing report is
// never refreshed.
func (s *Sharer) GetOrCreate(userID string, month worklog.Month, entries []worklog.Entry, stats worklog.MonthlyStats, userName string) (worklog.SharedReport, error) {
	if strings.TrimSpace(userID) == "" {
		return worklog.SharedReport{}, &worklog.ValidationError{Field: "userId", Reason: "is required"}
	}
	if month.IsZero() {
		return worklog.SharedReport{}, &worklog.ValidationError{Field: "month", Reason: "is required"}
	}
	if s.users != nil {
		_, found, err := s.users.GetUserByID(userID)
		if err != nil {
			return worklog.SharedReport{}, fmt.Errorf("look up user %s: %w", userID, err)
		}
		if !found {
			return worklog.SharedReport{}, &worklog.NotFoundError{Resource: "user", ID: userID}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found, err := s.repo.GetShareByKey(userID, month)
	if err != nil {
		return worklog.SharedReport{}, fmt.Errorf("look up shared report: %w", err)
	}
	if found {
		return existing, nil
	}

	report := worklog.SharedReport{
		ID:        s.newID(),
		UserID:    userID,
		Month:     month,
		UserName:  userName,
		Stats:     freezeStats(stats),
		Entries:   redact(entries),
		CreatedAt: s.now(),
	}

	stored, _, err := s.repo.InsertShareIfAbsent(report)
	if err != nil {
		return worklog.SharedReport{}, fmt.Errorf("store shared report: %w", err)
	}
	return stored, nil
}

// Resolve looks up a report by ID. An unknown ID is reported through the
// boolean, not as an error.
func (s *Sharer) Resolve(shareID string) (worklog.SharedReport, bool, error) {
	shareID = strings.TrimSpace(shareID)
	if shareID == "" {
		return worklog.SharedReport{}, false, nil
	}
	report, found, err := s.repo.GetShareByID(shareID)
	if err != nil {
		return worklog.SharedReport{}, false, fmt.Errorf("resolve shared report %s: %w", shareID, err)
	}
	return report, found, nil
}

// URL returns the public link for shareID below baseURL.
func URL(baseURL, shareID string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return base + "/?" + url.Values{QueryParam: {shareID}}.Encode()
}

func newShareID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func freezeStats(stats worklog.MonthlyStats) worklog.MonthlyStats {
	frozen := stats
	frozen.ChartData = append(make([]worklog.DayHours, 0, len(stats.ChartData)), stats.ChartData...)
	return frozen
}

func redact(entries []worklog.Entry) []worklog.RedactedEntry {
	out := make([]worklog.RedactedEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Redacted())
	}
	return out
}
