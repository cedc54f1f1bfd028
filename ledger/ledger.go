// Package ledger is the entry store: it owns creation, retrieval, update and
// removal of work entries, always scoped to the owning user.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"overtrack/storage"
	"overtrack/worklog"
)

// Repository is the subset of storage.Store the ledger works on.
type Repository interface {
	InsertEntry(entry worklog.Entry) error
	ListEntriesByUser(userID string) ([]worklog.Entry, error)
	GetEntry(id, userID string) (worklog.Entry, bool, error)
	UpdateEntry(entry worklog.Entry) error
	DeleteEntry(id, userID string) (bool, error)
	ReplaceUserEntries(userID string, entries []worklog.Entry) error
}

type Store struct {
	repo     Repository
	validate *validator.Validate
	newID    func() string
	now      func() time.Time

	// mu serializes every read-modify-write cycle on the entry collection.
	mu sync.Mutex
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides the entry ID source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func NewStore(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		validate: validator.New(),
		newID:    NewID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a time-ordered random identifier (UUIDv7).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Append stores a new entry for userID built from draft.
func (s *Store) Append(userID string, draft worklog.Draft) (worklog.Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return worklog.Entry{}, &worklog.ValidationError{Field: "userId", Reason: "is required"}
	}
	draft = normalizeDraft(draft)
	if err := s.validateDraft(draft); err != nil {
		return worklog.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := newEntry(s.newID(), userID, draft, s.now())
	if err := s.repo.InsertEntry(entry); err != nil {
		return worklog.Entry{}, fmt.Errorf("append entry: %w", err)
	}
	return entry, nil
}

// ListByUser returns userID's entries, most recent date first; entries on the
// same date keep their insertion order. A zero month returns every entry.
func (s *Store) ListByUser(userID string, month worklog.Month) ([]worklog.Entry, error) {
	entries, err := s.repo.ListEntriesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list entries of user %s: %w", userID, err)
	}

	if !month.IsZero() {
		filtered := entries[:0]
		for _, entry := range entries {
			if month.Contains(entry.Date) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// Update applies patch to the entry identified by (entryID, userID).
func (s *Store) Update(entryID, userID string, patch worklog.Patch) (worklog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found, err := s.repo.GetEntry(entryID, userID)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("load entry %s: %w", entryID, err)
	}
	if !found {
		return worklog.Entry{}, &worklog.NotFoundError{Resource: "entry", ID: entryID}
	}

	draft := normalizeDraft(patch.Apply(current.Draft()))
	if err := s.validateDraft(draft); err != nil {
		return worklog.Entry{}, err
	}

	updated := current
	updated.ProjectLink = draft.ProjectLink
	updated.HoursWorked = draft.HoursWorked
	updated.Supervisor = draft.Supervisor
	updated.Date = draft.Date
	updated.Notes = draft.Notes
	updated.UpdatedAt = s.now()

	if err := s.repo.UpdateEntry(updated); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return worklog.Entry{}, &worklog.NotFoundError{Resource: "entry", ID: entryID}
		}
		return worklog.Entry{}, fmt.Errorf("update entry %s: %w", entryID, err)
	}
	return updated, nil
}

// Remove deletes exactly the entry identified by (entryID, userID).
func (s *Store) Remove(entryID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.DeleteEntry(entryID, userID)
	if err != nil {
		return fmt.Errorf("remove entry %s: %w", entryID, err)
	}
	if !deleted {
		return &worklog.NotFoundError{Resource: "entry", ID: entryID}
	}
	return nil
}

// Export returns every entry of userID in ListByUser order.
func (s *Store) Export(userID string) ([]worklog.Entry, error) {
	return s.ListByUser(userID, worklog.Month{})
}

// Import replaces all of userID's entries with fresh records built from
// drafts. Nothing is written unless every draft is valid.
func (s *Store) Import(userID string, drafts []worklog.Draft) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, &worklog.ValidationError{Field: "userId", Reason: "is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entries := make([]worklog.Entry, 0, len(drafts))
	for i, draft := range drafts {
		draft = normalizeDraft(draft)
		if err := s.validateDraft(draft); err != nil {
			return 0, fmt.Errorf("import entry %d: %w", i+1, err)
		}
		entries = append(entries, newEntry(s.newID(), userID, draft, now))
	}

	if err := s.repo.ReplaceUserEntries(userID, entries); err != nil {
		return 0, fmt.Errorf("import entries of user %s: %w", userID, err)
	}
	return len(entries), nil
}

func (s *Store) validateDraft(draft worklog.Draft) error {
	if math.IsNaN(draft.HoursWorked) || math.IsInf(draft.HoursWorked, 0) {
		return &worklog.ValidationError{Field: "hoursWorked", Reason: "must be a finite number"}
	}
	if draft.HoursWorked <= 0 {
		return &worklog.ValidationError{Field: "hoursWorked", Reason: "must be greater than 0"}
	}
	if draft.Date.IsZero() {
		return &worklog.ValidationError{Field: "date", Reason: "is required"}
	}
	if err := s.validate.Struct(draft); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return &worklog.ValidationError{Field: lowerFirst(first.Field()), Reason: describeTag(first)}
		}
		return &worklog.ValidationError{Reason: err.Error()}
	}
	return nil
}

func newEntry(id, userID string, draft worklog.Draft, now time.Time) worklog.Entry {
	return worklog.Entry{
		ID:          id,
		UserID:      userID,
		ProjectLink: draft.ProjectLink,
		HoursWorked: draft.HoursWorked,
		Supervisor:  draft.Supervisor,
		Date:        draft.Date,
		Notes:       draft.Notes,
		CreatedAt:   now,
	}
}

func normalizeDraft(draft worklog.Draft) worklog.Draft {
	draft.ProjectLink = strings.TrimSpace(draft.ProjectLink)
	draft.Supervisor = strings.TrimSpace(draft.Supervisor)
	draft.Notes = strings.TrimSpace(draft.Notes)
	return draft
}

func describeTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "url":
		return "must be a valid URL"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "gt":
		return "must be greater than " + fieldErr.Param()
	default:
		return "failed " + fieldErr.Tag() + " check"
	}
}

func lowerFirst(value string) string {
	if value == "" {
		return value
	}
	return strings.ToLower(value[:1]) + value[1:]
}
