package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"overtrack/worklog"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := RunMigrations(path); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertUser(user worklog.User) error {
	const insertStmt = `
INSERT INTO users (id, name, email, password, created_at)
VALUES (?, ?, ?, ?, ?);`

	_, err := s.db.Exec(insertStmt, user.ID, user.Name, user.Email, user.Password, formatTime(user.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetUserByID(id string) (worklog.User, bool, error) {
	return s.getUser(`SELECT id, name, email, password, created_at FROM users WHERE id = ?;`, id)
}

func (s *SQLiteStore) GetUserByEmail(email string) (worklog.User, bool, error) {
	return s.getUser(`SELECT id, name, email, password, created_at FROM users WHERE email = ?;`, strings.TrimSpace(email))
}

func (s *SQLiteStore) getUser(query string, arg string) (worklog.User, bool, error) {
	user, err := scanUser(s.db.QueryRow(query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.User{}, false, nil
		}
		return worklog.User{}, false, fmt.Errorf("query user %q: %w", arg, err)
	}
	return user, true, nil
}

func (s *SQLiteStore) ListUsers() ([]worklog.User, error) {
	rows, err := s.db.Query(`SELECT id, name, email, password, created_at FROM users ORDER BY created_at, id;`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]worklog.User, 0, 16)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

const insertEntryStmt = `
INSERT INTO entries (
	id,
	user_id,
	project_link,
	hours_worked,
	supervisor,
	entry_date,
	notes,
	created_at,
	updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

const selectEntryColumns = `
SELECT
	id,
	user_id,
	project_link,
	hours_worked,
	supervisor,
	entry_date,
	notes,
	created_at,
	updated_at
FROM entries`

func (s *SQLiteStore) InsertEntry(entry worklog.Entry) error {
	if _, err := s.db.Exec(insertEntryStmt, entryArgs(entry)...); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListEntries() ([]worklog.Entry, error) {
	return s.queryEntries(selectEntryColumns + ` ORDER BY seq;`)
}

func (s *SQLiteStore) ListEntriesByUser(userID string) ([]worklog.Entry, error) {
	return s.queryEntries(selectEntryColumns+` WHERE user_id = ? ORDER BY seq;`, userID)
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]worklog.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]worklog.Entry, 0, 64)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// GetEntry returns the entry with the given ID when it belongs to userID.
func (s *SQLiteStore) GetEntry(id, userID string) (worklog.Entry, bool, error) {
	entry, err := scanEntry(s.db.QueryRow(selectEntryColumns+` WHERE id = ? AND user_id = ?;`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.Entry{}, false, nil
		}
		return worklog.Entry{}, false, fmt.Errorf("query entry %s: %w", id, err)
	}
	return entry, true, nil
}

// UpdateEntry replaces all editable fields of the row matching entry.ID and
// entry.UserID.
func (s *SQLiteStore) UpdateEntry(entry worklog.Entry) error {
	const updateStmt = `
UPDATE entries
SET project_link = ?,
	hours_worked = ?,
	supervisor = ?,
	entry_date = ?,
	notes = ?,
	updated_at = ?
WHERE id = ? AND user_id = ?;`

	res, err := s.db.Exec(
		updateStmt,
		entry.ProjectLink,
		entry.HoursWorked,
		entry.Supervisor,
		entry.Date.String(),
		entry.Notes,
		formatTime(entry.UpdatedAt),
		entry.ID,
		entry.UserID,
	)
	if err != nil {
		return fmt.Errorf("update entry %s: %w", entry.ID, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated row count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteEntry removes the row matching both id and userID.
func (s *SQLiteStore) DeleteEntry(id, userID string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ? AND user_id = ?;`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete entry %s: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

// ReplaceUserEntries swaps all of userID's entries for entries in one
// transaction.
func (s *SQLiteStore) ReplaceUserEntries(userID string, entries []worklog.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM entries WHERE user_id = ?;`, userID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete entries of user %s: %w", userID, err)
	}

	stmt, err := tx.Prepare(insertEntryStmt)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.Exec(entryArgs(entry)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const selectShareColumns = `
SELECT
	id,
	user_id,
	month,
	user_name,
	stats_json,
	entries_json,
	created_at
FROM shared_reports`

func (s *SQLiteStore) InsertShareIfAbsent(report worklog.SharedReport) (worklog.SharedReport, bool, error) {
	statsJSON, err := json.Marshal(report.Stats)
	if err != nil {
		return worklog.SharedReport{}, false, fmt.Errorf("encode share stats: %w", err)
	}
	entriesJSON, err := json.Marshal(report.Entries)
	if err != nil {
		return worklog.SharedReport{}, false, fmt.Errorf("encode share entries: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return worklog.SharedReport{}, false, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT INTO shared_reports (id, user_id, month, user_name, stats_json, entries_json, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, month) DO NOTHING;`

	res, err := tx.Exec(
		insertStmt,
		report.ID,
		report.UserID,
		report.Month.String(),
		report.UserName,
		string(statsJSON),
		string(entriesJSON),
		formatTime(report.CreatedAt),
	)
	if err != nil {
		_ = tx.Rollback()
		return worklog.SharedReport{}, false, fmt.Errorf("insert shared report: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return worklog.SharedReport{}, false, fmt.Errorf("read inserted row count: %w", err)
	}

	stored, err := scanShare(tx.QueryRow(selectShareColumns+` WHERE user_id = ? AND month = ?;`, report.UserID, report.Month.String()))
	if err != nil {
		_ = tx.Rollback()
		return worklog.SharedReport{}, false, fmt.Errorf("query shared report: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return worklog.SharedReport{}, false, fmt.Errorf("commit transaction: %w", err)
	}
	return stored, inserted > 0, nil
}

func (s *SQLiteStore) GetShareByID(id string) (worklog.SharedReport, bool, error) {
	return s.getShare(selectShareColumns+` WHERE id = ?;`, id)
}

func (s *SQLiteStore) GetShareByKey(userID string, month worklog.Month) (worklog.SharedReport, bool, error) {
	return s.getShare(selectShareColumns+` WHERE user_id = ? AND month = ?;`, userID, month.String())
}

func (s *SQLiteStore) getShare(query string, args ...any) (worklog.SharedReport, bool, error) {
	report, err := scanShare(s.db.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.SharedReport{}, false, nil
		}
		return worklog.SharedReport{}, false, fmt.Errorf("query shared report: %w", err)
	}
	return report, true, nil
}

// Reset deletes every row of every collection.
func (s *SQLiteStore) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	for _, table := range []string{"shared_reports", "entries", "users"} {
		if _, err := tx.Exec(`DELETE FROM ` + table + `;`); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func entryArgs(entry worklog.Entry) []any {
	return []any{
		entry.ID,
		entry.UserID,
		entry.ProjectLink,
		entry.HoursWorked,
		entry.Supervisor,
		entry.Date.String(),
		entry.Notes,
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
	}
}

func scanUser(row rowScanner) (worklog.User, error) {
	var (
		user       worklog.User
		createdRaw string
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &createdRaw); err != nil {
		return worklog.User{}, err
	}
	createdAt, err := parseTime(createdRaw)
	if err != nil {
		return worklog.User{}, err
	}
	user.CreatedAt = createdAt
	return user, nil
}

func scanEntry(row rowScanner) (worklog.Entry, error) {
	var (
		entry      worklog.Entry
		dateRaw    string
		createdRaw string
		updatedRaw string
	)
	if err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.ProjectLink,
		&entry.HoursWorked,
		&entry.Supervisor,
		&dateRaw,
		&entry.Notes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return worklog.Entry{}, err
	}

	date, err := worklog.ParseDate(dateRaw)
	if err != nil {
		return worklog.Entry{}, err
	}
	entry.Date = date
	if entry.CreatedAt, err = parseTime(createdRaw); err != nil {
		return worklog.Entry{}, err
	}
	if entry.UpdatedAt, err = parseTime(updatedRaw); err != nil {
		return worklog.Entry{}, err
	}
	return entry, nil
}

func scanShare(row rowScanner) (worklog.SharedReport, error) {
	var (
		report      worklog.SharedReport
		monthRaw    string
		statsJSON   string
		entriesJSON string
		createdRaw  string
	)
	if err := row.Scan(
		&report.ID,
		&report.UserID,
		&monthRaw,
		&report.UserName,
		&statsJSON,
		&entriesJSON,
		&createdRaw,
	); err != nil {
		return worklog.SharedReport{}, err
	}

	month, err := worklog.ParseMonth(monthRaw)
	if err != nil {
		return worklog.SharedReport{}, err
	}
	report.Month = month
	if err := json.Unmarshal([]byte(statsJSON), &report.Stats); err != nil {
		return worklog.SharedReport{}, fmt.Errorf("decode share stats: %w", err)
	}
	if err := json.Unmarshal([]byte(entriesJSON), &report.Entries); err != nil {
		return worklog.SharedReport{}, fmt.Errorf("decode share entries: %w", err)
	}
	if report.CreatedAt, err = parseTime(createdRaw); err != nil {
		return worklog.SharedReport{}, err
	}
	return report, nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return parsed, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
