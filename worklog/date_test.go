package worklog

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2025-11-01", want: "2025-11-01"},
		{input: "2024-02-29", want: "2024-02-29"},
		{input: "2025-02-29", wantErr: true},
		{input: "2025-13-01", wantErr: true},
		{input: "2025-1-01", wantErr: true},
		{input: "01.11.2025", wantErr: true},
		{input: "2025-11-01T00:00:00Z", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseDate(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.input, err)
		}
		if got.String() != tt.want {
			t.Fatalf("ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDateOf_UsesCalendarDayOfLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-8", -8*60*60)
	late := time.Date(2025, 11, 30, 23, 30, 0, 0, loc)
	if got := DateOf(late).String(); got != "2025-11-30" {
		t.Fatalf("expected 2025-11-30, got %s", got)
	}
}

func TestDate_CompareAndMonth(t *testing.T) {
	t.Parallel()

	a := MustParseDate("2025-10-31")
	b := MustParseDate("2025-11-01")
	if !a.Before(b) || !b.After(a) || a.Compare(a) != 0 {
		t.Fatalf("unexpected ordering between %s and %s", a, b)
	}
	if a.CalendarMonth() == b.CalendarMonth() {
		t.Fatalf("expected different months")
	}
	if !MustParseMonth("2025-11").Contains(b) {
		t.Fatalf("expected 2025-11 to contain %s", b)
	}
	if MustParseMonth("2025-11").Contains(a) {
		t.Fatalf("expected 2025-11 not to contain %s", a)
	}
	if got := a.AddDays(1); got != b {
		t.Fatalf("expected %s, got %s", b, got)
	}
}

func TestMonth_Navigation(t *testing.T) {
	t.Parallel()

	m := MustParseMonth("2025-01")
	if got := m.Previous().String(); got != "2024-12" {
		t.Fatalf("expected 2024-12, got %s", got)
	}
	if got := MustParseMonth("2025-12").Next().String(); got != "2026-01" {
		t.Fatalf("expected 2026-01, got %s", got)
	}
	if got := MustParseMonth("2024-02").LastDay().String(); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", got)
	}
	if _, err := ParseMonth("2025-00"); err == nil {
		t.Fatalf("expected error for month 00")
	}
}

func TestDate_JSONRoundTripKeepsCalendarDay(t *testing.T) {
	t.Parallel()

	in := Entry{ID: "e1", Date: MustParseDate("2025-11-05"), HoursWorked: 9.25}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Entry
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Date != in.Date {
		t.Fatalf("expected %s, got %s", in.Date, out.Date)
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	t.Parallel()

	var err error = &NotFoundError{Resource: "entry", ID: "x"}
	if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected sentinel matching for %v", err)
	}
	err = &ValidationError{Field: "hoursWorked", Reason: "must be greater than 0"}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation sentinel for %v", err)
	}
	err = &ConflictError{Resource: "user", Key: "a@b.c"}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict sentinel for %v", err)
	}
}
