package worklog

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// Date is a calendar day without time-of-day or location. Two dates are the
// same day exactly when their values are equal.
type Date struct {
	year  int
	month time.Month
	day   int
}

// Month is a calendar year-month used as aggregation and filter key. The zero
// Month means "no month".
type Month struct {
	year  int
	month time.Month
}

func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, fmt.Errorf("year %d out of range", year)
	}
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	return Date{year: year, month: month, day: day}, nil
}

// ParseDate parses a strict YYYY-MM-DD value.
func ParseDate(value string) (Date, error) {
	if len(value) != 10 || value[4] != '-' || value[7] != '-' {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	year, errY := parseDigits(value[0:4])
	month, errM := parseDigits(value[5:7])
	day, errD := parseDigits(value[8:10])
	if errY != nil || errM != nil || errD != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	date, err := NewDate(year, time.Month(month), day)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return date, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(value string) Date {
	date, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return date
}

// DateOf returns the calendar day of t as seen in t's own location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{year: year, month: month, day: day}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Year() int {
	return d.year
}

func (d Date) Month() time.Month {
	return d.month
}

func (d Date) Day() int {
	return d.day
}

// CalendarMonth returns the month the date falls in.
func (d Date) CalendarMonth() Month {
	return Month{year: d.year, month: d.month}
}

func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return compareInts(d.year, other.year)
	case d.month != other.month:
		return compareInts(int(d.month), int(other.month))
	default:
		return compareInts(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case string:
		return d.UnmarshalText([]byte(value))
	case []byte:
		return d.UnmarshalText(value)
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("scan date: unsupported source type %T", src)
	}
}

func NewMonth(year int, month time.Month) (Month, error) {
	if year < 1 || year > 9999 {
		return Month{}, fmt.Errorf("year %d out of range", year)
	}
	if month < time.January || month > time.December {
		return Month{}, fmt.Errorf("month %d out of range", month)
	}
	return Month{year: year, month: month}, nil
}

// ParseMonth parses a strict YYYY-MM value.
func ParseMonth(value string) (Month, error) {
	if len(value) != 7 || value[4] != '-' {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", value)
	}
	year, errY := parseDigits(value[0:4])
	month, errM := parseDigits(value[5:7])
	if errY != nil || errM != nil {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", value)
	}
	parsed, err := NewMonth(year, time.Month(month))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", value, err)
	}
	return parsed, nil
}

// MustParseMonth is ParseMonth for literals known to be valid.
func MustParseMonth(value string) Month {
	month, err := ParseMonth(value)
	if err != nil {
		panic(err)
	}
	return month
}

// MonthOf returns the calendar month of t as seen in t's own location.
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

func (m Month) IsZero() bool {
	return m == Month{}
}

func (m Month) Year() int {
	return m.year
}

func (m Month) Month() time.Month {
	return m.month
}

// Contains reports whether d falls in m.
func (m Month) Contains(d Date) bool {
	return d.year == m.year && d.month == m.month
}

func (m Month) FirstDay() Date {
	return Date{year: m.year, month: m.month, day: 1}
}

func (m Month) LastDay() Date {
	return Date{year: m.year, month: m.month, day: daysIn(m.year, m.month)}
}

func (m Month) Previous() Month {
	if m.month == time.January {
		return Month{year: m.year - 1, month: time.December}
	}
	return Month{year: m.year, month: m.month - 1}
}

func (m Month) Next() Month {
	if m.month == time.December {
		return Month{year: m.year + 1, month: time.January}
	}
	return Month{year: m.year, month: m.month + 1}
}

func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.year, m.month)
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = Month{}
		return nil
	}
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func parseDigits(value string) (int, error) {
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit in %q", value)
		}
	}
	return strconv.Atoi(value)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
