// Package businesstime converts timestamps exchanged with the booking API.
//
// The API carries wall-clock timestamps without a zone suffix
// ("2024-03-04T10:00:00"). They are always Europe/Madrid time, never UTC and
// never the caller's local zone.
package businesstime

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	// Zone of the play center.
	Zone = "Europe/Madrid"

	// APILayout is the timestamp layout used on the wire.
	APILayout = "2006-01-02T15:04:05"

	// DateLayout is the calendar date layout used on the wire.
	DateLayout = "2006-01-02"

	// MonthLayout is the year-month layout used in query strings.
	MonthLayout = "2006-01"
)

var (
	ErrInvalidTimestamp = errors.New("businesstime: invalid timestamp")
	ErrZoneSuffix       = errors.New("businesstime: timestamp must not carry a zone suffix")
	ErrNonexistentTime  = errors.New("businesstime: wall time does not exist in business zone")
)

var location = mustLoad(Zone)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("businesstime: load %s: %v", name, err))
	}
	return loc
}

// Location returns the business time zone.
func Location() *time.Location {
	return location
}

// ParseFromAPI parses s as Madrid wall time. Only the exact APILayout is
// accepted: fractional seconds, a trailing "Z" or a numeric offset are rejected,
// so ToAPIFormat(ParseFromAPI(s)) == s.
func ParseFromAPI(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(APILayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	rest := s[len(APILayout):]
	if strings.HasSuffix(s, "Z") || strings.ContainsAny(rest, "+-") {
		return time.Time{}, fmt.Errorf("%w: %q", ErrZoneSuffix, s)
	}
	if rest != "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	t, err := time.ParseInLocation(APILayout, s, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
	}

	// Times skipped by the spring DST jump get normalized by time.Date.
	if t.Format(APILayout) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNonexistentTime, s)
	}

	return t, nil
}

// ToAPIFormat formats t as Madrid wall time without a zone suffix.
func ToAPIFormat(t time.Time) string {
	return t.In(location).Format(APILayout)
}

// ParseDate parses "2006-01-02" as Madrid midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
	}
	return t, nil
}

// FormatDate formats the Madrid calendar date of t.
func FormatDate(t time.Time) string {
	return t.In(location).Format(DateLayout)
}

// ParseMonth parses "2006-01" and returns year and month.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(s), location)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
	}
	return t.Year(), t.Month(), nil
}

// Now returns the current time in the business zone.
func Now() time.Time {
	return time.Now().In(location)
}

// In converts t to the business zone.
func In(t time.Time) time.Time {
	return t.In(location)
}
