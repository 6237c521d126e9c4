// Package calendar groups dated records into month and week buckets and
// projects slot availability onto the days of a month.
//
// Weeks start on Monday. All functions are pure: they never mutate their
// inputs and, given the same "now", always return the same result.
package calendar

import (
	"fmt"
	"time"
)

// Bucket is the week and month a date falls into.
// End bounds are inclusive (last nanosecond of the period).
type Bucket struct {
	WeekStart  time.Time
	WeekEnd    time.Time
	MonthStart time.Time
	MonthEnd   time.Time
}

// Classify returns the bucket of t in t's location.
// ok is false for the zero time, which callers must skip.
func Classify(t time.Time) (b Bucket, ok bool) {
	if t.IsZero() {
		return Bucket{}, false
	}
	return Bucket{
		WeekStart:  WeekStart(t),
		WeekEnd:    WeekEnd(t),
		MonthStart: MonthStart(t),
		MonthEnd:   MonthEnd(t),
	}, true
}

// Midnight truncates t to the start of its day
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns Monday 00:00 of the week containing t
func WeekStart(t time.Time) time.Time {
	day := Midnight(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the last instant of Sunday of the week containing t
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// MonthStart returns the first day of t's month at 00:00
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last instant of t's month
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// YearMonth identifies a calendar month
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Key is the bucket key of the month, e.g. "2024-03"
func (ym YearMonth) Key() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) String() string {
	return ym.Key()
}

// Start returns the first instant of the month in loc
func (ym YearMonth) Start(loc *time.Location) time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
}

// End returns the first instant of the following month in loc (exclusive bound)
func (ym YearMonth) End(loc *time.Location) time.Time {
	return ym.Start(loc).AddDate(0, 1, 0)
}

// AddMonths shifts the month by n (negative goes back)
func (ym YearMonth) AddMonths(n int) YearMonth {
	t := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return YearMonthOf(t)
}

// Before reports whether ym is earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Days returns the number of days in the month
func (ym YearMonth) Days() int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseYearMonth parses a month key "2006-01"
func ParseYearMonth(key string) (YearMonth, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return YearMonth{}, fmt.Errorf("calendar: invalid month key %q: %w", key, err)
	}
	return YearMonthOf(t), nil
}

// TrailingMonths returns the month of now followed by the n previous months
func TrailingMonths(now time.Time, n int) []YearMonth {
	if n < 0 {
		n = 0
	}
	current := YearMonthOf(now)
	out := make([]YearMonth, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, current.AddMonths(-i))
	}
	return out
}

// MonthsBetween returns every month intersecting [from, to], oldest first
func MonthsBetween(from, to time.Time) []YearMonth {
	if to.Before(from) {
		from, to = to, from
	}
	first, last := YearMonthOf(from), YearMonthOf(to)

	var out []YearMonth
	for ym := first; !last.Before(ym); ym = ym.AddMonths(1) {
		out = append(out, ym)
	}
	return out
}

// WeekKey is the bucket key of a week inside a month, e.g. "2024-03/2024-02-26".
// A week crossing a month boundary yields one key per month.
func WeekKey(month YearMonth, weekStart time.Time) string {
	return month.Key() + "/" + weekStart.Format("2006-01-02")
}
