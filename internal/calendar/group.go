package calendar

import (
	"sort"
	"time"

	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// WeekOrder controls the order of week buckets inside a month
type WeekOrder string

const (
	WeeksDescending WeekOrder = "desc"
	WeeksAscending  WeekOrder = "asc"
)

// ParseWeekOrder maps "asc"/"desc" to a WeekOrder; anything else is descending
func ParseWeekOrder(s string) WeekOrder {
	if s == string(WeeksAscending) {
		return WeeksAscending
	}
	return WeeksDescending
}

// MonthState reports progressive-loading state of a month key
type MonthState interface {
	IsLoaded(key string) bool
	IsLoading(key string) bool
}

// AllLoaded is a MonthState for data that is fully resident (server side)
type AllLoaded struct{}

func (AllLoaded) IsLoaded(string) bool  { return true }
func (AllLoaded) IsLoading(string) bool { return false }

// TrailingWindow asks for the month of Now and Months previous months to be
// present in the output even when they hold no items.
type TrailingWindow struct {
	Now    time.Time
	Months int
}

// StatusCounts counts bucket items per status value
type StatusCounts map[string]int

// Count returns the number of items with the given status
func (c StatusCounts) Count(status string) int {
	return c[status]
}

// Options configures GroupByMonthThenWeek
type Options[T any] struct {
	// Date returns the effective date of an item. Zero dates are skipped.
	Date func(T) time.Time
	// Time optionally breaks ties between items of the same date.
	Time func(T) time.Time
	// Status optionally feeds the per-bucket status counts.
	Status func(T) string
	// Location in which days, weeks and months are computed. Defaults to the business zone.
	Location *time.Location
	// State fills IsLoaded/IsLoading of month buckets. Defaults to AllLoaded.
	State MonthState
	// Trailing adds empty months to the output. Nil disables it.
	Trailing *TrailingWindow
	// WeekOrder defaults to descending.
	WeekOrder WeekOrder
	// SelectedDay short-circuits grouping: a single day is rendered as a flat list.
	SelectedDay *time.Time
}

// MonthBucket groups the weeks of a calendar month
type MonthBucket[T any] struct {
	Key       string
	Month     YearMonth
	Start     time.Time
	End       time.Time
	Weeks     []WeekBucket[T]
	Counts    StatusCounts
	Total     int
	IsLoaded  bool
	IsLoading bool
}

// WeekBucket groups the items of one Monday-start week, clipped to its month
type WeekBucket[T any] struct {
	Key       string
	WeekStart time.Time // Monday of the week, may lie in the previous month
	Start     time.Time // max(WeekStart, month start)
	End       time.Time // min(week end, month end), inclusive
	Items     []T
	Counts    StatusCounts
}

type entry[T any] struct {
	item  T
	date  time.Time
	clock time.Time
	index int
}

// GroupByMonthThenWeek groups items into month buckets (most recent first)
// holding non-empty week buckets. Every item with a valid date lands in
// exactly one week of exactly one month.
func GroupByMonthThenWeek[T any](items []T, opts Options[T]) []MonthBucket[T] {
	if opts.SelectedDay != nil {
		return nil
	}
	if len(items) == 0 && opts.Trailing == nil {
		return nil
	}

	loc := opts.Location
	if loc == nil {
		loc = businesstime.Location()
	}
	state := opts.State
	if state == nil {
		state = AllLoaded{}
	}

	entries := make([]entry[T], 0, len(items))
	for i, item := range items {
		d := opts.Date(item)
		if d.IsZero() {
			continue
		}
		e := entry[T]{item: item, date: d.In(loc), index: i}
		if opts.Time != nil {
			e.clock = opts.Time(item)
		}
		entries = append(entries, e)
	}

	months := monthSet(entries, opts.Trailing, loc)
	if len(months) == 0 {
		return nil
	}

	// month key -> week start -> entries
	byMonth := make(map[string]map[int64][]entry[T], len(months))
	for _, e := range entries {
		mk := YearMonthOf(e.date).Key()
		weeks, ok := byMonth[mk]
		if !ok {
			weeks = make(map[int64][]entry[T])
			byMonth[mk] = weeks
		}
		ws := WeekStart(e.date).Unix()
		weeks[ws] = append(weeks[ws], e)
	}

	out := make([]MonthBucket[T], 0, len(months))
	for _, ym := range months {
		mStart := ym.Start(loc)
		mEnd := ym.End(loc).Add(-time.Nanosecond)

		mb := MonthBucket[T]{
			Key:       ym.Key(),
			Month:     ym,
			Start:     mStart,
			End:       mEnd,
			Counts:    StatusCounts{},
			IsLoaded:  state.IsLoaded(ym.Key()),
			IsLoading: state.IsLoading(ym.Key()),
		}

		weekEntries := byMonth[ym.Key()]
		for ws := WeekStart(mStart); !ws.After(mEnd); ws = ws.AddDate(0, 0, 7) {
			bucketEntries := weekEntries[ws.Unix()]
			if len(bucketEntries) == 0 {
				continue
			}
			sortEntries(bucketEntries)

			wb := WeekBucket[T]{
				Key:       WeekKey(ym, ws),
				WeekStart: ws,
				Start:     maxTime(ws, mStart),
				End:       minTime(WeekEnd(ws), mEnd),
				Items:     make([]T, 0, len(bucketEntries)),
				Counts:    StatusCounts{},
			}
			for _, e := range bucketEntries {
				wb.Items = append(wb.Items, e.item)
				if opts.Status != nil {
					s := opts.Status(e.item)
					wb.Counts[s]++
					mb.Counts[s]++
				}
			}
			mb.Total += len(wb.Items)
			mb.Weeks = append(mb.Weeks, wb)
		}

		if opts.WeekOrder != WeeksAscending {
			reverseWeeks(mb.Weeks)
		}
		out = append(out, mb)
	}

	return out
}

// monthSet returns the months to render, most recent first
func monthSet[T any](entries []entry[T], trailing *TrailingWindow, loc *time.Location) []YearMonth {
	seen := make(map[YearMonth]struct{})
	var months []YearMonth
	add := func(ym YearMonth) {
		if _, ok := seen[ym]; ok {
			return
		}
		seen[ym] = struct{}{}
		months = append(months, ym)
	}

	if len(entries) > 0 {
		minDate, maxDate := entries[0].date, entries[0].date
		for _, e := range entries[1:] {
			if e.date.Before(minDate) {
				minDate = e.date
			}
			if e.date.After(maxDate) {
				maxDate = e.date
			}
		}
		for _, ym := range MonthsBetween(minDate, maxDate) {
			add(ym)
		}
	}

	if trailing != nil {
		for _, ym := range TrailingMonths(trailing.Now.In(loc), trailing.Months) {
			add(ym)
		}
	}

	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})
	return months
}

func sortEntries[T any](entries []entry[T]) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if da, db := Midnight(a.date), Midnight(b.date); !da.Equal(db) {
			return da.Before(db)
		}
		if !a.clock.Equal(b.clock) {
			return a.clock.Before(b.clock)
		}
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		return a.index < b.index
	})
}

func reverseWeeks[T any](weeks []WeekBucket[T]) {
	for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
		weeks[i], weeks[j] = weeks[j], weeks[i]
	}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
