package calendar

import (
	"time"

	"github.com/m04kA/ludoteca-service/internal/domain"
)

// DayStatus classifies a day of the availability calendar
type DayStatus string

const (
	DayAvailable   DayStatus = "available"
	DayBooked      DayStatus = "booked"
	DayPartial     DayStatus = "partial"
	DayUnavailable DayStatus = "unavailable"
)

// DayCell is one day of a month in the availability calendar
type DayCell struct {
	Day       int
	Date      time.Time
	Status    DayStatus
	Clickable bool
}

// DaySet is a set of day-of-month numbers
type DaySet map[int]struct{}

func (s DaySet) Add(day int) {
	s[day] = struct{}{}
}

func (s DaySet) Has(day int) bool {
	_, ok := s[day]
	return ok
}

// ProjectDays classifies every day 1..N of the month. A day is clickable
// iff it appears in at least one of the two sets.
func ProjectDays(month YearMonth, loc *time.Location, available, booked DaySet) []DayCell {
	days := month.Days()
	cells := make([]DayCell, 0, days)

	for day := 1; day <= days; day++ {
		isAvailable, isBooked := available.Has(day), booked.Has(day)

		status := DayUnavailable
		switch {
		case isAvailable && isBooked:
			status = DayPartial
		case isAvailable:
			status = DayAvailable
		case isBooked:
			status = DayBooked
		}

		cells = append(cells, DayCell{
			Day:       day,
			Date:      time.Date(month.Year, month.Month, day, 0, 0, 0, 0, loc),
			Status:    status,
			Clickable: status != DayUnavailable,
		})
	}

	return cells
}

// AvailabilitySets derives the two day sets of a month from slots and bookings.
// available: an open slot with room left. booked: an active booking, a closed
// slot or a full slot.
func AvailabilitySets(month YearMonth, loc *time.Location, now time.Time, slots []*domain.Slot, bookings []*domain.Booking) (available, booked DaySet) {
	available, booked = DaySet{}, DaySet{}

	for _, s := range slots {
		start := s.Start.In(loc)
		if YearMonthOf(start) != month {
			continue
		}
		if s.Remaining() > 0 {
			available.Add(start.Day())
		} else {
			booked.Add(start.Day())
		}
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		d := b.EffectiveDate(now).In(loc)
		if YearMonthOf(d) != month {
			continue
		}
		booked.Add(d.Day())
	}

	return available, booked
}

// DayFill classifies a day by the share of slots that still have room
type DayFill string

const (
	DayFillFull      DayFill = "full"
	DayFillAvailable DayFill = "available"
	DayFillPartial   DayFill = "partial"
)

// DayStat summarizes the slots of one day
type DayStat struct {
	Day       int
	Date      time.Time
	Total     int
	Available int
	Status    DayFill
}

// DayStats scans the slots of a month and summarizes each day that has at
// least one slot: full (none with room), available (all with room) or partial.
func DayStats(month YearMonth, loc *time.Location, slots []*domain.Slot) []DayStat {
	totals := make(map[int]int)
	free := make(map[int]int)

	for _, s := range slots {
		start := s.Start.In(loc)
		if YearMonthOf(start) != month {
			continue
		}
		totals[start.Day()]++
		if s.Remaining() > 0 {
			free[start.Day()]++
		}
	}

	var out []DayStat
	for day := 1; day <= month.Days(); day++ {
		total, ok := totals[day]
		if !ok {
			continue
		}
		stat := DayStat{
			Day:       day,
			Date:      time.Date(month.Year, month.Month, day, 0, 0, 0, 0, loc),
			Total:     total,
			Available: free[day],
		}
		switch {
		case stat.Available == 0:
			stat.Status = DayFillFull
		case stat.Available == stat.Total:
			stat.Status = DayFillAvailable
		default:
			stat.Status = DayFillPartial
		}
		out = append(out, stat)
	}

	return out
}
