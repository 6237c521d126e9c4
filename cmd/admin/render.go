package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

var dayMarks = map[calendar.DayStatus]string{
	calendar.DayAvailable:   "+",
	calendar.DayPartial:     "~",
	calendar.DayBooked:      "x",
	calendar.DayUnavailable: ".",
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

func printBookings(w io.Writer, items []domain.Booking, indent string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "%s(no bookings)\n", indent)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%sID\tSLOT\tSTATUS\tATTENDANCE\tCONTACT\tCHILD\tGUESTS\n", indent)
	for _, b := range items {
		slot := "-"
		if b.Slot != nil {
			slot = fmt.Sprintf("%s %s-%s", businesstime.FormatDate(b.Slot.Start),
				b.Slot.Start.In(businesstime.Location()).Format("15:04"),
				b.Slot.End.In(businesstime.Location()).Format("15:04"))
		}
		guests := "-"
		if b.Guests != nil {
			guests = fmt.Sprint(*b.Guests)
		}
		fmt.Fprintf(tw, "%s%d\t%s\t%s\t%s\t%s <%s>\t%s\t%s\n", indent,
			b.ID, slot, b.Status, b.Attendance, b.Contact.Name, b.Contact.Email, b.ChildName, guests)
	}
	tw.Flush()
}

func printSlots(w io.Writer, items []domain.Slot) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(no slots)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tSTATUS\tFREE")
	for i := range items {
		s := &items[i]
		free := "booked"
		switch {
		case s.Daycare != nil:
			free = fmt.Sprintf("%d/%d", s.Daycare.AvailableSpots, s.Daycare.Capacity)
		case s.Birthday != nil && !s.Birthday.Booked:
			free = "free"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s-%s\t%s\t%s\n", s.ID, businesstime.FormatDate(s.Start),
			s.Start.In(businesstime.Location()).Format("15:04"),
			s.End.In(businesstime.Location()).Format("15:04"),
			s.Status, free)
	}
	tw.Flush()
}

// printCalendar рисует месяц сеткой, неделя начинается с понедельника
func printCalendar(w io.Writer, cells []calendar.DayCell) {
	fmt.Fprintln(w, " Mo  Tu  We  Th  Fr  Sa  Su")
	if len(cells) == 0 {
		return
	}

	offset := (int(cells[0].Date.Weekday()) + 6) % 7
	fmt.Fprint(w, strings.Repeat("    ", offset))
	for _, c := range cells {
		fmt.Fprintf(w, "%3d%s", c.Day, dayMarks[c.Status])
		if c.Date.Weekday() == time.Sunday {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "+ available  ~ partial  x booked  . unavailable")
}
