package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

var march2024 = YearMonth{Year: 2024, Month: time.March}

func TestProjectDays_Totality(t *testing.T) {
	available := DaySet{}
	booked := DaySet{}
	for _, d := range []int{1, 2, 3, 10} {
		available.Add(d)
	}
	for _, d := range []int{3, 4, 31} {
		booked.Add(d)
	}

	cells := ProjectDays(march2024, businesstime.Location(), available, booked)
	require.Len(t, cells, 31)

	want := map[int]DayStatus{1: DayAvailable, 2: DayAvailable, 3: DayPartial, 4: DayBooked, 10: DayAvailable, 31: DayBooked}
	for i, c := range cells {
		assert.Equal(t, i+1, c.Day)
		expected, ok := want[c.Day]
		if !ok {
			expected = DayUnavailable
		}
		assert.Equal(t, expected, c.Status, "day %d", c.Day)
		assert.Equal(t, c.Status != DayUnavailable, c.Clickable, "day %d", c.Day)
	}
}

func TestProjectDays_February(t *testing.T) {
	cells := ProjectDays(YearMonth{Year: 2023, Month: time.February}, time.UTC, DaySet{}, DaySet{})
	assert.Len(t, cells, 28)
}

func daycareSlot(t *testing.T, start string, capacity, available int, status domain.SlotStatus) *domain.Slot {
	t.Helper()
	s := madrid(t, start)
	slot := domain.NewDaycareSlot(s, s.Add(2*time.Hour), capacity)
	slot.Daycare.AvailableSpots = available
	slot.Status = status
	return slot
}

func TestDayStats_FullPartialAvailable(t *testing.T) {
	slots := []*domain.Slot{
		daycareSlot(t, "2024-03-04T10:00:00", 10, 0, domain.SlotOpen),
		daycareSlot(t, "2024-03-04T16:00:00", 10, 0, domain.SlotOpen),

		daycareSlot(t, "2024-03-05T10:00:00", 10, 0, domain.SlotOpen),
		daycareSlot(t, "2024-03-05T16:00:00", 10, 3, domain.SlotOpen),

		daycareSlot(t, "2024-03-06T10:00:00", 10, 10, domain.SlotOpen),

		// other month is ignored
		daycareSlot(t, "2024-04-06T10:00:00", 10, 10, domain.SlotOpen),
	}

	stats := DayStats(march2024, businesstime.Location(), slots)
	require.Len(t, stats, 3)

	assert.Equal(t, DayStat{Day: 4, Date: stats[0].Date, Total: 2, Available: 0, Status: DayFillFull}, stats[0])
	assert.Equal(t, DayFillPartial, stats[1].Status)
	assert.Equal(t, 1, stats[1].Available)
	assert.Equal(t, DayFillAvailable, stats[2].Status)
}

func TestDayStats_BirthdaySlots(t *testing.T) {
	start := madrid(t, "2024-03-09T11:00:00")
	free := domain.NewBirthdaySlot(start, start.Add(3*time.Hour))
	taken := domain.NewBirthdaySlot(start.Add(4*time.Hour), start.Add(7*time.Hour))
	taken.Birthday.Booked = true

	stats := DayStats(march2024, businesstime.Location(), []*domain.Slot{free, taken})
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, DayFillPartial, stats[0].Status)
}

func TestAvailabilitySets(t *testing.T) {
	now := madrid(t, "2024-03-01T00:00:00")
	slots := []*domain.Slot{
		daycareSlot(t, "2024-03-04T10:00:00", 10, 5, domain.SlotOpen),
		daycareSlot(t, "2024-03-05T10:00:00", 10, 5, domain.SlotClosed),
		daycareSlot(t, "2024-03-06T10:00:00", 10, 0, domain.SlotOpen),
	}
	bookings := []*domain.Booking{
		{Status: domain.StatusConfirmed, Slot: &domain.SlotTime{Start: madrid(t, "2024-03-04T10:00:00")}},
		{Status: domain.StatusCancelled, Slot: &domain.SlotTime{Start: madrid(t, "2024-03-20T10:00:00")}},
		{Status: domain.StatusConfirmed, CreatedAt: madrid(t, "2024-04-02T10:00:00")},
	}

	available, booked := AvailabilitySets(march2024, businesstime.Location(), now, slots, bookings)

	assert.True(t, available.Has(4))
	assert.False(t, available.Has(5))
	assert.True(t, booked.Has(4))
	assert.True(t, booked.Has(5))
	assert.True(t, booked.Has(6))
	assert.False(t, booked.Has(20))
	assert.Len(t, booked, 3)

	cells := ProjectDays(march2024, businesstime.Location(), available, booked)
	assert.Equal(t, DayPartial, cells[3].Status)
	assert.Equal(t, DayBooked, cells[4].Status)
}
