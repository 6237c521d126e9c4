package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_Remaining(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	birthday := NewBirthdaySlot(start, end)
	assert.True(t, birthday.HasValidVariant())
	assert.Equal(t, 1, birthday.Remaining())
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), birthday.Date)

	birthday.Birthday.Booked = true
	assert.True(t, birthday.IsFull())
	assert.Equal(t, 1.0, birthday.OccupancyRate())

	daycare := NewDaycareSlot(start, end, 10)
	assert.Equal(t, 10, daycare.Remaining())
	daycare.Daycare.AvailableSpots = 4
	assert.InDelta(t, 0.6, daycare.OccupancyRate(), 1e-9)

	daycare.Status = SlotClosed
	assert.Equal(t, 0, daycare.Remaining())
}

func TestSlot_HasValidVariant(t *testing.T) {
	s := &Slot{Kind: KindDaycare, Birthday: &BirthdaySlot{}}
	assert.False(t, s.HasValidVariant())

	s = &Slot{Kind: BookingKind("party")}
	assert.False(t, s.HasValidVariant())
}
