package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		kind BookingKind
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", KindBirthday, StatusPending, StatusConfirmed, true},
		{"confirmed back to pending", KindBirthday, StatusConfirmed, StatusPending, true},
		{"pending to cancelled", KindBirthday, StatusPending, StatusCancelled, true},
		{"confirmed to cancelled", KindBirthday, StatusConfirmed, StatusCancelled, true},
		{"cancelled is terminal", KindBirthday, StatusCancelled, StatusConfirmed, false},
		{"cancelled to cancelled", KindBirthday, StatusCancelled, StatusCancelled, false},
		{"same status no-op", KindBirthday, StatusConfirmed, StatusConfirmed, true},
		{"daycare has no pending", KindDaycare, StatusConfirmed, StatusPending, false},
		{"daycare cancel", KindDaycare, StatusConfirmed, StatusCancelled, true},
		{"unknown target", KindBirthday, StatusPending, BookingStatus("DONE"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.kind, tc.from, tc.to))
		})
	}
}

func TestBooking_EffectiveDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	withSlot := &Booking{Slot: &SlotTime{Start: start}, CreatedAt: created}
	assert.Equal(t, start, withSlot.EffectiveDate(now))

	withoutSlot := &Booking{CreatedAt: created}
	assert.Equal(t, created, withoutSlot.EffectiveDate(now))

	bare := &Booking{}
	assert.Equal(t, now, bare.EffectiveDate(now))
}

func TestBooking_Flags(t *testing.T) {
	slotID := int64(3)

	b := &Booking{Status: StatusConfirmed, SlotID: &slotID}
	assert.True(t, b.CanBeEdited())
	assert.True(t, b.CanMarkAttendance())
	assert.True(t, b.HoldsSlot())

	b.Status = StatusPending
	assert.False(t, b.CanMarkAttendance())

	b.Status = StatusCancelled
	assert.False(t, b.CanBeEdited())
	assert.False(t, b.HoldsSlot())
}
