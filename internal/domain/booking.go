package domain

import (
	"time"
)

// BookingKind distinguishes the two products of the play center
type BookingKind string

const (
	KindBirthday BookingKind = "birthday"
	KindDaycare  BookingKind = "daycare"
)

// IsValid reports whether k is a known booking kind
func (k BookingKind) IsValid() bool {
	return k == KindBirthday || k == KindDaycare
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// AttendanceStatus is set by staff once the booked session took place
type AttendanceStatus string

const (
	AttendanceUnknown  AttendanceStatus = "UNKNOWN"
	AttendanceAttended AttendanceStatus = "ATTENDED"
	AttendanceNoShow   AttendanceStatus = "NO_SHOW"
)

// IsValid reports whether a is a known attendance status
func (a AttendanceStatus) IsValid() bool {
	switch a {
	case AttendanceUnknown, AttendanceAttended, AttendanceNoShow:
		return true
	}
	return false
}

// SlotTime is the time window of the slot a booking is attached to
type SlotTime struct {
	Start time.Time
	End   time.Time
}

// Contact holds the details of the adult responsible for the booking
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Booking represents a birthday party or daycare reservation
type Booking struct {
	ID         int64
	Kind       BookingKind
	SlotID     *int64
	Slot       *SlotTime // loaded together with the booking when SlotID is set
	Status     BookingStatus
	Attendance AttendanceStatus

	Contact   Contact
	ChildName string
	ChildAge  *int
	Guests    *int // birthday only
	Comment   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDate is the date used to place a booking in a calendar bucket:
// slot start, else creation time, else now.
func (b *Booking) EffectiveDate(now time.Time) time.Time {
	if b.Slot != nil && !b.Slot.Start.IsZero() {
		return b.Slot.Start
	}
	if !b.CreatedAt.IsZero() {
		return b.CreatedAt
	}
	return now
}

// IsActive returns true unless the booking was cancelled
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking is in the terminal state
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeEdited returns true if admin field edits are still allowed
func (b *Booking) CanBeEdited() bool {
	return !b.IsCancelled()
}

// CanMarkAttendance returns true if attendance may be recorded
func (b *Booking) CanMarkAttendance() bool {
	return b.Status == StatusConfirmed
}

// HoldsSlot returns true if the booking consumes capacity of its slot
func (b *Booking) HoldsSlot() bool {
	return b.SlotID != nil && b.IsActive()
}
