package domain

import "time"

// SlotStatus represents whether a slot accepts bookings
type SlotStatus string

const (
	SlotOpen   SlotStatus = "OPEN"
	SlotClosed SlotStatus = "CLOSED"
)

// IsValid reports whether s is a known slot status
func (s SlotStatus) IsValid() bool {
	return s == SlotOpen || s == SlotClosed
}

// BirthdaySlot is a party room window; it is taken by a single booking
type BirthdaySlot struct {
	Booked bool
}

// DaycareSlot is a session shared by several children
type DaycareSlot struct {
	Capacity       int
	AvailableSpots int
}

// Slot is an admin-defined bookable time window.
// Exactly one of Birthday and Daycare is set, matching Kind.
type Slot struct {
	ID     int64
	Kind   BookingKind
	Date   time.Time // midnight of the slot day, business zone
	Start  time.Time
	End    time.Time
	Status SlotStatus

	Birthday *BirthdaySlot
	Daycare  *DaycareSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBirthdaySlot builds an open, unbooked birthday slot
func NewBirthdaySlot(start, end time.Time) *Slot {
	return &Slot{
		Kind:     KindBirthday,
		Date:     dayOf(start),
		Start:    start,
		End:      end,
		Status:   SlotOpen,
		Birthday: &BirthdaySlot{},
	}
}

// NewDaycareSlot builds an open daycare slot with all spots available
func NewDaycareSlot(start, end time.Time, capacity int) *Slot {
	return &Slot{
		Kind:    KindDaycare,
		Date:    dayOf(start),
		Start:   start,
		End:     end,
		Status:  SlotOpen,
		Daycare: &DaycareSlot{Capacity: capacity, AvailableSpots: capacity},
	}
}

// IsOpen returns true if the slot accepts bookings at all
func (s *Slot) IsOpen() bool {
	return s.Status == SlotOpen
}

// Remaining returns how many more bookings the slot can take
func (s *Slot) Remaining() int {
	if !s.IsOpen() {
		return 0
	}
	switch {
	case s.Daycare != nil:
		if s.Daycare.AvailableSpots < 0 {
			return 0
		}
		return s.Daycare.AvailableSpots
	case s.Birthday != nil:
		if s.Birthday.Booked {
			return 0
		}
		return 1
	}
	return 0
}

// IsFull returns true if no more bookings fit
func (s *Slot) IsFull() bool {
	return s.Remaining() == 0
}

// HasValidVariant checks that the variant payload matches Kind
func (s *Slot) HasValidVariant() bool {
	switch s.Kind {
	case KindBirthday:
		return s.Birthday != nil && s.Daycare == nil
	case KindDaycare:
		return s.Daycare != nil && s.Birthday == nil
	}
	return false
}

// OccupancyRate returns occupied share in [0, 1]
func (s *Slot) OccupancyRate() float64 {
	switch {
	case s.Daycare != nil:
		if s.Daycare.Capacity <= 0 {
			return 0
		}
		return float64(s.Daycare.Capacity-s.Daycare.AvailableSpots) / float64(s.Daycare.Capacity)
	case s.Birthday != nil && s.Birthday.Booked:
		return 1
	}
	return 0
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
