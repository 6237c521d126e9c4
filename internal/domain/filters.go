package domain

import "time"

// BookingFilter selects bookings by kind and effective-date window.
// From is inclusive, To is exclusive; nil bounds are open.
type BookingFilter struct {
	Kind            BookingKind
	From            *time.Time
	To              *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}

// SlotFilter selects slots by kind and day window.
// From is inclusive, To is exclusive; nil bounds are open.
type SlotFilter struct {
	Kind   BookingKind
	From   *time.Time
	To     *time.Time
	Status *SlotStatus
}

// BookingChanges is a partial update of admin-editable booking fields
type BookingChanges struct {
	ContactName  *string
	ContactEmail *string
	ContactPhone *string
	ChildName    *string
	ChildAge     *int
	Guests       *int
	Comment      *string
}

// IsEmpty returns true if no field is set
func (c BookingChanges) IsEmpty() bool {
	return c.ContactName == nil && c.ContactEmail == nil && c.ContactPhone == nil &&
		c.ChildName == nil && c.ChildAge == nil && c.Guests == nil && c.Comment == nil
}

// Apply writes the set fields into b
func (c BookingChanges) Apply(b *Booking) {
	if c.ContactName != nil {
		b.Contact.Name = *c.ContactName
	}
	if c.ContactEmail != nil {
		b.Contact.Email = *c.ContactEmail
	}
	if c.ContactPhone != nil {
		b.Contact.Phone = *c.ContactPhone
	}
	if c.ChildName != nil {
		b.ChildName = *c.ChildName
	}
	if c.ChildAge != nil {
		age := *c.ChildAge
		b.ChildAge = &age
	}
	if c.Guests != nil {
		guests := *c.Guests
		b.Guests = &guests
	}
	if c.Comment != nil {
		comment := *c.Comment
		b.Comment = &comment
	}
}

// SlotChanges is a partial update of a slot
type SlotChanges struct {
	Start    *time.Time
	End      *time.Time
	Status   *SlotStatus
	Capacity *int // daycare only
}

// IsEmpty returns true if no field is set
func (c SlotChanges) IsEmpty() bool {
	return c.Start == nil && c.End == nil && c.Status == nil && c.Capacity == nil
}
