package dashboard

import "errors"

var (
	// ErrBookingNotLoaded the booking is not in the local collection
	ErrBookingNotLoaded = errors.New("dashboard: booking is not loaded")

	// ErrSlotNotLoaded the slot is not in the local collection
	ErrSlotNotLoaded = errors.New("dashboard: slot is not loaded")

	// ErrInvalidTransition the status change is not allowed by the state machine
	ErrInvalidTransition = errors.New("dashboard: status transition not allowed")

	// ErrBookingCancelled cancelled bookings are read-only
	ErrBookingCancelled = errors.New("dashboard: booking is cancelled")

	// ErrNothingToUpdate the change set is empty
	ErrNothingToUpdate = errors.New("dashboard: nothing to update")

	// ErrInvalidAttendance unknown attendance value or booking not confirmed
	ErrInvalidAttendance = errors.New("dashboard: attendance cannot be recorded")

	// ErrInvalidTimeRange end is not after start
	ErrInvalidTimeRange = errors.New("dashboard: end time must be after start time")
)
