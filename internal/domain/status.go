package domain

// StatusesFor lists the statuses a booking of the given kind can take.
// Daycare bookings are confirmed on creation and never pending.
func StatusesFor(kind BookingKind) []BookingStatus {
	if kind == KindDaycare {
		return []BookingStatus{StatusConfirmed, StatusCancelled}
	}
	return []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled}
}

// IsValidStatus reports whether status is allowed for kind
func IsValidStatus(kind BookingKind, status BookingStatus) bool {
	for _, s := range StatusesFor(kind) {
		if s == status {
			return true
		}
	}
	return false
}

// transitions of the booking status state machine; CANCELLED is terminal
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPending, StatusCancelled},
	StatusCancelled: {},
}

// CanTransition reports whether a booking of kind may move from one status to another.
// Setting the current status again is accepted as a no-op unless the booking is cancelled.
func CanTransition(kind BookingKind, from, to BookingStatus) bool {
	if !IsValidStatus(kind, to) {
		return false
	}
	if from == StatusCancelled {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
