package domain

// Paging and grouping defaults of the admin dashboards
const (
	DefaultPageSize       = 20
	DefaultTrailingMonths = 2
)

// Business validation constants
const (
	MaxCommentLength   = 500
	MaxContactLength   = 120
	MaxChildAge        = 14
	MaxBirthdayGuests  = 40
	MaxDaycareCapacity = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that hold slot capacity
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses statuses that released their slot
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
