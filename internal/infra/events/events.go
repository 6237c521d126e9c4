package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/ludoteca-service/internal/domain"
)

// Типы доменных событий
const (
	BookingCreated          = "booking.created"
	BookingStatusChanged    = "booking.status_changed"
	BookingUpdated          = "booking.updated"
	BookingDeleted          = "booking.deleted"
	BookingAttendanceMarked = "booking.attendance_marked"
	SlotCreated             = "slot.created"
	SlotUpdated             = "slot.updated"
	SlotDeleted             = "slot.deleted"
)

// Event доменное событие, публикуемое после успешного изменения
type Event struct {
	ID          string             `json:"event_id"`
	Type        string             `json:"event_type"`
	Kind        domain.BookingKind `json:"kind"`
	AggregateID int64              `json:"aggregate_id"`
	OccurredAt  time.Time          `json:"occurred_at"`
	Payload     interface{}        `json:"payload,omitempty"`
}

// New создаёт событие с новым идентификатором
func New(eventType string, kind domain.BookingKind, aggregateID int64, payload interface{}) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		Kind:        kind,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

// StatusChange полезная нагрузка booking.status_changed
type StatusChange struct {
	From domain.BookingStatus `json:"from"`
	To   domain.BookingStatus `json:"to"`
}

// AttendanceChange полезная нагрузка booking.attendance_marked
type AttendanceChange struct {
	Attendance domain.AttendanceStatus `json:"attendance"`
}
