package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// SlotBoard is the admin view of the slots of one kind
type SlotBoard struct {
	kind domain.BookingKind
	api  SlotAPI

	slots      *Collection[domain.Slot]
	dayDetail  *Collection[domain.Slot]
	reconciler *Reconciler[domain.Slot]

	logger Logger
}

func slotID(s domain.Slot) int64 { return s.ID }

func NewSlotBoard(kind domain.BookingKind, api SlotAPI, notifier Notifier, logger Logger) *SlotBoard {
	slots := NewCollection(slotID)
	dayDetail := NewCollection(slotID)

	return &SlotBoard{
		kind:       kind,
		api:        api,
		slots:      slots,
		dayDetail:  dayDetail,
		reconciler: NewReconciler(notifier, logger, slots, dayDetail),
		logger:     logger,
	}
}

// Refresh fetches every slot of the kind
func (s *SlotBoard) Refresh(ctx context.Context) error {
	items, err := s.api.ListSlots(ctx, s.kind)
	if err != nil {
		s.logger.Error("Refresh: failed to fetch %s slots: %v", s.kind, err)
		return err
	}
	s.slots.Replace(items)
	return nil
}

// Slots returns the resident slots
func (s *SlotBoard) Slots() []domain.Slot {
	return s.slots.Items()
}

// Day fetches the slots of one day into the day detail
func (s *SlotBoard) Day(ctx context.Context, day time.Time) ([]domain.Slot, error) {
	items, err := s.api.ListSlotsByDay(ctx, s.kind, day)
	if err != nil {
		s.logger.Error("Day: failed to fetch slots of %s: %v", businesstime.FormatDate(day), err)
		return nil, err
	}
	s.dayDetail.Replace(items)
	return s.dayDetail.Items(), nil
}

// Calendar projects the resident slots onto month
func (s *SlotBoard) Calendar(month calendar.YearMonth) ([]calendar.DayCell, []calendar.DayStat) {
	items := s.slots.Items()
	ptrs := make([]*domain.Slot, 0, len(items))
	for i := range items {
		ptrs = append(ptrs, &items[i])
	}

	loc := businesstime.Location()
	available, booked := calendar.AvailabilitySets(month, loc, businesstime.Now(), ptrs, nil)
	return calendar.ProjectDays(month, loc, available, booked), calendar.DayStats(month, loc, ptrs)
}

// Create validates and creates a slot
func (s *SlotBoard) Create(ctx context.Context, slot *domain.Slot) (domain.Slot, error) {
	if !slot.End.After(slot.Start) {
		return domain.Slot{}, ErrInvalidTimeRange
	}
	return s.reconciler.Create(ctx, "create slot", func(ctx context.Context) (domain.Slot, error) {
		created, err := s.api.CreateSlot(ctx, slot)
		if err != nil {
			return domain.Slot{}, err
		}
		return *created, nil
	})
}

// Update edits a slot optimistically
func (s *SlotBoard) Update(ctx context.Context, id int64, changes domain.SlotChanges) error {
	current, ok := s.slots.Get(id)
	if !ok {
		if current, ok = s.dayDetail.Get(id); !ok {
			return ErrSlotNotLoaded
		}
	}
	if changes.IsEmpty() {
		return ErrNothingToUpdate
	}

	start, end := current.Start, current.End
	if changes.Start != nil {
		start = *changes.Start
	}
	if changes.End != nil {
		end = *changes.End
	}
	if !end.After(start) {
		return ErrInvalidTimeRange
	}

	return s.reconciler.Mutate(ctx, Mutation[domain.Slot]{
		ID:   id,
		Name: "update slot",
		Apply: func(sl domain.Slot) domain.Slot {
			sl.Start, sl.End = start, end
			if changes.Status != nil {
				sl.Status = *changes.Status
			}
			if changes.Capacity != nil && sl.Daycare != nil {
				booked := sl.Daycare.Capacity - sl.Daycare.AvailableSpots
				sl.Daycare = &domain.DaycareSlot{
					Capacity:       *changes.Capacity,
					AvailableSpots: *changes.Capacity - booked,
				}
			}
			return sl
		},
		Remote: func(ctx context.Context) (*domain.Slot, error) {
			return s.api.UpdateSlot(ctx, id, changes)
		},
	})
}

// Delete removes a slot optimistically
func (s *SlotBoard) Delete(ctx context.Context, id int64) error {
	return s.reconciler.Delete(ctx, id, "delete slot", func(ctx context.Context) error {
		return s.api.DeleteSlot(ctx, id)
	})
}
