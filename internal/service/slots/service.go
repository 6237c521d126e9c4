package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/infra/events"
	slotRepo "github.com/m04kA/ludoteca-service/internal/infra/storage/slot"
	"github.com/m04kA/ludoteca-service/internal/service/slots/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// Service сервис управления слотами
type Service struct {
	slotRepo  SlotRepository
	bookings  BookingCounter
	txManager TransactionManager
	cache     MonthCache
	publisher EventPublisher
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookings BookingCounter,
	txManager TransactionManager,
	cache MonthCache,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		bookings:  bookings,
		txManager: txManager,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// List возвращает слоты вида: все или за день
func (s *Service) List(ctx context.Context, kind domain.BookingKind, date *time.Time) (*models.SlotListResponse, error) {
	filter := domain.SlotFilter{Kind: kind}
	if date != nil {
		from := calendar.Midnight(businesstime.In(*date))
		to := from.AddDate(0, 0, 1)
		filter.From, filter.To = &from, &to
	}

	slots, err := s.ListDomain(ctx, filter)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSlotList(slots), nil
}

// ListDomain возвращает слоты по фильтру в виде domain моделей
func (s *Service) ListDomain(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for kind=%s: %v", filter.Kind, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d %s slots", len(slots), filter.Kind)
	return slots, nil
}

// Create создаёт слот вида kind
func (s *Service) Create(ctx context.Context, kind domain.BookingKind, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	start, end := businesstime.In(req.StartTime.Time), businesstime.In(req.EndTime.Time)
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	var slot *domain.Slot
	switch kind {
	case domain.KindDaycare:
		if req.Capacity == nil {
			return nil, fmt.Errorf("%w: capacity is required for daycare slots", ErrInvalidInput)
		}
		slot = domain.NewDaycareSlot(start, end, *req.Capacity)
	case domain.KindBirthday:
		if req.Capacity != nil {
			return nil, fmt.Errorf("%w: birthday slots have no capacity", ErrInvalidInput)
		}
		slot = domain.NewBirthdaySlot(start, end)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}

	if req.Status != nil {
		status, err := models.ToDomainSlotStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		slot.Status = status
	}

	s.logger.Info("Create: creating %s slot %s - %s", kind, businesstime.ToAPIFormat(start), businesstime.ToAPIFormat(end))

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncBookingMutation(string(kind), "slot_create")
	s.publisher.Publish(ctx, events.New(events.SlotCreated, kind, created.ID, models.FromDomainSlot(created)))

	s.logger.Info("Create: slot id=%d created", created.ID)
	return models.FromDomainSlot(created), nil
}

// Update частично обновляет слот.
// Изменение вместимости сохраняет число занятых мест.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	changes, err := req.ToChanges()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if changes.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	s.logger.Info("Update: updating slot id=%d", id)

	var updated *domain.Slot
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		slot, err := s.get(ctx, "Update", id)
		if err != nil {
			return err
		}

		if changes.Start != nil {
			slot.Start = businesstime.In(*changes.Start)
		}
		if changes.End != nil {
			slot.End = businesstime.In(*changes.End)
		}
		if err := validateRange(slot.Start, slot.End); err != nil {
			return err
		}
		slot.Date = calendar.Midnight(slot.Start)

		if changes.Status != nil {
			slot.Status = *changes.Status
		}

		if changes.Capacity != nil {
			if slot.Daycare == nil {
				return fmt.Errorf("%w: birthday slots have no capacity", ErrInvalidInput)
			}
			booked := slot.Daycare.Capacity - slot.Daycare.AvailableSpots
			if *changes.Capacity < booked {
				s.logger.Warn("Update: slot id=%d capacity %d below booked %d", id, *changes.Capacity, booked)
				return ErrCapacityBelowBooked
			}
			slot.Daycare = &domain.DaycareSlot{
				Capacity:       *changes.Capacity,
				AvailableSpots: *changes.Capacity - booked,
			}
		}

		if err := s.slotRepo.Update(ctx, slot); err != nil {
			return s.repoError("Update", id, err)
		}

		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, updated.Kind)
	s.metrics.IncBookingMutation(string(updated.Kind), "slot_update")
	s.publisher.Publish(ctx, events.New(events.SlotUpdated, updated.Kind, id, models.FromDomainSlot(updated)))

	s.logger.Info("Update: slot id=%d updated", id)
	return models.FromDomainSlot(updated), nil
}

// Delete удаляет слот без активных бронирований
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting slot id=%d", id)

	var kind domain.BookingKind
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		slot, err := s.get(ctx, "Delete", id)
		if err != nil {
			return err
		}
		kind = slot.Kind

		active, err := s.bookings.CountActiveBySlot(ctx, id)
		if err != nil {
			s.logger.Error("Delete: count bookings of slot id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - count bookings: %v", ErrInternal, err)
		}
		if active > 0 {
			s.logger.Warn("Delete: slot id=%d has %d active bookings", id, active)
			return ErrSlotHasBookings
		}

		if err := s.slotRepo.Delete(ctx, id); err != nil {
			return s.repoError("Delete", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, kind)
	s.metrics.IncBookingMutation(string(kind), "slot_delete")
	s.publisher.Publish(ctx, events.New(events.SlotDeleted, kind, id, nil))
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(op, id, err)
	}
	return slot, nil
}

func (s *Service) repoError(op string, id int64, err error) error {
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		s.logger.Warn("%s: slot id=%d not found", op, id)
		return ErrSlotNotFound
	}
	s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// validateRange слот должен заканчиваться позже начала и в тот же день
func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return ErrInvalidTimeRange
	}
	if !calendar.Midnight(start).Equal(calendar.Midnight(end)) {
		return fmt.Errorf("%w: slot must not cross midnight", ErrInvalidTimeRange)
	}
	return nil
}
