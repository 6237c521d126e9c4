package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/infra/cache/monthcache"
	"github.com/m04kA/ludoteca-service/internal/infra/events"
	bookingRepo "github.com/m04kA/ludoteca-service/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/ludoteca-service/internal/infra/storage/slot"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	cache       MonthCache
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	cache MonthCache,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		cache:       cache,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// List возвращает бронирования вида: все, за месяц или за день.
// Отменённые включены - админ видит их в счётчиках статусов.
// Выборка за месяц кэшируется.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	bookings, err := s.ListDomain(ctx, req)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBookingList(bookings), nil
}

// ListDomain то же, что List, но возвращает domain модели
func (s *Service) ListDomain(ctx context.Context, req *models.ListBookingsRequest) ([]*domain.Booking, error) {
	filter := domain.BookingFilter{Kind: req.Kind, IncludeInactive: true}
	loc := businesstime.Location()
	cacheGen := monthcache.NoGeneration

	switch {
	case req.Date != nil:
		from := calendar.Midnight(businesstime.In(*req.Date))
		to := from.AddDate(0, 0, 1)
		filter.From, filter.To = &from, &to
		s.logger.Info("List: fetching %s bookings for date=%s", req.Kind, businesstime.FormatDate(from))

	case req.Year != nil && req.Month != nil:
		if *req.Month < 1 || *req.Month > 12 {
			return nil, fmt.Errorf("%w: month out of range", ErrInvalidInput)
		}
		// поколение берём до чтения БД
		cached, gen, ok := s.cache.Get(ctx, req.Kind, *req.Year, *req.Month)
		if ok {
			s.logger.Info("List: %s bookings for %04d-%02d served from cache", req.Kind, *req.Year, int(*req.Month))
			return cached, nil
		}
		cacheGen = gen
		ym := calendar.YearMonth{Year: *req.Year, Month: *req.Month}
		from, to := ym.Start(loc), ym.End(loc)
		filter.From, filter.To = &from, &to
		s.logger.Info("List: fetching %s bookings for month=%s", req.Kind, ym.Key())

	default:
		s.logger.Info("List: fetching all %s bookings", req.Kind)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for kind=%s: %v", req.Kind, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if req.Date == nil && req.Year != nil && req.Month != nil {
		s.cache.Set(ctx, req.Kind, cacheGen, *req.Year, *req.Month, bookings)
	}

	s.logger.Info("List: successfully fetched %d %s bookings", len(bookings), req.Kind)
	return bookings, nil
}

// UpdateStatus меняет статус бронирования по автомату состояний.
// CANCELLED конечный: отменённое бронирование не меняется.
// Отмена освобождает место в слоте.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	var (
		updated *domain.Booking
		from    domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getForUpdate(ctx, "UpdateStatus", id)
		if err != nil {
			return err
		}
		from = booking.Status

		if booking.IsCancelled() {
			s.logger.Warn("UpdateStatus: booking id=%d is cancelled", id)
			return ErrBookingCancelled
		}

		status, err := models.ToDomainBookingStatus(booking.Kind, req.Status)
		if err != nil {
			s.logger.Warn("UpdateStatus: invalid status=%s for %s booking id=%d", req.Status, booking.Kind, id)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if !domain.CanTransition(booking.Kind, booking.Status, status) {
			s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d", booking.Status, status, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
		}

		if status == booking.Status {
			updated = booking
			return nil
		}

		if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
			return s.repoError("UpdateStatus", id, err)
		}

		if status == domain.StatusCancelled && booking.HoldsSlot() {
			if err := s.releaseSlot(ctx, booking); err != nil {
				return err
			}
		}

		updated, err = s.getForUpdate(ctx, "UpdateStatus", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if from != updated.Status {
		s.afterMutation(ctx, updated.Kind, "status", events.New(events.BookingStatusChanged, updated.Kind, id,
			events.StatusChange{From: from, To: updated.Status}))
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// Update частично обновляет поля бронирования
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	changes := req.ToChanges()
	if changes.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	s.logger.Info("Update: updating fields of booking id=%d", id)

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getForUpdate(ctx, "Update", id)
		if err != nil {
			return err
		}

		if !booking.CanBeEdited() {
			s.logger.Warn("Update: booking id=%d is cancelled", id)
			return ErrBookingCancelled
		}
		if changes.Guests != nil && booking.Kind != domain.KindBirthday {
			return fmt.Errorf("%w: guests apply to birthday bookings only", ErrInvalidInput)
		}

		if err := s.bookingRepo.UpdateFields(ctx, id, changes); err != nil {
			return s.repoError("Update", id, err)
		}

		updated, err = s.getForUpdate(ctx, "Update", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, updated.Kind, "update", events.New(events.BookingUpdated, updated.Kind, id, nil))

	s.logger.Info("Update: successfully updated booking id=%d", id)
	return models.FromDomainBooking(updated), nil
}

// MarkAttendance отмечает посещение подтверждённого бронирования
func (s *Service) MarkAttendance(ctx context.Context, id int64, req *models.MarkAttendanceRequest) (*models.BookingResponse, error) {
	attendance, err := models.ToDomainAttendance(req.Attendance)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("MarkAttendance: booking id=%d attendance=%s", id, attendance)

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getForUpdate(ctx, "MarkAttendance", id)
		if err != nil {
			return err
		}

		if !booking.CanMarkAttendance() {
			s.logger.Warn("MarkAttendance: booking id=%d has status=%s", id, booking.Status)
			return ErrAttendanceNotAllowed
		}

		if err := s.bookingRepo.UpdateAttendance(ctx, id, attendance); err != nil {
			return s.repoError("MarkAttendance", id, err)
		}

		booking.Attendance = attendance
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, updated.Kind, "attendance", events.New(events.BookingAttendanceMarked, updated.Kind, id,
		events.AttendanceChange{Attendance: attendance}))

	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование и освобождает место в слоте
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	var deleted *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getForUpdate(ctx, "Delete", id)
		if err != nil {
			return err
		}

		if err := s.bookingRepo.Delete(ctx, id); err != nil {
			return s.repoError("Delete", id, err)
		}

		if booking.HoldsSlot() {
			if err := s.releaseSlot(ctx, booking); err != nil {
				return err
			}
		}

		deleted = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.afterMutation(ctx, deleted.Kind, "delete", events.New(events.BookingDeleted, deleted.Kind, id, nil))

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getForUpdate(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(op, id, err)
	}
	return booking, nil
}

// releaseSlot возвращает место бронирования в слот
func (s *Service) releaseSlot(ctx context.Context, booking *domain.Booking) error {
	var err error
	switch booking.Kind {
	case domain.KindDaycare:
		err = s.slotRepo.AdjustAvailability(ctx, *booking.SlotID, 1)
	default:
		err = s.slotRepo.SetBooked(ctx, *booking.SlotID, false)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, slotRepo.ErrSlotNotFound), errors.Is(err, slotRepo.ErrCapacityExceeded):
		s.logger.Warn("releaseSlot: slot id=%d of booking id=%d not adjusted: %v", *booking.SlotID, booking.ID, err)
		return nil
	default:
		s.logger.Error("releaseSlot: slot id=%d: %v", *booking.SlotID, err)
		return fmt.Errorf("%w: releaseSlot - repository error: %v", ErrInternal, err)
	}
}

func (s *Service) repoError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// afterMutation сбрасывает кэш месяцев вида и публикует событие
func (s *Service) afterMutation(ctx context.Context, kind domain.BookingKind, action string, event events.Event) {
	s.cache.Invalidate(ctx, kind)
	s.metrics.IncBookingMutation(string(kind), action)
	s.publisher.Publish(ctx, event)
}
