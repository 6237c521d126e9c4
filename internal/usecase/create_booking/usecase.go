package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/infra/events"
	slotRepo "github.com/m04kA/ludoteca-service/internal/infra/storage/slot"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	cache        MonthCache
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	cache MonthCache,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Слот блокируется в сериализуемой транзакции, поэтому два клиента не
// займут последнее место одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: kind=%s, slot=%d", req.Kind, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем слот с блокировкой (FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3.2. Слот должен быть того же вида, открыт и ещё не начаться
		if slot.Kind != req.Kind {
			uc.logger.Warn("CreateBooking: slot id=%d is %s, requested %s", slot.ID, slot.Kind, req.Kind)
			return ErrSlotNotFound
		}
		if !slot.IsOpen() {
			uc.logger.Warn("CreateBooking: slot id=%d is closed", slot.ID)
			return ErrSlotClosed
		}
		if !slot.Start.After(now) {
			uc.logger.Warn("CreateBooking: slot id=%d started at %s", slot.ID, businesstime.ToAPIFormat(slot.Start))
			return ErrSlotInPast
		}

		// 3.3. Проверяем и занимаем место
		if slot.IsFull() {
			uc.logger.Warn("CreateBooking: slot id=%d is full", slot.ID)
			return ErrSlotNotAvailable
		}
		if err := uc.occupy(txCtx, slot); err != nil {
			return err
		}

		// 3.4. Создаем бронирование
		slotID := slot.ID
		booking := &domain.Booking{
			Kind:       req.Kind,
			SlotID:     &slotID,
			Slot:       &domain.SlotTime{Start: slot.Start, End: slot.End},
			Status:     initialStatus(req.Kind),
			Attendance: domain.AttendanceUnknown,
			Contact: domain.Contact{
				Name:  req.ContactName,
				Email: req.ContactEmail,
				Phone: req.ContactPhone,
			},
			ChildName: req.ChildName,
			ChildAge:  req.ChildAge,
			Guests:    req.Guests,
			Comment:   req.Comment,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, result.Kind)
	uc.metrics.IncBookingMutation(string(result.Kind), "create")
	uc.publisher.Publish(ctx, events.New(events.BookingCreated, result.Kind, result.ID, nil))

	uc.logger.Info("CreateBooking: successfully created booking id=%d with status=%s", result.ID, result.Status)
	return &Response{Booking: result}, nil
}

// occupy занимает место в слоте
func (uc *UseCase) occupy(ctx context.Context, slot *domain.Slot) error {
	var err error
	if slot.Daycare != nil {
		err = uc.slotRepo.AdjustAvailability(ctx, slot.ID, -1)
	} else {
		err = uc.slotRepo.SetBooked(ctx, slot.ID, true)
	}

	if errors.Is(err, slotRepo.ErrCapacityExceeded) {
		uc.logger.Warn("CreateBooking: slot id=%d filled concurrently", slot.ID)
		return ErrSlotNotAvailable
	}
	if err != nil {
		uc.logger.Error("CreateBooking: failed to occupy slot id=%d: %v", slot.ID, err)
		return fmt.Errorf("%w: failed to occupy slot: %v", ErrInternal, err)
	}
	return nil
}
