package get_month_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// UseCase use case для получения календаря доступности за месяц
type UseCase struct {
	bookings     BookingLister
	slots        SlotLister
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookings BookingLister, slots SlotLister, logger Logger) *UseCase {
	return &UseCase{
		bookings:     bookings,
		slots:        slots,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	month, err := validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("GetMonthAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetMonthAvailability: kind=%s, month=%s", req.Kind, month.Key())

	loc := businesstime.Location()
	from, to := month.Start(loc), month.End(loc)

	// 2. Получаем слоты месяца
	slots, err := uc.slots.ListDomain(ctx, domain.SlotFilter{Kind: req.Kind, From: &from, To: &to})
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 3. Получаем бронирования месяца
	year, m := month.Year, month.Month
	bookings, err := uc.bookings.ListDomain(ctx, &models.ListBookingsRequest{Kind: req.Kind, Year: &year, Month: &m})
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Классифицируем дни
	available, booked := calendar.AvailabilitySets(month, loc, now, slots, bookings)
	resp := &Response{
		Kind:  req.Kind,
		Month: month,
		Days:  calendar.ProjectDays(month, loc, available, booked),
	}

	if req.Kind == domain.KindBirthday {
		resp.Stats = calendar.DayStats(month, loc, slots)
	}

	uc.logger.Info("GetMonthAvailability: %d slots, %d bookings in %s", len(slots), len(bookings), month.Key())
	return resp, nil
}
