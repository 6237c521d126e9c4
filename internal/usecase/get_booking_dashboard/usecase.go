package get_booking_dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// UseCase use case для панели бронирований: месяцы, недели, счётчики статусов
type UseCase struct {
	bookings     BookingLister
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookings BookingLister, settings Settings, logger Logger) *UseCase {
	if settings.PageSize <= 0 {
		settings.PageSize = domain.DefaultPageSize
	}
	return &UseCase{
		bookings:     bookings,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case построения панели бронирований
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	month, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetBookingDashboard: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Выбранный день: плоский список без группировки
	if req.Date != nil {
		day := calendar.Midnight(businesstime.In(*req.Date))
		bookings, err := uc.list(ctx, &models.ListBookingsRequest{Kind: req.Kind, Date: &day})
		if err != nil {
			return nil, err
		}

		counts := map[string]int{}
		for _, b := range bookings {
			counts[string(b.Status)]++
		}

		uc.logger.Info("GetBookingDashboard: %d %s bookings on %s", len(bookings), req.Kind, businesstime.FormatDate(day))
		return &Response{
			Kind: req.Kind,
			Day: &Day{
				Date:     day,
				Counts:   counts,
				Bookings: models.FromDomainBookingList(bookings).Bookings,
			},
		}, nil
	}

	// 3. Загружаем бронирования: один месяц или все
	listReq := &models.ListBookingsRequest{Kind: req.Kind}
	trailing := &calendar.TrailingWindow{Now: now, Months: uc.settings.TrailingMonths[req.Kind]}
	if month != nil {
		listReq.Year, listReq.Month = &month.Year, &month.Month
		trailing = &calendar.TrailingWindow{Now: month.Start(businesstime.Location()), Months: 0}
	}

	bookings, err := uc.list(ctx, listReq)
	if err != nil {
		return nil, err
	}

	// 4. Группируем по месяцам и неделям
	order := uc.settings.WeekOrder
	if req.WeekOrder != "" {
		order = calendar.ParseWeekOrder(req.WeekOrder)
	}

	buckets := calendar.GroupByMonthThenWeek(bookings, calendar.Options[*domain.Booking]{
		Date:      func(b *domain.Booking) time.Time { return b.EffectiveDate(now) },
		Time:      func(b *domain.Booking) time.Time { return b.CreatedAt },
		Status:    func(b *domain.Booking) string { return string(b.Status) },
		Trailing:  trailing,
		WeekOrder: order,
	})

	// 5. Пагинация внутри недель
	pager := calendar.NewPager(uc.settings.PageSize)
	for key, page := range req.Pages {
		pager.SetPage(key, page)
	}

	resp := &Response{Kind: req.Kind, Months: make([]Month, 0, len(buckets))}
	for _, mb := range buckets {
		m := Month{
			Key:    mb.Key,
			Label:  mb.Start.Format("January 2006"),
			Start:  mb.Start,
			End:    mb.End,
			Total:  mb.Total,
			Counts: mb.Counts,
			Weeks:  make([]Week, 0, len(mb.Weeks)),
		}
		for _, wb := range mb.Weeks {
			m.Weeks = append(m.Weeks, Week{
				Key:        wb.Key,
				Start:      wb.Start,
				End:        wb.End,
				Total:      len(wb.Items),
				Counts:     wb.Counts,
				Page:       pager.Page(wb.Key),
				TotalPages: calendar.TotalPages(len(wb.Items), pager.Size()),
				Bookings:   models.FromDomainBookingList(calendar.Paginate(pager, wb.Items, wb.Key)).Bookings,
			})
		}
		resp.Months = append(resp.Months, m)
	}

	uc.logger.Info("GetBookingDashboard: %d %s bookings in %d months", len(bookings), req.Kind, len(resp.Months))
	return resp, nil
}

func (uc *UseCase) list(ctx context.Context, req *models.ListBookingsRequest) ([]*domain.Booking, error) {
	bookings, err := uc.bookings.ListDomain(ctx, req)
	if err != nil {
		uc.logger.Error("GetBookingDashboard: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	return bookings, nil
}
