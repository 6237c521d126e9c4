package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// BookingBoardConfig per-screen grouping policy
type BookingBoardConfig struct {
	Kind           domain.BookingKind
	TrailingMonths int
	WeekOrder      calendar.WeekOrder
	PageSize       int
}

// BookingBoard is the admin view of one booking kind: bookings grouped by
// month and week, loaded month by month, with optimistic admin actions.
type BookingBoard struct {
	cfg BookingBoardConfig
	api BookingAPI

	bookings  *Collection[domain.Booking]
	dayDetail *Collection[domain.Booking]
	selection *Collection[domain.Booking]

	loader     *MonthLoader[domain.Booking]
	pager      *calendar.Pager
	reconciler *Reconciler[domain.Booking]

	selectedDay *time.Time
	now         Clock
	logger      Logger
}

func bookingID(b domain.Booking) int64 { return b.ID }

func NewBookingBoard(cfg BookingBoardConfig, api BookingAPI, notifier Notifier, logger Logger) *BookingBoard {
	bookings := NewCollection(bookingID)
	dayDetail := NewCollection(bookingID)
	selection := NewCollection(bookingID)

	return &BookingBoard{
		cfg:        cfg,
		api:        api,
		bookings:   bookings,
		dayDetail:  dayDetail,
		selection:  selection,
		loader:     NewMonthLoader[domain.Booking](logger),
		pager:      calendar.NewPager(cfg.PageSize),
		reconciler: NewReconciler(notifier, logger, bookings, dayDetail, selection),
		now:        businesstime.Now,
		logger:     logger,
	}
}

// WithClock overrides the time source
func (b *BookingBoard) WithClock(now Clock) *BookingBoard {
	b.now = now
	return b
}

// Init loads and expands the current month
func (b *BookingBoard) Init(ctx context.Context) error {
	return b.loader.LoadMonth(ctx, calendar.YearMonthOf(b.now()), b.fetchMonth, b.merge, true)
}

// ToggleMonth expands or collapses a month, loading it first if needed
func (b *BookingBoard) ToggleMonth(ctx context.Context, month calendar.YearMonth) (bool, error) {
	return b.loader.ToggleMonth(ctx, month, b.fetchMonth, b.merge)
}

// Reload drops local data and loads the current month again
func (b *BookingBoard) Reload(ctx context.Context) error {
	b.bookings.Replace(nil)
	b.loader.Reset()
	return b.Init(ctx)
}

// IsExpanded reports whether a month is shown expanded
func (b *BookingBoard) IsExpanded(month calendar.YearMonth) bool {
	return b.loader.IsExpanded(month.Key())
}

// Bookings returns the resident bookings
func (b *BookingBoard) Bookings() []domain.Booking {
	return b.bookings.Items()
}

// Months groups the resident bookings. Returns nil while a single day is selected.
func (b *BookingBoard) Months() []calendar.MonthBucket[domain.Booking] {
	now := b.now()
	return calendar.GroupByMonthThenWeek(b.bookings.Items(), calendar.Options[domain.Booking]{
		Date:        func(bk domain.Booking) time.Time { return bk.EffectiveDate(now) },
		Status:      func(bk domain.Booking) string { return string(bk.Status) },
		State:       b.loader,
		Trailing:    &calendar.TrailingWindow{Now: now, Months: b.cfg.TrailingMonths},
		WeekOrder:   b.cfg.WeekOrder,
		SelectedDay: b.selectedDay,
	})
}

// WeekPage returns the visible page of a week bucket
func (b *BookingBoard) WeekPage(week calendar.WeekBucket[domain.Booking]) (items []domain.Booking, page, totalPages int) {
	b.pager.EnsurePage(week.Key)
	return calendar.Paginate(b.pager, week.Items, week.Key),
		b.pager.Page(week.Key),
		calendar.TotalPages(len(week.Items), b.pager.Size())
}

// SetWeekPage moves a week bucket to page
func (b *BookingBoard) SetWeekPage(weekKey string, page int) {
	b.pager.SetPage(weekKey, page)
}

// SelectDay switches to the flat list of one day
func (b *BookingBoard) SelectDay(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	items, err := b.api.ListBookingsByDate(ctx, b.cfg.Kind, day)
	if err != nil {
		b.logger.Error("SelectDay: failed to fetch %s: %v", businesstime.FormatDate(day), err)
		return nil, err
	}
	d := calendar.Midnight(day)
	b.selectedDay = &d
	b.dayDetail.Replace(items)
	return b.dayDetail.Items(), nil
}

// ClearDay returns to the grouped view
func (b *BookingBoard) ClearDay() {
	b.selectedDay = nil
	b.dayDetail.Replace(nil)
}

// DayDetail returns the bookings of the selected day
func (b *BookingBoard) DayDetail() []domain.Booking {
	return b.dayDetail.Items()
}

// Select opens a booking for editing
func (b *BookingBoard) Select(id int64) (domain.Booking, error) {
	bk, ok := b.lookup(id)
	if !ok {
		return domain.Booking{}, ErrBookingNotLoaded
	}
	b.selection.Replace([]domain.Booking{bk})
	return bk, nil
}

// Selected returns the booking opened for editing
func (b *BookingBoard) Selected() (domain.Booking, bool) {
	items := b.selection.Items()
	if len(items) == 0 {
		return domain.Booking{}, false
	}
	return items[0], true
}

// UpdateStatus changes the status optimistically. Invalid transitions are
// rejected before any remote call.
func (b *BookingBoard) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	current, ok := b.lookup(id)
	if !ok {
		return ErrBookingNotLoaded
	}
	if current.IsCancelled() {
		return ErrBookingCancelled
	}
	if !domain.CanTransition(current.Kind, current.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	return b.reconciler.Mutate(ctx, Mutation[domain.Booking]{
		ID:   id,
		Name: "update booking status",
		Apply: func(bk domain.Booking) domain.Booking {
			bk.Status = status
			return bk
		},
		Remote: func(ctx context.Context) (*domain.Booking, error) {
			return b.api.UpdateBookingStatus(ctx, id, status)
		},
	})
}

// UpdateFields edits booking fields optimistically
func (b *BookingBoard) UpdateFields(ctx context.Context, id int64, changes domain.BookingChanges) error {
	current, ok := b.lookup(id)
	if !ok {
		return ErrBookingNotLoaded
	}
	if !current.CanBeEdited() {
		return ErrBookingCancelled
	}
	if changes.IsEmpty() {
		return ErrNothingToUpdate
	}

	return b.reconciler.Mutate(ctx, Mutation[domain.Booking]{
		ID:   id,
		Name: "update booking",
		Apply: func(bk domain.Booking) domain.Booking {
			changes.Apply(&bk)
			return bk
		},
		Remote: func(ctx context.Context) (*domain.Booking, error) {
			return b.api.UpdateBooking(ctx, id, changes)
		},
	})
}

// MarkAttendance records attendance of a confirmed booking
func (b *BookingBoard) MarkAttendance(ctx context.Context, id int64, attendance domain.AttendanceStatus) error {
	current, ok := b.lookup(id)
	if !ok {
		return ErrBookingNotLoaded
	}
	if !attendance.IsValid() || !current.CanMarkAttendance() {
		return ErrInvalidAttendance
	}

	return b.reconciler.Mutate(ctx, Mutation[domain.Booking]{
		ID:   id,
		Name: "mark attendance",
		Apply: func(bk domain.Booking) domain.Booking {
			bk.Attendance = attendance
			return bk
		},
		Remote: func(ctx context.Context) (*domain.Booking, error) {
			return b.api.MarkAttendance(ctx, id, attendance)
		},
	})
}

// Delete removes a booking optimistically
func (b *BookingBoard) Delete(ctx context.Context, id int64) error {
	if _, ok := b.lookup(id); !ok {
		return ErrBookingNotLoaded
	}
	return b.reconciler.Delete(ctx, id, "delete booking", func(ctx context.Context) error {
		return b.api.DeleteBooking(ctx, id)
	})
}

func (b *BookingBoard) lookup(id int64) (domain.Booking, bool) {
	for _, c := range []*Collection[domain.Booking]{b.bookings, b.dayDetail, b.selection} {
		if bk, ok := c.Get(id); ok {
			return bk, true
		}
	}
	return domain.Booking{}, false
}

func (b *BookingBoard) fetchMonth(ctx context.Context, month calendar.YearMonth) ([]domain.Booking, error) {
	return b.api.ListBookingsByMonth(ctx, b.cfg.Kind, month.Year, month.Month)
}

func (b *BookingBoard) merge(items []domain.Booking) {
	b.bookings.Merge(items)
}
