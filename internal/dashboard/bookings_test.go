package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

type fakeBookingAPI struct {
	mu         sync.Mutex
	byMonth    map[string][]domain.Booking
	byDate     []domain.Booking
	monthCalls map[string]int

	statusErr   error
	statusGate  chan struct{}
	deleteErr   error
	updated     *domain.Booking
	attendances []domain.AttendanceStatus
}

func newFakeBookingAPI() *fakeBookingAPI {
	return &fakeBookingAPI{byMonth: map[string][]domain.Booking{}, monthCalls: map[string]int{}}
}

func (f *fakeBookingAPI) ListBookings(context.Context, domain.BookingKind) ([]domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingAPI) ListBookingsByMonth(_ context.Context, _ domain.BookingKind, year int, month time.Month) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%04d-%02d", year, int(month))
	f.monthCalls[key]++
	return f.byMonth[key], nil
}

func (f *fakeBookingAPI) ListBookingsByDate(context.Context, domain.BookingKind, time.Time) ([]domain.Booking, error) {
	return f.byDate, nil
}

func (f *fakeBookingAPI) UpdateBookingStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if f.statusGate != nil {
		<-f.statusGate
	}
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &domain.Booking{ID: id, Kind: domain.KindBirthday, Status: status, Comment: strPtr("from server")}, nil
}

func (f *fakeBookingAPI) UpdateBooking(_ context.Context, id int64, changes domain.BookingChanges) (*domain.Booking, error) {
	return f.updated, nil
}

func (f *fakeBookingAPI) DeleteBooking(context.Context, int64) error {
	return f.deleteErr
}

func (f *fakeBookingAPI) MarkAttendance(_ context.Context, id int64, attendance domain.AttendanceStatus) (*domain.Booking, error) {
	f.attendances = append(f.attendances, attendance)
	return nil, nil
}

func strPtr(s string) *string { return &s }

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := businesstime.ParseFromAPI(s)
	require.NoError(t, err)
	return v
}

func newBoard(t *testing.T, api *fakeBookingAPI) (*BookingBoard, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	now := mustParse(t, "2024-03-20T12:00:00")
	board := NewBookingBoard(BookingBoardConfig{
		Kind:           domain.KindBirthday,
		TrailingMonths: 2,
		WeekOrder:      calendar.WeeksDescending,
	}, api, notifier, nopLogger{}).WithClock(func() time.Time { return now })
	return board, notifier
}

func marchBookings(t *testing.T) []domain.Booking {
	return []domain.Booking{
		{ID: 1, Kind: domain.KindBirthday, Status: domain.StatusPending, Slot: &domain.SlotTime{Start: mustParse(t, "2024-03-04T10:00:00")}},
		{ID: 2, Kind: domain.KindBirthday, Status: domain.StatusConfirmed, CreatedAt: mustParse(t, "2024-03-11T09:00:00")},
	}
}

func TestBookingBoard_InitAndGrouping(t *testing.T) {
	api := newFakeBookingAPI()
	api.byMonth["2024-03"] = marchBookings(t)
	board, _ := newBoard(t, api)

	require.NoError(t, board.Init(context.Background()))

	months := board.Months()
	require.Len(t, months, 3)
	assert.Equal(t, "2024-03", months[0].Key)
	assert.True(t, months[0].IsLoaded)
	assert.Len(t, months[0].Weeks, 2)
	assert.True(t, board.IsExpanded(calendar.YearMonth{Year: 2024, Month: time.March}))

	assert.Equal(t, "2024-02", months[1].Key)
	assert.False(t, months[1].IsLoaded)

	items, page, total := board.WeekPage(months[0].Weeks[0])
	assert.Len(t, items, 1)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, total)
}

func TestBookingBoard_ToggleLoadsOnce(t *testing.T) {
	api := newFakeBookingAPI()
	api.byMonth["2024-02"] = []domain.Booking{
		{ID: 5, Kind: domain.KindBirthday, Status: domain.StatusConfirmed, CreatedAt: mustParse(t, "2024-02-10T10:00:00")},
	}
	board, _ := newBoard(t, api)
	feb := calendar.YearMonth{Year: 2024, Month: time.February}

	expanded, err := board.ToggleMonth(context.Background(), feb)
	require.NoError(t, err)
	assert.True(t, expanded)

	expanded, err = board.ToggleMonth(context.Background(), feb)
	require.NoError(t, err)
	assert.False(t, expanded)

	assert.Equal(t, 1, api.monthCalls["2024-02"])
	assert.Len(t, board.Bookings(), 1)
}

func TestBookingBoard_UpdateStatusIsOptimistic(t *testing.T) {
	api := newFakeBookingAPI()
	api.byMonth["2024-03"] = marchBookings(t)
	api.statusGate = make(chan struct{})
	board, notifier := newBoard(t, api)
	require.NoError(t, board.Init(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- board.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	}()

	require.Eventually(t, func() bool {
		for _, b := range board.Bookings() {
			if b.ID == 1 {
				return b.Status == domain.StatusConfirmed
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	close(api.statusGate)
	require.NoError(t, <-done)

	for _, b := range board.Bookings() {
		if b.ID == 1 {
			assert.Equal(t, domain.StatusConfirmed, b.Status)
			require.NotNil(t, b.Comment)
			assert.Equal(t, "from server", *b.Comment)
		}
	}
	assert.Len(t, notifier.successes, 1)
}

func TestBookingBoard_UpdateStatusRevertsOnFailure(t *testing.T) {
	api := newFakeBookingAPI()
	api.byMonth["2024-03"] = marchBookings(t)
	api.statusErr = errors.New("server unavailable")
	board, notifier := newBoard(t, api)
	require.NoError(t, board.Init(context.Background()))
	_, err := board.Select(1)
	require.NoError(t, err)

	err = board.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	assert.Error(t, err)

	for _, b := range board.Bookings() {
		if b.ID == 1 {
			assert.Equal(t, domain.StatusPending, b.Status)
		}
	}
	selected, ok := board.Selected()
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, selected.Status)
	assert.Len(t, notifier.failures, 1)
}

func TestBookingBoard_ValidationBeforeRemote(t *testing.T) {
	api := newFakeBookingAPI()
	bookings := marchBookings(t)
	bookings = append(bookings, domain.Booking{ID: 3, Kind: domain.KindBirthday, Status: domain.StatusCancelled, CreatedAt: mustParse(t, "2024-03-12T09:00:00")})
	api.byMonth["2024-03"] = bookings
	api.statusErr = errors.New("must not be called")
	board, notifier := newBoard(t, api)
	require.NoError(t, board.Init(context.Background()))

	assert.ErrorIs(t, board.UpdateStatus(context.Background(), 3, domain.StatusConfirmed), ErrBookingCancelled)
	assert.ErrorIs(t, board.UpdateFields(context.Background(), 3, domain.BookingChanges{Comment: strPtr("x")}), ErrBookingCancelled)
	assert.ErrorIs(t, board.UpdateFields(context.Background(), 1, domain.BookingChanges{}), ErrNothingToUpdate)
	assert.ErrorIs(t, board.MarkAttendance(context.Background(), 1, domain.AttendanceAttended), ErrInvalidAttendance)
	assert.ErrorIs(t, board.UpdateStatus(context.Background(), 99, domain.StatusConfirmed), ErrBookingNotLoaded)
	assert.Empty(t, notifier.failures)
}

func TestBookingBoard_UpdateFieldsAndAttendance(t *testing.T) {
	api := newFakeBookingAPI()
	api.byMonth["2024-03"] = marchBookings(t)
	board, _ := newBoard(t, api)
	require.NoError(t, board.Init(context.Background()))

	require.NoError(t, board.UpdateFields(context.Background(), 2, domain.BookingChanges{Comment: strPtr("allergic to nuts")}))
	require.NoError(t, board.MarkAttendance(context.Background(), 2, domain.AttendanceAttended))

	for _, b := range board.Bookings() {
		if b.ID == 2 {
			require.NotNil(t, b.Comment)
			assert.Equal(t, "allergic to nuts", *b.Comment)
			assert.Equal(t, domain.AttendanceAttended, b.Attendance)
		}
	}
	assert.Equal(t, []domain.AttendanceStatus{domain.AttendanceAttended}, api.attendances)
}

func TestBookingBoard_DeleteRestoresOnFailure(t *testing.T) {
	api := newFakeBookingAPI()
	api.byMonth["2024-03"] = marchBookings(t)
	api.deleteErr = errors.New("forbidden")
	board, _ := newBoard(t, api)
	require.NoError(t, board.Init(context.Background()))

	assert.Error(t, board.Delete(context.Background(), 1))
	assert.Len(t, board.Bookings(), 2)
	assert.Equal(t, int64(1), board.Bookings()[0].ID)

	api.deleteErr = nil
	require.NoError(t, board.Delete(context.Background(), 1))
	assert.Len(t, board.Bookings(), 1)
}

func TestBookingBoard_SelectDayShortCircuitsGrouping(t *testing.T) {
	api := newFakeBookingAPI()
	api.byMonth["2024-03"] = marchBookings(t)
	api.byDate = marchBookings(t)[:1]
	board, _ := newBoard(t, api)
	require.NoError(t, board.Init(context.Background()))

	day, err := board.SelectDay(context.Background(), mustParse(t, "2024-03-04T00:00:00"))
	require.NoError(t, err)
	assert.Len(t, day, 1)
	assert.Nil(t, board.Months())

	board.ClearDay()
	assert.NotNil(t, board.Months())
	assert.Empty(t, board.DayDetail())
}
