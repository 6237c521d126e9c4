package get_booking_dashboard

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

type fakeBookings struct {
	items []*domain.Booking
	reqs  []*models.ListBookingsRequest
	err   error
}

func (f *fakeBookings) ListDomain(_ context.Context, req *models.ListBookingsRequest) ([]*domain.Booking, error) {
	f.reqs = append(f.reqs, req)
	return f.items, f.err
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func madrid(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := businesstime.ParseFromAPI(s)
	require.NoError(t, err)
	return v
}

func booking(t *testing.T, id int64, start string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		Kind:       domain.KindBirthday,
		Status:     status,
		Attendance: domain.AttendanceUnknown,
		Slot:       &domain.SlotTime{Start: madrid(t, start), End: madrid(t, start).Add(2 * time.Hour)},
		CreatedAt:  madrid(t, "2024-01-02T10:00:00"),
	}
}

func newUseCase(t *testing.T, bookings *fakeBookings) *UseCase {
	uc := NewUseCase(bookings, Settings{
		PageSize:       2,
		TrailingMonths: map[domain.BookingKind]int{domain.KindBirthday: 2},
		WeekOrder:      calendar.WeeksDescending,
	}, nopLogger{})
	uc.timeProvider = fixedTime{now: madrid(t, "2024-03-20T12:00:00")}
	return uc
}

func fixtureBookings(t *testing.T) *fakeBookings {
	return &fakeBookings{items: []*domain.Booking{
		booking(t, 1, "2024-03-05T17:00:00", domain.StatusPending),
		booking(t, 2, "2024-03-04T17:00:00", domain.StatusConfirmed),
		booking(t, 3, "2024-03-06T17:00:00", domain.StatusCancelled),
		booking(t, 4, "2024-03-19T17:00:00", domain.StatusConfirmed),
	}}
}

func TestUseCase_GroupsWithTrailingWindow(t *testing.T) {
	bookings := fixtureBookings(t)

	resp, err := newUseCase(t, bookings).Execute(context.Background(), &Request{Kind: domain.KindBirthday})
	require.NoError(t, err)

	require.Len(t, resp.Months, 3)
	assert.Equal(t, "2024-03", resp.Months[0].Key)
	assert.Equal(t, "March 2024", resp.Months[0].Label)
	assert.Equal(t, "2024-02", resp.Months[1].Key)
	assert.Equal(t, "2024-01", resp.Months[2].Key)
	assert.Empty(t, resp.Months[1].Weeks)

	march := resp.Months[0]
	assert.Equal(t, 4, march.Total)
	assert.Equal(t, 2, march.Counts["CONFIRMED"])
	require.Len(t, march.Weeks, 2)
	assert.Equal(t, "2024-03/2024-03-18", march.Weeks[0].Key)

	week := march.Weeks[1]
	assert.Equal(t, "2024-03/2024-03-04", week.Key)
	assert.Equal(t, 3, week.Total)
	assert.Equal(t, 1, week.Page)
	assert.Equal(t, 2, week.TotalPages)
	require.Len(t, week.Bookings, 2)
	assert.Equal(t, int64(2), week.Bookings[0].ID)
	assert.Equal(t, int64(1), week.Bookings[1].ID)

	require.Len(t, bookings.reqs, 1)
	assert.Nil(t, bookings.reqs[0].Month)
}

func TestUseCase_PageAndOrderOverrides(t *testing.T) {
	resp, err := newUseCase(t, fixtureBookings(t)).Execute(context.Background(), &Request{
		Kind:      domain.KindBirthday,
		Month:     "2024-03",
		WeekOrder: "asc",
		Pages:     map[string]int{"2024-03/2024-03-04": 2},
	})
	require.NoError(t, err)

	require.Len(t, resp.Months, 1)
	weeks := resp.Months[0].Weeks
	require.Len(t, weeks, 2)
	assert.Equal(t, "2024-03/2024-03-04", weeks[0].Key)
	assert.Equal(t, 2, weeks[0].Page)
	require.Len(t, weeks[0].Bookings, 1)
	assert.Equal(t, int64(3), weeks[0].Bookings[0].ID)
}

func TestUseCase_PageBeyondLastIsEmpty(t *testing.T) {
	resp, err := newUseCase(t, fixtureBookings(t)).Execute(context.Background(), &Request{
		Kind:  domain.KindBirthday,
		Month: "2024-03",
		Pages: map[string]int{"2024-03/2024-03-04": math.MaxInt},
	})
	require.NoError(t, err)

	require.Len(t, resp.Months, 1)
	for _, week := range resp.Months[0].Weeks {
		if week.Key != "2024-03/2024-03-04" {
			continue
		}
		assert.Equal(t, 3, week.Total)
		assert.Empty(t, week.Bookings)
	}
}

func TestUseCase_SelectedDay(t *testing.T) {
	bookings := &fakeBookings{items: []*domain.Booking{
		booking(t, 1, "2024-03-05T10:00:00", domain.StatusPending),
		booking(t, 2, "2024-03-05T17:00:00", domain.StatusConfirmed),
	}}
	day := madrid(t, "2024-03-05T15:30:00")

	resp, err := newUseCase(t, bookings).Execute(context.Background(), &Request{Kind: domain.KindBirthday, Date: &day})
	require.NoError(t, err)

	assert.Nil(t, resp.Months)
	require.NotNil(t, resp.Day)
	assert.Equal(t, "2024-03-05", businesstime.FormatDate(resp.Day.Date))
	assert.Len(t, resp.Day.Bookings, 2)
	assert.Equal(t, 1, resp.Day.Counts["PENDING"])
	require.NotNil(t, bookings.reqs[0].Date)
}

func TestUseCase_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newUseCase(t, &fakeBookings{}).Execute(ctx, &Request{Kind: "party"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = newUseCase(t, &fakeBookings{}).Execute(ctx, &Request{Kind: domain.KindBirthday, Month: "March"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = newUseCase(t, &fakeBookings{}).Execute(ctx, &Request{Kind: domain.KindBirthday, Pages: map[string]int{"x": 0}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = newUseCase(t, &fakeBookings{err: errors.New("db down")}).Execute(ctx, &Request{Kind: domain.KindBirthday})
	assert.ErrorIs(t, err, ErrInternal)
}
