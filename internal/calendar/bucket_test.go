package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

func madrid(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := businesstime.ParseFromAPI(s)
	require.NoError(t, err)
	return v
}

func TestClassify(t *testing.T) {
	// Wednesday
	b, ok := Classify(madrid(t, "2024-03-06T18:30:00"))
	require.True(t, ok)

	assert.Equal(t, "2024-03-04T00:00:00", businesstime.ToAPIFormat(b.WeekStart))
	assert.Equal(t, "2024-03-10T23:59:59", businesstime.ToAPIFormat(b.WeekEnd))
	assert.Equal(t, "2024-03-01T00:00:00", businesstime.ToAPIFormat(b.MonthStart))
	assert.Equal(t, "2024-03-31T23:59:59", businesstime.ToAPIFormat(b.MonthEnd))

	_, ok = Classify(time.Time{})
	assert.False(t, ok)
}

func TestWeekStart_SundayAndMonday(t *testing.T) {
	sunday := madrid(t, "2024-03-10T23:00:00")
	monday := madrid(t, "2024-03-11T00:00:00")

	assert.Equal(t, "2024-03-04T00:00:00", businesstime.ToAPIFormat(WeekStart(sunday)))
	assert.Equal(t, "2024-03-11T00:00:00", businesstime.ToAPIFormat(WeekStart(monday)))
}

func TestWeekEnd_AcrossDSTSwitch(t *testing.T) {
	// the week of 2024-03-25 contains the spring-forward Sunday
	end := WeekEnd(madrid(t, "2024-03-27T12:00:00"))
	assert.Equal(t, "2024-03-31T23:59:59", businesstime.ToAPIFormat(end))
}

func TestYearMonth(t *testing.T) {
	ym := YearMonth{Year: 2024, Month: time.January}

	assert.Equal(t, "2024-01", ym.Key())
	assert.Equal(t, YearMonth{Year: 2023, Month: time.November}, ym.AddMonths(-2))
	assert.Equal(t, 31, ym.Days())
	assert.Equal(t, 29, YearMonth{Year: 2024, Month: time.February}.Days())
	assert.True(t, ym.AddMonths(-1).Before(ym))

	parsed, err := ParseYearMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, YearMonth{Year: 2024, Month: time.March}, parsed)

	_, err = ParseYearMonth("March")
	assert.Error(t, err)
}

func TestTrailingMonths(t *testing.T) {
	now := madrid(t, "2024-02-15T12:00:00")

	got := TrailingMonths(now, 2)
	assert.Equal(t, []YearMonth{
		{2024, time.February},
		{2024, time.January},
		{2023, time.December},
	}, got)

	assert.Len(t, TrailingMonths(now, -3), 1)
}

func TestMonthsBetween(t *testing.T) {
	got := MonthsBetween(madrid(t, "2024-03-20T00:00:00"), madrid(t, "2023-12-01T00:00:00"))
	assert.Equal(t, []YearMonth{
		{2023, time.December},
		{2024, time.January},
		{2024, time.February},
		{2024, time.March},
	}, got)
}
