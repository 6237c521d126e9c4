package get_month_availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	getMonthAvailability "github.com/m04kA/ludoteca-service/internal/usecase/get_month_availability"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

type fakeUseCase struct {
	req *getMonthAvailability.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getMonthAvailability.Request) (*getMonthAvailability.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}

	loc := businesstime.Location()
	first := time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)
	resp := &getMonthAvailability.Response{
		Kind:  req.Kind,
		Month: calendar.YearMonth{Year: 2024, Month: time.March},
		Days: []calendar.DayCell{
			{Day: 1, Date: first, Status: calendar.DayAvailable, Clickable: true},
			{Day: 2, Date: first.AddDate(0, 0, 1), Status: calendar.DayUnavailable},
		},
	}
	if req.Kind == domain.KindBirthday {
		resp.Stats = []calendar.DayStat{{Day: 1, Date: first, Total: 3, Available: 1, Status: calendar.DayFillPartial}}
	}
	return resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/availability/{kind}", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_BirthdayCalendar(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/availability/birthday?month=2024-03")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.KindBirthday, uc.req.Kind)
	assert.Equal(t, "2024-03", uc.req.Month)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "birthday", body.Kind)
	assert.Equal(t, "2024-03", body.Month)
	require.Len(t, body.Days, 2)
	assert.Equal(t, DayCell{Day: 1, Date: "2024-03-01", Status: "available", Clickable: true}, body.Days[0])
	assert.False(t, body.Days[1].Clickable)
	require.Len(t, body.Stats, 1)
	assert.Equal(t, DayStats{Date: "2024-03-01", Total: 3, Available: 1, Status: "partial"}, body.Stats[0])
}

func TestHandler_DaycareHasNoStats(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/availability/daycare")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, uc.req.Month)
	assert.NotContains(t, rec.Body.String(), `"stats"`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		code   int
	}{
		{"unknown kind", "/availability/party", nil, http.StatusBadRequest},
		{"invalid month", "/availability/daycare?month=2024-13", fmt.Errorf("%w: month out of range", getMonthAvailability.ErrInvalidInput), http.StatusBadRequest},
		{"internal", "/availability/daycare", fmt.Errorf("%w: %v", getMonthAvailability.ErrInternal, errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
