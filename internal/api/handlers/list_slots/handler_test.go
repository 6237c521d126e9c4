package list_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/slots/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

type fakeService struct {
	called bool
	kind   domain.BookingKind
	date   *time.Time
	err    error
}

func (f *fakeService) List(_ context.Context, kind domain.BookingKind, date *time.Time) (*models.SlotListResponse, error) {
	f.called, f.kind, f.date = true, kind, date
	if f.err != nil {
		return nil, f.err
	}
	return &models.SlotListResponse{Slots: []models.SlotResponse{{ID: 1, Kind: string(kind), Date: "2024-03-09"}}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/slots/{kind}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_AllSlots(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/slots/birthday")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.KindBirthday, svc.kind)
	assert.Nil(t, svc.date)
	assert.Contains(t, rec.Body.String(), `"date":"2024-03-09"`)
}

func TestHandler_ByDate(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/slots/Daycare?date=2024-03-31")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.KindDaycare, svc.kind)
	require.NotNil(t, svc.date)
	assert.Equal(t, "2024-03-31", businesstime.FormatDate(*svc.date))
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		code   int
	}{
		{"unknown kind", "/slots/party", nil, http.StatusBadRequest},
		{"bad date", "/slots/daycare?date=31-03-2024", nil, http.StatusBadRequest},
		{"service failure", "/slots/daycare", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(svc, tt.target)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.err != nil, svc.called)
		})
	}
}
