package update_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/service/slots"
	"github.com/m04kA/ludoteca-service/internal/service/slots/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

type fakeService struct {
	id  int64
	req *models.UpdateSlotRequest
	err error
}

func (f *fakeService) Update(_ context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	f.id, f.req = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SlotResponse{ID: id, Kind: "daycare", Status: "CLOSED"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/slots/{id}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return rec
}

func TestHandler_OK(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/admin/slots/31", `{"status":"CLOSED","endTime":"2024-03-04T14:30:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(31), svc.id)
	require.NotNil(t, svc.req.Status)
	assert.Equal(t, "CLOSED", *svc.req.Status)
	require.NotNil(t, svc.req.EndTime)
	assert.Equal(t, "2024-03-04T14:30:00", businesstime.ToAPIFormat(svc.req.EndTime.Time))
	assert.Nil(t, svc.req.StartTime)
	assert.Nil(t, svc.req.Capacity)
	assert.Contains(t, rec.Body.String(), `"status":"CLOSED"`)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"non numeric id", "/admin/slots/first", `{"capacity":5}`},
		{"negative id", "/admin/slots/-3", `{"capacity":5}`},
		{"unknown status", "/admin/slots/1", `{"status":"ARCHIVED"}`},
		{"zero capacity", "/admin/slots/1", `{"capacity":0}`},
		{"timestamp with offset", "/admin/slots/1", `{"startTime":"2024-03-04T09:00:00+01:00"}`},
		{"fractional seconds", "/admin/slots/1", `{"startTime":"2024-03-04T09:00:00.500"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(svc, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.req)
		})
	}
}

func TestHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{slots.ErrSlotNotFound, http.StatusNotFound},
		{slots.ErrInvalidTimeRange, http.StatusBadRequest},
		{slots.ErrCapacityBelowBooked, http.StatusConflict},
		{slots.ErrNothingToUpdate, http.StatusBadRequest},
		{slots.ErrInvalidInput, http.StatusBadRequest},
		{slots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "/admin/slots/1", `{"capacity":4}`)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
