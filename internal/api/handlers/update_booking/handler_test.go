package update_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/service/bookings"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
)

type fakeService struct {
	id  int64
	req *models.UpdateBookingRequest
	err error
}

func (f *fakeService) Update(_ context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	f.id, f.req = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Guests: req.Guests}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings/{id}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return rec
}

func TestHandler_OK(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/admin/bookings/4", `{"guests":12,"comment":"tarta sin gluten"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.id)
	require.NotNil(t, svc.req.Guests)
	assert.Equal(t, 12, *svc.req.Guests)
	require.NotNil(t, svc.req.Comment)
	assert.Equal(t, "tarta sin gluten", *svc.req.Comment)
	assert.Nil(t, svc.req.ContactEmail)
	assert.Contains(t, rec.Body.String(), `"guests":12`)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"non numeric id", "/admin/bookings/abc", `{"guests":3}`},
		{"zero id", "/admin/bookings/0", `{"guests":3}`},
		{"empty body", "/admin/bookings/1", ``},
		{"unknown field", "/admin/bookings/1", `{"status":"CONFIRMED"}`},
		{"invalid email", "/admin/bookings/1", `{"contactEmail":"not-an-email"}`},
		{"too many guests", "/admin/bookings/1", `{"guests":41}`},
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
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrBookingCancelled, http.StatusConflict},
		{bookings.ErrNothingToUpdate, http.StatusBadRequest},
		{bookings.ErrInvalidInput, http.StatusBadRequest},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "/admin/bookings/1", `{"guests":3}`)

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"message"`)
		})
	}
}
