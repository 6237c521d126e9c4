package delete_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/ludoteca-service/internal/service/bookings"
)

type fakeService struct {
	deleted []int64
	err     error
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, path string) int {
	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings/{id}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	return rec.Code
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	assert.Equal(t, http.StatusNoContent, serve(svc, "/admin/bookings/4"))
	assert.Equal(t, []int64{4}, svc.deleted)

	assert.Equal(t, http.StatusBadRequest, serve(svc, "/admin/bookings/0"))
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: bookings.ErrBookingNotFound}, "/admin/bookings/4"))
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: bookings.ErrInternal}, "/admin/bookings/4"))
}
