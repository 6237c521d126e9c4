package ludotecaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/ludoteca-service/internal/domain"
	bookingModels "github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	slotModels "github.com/m04kA/ludoteca-service/internal/service/slots/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент админского API ludoteca для терминальной панели
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента. token - JWT администратора.
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// ListBookings получает все бронирования вида
func (c *Client) ListBookings(ctx context.Context, kind domain.BookingKind) ([]domain.Booking, error) {
	var resp bookingModels.BookingListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/bookings/"+string(kind), nil, nil, &resp); err != nil {
		return nil, err
	}
	return bookingsToDomain(&resp), nil
}

// ListBookingsByMonth получает бронирования вида за месяц
func (c *Client) ListBookingsByMonth(ctx context.Context, kind domain.BookingKind, year int, month time.Month) ([]domain.Booking, error) {
	query := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(int(month))},
	}

	var resp bookingModels.BookingListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/bookings/"+string(kind), query, nil, &resp); err != nil {
		return nil, err
	}
	c.log.Info("Fetched %d %s bookings for %04d-%02d", len(resp.Bookings), kind, year, int(month))
	return bookingsToDomain(&resp), nil
}

// ListBookingsByDate получает бронирования вида за день
func (c *Client) ListBookingsByDate(ctx context.Context, kind domain.BookingKind, date time.Time) ([]domain.Booking, error) {
	query := url.Values{"date": {businesstime.FormatDate(date)}}

	var resp bookingModels.BookingListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/bookings/"+string(kind), query, nil, &resp); err != nil {
		return nil, err
	}
	return bookingsToDomain(&resp), nil
}

// UpdateBookingStatus меняет статус бронирования
func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	body := bookingModels.UpdateStatusRequest{Status: string(status)}
	return c.bookingMutation(ctx, fmt.Sprintf("/api/v1/admin/bookings/%d/status", id), body)
}

// UpdateBooking частично обновляет поля бронирования
func (c *Client) UpdateBooking(ctx context.Context, id int64, changes domain.BookingChanges) (*domain.Booking, error) {
	return c.bookingMutation(ctx, fmt.Sprintf("/api/v1/admin/bookings/%d", id), bookingModels.FromChanges(changes))
}

// MarkAttendance отмечает посещение
func (c *Client) MarkAttendance(ctx context.Context, id int64, attendance domain.AttendanceStatus) (*domain.Booking, error) {
	body := bookingModels.MarkAttendanceRequest{Attendance: string(attendance)}
	return c.bookingMutation(ctx, fmt.Sprintf("/api/v1/admin/bookings/%d/attendance", id), body)
}

// DeleteBooking удаляет бронирование
func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/bookings/%d", id), nil, nil, nil)
}

// ListSlots получает все слоты вида
func (c *Client) ListSlots(ctx context.Context, kind domain.BookingKind) ([]domain.Slot, error) {
	var resp slotModels.SlotListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/slots/"+string(kind), nil, nil, &resp); err != nil {
		return nil, err
	}
	return slotsToDomain(&resp), nil
}

// ListSlotsByDay получает слоты вида за день
func (c *Client) ListSlotsByDay(ctx context.Context, kind domain.BookingKind, date time.Time) ([]domain.Slot, error) {
	query := url.Values{"date": {businesstime.FormatDate(date)}}

	var resp slotModels.SlotListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/slots/"+string(kind), query, nil, &resp); err != nil {
		return nil, err
	}
	return slotsToDomain(&resp), nil
}

// CreateSlot создаёт слот
func (c *Client) CreateSlot(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	var resp slotModels.SlotResponse
	path := "/api/v1/admin/slots/" + string(slot.Kind)
	if err := c.do(ctx, http.MethodPost, path, nil, slotModels.FromDomainSlotToCreate(slot), &resp); err != nil {
		return nil, err
	}
	created := resp.ToDomain()
	return &created, nil
}

// UpdateSlot частично обновляет слот
func (c *Client) UpdateSlot(ctx context.Context, id int64, changes domain.SlotChanges) (*domain.Slot, error) {
	var resp slotModels.SlotResponse
	path := fmt.Sprintf("/api/v1/admin/slots/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, slotModels.FromSlotChanges(changes), &resp); err != nil {
		return nil, err
	}
	updated := resp.ToDomain()
	return &updated, nil
}

// DeleteSlot удаляет слот
func (c *Client) DeleteSlot(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/slots/%d", id), nil, nil, nil)
}

func (c *Client) bookingMutation(ctx context.Context, path string, body interface{}) (*domain.Booking, error) {
	var resp bookingModels.BookingResponse
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &resp); err != nil {
		return nil, err
	}
	booking := resp.ToDomain()
	return &booking, nil
}

// do выполняет запрос и декодирует ответ в out (если out != nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	message := string(raw)
	var e errorResponse
	if json.Unmarshal(raw, &e) == nil && e.Message != "" {
		message = e.Message
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, message)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, message)
	}
}
