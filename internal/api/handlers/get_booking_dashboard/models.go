package get_booking_dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	getBookingDashboard "github.com/m04kA/ludoteca-service/internal/usecase/get_booking_dashboard"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// DashboardResponse HTTP response model
type DashboardResponse struct {
	Kind   string          `json:"kind"`
	Months []MonthResponse `json:"months,omitempty"`
	Day    *DayResponse    `json:"day,omitempty"`
}

type MonthResponse struct {
	Key    string         `json:"key"`
	Label  string         `json:"label"`
	Start  string         `json:"start"`
	End    string         `json:"end"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
	Weeks  []WeekResponse `json:"weeks"`
}

type WeekResponse struct {
	Key        string                   `json:"key"`
	Start      string                   `json:"start"`
	End        string                   `json:"end"`
	Total      int                      `json:"total"`
	Counts     map[string]int           `json:"counts"`
	Page       int                      `json:"page"`
	TotalPages int                      `json:"totalPages"`
	Bookings   []models.BookingResponse `json:"bookings"`
}

type DayResponse struct {
	Date     string                   `json:"date"`
	Counts   map[string]int           `json:"counts"`
	Bookings []models.BookingResponse `json:"bookings"`
}

// ToUseCaseRequest формирует запрос use case из query параметров.
// Страницы недель передаются как page=<ключ недели>:<номер>.
func ToUseCaseRequest(kind domain.BookingKind, q url.Values) (*getBookingDashboard.Request, error) {
	req := &getBookingDashboard.Request{
		Kind:      kind,
		Month:     q.Get("month"),
		WeekOrder: q.Get("weekOrder"),
	}

	if raw := q.Get("date"); raw != "" {
		date, err := businesstime.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	for _, raw := range q["page"] {
		i := strings.LastIndex(raw, ":")
		if i <= 0 {
			return nil, fmt.Errorf("page %q: expected <week>:<page>", raw)
		}
		page, err := strconv.Atoi(raw[i+1:])
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", raw, err)
		}
		if req.Pages == nil {
			req.Pages = make(map[string]int)
		}
		req.Pages[raw[:i]] = page
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookingDashboard.Response) *DashboardResponse {
	out := &DashboardResponse{Kind: string(resp.Kind)}

	if resp.Day != nil {
		out.Day = &DayResponse{
			Date:     businesstime.FormatDate(resp.Day.Date),
			Counts:   resp.Day.Counts,
			Bookings: resp.Day.Bookings,
		}
		return out
	}

	out.Months = make([]MonthResponse, 0, len(resp.Months))
	for _, m := range resp.Months {
		mr := MonthResponse{
			Key:    m.Key,
			Label:  m.Label,
			Start:  businesstime.FormatDate(m.Start),
			End:    businesstime.FormatDate(m.End),
			Total:  m.Total,
			Counts: m.Counts,
			Weeks:  make([]WeekResponse, 0, len(m.Weeks)),
		}
		for _, w := range m.Weeks {
			mr.Weeks = append(mr.Weeks, WeekResponse{
				Key:        w.Key,
				Start:      businesstime.FormatDate(w.Start),
				End:        businesstime.FormatDate(w.End),
				Total:      w.Total,
				Counts:     w.Counts,
				Page:       w.Page,
				TotalPages: w.TotalPages,
				Bookings:   w.Bookings,
			})
		}
		out.Months = append(out.Months, mr)
	}

	return out
}
