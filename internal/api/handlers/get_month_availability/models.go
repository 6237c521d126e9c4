package get_month_availability

import (
	getMonthAvailability "github.com/m04kA/ludoteca-service/internal/usecase/get_month_availability"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Kind  string     `json:"kind"`
	Month string     `json:"month"`
	Days  []DayCell  `json:"days"`
	Stats []DayStats `json:"stats,omitempty"`
}

type DayCell struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Clickable bool   `json:"clickable"`
}

type DayStats struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Kind:  string(resp.Kind),
		Month: resp.Month.Key(),
		Days:  make([]DayCell, 0, len(resp.Days)),
	}

	for _, d := range resp.Days {
		out.Days = append(out.Days, DayCell{
			Day:       d.Day,
			Date:      businesstime.FormatDate(d.Date),
			Status:    string(d.Status),
			Clickable: d.Clickable,
		})
	}

	for _, s := range resp.Stats {
		out.Stats = append(out.Stats, DayStats{
			Date:      businesstime.FormatDate(s.Date),
			Total:     s.Total,
			Available: s.Available,
			Status:    string(s.Status),
		})
	}

	return out
}
