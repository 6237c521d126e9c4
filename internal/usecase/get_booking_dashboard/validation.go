package get_booking_dashboard

import (
	"fmt"

	"github.com/m04kA/ludoteca-service/internal/calendar"
)

// validateRequest валидирует вид, месяц и страницы запроса
func validateRequest(req *Request) (*calendar.YearMonth, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, req.Kind)
	}

	for key, page := range req.Pages {
		if page < 1 {
			return nil, fmt.Errorf("%w: page of %s must be positive", ErrInvalidInput, key)
		}
	}

	if req.Month == "" {
		return nil, nil
	}
	month, err := calendar.ParseYearMonth(req.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &month, nil
}
