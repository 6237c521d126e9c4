package get_month_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/ludoteca-service/internal/calendar"
)

// validateRequest валидирует вид и разбирает месяц запроса
func validateRequest(req *Request, now time.Time) (calendar.YearMonth, error) {
	if !req.Kind.IsValid() {
		return calendar.YearMonth{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, req.Kind)
	}

	if req.Month == "" {
		return calendar.YearMonthOf(now), nil
	}

	month, err := calendar.ParseYearMonth(req.Month)
	if err != nil {
		return calendar.YearMonth{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return month, nil
}
