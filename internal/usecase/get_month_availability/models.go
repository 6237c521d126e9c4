package get_month_availability

import (
	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
)

// Request модель запроса календаря доступности
type Request struct {
	Kind  domain.BookingKind
	Month string // YYYY-MM; пусто - текущий месяц
}

// Response календарь доступности месяца
type Response struct {
	Kind  domain.BookingKind
	Month calendar.YearMonth
	Days  []calendar.DayCell
	// Stats заполняется только для дней рождения
	Stats []calendar.DayStat
}
