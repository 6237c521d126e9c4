package get_booking_dashboard

import (
	"time"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
)

// Settings параметры админ-панели из конфигурации
type Settings struct {
	PageSize       int
	TrailingMonths map[domain.BookingKind]int
	WeekOrder      calendar.WeekOrder
}

// Request модель запроса панели бронирований
type Request struct {
	Kind domain.BookingKind
	// Month ограничивает панель одним месяцем YYYY-MM
	Month string
	// Date выбранный день: панель становится плоским списком
	Date *time.Time
	// WeekOrder переопределяет порядок недель из конфигурации
	WeekOrder string
	// Pages текущая страница по ключу недели
	Pages map[string]int
}

// Response панель бронирований
type Response struct {
	Kind   domain.BookingKind
	Months []Month
	// Day заполняется вместо Months при выбранном дне
	Day *Day
}

// Month группа бронирований календарного месяца
type Month struct {
	Key    string
	Label  string
	Start  time.Time
	End    time.Time
	Total  int
	Counts map[string]int
	Weeks  []Week
}

// Week группа бронирований недели с пагинацией
type Week struct {
	Key        string
	Start      time.Time
	End        time.Time
	Total      int
	Counts     map[string]int
	Page       int
	TotalPages int
	Bookings   []models.BookingResponse
}

// Day бронирования выбранного дня
type Day struct {
	Date     time.Time
	Counts   map[string]int
	Bookings []models.BookingResponse
}
