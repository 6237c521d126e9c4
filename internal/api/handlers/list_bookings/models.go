package list_bookings

import (
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

var errYearMonthPair = errors.New("year and month must be given together")

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(kind domain.BookingKind, yearStr, monthStr, dateStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Kind: kind}

	// Парсим date если указана
	if dateStr != "" {
		date, err := businesstime.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
		return req, nil
	}

	if (yearStr == "") != (monthStr == "") {
		return nil, errYearMonthPair
	}
	if yearStr == "" {
		return req, nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, err
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil, err
	}
	m := time.Month(month)
	req.Year, req.Month = &year, &m

	return req, nil
}
