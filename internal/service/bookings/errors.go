package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingCancelled возвращается при попытке изменить отменённое бронирование
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAttendanceNotAllowed возвращается, если посещение нельзя отметить
	ErrAttendanceNotAllowed = errors.New("attendance can only be marked on confirmed bookings")

	// ErrNothingToUpdate возвращается, когда в запросе нет изменений
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
