package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidTimeRange возвращается, если конец слота не позже начала или слот переходит через полночь
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrCapacityBelowBooked возвращается при уменьшении вместимости ниже числа занятых мест
	ErrCapacityBelowBooked = errors.New("capacity below booked spots")

	// ErrSlotHasBookings возвращается при удалении слота с активными бронированиями
	ErrSlotHasBookings = errors.New("slot has active bookings")

	// ErrNothingToUpdate возвращается, когда в запросе нет изменений
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
