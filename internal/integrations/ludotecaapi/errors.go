package ludotecaapi

import "errors"

var (
	// ErrNotFound возвращается, когда ресурс не найден
	ErrNotFound = errors.New("ludoteca api client: not found")

	// ErrBadRequest возвращается, когда сервис отклонил запрос как некорректный
	ErrBadRequest = errors.New("ludoteca api client: bad request")

	// ErrConflict возвращается при конфликте состояния (отменено, нет мест)
	ErrConflict = errors.New("ludoteca api client: conflict")

	// ErrUnauthorized возвращается при отсутствии или отказе в доступе
	ErrUnauthorized = errors.New("ludoteca api client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("ludoteca api client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("ludoteca api client: invalid response")
)
