package models

import (
	"errors"
	"time"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidAttendance возвращается при некорректной отметке посещения
	ErrInvalidAttendance = errors.New("invalid attendance status")

	// ErrInvalidKind возвращается при неизвестном виде бронирования
	ErrInvalidKind = errors.New("invalid booking kind")
)

// Request модели

// ListBookingsRequest выборка бронирований вида.
// Year+Month выбирают месяц, Date выбирает день; без них возвращаются все.
type ListBookingsRequest struct {
	Kind  domain.BookingKind
	Year  *int
	Month *time.Month
	Date  *time.Time
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

// UpdateBookingRequest частичное обновление полей бронирования
type UpdateBookingRequest struct {
	ContactName  *string `json:"contactName,omitempty" validate:"omitempty,min=1,max=120"`
	ContactEmail *string `json:"contactEmail,omitempty" validate:"omitempty,email,max=120"`
	ContactPhone *string `json:"contactPhone,omitempty" validate:"omitempty,min=6,max=120"`
	ChildName    *string `json:"childName,omitempty" validate:"omitempty,min=1,max=120"`
	ChildAge     *int    `json:"childAge,omitempty" validate:"omitempty,min=0,max=14"`
	Guests       *int    `json:"guests,omitempty" validate:"omitempty,min=1,max=40"`
	Comment      *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

// ToChanges конвертирует запрос в domain изменения
func (r *UpdateBookingRequest) ToChanges() domain.BookingChanges {
	return domain.BookingChanges{
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		ChildName:    r.ChildName,
		ChildAge:     r.ChildAge,
		Guests:       r.Guests,
		Comment:      r.Comment,
	}
}

// FromChanges строит запрос из domain изменений (для клиента API)
func FromChanges(c domain.BookingChanges) *UpdateBookingRequest {
	return &UpdateBookingRequest{
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		ChildName:    c.ChildName,
		ChildAge:     c.ChildAge,
		Guests:       c.Guests,
		Comment:      c.Comment,
	}
}

// MarkAttendanceRequest запрос на отметку посещения
type MarkAttendanceRequest struct {
	Attendance string `json:"attendance" validate:"required,oneof=UNKNOWN ATTENDED NO_SHOW"`
}

// Response модели

// BookingResponse ответ с данными бронирования.
// Время в формате API без смещения, в зоне Europe/Madrid.
type BookingResponse struct {
	ID         int64              `json:"id"`
	Kind       string             `json:"kind"`
	SlotID     *int64             `json:"slotId,omitempty"`
	StartTime  *businesstime.Time `json:"startTime,omitempty"`
	EndTime    *businesstime.Time `json:"endTime,omitempty"`
	Status     string             `json:"status"`
	Attendance string             `json:"attendance"`

	ContactName  string  `json:"contactName"`
	ContactEmail string  `json:"contactEmail"`
	ContactPhone string  `json:"contactPhone"`
	ChildName    string  `json:"childName"`
	ChildAge     *int    `json:"childAge,omitempty"`
	Guests       *int    `json:"guests,omitempty"`
	Comment      *string `json:"comment,omitempty"`

	CreatedAt businesstime.Time `json:"createdAt"`
	UpdatedAt businesstime.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		Kind:         string(b.Kind),
		SlotID:       b.SlotID,
		Status:       string(b.Status),
		Attendance:   string(b.Attendance),
		ContactName:  b.Contact.Name,
		ContactEmail: b.Contact.Email,
		ContactPhone: b.Contact.Phone,
		ChildName:    b.ChildName,
		ChildAge:     b.ChildAge,
		Guests:       b.Guests,
		Comment:      b.Comment,
		CreatedAt:    businesstime.From(b.CreatedAt),
		UpdatedAt:    businesstime.From(b.UpdatedAt),
	}

	if b.Slot != nil {
		start, end := businesstime.From(b.Slot.Start), businesstime.From(b.Slot.End)
		resp.StartTime = &start
		resp.EndTime = &end
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomain конвертирует DTO обратно в domain модель
func (r *BookingResponse) ToDomain() domain.Booking {
	b := domain.Booking{
		ID:         r.ID,
		Kind:       domain.BookingKind(r.Kind),
		SlotID:     r.SlotID,
		Status:     domain.BookingStatus(r.Status),
		Attendance: domain.AttendanceStatus(r.Attendance),
		Contact: domain.Contact{
			Name:  r.ContactName,
			Email: r.ContactEmail,
			Phone: r.ContactPhone,
		},
		ChildName: r.ChildName,
		ChildAge:  r.ChildAge,
		Guests:    r.Guests,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}

	if r.StartTime != nil && !r.StartTime.IsZero() {
		b.Slot = &domain.SlotTime{Start: r.StartTime.Time}
		if r.EndTime != nil {
			b.Slot.End = r.EndTime.Time
		}
	}

	return b
}

// ToDomainKind конвертирует строку в domain.BookingKind с валидацией
func ToDomainKind(kind string) (domain.BookingKind, error) {
	k := domain.BookingKind(kind)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// ToDomainBookingStatus конвертирует строку в статус, допустимый для вида
func ToDomainBookingStatus(kind domain.BookingKind, status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(kind, s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainAttendance конвертирует строку в отметку посещения
func ToDomainAttendance(attendance string) (domain.AttendanceStatus, error) {
	a := domain.AttendanceStatus(attendance)
	if !a.IsValid() {
		return "", ErrInvalidAttendance
	}
	return a, nil
}
