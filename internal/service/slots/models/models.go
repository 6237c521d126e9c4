package models

import (
	"errors"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

var (
	// ErrInvalidSlotStatus возвращается при некорректном статусе слота
	ErrInvalidSlotStatus = errors.New("invalid slot status")
)

// Request модели

// CreateSlotRequest запрос на создание слота.
// Capacity обязательна для дневного пребывания и запрещена для дня рождения.
type CreateSlotRequest struct {
	StartTime businesstime.Time `json:"startTime"`
	EndTime   businesstime.Time `json:"endTime"`
	Status    *string           `json:"status,omitempty" validate:"omitempty,oneof=OPEN CLOSED"`
	Capacity  *int              `json:"capacity,omitempty" validate:"omitempty,min=1,max=100"`
}

// UpdateSlotRequest частичное обновление слота
type UpdateSlotRequest struct {
	StartTime *businesstime.Time `json:"startTime,omitempty"`
	EndTime   *businesstime.Time `json:"endTime,omitempty"`
	Status    *string            `json:"status,omitempty" validate:"omitempty,oneof=OPEN CLOSED"`
	Capacity  *int               `json:"capacity,omitempty" validate:"omitempty,min=1,max=100"`
}

// ToChanges конвертирует запрос в domain изменения
func (r *UpdateSlotRequest) ToChanges() (domain.SlotChanges, error) {
	var changes domain.SlotChanges
	if r.StartTime != nil {
		changes.Start = &r.StartTime.Time
	}
	if r.EndTime != nil {
		changes.End = &r.EndTime.Time
	}
	if r.Status != nil {
		status, err := ToDomainSlotStatus(*r.Status)
		if err != nil {
			return changes, err
		}
		changes.Status = &status
	}
	changes.Capacity = r.Capacity
	return changes, nil
}

// FromSlotChanges строит запрос из domain изменений (для клиента API)
func FromSlotChanges(c domain.SlotChanges) *UpdateSlotRequest {
	req := &UpdateSlotRequest{Capacity: c.Capacity}
	if c.Start != nil {
		start := businesstime.From(*c.Start)
		req.StartTime = &start
	}
	if c.End != nil {
		end := businesstime.From(*c.End)
		req.EndTime = &end
	}
	if c.Status != nil {
		status := string(*c.Status)
		req.Status = &status
	}
	return req
}

// FromDomainSlotToCreate строит запрос на создание из domain слота (для клиента API)
func FromDomainSlotToCreate(s *domain.Slot) *CreateSlotRequest {
	status := string(s.Status)
	req := &CreateSlotRequest{
		StartTime: businesstime.From(s.Start),
		EndTime:   businesstime.From(s.End),
		Status:    &status,
	}
	if s.Daycare != nil {
		capacity := s.Daycare.Capacity
		req.Capacity = &capacity
	}
	return req
}

// Response модели

// SlotResponse ответ с данными слота.
// Booked заполняется для дня рождения, Capacity и AvailableSpots для дневного пребывания.
type SlotResponse struct {
	ID             int64             `json:"id"`
	Kind           string            `json:"kind"`
	Date           string            `json:"date"` // "2024-03-30"
	StartTime      businesstime.Time `json:"startTime"`
	EndTime        businesstime.Time `json:"endTime"`
	Status         string            `json:"status"`
	Booked         *bool             `json:"booked,omitempty"`
	Capacity       *int              `json:"capacity,omitempty"`
	AvailableSpots *int              `json:"availableSpots,omitempty"`
	Remaining      int               `json:"remaining"`

	CreatedAt businesstime.Time `json:"createdAt"`
	UpdatedAt businesstime.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:        s.ID,
		Kind:      string(s.Kind),
		Date:      businesstime.FormatDate(s.Start),
		StartTime: businesstime.From(s.Start),
		EndTime:   businesstime.From(s.End),
		Status:    string(s.Status),
		Remaining: s.Remaining(),
		CreatedAt: businesstime.From(s.CreatedAt),
		UpdatedAt: businesstime.From(s.UpdatedAt),
	}

	if s.Birthday != nil {
		booked := s.Birthday.Booked
		resp.Booked = &booked
	}
	if s.Daycare != nil {
		capacity, available := s.Daycare.Capacity, s.Daycare.AvailableSpots
		resp.Capacity = &capacity
		resp.AvailableSpots = &available
	}

	return resp
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		if r := FromDomainSlot(s); r != nil {
			resp.Slots = append(resp.Slots, *r)
		}
	}
	return resp
}

// ToDomain конвертирует DTO обратно в domain модель
func (r *SlotResponse) ToDomain() domain.Slot {
	s := domain.Slot{
		ID:        r.ID,
		Kind:      domain.BookingKind(r.Kind),
		Start:     r.StartTime.Time,
		End:       r.EndTime.Time,
		Status:    domain.SlotStatus(r.Status),
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
	if date, err := businesstime.ParseDate(r.Date); err == nil {
		s.Date = date
	}

	switch s.Kind {
	case domain.KindDaycare:
		s.Daycare = &domain.DaycareSlot{}
		if r.Capacity != nil {
			s.Daycare.Capacity = *r.Capacity
		}
		if r.AvailableSpots != nil {
			s.Daycare.AvailableSpots = *r.AvailableSpots
		}
	default:
		s.Birthday = &domain.BirthdaySlot{Booked: r.Booked != nil && *r.Booked}
	}

	return s
}

// ToDomainSlotStatus конвертирует строку в статус слота
func ToDomainSlotStatus(status string) (domain.SlotStatus, error) {
	s := domain.SlotStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidSlotStatus
	}
	return s, nil
}
