package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/ludoteca-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, req.Kind)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	required := []struct{ field, value string }{
		{"contactName", req.ContactName},
		{"contactEmail", req.ContactEmail},
		{"contactPhone", req.ContactPhone},
		{"childName", req.ChildName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, r.field)
		}
		if utf8.RuneCountInString(r.value) > domain.MaxContactLength {
			return fmt.Errorf("%w: %s is too long", ErrInvalidInput, r.field)
		}
	}

	if req.ChildAge != nil && (*req.ChildAge < 0 || *req.ChildAge > domain.MaxChildAge) {
		return fmt.Errorf("%w: childAge must be between 0 and %d", ErrInvalidInput, domain.MaxChildAge)
	}

	if req.Guests != nil {
		if req.Kind != domain.KindBirthday {
			return fmt.Errorf("%w: guests apply to birthday bookings only", ErrInvalidInput)
		}
		if *req.Guests < 1 || *req.Guests > domain.MaxBirthdayGuests {
			return fmt.Errorf("%w: guests must be between 1 and %d", ErrInvalidInput, domain.MaxBirthdayGuests)
		}
	}

	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	return nil
}

// initialStatus дни рождения ждут подтверждения, дневное пребывание подтверждается сразу
func initialStatus(kind domain.BookingKind) domain.BookingStatus {
	if kind == domain.KindDaycare {
		return domain.StatusConfirmed
	}
	return domain.StatusPending
}
