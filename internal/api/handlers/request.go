package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

const maxBodyBytes = 1 << 20

var (
	// ErrEmptyBody возвращается, если тело запроса пустое
	ErrEmptyBody = errors.New("handlers: empty request body")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// DecodeJSON разбирает тело запроса в dst и валидирует теги validate
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	return Validate(dst)
}

// Validate проверяет теги validate у структуры
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// PathID разбирает положительный int64 из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return id, nil
}

// PathKind разбирает вид бронирования из переменной пути {kind}
func PathKind(r *http.Request) (domain.BookingKind, error) {
	kind := domain.BookingKind(strings.ToLower(mux.Vars(r)["kind"]))
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown kind %q", kind)
	}
	return kind, nil
}

// QueryDate разбирает необязательный параметр YYYY-MM-DD в часовом поясе ludoteca
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := businesstime.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
