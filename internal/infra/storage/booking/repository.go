package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
	"github.com/m04kA/ludoteca-service/pkg/dbmetrics"
	"github.com/m04kA/ludoteca-service/pkg/psqlbuilder"
)

// effectiveDate дата, по которой бронирование попадает в календарь:
// начало слота, иначе дата создания
const effectiveDate = "COALESCE(s.start_time, b.created_at)"

var bookingColumns = []string{
	"b.id",
	"b.kind",
	"b.slot_id",
	"b.status",
	"b.attendance",
	"b.contact_name",
	"b.contact_email",
	"b.contact_phone",
	"b.child_name",
	"b.child_age",
	"b.guests",
	"b.comment",
	"s.start_time",
	"s.end_time",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте есть активная транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	attendance := booking.Attendance
	if attendance == "" {
		attendance = domain.AttendanceUnknown
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"kind",
			"slot_id",
			"status",
			"attendance",
			"contact_name",
			"contact_email",
			"contact_phone",
			"child_name",
			"child_age",
			"guests",
			"comment",
		).
		Values(
			booking.Kind,
			booking.SlotID,
			booking.Status,
			attendance,
			booking.Contact.Name,
			booking.Contact.Email,
			booking.Contact.Phone,
			booking.ChildName,
			booking.ChildAge,
			booking.Guests,
			booking.Comment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.Attendance = attendance
	booking.CreatedAt = businesstime.In(createdAt.Time)
	booking.UpdatedAt = businesstime.In(updatedAt.Time)

	return booking, nil
}

// GetByID получает бронирование по ID вместе со временем слота.
// Внутри транзакции строка бронирования блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBookings().Where(squirrel.Eq{"b.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования вида по фильтру.
// Период (From включительно, To исключительно) применяется к дате начала
// слота, а для бронирований без слота к дате создания.
// Сортировка по этой дате по возрастанию.
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBookings().Where(squirrel.Eq{"b.kind": filter.Kind})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(effectiveDate+" >= ?", *filter.From))
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(effectiveDate+" < ?", *filter.To))
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": inactive})
	}

	query, args, err := selectBuilder.OrderBy(effectiveDate+" ASC", "b.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{"status": status})
}

// UpdateAttendance записывает факт посещения
func (r *Repository) UpdateAttendance(ctx context.Context, id int64, attendance domain.AttendanceStatus) error {
	return r.update(ctx, "UpdateAttendance", id, map[string]interface{}{"attendance": attendance})
}

// UpdateFields обновляет только переданные поля бронирования
func (r *Repository) UpdateFields(ctx context.Context, id int64, changes domain.BookingChanges) error {
	fields := make(map[string]interface{})

	if changes.ContactName != nil {
		fields["contact_name"] = *changes.ContactName
	}
	if changes.ContactEmail != nil {
		fields["contact_email"] = *changes.ContactEmail
	}
	if changes.ContactPhone != nil {
		fields["contact_phone"] = *changes.ContactPhone
	}
	if changes.ChildName != nil {
		fields["child_name"] = *changes.ChildName
	}
	if changes.ChildAge != nil {
		fields["child_age"] = *changes.ChildAge
	}
	if changes.Guests != nil {
		fields["guests"] = *changes.Guests
	}
	if changes.Comment != nil {
		fields["comment"] = *changes.Comment
	}

	return r.update(ctx, "UpdateFields", id, fields)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CountActiveBySlot считает активные бронирования слота
func (r *Repository) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("slots s ON s.id = b.slot_id")
}

func (r *Repository) update(ctx context.Context, op string, id int64, fields map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		slotID               sql.NullInt64
		childAge, guests     sql.NullInt64
		comment              sql.NullString
		slotStart, slotEnd   sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Kind,
		&slotID,
		&booking.Status,
		&booking.Attendance,
		&booking.Contact.Name,
		&booking.Contact.Email,
		&booking.Contact.Phone,
		&booking.ChildName,
		&childAge,
		&guests,
		&comment,
		&slotStart,
		&slotEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if slotID.Valid {
		id := slotID.Int64
		booking.SlotID = &id
	}
	if slotStart.Valid {
		booking.Slot = &domain.SlotTime{
			Start: businesstime.In(slotStart.Time),
			End:   businesstime.In(slotEnd.Time),
		}
	}
	if childAge.Valid {
		age := int(childAge.Int64)
		booking.ChildAge = &age
	}
	if guests.Valid {
		g := int(guests.Int64)
		booking.Guests = &g
	}
	if comment.Valid {
		c := comment.String
		booking.Comment = &c
	}

	booking.CreatedAt = businesstime.In(createdAt.Time)
	booking.UpdatedAt = businesstime.In(updatedAt.Time)

	return &booking, nil
}
