package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
	"github.com/m04kA/ludoteca-service/pkg/dbmetrics"
	"github.com/m04kA/ludoteca-service/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"kind",
	"date",
	"start_time",
	"end_time",
	"status",
	"capacity",
	"available_spots",
	"booked",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	capacity, available, booked := variantColumns(slot)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"kind",
			"date",
			"start_time",
			"end_time",
			"status",
			"capacity",
			"available_spots",
			"booked",
		).
		Values(
			slot.Kind,
			businesstime.FormatDate(slot.Start),
			slot.Start,
			slot.End,
			slot.Status,
			capacity,
			available,
			booked,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = businesstime.In(createdAt.Time)
	slot.UpdatedAt = businesstime.In(updatedAt.Time)

	return slot, nil
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы два бронирования
// не заняли одно и то же место.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// List получает слоты вида по фильтру, отсортированные по времени начала
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"kind": filter.Kind})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Update сохраняет время, статус и вместимость слота
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) error {
	capacity, available, booked := variantColumns(slot)

	return r.exec(ctx, "Update", psqlbuilder.Update("slots").
		Set("date", businesstime.FormatDate(slot.Start)).
		Set("start_time", slot.Start).
		Set("end_time", slot.End).
		Set("status", slot.Status).
		Set("capacity", capacity).
		Set("available_spots", available).
		Set("booked", booked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}), ErrSlotNotFound)
}

// AdjustAvailability изменяет число свободных мест дневного слота на delta.
// Возвращает ErrCapacityExceeded, если результат выходит за [0, capacity].
func (r *Repository) AdjustAvailability(ctx context.Context, id int64, delta int) error {
	return r.exec(ctx, "AdjustAvailability", psqlbuilder.Update("slots").
		Set("available_spots", squirrel.Expr("available_spots + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("available_spots + ? BETWEEN 0 AND capacity", delta)), ErrCapacityExceeded)
}

// SetBooked отмечает слот дня рождения занятым или свободным
func (r *Repository) SetBooked(ctx context.Context, id int64, booked bool) error {
	return r.exec(ctx, "SetBooked", psqlbuilder.Update("slots").
		Set("booked", booked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}), ErrSlotNotFound)
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
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
		return ErrSlotNotFound
	}

	return nil
}

func (r *Repository) exec(ctx context.Context, op string, builder squirrel.UpdateBuilder, noRows error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
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
		return noRows
	}

	return nil
}

// variantColumns раскладывает вариант слота по колонкам таблицы
func variantColumns(slot *domain.Slot) (capacity, available *int, booked bool) {
	if slot.Daycare != nil {
		c, a := slot.Daycare.Capacity, slot.Daycare.AvailableSpots
		return &c, &a, false
	}
	if slot.Birthday != nil {
		return nil, nil, slot.Birthday.Booked
	}
	return nil, nil, false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot                 domain.Slot
		date                 sql.NullTime
		capacity, available  sql.NullInt64
		booked               bool
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.Kind,
		&date,
		&slot.Start,
		&slot.End,
		&slot.Status,
		&capacity,
		&available,
		&booked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.Start = businesstime.In(slot.Start)
	slot.End = businesstime.In(slot.End)

	// DATE приходит как полночь UTC; переносим на полночь бизнес-зоны
	y, m, d := date.Time.Date()
	slot.Date = time.Date(y, m, d, 0, 0, 0, 0, businesstime.Location())

	switch slot.Kind {
	case domain.KindDaycare:
		slot.Daycare = &domain.DaycareSlot{
			Capacity:       int(capacity.Int64),
			AvailableSpots: int(available.Int64),
		}
	default:
		slot.Birthday = &domain.BirthdaySlot{Booked: booked}
	}

	slot.CreatedAt = businesstime.In(createdAt.Time)
	slot.UpdatedAt = businesstime.In(updatedAt.Time)

	return &slot, nil
}
