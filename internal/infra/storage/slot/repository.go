package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

var slotColumns = []string{
	"id",
	"tenant_id",
	"slot_date",
	"start_time",
	"end_time",
	"capacity",
	"booked_count",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
func (r *Repository) Create(ctx context.Context, s *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns(
			"tenant_id",
			"slot_date",
			"start_time",
			"end_time",
			"capacity",
			"booked_count",
			"is_active",
		).
		Values(
			s.TenantID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Capacity,
			s.BookedCount,
			s.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// CreateBatch создает пачку слотов одним INSERT (массовая генерация)
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := txmanager.ExecutorFromContext(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("time_slots").
		Columns(
			"tenant_id",
			"slot_date",
			"start_time",
			"end_time",
			"capacity",
			"booked_count",
			"is_active",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.TenantID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Capacity,
			s.BookedCount,
			s.IsActive,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListByTenantAndDate получает все слоты тенанта на дату (включая неактивные и заполненные)
func (r *Repository) ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.TimeSlot, error) {
	return r.list(ctx, psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"tenant_id": tenantID, "slot_date": date}).
		OrderBy("start_time ASC"))
}

// ListAvailable получает бронируемые слоты тенанта на дату:
// активные, со свободными местами, по возрастанию времени начала
func (r *Repository) ListAvailable(ctx context.Context, tenantID int64, date time.Time) ([]*domain.TimeSlot, error) {
	return r.list(ctx, psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"tenant_id": tenantID, "slot_date": date, "is_active": true}).
		Where(squirrel.Expr("booked_count < capacity")).
		OrderBy("start_time ASC"))
}

// ListAvailableDates получает различные даты диапазона [from, to],
// на которые у тенанта есть хотя бы один бронируемый слот
func (r *Repository) ListAvailableDates(ctx context.Context, tenantID int64, from, to time.Time) ([]time.Time, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT slot_date").
		From("time_slots").
		Where(squirrel.Eq{"tenant_id": tenantID, "is_active": true}).
		Where(squirrel.Expr("booked_count < capacity")).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: ListAvailableDates - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// IncrementBooked атомарно занимает одно место в слоте.
//
// Условие booked_count < capacity входит в сам UPDATE, поэтому две
// конкурирующие брони не могут обе пройти при одном свободном месте:
// проигравшая получает 0 затронутых строк и ErrNoCapacity. Ограничение
// tenant_id защищает от брони чужого слота, is_active - от брони
// деактивированного.
func (r *Repository) IncrementBooked(ctx context.Context, slotID, tenantID int64) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID, "tenant_id": tenantID, "is_active": true}).
		Where(squirrel.Expr("booked_count < capacity")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNoCapacity
	}

	return nil
}

// DecrementBooked освобождает одно место в слоте.
// GREATEST(..., 0) не даёт счётчику уйти в минус, даже если слот и брони
// когда-либо рассинхронизировались.
func (r *Repository) DecrementBooked(ctx context.Context, slotID int64) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("booked_count", squirrel.Expr("GREATEST(booked_count - 1, 0)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ToggleActive переключает флаг активности слота и возвращает новое значение
func (r *Repository) ToggleActive(ctx context.Context, slotID int64) (bool, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_active", squirrel.Expr("NOT is_active")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Suffix("RETURNING is_active").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ToggleActive - build update query: %v", ErrBuildQuery, err)
	}

	var isActive bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&isActive)
	if err == sql.ErrNoRows {
		return false, ErrSlotNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: ToggleActive - execute update: %v", ErrExecQuery, err)
	}

	return isActive, nil
}

// Delete удаляет слот. Слот с активными бронями удалить нельзя -
// условие booked_count = 0 входит в сам DELETE.
func (r *Repository) Delete(ctx context.Context, slotID int64) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"id": slotID, "booked_count": 0}).
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
		// Различаем "слот не найден" и "слот занят бронями"
		if _, err := r.GetByID(ctx, slotID); err != nil {
			return err
		}
		return ErrSlotInUse
	}

	return nil
}

func (r *Repository) list(ctx context.Context, selectBuilder squirrel.SelectBuilder) ([]*domain.TimeSlot, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		s, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var (
		s                    domain.TimeSlot
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.BookedCount,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
