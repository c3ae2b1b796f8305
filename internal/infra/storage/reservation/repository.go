package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

var reservationColumns = []string{
	"id",
	"public_code",
	"tenant_id",
	"time_slot_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"status",
	"slot_date",
	"start_time",
	"end_time",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь.
// Вызывается в одной транзакции с условным инкрементом счётчика слота:
// оба эффекта либо фиксируются вместе, либо откатываются вместе.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"public_code",
			"tenant_id",
			"time_slot_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"notes",
			"status",
			"slot_date",
			"start_time",
			"end_time",
		).
		Values(
			res.PublicCode,
			res.TenantID,
			res.TimeSlotID,
			res.CustomerName,
			res.CustomerEmail,
			res.CustomerPhone,
			res.Notes,
			res.Status,
			res.Date,
			res.StartTime,
			res.EndTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByPublicCode получает бронь по публичному коду
func (r *Repository) GetByPublicCode(ctx context.Context, code string) (*domain.Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"public_code": code})
}

// ListByFilter получает брони тенанта с фильтрацией по дате, статусу и email клиента.
//
// Сортировка: для выборки на конкретную дату - по времени начала (ASC),
// иначе - по дате и времени (DESC, сначала свежие).
func (r *Repository) ListByFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.CustomerEmail != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Eq{"LOWER(customer_email)": strings.ToLower(*filter.CustomerEmail)},
		)
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("slot_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatusFrom переводит бронь в статус to, только если текущий статус
// входит в allowedFrom. Условие входит в сам UPDATE, поэтому конкурирующие
// переходы из одного состояния не могут пройти оба.
func (r *Repository) UpdateStatusFrom(
	ctx context.Context,
	id int64,
	allowedFrom []domain.ReservationStatus,
	to domain.ReservationStatus,
) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": statusStrings(allowedFrom)})

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "бронь не найдена" и "переход запрещён"
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidTransition
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Reservation, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var (
		res                  domain.Reservation
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.PublicCode,
		&res.TenantID,
		&res.TimeSlotID,
		&res.CustomerName,
		&res.CustomerEmail,
		&res.CustomerPhone,
		&res.Notes,
		&res.Status,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan reservation: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var (
			res                  domain.Reservation
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&res.ID,
			&res.PublicCode,
			&res.TenantID,
			&res.TimeSlotID,
			&res.CustomerName,
			&res.CustomerEmail,
			&res.CustomerPhone,
			&res.Notes,
			&res.Status,
			&res.Date,
			&res.StartTime,
			&res.EndTime,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
