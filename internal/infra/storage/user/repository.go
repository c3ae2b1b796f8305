package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

var userColumns = []string{
	"id",
	"tenant_id",
	"role",
	"name",
	"email",
	"phone",
	"password_hash",
	"created_at",
}

// Repository репозиторий для работы с пользователями тенантов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового пользователя тенанта.
// Email уникален глобально; гонка на индексе возвращается как ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, u *domain.TenantUser) (*domain.TenantUser, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tenant_users").
		Columns(
			"tenant_id",
			"role",
			"name",
			"email",
			"phone",
			"password_hash",
		).
		Values(
			u.TenantID,
			u.Role,
			u.Name,
			u.Email,
			u.Phone,
			u.PasswordHash,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &createdAt)

	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time

	return u, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TenantUser, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// EmailExists проверяет, зарегистрирован ли email у какого-либо тенанта
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("tenant_users").
		Where(squirrel.Eq{"LOWER(email)": strings.ToLower(email)}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: EmailExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: EmailExists - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.TenantUser, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("tenant_users").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var (
		u         domain.TenantUser
		createdAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.TenantID,
		&u.Role,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan user: %v", ErrScanRow, err)
	}

	u.CreatedAt = createdAt.Time

	return &u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
