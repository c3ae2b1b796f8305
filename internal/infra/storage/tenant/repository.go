package tenant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

var tenantColumns = []string{
	"id",
	"slug",
	"business_name",
	"email",
	"phone",
	"service_type",
	"description",
	"owner_user_id",
	"subscription_status",
	"subscription_plan",
	"current_period_end",
	"primary_color",
	"slot_duration_minutes",
	"max_advance_booking_days",
	"working_hours_start",
	"working_hours_end",
	"working_days",
	"logo_url",
	"background_url",
	"public_phone",
	"public_email",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с тенантами
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория тенантов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового тенанта. Слаг должен быть уже выделен вызывающей стороной;
// гонка на уникальном индексе возвращается как ErrDuplicateSlug.
func (r *Repository) Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tenants").
		Columns(
			"slug",
			"business_name",
			"email",
			"phone",
			"service_type",
			"description",
			"subscription_status",
			"subscription_plan",
			"current_period_end",
			"primary_color",
			"slot_duration_minutes",
			"max_advance_booking_days",
			"working_hours_start",
			"working_hours_end",
			"working_days",
			"logo_url",
			"background_url",
			"public_phone",
			"public_email",
		).
		Values(
			t.Slug,
			t.BusinessName,
			t.Email,
			t.Phone,
			t.ServiceType,
			t.Description,
			t.Subscription.Status,
			t.Subscription.Plan,
			t.Subscription.CurrentPeriodEnd,
			t.Settings.PrimaryColor,
			t.Settings.SlotDurationMinutes,
			t.Settings.MaxAdvanceBookingDays,
			t.Settings.WorkingHoursStart,
			t.Settings.WorkingHoursEnd,
			pq.Array(t.Settings.WorkingDays),
			t.Settings.LogoURL,
			t.Settings.BackgroundURL,
			t.Settings.PublicPhone,
			t.Settings.PublicEmail,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает тенанта по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug получает тенанта по слагу
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

// SlugExists проверяет, занят ли слаг
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("tenants").
		Where(squirrel.Eq{"slug": slug}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// SetOwner привязывает владельца к тенанту (вызывается в одной транзакции с созданием пользователя)
func (r *Repository) SetOwner(ctx context.Context, tenantID, ownerUserID int64) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("tenants").
		Set("owner_user_id", ownerUserID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetOwner - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOwner - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOwner - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTenantNotFound
	}

	return nil
}

// UpdateSettings заменяет настройки расписания и брендинга тенанта.
// Существующие слоты не изменяются.
func (r *Repository) UpdateSettings(ctx context.Context, tenantID int64, settings domain.TenantSettings) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("tenants").
		Set("primary_color", settings.PrimaryColor).
		Set("slot_duration_minutes", settings.SlotDurationMinutes).
		Set("max_advance_booking_days", settings.MaxAdvanceBookingDays).
		Set("working_hours_start", settings.WorkingHoursStart).
		Set("working_hours_end", settings.WorkingHoursEnd).
		Set("working_days", pq.Array(settings.WorkingDays)).
		Set("logo_url", settings.LogoURL).
		Set("background_url", settings.BackgroundURL).
		Set("public_phone", settings.PublicPhone).
		Set("public_email", settings.PublicEmail).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTenantNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Tenant, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(tenantColumns...).
		From("tenants").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var (
		t                    domain.Tenant
		workingDays          pq.Int64Array
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Slug,
		&t.BusinessName,
		&t.Email,
		&t.Phone,
		&t.ServiceType,
		&t.Description,
		&t.OwnerUserID,
		&t.Subscription.Status,
		&t.Subscription.Plan,
		&t.Subscription.CurrentPeriodEnd,
		&t.Settings.PrimaryColor,
		&t.Settings.SlotDurationMinutes,
		&t.Settings.MaxAdvanceBookingDays,
		&t.Settings.WorkingHoursStart,
		&t.Settings.WorkingHoursEnd,
		&workingDays,
		&t.Settings.LogoURL,
		&t.Settings.BackgroundURL,
		&t.Settings.PublicPhone,
		&t.Settings.PublicEmail,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan tenant: %v", ErrScanRow, err)
	}

	t.Settings.WorkingDays = make([]int, len(workingDays))
	for i, d := range workingDays {
		t.Settings.WorkingDays[i] = int(d)
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
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
