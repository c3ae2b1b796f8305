package tenants

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
	"github.com/m04kA/SMC-ReservationService/internal/subscription"
)

// Service сервис каталога тенантов: регистрация, поиск по слагу, настройки
type Service struct {
	tenantRepo   TenantRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса тенантов
func NewService(
	tenantRepo TenantRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		tenantRepo:   tenantRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Signup регистрирует нового тенанта: выделяет уникальный слаг, создает
// тенанта с пробной подпиской и владельца с ролью admin - всё в одной
// транзакции.
func (s *Service) Signup(ctx context.Context, req *models.SignupRequest) (*models.TenantResponse, error) {
	s.logger.Info("Signup: registering tenant business=%q email=%s", req.BusinessName, req.Email)

	if err := validateSignup(req); err != nil {
		s.logger.Warn("Signup: validation failed: %v", err)
		return nil, err
	}

	// Проверка уникальности email владельца до транзакции - быстрый отказ.
	// Гонку на email окончательно закрывает уникальный индекс.
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		s.logger.Error("Signup: failed to check email: %v", err)
		return nil, fmt.Errorf("%w: failed to check email: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("Signup: email %s already registered", req.Email)
		return nil, ErrDuplicateEmail
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Signup: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	settings, err := settingsFromRequest(req.Settings)
	if err != nil {
		s.logger.Warn("Signup: invalid settings: %v", err)
		return nil, err
	}

	var result *domain.Tenant

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Выделяем слаг внутри транзакции, чтобы проверка и вставка
		// видели одно состояние; гонку закрывает уникальный индекс.
		uniqueSlug, err := s.allocateSlug(txCtx, req.BusinessName)
		if err != nil {
			return err
		}

		tenant := &domain.Tenant{
			Slug:         uniqueSlug,
			BusinessName: req.BusinessName,
			Email:        req.Email,
			Phone:        req.Phone,
			ServiceType:  req.ServiceType,
			Description:  req.Description,
			Subscription: domain.Subscription{
				Status:           domain.SubscriptionTrial,
				Plan:             domain.PlanStarter,
				CurrentPeriodEnd: now.AddDate(0, 0, domain.DefaultTrialDays),
			},
			Settings: settings,
		}

		created, err := s.tenantRepo.Create(txCtx, tenant)
		if err != nil {
			if errors.Is(err, tenantRepo.ErrDuplicateSlug) {
				return fmt.Errorf("%w: slug collision on insert: %v", ErrInternal, err)
			}
			return fmt.Errorf("%w: failed to create tenant: %v", ErrInternal, err)
		}

		owner, err := s.userRepo.Create(txCtx, &domain.TenantUser{
			TenantID:     created.ID,
			Role:         domain.RoleAdmin,
			Name:         req.OwnerName,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: string(passwordHash),
		})
		if err != nil {
			if errors.Is(err, userRepo.ErrDuplicateEmail) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("%w: failed to create owner user: %v", ErrInternal, err)
		}

		if err := s.tenantRepo.SetOwner(txCtx, created.ID, owner.ID); err != nil {
			return fmt.Errorf("%w: failed to bind owner: %v", ErrInternal, err)
		}

		created.OwnerUserID = &owner.ID
		result = created
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrDuplicateEmail) && !errors.Is(err, ErrInvalidInput) {
			s.logger.Error("Signup: transaction failed: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Signup: tenant created id=%d slug=%s", result.ID, result.Slug)
	return models.FromDomainTenant(result), nil
}

// GetBySlug получает тенанта по слагу (публичная страница записи)
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("GetBySlug: tenant slug=%s not found", slug)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("GetBySlug: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTenant(tenant), nil
}

// UpdateSettings заменяет настройки расписания и брендинга тенанта.
// Доступно только администраторам тенанта с активной подпиской.
// Существующие слоты не пересчитываются.
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.TenantResponse, error) {
	s.logger.Info("UpdateSettings: tenant=%d user=%d", req.TenantID, req.UserID)

	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("UpdateSettings: tenant id=%d not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("UpdateSettings: repository error for tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAdminAccess(ctx, req.TenantID, req.UserID); err != nil {
		s.logger.Warn("UpdateSettings: access denied for user=%d to tenant=%d", req.UserID, req.TenantID)
		return nil, err
	}

	if err := subscription.Check(tenant, s.timeProvider.Now()); err != nil {
		s.logger.Warn("UpdateSettings: subscription inactive for tenant=%d", req.TenantID)
		return nil, ErrSubscriptionInactive
	}

	settings, err := settingsFromRequest(&req.Settings)
	if err != nil {
		s.logger.Warn("UpdateSettings: invalid settings: %v", err)
		return nil, err
	}

	if err := s.tenantRepo.UpdateSettings(ctx, req.TenantID, settings); err != nil {
		s.logger.Error("UpdateSettings: repository error for tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	tenant.Settings = settings

	s.logger.Info("UpdateSettings: tenant=%d settings updated", req.TenantID)
	return models.FromDomainTenant(tenant), nil
}

// checkAdminAccess проверяет, что пользователь - администратор тенанта
func (s *Service) checkAdminAccess(ctx context.Context, tenantID, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkAdminAccess - repository error: %v", ErrInternal, err)
	}

	if user.TenantID != tenantID || !user.IsAdmin() {
		return ErrAccessDenied
	}

	return nil
}
