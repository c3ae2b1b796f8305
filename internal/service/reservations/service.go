package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/internal/subscription"
)

// Service сервис журнала броней: переходы статусов, отмены, выборки.
//
// Создание брони вынесено в отдельный usecase, поскольку требует
// сериализуемой транзакции с условным захватом места в слоте.
type Service struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	tenantRepo      TenantRepository
	userRepo        UserRepository
	txManager       TransactionManager
	cache           CacheInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	tenantRepo TenantRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		tenantRepo:      tenantRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// UpdateStatus переводит бронь в статус confirmed или completed.
//
// Отмена идёт через Cancel: она освобождает место в слоте, чего
// обычный переход статуса делать не должен.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation=%d user=%d status=%s", req.ReservationID, req.UserID, req.NewStatus)

	var allowedFrom []domain.ReservationStatus
	switch req.NewStatus {
	case domain.StatusConfirmed:
		allowedFrom = []domain.ReservationStatus{domain.StatusPending}
	case domain.StatusCompleted:
		allowedFrom = []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed}
	default:
		return nil, fmt.Errorf("%w: unsupported target status %q", ErrInvalidInput, req.NewStatus)
	}

	res, err := s.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeAdmin(ctx, res.TenantID, req.UserID); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.UpdateStatusFrom(ctx, req.ReservationID, allowedFrom, req.NewStatus); err != nil {
		return nil, s.mapTransitionError(req.ReservationID, err)
	}

	res.Status = req.NewStatus

	s.logger.Info("UpdateStatus: reservation=%d moved to %s", req.ReservationID, req.NewStatus)
	return models.FromDomainReservation(res), nil
}

// Cancel отменяет бронь от имени администратора тенанта.
// Перевод в cancelled и освобождение места в слоте идут одной транзакцией.
func (s *Service) Cancel(ctx context.Context, req *models.CancelRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: reservation=%d user=%d", req.ReservationID, req.UserID)

	res, err := s.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeAdmin(ctx, res.TenantID, req.UserID); err != nil {
		return nil, err
	}

	return s.cancel(ctx, res)
}

// CancelByCode отменяет бронь от имени клиента по публичному коду.
//
// Клиент подтверждает владение бронью совпадением email (без учёта
// регистра); при несовпадении возвращается ErrReservationNotFound,
// чтобы не раскрывать существование кода. Отмена доступна только до
// даты слота включительно.
func (s *Service) CancelByCode(ctx context.Context, req *models.CancelByCodeRequest) (*models.ReservationResponse, error) {
	if req.PublicCode == "" || req.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: code and email are required", ErrInvalidInput)
	}

	res, err := s.reservationRepo.GetByPublicCode(ctx, req.PublicCode)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("CancelByCode: repository error: %v", err)
		return nil, fmt.Errorf("%w: CancelByCode - repository error: %v", ErrInternal, err)
	}

	if !strings.EqualFold(res.CustomerEmail, req.CustomerEmail) {
		s.logger.Warn("CancelByCode: email mismatch for reservation=%d", res.ID)
		return nil, ErrReservationNotFound
	}

	today := startOfDay(s.timeProvider.Now())
	if startOfDay(res.Date).Before(today) {
		s.logger.Warn("CancelByCode: reservation=%d date already passed", res.ID)
		return nil, ErrCancellationClosed
	}

	s.logger.Info("CancelByCode: cancelling reservation=%d", res.ID)
	return s.cancel(ctx, res)
}

// List возвращает брони тенанта с фильтрацией по дате, статусу и email
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	if err := s.authorizeAdmin(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.ListByFilter(ctx, domain.ReservationsFilter{
		TenantID:      req.TenantID,
		Date:          req.Date,
		Status:        req.Status,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// cancel переводит бронь в cancelled и освобождает место в слоте.
// Условие перехода входит в сам UPDATE: повторная отмена не пройдёт
// и место не будет освобождено дважды.
func (s *Service) cancel(ctx context.Context, res *domain.Reservation) (*models.ReservationResponse, error) {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.reservationRepo.UpdateStatusFrom(
			txCtx,
			res.ID,
			[]domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed},
			domain.StatusCancelled,
		); err != nil {
			return s.mapTransitionError(res.ID, err)
		}

		if err := s.slotRepo.DecrementBooked(txCtx, res.TimeSlotID); err != nil {
			return fmt.Errorf("%w: cancel - release slot %d: %v", ErrInternal, res.TimeSlotID, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("cancel: transaction failed for reservation=%d: %v", res.ID, err)
		}
		return nil, err
	}

	s.cache.Invalidate(res.TenantID)

	res.Status = domain.StatusCancelled
	now := s.timeProvider.Now()
	res.CancelledAt = &now

	s.logger.Info("cancel: reservation=%d cancelled, slot=%d released", res.ID, res.TimeSlotID)
	return models.FromDomainReservation(res), nil
}

// authorizeAdmin проверяет права администратора тенанта и подписку
func (s *Service) authorizeAdmin(ctx context.Context, tenantID, userID int64) error {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			return ErrTenantNotFound
		}
		return fmt.Errorf("%w: authorizeAdmin - repository error: %v", ErrInternal, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: authorizeAdmin - repository error: %v", ErrInternal, err)
	}

	if user.TenantID != tenantID || !user.IsAdmin() {
		s.logger.Warn("authorizeAdmin: access denied for user=%d to tenant=%d", userID, tenantID)
		return ErrAccessDenied
	}

	if err := subscription.Check(tenant, s.timeProvider.Now()); err != nil {
		s.logger.Warn("authorizeAdmin: subscription inactive for tenant=%d", tenantID)
		return ErrSubscriptionInactive
	}

	return nil
}

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("getReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: getReservation - repository error: %v", ErrInternal, err)
	}
	return res, nil
}

func (s *Service) mapTransitionError(reservationID int64, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrInvalidTransition):
		s.logger.Warn("mapTransitionError: transition not allowed for reservation=%d", reservationID)
		return ErrInvalidTransition
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	default:
		s.logger.Error("mapTransitionError: repository error for reservation=%d: %v", reservationID, err)
		return fmt.Errorf("%w: update status - repository error: %v", ErrInternal, err)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
