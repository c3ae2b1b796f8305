package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-ReservationService/internal/subscription"
)

// UseCase сценарий бронирования места в слоте.
//
// Захват места выполняется условным инкрементом счётчика внутри
// сериализуемой транзакции вместе со вставкой брони: при конкуренции
// за последнее место ровно один запрос проходит, остальные получают
// ErrSlotUnavailable.
type UseCase struct {
	tenantRepo      TenantRepository
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	cache           CacheInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр usecase бронирования
func NewUseCase(
	tenantRepo TenantRepository,
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	cache CacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:      tenantRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает бронь в статусе pending
func (uc *UseCase) Execute(ctx context.Context, req *CreateReservationRequest) (*CreateReservationResponse, error) {
	uc.logger.Info("CreateReservation: tenant=%d slot=%d email=%s", req.TenantID, req.TimeSlotID, req.CustomerEmail)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	tenant, err := uc.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("CreateReservation: tenant id=%d not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateReservation: failed to load tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to load tenant: %v", ErrInternal, err)
	}

	// Просроченная подписка закрывает приём новых броней
	if err := subscription.Check(tenant, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateReservation: subscription inactive for tenant=%d", req.TenantID)
		return nil, ErrSubscriptionInactive
	}

	var result *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByID(txCtx, req.TimeSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to load slot: %v", ErrInternal, err)
		}

		// Слот чужого тенанта неотличим от несуществующего
		if slot.TenantID != req.TenantID {
			return ErrSlotNotFound
		}

		if err := uc.checkBookable(tenant, slot); err != nil {
			return err
		}

		// Условный инкремент: WHERE booked_count < capacity входит в сам
		// UPDATE, ноль затронутых строк означает проигранную гонку
		if err := uc.slotRepo.IncrementBooked(txCtx, slot.ID, req.TenantID); err != nil {
			if errors.Is(err, slotRepo.ErrNoCapacity) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			PublicCode:    uuid.NewString(),
			TenantID:      req.TenantID,
			TimeSlotID:    slot.ID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Notes:         req.Notes,
			Status:        domain.StatusPending,
			Date:          slot.Date,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.cache.Invalidate(req.TenantID)

	uc.logger.Info("CreateReservation: reservation created id=%d code=%s", result.ID, result.PublicCode)
	return fromDomain(result), nil
}

// checkBookable проверяет, что слот открыт для бронирования и его дата
// попадает в окно [сегодня, сегодня + maxAdvanceBookingDays]
func (uc *UseCase) checkBookable(tenant *domain.Tenant, slot *domain.TimeSlot) error {
	if !slot.IsActive {
		return ErrSlotUnavailable
	}
	if !slot.HasCapacity() {
		return ErrSlotUnavailable
	}

	today := startOfDay(uc.timeProvider.Now())
	slotDate := startOfDay(slot.Date)

	if slotDate.Before(today) {
		return ErrSlotUnavailable
	}
	horizon := today.AddDate(0, 0, tenant.Settings.MaxAdvanceBookingDays)
	if slotDate.After(horizon) {
		return ErrSlotUnavailable
	}

	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
