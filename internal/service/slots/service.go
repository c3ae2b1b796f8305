package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
	"github.com/m04kA/SMC-ReservationService/internal/subscription"
)

// Service сервис каталога слотов: создание, генерация, деактивация, удаление
type Service struct {
	slotRepo     SlotRepository
	tenantRepo   TenantRepository
	userRepo     UserRepository
	cache        CacheInvalidator
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	tenantRepo TenantRepository,
	userRepo UserRepository,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		tenantRepo:   tenantRepo,
		userRepo:     userRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает одиночный слот
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: tenant=%d user=%d date=%s start=%s",
		req.TenantID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	if _, err := s.authorizeAdmin(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	slot, err := buildSlot(req)
	if err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSlot - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(req.TenantID)

	s.logger.Info("CreateSlot: slot created id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// Generate массово создает слоты из расписания тенанта на диапазон дат.
//
// Для каждой даты диапазона с рабочим днём недели окно рабочих часов
// нарезается на последовательные слоты фиксированной длительности.
// Неполный хвостовой слот отбрасывается, а не усекается.
func (s *Service) Generate(ctx context.Context, req *models.GenerateSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("GenerateSlots: tenant=%d user=%d range=%s..%s",
		req.TenantID, req.UserID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	tenant, err := s.authorizeAdmin(ctx, req.TenantID, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := validateGenerateRequest(req); err != nil {
		s.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = domain.DefaultSlotCapacity
	}

	generated, err := generateSlots(tenant, req.StartDate, req.EndDate, capacity)
	if err != nil {
		s.logger.Warn("GenerateSlots: generation failed: %v", err)
		return nil, err
	}

	if len(generated) > 0 {
		if err := s.slotRepo.CreateBatch(ctx, generated); err != nil {
			s.logger.Error("GenerateSlots: repository error: %v", err)
			return nil, fmt.Errorf("%w: GenerateSlots - repository error: %v", ErrInternal, err)
		}
		s.cache.Invalidate(req.TenantID)
	}

	s.logger.Info("GenerateSlots: generated %d slots for tenant=%d", len(generated), req.TenantID)
	return models.FromDomainSlotList(generated), nil
}

// ToggleActive переключает флаг активности слота.
// Существующие брони не затрагиваются - деактивация лишь останавливает новые.
func (s *Service) ToggleActive(ctx context.Context, req *models.ToggleSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("ToggleSlot: slot=%d user=%d", req.SlotID, req.UserID)

	slot, err := s.getSlot(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorizeAdmin(ctx, slot.TenantID, req.UserID); err != nil {
		return nil, err
	}

	isActive, err := s.slotRepo.ToggleActive(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("ToggleSlot: repository error for slot=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: ToggleSlot - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(slot.TenantID)
	slot.IsActive = isActive

	s.logger.Info("ToggleSlot: slot=%d is_active=%t", req.SlotID, isActive)
	return models.FromDomainSlot(slot), nil
}

// Delete удаляет слот. Слот с бронями удалить нельзя - ErrSlotInUse.
func (s *Service) Delete(ctx context.Context, req *models.DeleteSlotRequest) error {
	s.logger.Info("DeleteSlot: slot=%d user=%d", req.SlotID, req.UserID)

	slot, err := s.getSlot(ctx, req.SlotID)
	if err != nil {
		return err
	}

	if _, err := s.authorizeAdmin(ctx, slot.TenantID, req.UserID); err != nil {
		return err
	}

	if err := s.slotRepo.Delete(ctx, req.SlotID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotInUse):
			s.logger.Warn("DeleteSlot: slot=%d has active bookings", req.SlotID)
			return ErrSlotInUse
		default:
			s.logger.Error("DeleteSlot: repository error for slot=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
		}
	}

	s.cache.Invalidate(slot.TenantID)

	s.logger.Info("DeleteSlot: slot=%d deleted", req.SlotID)
	return nil
}

// List возвращает все слоты тенанта на дату, включая неактивные и заполненные
// (админский обзор; публичная выдача идёт через движок доступности)
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	if _, err := s.authorizeAdmin(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListByTenantAndDate(ctx, req.TenantID, req.Date)
	if err != nil {
		s.logger.Error("ListSlots: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// authorizeAdmin загружает тенанта, проверяет права администратора и подписку
func (s *Service) authorizeAdmin(ctx context.Context, tenantID, userID int64) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("authorizeAdmin: tenant id=%d not found", tenantID)
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("%w: authorizeAdmin - repository error: %v", ErrInternal, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: authorizeAdmin - repository error: %v", ErrInternal, err)
	}

	if user.TenantID != tenantID || !user.IsAdmin() {
		s.logger.Warn("authorizeAdmin: access denied for user=%d to tenant=%d", userID, tenantID)
		return nil, ErrAccessDenied
	}

	if err := subscription.Check(tenant, s.timeProvider.Now()); err != nil {
		s.logger.Warn("authorizeAdmin: subscription inactive for tenant=%d", tenantID)
		return nil, ErrSubscriptionInactive
	}

	return tenant, nil
}

func (s *Service) getSlot(ctx context.Context, slotID int64) (*domain.TimeSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("getSlot: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: getSlot - repository error: %v", ErrInternal, err)
	}
	return slot, nil
}
