package get_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-ReservationService/internal/subscription"
)

// UseCase движок доступности: публичная выдача дат и слотов для записи.
//
// Ответы отдаются через read-through кеш; источник истины всегда
// хранилище, любая запись по тенанту инвалидирует его кеш целиком.
type UseCase struct {
	tenantRepo   TenantRepository
	slotRepo     SlotRepository
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase доступности
func NewUseCase(
	tenantRepo TenantRepository,
	slotRepo SlotRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:   tenantRepo,
		slotRepo:     slotRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// AvailableDates возвращает даты окна [сегодня, сегодня + maxAdvanceBookingDays],
// на которые у тенанта есть хотя бы один бронируемый слот. Даты вне рабочих
// дней недели тенанта отфильтровываются, даже если слоты на них существуют.
func (uc *UseCase) AvailableDates(ctx context.Context, req *GetDatesRequest) (*GetDatesResponse, error) {
	tenant, err := uc.getTenant(ctx, req.TenantSlug)
	if err != nil {
		return nil, err
	}

	today := startOfDay(uc.timeProvider.Now())
	todayKey := today.Format(domain.DateFormat)

	if dates, found := uc.cache.GetDates(tenant.ID, todayKey); found {
		return &GetDatesResponse{Dates: dates}, nil
	}

	horizon := today.AddDate(0, 0, tenant.Settings.MaxAdvanceBookingDays)

	slotDates, err := uc.slotRepo.ListAvailableDates(ctx, tenant.ID, today, horizon)
	if err != nil {
		uc.logger.Error("AvailableDates: repository error for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: AvailableDates - repository error: %v", ErrInternal, err)
	}

	dates := formatWorkingDates(tenant, slotDates)

	uc.cache.SetDates(tenant.ID, todayKey, dates)
	return &GetDatesResponse{Dates: dates}, nil
}

// SlotsForDate возвращает бронируемые слоты тенанта на дату.
// Прошедшая дата или дата за горизонтом бронирования дают пустой список,
// а не ошибку.
func (uc *UseCase) SlotsForDate(ctx context.Context, req *GetSlotsRequest) (*GetSlotsResponse, error) {
	tenant, err := uc.getTenant(ctx, req.TenantSlug)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	today := startOfDay(uc.timeProvider.Now())
	horizon := today.AddDate(0, 0, tenant.Settings.MaxAdvanceBookingDays)
	if date.Before(today) || date.After(horizon) || !tenant.WorksOnWeekday(date.Weekday()) {
		return &GetSlotsResponse{Slots: []*AvailableSlot{}}, nil
	}

	dateKey := date.Format(domain.DateFormat)

	if slots, found := uc.cache.GetSlots(tenant.ID, dateKey); found {
		return &GetSlotsResponse{Slots: toAvailableSlots(slots)}, nil
	}

	slots, err := uc.slotRepo.ListAvailable(ctx, tenant.ID, date)
	if err != nil {
		uc.logger.Error("SlotsForDate: repository error for tenant=%d date=%s: %v", tenant.ID, dateKey, err)
		return nil, fmt.Errorf("%w: SlotsForDate - repository error: %v", ErrInternal, err)
	}

	uc.cache.SetSlots(tenant.ID, dateKey, slots)
	return &GetSlotsResponse{Slots: toAvailableSlots(slots)}, nil
}

// getTenant загружает тенанта по слагу и проверяет подписку.
// Страница записи тенанта с неактивной подпиской закрыта.
func (uc *UseCase) getTenant(ctx context.Context, slug string) (*domain.Tenant, error) {
	tenant, err := uc.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("getTenant: tenant slug=%s not found", slug)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("getTenant: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: getTenant - repository error: %v", ErrInternal, err)
	}

	if err := subscription.Check(tenant, uc.timeProvider.Now()); err != nil {
		return nil, ErrSubscriptionInactive
	}

	return tenant, nil
}
