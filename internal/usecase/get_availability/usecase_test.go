package get_availability

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeTenantRepo struct {
	tenants map[string]*domain.Tenant
}

func (f *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	t, ok := f.tenants[slug]
	if !ok {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return t, nil
}

type fakeSlotRepo struct {
	slots map[string][]*domain.TimeSlot
	dates []time.Time

	listCalls      int
	listDatesCalls int
}

func (f *fakeSlotRepo) ListAvailable(_ context.Context, _ int64, date time.Time) ([]*domain.TimeSlot, error) {
	f.listCalls++
	return f.slots[date.Format(domain.DateFormat)], nil
}

func (f *fakeSlotRepo) ListAvailableDates(_ context.Context, _ int64, from, to time.Time) ([]time.Time, error) {
	f.listDatesCalls++
	out := make([]time.Time, 0, len(f.dates))
	for _, d := range f.dates {
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type fakeCache struct {
	slots map[string][]*domain.TimeSlot
	dates map[string][]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		slots: make(map[string][]*domain.TimeSlot),
		dates: make(map[string][]string),
	}
}

func (c *fakeCache) GetSlots(tenantID int64, date string) ([]*domain.TimeSlot, bool) {
	s, ok := c.slots[cacheKey(tenantID, date)]
	return s, ok
}

func (c *fakeCache) SetSlots(tenantID int64, date string, slots []*domain.TimeSlot) {
	c.slots[cacheKey(tenantID, date)] = slots
}

func (c *fakeCache) GetDates(tenantID int64, from string) ([]string, bool) {
	d, ok := c.dates[cacheKey(tenantID, from)]
	return d, ok
}

func (c *fakeCache) SetDates(tenantID int64, from string, dates []string) {
	c.dates[cacheKey(tenantID, from)] = dates
}

func cacheKey(tenantID int64, suffix string) string {
	return strconv.FormatInt(tenantID, 10) + ":" + suffix
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

// Среда
var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func publicTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:   1,
		Slug: "beauty-studio",
		Subscription: domain.Subscription{
			Status: domain.SubscriptionActive,
			Plan:   domain.PlanStarter,
		},
		Settings: domain.TenantSettings{
			SlotDurationMinutes:   60,
			WorkingHoursStart:     types.TimeString("09:00"),
			WorkingHoursEnd:       types.TimeString("17:00"),
			WorkingDays:           []int{1, 2, 3, 4, 5},
			MaxAdvanceBookingDays: 30,
		},
	}
}

func availableSlot(id int64, date time.Time, capacity, booked int) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:          id,
		TenantID:    1,
		Date:        date,
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("11:00"),
		Capacity:    capacity,
		BookedCount: booked,
		IsActive:    true,
	}
}

func newTestUseCase(tenants *fakeTenantRepo, slots *fakeSlotRepo, cache AvailabilityCache) *UseCase {
	uc := NewUseCase(tenants, slots, cache, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func TestAvailableDates_FiltersNonWorkingWeekdays(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[string]*domain.Tenant{"beauty-studio": publicTenant()}}
	slots := &fakeSlotRepo{dates: []time.Time{
		// Четверг, суббота, понедельник: суббота нерабочая
		time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
	}}
	uc := newTestUseCase(tenants, slots, newFakeCache())

	resp, err := uc.AvailableDates(context.Background(), &GetDatesRequest{TenantSlug: "beauty-studio"})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-10-16", "2025-10-20"}, resp.Dates)
}

func TestAvailableDates_RespectsBookingHorizon(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[string]*domain.Tenant{"beauty-studio": publicTenant()}}
	slots := &fakeSlotRepo{dates: []time.Time{
		time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		// Вчера и за горизонтом 30 дней
		time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC),
	}}
	uc := newTestUseCase(tenants, slots, newFakeCache())

	resp, err := uc.AvailableDates(context.Background(), &GetDatesRequest{TenantSlug: "beauty-studio"})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-10-16"}, resp.Dates)
}

func TestAvailableDates_ServedFromCache(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[string]*domain.Tenant{"beauty-studio": publicTenant()}}
	slots := &fakeSlotRepo{dates: []time.Time{time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)}}
	uc := newTestUseCase(tenants, slots, newFakeCache())

	req := &GetDatesRequest{TenantSlug: "beauty-studio"}

	first, err := uc.AvailableDates(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.AvailableDates(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Dates, second.Dates)
	assert.Equal(t, 1, slots.listDatesCalls)
}

func TestSlotsForDate_ReturnsBookableSlots(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[string]*domain.Tenant{"beauty-studio": publicTenant()}}
	date := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{slots: map[string][]*domain.TimeSlot{
		"2025-10-16": {availableSlot(10, date, 3, 1)},
	}}
	uc := newTestUseCase(tenants, slots, newFakeCache())

	resp, err := uc.SlotsForDate(context.Background(), &GetSlotsRequest{TenantSlug: "beauty-studio", Date: "2025-10-16"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(10), resp.Slots[0].ID)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
	assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
}

func TestSlotsForDate_EmptyOutsideBookingWindow(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[string]*domain.Tenant{"beauty-studio": publicTenant()}}
	slots := &fakeSlotRepo{slots: map[string][]*domain.TimeSlot{}}
	uc := newTestUseCase(tenants, slots, newFakeCache())

	cases := []string{
		// Вчера
		"2025-10-14",
		// За горизонтом 30 дней
		"2025-11-17",
		// Суббота
		"2025-10-18",
	}
	for _, date := range cases {
		resp, err := uc.SlotsForDate(context.Background(), &GetSlotsRequest{TenantSlug: "beauty-studio", Date: date})
		require.NoError(t, err, date)
		assert.Empty(t, resp.Slots, date)
	}

	// Репозиторий не вызывался, окно отсекается до похода в хранилище
	assert.Equal(t, 0, slots.listCalls)
}

func TestSlotsForDate_InvalidDate(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[string]*domain.Tenant{"beauty-studio": publicTenant()}}
	uc := newTestUseCase(tenants, &fakeSlotRepo{}, newFakeCache())

	_, err := uc.SlotsForDate(context.Background(), &GetSlotsRequest{TenantSlug: "beauty-studio", Date: "16.10.2025"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSlotsForDate_ServedFromCache(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[string]*domain.Tenant{"beauty-studio": publicTenant()}}
	date := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{slots: map[string][]*domain.TimeSlot{
		"2025-10-16": {availableSlot(10, date, 3, 0)},
	}}
	uc := newTestUseCase(tenants, slots, newFakeCache())

	req := &GetSlotsRequest{TenantSlug: "beauty-studio", Date: "2025-10-16"}

	_, err := uc.SlotsForDate(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.SlotsForDate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, slots.listCalls)
}

func TestPublicAvailability_GatedBySubscription(t *testing.T) {
	expired := publicTenant()
	expired.Subscription.Status = domain.SubscriptionTrial
	expired.Subscription.CurrentPeriodEnd = testNow.AddDate(0, 0, -1)

	tenants := &fakeTenantRepo{tenants: map[string]*domain.Tenant{"beauty-studio": expired}}
	uc := newTestUseCase(tenants, &fakeSlotRepo{}, newFakeCache())

	_, err := uc.AvailableDates(context.Background(), &GetDatesRequest{TenantSlug: "beauty-studio"})
	assert.ErrorIs(t, err, ErrSubscriptionInactive)

	_, err = uc.SlotsForDate(context.Background(), &GetSlotsRequest{TenantSlug: "beauty-studio", Date: "2025-10-16"})
	assert.ErrorIs(t, err, ErrSubscriptionInactive)
}

func TestAvailability_UnknownTenant(t *testing.T) {
	uc := newTestUseCase(&fakeTenantRepo{tenants: map[string]*domain.Tenant{}}, &fakeSlotRepo{}, newFakeCache())

	_, err := uc.AvailableDates(context.Background(), &GetDatesRequest{TenantSlug: "ghost"})
	assert.ErrorIs(t, err, ErrTenantNotFound)
}
