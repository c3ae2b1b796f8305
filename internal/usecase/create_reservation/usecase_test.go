package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeTenantRepo struct {
	tenants map[int64]*domain.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return t, nil
}

// fakeSlotRepo эмулирует условный инкремент хранилища: проверка
// booked_count < capacity и сам инкремент атомарны под мьютексом
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[int64]*domain.TimeSlot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSlotRepo) IncrementBooked(_ context.Context, slotID, tenantID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.slots[slotID]
	if !ok || s.TenantID != tenantID || !s.IsActive || s.BookedCount >= s.Capacity {
		return slotRepo.ErrNoCapacity
	}
	s.BookedCount++
	return nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	f.reservations = append(f.reservations, r)
	return r, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func activeTenant(id int64) *domain.Tenant {
	return &domain.Tenant{
		ID: id,
		Subscription: domain.Subscription{
			Status: domain.SubscriptionActive,
			Plan:   domain.PlanStarter,
		},
		Settings: domain.TenantSettings{
			MaxAdvanceBookingDays: 30,
			WorkingDays:           []int{1, 2, 3, 4, 5},
		},
	}
}

func bookableSlot(id, tenantID int64, capacity int) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:        id,
		TenantID:  tenantID,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
		Capacity:  capacity,
		IsActive:  true,
	}
}

func newTestUseCase(tenants *fakeTenantRepo, slots *fakeSlotRepo, reservations *fakeReservationRepo) (*UseCase, *countingInvalidator) {
	invalidator := &countingInvalidator{}
	uc := NewUseCase(tenants, slots, reservations, fakeTxManager{}, invalidator, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc, invalidator
}

func validRequest(tenantID, slotID int64) *CreateReservationRequest {
	return &CreateReservationRequest{
		TenantID:      tenantID,
		TimeSlotID:    slotID,
		CustomerName:  "Мария",
		CustomerEmail: "maria@example.com",
		CustomerPhone: "+79990001122",
	}
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[int64]*domain.Tenant{1: activeTenant(1)}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{10: bookableSlot(10, 1, 2)}}
	reservations := &fakeReservationRepo{}
	uc, invalidator := newTestUseCase(tenants, slots, reservations)

	resp, err := uc.Execute(context.Background(), validRequest(1, 10))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.NotEmpty(t, resp.PublicCode)

	// Дата и время слота денормализованы в бронь
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)

	assert.Equal(t, 1, slots.slots[10].BookedCount)
	assert.Equal(t, 1, invalidator.calls)
}

func TestExecute_ConcurrentBookingsNeverOversell(t *testing.T) {
	const capacity = 3
	const attempts = 20

	tenants := &fakeTenantRepo{tenants: map[int64]*domain.Tenant{1: activeTenant(1)}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{10: bookableSlot(10, 1, capacity)}}
	reservations := &fakeReservationRepo{}
	uc, _ := newTestUseCase(tenants, slots, reservations)

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest(1, 10))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}

	// Ровно capacity запросов проходят, перебронирования нет
	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, capacity, slots.slots[10].BookedCount)
	assert.Len(t, reservations.reservations, capacity)
}

func TestExecute_SlotOfAnotherTenantLooksMissing(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[int64]*domain.Tenant{
		1: activeTenant(1),
		2: activeTenant(2),
	}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{10: bookableSlot(10, 2, 1)}}
	uc, _ := newTestUseCase(tenants, slots, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), validRequest(1, 10))
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_InactiveSlot(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[int64]*domain.Tenant{1: activeTenant(1)}}
	slot := bookableSlot(10, 1, 1)
	slot.IsActive = false
	slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{10: slot}}
	uc, _ := newTestUseCase(tenants, slots, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), validRequest(1, 10))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_PastAndBeyondHorizonDates(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[int64]*domain.Tenant{1: activeTenant(1)}}

	past := bookableSlot(10, 1, 1)
	past.Date = testNow.AddDate(0, 0, -1)

	beyond := bookableSlot(11, 1, 1)
	beyond.Date = testNow.AddDate(0, 0, 31)

	slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{10: past, 11: beyond}}
	uc, _ := newTestUseCase(tenants, slots, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), validRequest(1, 10))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = uc.Execute(context.Background(), validRequest(1, 11))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_SubscriptionGate(t *testing.T) {
	expired := activeTenant(1)
	expired.Subscription.Status = domain.SubscriptionTrial
	expired.Subscription.CurrentPeriodEnd = testNow.AddDate(0, 0, -1)

	tenants := &fakeTenantRepo{tenants: map[int64]*domain.Tenant{1: expired}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{10: bookableSlot(10, 1, 1)}}
	uc, _ := newTestUseCase(tenants, slots, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), validRequest(1, 10))
	assert.ErrorIs(t, err, ErrSubscriptionInactive)

	// Счётчик слота не тронут
	assert.Equal(t, 0, slots.slots[10].BookedCount)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(
		&fakeTenantRepo{tenants: map[int64]*domain.Tenant{1: activeTenant(1)}},
		&fakeSlotRepo{slots: map[int64]*domain.TimeSlot{}},
		&fakeReservationRepo{},
	)

	req := validRequest(1, 10)
	req.CustomerName = ""
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(1, 10)
	req.CustomerEmail = "not-an-email"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
