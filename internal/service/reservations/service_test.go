package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) GetByPublicCode(_ context.Context, code string) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.PublicCode == code {
			copied := *r
			return &copied, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) ListByFilter(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.TenantID != filter.TenantID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// UpdateStatusFrom повторяет условный UPDATE хранилища: переход проходит,
// только если текущий статус входит в allowedFrom
func (f *fakeReservationRepo) UpdateStatusFrom(_ context.Context, id int64, allowedFrom []domain.ReservationStatus, to domain.ReservationStatus) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	for _, from := range allowedFrom {
		if r.Status == from {
			r.Status = to
			return nil
		}
	}
	return reservationRepo.ErrInvalidTransition
}

// fakeSlotRepo повторяет контракт хранилища
// SET booked_count = GREATEST(booked_count - 1, 0): счётчик не уходит
// в минус даже при рассинхронизации с журналом броней
type fakeSlotRepo struct {
	counts     map[int64]int
	decrements map[int64]int
}

func (f *fakeSlotRepo) DecrementBooked(_ context.Context, slotID int64) error {
	if f.decrements == nil {
		f.decrements = make(map[int64]int)
	}
	f.decrements[slotID]++

	if f.counts[slotID] > 0 {
		f.counts[slotID]--
	}
	return nil
}

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

type fakeUserRepo struct {
	users map[int64]*domain.TenantUser
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.TenantUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(int64) { c.calls++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc          *Service
	reservations *fakeReservationRepo
	slots        *fakeSlotRepo
	invalidator  *countingInvalidator
}

func newFixture() *fixture {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: pendingReservation(100, "code-100"),
	}}
	slots := &fakeSlotRepo{counts: map[int64]int{10: 1}}
	invalidator := &countingInvalidator{}

	tenants := &fakeTenantRepo{tenants: map[int64]*domain.Tenant{
		1: {
			ID: 1,
			Subscription: domain.Subscription{
				Status: domain.SubscriptionActive,
				Plan:   domain.PlanStarter,
			},
		},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.TenantUser{
		7: {ID: 7, TenantID: 1, Role: domain.RoleAdmin},
		8: {ID: 8, TenantID: 2, Role: domain.RoleAdmin},
		9: {ID: 9, TenantID: 1, Role: domain.RoleCustomer},
	}}

	svc := NewService(reservations, slots, tenants, users, fakeTxManager{}, invalidator, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}

	return &fixture{svc: svc, reservations: reservations, slots: slots, invalidator: invalidator}
}

func pendingReservation(id int64, code string) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		PublicCode:    code,
		TenantID:      1,
		TimeSlotID:    10,
		CustomerName:  "Мария",
		CustomerEmail: "maria@example.com",
		Status:        domain.StatusPending,
		Date:          time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("10:00"),
		EndTime:       types.TimeString("11:00"),
	}
}

func TestUpdateStatus_PendingToConfirmed(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 100,
		UserID:        7,
		NewStatus:     domain.StatusConfirmed,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, domain.StatusConfirmed, f.reservations.reservations[100].Status)
}

func TestUpdateStatus_ConfirmedToCompleted(t *testing.T) {
	f := newFixture()
	f.reservations.reservations[100].Status = domain.StatusConfirmed

	resp, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 100,
		UserID:        7,
		NewStatus:     domain.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Status)
}

func TestUpdateStatus_InvalidTransitions(t *testing.T) {
	f := newFixture()
	f.reservations.reservations[100].Status = domain.StatusCompleted

	// Завершённая бронь не возвращается в confirmed
	_, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 100,
		UserID:        7,
		NewStatus:     domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_CancelledTargetRejected(t *testing.T) {
	f := newFixture()

	// Отмена идёт отдельными операциями, освобождающими место в слоте
	_, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 100,
		UserID:        7,
		NewStatus:     domain.StatusCancelled,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_AccessDenied(t *testing.T) {
	f := newFixture()

	// Администратор другого тенанта
	_, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 100,
		UserID:        8,
		NewStatus:     domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Пользователь без роли администратора
	_, err = f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 100,
		UserID:        9,
		NewStatus:     domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ReleasesSlotOnce(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Cancel(context.Background(), &models.CancelRequest{ReservationID: 100, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, testNow, *resp.CancelledAt)

	assert.Equal(t, 1, f.slots.decrements[10])
	assert.Equal(t, 0, f.slots.counts[10])
	assert.Equal(t, 1, f.invalidator.calls)

	// Повторная отмена не освобождает место второй раз
	_, err = f.svc.Cancel(context.Background(), &models.CancelRequest{ReservationID: 100, UserID: 7})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 1, f.slots.decrements[10])
}

func TestCancel_ZeroCountSlotStaysAtZero(t *testing.T) {
	f := newFixture()
	// Рассинхронизация: бронь активна, но счётчик слота уже на нуле
	f.slots.counts[10] = 0

	resp, err := f.svc.Cancel(context.Background(), &models.CancelRequest{ReservationID: 100, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.Equal(t, 0, f.slots.counts[10])
}

func TestCancelByCode_EmailCaseInsensitive(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CancelByCode(context.Background(), &models.CancelByCodeRequest{
		PublicCode:    "code-100",
		CustomerEmail: "MARIA@Example.COM",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.Equal(t, 1, f.slots.decrements[10])
}

func TestCancelByCode_EmailMismatchLooksMissing(t *testing.T) {
	f := newFixture()

	// Несовпадение email неотличимо от несуществующего кода
	_, err := f.svc.CancelByCode(context.Background(), &models.CancelByCodeRequest{
		PublicCode:    "code-100",
		CustomerEmail: "other@example.com",
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Equal(t, 0, f.slots.decrements[10])
}

func TestCancelByCode_ClosedAfterSlotDate(t *testing.T) {
	f := newFixture()
	f.reservations.reservations[100].Date = testNow.AddDate(0, 0, -1)

	_, err := f.svc.CancelByCode(context.Background(), &models.CancelByCodeRequest{
		PublicCode:    "code-100",
		CustomerEmail: "maria@example.com",
	})
	assert.ErrorIs(t, err, ErrCancellationClosed)
}

func TestCancelByCode_SameDayStillOpen(t *testing.T) {
	f := newFixture()
	f.reservations.reservations[100].Date = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	// День слота включительно: отмена в день визита ещё доступна
	_, err := f.svc.CancelByCode(context.Background(), &models.CancelByCodeRequest{
		PublicCode:    "code-100",
		CustomerEmail: "maria@example.com",
	})
	assert.NoError(t, err)
}

func TestCancelByCode_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CancelByCode(context.Background(), &models.CancelByCodeRequest{PublicCode: "code-100"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.CancelByCode(context.Background(), &models.CancelByCodeRequest{CustomerEmail: "maria@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_FiltersByStatus(t *testing.T) {
	f := newFixture()
	confirmed := pendingReservation(101, "code-101")
	confirmed.Status = domain.StatusConfirmed
	f.reservations.reservations[101] = confirmed

	resp, err := f.svc.List(context.Background(), &models.ListRequest{
		TenantID: 1,
		UserID:   7,
		Status:   ptr.Ptr(domain.StatusConfirmed),
	})
	require.NoError(t, err)

	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(101), resp.Reservations[0].ID)
}

func TestSubscriptionGateOnAdminOps(t *testing.T) {
	f := newFixture()

	tenants := &fakeTenantRepo{tenants: map[int64]*domain.Tenant{
		1: {
			ID: 1,
			Subscription: domain.Subscription{
				Status:           domain.SubscriptionTrial,
				Plan:             domain.PlanStarter,
				CurrentPeriodEnd: testNow.AddDate(0, 0, -1),
			},
		},
	}}
	f.svc.tenantRepo = tenants

	_, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 100,
		UserID:        7,
		NewStatus:     domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrSubscriptionInactive)
}
