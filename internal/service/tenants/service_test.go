package tenants

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
)

type fakeTenantRepo struct {
	slugs   map[string]bool
	tenants map[int64]*domain.Tenant
	nextID  int64
	owners  map[int64]int64
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		slugs:   make(map[string]bool),
		tenants: make(map[int64]*domain.Tenant),
		owners:  make(map[int64]int64),
		nextID:  1,
	}
}

func (f *fakeTenantRepo) Create(_ context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	t.ID = f.nextID
	f.nextID++
	f.slugs[t.Slug] = true
	f.tenants[t.ID] = t
	return t, nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, errTenantNotFoundStub
	}
	return t, nil
}

func (f *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	for _, t := range f.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, errTenantNotFoundStub
}

func (f *fakeTenantRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	return f.slugs[slug], nil
}

func (f *fakeTenantRepo) SetOwner(_ context.Context, tenantID, ownerUserID int64) error {
	f.owners[tenantID] = ownerUserID
	return nil
}

func (f *fakeTenantRepo) UpdateSettings(_ context.Context, tenantID int64, settings domain.TenantSettings) error {
	f.tenants[tenantID].Settings = settings
	return nil
}

type fakeUserRepo struct {
	users  map[int64]*domain.TenantUser
	emails map[string]bool
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[int64]*domain.TenantUser),
		emails: make(map[string]bool),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.TenantUser) (*domain.TenantUser, error) {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	f.emails[u.Email] = true
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.TenantUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errUserNotFoundStub
	}
	return u, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

var (
	errTenantNotFoundStub = assert.AnError
	errUserNotFoundStub   = assert.AnError
)

func newTestService(tenantRepo *fakeTenantRepo, userRepo *fakeUserRepo) *Service {
	svc := NewService(tenantRepo, userRepo, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	return svc
}

func signupRequest(name string) *models.SignupRequest {
	return &models.SignupRequest{
		BusinessName:  name,
		Email:         "owner@example.com",
		ServiceType:   "barbershop",
		OwnerName:     "Анна",
		OwnerPassword: "secret-password",
	}
}

func TestSignup_CreatesTenantWithTrialAndOwner(t *testing.T) {
	tenantRepo := newFakeTenantRepo()
	userRepo := newFakeUserRepo()
	svc := newTestService(tenantRepo, userRepo)

	resp, err := svc.Signup(context.Background(), signupRequest("Beauty Studio"))
	require.NoError(t, err)

	assert.Equal(t, "beauty-studio", resp.Slug)
	assert.Equal(t, string(domain.SubscriptionTrial), resp.SubscriptionStatus)
	assert.Equal(t, string(domain.PlanStarter), resp.SubscriptionPlan)

	// Пробный период заканчивается через 14 дней
	expectedEnd := time.Date(2025, 10, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedEnd, resp.CurrentPeriodEnd)

	// Настройки по умолчанию
	assert.Equal(t, domain.DefaultPrimaryColor, resp.PrimaryColor)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultWorkingDays, resp.WorkingDays)

	// Владелец создан администратором и привязан к тенанту
	owner := userRepo.users[1]
	require.NotNil(t, owner)
	assert.Equal(t, domain.RoleAdmin, owner.Role)
	assert.Equal(t, resp.ID, owner.TenantID)
	assert.NotEqual(t, "secret-password", owner.PasswordHash)
	assert.Equal(t, owner.ID, tenantRepo.owners[resp.ID])
}

func TestSignup_SlugCollisionGetsSequentialSuffix(t *testing.T) {
	tenantRepo := newFakeTenantRepo()
	tenantRepo.slugs["beauty-studio"] = true
	tenantRepo.slugs["beauty-studio-2"] = true
	svc := newTestService(tenantRepo, newFakeUserRepo())

	resp, err := svc.Signup(context.Background(), signupRequest("Beauty Studio"))
	require.NoError(t, err)

	assert.Equal(t, "beauty-studio-3", resp.Slug)
}

func TestSignup_ReservedSlugGetsSuffix(t *testing.T) {
	tenantRepo := newFakeTenantRepo()
	svc := newTestService(tenantRepo, newFakeUserRepo())

	resp, err := svc.Signup(context.Background(), signupRequest("Admin"))
	require.NoError(t, err)

	// Зарезервированный слаг недоступен даже свободным
	assert.Equal(t, "admin-2", resp.Slug)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.emails["owner@example.com"] = true
	svc := newTestService(newFakeTenantRepo(), userRepo)

	_, err := svc.Signup(context.Background(), signupRequest("Beauty Studio"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignup_Validation(t *testing.T) {
	svc := newTestService(newFakeTenantRepo(), newFakeUserRepo())

	req := signupRequest("Beauty Studio")
	req.OwnerPassword = "short"
	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = signupRequest("")
	_, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = signupRequest("Beauty Studio")
	req.Email = "not-an-email"
	_, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSignup_CustomSettingsValidated(t *testing.T) {
	svc := newTestService(newFakeTenantRepo(), newFakeUserRepo())

	req := signupRequest("Beauty Studio")
	req.Settings = &models.SettingsRequest{
		WorkingHoursStart: "18:00",
		WorkingHoursEnd:   "09:00",
	}
	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = signupRequest("Beauty Studio")
	req.Settings = &models.SettingsRequest{
		SlotDurationMinutes: 45,
		WorkingDays:         []int{0, 6},
	}
	resp, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 45, resp.SlotDurationMinutes)
	assert.Equal(t, []int{0, 6}, resp.WorkingDays)
}
