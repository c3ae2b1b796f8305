package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func tenantWith(status domain.SubscriptionStatus, periodEnd time.Time) *domain.Tenant {
	return &domain.Tenant{
		ID: 1,
		Subscription: domain.Subscription{
			Status:           status,
			Plan:             domain.PlanStarter,
			CurrentPeriodEnd: periodEnd,
		},
	}
}

func TestIsAccessAllowed_Active(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	// Активная подписка допускает операции независимо от периода
	tn := tenantWith(domain.SubscriptionActive, now.AddDate(0, 0, -30))
	assert.True(t, IsAccessAllowed(tn, now))
}

func TestIsAccessAllowed_CanceledAndPastDue(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 30)

	assert.False(t, IsAccessAllowed(tenantWith(domain.SubscriptionCanceled, future), now))
	assert.False(t, IsAccessAllowed(tenantWith(domain.SubscriptionPastDue, future), now))
}

func TestIsAccessAllowed_TrialBoundary(t *testing.T) {
	// Пробный период сравнивается только по дате, день окончания включительно
	periodEnd := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	tn := tenantWith(domain.SubscriptionTrial, periodEnd)

	dayBefore := time.Date(2025, 10, 14, 23, 59, 0, 0, time.UTC)
	lastDay := time.Date(2025, 10, 15, 23, 59, 0, 0, time.UTC)
	dayAfter := time.Date(2025, 10, 16, 0, 1, 0, 0, time.UTC)

	assert.True(t, IsAccessAllowed(tn, dayBefore))
	assert.True(t, IsAccessAllowed(tn, lastDay))
	assert.False(t, IsAccessAllowed(tn, dayAfter))
}

func TestIsAccessAllowed_UnknownStatus(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	tn := tenantWith(domain.SubscriptionStatus("unknown"), now.AddDate(0, 0, 30))

	assert.False(t, IsAccessAllowed(tn, now))
}

func TestCheck(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, Check(tenantWith(domain.SubscriptionActive, now), now))
	assert.ErrorIs(t, Check(tenantWith(domain.SubscriptionCanceled, now), now), ErrInactive)
}
