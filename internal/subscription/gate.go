// Package subscription проверка, допускает ли подписка тенанта операции.
package subscription

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ErrInactive возвращается, когда подписка тенанта не допускает операции
var ErrInactive = errors.New("subscription: tenant subscription is not active")

// IsAccessAllowed возвращает true, если текущее состояние подписки тенанта
// допускает операции:
//   - active - всегда да
//   - canceled, past_due - всегда нет
//   - trial - да, пока сегодняшняя дата не позже currentPeriodEnd
//     (сравнение только по дате, день окончания включительно)
func IsAccessAllowed(t *domain.Tenant, now time.Time) bool {
	switch t.Subscription.Status {
	case domain.SubscriptionActive:
		return true
	case domain.SubscriptionCanceled, domain.SubscriptionPastDue:
		return false
	case domain.SubscriptionTrial:
		today := startOfDay(now)
		periodEnd := startOfDay(t.Subscription.CurrentPeriodEnd)
		return !today.After(periodEnd)
	default:
		return false
	}
}

// Check возвращает ErrInactive, если подписка не допускает операции
func Check(t *domain.Tenant, now time.Time) error {
	if !IsAccessAllowed(t, now) {
		return ErrInactive
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
