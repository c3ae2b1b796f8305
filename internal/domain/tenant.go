package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// SubscriptionStatus статус подписки тенанта
type SubscriptionStatus string

const (
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// PlanTier тарифный план подписки
type PlanTier string

const (
	PlanStarter    PlanTier = "starter"
	PlanPro        PlanTier = "pro"
	PlanEnterprise PlanTier = "enterprise"
)

// Subscription состояние подписки тенанта
type Subscription struct {
	Status SubscriptionStatus
	Plan   PlanTier
	// CurrentPeriodEnd дата окончания текущего периода (для trial - конец пробного периода).
	// Сравнивается только по дате, без учёта времени суток.
	CurrentPeriodEnd time.Time
}

// TenantSettings настройки расписания и брендинга тенанта
type TenantSettings struct {
	PrimaryColor          string
	SlotDurationMinutes   int
	MaxAdvanceBookingDays int
	WorkingHoursStart     types.TimeString
	WorkingHoursEnd       types.TimeString
	// WorkingDays дни недели 0-6, где 0 - воскресенье
	WorkingDays   []int
	LogoURL       *string
	BackgroundURL *string
	PublicPhone   *string
	PublicEmail   *string
}

// Tenant независимый бизнес на платформе. Единица изоляции данных:
// все слоты и брони принадлежат ровно одному тенанту.
type Tenant struct {
	ID           int64
	Slug         string
	BusinessName string
	Email        string
	Phone        *string
	ServiceType  string
	Description  *string
	OwnerUserID  *int64
	Subscription Subscription
	Settings     TenantSettings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorksOnWeekday возвращает true, если день недели входит в рабочие дни тенанта
func (t *Tenant) WorksOnWeekday(weekday time.Weekday) bool {
	for _, d := range t.Settings.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}
