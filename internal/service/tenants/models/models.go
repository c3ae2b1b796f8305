package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SignupRequest запрос на регистрацию нового тенанта
type SignupRequest struct {
	BusinessName string
	Email        string
	Phone        *string
	ServiceType  string
	Description  *string

	OwnerName     string
	OwnerPassword string

	// Settings начальные настройки расписания (опционально, иначе дефолты)
	Settings *SettingsRequest
}

// SettingsRequest настройки расписания и брендинга
type SettingsRequest struct {
	PrimaryColor          string
	SlotDurationMinutes   int
	MaxAdvanceBookingDays int
	WorkingHoursStart     string
	WorkingHoursEnd       string
	WorkingDays           []int
	LogoURL               *string
	BackgroundURL         *string
	PublicPhone           *string
	PublicEmail           *string
}

// UpdateSettingsRequest запрос на обновление настроек тенанта
type UpdateSettingsRequest struct {
	TenantID int64
	// UserID инициатор запроса, должен быть администратором тенанта
	UserID   int64
	Settings SettingsRequest
}

// TenantResponse модель тенанта для вызывающей стороны
type TenantResponse struct {
	ID           int64
	Slug         string
	BusinessName string
	Email        string
	Phone        *string
	ServiceType  string
	Description  *string

	SubscriptionStatus string
	SubscriptionPlan   string
	CurrentPeriodEnd   time.Time

	PrimaryColor          string
	SlotDurationMinutes   int
	MaxAdvanceBookingDays int
	WorkingHoursStart     string
	WorkingHoursEnd       string
	WorkingDays           []int
	LogoURL               *string
	BackgroundURL         *string
	PublicPhone           *string
	PublicEmail           *string

	CreatedAt time.Time
}

// FromDomainTenant конвертирует domain.Tenant в TenantResponse
func FromDomainTenant(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:                    t.ID,
		Slug:                  t.Slug,
		BusinessName:          t.BusinessName,
		Email:                 t.Email,
		Phone:                 t.Phone,
		ServiceType:           t.ServiceType,
		Description:           t.Description,
		SubscriptionStatus:    string(t.Subscription.Status),
		SubscriptionPlan:      string(t.Subscription.Plan),
		CurrentPeriodEnd:      t.Subscription.CurrentPeriodEnd,
		PrimaryColor:          t.Settings.PrimaryColor,
		SlotDurationMinutes:   t.Settings.SlotDurationMinutes,
		MaxAdvanceBookingDays: t.Settings.MaxAdvanceBookingDays,
		WorkingHoursStart:     t.Settings.WorkingHoursStart.String(),
		WorkingHoursEnd:       t.Settings.WorkingHoursEnd.String(),
		WorkingDays:           t.Settings.WorkingDays,
		LogoURL:               t.Settings.LogoURL,
		BackgroundURL:         t.Settings.BackgroundURL,
		PublicPhone:           t.Settings.PublicPhone,
		PublicEmail:           t.Settings.PublicEmail,
		CreatedAt:             t.CreatedAt,
	}
}
