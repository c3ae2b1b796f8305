package create_tenant

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
)

// CreateTenantRequest HTTP request model
type CreateTenantRequest struct {
	BusinessName string  `json:"businessName"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	ServiceType  string  `json:"serviceType"`
	Description  *string `json:"description,omitempty"`

	OwnerName     string `json:"ownerName"`
	OwnerPassword string `json:"ownerPassword"`

	Settings *TenantSettingsRequest `json:"settings,omitempty"`
}

// TenantSettingsRequest настройки расписания и брендинга в HTTP запросе
type TenantSettingsRequest struct {
	PrimaryColor          string  `json:"primaryColor,omitempty"`
	SlotDurationMinutes   int     `json:"slotDurationMinutes,omitempty"`
	MaxAdvanceBookingDays int     `json:"maxAdvanceBookingDays,omitempty"`
	WorkingHoursStart     string  `json:"workingHoursStart,omitempty"`
	WorkingHoursEnd       string  `json:"workingHoursEnd,omitempty"`
	WorkingDays           []int   `json:"workingDays,omitempty"`
	LogoURL               *string `json:"logoUrl,omitempty"`
	BackgroundURL         *string `json:"backgroundUrl,omitempty"`
	PublicPhone           *string `json:"publicPhone,omitempty"`
	PublicEmail           *string `json:"publicEmail,omitempty"`
}

// TenantResponse HTTP response model
type TenantResponse struct {
	ID           int64   `json:"id"`
	Slug         string  `json:"slug"`
	BusinessName string  `json:"businessName"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	ServiceType  string  `json:"serviceType"`
	Description  *string `json:"description,omitempty"`

	SubscriptionStatus string `json:"subscriptionStatus"`
	SubscriptionPlan   string `json:"subscriptionPlan"`
	CurrentPeriodEnd   string `json:"currentPeriodEnd"`

	PrimaryColor          string  `json:"primaryColor"`
	SlotDurationMinutes   int     `json:"slotDurationMinutes"`
	MaxAdvanceBookingDays int     `json:"maxAdvanceBookingDays"`
	WorkingHoursStart     string  `json:"workingHoursStart"`
	WorkingHoursEnd       string  `json:"workingHoursEnd"`
	WorkingDays           []int   `json:"workingDays"`
	LogoURL               *string `json:"logoUrl,omitempty"`
	BackgroundURL         *string `json:"backgroundUrl,omitempty"`
	PublicPhone           *string `json:"publicPhone,omitempty"`
	PublicEmail           *string `json:"publicEmail,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateTenantRequest) ToServiceRequest() *models.SignupRequest {
	req := &models.SignupRequest{
		BusinessName:  r.BusinessName,
		Email:         r.Email,
		Phone:         r.Phone,
		ServiceType:   r.ServiceType,
		Description:   r.Description,
		OwnerName:     r.OwnerName,
		OwnerPassword: r.OwnerPassword,
	}

	if r.Settings != nil {
		req.Settings = &models.SettingsRequest{
			PrimaryColor:          r.Settings.PrimaryColor,
			SlotDurationMinutes:   r.Settings.SlotDurationMinutes,
			MaxAdvanceBookingDays: r.Settings.MaxAdvanceBookingDays,
			WorkingHoursStart:     r.Settings.WorkingHoursStart,
			WorkingHoursEnd:       r.Settings.WorkingHoursEnd,
			WorkingDays:           r.Settings.WorkingDays,
			LogoURL:               r.Settings.LogoURL,
			BackgroundURL:         r.Settings.BackgroundURL,
			PublicPhone:           r.Settings.PublicPhone,
			PublicEmail:           r.Settings.PublicEmail,
		}
	}

	return req
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.TenantResponse) *TenantResponse {
	return &TenantResponse{
		ID:                    resp.ID,
		Slug:                  resp.Slug,
		BusinessName:          resp.BusinessName,
		Email:                 resp.Email,
		Phone:                 resp.Phone,
		ServiceType:           resp.ServiceType,
		Description:           resp.Description,
		SubscriptionStatus:    resp.SubscriptionStatus,
		SubscriptionPlan:      resp.SubscriptionPlan,
		CurrentPeriodEnd:      resp.CurrentPeriodEnd.Format(domain.DateFormat),
		PrimaryColor:          resp.PrimaryColor,
		SlotDurationMinutes:   resp.SlotDurationMinutes,
		MaxAdvanceBookingDays: resp.MaxAdvanceBookingDays,
		WorkingHoursStart:     resp.WorkingHoursStart,
		WorkingHoursEnd:       resp.WorkingHoursEnd,
		WorkingDays:           resp.WorkingDays,
		LogoURL:               resp.LogoURL,
		BackgroundURL:         resp.BackgroundURL,
		PublicPhone:           resp.PublicPhone,
		PublicEmail:           resp.PublicEmail,
		CreatedAt:             resp.CreatedAt.Format(time.RFC3339),
	}
}
