package update_tenant_settings

import (
	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
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

// SettingsResponse HTTP response model
type SettingsResponse struct {
	TenantID int64 `json:"tenantId"`

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
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(tenantID, userID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		TenantID: tenantID,
		UserID:   userID,
		Settings: models.SettingsRequest{
			PrimaryColor:          r.PrimaryColor,
			SlotDurationMinutes:   r.SlotDurationMinutes,
			MaxAdvanceBookingDays: r.MaxAdvanceBookingDays,
			WorkingHoursStart:     r.WorkingHoursStart,
			WorkingHoursEnd:       r.WorkingHoursEnd,
			WorkingDays:           r.WorkingDays,
			LogoURL:               r.LogoURL,
			BackgroundURL:         r.BackgroundURL,
			PublicPhone:           r.PublicPhone,
			PublicEmail:           r.PublicEmail,
		},
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.TenantResponse) *SettingsResponse {
	return &SettingsResponse{
		TenantID:              resp.ID,
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
	}
}
