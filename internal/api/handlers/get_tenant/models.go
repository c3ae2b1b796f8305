package get_tenant

import (
	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
)

// TenantPageResponse публичная карточка тенанта для страницы записи.
// Не содержит email владельца и состояния подписки.
type TenantPageResponse struct {
	ID           int64   `json:"id"`
	Slug         string  `json:"slug"`
	BusinessName string  `json:"businessName"`
	ServiceType  string  `json:"serviceType"`
	Description  *string `json:"description,omitempty"`

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

// FromServiceResponse конвертирует ответ сервиса в публичную карточку
func FromServiceResponse(resp *models.TenantResponse) *TenantPageResponse {
	return &TenantPageResponse{
		ID:                    resp.ID,
		Slug:                  resp.Slug,
		BusinessName:          resp.BusinessName,
		ServiceType:           resp.ServiceType,
		Description:           resp.Description,
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
