package toggle_slot

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	ID          int64  `json:"id"`
	TenantID    int64  `json:"tenantId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	IsActive    bool   `json:"isActive"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotResponse) *SlotResponse {
	return &SlotResponse{
		ID:          resp.ID,
		TenantID:    resp.TenantID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime,
		EndTime:     resp.EndTime,
		Capacity:    resp.Capacity,
		BookedCount: resp.BookedCount,
		IsActive:    resp.IsActive,
	}
}
