package create_slot

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Capacity  int    `json:"capacity,omitempty"`
}

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

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest(tenantID, userID int64) (*models.CreateSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateSlotRequest{
		TenantID:  tenantID,
		UserID:    userID,
		Date:      date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Capacity:  r.Capacity,
	}, nil
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
