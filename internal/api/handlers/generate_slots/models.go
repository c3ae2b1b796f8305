package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate string `json:"startDate"` // "2025-10-01"
	EndDate   string `json:"endDate"`   // "2025-10-31"
	Capacity  int    `json:"capacity,omitempty"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	IsActive    bool   `json:"isActive"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	GeneratedCount int             `json:"generatedCount"`
	Slots          []*SlotResponse `json:"slots"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *GenerateSlotsRequest) ToServiceRequest(tenantID, userID int64) (*models.GenerateSlotsRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &models.GenerateSlotsRequest{
		TenantID:  tenantID,
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Capacity:  r.Capacity,
	}, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotListResponse) *GenerateSlotsResponse {
	out := make([]*SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		out[i] = &SlotResponse{
			ID:          s.ID,
			Date:        s.Date.Format(domain.DateFormat),
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Capacity:    s.Capacity,
			BookedCount: s.BookedCount,
			IsActive:    s.IsActive,
		}
	}
	return &GenerateSlotsResponse{
		GeneratedCount: len(out),
		Slots:          out,
	}
}
