package cancel_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// CancelledReservationResponse HTTP response model
type CancelledReservationResponse struct {
	ID          int64  `json:"id"`
	PublicCode  string `json:"publicCode"`
	TenantID    int64  `json:"tenantId"`
	TimeSlotID  int64  `json:"timeSlotId"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	CancelledAt string `json:"cancelledAt,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationResponse) *CancelledReservationResponse {
	out := &CancelledReservationResponse{
		ID:         resp.ID,
		PublicCode: resp.PublicCode,
		TenantID:   resp.TenantID,
		TimeSlotID: resp.TimeSlotID,
		Status:     string(resp.Status),
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime,
		EndTime:    resp.EndTime,
	}
	if resp.CancelledAt != nil {
		out.CancelledAt = resp.CancelledAt.Format(time.RFC3339)
	}
	return out
}
