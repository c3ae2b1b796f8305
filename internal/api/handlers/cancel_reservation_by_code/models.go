package cancel_reservation_by_code

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// CancelByCodeRequest HTTP request model
type CancelByCodeRequest struct {
	PublicCode    string `json:"publicCode"`
	CustomerEmail string `json:"customerEmail"`
}

// CancelledReservationResponse HTTP response model.
// Клиенту не возвращаются внутренние идентификаторы.
type CancelledReservationResponse struct {
	PublicCode  string `json:"publicCode"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	CancelledAt string `json:"cancelledAt,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationResponse) *CancelledReservationResponse {
	out := &CancelledReservationResponse{
		PublicCode: resp.PublicCode,
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
