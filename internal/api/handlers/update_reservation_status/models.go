package update_reservation_status

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // "confirmed" | "completed"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64   `json:"id"`
	PublicCode    string  `json:"publicCode"`
	TenantID      int64   `json:"tenantId"`
	TimeSlotID    int64   `json:"timeSlotId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	CreatedAt     string  `json:"createdAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationResponse) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		PublicCode:    resp.PublicCode,
		TenantID:      resp.TenantID,
		TimeSlotID:    resp.TimeSlotID,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		Notes:         resp.Notes,
		Status:        string(resp.Status),
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime,
		EndTime:       resp.EndTime,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
