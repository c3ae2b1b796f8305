package get_tenant_reservations

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64   `json:"id"`
	PublicCode    string  `json:"publicCode"`
	TimeSlotID    int64   `json:"timeSlotId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	CancelledAt   string  `json:"cancelledAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// ListReservationsResponse HTTP response model
type ListReservationsResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationListResponse) *ListReservationsResponse {
	out := make([]*ReservationResponse, len(resp.Reservations))
	for i, r := range resp.Reservations {
		item := &ReservationResponse{
			ID:            r.ID,
			PublicCode:    r.PublicCode,
			TimeSlotID:    r.TimeSlotID,
			CustomerName:  r.CustomerName,
			CustomerEmail: r.CustomerEmail,
			CustomerPhone: r.CustomerPhone,
			Notes:         r.Notes,
			Status:        string(r.Status),
			Date:          r.Date.Format(domain.DateFormat),
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		}
		if r.CancelledAt != nil {
			item.CancelledAt = r.CancelledAt.Format(time.RFC3339)
		}
		out[i] = item
	}
	return &ListReservationsResponse{Reservations: out}
}
