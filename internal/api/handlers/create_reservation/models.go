package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	TimeSlotID    int64   `json:"timeSlotId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(tenantID int64) *createReservation.CreateReservationRequest {
	return &createReservation.CreateReservationRequest{
		TenantID:      tenantID,
		TimeSlotID:    r.TimeSlotID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.CreateReservationResponse) *ReservationResponse {
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
