package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CreateReservationRequest запрос клиента на бронирование места в слоте
type CreateReservationRequest struct {
	TenantID      int64
	TimeSlotID    int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string
}

// CreateReservationResponse созданная бронь
type CreateReservationResponse struct {
	ID            int64
	PublicCode    string
	TenantID      int64
	TimeSlotID    int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string
	Status        domain.ReservationStatus
	Date          time.Time
	StartTime     string
	EndTime       string
	CreatedAt     time.Time
}

func fromDomain(r *domain.Reservation) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:            r.ID,
		PublicCode:    r.PublicCode,
		TenantID:      r.TenantID,
		TimeSlotID:    r.TimeSlotID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
		Status:        r.Status,
		Date:          r.Date,
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		CreatedAt:     r.CreatedAt,
	}
}
