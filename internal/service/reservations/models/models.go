package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UpdateStatusRequest запрос администратора на перевод брони в новый статус
type UpdateStatusRequest struct {
	ReservationID int64
	UserID        int64
	NewStatus     domain.ReservationStatus
}

// CancelRequest запрос администратора на отмену брони
type CancelRequest struct {
	ReservationID int64
	UserID        int64
}

// CancelByCodeRequest запрос клиента на отмену брони по публичному коду.
// Email обязателен и должен совпадать с email брони без учёта регистра.
type CancelByCodeRequest struct {
	PublicCode    string
	CustomerEmail string
}

// ListRequest запрос администратора на выборку броней тенанта
type ListRequest struct {
	TenantID      int64
	UserID        int64
	Date          *time.Time
	Status        *domain.ReservationStatus
	CustomerEmail *string
}

// ReservationResponse модель брони для вызывающей стороны
type ReservationResponse struct {
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
	CancelledAt   *time.Time
	CreatedAt     time.Time
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []*ReservationResponse
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
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
		CancelledAt:   r.CancelledAt,
		CreatedAt:     r.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список domain.Reservation
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, len(reservations))
	for i, r := range reservations {
		out[i] = FromDomainReservation(r)
	}
	return &ReservationListResponse{Reservations: out}
}
