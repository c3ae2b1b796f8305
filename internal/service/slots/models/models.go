package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CreateSlotRequest запрос на создание одиночного слота
type CreateSlotRequest struct {
	TenantID  int64
	UserID    int64
	Date      time.Time
	StartTime string
	EndTime   string
	Capacity  int
}

// GenerateSlotsRequest запрос на массовую генерацию слотов из расписания тенанта
type GenerateSlotsRequest struct {
	TenantID  int64
	UserID    int64
	StartDate time.Time
	EndDate   time.Time
	// Capacity вместимость каждого сгенерированного слота (0 = по умолчанию 1)
	Capacity int
}

// ToggleSlotRequest запрос на переключение активности слота
type ToggleSlotRequest struct {
	SlotID int64
	UserID int64
}

// DeleteSlotRequest запрос на удаление слота
type DeleteSlotRequest struct {
	SlotID int64
	UserID int64
}

// ListSlotsRequest запрос на получение слотов тенанта на дату (админский обзор)
type ListSlotsRequest struct {
	TenantID int64
	UserID   int64
	Date     time.Time
}

// SlotResponse модель слота для вызывающей стороны
type SlotResponse struct {
	ID          int64
	TenantID    int64
	Date        time.Time
	StartTime   string
	EndTime     string
	Capacity    int
	BookedCount int
	IsActive    bool
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []*SlotResponse
}

// FromDomainSlot конвертирует domain.TimeSlot в SlotResponse
func FromDomainSlot(s *domain.TimeSlot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Date:        s.Date,
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Capacity:    s.Capacity,
		BookedCount: s.BookedCount,
		IsActive:    s.IsActive,
	}
}

// FromDomainSlotList конвертирует список domain.TimeSlot в SlotListResponse
func FromDomainSlotList(slots []*domain.TimeSlot) *SlotListResponse {
	out := make([]*SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = FromDomainSlot(s)
	}
	return &SlotListResponse{Slots: out}
}
