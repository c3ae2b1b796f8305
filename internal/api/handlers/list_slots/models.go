package list_slots

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
)

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

// ListSlotsResponse HTTP response model
type ListSlotsResponse struct {
	Slots []*SlotResponse `json:"slots"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotListResponse) *ListSlotsResponse {
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
	return &ListSlotsResponse{Slots: out}
}
