package get_available_slots

import (
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// AvailableSlotResponse бронируемый слот в публичной выдаче
type AvailableSlotResponse struct {
	ID             int64  `json:"id"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Slots []*AvailableSlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.GetSlotsResponse) *SlotsResponse {
	out := make([]*AvailableSlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		out[i] = &AvailableSlotResponse{
			ID:             s.ID,
			Date:           s.Date,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			AvailableSpots: s.AvailableSpots,
		}
	}
	return &SlotsResponse{Slots: out}
}
