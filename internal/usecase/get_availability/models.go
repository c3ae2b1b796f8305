package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// GetDatesRequest запрос доступных дат тенанта
type GetDatesRequest struct {
	TenantSlug string
}

// GetDatesResponse даты окна бронирования, на которые есть хотя бы
// один бронируемый слот (формат YYYY-MM-DD, по возрастанию)
type GetDatesResponse struct {
	Dates []string
}

// GetSlotsRequest запрос бронируемых слотов тенанта на дату
type GetSlotsRequest struct {
	TenantSlug string
	// Date дата в формате YYYY-MM-DD
	Date string
}

// AvailableSlot бронируемый слот в публичной выдаче
type AvailableSlot struct {
	ID             int64
	Date           string
	StartTime      string
	EndTime        string
	AvailableSpots int
}

// GetSlotsResponse бронируемые слоты на дату, по возрастанию времени начала
type GetSlotsResponse struct {
	Slots []*AvailableSlot
}

func toAvailableSlots(slots []*domain.TimeSlot) []*AvailableSlot {
	out := make([]*AvailableSlot, len(slots))
	for i, s := range slots {
		out[i] = &AvailableSlot{
			ID:             s.ID,
			Date:           s.Date.Format(domain.DateFormat),
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			AvailableSpots: s.AvailableSpots(),
		}
	}
	return out
}
