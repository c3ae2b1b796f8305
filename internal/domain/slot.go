package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// TimeSlot бронируемый интервал на конкретную дату с ограниченной вместимостью.
//
// Инвариант: 0 <= BookedCount <= Capacity. Поддерживается атомарно на уровне
// хранилища (условный инкремент при создании брони, декремент с нижней
// границей 0 при отмене).
type TimeSlot struct {
	ID          int64
	TenantID    int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	BookedCount int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasCapacity возвращает true, если в слоте есть свободные места
func (s *TimeSlot) HasCapacity() bool {
	return s.BookedCount < s.Capacity
}

// IsBookable возвращает true, если слот активен и в нём есть свободные места
func (s *TimeSlot) IsBookable() bool {
	return s.IsActive && s.HasCapacity()
}

// AvailableSpots возвращает количество свободных мест в слоте
func (s *TimeSlot) AvailableSpots() int {
	if s.BookedCount >= s.Capacity {
		return 0
	}
	return s.Capacity - s.BookedCount
}
