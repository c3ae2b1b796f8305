package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// buildSlot валидирует запрос и собирает доменный слот
func buildSlot(req *models.CreateSlotRequest) (*domain.TimeSlot, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = domain.DefaultSlotCapacity
	}
	if capacity < domain.MinSlotCapacity || capacity > domain.MaxSlotCapacity {
		return nil, fmt.Errorf("%w: capacity must be in [%d, %d]",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	return &domain.TimeSlot{
		TenantID:    req.TenantID,
		Date:        truncateToDay(req.Date),
		StartTime:   start,
		EndTime:     end,
		Capacity:    capacity,
		BookedCount: 0,
		IsActive:    true,
	}, nil
}

// validateGenerateRequest валидирует запрос массовой генерации
func validateGenerateRequest(req *models.GenerateSlotsRequest) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	rangeDays := int(truncateToDay(req.EndDate).Sub(truncateToDay(req.StartDate)).Hours()/24) + 1
	if rangeDays > domain.MaxGenerateDateRangeDays {
		return fmt.Errorf("%w: date range must not exceed %d days",
			ErrInvalidInput, domain.MaxGenerateDateRangeDays)
	}
	if req.Capacity != 0 && (req.Capacity < domain.MinSlotCapacity || req.Capacity > domain.MaxSlotCapacity) {
		return fmt.Errorf("%w: capacity must be in [%d, %d]",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	return nil
}

// generateSlots нарезает рабочие часы тенанта на слоты для каждого рабочего
// дня диапазона. Хвост окна короче slotDuration отбрасывается: окно
// 09:00-10:30 при длительности 60 даёт единственный слот 09:00-10:00.
func generateSlots(tenant *domain.Tenant, startDate, endDate time.Time, capacity int) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	duration := tenant.Settings.SlotDurationMinutes
	open := tenant.Settings.WorkingHoursStart
	close := tenant.Settings.WorkingHoursEnd

	for date := truncateToDay(startDate); !date.After(truncateToDay(endDate)); date = date.AddDate(0, 0, 1) {
		if !tenant.WorksOnWeekday(date.Weekday()) {
			continue
		}

		current := open
		for current.IsBefore(close) {
			slotEnd, err := current.AddMinutes(duration)
			if err != nil {
				return nil, fmt.Errorf("%w: slot end calculation: %v", ErrInternal, err)
			}
			if slotEnd.IsAfter(close) {
				break
			}

			slots = append(slots, &domain.TimeSlot{
				TenantID:    tenant.ID,
				Date:        date,
				StartTime:   current,
				EndTime:     slotEnd,
				Capacity:    capacity,
				BookedCount: 0,
				IsActive:    true,
			})

			current = slotEnd
		}
	}

	return slots, nil
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
