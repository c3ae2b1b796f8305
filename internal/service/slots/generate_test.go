package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func testTenant() *domain.Tenant {
	return &domain.Tenant{
		ID: 1,
		Settings: domain.TenantSettings{
			SlotDurationMinutes: 60,
			WorkingHoursStart:   types.TimeString("09:00"),
			WorkingHoursEnd:     types.TimeString("17:00"),
			// Понедельник - пятница
			WorkingDays: []int{1, 2, 3, 4, 5},
		},
	}
}

func TestGenerateSlots_PartitionsWorkingHours(t *testing.T) {
	tenant := testTenant()
	// Среда
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	slots, err := generateSlots(tenant, date, date, 1)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "10:00", slots[0].EndTime.String())
	assert.Equal(t, "16:00", slots[7].StartTime.String())
	assert.Equal(t, "17:00", slots[7].EndTime.String())

	for _, s := range slots {
		assert.Equal(t, tenant.ID, s.TenantID)
		assert.Equal(t, 1, s.Capacity)
		assert.Equal(t, 0, s.BookedCount)
		assert.True(t, s.IsActive)
	}
}

func TestGenerateSlots_DropsTrailingPartialSlot(t *testing.T) {
	tenant := testTenant()
	tenant.Settings.WorkingHoursEnd = types.TimeString("10:30")
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	// Окно 09:00-10:30 при длительности 60 даёт единственный слот 09:00-10:00,
	// хвост 10:00-10:30 отбрасывается
	slots, err := generateSlots(tenant, date, date, 1)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "10:00", slots[0].EndTime.String())
}

func TestGenerateSlots_SkipsNonWorkingDays(t *testing.T) {
	tenant := testTenant()
	// Пятница 17-го, суббота 18-го, воскресенье 19-го, понедельник 20-го
	start := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	slots, err := generateSlots(tenant, start, end, 1)
	require.NoError(t, err)

	// 2 рабочих дня по 8 слотов
	require.Len(t, slots, 16)

	dates := make(map[string]int)
	for _, s := range slots {
		dates[s.Date.Format(domain.DateFormat)]++
	}
	assert.Equal(t, map[string]int{"2025-10-17": 8, "2025-10-20": 8}, dates)
}

func TestGenerateSlots_CustomCapacity(t *testing.T) {
	tenant := testTenant()
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	slots, err := generateSlots(tenant, date, date, 5)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, 5, slots[0].Capacity)
}

func TestValidateGenerateRequest(t *testing.T) {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	err := validateGenerateRequest(&models.GenerateSlotsRequest{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 7),
	})
	assert.NoError(t, err)

	// Конец раньше начала
	err = validateGenerateRequest(&models.GenerateSlotsRequest{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Диапазон больше допустимого
	err = validateGenerateRequest(&models.GenerateSlotsRequest{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, domain.MaxGenerateDateRangeDays+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Вместимость вне границ
	err = validateGenerateRequest(&models.GenerateSlotsRequest{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 7),
		Capacity:  domain.MaxSlotCapacity + 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildSlot(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	slot, err := buildSlot(&models.CreateSlotRequest{
		TenantID:  1,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotCapacity, slot.Capacity)
	assert.True(t, slot.IsActive)
	assert.Equal(t, 0, slot.BookedCount)

	// Начало не раньше конца
	_, err = buildSlot(&models.CreateSlotRequest{
		TenantID:  1,
		Date:      date,
		StartTime: "11:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = buildSlot(&models.CreateSlotRequest{
		TenantID:  1,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
