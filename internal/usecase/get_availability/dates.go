package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// formatWorkingDates фильтрует даты по рабочим дням недели тенанта
// и форматирует их в YYYY-MM-DD с сохранением порядка
func formatWorkingDates(tenant *domain.Tenant, dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if !tenant.WorksOnWeekday(d.Weekday()) {
			continue
		}
		out = append(out, d.Format(domain.DateFormat))
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
