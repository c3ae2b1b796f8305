package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TenantRepository интерфейс репозитория тенантов
type TenantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListAvailable(ctx context.Context, tenantID int64, date time.Time) ([]*domain.TimeSlot, error)
	ListAvailableDates(ctx context.Context, tenantID int64, from, to time.Time) ([]time.Time, error)
}

// AvailabilityCache read-through кеш ответов движка доступности
type AvailabilityCache interface {
	GetSlots(tenantID int64, date string) ([]*domain.TimeSlot, bool)
	SetSlots(tenantID int64, date string, slots []*domain.TimeSlot)
	GetDates(tenantID int64, from string) ([]string, bool)
	SetDates(tenantID int64, from string, dates []string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
