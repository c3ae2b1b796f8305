package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.TimeSlot) (*domain.TimeSlot, error)
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.TimeSlot, error)
	ToggleActive(ctx context.Context, slotID int64) (bool, error)
	Delete(ctx context.Context, slotID int64) error
}

// TenantRepository интерфейс репозитория тенантов
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TenantUser, error)
}

// CacheInvalidator сброс кеша доступности тенанта после записей
type CacheInvalidator interface {
	Invalidate(tenantID int64)
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
