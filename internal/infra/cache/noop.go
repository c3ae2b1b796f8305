package cache

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Noop заглушка кеша для конфигураций с выключенным кешированием:
// все чтения - промах, записи и инвалидации игнорируются.
type Noop struct{}

// NewNoop создает заглушку кеша
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) GetSlots(tenantID int64, date string) ([]*domain.TimeSlot, bool) { return nil, false }

func (n *Noop) SetSlots(tenantID int64, date string, slots []*domain.TimeSlot) {}

func (n *Noop) GetDates(tenantID int64, from string) ([]string, bool) { return nil, false }

func (n *Noop) SetDates(tenantID int64, from string, dates []string) {}

func (n *Noop) Invalidate(tenantID int64) {}
