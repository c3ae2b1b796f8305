// Package cache read-through кеш результатов запросов доступности.
//
// Кеш никогда не является источником истины: все записи идут напрямую
// в хранилище, а любая запись по тенанту инвалидирует его кеш целиком.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// AvailabilityCache in-process кеш ответов движка доступности.
//
// У ristretto нет выборочного удаления по префиксу, поэтому инвалидация
// по тенанту реализована через поколение: номер поколения тенанта входит
// в ключ, Invalidate увеличивает его, и все старые ключи тенанта
// перестают находиться (и вытесняются по TTL/вместимости).
type AvailabilityCache struct {
	c   *ristretto.Cache[string, []byte]
	ttl time.Duration

	mu          sync.Mutex
	generations map[int64]*atomic.Uint64
}

// New создает кеш доступности. maxCostBytes - суммарный размер значений в байтах.
func New(maxCostBytes int64, ttl time.Duration) (*AvailabilityCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x ожидаемого числа записей
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: create ristretto cache: %w", err)
	}

	return &AvailabilityCache{
		c:           c,
		ttl:         ttl,
		generations: make(map[int64]*atomic.Uint64),
	}, nil
}

// GetSlots возвращает закешированные доступные слоты тенанта на дату
func (ac *AvailabilityCache) GetSlots(tenantID int64, date string) ([]*domain.TimeSlot, bool) {
	data, found := ac.c.Get(ac.key(tenantID, "slots", date))
	if !found {
		return nil, false
	}

	var slots []*domain.TimeSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// SetSlots кеширует доступные слоты тенанта на дату
func (ac *AvailabilityCache) SetSlots(tenantID int64, date string, slots []*domain.TimeSlot) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	ac.c.SetWithTTL(ac.key(tenantID, "slots", date), data, int64(len(data)), ac.ttl)
}

// GetDates возвращает закешированный список доступных дат тенанта
func (ac *AvailabilityCache) GetDates(tenantID int64, from string) ([]string, bool) {
	data, found := ac.c.Get(ac.key(tenantID, "dates", from))
	if !found {
		return nil, false
	}

	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, false
	}
	return dates, true
}

// SetDates кеширует список доступных дат тенанта
func (ac *AvailabilityCache) SetDates(tenantID int64, from string, dates []string) {
	data, err := json.Marshal(dates)
	if err != nil {
		return
	}
	ac.c.SetWithTTL(ac.key(tenantID, "dates", from), data, int64(len(data)), ac.ttl)
}

// Invalidate сбрасывает все закешированные данные тенанта.
// Вызывается после любой записи, затрагивающей слоты или брони тенанта.
func (ac *AvailabilityCache) Invalidate(tenantID int64) {
	ac.generation(tenantID).Add(1)
}

// Close останавливает кеш и освобождает ресурсы
func (ac *AvailabilityCache) Close() {
	ac.c.Close()
}

func (ac *AvailabilityCache) key(tenantID int64, kind, suffix string) string {
	gen := ac.generation(tenantID).Load()
	return fmt.Sprintf("avail:%d:%d:%s:%s", tenantID, gen, kind, suffix)
}

func (ac *AvailabilityCache) generation(tenantID int64) *atomic.Uint64 {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	gen, ok := ac.generations[tenantID]
	if !ok {
		gen = &atomic.Uint64{}
		ac.generations[tenantID] = gen
	}
	return gen
}
