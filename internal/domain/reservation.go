package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus статус брони
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation бронь клиента на одно место в слоте.
//
// Машина состояний:
//
//	pending   -> confirmed | completed | cancelled
//	confirmed -> completed | cancelled
//	completed, cancelled - терминальные
//
// Дата и время слота денормализованы на момент создания брони
// и дальше не пересинхронизируются.
type Reservation struct {
	ID int64
	// PublicCode внешний идентификатор брони, выдаётся клиенту
	// и используется для отмены без учётной записи
	PublicCode    string
	TenantID      int64
	TimeSlotID    int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string
	Status        ReservationStatus

	// Денормализованная копия даты и времени слота на момент бронирования
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal возвращает true для терминальных статусов
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// IsActive возвращает true, если бронь занимает место в слоте
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeConfirmed возвращает true, если бронь можно подтвердить
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCompleted возвращает true, если бронь можно завершить
func (r *Reservation) CanBeCompleted() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled возвращает true, если бронь можно отменить
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// ReservationsFilter фильтр для выборки броней тенанта
type ReservationsFilter struct {
	TenantID int64 // Обязательный параметр
	// Date фильтр по дате слота (опционально)
	Date *time.Time
	// Status фильтр по статусу (опционально)
	Status *ReservationStatus
	// CustomerEmail точное совпадение без учёта регистра (опционально)
	CustomerEmail *string
}
