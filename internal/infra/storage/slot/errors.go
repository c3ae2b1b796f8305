package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: time slot not found")

	// ErrNoCapacity возвращается условным инкрементом, когда слот неактивен,
	// заполнен или не принадлежит указанному тенанту
	ErrNoCapacity = errors.New("slot.repository: no capacity left in slot")

	// ErrSlotInUse возвращается при попытке удалить слот с активными бронями
	ErrSlotInUse = errors.New("slot.repository: slot has active bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
