package create_reservation

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("create_reservation: tenant not found")

	// ErrSlotNotFound возвращается, когда слот не найден или
	// не принадлежит указанному тенанту
	ErrSlotNotFound = errors.New("create_reservation: time slot not found")

	// ErrSlotUnavailable возвращается, когда слот нельзя забронировать:
	// деактивирован, заполнен или вне окна бронирования
	ErrSlotUnavailable = errors.New("create_reservation: time slot is not available")

	// ErrSubscriptionInactive возвращается, когда подписка тенанта
	// не допускает приём новых броней
	ErrSubscriptionInactive = errors.New("create_reservation: subscription is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_reservation: internal error")
)
