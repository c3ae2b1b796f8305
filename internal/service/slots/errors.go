package slots

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("slots: tenant not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots: time slot not found")

	// ErrSlotInUse возвращается при попытке удалить слот с бронями
	ErrSlotInUse = errors.New("slots: slot has active bookings")

	// ErrAccessDenied возвращается, когда пользователь не администратор тенанта
	ErrAccessDenied = errors.New("slots: access denied")

	// ErrSubscriptionInactive возвращается, когда подписка тенанта не допускает операции
	ErrSubscriptionInactive = errors.New("slots: subscription is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
