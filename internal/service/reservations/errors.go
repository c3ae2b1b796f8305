package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("reservations: tenant not found")

	// ErrInvalidTransition возвращается при запрещённом переходе статуса
	ErrInvalidTransition = errors.New("reservations: status transition not allowed")

	// ErrAccessDenied возвращается, когда пользователь не администратор тенанта
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrSubscriptionInactive возвращается, когда подписка тенанта не допускает операции
	ErrSubscriptionInactive = errors.New("reservations: subscription is not active")

	// ErrCancellationClosed возвращается при попытке клиентской отмены
	// брони, дата которой уже прошла
	ErrCancellationClosed = errors.New("reservations: cancellation window has closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
