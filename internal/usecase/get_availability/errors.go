package get_availability

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("get_availability: tenant not found")

	// ErrSubscriptionInactive возвращается, когда подписка тенанта
	// не допускает приём броней и страница записи закрыта
	ErrSubscriptionInactive = errors.New("get_availability: subscription is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_availability: internal error")
)
