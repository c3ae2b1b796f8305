package tenants

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("tenants: tenant not found")

	// ErrDuplicateEmail возвращается, когда владелец с таким email уже зарегистрирован
	ErrDuplicateEmail = errors.New("tenants: owner email already registered")

	// ErrAccessDenied возвращается, когда пользователь не администратор тенанта
	ErrAccessDenied = errors.New("tenants: access denied")

	// ErrSubscriptionInactive возвращается, когда подписка тенанта не допускает операции
	ErrSubscriptionInactive = errors.New("tenants: subscription is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("tenants: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tenants: internal error")
)
