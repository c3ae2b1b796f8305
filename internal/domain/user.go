package domain

import "time"

// UserRole роль пользователя внутри тенанта
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

// TenantUser учётная запись пользователя, привязанная к тенанту.
// Проверка паролей и сессии - зона ответственности внешнего auth-слоя,
// сервис хранит только хеш.
type TenantUser struct {
	ID           int64
	TenantID     int64
	Role         UserRole
	Name         string
	Email        string
	Phone        *string
	PasswordHash string
	CreatedAt    time.Time
}

// IsAdmin возвращает true, если пользователь - администратор тенанта
func (u *TenantUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
