package get_tenant

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
)

type TenantsService interface {
	GetBySlug(ctx context.Context, slug string) (*models.TenantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
