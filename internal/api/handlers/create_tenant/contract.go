package create_tenant

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
)

type TenantsService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.TenantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
