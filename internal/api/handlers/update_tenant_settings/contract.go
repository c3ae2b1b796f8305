package update_tenant_settings

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
)

type TenantsService interface {
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.TenantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
