package update_tenant_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/tenants"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTenantID      = "некорректный идентификатор тенанта"
	msgTenantNotFound       = "тенант не найден"
	msgAccessDenied         = "доступ запрещён"
	msgSubscriptionInactive = "подписка неактивна, операция недоступна"
	msgInvalidSettings      = "некорректные настройки"
	msgUnauthorized         = "требуется аутентификация"
)

type Handler struct {
	service TenantsService
	logger  Logger
}

func NewHandler(service TenantsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tenants/{tenantId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	tenantID, err := handlers.PathInt64(r, "tenantId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{tenantId}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSettings(r.Context(), req.ToServiceRequest(tenantID, userID))
	if err != nil {
		switch {
		case errors.Is(err, tenants.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, tenants.ErrAccessDenied):
			h.logger.Warn("PUT /tenants/{tenantId}/settings - Access denied: tenant_id=%d, user_id=%d", tenantID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, tenants.ErrSubscriptionInactive):
			h.logger.Warn("PUT /tenants/{tenantId}/settings - Subscription inactive: tenant_id=%d", tenantID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgSubscriptionInactive)

		case errors.Is(err, tenants.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /tenants/{tenantId}/settings - Failed to update settings: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{tenantId}/settings - Settings updated: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
