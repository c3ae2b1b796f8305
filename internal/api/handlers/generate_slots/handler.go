package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTenantID      = "некорректный идентификатор тенанта"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTenantNotFound       = "тенант не найден"
	msgAccessDenied         = "доступ запрещён"
	msgSubscriptionInactive = "подписка неактивна, операция недоступна"
	msgInvalidRange         = "некорректный диапазон генерации"
	msgUnauthorized         = "требуется аутентификация"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/slots/generate
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

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{tenantId}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(tenantID, userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Generate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("POST /tenants/{tenantId}/slots/generate - Access denied: tenant_id=%d, user_id=%d", tenantID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, slots.ErrSubscriptionInactive):
			handlers.RespondError(w, http.StatusPaymentRequired, msgSubscriptionInactive)

		case errors.Is(err, slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("POST /tenants/{tenantId}/slots/generate - Failed to generate slots: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{tenantId}/slots/generate - Generated %d slots: tenant_id=%d", len(result.Slots), tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
