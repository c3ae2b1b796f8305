package create_tenant

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/tenants"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateEmail     = "email уже зарегистрирован"
	msgInvalidInput       = "некорректные данные регистрации"
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

// Handle POST /api/v1/tenants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Signup(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, tenants.ErrDuplicateEmail):
			h.logger.Warn("POST /tenants - Duplicate email: %s", req.Email)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateEmail)

		case errors.Is(err, tenants.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tenants - Failed to create tenant: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants - Tenant created: id=%d, slug=%s", result.ID, result.Slug)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
