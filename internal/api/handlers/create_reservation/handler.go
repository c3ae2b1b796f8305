package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTenantID    = "некорректный идентификатор тенанта"
	msgTenantNotFound     = "тенант не найден"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "выбранный слот недоступен для записи"
	msgBookingUnavailable = "онлайн-запись временно недоступна"
	msgInvalidReservation = "некорректные данные записи"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathInt64(r, "tenantId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{tenantId}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotUnavailable):
			h.logger.Warn("POST /tenants/{tenantId}/reservations - Slot unavailable: tenant_id=%d, slot_id=%d",
				tenantID, req.TimeSlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createReservation.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReservation.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createReservation.ErrSubscriptionInactive):
			h.logger.Warn("POST /tenants/{tenantId}/reservations - Subscription inactive: tenant_id=%d", tenantID)
			handlers.RespondForbidden(w, msgBookingUnavailable)

		case errors.Is(err, createReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservation)

		default:
			h.logger.Error("POST /tenants/{tenantId}/reservations - Failed to create reservation: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{tenantId}/reservations - Reservation created: reservation_id=%d, tenant_id=%d",
		result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
