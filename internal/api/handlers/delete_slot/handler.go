package delete_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
)

const (
	msgInvalidSlotID        = "некорректный идентификатор слота"
	msgSlotNotFound         = "слот не найден"
	msgTenantNotFound       = "тенант не найден"
	msgSlotInUse            = "слот нельзя удалить, по нему есть брони"
	msgAccessDenied         = "доступ запрещён"
	msgSubscriptionInactive = "подписка неактивна, операция недоступна"
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

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteSlotRequest{
		SlotID: slotID,
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, slots.ErrSlotInUse):
			h.logger.Warn("DELETE /slots/{slotId} - Slot has bookings: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotInUse)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /slots/{slotId} - Access denied: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, slots.ErrSubscriptionInactive):
			handlers.RespondError(w, http.StatusPaymentRequired, msgSubscriptionInactive)

		default:
			h.logger.Error("DELETE /slots/{slotId} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{slotId} - Slot deleted: slot_id=%d", slotID)
	w.WriteHeader(http.StatusNoContent)
}
