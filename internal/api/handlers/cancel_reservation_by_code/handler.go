package cancel_reservation_by_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgReservationNotFound = "бронь не найдена"
	msgAlreadyFinished     = "бронь уже завершена или отменена"
	msgCancellationClosed  = "отмена недоступна, дата записи уже прошла"
	msgInvalidInput        = "требуются код брони и email"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelByCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CancelByCode(r.Context(), &models.CancelByCodeRequest{
		PublicCode:    req.PublicCode,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrInvalidTransition):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyFinished)

		case errors.Is(err, reservations.ErrCancellationClosed):
			handlers.RespondError(w, http.StatusConflict, msgCancellationClosed)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/cancel - Failed to cancel: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/cancel - Reservation cancelled: code=%s", result.PublicCode)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
