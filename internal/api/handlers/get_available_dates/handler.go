package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

const (
	msgTenantNotFound     = "тенант не найден"
	msgBookingUnavailable = "онлайн-запись временно недоступна"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// DatesResponse HTTP response model
type DatesResponse struct {
	Dates []string `json:"dates"`
}

// Handle GET /api/v1/booking/{slug}/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	result, err := h.useCase.AvailableDates(r.Context(), &getAvailability.GetDatesRequest{
		TenantSlug: slug,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, getAvailability.ErrSubscriptionInactive):
			handlers.RespondForbidden(w, msgBookingUnavailable)

		default:
			h.logger.Error("GET /booking/{slug}/dates - Failed to get dates: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DatesResponse{Dates: result.Dates})
}
