package get_tenant_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const (
	msgInvalidTenantID      = "некорректный идентификатор тенанта"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus        = "некорректный статус"
	msgTenantNotFound       = "тенант не найден"
	msgAccessDenied         = "доступ запрещён"
	msgSubscriptionInactive = "подписка неактивна, операция недоступна"
	msgUnauthorized         = "требуется аутентификация"
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

// Handle GET /api/v1/tenants/{tenantId}/reservations?date=&status=&email=
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

	req := &models.ListRequest{
		TenantID: tenantID,
		UserID:   userID,
	}

	query := r.URL.Query()

	if rawDate := query.Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = ptr.Ptr(date)
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		status := domain.ReservationStatus(rawStatus)
		if !isValidStatus(status) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		req.Status = ptr.Ptr(status)
	}

	if email := query.Get("email"); email != "" {
		req.CustomerEmail = ptr.Ptr(email)
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrSubscriptionInactive):
			handlers.RespondError(w, http.StatusPaymentRequired, msgSubscriptionInactive)

		default:
			h.logger.Error("GET /tenants/{tenantId}/reservations - Failed to list reservations: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

func isValidStatus(status domain.ReservationStatus) bool {
	for _, s := range domain.ValidReservationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
