package create_slot

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
)

type SlotsService interface {
	Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
