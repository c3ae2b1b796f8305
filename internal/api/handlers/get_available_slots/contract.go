package get_available_slots

import (
	"context"

	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

type AvailabilityUseCase interface {
	SlotsForDate(ctx context.Context, req *getAvailability.GetSlotsRequest) (*getAvailability.GetSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
