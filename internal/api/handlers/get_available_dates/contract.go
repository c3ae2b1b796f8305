package get_available_dates

import (
	"context"

	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

type AvailabilityUseCase interface {
	AvailableDates(ctx context.Context, req *getAvailability.GetDatesRequest) (*getAvailability.GetDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
