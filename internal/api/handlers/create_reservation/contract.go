package create_reservation

import (
	"context"

	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.CreateReservationRequest) (*createReservation.CreateReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
