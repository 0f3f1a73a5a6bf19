package availability_lookup

import (
	"context"

	availabilityLookup "github.com/m04kA/SMC-ReservationGateway/internal/usecase/availability_lookup"
)

type AvailabilityLookupUseCase interface {
	Execute(ctx context.Context, req *availabilityLookup.Request) *availabilityLookup.Response
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
