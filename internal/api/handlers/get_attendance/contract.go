package get_attendance

import (
	"context"

	expandAttendance "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/expand_attendance"
)

type ExpandAttendanceUseCase interface {
	Execute(ctx context.Context, req *expandAttendance.Request) (*expandAttendance.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
