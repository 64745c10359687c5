package expand_attendance

import (
	"context"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// CafeAPIClient интерфейс клиента бэкенда кафе
type CafeAPIClient interface {
	ListTeams(ctx context.Context) ([]domain.Team, error)
	ListShifts(ctx context.Context) ([]domain.Shift, error)
	ListAttendanceOverrides(ctx context.Context, from, to types.Date) ([]domain.AttendanceOverride, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
