package expand_attendance

import (
	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// Request модель запроса табеля за период
type Request struct {
	From   types.Date
	To     types.Date // включительно
	TeamID string     // опционально, только одна команда
}

// Response модель ответа
type Response struct {
	From    types.Date
	To      types.Date
	Entries []domain.AttendanceEntry
}
