package expand_attendance

import (
	"fmt"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if days := req.From.DaysUntil(req.To) + 1; days > domain.MaxAttendanceDays {
		return fmt.Errorf("%w: range must be at most %d days, got %d", ErrInvalidInput, domain.MaxAttendanceDays, days)
	}
	return nil
}
