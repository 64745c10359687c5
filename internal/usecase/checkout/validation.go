package checkout

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Session) == "" {
		return fmt.Errorf("%w: session is required", ErrInvalidInput)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// validateContact проверка перед отправкой: без имени и телефона заказ не уходит в бэкенд
func validateContact(info domain.CustomerInfo) error {
	if !info.HasContact() {
		return ErrMissingContactInfo
	}
	return nil
}
