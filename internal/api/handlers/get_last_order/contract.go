package get_last_order

import (
	"context"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

type CartService interface {
	LastOrder(ctx context.Context, session string) (*domain.Order, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
