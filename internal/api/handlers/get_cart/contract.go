package get_cart

import (
	"context"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

type CartService interface {
	Get(ctx context.Context, session string) (*domain.Cart, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
