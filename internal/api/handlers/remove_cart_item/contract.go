package remove_cart_item

import (
	"context"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

type CartService interface {
	Remove(ctx context.Context, session, itemID string) (*domain.Cart, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
