package add_to_cart

import (
	"context"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
)

type CartService interface {
	Add(ctx context.Context, session string, req *models.AddItemRequest) (*domain.Cart, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
