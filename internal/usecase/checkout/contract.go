package checkout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

// CartService интерфейс сервиса корзины
type CartService interface {
	Get(ctx context.Context, session string) (*domain.Cart, error)
	Clear(ctx context.Context, session string) error
	SaveLastOrder(ctx context.Context, session string, order *domain.Order) error
}

// CafeAPIClient интерфейс клиента бэкенда кафе
type CafeAPIClient interface {
	CreateOrder(ctx context.Context, submission *domain.OrderSubmission) (*domain.Order, error)
	ClearRemoteCart(ctx context.Context) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
