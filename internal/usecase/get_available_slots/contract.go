package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

// CafeAPIClient интерфейс клиента бэкенда кафе
type CafeAPIClient interface {
	ListServiceSlots(ctx context.Context, serviceID string, limit int) ([]domain.Slot, error)
	GetPetGroup(ctx context.Context, groupID string) (*domain.PetGroup, error)
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
