package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// Config параметры разрешения слотов
type Config struct {
	Location         *time.Location // часовой пояс кафе, в нем определяется "сегодня"
	RecurringWeeks   int            // на сколько недель разворачивать еженедельные слоты
	PageLimit        int            // размер страницы при выгрузке слотов
	FetchConcurrency int            // сколько групп питомцев запрашивать параллельно
}

// Request модель запроса на получение занятий услуги
type Request struct {
	ServiceID string
}

// Response модель ответа со списком занятий
type Response struct {
	ServiceID   string
	Today       types.Date          // "сегодня" в часовом поясе кафе
	Occurrences []domain.Occurrence // отсортированы по дате, времени начала и ID слота
}
