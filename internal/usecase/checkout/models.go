package checkout

import (
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

// Request модель запроса на оформление корзины
type Request struct {
	Session       string
	CustomerInfo  *domain.CustomerInfo // данные формы; если не заданы, берутся из корзины
	PaymentMethod domain.PaymentMethod
	Notes         *string // общий комментарий к заказу; если не задан, берется из контактных данных
}

// Response модель ответа с созданным заказом
type Response struct {
	Order      domain.Order
	Submission domain.OrderSubmission // что было отправлено в бэкенд
}

// Config параметры оформления
type Config struct {
	Location *time.Location // часовой пояс кафе, в нем интерпретируются даты и время слотов
}
