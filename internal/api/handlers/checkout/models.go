package checkout

import (
	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	checkoutUC "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/checkout"
)

// CheckoutRequest HTTP request model. Все поля опциональны: без customerInfo
// используются контактные данные из корзины.
type CheckoutRequest struct {
	CustomerInfo  *domain.CustomerInfo `json:"customerInfo,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"payment_method,omitempty"` // "cash" | "bank_transfer"
	Notes         *string              `json:"notes,omitempty"`
}

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	Order    domain.Order              `json:"order"`
	Services []domain.OrderServiceLine `json:"services"`
	Payment  string                    `json:"payment_method"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(session string) *checkoutUC.Request {
	return &checkoutUC.Request{
		Session:       session,
		CustomerInfo:  r.CustomerInfo,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkoutUC.Response) *CheckoutResponse {
	return &CheckoutResponse{
		Order:    resp.Order,
		Services: resp.Submission.Services,
		Payment:  string(resp.Submission.PaymentMethod),
	}
}
