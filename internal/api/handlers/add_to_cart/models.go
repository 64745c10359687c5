package add_to_cart

import (
	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
)

// AddToCartRequest HTTP request model: выбранное занятие вместе с данными слота и услуги
type AddToCartRequest struct {
	Service      domain.ServiceRef    `json:"service"`
	Slot         domain.Slot          `json:"slot"`
	BookingDate  string               `json:"booking_date"` // "2026-10-20" или ISO-8601
	SelectedDate string               `json:"selectedDate,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	CustomerInfo *domain.CustomerInfo `json:"customerInfo,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса корзины
func (r *AddToCartRequest) ToServiceRequest() *models.AddItemRequest {
	req := &models.AddItemRequest{
		Service:      r.Service,
		Slot:         r.Slot,
		BookingDate:  r.BookingDate,
		SelectedDate: r.SelectedDate,
		Notes:        r.Notes,
	}
	if r.CustomerInfo != nil {
		req.CustomerInfo = *r.CustomerInfo
	}
	return req
}
