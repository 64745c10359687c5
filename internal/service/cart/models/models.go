package models

import (
	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

// Event kinds
const (
	EventItemAdded   = "item_added"
	EventItemRemoved = "item_removed"
	EventCleared     = "cleared"
)

// AddItemRequest позиция, которую клиент кладет в корзину
type AddItemRequest struct {
	Service      domain.ServiceRef   `json:"service"`
	Slot         domain.Slot         `json:"slot"`
	BookingDate  string              `json:"booking_date"`
	SelectedDate string              `json:"selectedDate,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
}

// CartEvent событие bookingCartUpdated. Cart это снимок после изменения.
type CartEvent struct {
	Name    string
	Kind    string
	Session string
	Cart    domain.Cart
}

// CartResponse корзина вместе с вычисляемыми полями
type CartResponse struct {
	Items        []domain.CartItem   `json:"items"`
	Count        int                 `json:"count"`
	Total        float64             `json:"total"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
}

// FromDomainCart конвертирует корзину в ответ API
func FromDomainCart(cart *domain.Cart) *CartResponse {
	resp := &CartResponse{Items: []domain.CartItem{}}
	if cart.IsEmpty() {
		return resp
	}
	resp.Items = cart.Items
	resp.Count = len(cart.Items)
	resp.Total = cart.Total()
	resp.CustomerInfo = cart.CustomerInfo()
	return resp
}
