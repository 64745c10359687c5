package domain

import (
	"strings"
	"time"
)

// PaymentMethod payment method as chosen in the booking form
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// ServerPaymentMethod payment method as the backend expects it in an order
type ServerPaymentMethod string

const (
	ServerPaymentAtCounter ServerPaymentMethod = "AT_COUNTER"
	ServerPaymentOnline    ServerPaymentMethod = "ONLINE"
)

// ToServer translates the client enum. Unknown or empty values fall back to AT_COUNTER.
func (p PaymentMethod) ToServer() ServerPaymentMethod {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(string(p)))) {
	case PaymentBankTransfer:
		return ServerPaymentOnline
	default:
		return ServerPaymentAtCounter
	}
}

// CustomerInfo contact details sent once per order
type CustomerInfo struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	Email    string `json:"email,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// HasContact returns true when both full name and phone are filled in
func (c CustomerInfo) HasContact() bool {
	return strings.TrimSpace(c.FullName) != "" && strings.TrimSpace(c.Phone) != ""
}

// IsEmpty returns true if no field is filled in
func (c CustomerInfo) IsEmpty() bool {
	return c == CustomerInfo{}
}

// ServiceRef denormalized service data kept with a cart item
type ServiceRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
}

// CartItem one selected occurrence waiting for checkout.
// BookingDate and SelectedDate are kept as the raw strings the client sent:
// either a date (YYYY-MM-DD) or a full ISO-8601 timestamp.
type CartItem struct {
	ID           string       `json:"id"`
	Service      ServiceRef   `json:"service"`
	Slot         Slot         `json:"slot"`
	BookingDate  string       `json:"booking_date,omitempty"`
	SelectedDate string       `json:"selectedDate,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	AddedAt      time.Time    `json:"added_at"`
}

// Price returns the slot price or the service base price
func (i *CartItem) Price() float64 {
	return i.Slot.EffectivePrice(i.Service.BasePrice)
}

// Cart client-side list of cart items
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// CustomerInfo the whole order has one contact payload: the first item's
func (c *Cart) CustomerInfo() CustomerInfo {
	if c.IsEmpty() {
		return CustomerInfo{}
	}
	return c.Items[0].CustomerInfo
}

// Total sum of item prices
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	total := 0.0
	for i := range c.Items {
		total += c.Items[i].Price()
	}
	return total
}

// Remove drops the item with the given ID. Returns false if there was no such item.
func (c *Cart) Remove(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
