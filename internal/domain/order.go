package domain

import "time"

// OrderServiceLine one line of an order submission
type OrderServiceLine struct {
	SlotID      string `json:"slot_id"`
	Notes       string `json:"notes"`
	BookingDate string `json:"booking_date"`
}

// OrderSubmission body of POST /orders
type OrderSubmission struct {
	FullName      string              `json:"full_name"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone"`
	Notes         string              `json:"notes"`
	Services      []OrderServiceLine  `json:"services"`
	PaymentMethod ServerPaymentMethod `json:"payment_method"`
}

// Order is owned by the backend. The gateway only keeps the last one for the confirmation screen.
type Order struct {
	ID            string     `json:"id"`
	OrderNumber   string     `json:"order_number,omitempty"`
	FinalAmount   *float64   `json:"final_amount,omitempty"`
	TotalAmount   *float64   `json:"total_amount,omitempty"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	Status        string     `json:"status,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Amount returns final_amount if present, otherwise total_amount
func (o *Order) Amount() float64 {
	switch {
	case o.FinalAmount != nil:
		return *o.FinalAmount
	case o.TotalAmount != nil:
		return *o.TotalAmount
	default:
		return 0
	}
}
