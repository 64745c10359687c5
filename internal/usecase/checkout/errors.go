package checkout

import "errors"

var (
	// ErrEmptyCart возвращается при попытке оформить пустую корзину
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrMissingContactInfo возвращается, когда не заполнены имя или телефон
	ErrMissingContactInfo = errors.New("checkout: full name and phone are required")

	// ErrOrderRejected возвращается, когда бэкенд отклонил заказ
	ErrOrderRejected = errors.New("checkout: order rejected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout: internal error")
)

// RejectedError отказ бэкенда вместе с его сообщением для пользователя
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return ErrOrderRejected.Error() + ": " + e.Message
}

func (e *RejectedError) Unwrap() error {
	return ErrOrderRejected
}
