package cart

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных позиции корзины
	ErrInvalidInput = errors.New("invalid input data")

	// ErrItemNotFound возвращается, когда в корзине нет позиции с таким ID
	ErrItemNotFound = errors.New("cart item not found")

	// ErrNoLastOrder возвращается, когда в сессии еще не было оформленного заказа
	ErrNoLastOrder = errors.New("no last order")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cart service: internal error")
)
