package cafeapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается на 404 от бэкенда кафе
	ErrNotFound = errors.New("cafeapi client: resource not found")

	// ErrUnauthorized возвращается на 401/403
	ErrUnauthorized = errors.New("cafeapi client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса, транспорт, таймаут)
	ErrInternal = errors.New("cafeapi client: internal error")

	// ErrInvalidResponse возвращается при неуспешном статусе или неразбираемом ответе
	ErrInvalidResponse = errors.New("cafeapi client: invalid response")
)

// APIError неуспешный ответ бэкенда вместе с сообщением из тела (поле message или error).
// errors.Is сопоставляет его с ErrNotFound, ErrUnauthorized или ErrInvalidResponse по статусу.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cafeapi: status %d", e.StatusCode)
	}
	return fmt.Sprintf("cafeapi: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 404:
		return ErrNotFound
	case 401, 403:
		return ErrUnauthorized
	default:
		return ErrInvalidResponse
	}
}

// MessageOf достает сообщение бэкенда из цепочки ошибок, если оно есть
func MessageOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
