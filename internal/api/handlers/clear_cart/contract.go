package clear_cart

import "context"

type CartService interface {
	Clear(ctx context.Context, session string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
